package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"camrental-backend/internal/domain"
	"camrental-backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
)

const cameraColumns = "id, model_name, serial_number, status, condition, notes, created_on, deleted_on"

type cameraRepository struct {
	db *sql.DB
}

func NewCameraRepository(db *sql.DB) repository.CameraRepository {
	return &cameraRepository{db: db}
}

func (r *cameraRepository) Create(ctx context.Context, c *domain.Camera) error {
	query, args, err := psql.Insert("cameras").
		Columns("model_name", "serial_number", "status", "condition", "notes", "created_on").
		Values(c.ModelName, c.SerialNumber, c.Status, c.Condition, c.Notes, time.Now()).
		Suffix("RETURNING id, created_on").
		ToSql()
	if err != nil {
		return fmt.Errorf("build camera insert: %w", err)
	}
	return r.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CreatedOn)
}

func (r *cameraRepository) GetByID(ctx context.Context, id int64) (*domain.Camera, error) {
	query := fmt.Sprintf(`SELECT %s FROM cameras WHERE id = $1 AND deleted_on IS NULL`, cameraColumns)
	c, err := scanCamera(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCameraNotFound
	}
	return c, err
}

func (r *cameraRepository) Update(ctx context.Context, c *domain.Camera) error {
	query, args, err := psql.Update("cameras").
		Set("status", c.Status).
		Set("condition", c.Condition).
		Set("notes", c.Notes).
		Set("deleted_on", c.DeletedOn).
		Where(sq.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build camera update: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCameraNotFound
	}
	return nil
}

func (r *cameraRepository) ListByModel(ctx context.Context, modelName string) ([]domain.Camera, error) {
	query := fmt.Sprintf(`SELECT %s FROM cameras WHERE model_name = $1 AND deleted_on IS NULL ORDER BY id`, cameraColumns)
	rows, err := r.db.QueryContext(ctx, query, modelName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cameras []domain.Camera
	for rows.Next() {
		c, err := scanCamera(rows)
		if err != nil {
			return nil, err
		}
		cameras = append(cameras, *c)
	}
	return cameras, rows.Err()
}

func scanCamera(row interface{ Scan(...interface{}) error }) (*domain.Camera, error) {
	var (
		c       domain.Camera
		deleted sql.NullTime
	)
	err := row.Scan(&c.ID, &c.ModelName, &c.SerialNumber, &c.Status, &c.Condition, &c.Notes, &c.CreatedOn, &deleted)
	if err != nil {
		return nil, err
	}
	if deleted.Valid {
		c.DeletedOn = &deleted.Time
	}
	return &c, nil
}
