package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"camrental-backend/internal/domain"
	"camrental-backend/internal/repository"
)

type pricingTierRepository struct {
	db *sql.DB
}

func NewPricingTierRepository(db *sql.DB) repository.PricingTierRepository {
	return &pricingTierRepository{db: db}
}

func (r *pricingTierRepository) Create(ctx context.Context, t *domain.PricingTier) error {
	query, args, err := psql.Insert("pricing_tiers").
		Columns("camera_id", "min_days", "max_days", "price_per_day_cents").
		Values(t.CameraID, t.MinDays, t.MaxDays, t.PricePerDayCents).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build tier insert: %w", err)
	}
	return r.db.QueryRowContext(ctx, query, args...).Scan(&t.ID)
}

func (r *pricingTierRepository) ListByCamera(ctx context.Context, cameraID int64) ([]domain.PricingTier, error) {
	query := `
		SELECT id, camera_id, min_days, max_days, price_per_day_cents
		FROM pricing_tiers
		WHERE camera_id = $1
		ORDER BY min_days`
	rows, err := r.db.QueryContext(ctx, query, cameraID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []domain.PricingTier
	for rows.Next() {
		var (
			t       domain.PricingTier
			maxDays sql.NullInt64
		)
		if err := rows.Scan(&t.ID, &t.CameraID, &t.MinDays, &maxDays, &t.PricePerDayCents); err != nil {
			return nil, err
		}
		if maxDays.Valid {
			m := int(maxDays.Int64)
			t.MaxDays = &m
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}
