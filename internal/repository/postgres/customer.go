package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"camrental-backend/internal/domain"
	"camrental-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query, args, err := psql.Insert("customers").
		Columns("name", "email", "phone", "created_on").
		Values(c.Name, c.Email, c.Phone, time.Now()).
		Suffix("RETURNING id, created_on").
		ToSql()
	if err != nil {
		return fmt.Errorf("build customer insert: %w", err)
	}
	return r.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CreatedOn)
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, created_on FROM customers WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
