package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"camrental-backend/internal/domain"
	"camrental-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.PaymentRecord) error {
	query, args, err := psql.Insert("payment_records").
		Columns("rental_id", "reference", "amount_cents", "created_on").
		Values(p.RentalID, p.Reference, p.AmountCents, time.Now()).
		Suffix("RETURNING id, created_on").
		ToSql()
	if err != nil {
		return fmt.Errorf("build payment insert: %w", err)
	}
	return r.db.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedOn)
}

func (r *paymentRepository) ListByRental(ctx context.Context, rentalID int64) ([]domain.PaymentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, rental_id, reference, amount_cents, created_on
		 FROM payment_records WHERE rental_id = $1 ORDER BY id`, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.PaymentRecord
	for rows.Next() {
		var p domain.PaymentRecord
		if err := rows.Scan(&p.ID, &p.RentalID, &p.Reference, &p.AmountCents, &p.CreatedOn); err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}
