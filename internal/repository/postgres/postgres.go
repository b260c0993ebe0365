package postgres

import (
	"database/sql"

	"camrental-backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
)

// psql builds queries with Postgres-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Store struct {
	db *sql.DB
	repository.RentalRepository
	repository.CameraRepository
	repository.PricingTierRepository
	repository.CustomerRepository
	repository.PaymentRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		RentalRepository:      NewRentalRepository(db),
		CameraRepository:      NewCameraRepository(db),
		PricingTierRepository: NewPricingTierRepository(db),
		CustomerRepository:    NewCustomerRepository(db),
		PaymentRepository:     NewPaymentRepository(db),
	}
}
