package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"camrental-backend/internal/domain"
)

var rentalCols = []string{
	"id", "camera_id", "customer_id", "start_date", "end_date", "rental_status", "shipping_status",
	"price_per_day_cents", "total_price_cents", "rental_days", "booking_type",
	"cancellation_reason", "rejection_reason", "contract_pdf_url", "created_on", "updated_on",
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRentalRepository_CreateAllocated(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	rental := &domain.Rental{
		CustomerID:   42,
		StartDate:    date(2024, 6, 10),
		EndDate:      date(2024, 6, 13),
		RentalStatus: domain.RentalStatusPending,
		BookingType:  domain.BookingTypeSelfService,
	}

	t.Run("AllocatesLowestFreeUnit", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO rentals").
			WithArgs("Sony A7 IV", rental.CustomerID, rental.StartDate, rental.EndDate, rental.RentalStatus,
				rental.PricePerDayCents, rental.TotalPriceCents, rental.RentalDays, rental.BookingType,
				sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "camera_id", "created_on", "updated_on"}).
				AddRow(10, 5, time.Now(), time.Now()))

		err := repo.CreateAllocated(ctx, "Sony A7 IV", rental, domain.BlockingStatuses)
		assert.NoError(t, err)
		assert.Equal(t, int64(10), rental.ID)
		assert.Equal(t, int64(5), rental.CameraID)
	})

	t.Run("PoolExhausted", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO rentals").
			WillReturnRows(sqlmock.NewRows([]string{"id", "camera_id", "created_on", "updated_on"}))

		err := repo.CreateAllocated(ctx, "Sony A7 IV", rental, domain.BlockingStatuses)
		assert.ErrorIs(t, err, domain.ErrNoUnitAvailable)
	})
}

func TestRentalRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalCols).
			AddRow(10, 5, 42, date(2024, 6, 10), date(2024, 6, 13), "CONFIRMED", "IN_TRANSIT_TO_USER",
				40000, 160000, 4, "SELF_SERVICE", nil, nil, nil, time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").
			WithArgs(int64(10)).
			WillReturnRows(rows)

		rental, err := repo.GetByID(ctx, 10)
		assert.NoError(t, err)
		assert.Equal(t, int64(10), rental.ID)
		assert.Equal(t, domain.RentalStatusConfirmed, rental.RentalStatus)
		if assert.NotNil(t, rental.ShippingStatus) {
			assert.Equal(t, domain.ShippingStatusInTransitToUser, *rental.ShippingStatus)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(rentalCols))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrRentalNotFound)
	})
}

func TestRentalRepository_ConfirmIfNoOverlap(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()
	quote := domain.Quote{TotalPriceCents: 160000, PricePerDayCents: 40000, RentalDays: 4}

	t.Run("GuardHolds", func(t *testing.T) {
		mock.ExpectExec("UPDATE rentals AS t").
			WithArgs(int64(10), quote.PricePerDayCents, quote.TotalPriceCents, quote.RentalDays, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		confirmed, err := repo.ConfirmIfNoOverlap(ctx, 10, quote, domain.BlockingStatuses)
		assert.NoError(t, err)
		assert.True(t, confirmed)
	})

	t.Run("GuardFails", func(t *testing.T) {
		mock.ExpectExec("UPDATE rentals AS t").
			WithArgs(int64(10), quote.PricePerDayCents, quote.TotalPriceCents, quote.RentalDays, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		confirmed, err := repo.ConfirmIfNoOverlap(ctx, 10, quote, domain.BlockingStatuses)
		assert.NoError(t, err)
		assert.False(t, confirmed)
	})
}

func TestRentalRepository_TransferToAvailableUnit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("MovesToLowestFreeUnit", func(t *testing.T) {
		mock.ExpectQuery("UPDATE rentals AS t").
			WithArgs(int64(10), "Sony A7 IV", date(2024, 6, 10), date(2024, 6, 13), int64(5), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"camera_id"}).AddRow(6))

		newCameraID, err := repo.TransferToAvailableUnit(ctx, 10, "Sony A7 IV",
			date(2024, 6, 10), date(2024, 6, 13), 5, domain.BlockingStatuses)
		assert.NoError(t, err)
		assert.Equal(t, int64(6), newCameraID)
	})

	t.Run("NoOtherUnitFree", func(t *testing.T) {
		mock.ExpectQuery("UPDATE rentals AS t").
			WillReturnRows(sqlmock.NewRows([]string{"camera_id"}))

		_, err := repo.TransferToAvailableUnit(ctx, 10, "Sony A7 IV",
			date(2024, 6, 10), date(2024, 6, 13), 5, domain.BlockingStatuses)
		assert.ErrorIs(t, err, domain.ErrNoUnitAvailable)
	})
}

func TestRentalRepository_IsCameraAvailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT NOT EXISTS").
		WithArgs(int64(5), sqlmock.AnyArg(), date(2024, 6, 10), date(2024, 6, 13)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	available, err := repo.IsCameraAvailable(ctx, 5, date(2024, 6, 10), date(2024, 6, 13), domain.BlockingStatuses)
	assert.NoError(t, err)
	assert.False(t, available)
}

func TestRentalRepository_ScheduleOverdueReturns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()
	asOf := date(2024, 6, 20)

	t.Run("SweepsOnlyDeliveredActive", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalCols).
			AddRow(10, 5, 42, date(2024, 6, 10), date(2024, 6, 13), "ACTIVE", "RETURN_SCHEDULED",
				40000, 160000, 4, "SELF_SERVICE", nil, nil, nil, time.Now(), time.Now())

		mock.ExpectQuery("UPDATE rentals").
			WithArgs(asOf).
			WillReturnRows(rows)

		swept, err := repo.ScheduleOverdueReturns(ctx, asOf)
		assert.NoError(t, err)
		assert.Len(t, swept, 1)
		assert.Equal(t, int64(10), swept[0].ID)
	})

	t.Run("NothingOverdue", func(t *testing.T) {
		mock.ExpectQuery("UPDATE rentals").
			WithArgs(asOf).
			WillReturnRows(sqlmock.NewRows(rentalCols))

		swept, err := repo.ScheduleOverdueReturns(ctx, asOf)
		assert.NoError(t, err)
		assert.Empty(t, swept)
	})
}

func TestRentalRepository_DeleteCascade(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("DeletesPaymentsThenRental", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM payment_records WHERE rental_id = \\$1").
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("DELETE FROM rentals WHERE id = \\$1").
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.DeleteCascade(ctx, 10))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingRental", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM payment_records WHERE rental_id = \\$1").
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM rentals WHERE id = \\$1").
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.DeleteCascade(ctx, 99), domain.ErrRentalNotFound)
	})
}
