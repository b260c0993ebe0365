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
	"github.com/lib/pq"
)

// fkViolation is the Postgres error code for foreign_key_violation.
const fkViolation = "23503"

const rentalColumns = `id, camera_id, customer_id, start_date, end_date, rental_status, shipping_status,
	price_per_day_cents, total_price_cents, rental_days, booking_type,
	cancellation_reason, rejection_reason, contract_pdf_url, created_on, updated_on`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func statusArray(statuses []domain.RentalStatus) interface{} {
	ss := make([]string, len(statuses))
	for i, s := range statuses {
		ss[i] = string(s)
	}
	return pq.Array(ss)
}

func scanRental(row interface{ Scan(...interface{}) error }) (*domain.Rental, error) {
	var (
		rt           domain.Rental
		shipping     sql.NullString
		cancelReason sql.NullString
		rejectReason sql.NullString
		contractURL  sql.NullString
	)
	err := row.Scan(
		&rt.ID, &rt.CameraID, &rt.CustomerID, &rt.StartDate, &rt.EndDate,
		&rt.RentalStatus, &shipping,
		&rt.PricePerDayCents, &rt.TotalPriceCents, &rt.RentalDays, &rt.BookingType,
		&cancelReason, &rejectReason, &contractURL, &rt.CreatedOn, &rt.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	if shipping.Valid {
		s := domain.ShippingStatus(shipping.String)
		rt.ShippingStatus = &s
	}
	if cancelReason.Valid {
		rt.CancellationReason = &cancelReason.String
	}
	if rejectReason.Valid {
		rt.RejectionReason = &rejectReason.String
	}
	if contractURL.Valid {
		rt.ContractPDFURL = &contractURL.String
	}
	return &rt, nil
}

func (r *rentalRepository) CreateAllocated(ctx context.Context, modelName string, rt *domain.Rental, blocking []domain.RentalStatus) error {
	// Selection and reservation happen in one statement so two
	// concurrent requests can never pick the same free unit. Lowest
	// camera id wins among eligible units.
	query := `
		INSERT INTO rentals (camera_id, customer_id, start_date, end_date, rental_status,
		                     price_per_day_cents, total_price_cents, rental_days, booking_type,
		                     created_on, updated_on)
		SELECT c.id, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()
		FROM cameras c
		WHERE c.model_name = $1
		  AND c.status = 'AVAILABLE'
		  AND c.deleted_on IS NULL
		  AND NOT EXISTS (
		      SELECT 1 FROM rentals o
		      WHERE o.camera_id = c.id
		        AND o.rental_status = ANY($10)
		        AND o.start_date <= $4
		        AND o.end_date >= $3
		  )
		ORDER BY c.id
		LIMIT 1
		RETURNING id, camera_id, created_on, updated_on`

	err := r.db.QueryRowContext(ctx, query,
		modelName, rt.CustomerID, rt.StartDate, rt.EndDate, rt.RentalStatus,
		rt.PricePerDayCents, rt.TotalPriceCents, rt.RentalDays, rt.BookingType,
		statusArray(blocking),
	).Scan(&rt.ID, &rt.CameraID, &rt.CreatedOn, &rt.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNoUnitAvailable
	}
	return err
}

func (r *rentalRepository) CreateOnCamera(ctx context.Context, rt *domain.Rental, blocking []domain.RentalStatus) error {
	query := `
		INSERT INTO rentals (camera_id, customer_id, start_date, end_date, rental_status,
		                     price_per_day_cents, total_price_cents, rental_days, booking_type,
		                     created_on, updated_on)
		SELECT c.id, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()
		FROM cameras c
		WHERE c.id = $1
		  AND c.deleted_on IS NULL
		  AND NOT EXISTS (
		      SELECT 1 FROM rentals o
		      WHERE o.camera_id = c.id
		        AND o.rental_status = ANY($10)
		        AND o.start_date <= $4
		        AND o.end_date >= $3
		  )
		RETURNING id, created_on, updated_on`

	err := r.db.QueryRowContext(ctx, query,
		rt.CameraID, rt.CustomerID, rt.StartDate, rt.EndDate, rt.RentalStatus,
		rt.PricePerDayCents, rt.TotalPriceCents, rt.RentalDays, rt.BookingType,
		statusArray(blocking),
	).Scan(&rt.ID, &rt.CreatedOn, &rt.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNoUnitAvailable
	}
	return err
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	query := fmt.Sprintf(`SELECT %s FROM rentals WHERE id = $1`, rentalColumns)
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRentalNotFound
	}
	return rt, err
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	var shipping interface{}
	if rt.ShippingStatus != nil {
		shipping = string(*rt.ShippingStatus)
	}
	query, args, err := psql.Update("rentals").
		Set("rental_status", rt.RentalStatus).
		Set("shipping_status", shipping).
		Set("cancellation_reason", rt.CancellationReason).
		Set("rejection_reason", rt.RejectionReason).
		Set("contract_pdf_url", rt.ContractPDFURL).
		Set("price_per_day_cents", rt.PricePerDayCents).
		Set("total_price_cents", rt.TotalPriceCents).
		Set("rental_days", rt.RentalDays).
		Set("updated_on", time.Now()).
		Where(sq.Eq{"id": rt.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build rental update: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrRentalNotFound
	}
	return nil
}

func (r *rentalRepository) List(ctx context.Context, filter repository.RentalFilter) ([]domain.Rental, error) {
	b := psql.Select(rentalColumns).From("rentals").OrderBy("created_on")
	if filter.CustomerID != nil {
		b = b.Where(sq.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.CameraID != nil {
		b = b.Where(sq.Eq{"camera_id": *filter.CameraID})
	}
	if filter.Status != nil {
		b = b.Where(sq.Eq{"rental_status": *filter.Status})
	}
	if filter.From != nil {
		b = b.Where(sq.GtOrEq{"end_date": *filter.From})
	}
	if filter.To != nil {
		b = b.Where(sq.LtOrEq{"start_date": *filter.To})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build rental list: %w", err)
	}
	return r.queryRentals(ctx, query, args...)
}

func (r *rentalRepository) FindOverlapping(ctx context.Context, cameraID int64, start, end time.Time, statuses []domain.RentalStatus, excludeID int64) ([]domain.Rental, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM rentals
		WHERE camera_id = $1
		  AND id <> $2
		  AND rental_status = ANY($3)
		  AND start_date <= $5
		  AND end_date >= $4
		ORDER BY created_on`, rentalColumns)
	return r.queryRentals(ctx, query, cameraID, excludeID, statusArray(statuses), start, end)
}

func (r *rentalRepository) IsCameraAvailable(ctx context.Context, cameraID int64, start, end time.Time, blocking []domain.RentalStatus) (bool, error) {
	query := `
		SELECT NOT EXISTS (
			SELECT 1 FROM rentals
			WHERE camera_id = $1
			  AND rental_status = ANY($2)
			  AND start_date <= $4
			  AND end_date >= $3
		)`
	var available bool
	err := r.db.QueryRowContext(ctx, query, cameraID, statusArray(blocking), start, end).Scan(&available)
	return available, err
}

func (r *rentalRepository) ConfirmIfNoOverlap(ctx context.Context, rentalID int64, quote domain.Quote, blocking []domain.RentalStatus) (bool, error) {
	// The overlap guard is re-evaluated inside the UPDATE itself, so
	// a confirmation that lost a race affects zero rows instead of
	// corrupting the no-double-booking invariant.
	query := `
		UPDATE rentals AS t
		SET rental_status = 'CONFIRMED',
		    price_per_day_cents = $2,
		    total_price_cents = $3,
		    rental_days = $4,
		    updated_on = NOW()
		WHERE t.id = $1
		  AND t.rental_status = 'PENDING'
		  AND NOT EXISTS (
		      SELECT 1 FROM rentals o
		      WHERE o.camera_id = t.camera_id
		        AND o.id <> t.id
		        AND o.rental_status = ANY($5)
		        AND o.start_date <= t.end_date
		        AND o.end_date >= t.start_date
		  )`
	res, err := r.db.ExecContext(ctx, query,
		rentalID, quote.PricePerDayCents, quote.TotalPriceCents, quote.RentalDays,
		statusArray(blocking))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (r *rentalRepository) ConfirmUnchecked(ctx context.Context, rentalID int64, quote domain.Quote) (bool, error) {
	query := `
		UPDATE rentals
		SET rental_status = 'CONFIRMED',
		    price_per_day_cents = $2,
		    total_price_cents = $3,
		    rental_days = $4,
		    updated_on = NOW()
		WHERE id = $1 AND rental_status = 'PENDING'`
	res, err := r.db.ExecContext(ctx, query,
		rentalID, quote.PricePerDayCents, quote.TotalPriceCents, quote.RentalDays)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (r *rentalRepository) TransferToAvailableUnit(ctx context.Context, rentalID int64, modelName string, start, end time.Time, excludeCameraID int64, blocking []domain.RentalStatus) (int64, error) {
	query := `
		UPDATE rentals AS t
		SET camera_id = c.id, updated_on = NOW()
		FROM (
			SELECT c2.id FROM cameras c2
			WHERE c2.model_name = $2
			  AND c2.status = 'AVAILABLE'
			  AND c2.deleted_on IS NULL
			  AND c2.id <> $5
			  AND NOT EXISTS (
			      SELECT 1 FROM rentals o
			      WHERE o.camera_id = c2.id
			        AND o.id <> $1
			        AND o.rental_status = ANY($6)
			        AND o.start_date <= $4
			        AND o.end_date >= $3
			  )
			ORDER BY c2.id
			LIMIT 1
		) AS c
		WHERE t.id = $1
		RETURNING t.camera_id`
	var newCameraID int64
	err := r.db.QueryRowContext(ctx, query,
		rentalID, modelName, start, end, excludeCameraID, statusArray(blocking),
	).Scan(&newCameraID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNoUnitAvailable
	}
	return newCameraID, err
}

func (r *rentalRepository) ListPendingByModel(ctx context.Context, modelName string) ([]domain.Rental, error) {
	query := `
		SELECT ` + prefixedRentalColumns("t") + `
		FROM rentals t
		JOIN cameras c ON c.id = t.camera_id
		WHERE c.model_name = $1
		  AND t.rental_status = 'PENDING'
		ORDER BY t.created_on, t.id`
	return r.queryRentals(ctx, query, modelName)
}

func (r *rentalRepository) ScheduleOverdueReturns(ctx context.Context, asOf time.Time) ([]domain.Rental, error) {
	// Only DELIVERED rentals match, so a second sweep over the same
	// overdue rental changes nothing.
	query := fmt.Sprintf(`
		UPDATE rentals
		SET shipping_status = 'RETURN_SCHEDULED', updated_on = NOW()
		WHERE rental_status = 'ACTIVE'
		  AND shipping_status = 'DELIVERED'
		  AND end_date < $1
		RETURNING %s`, rentalColumns)
	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRentals(rows)
}

func (r *rentalRepository) DeleteCascade(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM payment_records WHERE rental_id = $1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == fkViolation {
			return fmt.Errorf("%w: %s", domain.ErrDependentRecords, pqErr.Detail)
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrRentalNotFound
	}
	return tx.Commit()
}

func (r *rentalRepository) queryRentals(ctx context.Context, query string, args ...interface{}) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRentals(rows)
}

func collectRentals(rows *sql.Rows) ([]domain.Rental, error) {
	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

func prefixedRentalColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.camera_id, %[1]s.customer_id, %[1]s.start_date, %[1]s.end_date,
	%[1]s.rental_status, %[1]s.shipping_status, %[1]s.price_per_day_cents, %[1]s.total_price_cents,
	%[1]s.rental_days, %[1]s.booking_type, %[1]s.cancellation_reason, %[1]s.rejection_reason,
	%[1]s.contract_pdf_url, %[1]s.created_on, %[1]s.updated_on`, alias)
}
