package repository

import (
	"context"
	"time"

	"camrental-backend/internal/domain"
)

// RentalFilter narrows rental listings. Nil fields are ignored.
type RentalFilter struct {
	CustomerID *int64
	CameraID   *int64
	Status     *domain.RentalStatus
	From       *time.Time
	To         *time.Time
}

type RentalRepository interface {
	// CreateAllocated atomically picks the lowest-id camera of the
	// model with no overlap against the blocking statuses and inserts
	// the rental on it, in one statement. Fills r.ID and r.CameraID.
	// Returns domain.ErrNoUnitAvailable when the pool is exhausted.
	CreateAllocated(ctx context.Context, modelName string, r *domain.Rental, blocking []domain.RentalStatus) error

	// CreateOnCamera inserts the rental on the requested camera only
	// if that camera has no overlap against the blocking statuses, in
	// one statement. Returns domain.ErrNoUnitAvailable otherwise.
	CreateOnCamera(ctx context.Context, r *domain.Rental, blocking []domain.RentalStatus) error

	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	Update(ctx context.Context, r *domain.Rental) error
	List(ctx context.Context, filter RentalFilter) ([]domain.Rental, error)

	// FindOverlapping returns rentals on the camera whose inclusive
	// date range overlaps [start, end] and whose status is in
	// statuses, excluding excludeID.
	FindOverlapping(ctx context.Context, cameraID int64, start, end time.Time, statuses []domain.RentalStatus, excludeID int64) ([]domain.Rental, error)

	// IsCameraAvailable answers availability in a single SELECT NOT
	// EXISTS, never by client-side filtering.
	IsCameraAvailable(ctx context.Context, cameraID int64, start, end time.Time, blocking []domain.RentalStatus) (bool, error)

	// ConfirmIfNoOverlap flips a PENDING rental to CONFIRMED and
	// freezes the quote, guarded by a commit-time re-check that no
	// blocking overlap exists on its camera. Returns false when the
	// guard (or the PENDING precondition) fails.
	ConfirmIfNoOverlap(ctx context.Context, rentalID int64, quote domain.Quote, blocking []domain.RentalStatus) (bool, error)

	// ConfirmUnchecked flips a PENDING rental to CONFIRMED without
	// the overlap guard. Used only for explicit risk acceptance.
	ConfirmUnchecked(ctx context.Context, rentalID int64, quote domain.Quote) (bool, error)

	// TransferToAvailableUnit atomically reassigns the rental to the
	// lowest-id free camera of the model, excluding its current unit,
	// in one statement. Returns the new camera id or
	// domain.ErrNoUnitAvailable.
	TransferToAvailableUnit(ctx context.Context, rentalID int64, modelName string, start, end time.Time, excludeCameraID int64, blocking []domain.RentalStatus) (int64, error)

	// ListPendingByModel returns pending rentals on cameras of the
	// model in creation order (first come, first served).
	ListPendingByModel(ctx context.Context, modelName string) ([]domain.Rental, error)

	// ScheduleOverdueReturns moves every ACTIVE rental past its end
	// date and shipped (DELIVERED) into RETURN_SCHEDULED with one
	// UPDATE ... RETURNING. Idempotent: already-scheduled rentals are
	// not touched again.
	ScheduleOverdueReturns(ctx context.Context, asOf time.Time) ([]domain.Rental, error)

	// DeleteCascade removes the rental and its dependent payment
	// records in one transaction. A surviving foreign-key violation
	// surfaces as domain.ErrDependentRecords.
	DeleteCascade(ctx context.Context, id int64) error
}

type CameraRepository interface {
	Create(ctx context.Context, c *domain.Camera) error
	GetByID(ctx context.Context, id int64) (*domain.Camera, error)
	Update(ctx context.Context, c *domain.Camera) error
	ListByModel(ctx context.Context, modelName string) ([]domain.Camera, error)
}

type PricingTierRepository interface {
	Create(ctx context.Context, t *domain.PricingTier) error
	// ListByCamera returns the camera's tiers ordered by min_days.
	ListByCamera(ctx context.Context, cameraID int64) ([]domain.PricingTier, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.PaymentRecord) error
	ListByRental(ctx context.Context, rentalID int64) ([]domain.PaymentRecord, error)
}
