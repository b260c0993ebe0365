package service

import (
	"context"
	"time"

	"camrental-backend/internal/domain"
	"camrental-backend/internal/repository"
)

// SubmitBookingRequest carries everything a booking needs. Exactly one
// of ModelName and CameraID must be set: a model books any free unit
// of the pool, a camera id books that specific unit.
type SubmitBookingRequest struct {
	CustomerID  int64
	ModelName   string
	CameraID    int64
	StartDate   time.Time
	EndDate     time.Time
	BookingType domain.BookingType
}

// ResolveParams supplies strategy-specific input for conflict
// resolution. RejectRentalIDs is only read by REJECT_CONFLICTING.
type ResolveParams struct {
	RejectRentalIDs []int64
	Reason          string
}

type RentalService interface {
	SubmitBooking(ctx context.Context, actor domain.Actor, req SubmitBookingRequest) (*domain.Rental, error)
	Confirm(ctx context.Context, actor domain.Actor, rentalID int64) (*domain.Rental, error)
	ResolveConflict(ctx context.Context, actor domain.Actor, rentalID int64, strategy domain.ResolutionStrategy, params ResolveParams) (*domain.Rental, error)
	RedistributeModel(ctx context.Context, actor domain.Actor, modelName string) (*domain.RedistributionReport, error)
	Reject(ctx context.Context, actor domain.Actor, rentalID int64, reason string) (*domain.Rental, error)
	Cancel(ctx context.Context, actor domain.Actor, rentalID int64, reason string) (*domain.Rental, error)
	AdvanceShipping(ctx context.Context, actor domain.Actor, rentalID int64, event domain.ShippingEvent) (*domain.Rental, error)
	Complete(ctx context.Context, actor domain.Actor, rentalID int64) (*domain.Rental, error)
	ForceDelete(ctx context.Context, actor domain.Actor, rentalID int64) error
	GetRental(ctx context.Context, actor domain.Actor, rentalID int64) (*domain.Rental, error)
	ListRentals(ctx context.Context, actor domain.Actor, filter repository.RentalFilter) ([]domain.Rental, error)
	CameraSchedule(ctx context.Context, cameraID int64, from, to time.Time) ([]domain.Rental, error)
}

type PricingService interface {
	RentalDays(start, end time.Time) (int, error)
	Quote(ctx context.Context, cameraID int64, start, end time.Time) (*domain.Quote, error)
	AddTier(ctx context.Context, actor domain.Actor, tier *domain.PricingTier) error
}

type AvailabilityService interface {
	// IsAvailable answers for one specific unit against the canonical
	// blocking set.
	IsAvailable(ctx context.Context, cameraID int64, start, end time.Time) (bool, error)
}

type CameraService interface {
	AddCamera(ctx context.Context, actor domain.Actor, c *domain.Camera) error
	GetCamera(ctx context.Context, id int64) (*domain.Camera, error)
	ListByModel(ctx context.Context, modelName string) ([]domain.Camera, error)
	SetStatus(ctx context.Context, actor domain.Actor, cameraID int64, status domain.CameraStatus) error
}

// PaymentGateway is the external payment collaborator, invoked once at
// confirmation. It owns capture and receipts; the engine only records
// the returned reference.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, rental *domain.Rental) (reference string, err error)
}

// ContractService is the external contract-document collaborator.
type ContractService interface {
	VoidContract(ctx context.Context, rental *domain.Rental) error
}

// NotificationDispatcher delivers customer-facing notices on status
// changes. Calls are fire-and-forget: delivery failures are logged,
// never surfaced to the booking flow.
type NotificationDispatcher interface {
	BookingReceived(ctx context.Context, customer *domain.Customer, rental *domain.Rental) error
	BookingConfirmed(ctx context.Context, customer *domain.Customer, rental *domain.Rental) error
	BookingRejected(ctx context.Context, customer *domain.Customer, rental *domain.Rental) error
	BookingCancelled(ctx context.Context, customer *domain.Customer, rental *domain.Rental) error
	ShippingAdvanced(ctx context.Context, customer *domain.Customer, rental *domain.Rental) error
}
