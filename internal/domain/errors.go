package domain

import "errors"

// Every expected business failure is a distinct error kind so callers
// can branch with errors.Is and map each to an actionable message.
// ConflictError (conflict.go) is the one structured kind, since it
// carries the competing rentals.
var (
	// ErrInvalidDateRange is returned when end_date precedes start_date.
	ErrInvalidDateRange = errors.New("end date must not be before start date")

	// ErrInvalidInput is returned for malformed or missing request fields.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrRentalNotFound is returned when no rental has the given id.
	ErrRentalNotFound = errors.New("rental not found")

	// ErrCameraNotFound is returned when no camera has the given id.
	ErrCameraNotFound = errors.New("camera not found")

	// ErrCustomerNotFound is returned when no customer has the given id.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrNotAuthorized is returned when the actor neither owns nor
	// administers the target rental.
	ErrNotAuthorized = errors.New("actor is not allowed to act on this rental")

	// ErrNoUnitAvailable is returned when the model pool has no unit
	// free for the requested range.
	ErrNoUnitAvailable = errors.New("no unit of this model is available for the requested dates")

	// ErrNoPricingTier is returned when no tier bracket covers the
	// rental duration.
	ErrNoPricingTier = errors.New("no pricing tier covers the rental duration")

	// ErrCancellationNotAllowed is returned when a customer cancels a
	// confirmed rental whose unit has progressed past READY_TO_SHIP.
	ErrCancellationNotAllowed = errors.New("cancellation not allowed: unit already in transit")

	// ErrDependentRecords is returned when deletion is blocked by
	// dependent payment or extension records.
	ErrDependentRecords = errors.New("rental has dependent records that could not be removed")

	// ErrInvalidTransition is returned for a lifecycle or shipping
	// transition the state machines do not permit.
	ErrInvalidTransition = errors.New("transition not permitted from current status")
)
