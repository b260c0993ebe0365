package domain

import "time"

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "PENDING"
	RentalStatusConfirmed RentalStatus = "CONFIRMED"
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
	RentalStatusRejected  RentalStatus = "REJECTED"
)

type BookingType string

const (
	BookingTypeSelfService BookingType = "SELF_SERVICE"
	BookingTypeStaff       BookingType = "STAFF"
)

// BlockingStatuses is the canonical set of rental statuses that occupy
// a camera for allocation and availability decisions.
var BlockingStatuses = []RentalStatus{RentalStatusConfirmed, RentalStatusActive}

// ConflictStatuses is the wider set used at confirmation time: a
// pending competitor on the same unit is worth surfacing even though
// it does not block allocation.
var ConflictStatuses = []RentalStatus{RentalStatusPending, RentalStatusConfirmed}

// CalendarStatuses is the widest set, used for "anything going on"
// schedule views, never for allocation.
var CalendarStatuses = []RentalStatus{
	RentalStatusPending,
	RentalStatusConfirmed,
	RentalStatusActive,
}

type Rental struct {
	ID             int64           `json:"id"`
	CameraID       int64           `json:"camera_id"`
	CustomerID     int64           `json:"customer_id"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	RentalStatus   RentalStatus    `json:"rental_status"`
	ShippingStatus *ShippingStatus `json:"shipping_status,omitempty"`
	// Price snapshot fields, frozen when the rental leaves PENDING.
	PricePerDayCents   int64       `json:"price_per_day_cents"`
	TotalPriceCents    int64       `json:"total_price_cents"`
	RentalDays         int         `json:"rental_days"`
	BookingType        BookingType `json:"booking_type"`
	CancellationReason *string     `json:"cancellation_reason,omitempty"`
	RejectionReason    *string     `json:"rejection_reason,omitempty"`
	ContractPDFURL     *string     `json:"contract_pdf_url,omitempty"`
	CreatedOn          time.Time   `json:"created_on"`
	UpdatedOn          time.Time   `json:"updated_on"`
}

// rentalTransitions is the commercial lifecycle table. Terminal states
// have no entries.
var rentalTransitions = map[RentalStatus][]RentalStatus{
	RentalStatusPending:   {RentalStatusConfirmed, RentalStatusRejected, RentalStatusCancelled},
	RentalStatusConfirmed: {RentalStatusActive, RentalStatusCancelled},
	RentalStatusActive:    {RentalStatusCompleted},
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s RentalStatus) CanTransitionTo(next RentalStatus) bool {
	for _, allowed := range rentalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s admits no further transitions.
func (s RentalStatus) IsTerminal() bool {
	return len(rentalTransitions[s]) == 0
}

// Overlaps applies the inclusive-day overlap rule: two ranges overlap
// iff each starts no later than the other ends. The same rule backs
// availability checks, conflict detection and calendar views.
func (r *Rental) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !start.After(r.EndDate)
}

// IsPriceFrozen reports whether the price snapshot may no longer change.
func (r *Rental) IsPriceFrozen() bool {
	return r.RentalStatus != RentalStatusPending
}

// CustomerCanCancel reports whether a customer-initiated cancellation
// is still allowed. Once the unit has progressed past READY_TO_SHIP
// the camera is physically in motion and only staff can intervene.
func (r *Rental) CustomerCanCancel() bool {
	if r.RentalStatus != RentalStatusPending && r.RentalStatus != RentalStatusConfirmed {
		return false
	}
	if r.ShippingStatus == nil {
		return true
	}
	return *r.ShippingStatus == ShippingStatusReadyToShip
}

// AdminCanCancel reports whether staff may cancel the rental.
func (r *Rental) AdminCanCancel() bool {
	return r.RentalStatus == RentalStatusPending || r.RentalStatus == RentalStatusConfirmed
}
