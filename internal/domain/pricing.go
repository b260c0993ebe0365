package domain

import "time"

// PricingTier maps a rental-duration bracket to a per-day price for
// one camera. MaxDays nil means the bracket is unbounded above. Tiers
// for a camera are assumed to cover every reachable duration (1..∞
// days); the calculator does not enforce gap-freedom.
type PricingTier struct {
	ID               int64 `json:"id"`
	CameraID         int64 `json:"camera_id"`
	MinDays          int   `json:"min_days"`
	MaxDays          *int  `json:"max_days,omitempty"`
	PricePerDayCents int64 `json:"price_per_day_cents"`
}

// Matches reports whether days falls inside the tier's bracket.
func (t *PricingTier) Matches(days int) bool {
	if days < t.MinDays {
		return false
	}
	return t.MaxDays == nil || days <= *t.MaxDays
}

// Quote is the derived pricing result for a date range. All three
// fields are computed together and never independently mutated.
type Quote struct {
	TotalPriceCents  int64 `json:"total_price_cents"`
	PricePerDayCents int64 `json:"price_per_day_cents"`
	RentalDays       int   `json:"rental_days"`
}

// PaymentRecord is the row written when the payment collaborator is
// invoked at confirmation. It blocks plain deletion of its rental.
type PaymentRecord struct {
	ID          int64     `json:"id"`
	RentalID    int64     `json:"rental_id"`
	Reference   string    `json:"reference"`
	AmountCents int64     `json:"amount_cents"`
	CreatedOn   time.Time `json:"created_on"`
}
