package domain

import "fmt"

// ResolutionStrategy is an admin's choice for resolving an overlap
// discovered at confirmation time.
type ResolutionStrategy string

const (
	// ResolveConfirmAnyway confirms on the original unit despite the
	// overlap. Explicit risk acceptance; competitors are untouched.
	ResolveConfirmAnyway ResolutionStrategy = "CONFIRM_ANYWAY"
	// ResolveTransferUnit re-allocates a different unit of the same
	// model and then confirms.
	ResolveTransferUnit ResolutionStrategy = "TRANSFER_UNIT"
	// ResolveRejectConflicting rejects the named competitors and then
	// confirms the original rental on its original unit.
	ResolveRejectConflicting ResolutionStrategy = "REJECT_CONFLICTING"
)

// ConflictError carries the set of competing rentals discovered when
// confirming a booking. It is computed, never persisted.
type ConflictError struct {
	RentalID  int64    `json:"rental_id"`
	CameraID  int64    `json:"camera_id"`
	Conflicts []Rental `json:"conflicts"`
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("rental %d conflicts with %d existing booking(s) on camera %d",
		e.RentalID, len(e.Conflicts), e.CameraID)
}

// RedistributionItem is the per-rental outcome of a bulk transfer.
// Partial success is expected; failures never abort the batch.
type RedistributionItem struct {
	RentalID    int64  `json:"rental_id"`
	OldCameraID int64  `json:"old_camera_id"`
	NewCameraID int64  `json:"new_camera_id,omitempty"`
	Transferred bool   `json:"transferred"`
	Confirmed   bool   `json:"confirmed"`
	Error       string `json:"error,omitempty"`
}

type RedistributionReport struct {
	ModelName string               `json:"model_name"`
	Items     []RedistributionItem `json:"items"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
}
