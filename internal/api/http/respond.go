package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"camrental-backend/internal/domain"
	"camrental-backend/internal/logger"
)

type errorResponse struct {
	Error     string          `json:"error"`
	Kind      string          `json:"kind"`
	Conflicts []domain.Rental `json:"conflicts,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto HTTP statuses. A ConflictError
// becomes 409 with the full competitor set in the body so an admin
// client can render resolution choices.
func writeError(w http.ResponseWriter, err error) {
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:     conflict.Error(),
			Kind:      "conflict",
			Conflicts: conflict.Conflicts,
		})
		return
	}

	status := http.StatusInternalServerError
	kind := "dependency"
	switch {
	case errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidInput):
		status, kind = http.StatusBadRequest, "validation"
	case errors.Is(err, domain.ErrRentalNotFound),
		errors.Is(err, domain.ErrCameraNotFound),
		errors.Is(err, domain.ErrCustomerNotFound):
		status, kind = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrNotAuthorized):
		status, kind = http.StatusForbidden, "authorization"
	case errors.Is(err, domain.ErrNoUnitAvailable),
		errors.Is(err, domain.ErrNoPricingTier):
		status, kind = http.StatusUnprocessableEntity, "availability"
	case errors.Is(err, domain.ErrCancellationNotAllowed):
		status, kind = http.StatusUnprocessableEntity, "cancellation_not_allowed"
	case errors.Is(err, domain.ErrInvalidTransition):
		status, kind = http.StatusUnprocessableEntity, "invalid_transition"
	case errors.Is(err, domain.ErrDependentRecords):
		status, kind = http.StatusConflict, "dependent_records"
	default:
		logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}
