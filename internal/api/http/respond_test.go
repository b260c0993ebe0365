package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"camrental-backend/internal/domain"
)

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"Validation", domain.ErrInvalidInput, http.StatusBadRequest, "validation"},
		{"DateRange", domain.ErrInvalidDateRange, http.StatusBadRequest, "validation"},
		{"RentalNotFound", domain.ErrRentalNotFound, http.StatusNotFound, "not_found"},
		{"CameraNotFound", domain.ErrCameraNotFound, http.StatusNotFound, "not_found"},
		{"Authorization", domain.ErrNotAuthorized, http.StatusForbidden, "authorization"},
		{"NoUnit", domain.ErrNoUnitAvailable, http.StatusUnprocessableEntity, "availability"},
		{"NoTier", domain.ErrNoPricingTier, http.StatusUnprocessableEntity, "availability"},
		{"CancellationNotAllowed", domain.ErrCancellationNotAllowed, http.StatusUnprocessableEntity, "cancellation_not_allowed"},
		{"InvalidTransition", domain.ErrInvalidTransition, http.StatusUnprocessableEntity, "invalid_transition"},
		{"DependentRecords", domain.ErrDependentRecords, http.StatusConflict, "dependent_records"},
		{"Unknown", fmt.Errorf("socket closed"), http.StatusInternalServerError, "dependency"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)
			assert.Equal(t, tc.wantStatus, rec.Code)

			var body errorResponse
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantKind, body.Kind)
		})
	}
}

func TestWriteError_WrappedErrorsStillMap(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("camera 5: %w", domain.ErrNoUnitAvailable))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestWriteError_ConflictCarriesCompetitors(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, &domain.ConflictError{
		RentalID: 10,
		CameraID: 5,
		Conflicts: []domain.Rental{
			{ID: 8, CameraID: 5, RentalStatus: domain.RentalStatusConfirmed},
		},
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	var body errorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "conflict", body.Kind)
	assert.Len(t, body.Conflicts, 1)
	assert.Equal(t, int64(8), body.Conflicts[0].ID)
}
