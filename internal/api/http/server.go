package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"camrental-backend/internal/metrics"
	"camrental-backend/internal/security"
)

// NewRouter wires every API route. All /api/v1 routes require a valid
// bearer token; /healthz and /metrics are open.
func NewRouter(rentals *RentalHandler, cameras *CameraHandler, tokens security.TokenManager, metricsEnabled bool) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	if metricsEnabled {
		r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(LoggingMiddleware)
	api.Use(AuthMiddleware(tokens))
	api.Use(func(next http.Handler) http.Handler {
		return metrics.HTTPMiddleware("api", next)
	})

	// Rentals
	api.HandleFunc("/rentals", rentals.SubmitBooking).Methods(http.MethodPost)
	api.HandleFunc("/rentals", rentals.ListRentals).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}", rentals.GetRental).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}", rentals.ForceDelete).Methods(http.MethodDelete)
	api.HandleFunc("/rentals/{id}/confirm", rentals.Confirm).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/resolve", rentals.ResolveConflict).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/reject", rentals.Reject).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/cancel", rentals.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/shipping", rentals.AdvanceShipping).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/complete", rentals.Complete).Methods(http.MethodPost)

	// Model pools
	api.HandleFunc("/models/{model}/redistribute", rentals.RedistributeModel).Methods(http.MethodPost)

	// Cameras
	api.HandleFunc("/cameras", cameras.AddCamera).Methods(http.MethodPost)
	api.HandleFunc("/cameras", cameras.ListByModel).Methods(http.MethodGet)
	api.HandleFunc("/cameras/{id}", cameras.GetCamera).Methods(http.MethodGet)
	api.HandleFunc("/cameras/{id}/status", cameras.SetStatus).Methods(http.MethodPatch)
	api.HandleFunc("/cameras/{id}/availability", cameras.CheckAvailability).Methods(http.MethodGet)
	api.HandleFunc("/cameras/{id}/schedule", cameras.Schedule).Methods(http.MethodGet)
	api.HandleFunc("/cameras/{id}/pricing-tiers", cameras.AddPricingTier).Methods(http.MethodPost)

	return r
}
