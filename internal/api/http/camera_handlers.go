package http

import (
	"encoding/json"
	"net/http"

	"camrental-backend/internal/domain"
	"camrental-backend/internal/service"
)

type CameraHandler struct {
	cameras      service.CameraService
	pricing      service.PricingService
	availability service.AvailabilityService
	rentals      service.RentalService
}

func NewCameraHandler(cameras service.CameraService, pricing service.PricingService, availability service.AvailabilityService, rentals service.RentalService) *CameraHandler {
	return &CameraHandler{
		cameras:      cameras,
		pricing:      pricing,
		availability: availability,
		rentals:      rentals,
	}
}

type addCameraBody struct {
	ModelName    string `json:"model_name"`
	SerialNumber string `json:"serial_number"`
	Status       string `json:"status,omitempty"`
	Condition    string `json:"condition,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

func (h *CameraHandler) AddCamera(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)
	var body addCameraBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}
	camera := &domain.Camera{
		ModelName:    body.ModelName,
		SerialNumber: body.SerialNumber,
		Status:       domain.CameraStatus(body.Status),
		Condition:    domain.CameraCondition(body.Condition),
		Notes:        body.Notes,
	}
	if err := h.cameras.AddCamera(r.Context(), actor, camera); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, camera)
}

func (h *CameraHandler) GetCamera(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	camera, err := h.cameras.GetCamera(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, camera)
}

func (h *CameraHandler) ListByModel(w http.ResponseWriter, r *http.Request) {
	model := r.URL.Query().Get("model")
	if model == "" {
		writeError(w, domain.ErrInvalidInput)
		return
	}
	cameras, err := h.cameras.ListByModel(r.Context(), model)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cameras)
}

type setStatusBody struct {
	Status string `json:"status"`
}

func (h *CameraHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var body setStatusBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}
	if err := h.cameras.SetStatus(r.Context(), actor, id, domain.CameraStatus(body.Status)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type availabilityResponse struct {
	CameraID  int64  `json:"camera_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Available bool   `json:"available"`
}

func (h *CameraHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	start, err := parseDate(q.Get("start"))
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate(q.Get("end"))
	if err != nil {
		writeError(w, err)
		return
	}
	available, err := h.availability.IsAvailable(r.Context(), id, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availabilityResponse{
		CameraID:  id,
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
		Available: available,
	})
}

func (h *CameraHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	from, err := parseDate(q.Get("from"))
	if err != nil {
		writeError(w, err)
		return
	}
	to, err := parseDate(q.Get("to"))
	if err != nil {
		writeError(w, err)
		return
	}
	schedule, err := h.rentals.CameraSchedule(r.Context(), id, from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

type addTierBody struct {
	MinDays          int   `json:"min_days"`
	MaxDays          *int  `json:"max_days,omitempty"`
	PricePerDayCents int64 `json:"price_per_day_cents"`
}

func (h *CameraHandler) AddPricingTier(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var body addTierBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}
	tier := &domain.PricingTier{
		CameraID:         id,
		MinDays:          body.MinDays,
		MaxDays:          body.MaxDays,
		PricePerDayCents: body.PricePerDayCents,
	}
	if err := h.pricing.AddTier(r.Context(), actor, tier); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tier)
}
