package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"camrental-backend/internal/domain"
	"camrental-backend/internal/repository"
	"camrental-backend/internal/service"
)

type RentalHandler struct {
	rentals service.RentalService
}

func NewRentalHandler(rentals service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

const dateLayout = "2006-01-02"

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return id, nil
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return t, nil
}

type submitBookingBody struct {
	CustomerID  int64  `json:"customer_id"`
	ModelName   string `json:"model_name,omitempty"`
	CameraID    int64  `json:"camera_id,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	BookingType string `json:"booking_type,omitempty"`
}

func (h *RentalHandler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)
	var body submitBookingBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}
	start, err := parseDate(body.StartDate)
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate(body.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.rentals.SubmitBooking(r.Context(), actor, service.SubmitBookingRequest{
		CustomerID:  body.CustomerID,
		ModelName:   body.ModelName,
		CameraID:    body.CameraID,
		StartDate:   start,
		EndDate:     end,
		BookingType: domain.BookingType(body.BookingType),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.rentals.GetRental(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)
	var filter repository.RentalFilter

	q := r.URL.Query()
	if raw := q.Get("customer_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, domain.ErrInvalidInput)
			return
		}
		filter.CustomerID = &id
	}
	if raw := q.Get("camera_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, domain.ErrInvalidInput)
			return
		}
		filter.CameraID = &id
	}
	if raw := q.Get("status"); raw != "" {
		status := domain.RentalStatus(raw)
		filter.Status = &status
	}
	if raw := q.Get("from"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		filter.From = &t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		filter.To = &t
	}

	rentals, err := h.rentals.ListRentals(r.Context(), actor, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.rentals.Confirm(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

type resolveBody struct {
	Strategy        string  `json:"strategy"`
	RejectRentalIDs []int64 `json:"reject_rental_ids,omitempty"`
	Reason          string  `json:"reason,omitempty"`
}

func (h *RentalHandler) ResolveConflict(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var body resolveBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}
	rental, err := h.rentals.ResolveConflict(r.Context(), actor, id,
		domain.ResolutionStrategy(body.Strategy),
		service.ResolveParams{RejectRentalIDs: body.RejectRentalIDs, Reason: body.Reason})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

type reasonBody struct {
	Reason string `json:"reason"`
}

func (h *RentalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var body reasonBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}
	rental, err := h.rentals.Reject(r.Context(), actor, id, body.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var body reasonBody
	// Reason is optional for cancellations.
	_ = json.NewDecoder(r.Body).Decode(&body)
	rental, err := h.rentals.Cancel(r.Context(), actor, id, body.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

type shippingBody struct {
	Event string `json:"event"`
}

func (h *RentalHandler) AdvanceShipping(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var body shippingBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}
	rental, err := h.rentals.AdvanceShipping(r.Context(), actor, id, domain.ShippingEvent(body.Event))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.rentals.Complete(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) ForceDelete(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.rentals.ForceDelete(r.Context(), actor, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *RentalHandler) RedistributeModel(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)
	model := mux.Vars(r)["model"]
	if model == "" {
		writeError(w, domain.ErrInvalidInput)
		return
	}
	report, err := h.rentals.RedistributeModel(r.Context(), actor, model)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
