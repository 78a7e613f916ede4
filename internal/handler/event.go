package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gkiran-dev/event-booking-backend/internal/model"
)

// ListEvents handles GET /api/events
// Unauthenticated. Supports optional exact-match category and calendar-day
// date filters via query parameters.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	date := r.URL.Query().Get("date")

	events, err := h.events.List(r.Context(), category, date)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if events == nil {
		events = []model.Event{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

// GetEvent handles GET /api/events/{id}
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"event": event})
}

// CreateEvent handles POST /api/
// Admin only. bookedSeats is forced to zero server-side.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(w, r)
	if !ok {
		return
	}

	var req model.CreateEventRequest
	if err := h.decodeValid(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	event, err := h.events.Create(r.Context(), claims, req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Event created successfully.",
		"event":   event,
	})
}

// UpdateEvent handles PUT /api/events/{id}
// Admin only. Partial update: absent fields keep their stored values.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(w, r)
	if !ok {
		return
	}

	var req model.UpdateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, model.ErrValidation)
		return
	}

	event, err := h.events.Update(r.Context(), claims, chi.URLParam(r, "id"), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

// DeleteEvent handles DELETE /api/events/{id}
// Admin only. Refused while any booking references the event.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(w, r)
	if !ok {
		return
	}

	if err := h.events.Delete(r.Context(), claims, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Event deleted successfully."})
}
