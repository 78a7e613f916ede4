package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gkiran-dev/event-booking-backend/internal/model"
)

// CreateBooking handles POST /api/bookings
// User role only. Missing eventId/quantity is a 400 validation failure.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(w, r)
	if !ok {
		return
	}

	var req model.CreateBookingRequest
	if err := h.decodeValid(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	booking, err := h.bookings.Create(r.Context(), claims, req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Booking successful.",
		"booking": booking,
	})
}

// ListBookings handles GET /api/bookings
// Returns the bookings owned by the calling user.
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(w, r)
	if !ok {
		return
	}

	bookings, err := h.bookings.ListMine(r.Context(), claims)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if bookings == nil {
		bookings = []model.Booking{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

// GetBooking handles GET /api/bookings/{id}
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(w, r)
	if !ok {
		return
	}

	booking, err := h.bookings.Get(r.Context(), claims, chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"booking": booking})
}
