package handler

import (
	"net/http"

	"github.com/gkiran-dev/event-booking-backend/internal/model"
)

// Register handles POST /api/auth/register
// Creates a new account. The response carries the created identity and
// never includes the password in any form.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := h.decodeValid(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	user, err := h.auth.Register(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully.",
		"user":    user,
	})
}

// Login handles POST /api/auth/login
// Exchanges credentials for a signed bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := h.decodeValid(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	token, err := h.auth.Login(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
