// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gkiran-dev/event-booking-backend/internal/auth"
	"github.com/gkiran-dev/event-booking-backend/internal/model"
)

// Service interfaces consumed by the handlers. The concrete services in
// internal/service satisfy them; tests substitute fakes.

type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req model.LoginRequest) (string, error)
}

type EventService interface {
	List(ctx context.Context, category, date string) ([]model.Event, error)
	Get(ctx context.Context, id string) (*model.Event, error)
	Create(ctx context.Context, claims *auth.Claims, req model.CreateEventRequest) (*model.Event, error)
	Update(ctx context.Context, claims *auth.Claims, id string, req model.UpdateEventRequest) (*model.Event, error)
	Delete(ctx context.Context, claims *auth.Claims, id string) error
}

type BookingService interface {
	Create(ctx context.Context, claims *auth.Claims, req model.CreateBookingRequest) (*model.Booking, error)
	ListMine(ctx context.Context, claims *auth.Claims) ([]model.Booking, error)
	Get(ctx context.Context, claims *auth.Claims, id string) (*model.Booking, error)
}

// Handler holds all HTTP handlers for the event booking API.
type Handler struct {
	auth     AuthService
	events   EventService
	bookings BookingService
	validate *validator.Validate
	log      zerolog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(authSvc AuthService, events EventService, bookings BookingService, log zerolog.Logger) *Handler {
	return &Handler{
		auth:     authSvc,
		events:   events,
		bookings: bookings,
		validate: validator.New(),
		log:      log,
	}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}

// decodeValid decodes the body and runs struct-tag validation, translating
// validator failures into the validation error kind.
func (h *Handler) decodeValid(r *http.Request, dst any) error {
	if err := decodeJSON(r, dst); err != nil {
		return fmt.Errorf("%w: invalid request body", model.ErrValidation)
	}
	if err := h.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			field := strings.ToLower(fe.Field())
			if fe.Tag() == "required" {
				return fmt.Errorf("%w: %s is required", model.ErrValidation, field)
			}
			return fmt.Errorf("%w: %s is invalid", model.ErrValidation, field)
		}
		return fmt.Errorf("%w: invalid request", model.ErrValidation)
	}
	return nil
}

// respondError maps the error taxonomy to HTTP statuses. Anything outside
// the taxonomy is logged with context and collapsed to a generic 500.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrAuthentication):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, model.ErrAuthorization):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrConflict), errors.Is(err, model.ErrNoCapacity):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.log.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("internal error")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// claims pulls verified claims off the request context. The access guard
// put them there; a miss means the route was wired without the guard.
func (h *Handler) claims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "access denied: no token provided")
		return nil, false
	}
	return claims, true
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
