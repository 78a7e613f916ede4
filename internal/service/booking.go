package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gkiran-dev/event-booking-backend/internal/auth"
	"github.com/gkiran-dev/event-booking-backend/internal/model"
)

// BookingService orchestrates seat booking against the capacity invariant.
type BookingService struct {
	bookings BookingStore
	events   EventStore
	log      zerolog.Logger

	// legacyWrites restores the old non-atomic insert-then-save
	// sequence. Kept for compatibility testing; the default path reserves
	// seats with one conditional update.
	legacyWrites bool
}

// NewBookingService constructs a BookingService.
func NewBookingService(bookings BookingStore, events EventStore, legacyWrites bool, log zerolog.Logger) *BookingService {
	return &BookingService{
		bookings:     bookings,
		events:       events,
		legacyWrites: legacyWrites,
		log:          log,
	}
}

// Create books quantity seats on an event for the calling user. Only the
// "user" role may book. The request fails when the event is unknown or when
// fewer than quantity seats remain.
func (s *BookingService) Create(ctx context.Context, claims *auth.Claims, req model.CreateBookingRequest) (*model.Booking, error) {
	if err := requireRole(claims, model.RoleUser); err != nil {
		return nil, err
	}

	userID, err := parseObjectID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed subject in token", model.ErrAuthentication)
	}

	eventID, err := parseObjectID(req.EventID)
	if err != nil {
		return nil, err
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.Available() < req.Quantity {
		return nil, fmt.Errorf("%w: %d requested, %d available", model.ErrNoCapacity, req.Quantity, event.Available())
	}

	booking := &model.Booking{
		UserID:      userID,
		EventID:     eventID,
		Quantity:    req.Quantity,
		BookingDate: time.Now().UTC(),
	}

	if s.legacyWrites {
		err = s.createLegacy(ctx, event, booking)
	} else {
		err = s.createAtomic(ctx, booking)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("booking_id", booking.ID.Hex()).
		Str("event_id", req.EventID).
		Str("user_id", claims.UserID).
		Int("quantity", req.Quantity).
		Msg("booking created")

	return booking, nil
}

// createAtomic reserves the seats first, as a single conditional increment
// that cannot exceed seatCapacity, then records the booking. If the booking
// insert fails the reservation is released again.
func (s *BookingService) createAtomic(ctx context.Context, booking *model.Booking) error {
	if err := s.events.ReserveSeats(ctx, booking.EventID, booking.Quantity); err != nil {
		return err
	}

	if _, err := s.bookings.Insert(ctx, booking); err != nil {
		if relErr := s.events.ReleaseSeats(ctx, booking.EventID, booking.Quantity); relErr != nil {
			s.log.Error().Err(relErr).
				Str("event_id", booking.EventID.Hex()).
				Msg("failed to release seats after booking insert error")
		}
		return err
	}
	return nil
}

// createLegacy performs two independent writes: insert the booking, then
// save the event with the incremented counter. The capacity
// check above ran against a possibly stale read, so concurrent bookings can
// overbook an event on this path.
func (s *BookingService) createLegacy(ctx context.Context, event *model.Event, booking *model.Booking) error {
	if _, err := s.bookings.Insert(ctx, booking); err != nil {
		return err
	}

	event.BookedSeats += booking.Quantity
	if err := s.events.Replace(ctx, event); err != nil {
		return err
	}
	return nil
}

// ListMine returns all bookings owned by the calling user.
func (s *BookingService) ListMine(ctx context.Context, claims *auth.Claims) ([]model.Booking, error) {
	userID, err := parseObjectID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed subject in token", model.ErrAuthentication)
	}
	return s.bookings.ListByUser(ctx, userID)
}

// Get returns a single booking by id. Only the "user" role may call this.
// Ownership is deliberately not checked: any authenticated user can fetch
// any booking by id.
func (s *BookingService) Get(ctx context.Context, claims *auth.Claims, id string) (*model.Booking, error) {
	if err := requireRole(claims, model.RoleUser); err != nil {
		return nil, err
	}

	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, oid)
}
