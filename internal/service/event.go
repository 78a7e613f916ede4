package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gkiran-dev/event-booking-backend/internal/auth"
	"github.com/gkiran-dev/event-booking-backend/internal/model"
	"github.com/gkiran-dev/event-booking-backend/internal/repository"
)

// EventService orchestrates event catalog operations.
type EventService struct {
	events   EventStore
	bookings BookingStore
	log      zerolog.Logger
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(events EventStore, bookings BookingStore, log zerolog.Logger) *EventService {
	return &EventService{events: events, bookings: bookings, log: log}
}

// List returns events, optionally narrowed to an exact category and/or a
// calendar day. The day window runs from the parsed date through
// 23:59:59.999 of the same day, inclusive on both ends.
func (s *EventService) List(ctx context.Context, category, date string) ([]model.Event, error) {
	filter := repository.EventFilter{Category: category}

	if date != "" {
		from, err := parseEventDate(date)
		if err != nil {
			return nil, err
		}
		to := time.Date(from.Year(), from.Month(), from.Day(), 23, 59, 59, 999_000_000, from.Location())
		filter.DateFrom = &from
		filter.DateTo = &to
	}

	return s.events.List(ctx, filter)
}

// Get returns a single event by its identifier.
func (s *EventService) Get(ctx context.Context, id string) (*model.Event, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return s.events.GetByID(ctx, oid)
}

// Create stores a new event. Admin only. bookedSeats always starts at 0, no
// matter what the client supplied.
func (s *EventService) Create(ctx context.Context, claims *auth.Claims, req model.CreateEventRequest) (*model.Event, error) {
	if err := requireRole(claims, model.RoleAdmin); err != nil {
		return nil, err
	}

	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, err
	}

	event := &model.Event{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Venue:        req.Venue,
		Date:         date,
		Time:         req.Time,
		SeatCapacity: req.SeatCapacity,
		BookedSeats:  0,
		Price:        req.Price,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := s.events.Insert(ctx, event); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("event_id", event.ID.Hex()).
		Str("title", event.Title).
		Int("seat_capacity", event.SeatCapacity).
		Msg("event created")

	return event, nil
}

// Update applies a partial update. Admin only. Fields absent from the
// payload keep their stored values; present fields overwrite them, zero
// values included. seatCapacity may never drop below the seats already
// booked.
func (s *EventService) Update(ctx context.Context, claims *auth.Claims, id string, req model.UpdateEventRequest) (*model.Event, error) {
	if err := requireRole(claims, model.RoleAdmin); err != nil {
		return nil, err
	}

	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	event, err := s.events.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	newCapacity := event.SeatCapacity
	if req.SeatCapacity != nil {
		newCapacity = *req.SeatCapacity
	}
	if newCapacity < event.BookedSeats {
		return nil, fmt.Errorf("%w: seatCapacity cannot be reduced below bookedSeats", model.ErrValidation)
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.Venue != nil {
		event.Venue = *req.Venue
	}
	if req.Date != nil {
		date, err := parseEventDate(*req.Date)
		if err != nil {
			return nil, err
		}
		event.Date = date
	}
	if req.Time != nil {
		event.Time = *req.Time
	}
	event.SeatCapacity = newCapacity
	if req.BookedSeats != nil {
		event.BookedSeats = *req.BookedSeats
	}
	if req.Price != nil {
		event.Price = *req.Price
	}

	if err := s.events.Replace(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes an event. Admin only, and only while no booking references
// it.
func (s *EventService) Delete(ctx context.Context, claims *auth.Claims, id string) error {
	if err := requireRole(claims, model.RoleAdmin); err != nil {
		return err
	}

	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	if _, err := s.events.GetByID(ctx, oid); err != nil {
		return err
	}

	n, err := s.bookings.CountByEvent(ctx, oid)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: cannot delete event with existing bookings", model.ErrConflict)
	}

	if err := s.events.Delete(ctx, oid); err != nil {
		return err
	}

	s.log.Info().Str("event_id", id).Msg("event deleted")
	return nil
}
