// Package service implements business logic, role checks, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gkiran-dev/event-booking-backend/internal/auth"
	"github.com/gkiran-dev/event-booking-backend/internal/model"
	"github.com/gkiran-dev/event-booking-backend/internal/repository"
)

// Storage interfaces consumed by the services. The Mongo repositories
// satisfy them; tests substitute in-memory fakes.

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Insert(ctx context.Context, u *model.User) (primitive.ObjectID, error)
}

type EventStore interface {
	List(ctx context.Context, f repository.EventFilter) ([]model.Event, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Event, error)
	Insert(ctx context.Context, e *model.Event) (primitive.ObjectID, error)
	Replace(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ReserveSeats(ctx context.Context, id primitive.ObjectID, quantity int) error
	ReleaseSeats(ctx context.Context, id primitive.ObjectID, quantity int) error
}

type BookingStore interface {
	Insert(ctx context.Context, b *model.Booking) (primitive.ObjectID, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Booking, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Booking, error)
	CountByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error)
}

// parseObjectID validates a client-supplied entity identifier before any
// lookup touches the store.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id", model.ErrValidation)
	}
	return oid, nil
}

// parseEventDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
func parseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", model.ErrValidation, s)
	}
	return t.UTC(), nil
}

// requireRole is the single authorization step run by every protected
// operation after the access guard has verified identity.
func requireRole(claims *auth.Claims, role string) error {
	if claims == nil || claims.Role != role {
		return fmt.Errorf("%w: %s role required", model.ErrAuthorization, role)
	}
	return nil
}
