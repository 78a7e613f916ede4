// Package model defines the core domain types for the event booking system.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Every account is one or the other; admins manage the event
// catalog, users create bookings.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account. The password is stored bcrypt-hashed and is
// never serialized into a response.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Event represents a bookable event created by an admin.
type Event struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Category     string             `bson:"category,omitempty" json:"category,omitempty"`
	Venue        string             `bson:"venue,omitempty" json:"venue,omitempty"`
	Date         time.Time          `bson:"date" json:"date"`
	Time         string             `bson:"time,omitempty" json:"time,omitempty"`
	SeatCapacity int                `bson:"seatCapacity" json:"seatCapacity"`
	BookedSeats  int                `bson:"bookedSeats" json:"bookedSeats"`
	Price        float64            `bson:"price" json:"price"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// Available returns the number of seats still open for booking.
func (e *Event) Available() int {
	return e.SeatCapacity - e.BookedSeats
}

// IsFull returns true when no seats remain.
func (e *Event) IsFull() bool {
	return e.BookedSeats >= e.SeatCapacity
}

// Booking records a user reserving seats on an event.
// QRCode exists in the stored schema but no handler populates it.
type Booking struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user" json:"user"`
	EventID     primitive.ObjectID `bson:"event" json:"event"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	BookingDate time.Time          `bson:"bookingDate" json:"bookingDate"`
	QRCode      string             `bson:"qrCode,omitempty" json:"qrCode,omitempty"`
}

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

// LoginRequest is the payload for exchanging credentials for a token.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateEventRequest is the payload for creating a new event.
// Dates are accepted as RFC 3339 or plain YYYY-MM-DD strings.
type CreateEventRequest struct {
	Title        string  `json:"title" validate:"required"`
	Description  string  `json:"description" validate:"required"`
	Category     string  `json:"category"`
	Venue        string  `json:"venue"`
	Date         string  `json:"date" validate:"required"`
	Time         string  `json:"time"`
	SeatCapacity int     `json:"seatCapacity" validate:"required,gt=0"`
	Price        float64 `json:"price" validate:"required"`

	// BookedSeats is accepted in the payload but ignored: new events always
	// start with zero booked seats.
	BookedSeats int `json:"bookedSeats"`
}

// UpdateEventRequest carries a partial event update. Pointer fields
// distinguish "absent" from a legitimate zero value, so a client can set
// price or seatCapacity to 0 explicitly.
type UpdateEventRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category"`
	Venue        *string  `json:"venue"`
	Date         *string  `json:"date"`
	Time         *string  `json:"time"`
	SeatCapacity *int     `json:"seatCapacity"`
	BookedSeats  *int     `json:"bookedSeats"`
	Price        *float64 `json:"price"`
}

// CreateBookingRequest is the payload for booking seats on an event.
type CreateBookingRequest struct {
	EventID  string `json:"eventId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
