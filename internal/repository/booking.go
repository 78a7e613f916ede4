package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gkiran-dev/event-booking-backend/internal/database"
	"github.com/gkiran-dev/event-booking-backend/internal/model"
)

// BookingRepository handles persistence for bookings.
type BookingRepository struct {
	coll *mongo.Collection
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{coll: db.Collection(database.BookingsCollection)}
}

// Insert stores a new booking and returns its generated id.
func (r *BookingRepository) Insert(ctx context.Context, b *model.Booking) (primitive.ObjectID, error) {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if b.BookingDate.IsZero() {
		b.BookingDate = time.Now().UTC()
	}

	_, err := r.coll.InsertOne(ctx, b)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert booking: %w", err)
	}
	return b.ID, nil
}

// ListByUser returns all bookings owned by the given user.
func (r *BookingRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Booking, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer cur.Close(ctx)

	var bookings []model.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

// GetByID returns a single booking or model.ErrNotFound.
func (r *BookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Booking, error) {
	var b model.Booking
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

// CountByEvent reports how many bookings reference the given event.
func (r *BookingRepository) CountByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"event": eventID})
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}
