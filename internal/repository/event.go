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

// EventRepository handles persistence for events.
type EventRepository struct {
	coll *mongo.Collection
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection(database.EventsCollection)}
}

// List returns events matching the filter in store order.
func (r *EventRepository) List(ctx context.Context, f EventFilter) ([]model.Event, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.DateFrom != nil && f.DateTo != nil {
		filter["date"] = bson.M{"$gte": *f.DateFrom, "$lte": *f.DateTo}
	}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	var events []model.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

// GetByID returns a single event or model.ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Event, error) {
	var e model.Event
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

// Insert stores a new event and returns its generated id.
func (r *EventRepository) Insert(ctx context.Context, e *model.Event) (primitive.ObjectID, error) {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := r.coll.InsertOne(ctx, e)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert event: %w", err)
	}
	return e.ID, nil
}

// Replace overwrites the stored event document with e (save semantics).
func (r *EventRepository) Replace(ctx context.Context, e *model.Event) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if err != nil {
		return fmt.Errorf("replace event: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete removes an event by id.
func (r *EventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ReserveSeats increments bookedSeats by quantity as a single conditional
// update: the increment only applies while the resulting count stays within
// seatCapacity, so two concurrent bookings can never jointly overbook.
func (r *EventRepository) ReserveSeats(ctx context.Context, id primitive.ObjectID, quantity int) error {
	filter := bson.M{
		"_id": id,
		"$expr": bson.M{
			"$lte": bson.A{
				bson.M{"$add": bson.A{"$bookedSeats", quantity}},
				"$seatCapacity",
			},
		},
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"bookedSeats": quantity}})
	if err != nil {
		return fmt.Errorf("reserve seats: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w for this event", model.ErrNoCapacity)
	}
	return nil
}

// ReleaseSeats undoes a reservation when the follow-up booking insert fails.
func (r *EventRepository) ReleaseSeats(ctx context.Context, id primitive.ObjectID, quantity int) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"bookedSeats": -quantity}})
	if err != nil {
		return fmt.Errorf("release seats: %w", err)
	}
	return nil
}
