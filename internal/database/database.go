// Package database provides MongoDB connection management using the official
// driver.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gkiran-dev/event-booking-backend/internal/config"
)

// Collection names. Three independent collections hold the whole data model.
const (
	UsersCollection    = "users"
	EventsCollection   = "events"
	BookingsCollection = "bookings"
)

// Connect dials MongoDB and returns a handle on the configured database.
// It retries up to 5 times to accommodate containers starting up.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetServerSelectionTimeout(5 * time.Second)

	var client *mongo.Client
	var err error
	for attempt := 1; attempt <= 5; attempt++ {
		client, err = mongo.Connect(ctx, opts)
		if err == nil {
			if pingErr := client.Ping(ctx, nil); pingErr == nil {
				break
			} else {
				err = pingErr
			}
			_ = client.Disconnect(ctx)
		}
		if attempt < 5 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	return client.Database(cfg.Name), nil
}

// EnsureIndexes creates the indexes the handlers rely on: the unique email
// index backs duplicate-registration detection even under concurrent
// registrations.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ensure users.email index: %w", err)
	}

	_, err = db.Collection(BookingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("ensure bookings.user index: %w", err)
	}

	return nil
}
