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

// UserRepository handles persistence for users.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(database.UsersCollection)}
}

// FindByEmail returns the user with the given email or model.ErrNotFound.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

// Insert stores a new user and returns its generated id. A duplicate email
// surfaces as model.ErrConflict; the unique index catches the race two
// concurrent registrations can win against the existence pre-check.
func (r *UserRepository) Insert(ctx context.Context, u *model.User) (primitive.ObjectID, error) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	_, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, fmt.Errorf("%w: user already exists", model.ErrConflict)
		}
		return primitive.NilObjectID, fmt.Errorf("insert user: %w", err)
	}
	return u.ID, nil
}
