package service

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gkiran-dev/event-booking-backend/internal/model"
	"github.com/gkiran-dev/event-booking-backend/internal/repository"
)

// In-memory stores standing in for the Mongo repositories. They implement
// the same filter and conditional-update semantics so the capacity
// invariant can be exercised without a database.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) Insert(_ context.Context, u *model.User) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Email]; ok {
		return primitive.NilObjectID, fmt.Errorf("%w: user already exists", model.ErrConflict)
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	s.users[u.Email] = &cp
	return u.ID, nil
}

type fakeEventStore struct {
	mu     sync.Mutex
	events map[primitive.ObjectID]*model.Event

	// readBarrier, when set, blocks GetByID until every participant has
	// read, forcing concurrent bookings onto the same stale snapshot.
	readBarrier *sync.WaitGroup
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[primitive.ObjectID]*model.Event)}
}

func (s *fakeEventStore) List(_ context.Context, f repository.EventFilter) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Event
	for _, e := range s.events {
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if f.DateFrom != nil && e.Date.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && e.Date.After(*f.DateTo) {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (s *fakeEventStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.Event, error) {
	s.mu.Lock()
	e, ok := s.events[id]
	var cp model.Event
	if ok {
		cp = *e
	}
	s.mu.Unlock()

	if !ok {
		return nil, model.ErrNotFound
	}
	if s.readBarrier != nil {
		s.readBarrier.Done()
		s.readBarrier.Wait()
	}
	return &cp, nil
}

func (s *fakeEventStore) Insert(_ context.Context, e *model.Event) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	cp := *e
	s.events[e.ID] = &cp
	return e.ID, nil
}

func (s *fakeEventStore) Replace(_ context.Context, e *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[e.ID]; !ok {
		return model.ErrNotFound
	}
	cp := *e
	s.events[e.ID] = &cp
	return nil
}

func (s *fakeEventStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.events, id)
	return nil
}

func (s *fakeEventStore) ReserveSeats(_ context.Context, id primitive.ObjectID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return model.ErrNotFound
	}
	if e.BookedSeats+quantity > e.SeatCapacity {
		return fmt.Errorf("%w for this event", model.ErrNoCapacity)
	}
	e.BookedSeats += quantity
	return nil
}

func (s *fakeEventStore) ReleaseSeats(_ context.Context, id primitive.ObjectID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.events[id]; ok {
		e.BookedSeats -= quantity
	}
	return nil
}

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]*model.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[primitive.ObjectID]*model.Booking)}
}

func (s *fakeBookingStore) Insert(_ context.Context, b *model.Booking) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	cp := *b
	s.bookings[b.ID] = &cp
	return b.ID, nil
}

func (s *fakeBookingStore) ListByUser(_ context.Context, userID primitive.ObjectID) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Booking
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeBookingStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *fakeBookingStore) CountByEvent(_ context.Context, eventID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, b := range s.bookings {
		if b.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (s *fakeBookingStore) all() []model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Booking
	for _, b := range s.bookings {
		out = append(out, *b)
	}
	return out
}
