// Package orders owns the order list and the user profile: the durable
// record of everything the user has booked. Both live in memory and are
// written through to the persistent store after every mutation, then
// restored verbatim at startup.
package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"travio-api/internal/kvstore"
	"travio-api/internal/model"
)

// AddOrderInput is the caller-supplied portion of a new order. Identifier
// and status are assigned by the store.
type AddOrderInput struct {
	Kind         model.OrderKind
	Title        string
	Subtitle     string
	PricePerUnit float64
	TotalPrice   float64
	DateRange    string
	DurationInfo string
	Image        string
}

// Store holds the order list (most-recent-first) and the user profile.
// Mutations are serialized by an internal mutex; reads return snapshots.
// A persistence failure never fails the booking action, it only loses
// durability and is logged.
type Store struct {
	mu     sync.RWMutex
	kv     kvstore.Store
	orders []model.Order
	user   model.UserProfile
	subs   []func()

	now func() time.Time
}

// New constructs the store and restores state from the persistent store.
// A missing or unreadable value initializes orders empty and the profile
// to the seeded default.
func New(ctx context.Context, kv kvstore.Store) *Store {
	s := &Store{
		kv:   kv,
		user: model.DefaultProfile(),
		now:  time.Now,
	}

	if data, err := kv.Get(ctx, kvstore.KeyOrders); err == nil {
		if err := json.Unmarshal(data, &s.orders); err != nil {
			log.Printf("[OrderStore] Discarding unreadable order list: %v", err)
			s.orders = nil
		}
	} else if !errors.Is(err, kvstore.ErrNotFound) {
		log.Printf("[OrderStore] Failed to restore orders: %v", err)
	}

	if data, err := kv.Get(ctx, kvstore.KeyUser); err == nil {
		var user model.UserProfile
		if err := json.Unmarshal(data, &user); err != nil {
			log.Printf("[OrderStore] Discarding unreadable profile: %v", err)
		} else {
			s.user = user
		}
	} else if !errors.Is(err, kvstore.ErrNotFound) {
		log.Printf("[OrderStore] Failed to restore profile: %v", err)
	}

	log.Printf("[OrderStore] Restored %d orders for %s", len(s.orders), s.user.Name)
	return s
}

// Subscribe registers fn to be called after every mutation to either the
// order list or the profile. Subscribers observe orders and profile as one
// consistency domain.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Orders returns a snapshot of the order list, most recent first.
func (s *Store) Orders() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]model.Order, len(s.orders))
	copy(snapshot, s.orders)
	return snapshot
}

// User returns a snapshot of the user profile.
func (s *Store) User() model.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// AddOrder records a new booking. The order starts pending, is prepended
// to the list, and is persisted before the call returns.
func (s *Store) AddOrder(ctx context.Context, input AddOrderInput) model.Order {
	s.mu.Lock()

	order := model.Order{
		ID: newOrderRef(s.now(), func(ref string) bool {
			for _, existing := range s.orders {
				if existing.ID == ref {
					return true
				}
			}
			return false
		}),
		Kind:         input.Kind,
		Title:        input.Title,
		Subtitle:     input.Subtitle,
		PricePerUnit: input.PricePerUnit,
		TotalPrice:   input.TotalPrice,
		DateRange:    input.DateRange,
		DurationInfo: input.DurationInfo,
		Status:       model.OrderStatusPending,
		Image:        input.Image,
	}

	s.orders = append([]model.Order{order}, s.orders...)
	s.persistOrders(ctx)
	s.mu.Unlock()

	s.notify()
	return order
}

// UpdateOrderStatus replaces the status of the order with the given id.
// An unknown id is a logged no-op, reported through the return value. The
// payment flow is a status transition only, so this never fails.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) bool {
	s.mu.Lock()

	found := false
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			found = true
			break
		}
	}

	if !found {
		s.mu.Unlock()
		log.Printf("[OrderStore] Ignoring status update for unknown order %q", id)
		return false
	}

	s.persistOrders(ctx)
	s.mu.Unlock()

	s.notify()
	return true
}

// UpdateUserProfile replaces the profile name and email. The avatar is
// always re-derived from the new name; it is never set independently.
func (s *Store) UpdateUserProfile(ctx context.Context, name, email string) model.UserProfile {
	s.mu.Lock()

	s.user.Name = name
	s.user.Email = email
	s.user.Avatar = model.AvatarURL(name)
	updated := s.user
	s.persistUser(ctx)
	s.mu.Unlock()

	s.notify()
	return updated
}

// persistOrders writes the full current order list through to the store.
// Caller must hold the write lock.
func (s *Store) persistOrders(ctx context.Context) {
	data, err := json.Marshal(s.orders)
	if err != nil {
		log.Printf("[OrderStore] Failed to serialize orders: %v", err)
		return
	}
	if err := s.kv.Set(ctx, kvstore.KeyOrders, data); err != nil {
		log.Printf("[OrderStore] Failed to persist orders: %v", err)
	}
}

// persistUser writes the current profile through to the store. Caller
// must hold the write lock.
func (s *Store) persistUser(ctx context.Context) {
	data, err := json.Marshal(s.user)
	if err != nil {
		log.Printf("[OrderStore] Failed to serialize profile: %v", err)
		return
	}
	if err := s.kv.Set(ctx, kvstore.KeyUser, data); err != nil {
		log.Printf("[OrderStore] Failed to persist profile: %v", err)
	}
}

// notify invokes subscribers outside the lock.
func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn()
	}
}
