package kvstore

import (
	"context"
	"errors"
)

// Store is a durable string-keyed blob store. Each component of the booking
// core writes to its own fixed key, so backends never have to arbitrate
// between writers. Values are whole JSON snapshots and are always
// overwritten in full.
type Store interface {
	// Get retrieves the value for key. Returns ErrNotFound when the key has
	// never been written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Stats reports the stored keys and their value sizes in bytes.
	Stats(ctx context.Context) (map[string]int64, error)

	// Close releases the underlying connection, if any.
	Close() error
}

// ErrNotFound indicates the key has no stored value. Callers treat it the
// same as an unreadable store: no cached value is available.
var ErrNotFound = errors.New("kvstore: key not found")

// Well-known keys. One key per inventory kind plus one each for the order
// list and the user profile; the namespaces are disjoint so services never
// contend for the same key.
const (
	KeyFlights = "offline_flights"
	KeyHotels  = "offline_hotels"
	KeyRentals = "offline_rentals"
	KeyOrders  = "travio_orders"
	KeyUser    = "travio_user"
)
