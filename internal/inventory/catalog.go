// Package inventory serves the three bookable catalogs with transparent
// offline fallback: a successful remote fetch refreshes the persisted
// snapshot for its kind, and a failed fetch is answered from that snapshot
// when one exists. Callers cannot tell a cache hit from a live result by
// the data alone; the Source value reports which path answered.
package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"travio-api/internal/api"
	"travio-api/internal/kvstore"
	"travio-api/internal/model"
)

// ErrNotFound indicates a GetByID lookup failed against both the remote
// API and the cached collection. Distinct from api.ErrFetchFailed, which
// means the request itself could not be answered and no cache existed.
var ErrNotFound = errors.New("inventory item not found")

// Source reports which path produced a catalog result.
type Source int

const (
	// SourceNone means no result was produced.
	SourceNone Source = iota
	// SourceLive means the result came from the remote API.
	SourceLive
	// SourceCache means the result was served from the offline snapshot.
	SourceCache
)

func (s Source) String() string {
	switch s {
	case SourceLive:
		return "live"
	case SourceCache:
		return "cache"
	}
	return "none"
}

// Catalog fetches one kind of inventory and keeps its offline snapshot
// warm. One instance exists per kind; each writes to its own store key, so
// staleness or failure in one catalog never affects another.
type Catalog[T model.InventoryItem] struct {
	kind     string
	listPath string
	cacheKey string
	client   *api.Client
	kv       kvstore.Store
}

// NewFlightCatalog creates the flights catalog.
func NewFlightCatalog(client *api.Client, kv kvstore.Store) *Catalog[model.Flight] {
	return &Catalog[model.Flight]{
		kind:     "flights",
		listPath: "/flights",
		cacheKey: kvstore.KeyFlights,
		client:   client,
		kv:       kv,
	}
}

// NewHotelCatalog creates the hotels catalog.
func NewHotelCatalog(client *api.Client, kv kvstore.Store) *Catalog[model.Hotel] {
	return &Catalog[model.Hotel]{
		kind:     "hotels",
		listPath: "/hotels",
		cacheKey: kvstore.KeyHotels,
		client:   client,
		kv:       kv,
	}
}

// NewRentalCatalog creates the rentals catalog.
func NewRentalCatalog(client *api.Client, kv kvstore.Store) *Catalog[model.Rental] {
	return &Catalog[model.Rental]{
		kind:     "rentals",
		listPath: "/rentals",
		cacheKey: kvstore.KeyRentals,
		client:   client,
		kv:       kv,
	}
}

// Kind names the catalog ("flights", "hotels", "rentals").
func (c *Catalog[T]) Kind() string { return c.kind }

// ListAll returns the full collection. A live fetch overwrites the cached
// snapshot in full before returning; on fetch failure the snapshot is
// served instead, and only when neither is available does the original
// fetch error propagate.
func (c *Catalog[T]) ListAll(ctx context.Context) ([]T, Source, error) {
	var items []T
	fetchErr := c.client.Get(ctx, c.listPath, &items)
	if fetchErr == nil {
		c.persist(ctx, items)
		return items, SourceLive, nil
	}

	cached, ok := c.readCache(ctx)
	if !ok {
		return nil, SourceNone, fetchErr
	}

	log.Printf("[Catalog:%s] Offline: list served from cache (%d items)", c.kind, len(cached))
	return cached, SourceCache, nil
}

// GetByID returns a single item. On fetch failure the cached collection is
// scanned for a matching identifier; a cached collection without the id
// yields ErrNotFound, no cached collection yields the fetch error.
func (c *Catalog[T]) GetByID(ctx context.Context, id int) (T, Source, error) {
	var item T
	fetchErr := c.client.Get(ctx, fmt.Sprintf("%s/%d", c.listPath, id), &item)
	if fetchErr == nil {
		return item, SourceLive, nil
	}

	cached, ok := c.readCache(ctx)
	if !ok {
		var zero T
		return zero, SourceNone, fetchErr
	}

	for _, candidate := range cached {
		if candidate.ItemID() == id {
			log.Printf("[Catalog:%s] Offline: item %d served from cache", c.kind, id)
			return candidate, SourceCache, nil
		}
	}

	var zero T
	return zero, SourceNone, fmt.Errorf("%s id %d: %w", c.kind, id, ErrNotFound)
}

// Refresh re-fetches the collection to warm the offline snapshot. It
// reports how many items the answering source held.
func (c *Catalog[T]) Refresh(ctx context.Context) (int, Source, error) {
	items, src, err := c.ListAll(ctx)
	return len(items), src, err
}

// persist overwrites the snapshot for this kind. A store-write failure
// only loses durability, so it is logged and absorbed.
func (c *Catalog[T]) persist(ctx context.Context, items []T) {
	data, err := json.Marshal(items)
	if err != nil {
		log.Printf("[Catalog:%s] Failed to serialize snapshot: %v", c.kind, err)
		return
	}
	if err := c.kv.Set(ctx, c.cacheKey, data); err != nil {
		log.Printf("[Catalog:%s] Failed to persist snapshot: %v", c.kind, err)
	}
}

// readCache loads the snapshot for this kind. Read failures and corrupt
// snapshots are both treated as "no cached value".
func (c *Catalog[T]) readCache(ctx context.Context) ([]T, bool) {
	data, err := c.kv.Get(ctx, c.cacheKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			log.Printf("[Catalog:%s] Failed to read snapshot: %v", c.kind, err)
		}
		return nil, false
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("[Catalog:%s] Corrupt snapshot discarded: %v", c.kind, err)
		return nil, false
	}
	return items, true
}
