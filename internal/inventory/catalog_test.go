package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"travio-api/internal/api"
	"travio-api/internal/kvstore"
	"travio-api/internal/model"
)

// fakeProvider is a stand-in for the remote inventory API whose network
// can be switched off and whose collection can be replaced mid-test.
type fakeProvider struct {
	server  *httptest.Server
	offline atomic.Bool

	mu      sync.Mutex
	flights []model.Flight
}

func (p *fakeProvider) setFlights(flights []model.Flight) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flights = flights
}

func (p *fakeProvider) currentFlights() []model.Flight {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flights
}

func newFakeProvider(t *testing.T, flights []model.Flight) *fakeProvider {
	t.Helper()

	p := &fakeProvider{flights: flights}
	mux := http.NewServeMux()
	mux.HandleFunc("/flights", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if p.offline.Load() {
			http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
			return
		}
		json.NewEncoder(w).Encode(p.currentFlights())
	})
	mux.HandleFunc("/flights/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if p.offline.Load() {
			http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/flights/")
		for _, f := range p.currentFlights() {
			if id == strconv.Itoa(f.ID) {
				json.NewEncoder(w).Encode(f)
				return
			}
		}
		http.NotFound(w, r)
	})

	p.server = httptest.NewServer(mux)
	t.Cleanup(p.server.Close)
	return p
}

func testCatalog(t *testing.T, p *fakeProvider, kv kvstore.Store) *Catalog[model.Flight] {
	t.Helper()
	return NewFlightCatalog(api.New(p.server.URL, 2*time.Second), kv)
}

func TestListAllCachesLiveResult(t *testing.T) {
	flights := []model.Flight{
		{ID: 1, Airline: "Garuda Indonesia", DepartureCity: "Jakarta", ArrivalCity: "Denpasar", Price: 1500000},
	}
	p := newFakeProvider(t, flights)
	kv := kvstore.NewMemoryStore()
	cat := testCatalog(t, p, kv)

	got, src, err := cat.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all live: %v", err)
	}
	if src != SourceLive {
		t.Fatalf("expected live source, got %v", src)
	}
	if len(got) != 1 || got[0].Airline != "Garuda Indonesia" {
		t.Fatalf("unexpected result: %+v", got)
	}

	raw, err := kv.Get(context.Background(), kvstore.KeyFlights)
	if err != nil {
		t.Fatalf("read cache key: %v", err)
	}
	var cached []model.Flight
	if err := json.Unmarshal(raw, &cached); err != nil {
		t.Fatalf("unmarshal cached snapshot: %v", err)
	}
	if len(cached) != 1 || cached[0].ID != 1 {
		t.Fatalf("cache does not hold the fetched collection: %+v", cached)
	}
}

func TestListAllFallsBackToCacheWhenOffline(t *testing.T) {
	flights := []model.Flight{
		{ID: 1, Airline: "Garuda Indonesia", Price: 1500000},
		{ID: 2, Airline: "Lion Air", Price: 800000},
	}
	p := newFakeProvider(t, flights)
	kv := kvstore.NewMemoryStore()
	cat := testCatalog(t, p, kv)

	live, _, err := cat.ListAll(context.Background())
	if err != nil {
		t.Fatalf("warm the cache: %v", err)
	}

	p.offline.Store(true)

	cached, src, err := cat.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all offline: %v", err)
	}
	if src != SourceCache {
		t.Fatalf("expected cache source, got %v", src)
	}
	if len(cached) != len(live) {
		t.Fatalf("cached collection differs: got %d items, want %d", len(cached), len(live))
	}
	for i := range cached {
		if cached[i] != live[i] {
			t.Fatalf("item %d round-tripped wrong: got %+v, want %+v", i, cached[i], live[i])
		}
	}
}

func TestListAllPropagatesFetchErrorWithEmptyCache(t *testing.T) {
	p := newFakeProvider(t, nil)
	p.offline.Store(true)
	cat := testCatalog(t, p, kvstore.NewMemoryStore())

	_, src, err := cat.ListAll(context.Background())
	if !errors.Is(err, api.ErrFetchFailed) {
		t.Fatalf("expected fetch failure, got %v", err)
	}
	if src != SourceNone {
		t.Fatalf("expected no source, got %v", src)
	}
}

func TestListAllOverwritesInsteadOfAppending(t *testing.T) {
	flights := []model.Flight{
		{ID: 1, Airline: "Garuda Indonesia"},
		{ID: 2, Airline: "Lion Air"},
		{ID: 3, Airline: "Citilink"},
	}
	p := newFakeProvider(t, flights)
	kv := kvstore.NewMemoryStore()
	cat := testCatalog(t, p, kv)

	if _, _, err := cat.ListAll(context.Background()); err != nil {
		t.Fatalf("first fetch: %v", err)
	}

	// Provider shrinks the collection; the snapshot must shrink with it.
	p.setFlights(flights[:1])
	if _, _, err := cat.ListAll(context.Background()); err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	p.offline.Store(true)
	cached, _, err := cat.ListAll(context.Background())
	if err != nil {
		t.Fatalf("offline read: %v", err)
	}
	if len(cached) != 1 {
		t.Fatalf("expected snapshot of 1 item after overwrite, got %d", len(cached))
	}
}

func TestGetByIDOfflineScenario(t *testing.T) {
	flights := []model.Flight{{ID: 1, Airline: "Garuda Indonesia", Price: 1500000}}
	p := newFakeProvider(t, flights)
	kv := kvstore.NewMemoryStore()
	cat := testCatalog(t, p, kv)

	if _, _, err := cat.ListAll(context.Background()); err != nil {
		t.Fatalf("warm the cache: %v", err)
	}
	p.offline.Store(true)

	got, src, err := cat.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("get cached item: %v", err)
	}
	if src != SourceCache {
		t.Fatalf("expected cache source, got %v", src)
	}
	if got.Airline != "Garuda Indonesia" {
		t.Fatalf("unexpected item: %+v", got)
	}

	_, _, err = cat.GetByID(context.Background(), 2)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for uncached id, got %v", err)
	}
}

func TestGetByIDPropagatesFetchErrorWithEmptyCache(t *testing.T) {
	p := newFakeProvider(t, nil)
	p.offline.Store(true)
	cat := testCatalog(t, p, kvstore.NewMemoryStore())

	_, _, err := cat.GetByID(context.Background(), 1)
	if !errors.Is(err, api.ErrFetchFailed) {
		t.Fatalf("expected fetch failure, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("fetch failure must stay distinguishable from not-found")
	}
}

func TestGetByIDLive(t *testing.T) {
	flights := []model.Flight{{ID: 7, Airline: "Batik Air"}}
	p := newFakeProvider(t, flights)
	cat := testCatalog(t, p, kvstore.NewMemoryStore())

	got, src, err := cat.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("get live item: %v", err)
	}
	if src != SourceLive {
		t.Fatalf("expected live source, got %v", src)
	}
	if got.ID != 7 {
		t.Fatalf("unexpected item: %+v", got)
	}
}

func TestCorruptSnapshotTreatedAsMiss(t *testing.T) {
	p := newFakeProvider(t, nil)
	p.offline.Store(true)
	kv := kvstore.NewMemoryStore()
	if err := kv.Set(context.Background(), kvstore.KeyFlights, []byte("{not json")); err != nil {
		t.Fatalf("seed corrupt snapshot: %v", err)
	}
	cat := testCatalog(t, p, kv)

	_, _, err := cat.ListAll(context.Background())
	if !errors.Is(err, api.ErrFetchFailed) {
		t.Fatalf("corrupt snapshot should propagate the fetch error, got %v", err)
	}
}
