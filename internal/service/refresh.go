package service

import (
	"context"
	"log"
	"sync"
	"time"

	"travio-api/internal/inventory"
)

// Catalog is the slice of the inventory catalog the refresher needs.
type Catalog interface {
	Kind() string
	Refresh(ctx context.Context) (int, inventory.Source, error)
}

// RefreshResult describes the outcome of refreshing one catalog.
type RefreshResult struct {
	Kind   string `json:"kind"`
	Items  int    `json:"items"`
	Source string `json:"source"`
	Error  string `json:"error,omitempty"`
}

// Refresher periodically re-fetches every catalog so the offline snapshots
// stay warm even when the user has not opened the corresponding page for a
// while. A failed refresh leaves the existing snapshot untouched.
type Refresher struct {
	catalogs  []Catalog
	interval  time.Duration
	ticker    *time.Ticker
	stopCh    chan struct{}
	stopOnce  sync.Once
	isRunning bool
	mu        sync.Mutex
}

// NewRefresher creates a refresher over the given catalogs.
func NewRefresher(interval time.Duration, catalogs ...Catalog) *Refresher {
	if interval == 0 {
		interval = 15 * time.Minute
	}
	return &Refresher{
		catalogs: catalogs,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic refresh loop. An initial refresh runs
// immediately so a fresh install has snapshots before the first outage.
func (r *Refresher) Start() {
	r.mu.Lock()
	if r.isRunning {
		r.mu.Unlock()
		return
	}
	r.isRunning = true
	r.ticker = time.NewTicker(r.interval)
	r.mu.Unlock()

	log.Printf("[Refresher] Started - interval: %v, catalogs: %d", r.interval, len(r.catalogs))

	go func() {
		r.refreshAll()
		r.run()
	}()
}

func (r *Refresher) run() {
	for {
		select {
		case <-r.ticker.C:
			r.refreshAll()
		case <-r.stopCh:
			log.Printf("[Refresher] Stopped")
			return
		}
	}
}

func (r *Refresher) refreshAll() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	for _, result := range r.RunNow(ctx) {
		if result.Error != "" {
			log.Printf("[Refresher] %s: refresh failed: %s", result.Kind, result.Error)
			continue
		}
		log.Printf("[Refresher] %s: %d items (%s)", result.Kind, result.Items, result.Source)
	}
}

// RunNow refreshes every catalog once and reports per-catalog outcomes.
func (r *Refresher) RunNow(ctx context.Context) []RefreshResult {
	results := make([]RefreshResult, 0, len(r.catalogs))
	for _, cat := range r.catalogs {
		n, src, err := cat.Refresh(ctx)
		result := RefreshResult{Kind: cat.Kind(), Items: n, Source: src.String()}
		if err != nil {
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}

// Stop stops the refresh loop.
func (r *Refresher) Stop() {
	r.stopOnce.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		if r.ticker != nil {
			r.ticker.Stop()
		}
		close(r.stopCh)
		r.isRunning = false
	})
}
