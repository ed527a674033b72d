package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"travio-api/internal/api"
	"travio-api/internal/handler"
	"travio-api/internal/inventory"
	"travio-api/internal/kvstore"
	"travio-api/internal/model"
	"travio-api/internal/router"
	"travio-api/internal/service"
)

func TestAdminCacheEndpoints(t *testing.T) {
	var offline atomic.Bool
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if offline.Load() {
			http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
			return
		}
		json.NewEncoder(w).Encode([]model.Flight{{ID: 1}})
	}))
	t.Cleanup(provider.Close)

	client := api.New(provider.URL, 2*time.Second)
	kv := kvstore.NewMemoryStore()
	flights := inventory.NewFlightCatalog(client, kv)
	refresher := service.NewRefresher(time.Hour, flights)

	server := httptest.NewServer(router.New(router.Config{
		AdminHandler: handler.NewAdminHandler(kv, refresher, "memory"),
	}))
	t.Cleanup(server.Close)

	resp, err := http.Post(server.URL+"/api/v1/admin/cache/refresh", "application/json", nil)
	if err != nil {
		t.Fatalf("trigger refresh: %v", err)
	}
	env := decodeEnvelope(t, resp)

	var results []service.RefreshResult
	if err := json.Unmarshal(env.Data, &results); err != nil {
		t.Fatalf("decode refresh results: %v", err)
	}
	if len(results) != 1 || results[0].Kind != "flights" || results[0].Source != "live" {
		t.Fatalf("unexpected refresh results: %+v", results)
	}

	resp, err = http.Get(server.URL + "/api/v1/admin/cache")
	if err != nil {
		t.Fatalf("get cache stats: %v", err)
	}
	env = decodeEnvelope(t, resp)

	var stats handler.CacheStatsResponse
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Backend != "memory" {
		t.Fatalf("unexpected backend %q", stats.Backend)
	}
	if stats.Keys[kvstore.KeyFlights] == 0 {
		t.Fatalf("refresh should have populated %s: %+v", kvstore.KeyFlights, stats.Keys)
	}
}
