package kvstore

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, KeyFlights); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unset key, got %v", err)
	}

	if err := s.Set(ctx, KeyFlights, []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := s.Get(ctx, KeyFlights)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[{"id":1}]` {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestMemoryStoreOverwrites(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, KeyHotels, []byte(`[1,2,3]`)); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := s.Set(ctx, KeyHotels, []byte(`[1]`)); err != nil {
		t.Fatalf("second set: %v", err)
	}

	got, err := s.Get(ctx, KeyHotels)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[1]` {
		t.Fatalf("second write must replace the first, got %q", got)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	value := []byte("original")
	if err := s.Set(ctx, KeyUser, value); err != nil {
		t.Fatalf("set: %v", err)
	}
	value[0] = 'X'

	got, err := s.Get(ctx, KeyUser)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "original" {
		t.Fatalf("stored value aliased caller's slice: %q", got)
	}

	got[0] = 'Y'
	again, _ := s.Get(ctx, KeyUser)
	if string(again) != "original" {
		t.Fatalf("returned value aliased stored slice: %q", again)
	}
}

func TestMemoryStoreStats(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, KeyOrders, []byte("12345")); err != nil {
		t.Fatalf("set: %v", err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats[KeyOrders] != 5 {
		t.Fatalf("expected size 5 for %s, got %d", KeyOrders, stats[KeyOrders])
	}
}
