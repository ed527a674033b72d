package orders

import (
	"context"
	"testing"
	"time"

	"travio-api/internal/kvstore"
	"travio-api/internal/model"
)

func flightInput() AddOrderInput {
	return AddOrderInput{
		Kind:         model.OrderKindFlight,
		Title:        "Jakarta - Denpasar",
		Subtitle:     "Garuda Indonesia",
		PricePerUnit: 1500000,
		TotalPrice:   1500000,
		DateRange:    "12 Jan 2026",
		DurationInfo: "1h 50m",
		Image:        "https://example.com/garuda.jpg",
	}
}

func TestAddOrderStartsPendingAtFront(t *testing.T) {
	s := New(context.Background(), kvstore.NewMemoryStore())

	first := s.AddOrder(context.Background(), flightInput())
	if first.Status != model.OrderStatusPending {
		t.Fatalf("expected pending status, got %q", first.Status)
	}

	hotel := flightInput()
	hotel.Kind = model.OrderKindHotel
	hotel.Title = "Grand Hyatt Bali"
	second := s.AddOrder(context.Background(), hotel)

	got := s.Orders()
	if len(got) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(got))
	}
	if got[0].ID != second.ID {
		t.Fatalf("newest order must be at position 0, got %q", got[0].Title)
	}
	if got[1].ID != first.ID {
		t.Fatalf("older order must follow, got %q", got[1].Title)
	}
}

func TestAddOrderSameMillisecondIDsDistinct(t *testing.T) {
	s := New(context.Background(), kvstore.NewMemoryStore())
	frozen := time.UnixMilli(1767225600123)
	s.now = func() time.Time { return frozen }

	a := s.AddOrder(context.Background(), flightInput())
	b := s.AddOrder(context.Background(), flightInput())

	if a.ID == b.ID {
		t.Fatalf("orders booked in the same millisecond collided on id %q", a.ID)
	}
	if a.ID != "TRV-600123" {
		t.Fatalf("expected timestamp-derived reference, got %q", a.ID)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	s := New(context.Background(), kvstore.NewMemoryStore())
	order := s.AddOrder(context.Background(), flightInput())

	if !s.UpdateOrderStatus(context.Background(), order.ID, model.OrderStatusSuccess) {
		t.Fatalf("expected known order to be updated")
	}
	if got := s.Orders()[0].Status; got != model.OrderStatusSuccess {
		t.Fatalf("expected success status, got %q", got)
	}
}

func TestUpdateOrderStatusUnknownIDIsNoOp(t *testing.T) {
	s := New(context.Background(), kvstore.NewMemoryStore())
	s.AddOrder(context.Background(), flightInput())
	before := s.Orders()

	if s.UpdateOrderStatus(context.Background(), "TRV-000000", model.OrderStatusCancelled) {
		t.Fatalf("unknown id must be ignored")
	}

	after := s.Orders()
	if len(after) != len(before) {
		t.Fatalf("order list changed: %d -> %d", len(before), len(after))
	}
	for i := range after {
		if after[i] != before[i] {
			t.Fatalf("order %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestStatePersistsAcrossRestart(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	ctx := context.Background()

	s := New(ctx, kv)
	order := s.AddOrder(ctx, flightInput())
	s.UpdateOrderStatus(ctx, order.ID, model.OrderStatusSuccess)
	s.UpdateUserProfile(ctx, "Alice", "alice@x.com")

	restored := New(ctx, kv)
	got := restored.Orders()
	if len(got) != 1 {
		t.Fatalf("expected 1 restored order, got %d", len(got))
	}
	if got[0].ID != order.ID || got[0].Status != model.OrderStatusSuccess {
		t.Fatalf("order not restored verbatim: %+v", got[0])
	}
	if user := restored.User(); user.Name != "Alice" || user.Email != "alice@x.com" {
		t.Fatalf("profile not restored: %+v", user)
	}
}

func TestDefaultProfileSeededOnFirstUse(t *testing.T) {
	s := New(context.Background(), kvstore.NewMemoryStore())

	user := s.User()
	if user.Name != "Carlos Sirait" {
		t.Fatalf("unexpected default name %q", user.Name)
	}
	if user.MemberLevel != model.MemberLevelGold {
		t.Fatalf("unexpected default tier %q", user.MemberLevel)
	}
	if user.Avatar == "" {
		t.Fatalf("default profile must carry an avatar")
	}
}

func TestUpdateUserProfileDerivesAvatarFromName(t *testing.T) {
	s := New(context.Background(), kvstore.NewMemoryStore())

	updated := s.UpdateUserProfile(context.Background(), "Alice", "alice@x.com")
	if updated.Name != "Alice" {
		t.Fatalf("expected name Alice, got %q", updated.Name)
	}
	if updated.Avatar != model.AvatarURL("Alice") {
		t.Fatalf("avatar must derive from the name: %q", updated.Avatar)
	}

	// Same name again, different email: avatar is a pure function of name.
	again := s.UpdateUserProfile(context.Background(), "Alice", "alice@y.com")
	if again.Avatar != updated.Avatar {
		t.Fatalf("same name produced different avatars: %q vs %q", again.Avatar, updated.Avatar)
	}

	// Member level is untouched by profile updates.
	if again.MemberLevel != model.MemberLevelGold {
		t.Fatalf("profile update must not change member level, got %q", again.MemberLevel)
	}
}

func TestSubscribersNotifiedOnEveryMutation(t *testing.T) {
	s := New(context.Background(), kvstore.NewMemoryStore())

	var notified int
	s.Subscribe(func() { notified++ })

	order := s.AddOrder(context.Background(), flightInput())
	s.UpdateOrderStatus(context.Background(), order.ID, model.OrderStatusCancelled)
	s.UpdateUserProfile(context.Background(), "Alice", "alice@x.com")

	if notified != 3 {
		t.Fatalf("expected 3 notifications, got %d", notified)
	}
}

func TestNewOrderRefCollisionSuffix(t *testing.T) {
	frozen := time.UnixMilli(1767225600123)
	existing := map[string]bool{"TRV-600123": true, "TRV-600123-2": true}

	ref := newOrderRef(frozen, func(id string) bool { return existing[id] })
	if ref != "TRV-600123-3" {
		t.Fatalf("expected suffixed reference, got %q", ref)
	}
}
