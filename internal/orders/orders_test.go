package orders

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mockcommerce/checkout-sandbox/internal/storage"
)

func TestCreateForSession_OneShot(t *testing.T) {
	s := NewStore(storage.NewMemoryStore(), "https://merchant.example.com")
	s.nowFunc = func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	order, err := s.CreateForSession(ctx, "checkout_abc")
	if err != nil {
		t.Fatalf("CreateForSession error: %v", err)
	}
	if !strings.HasPrefix(order.ID, IDPrefix) {
		t.Fatalf("order id %q missing %s prefix", order.ID, IDPrefix)
	}
	if order.CheckoutSessionID != "checkout_abc" {
		t.Fatalf("checkout_session_id = %s", order.CheckoutSessionID)
	}
	if order.Status != StatusCreated {
		t.Fatalf("status = %s, want %s", order.Status, StatusCreated)
	}
	if want := "https://merchant.example.com/orders/" + order.ID; order.PermalinkURL != want {
		t.Fatalf("permalink = %s, want %s", order.PermalinkURL, want)
	}

	// second create for the same session must fail and leave the first intact
	_, err = s.CreateForSession(ctx, "checkout_abc")
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	stored, err := s.GetBySession(ctx, "checkout_abc")
	if err != nil || stored == nil {
		t.Fatalf("GetBySession: %v, %v", stored, err)
	}
	if stored.ID != order.ID {
		t.Fatalf("stored order replaced: %s vs %s", stored.ID, order.ID)
	}

	if n, _ := s.Count(ctx); n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
}

func TestGetBySession_Missing(t *testing.T) {
	s := NewStore(storage.NewMemoryStore(), "https://merchant.example.com")
	order, err := s.GetBySession(context.Background(), "checkout_missing")
	if err != nil {
		t.Fatalf("GetBySession error: %v", err)
	}
	if order != nil {
		t.Fatalf("expected nil for missing session, got %+v", order)
	}
}
