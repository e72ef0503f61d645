// Package orders creates and stores the immutable order records produced by
// successful checkout completion.
package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mockcommerce/checkout-sandbox/internal/storage"
)

// StatusCreated is the only order status; orders never change after creation.
const StatusCreated = "created"

// IDPrefix namespaces order identifiers.
const IDPrefix = "ord_"

// Order is an immutable record linked to its originating checkout session.
type Order struct {
	ID                string    `json:"id"`
	CheckoutSessionID string    `json:"checkout_session_id"`
	PermalinkURL      string    `json:"permalink_url"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

// Store persists orders keyed by originating session id, so store-level
// conditional writes enforce at most one order per completed session even if
// two completions race past the engine's status check.
type Store struct {
	records      storage.RecordStore
	permalinkFmt string
	nowFunc      func() time.Time
}

// NewStore returns an order store. permalinkBase is the public URL root the
// order permalink is built from, e.g. "https://merchant.example.com".
func NewStore(records storage.RecordStore, permalinkBase string) *Store {
	return &Store{
		records:      records,
		permalinkFmt: permalinkBase + "/orders/%s",
		nowFunc:      time.Now,
	}
}

// ErrAlreadyExists is returned when an order was already created for the
// session.
var ErrAlreadyExists = fmt.Errorf("order already exists for session")

// CreateForSession mints a fresh order for the given session. One-shot: a
// second call for the same session id fails with ErrAlreadyExists.
func (s *Store) CreateForSession(ctx context.Context, sessionID string) (*Order, error) {
	id := IDPrefix + uuid.NewString()
	order := &Order{
		ID:                id,
		CheckoutSessionID: sessionID,
		PermalinkURL:      fmt.Sprintf(s.permalinkFmt, id),
		Status:            StatusCreated,
		CreatedAt:         s.nowFunc().UTC(),
	}
	data, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}
	created, err := s.records.PutIfAbsent(ctx, sessionID, data)
	if err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}
	if !created {
		return nil, ErrAlreadyExists
	}
	return order, nil
}

// GetBySession returns the order created for sessionID, or (nil, nil).
func (s *Store) GetBySession(ctx context.Context, sessionID string) (*Order, error) {
	data, err := s.records.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var order Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}
	return &order, nil
}

// Count reports the number of orders created so far.
func (s *Store) Count(ctx context.Context) (int, error) {
	return s.records.Size(ctx)
}
