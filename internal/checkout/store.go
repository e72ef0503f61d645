package checkout

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mockcommerce/checkout-sandbox/internal/storage"
)

// SessionStore is the typed façade over the record store. The lifecycle
// engine is its only writer.
type SessionStore struct {
	records storage.RecordStore
}

// NewSessionStore wraps a record store.
func NewSessionStore(records storage.RecordStore) *SessionStore {
	return &SessionStore{records: records}
}

// Get fetches a session by id. Returns (nil, nil) if not found.
func (s *SessionStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.records.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

// Put writes the full session snapshot.
func (s *SessionStore) Put(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.records.Put(ctx, sess.ID, data); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// Count reports the number of live sessions.
func (s *SessionStore) Count(ctx context.Context) (int, error) {
	return s.records.Size(ctx)
}
