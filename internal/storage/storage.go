// Package storage provides the keyed record stores backing checkout sessions,
// orders, and payment tokens. Records are opaque JSON blobs; domain packages
// own the (un)marshaling. Three backends exist: in-process memory (the
// default sandbox mode), DynamoDB, and Redis.
package storage

import "context"

// RecordStore is a keyed blob store. Get returns (nil, nil) when the id is
// absent. Put overwrites unconditionally; PutIfAbsent writes only when the id
// is not yet present and reports whether the write happened. Records are
// never deleted.
type RecordStore interface {
	Get(ctx context.Context, id string) ([]byte, error)
	Put(ctx context.Context, id string, data []byte) error
	PutIfAbsent(ctx context.Context, id string, data []byte) (bool, error)
	Size(ctx context.Context) (int, error)
}
