package storage

import (
	"context"
	"testing"
)

func TestMemoryStore_GetPutSize(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	data, err := s.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if data != nil {
		t.Fatalf("expected nil for missing id, got %q", data)
	}

	if err := s.Put(ctx, "a", []byte("one")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := s.Put(ctx, "a", []byte("two")); err != nil {
		t.Fatalf("overwrite error: %v", err)
	}
	data, _ = s.Get(ctx, "a")
	if string(data) != "two" {
		t.Fatalf("got %q, want overwrite to win", data)
	}

	n, err := s.Size(ctx)
	if err != nil || n != 1 {
		t.Fatalf("Size = %d (%v), want 1", n, err)
	}
}

func TestMemoryStore_PutIfAbsent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.PutIfAbsent(ctx, "k", []byte("first"))
	if err != nil || !created {
		t.Fatalf("expected created=true, got %v (%v)", created, err)
	}
	created, err = s.PutIfAbsent(ctx, "k", []byte("second"))
	if err != nil || created {
		t.Fatalf("expected created=false on duplicate, got %v (%v)", created, err)
	}
	data, _ := s.Get(ctx, "k")
	if string(data) != "first" {
		t.Fatalf("duplicate write overwrote the record")
	}
}

func TestMemoryStore_CopiesBlobs(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	src := []byte("hello")
	s.Put(ctx, "k", src)
	src[0] = 'X'

	data, _ := s.Get(ctx, "k")
	if string(data) != "hello" {
		t.Fatalf("stored blob aliased the caller's slice")
	}
	data[0] = 'Y'
	again, _ := s.Get(ctx, "k")
	if string(again) != "hello" {
		t.Fatalf("returned blob aliased the stored slice")
	}
}
