package store

import (
	"context"
	"errors"
	"testing"
)

func TestNoopStore_SaveThenLoadMisses(t *testing.T) {
	ctx := context.Background()
	s := NewNoopStore()

	if err := s.Save(ctx, []byte("key"), []byte("value")); err != nil {
		t.Fatalf("Save should never fail: %v", err)
	}

	_, err := s.Load(ctx, []byte("key"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load after Save should still report ErrNotFound, got %v", err)
	}
}

func TestMemStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	if err := s.Save(ctx, []byte("key"), []byte("value")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	v, err := s.Load(ctx, []byte("key"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(v) != "value" {
		t.Fatalf("Loaded %q, want %q", v, "value")
	}

	if _, err := s.Load(ctx, []byte("missing")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Missing key should report ErrNotFound, got %v", err)
	}
}

func TestMemStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	s.Save(ctx, []byte("k"), []byte("one"))
	s.Save(ctx, []byte("k"), []byte("two"))

	v, err := s.Load(ctx, []byte("k"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(v) != "two" {
		t.Fatalf("Loaded %q, want %q", v, "two")
	}
	if s.Len() != 1 {
		t.Fatalf("Expected 1 entry, got %d", s.Len())
	}
}

func TestMemStore_ValueCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	in := []byte("abc")
	s.Save(ctx, []byte("k"), in)
	in[0] = 'X'

	v, _ := s.Load(ctx, []byte("k"))
	if string(v) != "abc" {
		t.Fatal("Save must copy the value")
	}

	v[0] = 'Y'
	v2, _ := s.Load(ctx, []byte("k"))
	if string(v2) != "abc" {
		t.Fatal("Load must return a copy")
	}
}

func TestStoreInterface(t *testing.T) {
	// Both backends satisfy the same contract; callers cannot tell them
	// apart structurally.
	var _ Store = NewNoopStore()
	var _ Store = NewMemStore()
}
