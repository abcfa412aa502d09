package store

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrNotFound is returned by Load when no value is associated with the key.
var ErrNotFound = errors.New("store: key not found")

// Store is the key/value persistence contract the runtime exposes to
// generated code. Implementations must never partially implement the
// contract: Save either persists or reports an error, Load either returns
// the saved value or ErrNotFound.
type Store interface {
	Save(ctx context.Context, key, value []byte) error
	Load(ctx context.Context, key []byte) ([]byte, error)
}

// NoopStore is the default backend. It preserves the original runtime's
// placeholder behavior: Save discards its arguments without error and Load
// always reports ErrNotFound. It exists to reserve the extension point until
// a real store is designed.
type NoopStore struct{}

// NewNoopStore creates the no-op backend.
func NewNoopStore() *NoopStore {
	return &NoopStore{}
}

// Save discards the association.
func (s *NoopStore) Save(ctx context.Context, key, value []byte) error {
	Logger().Debug("store save discarded", zap.Int("key_len", len(key)), zap.Int("value_len", len(value)))
	return nil
}

// Load always reports not found.
func (s *NoopStore) Load(ctx context.Context, key []byte) ([]byte, error) {
	return nil, ErrNotFound
}

// MemStore is an in-memory backend. It is the proof that the store is an
// injectable capability: substituting it for NoopStore changes no caller.
type MemStore struct {
	values map[string][]byte
	mu     sync.RWMutex
}

// NewMemStore creates an empty in-memory backend.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string][]byte)}
}

// Save associates key with a copy of value.
func (s *MemStore) Save(ctx context.Context, key, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)

	s.mu.Lock()
	s.values[string(key)] = cp
	s.mu.Unlock()

	Logger().Debug("store save", zap.Int("key_len", len(key)), zap.Int("value_len", len(value)))
	return nil
}

// Load returns a copy of the value associated with key, or ErrNotFound.
func (s *MemStore) Load(ctx context.Context, key []byte) ([]byte, error) {
	s.mu.RLock()
	v, ok := s.values[string(key)]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

// Len returns the number of stored associations.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
