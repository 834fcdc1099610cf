// Package memory provides an in-memory KV store for QuestKeep.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/yndnr/questkeep-go/internal/storage"
)

// Store is a KVStore backed by a map. Values are copied on the way in and
// on the way out, so callers never share buffers with the store.
type Store struct {
	mu     sync.RWMutex
	items  map[string][]byte
	closed bool
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{items: make(map[string][]byte)}
}

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, storage.ErrClosed
	}
	value, ok := s.items[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return slices.Clone(value), nil
}

// Set stores a value, replacing any previous one.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrClosed
	}
	if value == nil {
		value = []byte{}
	}
	s.items[key] = slices.Clone(value)
	return nil
}

// Delete removes a key.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrClosed
	}
	delete(s.items, key)
	return nil
}

// Scan iterates over keys with the given prefix in ascending key order.
func (s *Store) Scan(ctx context.Context, prefix string, fn func(key string, value []byte) bool) error {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return storage.ErrClosed
	}
	keys := make([]string, 0, len(s.items))
	for key := range s.items {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	values := make(map[string][]byte, len(keys))
	for _, key := range keys {
		values[key] = slices.Clone(s.items[key])
	}
	s.mu.RUnlock()

	// Callbacks run without the lock held so they may write to the store.
	slices.Sort(keys)
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !fn(key, values[key]) {
			break
		}
	}
	return nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Close marks the store closed. Later operations return storage.ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

var _ storage.KVStore = (*Store)(nil)
