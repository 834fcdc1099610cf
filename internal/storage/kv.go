// Package storage provides storage abstractions for QuestKeep.
//
// This file defines the KVStore interface, the byte-oriented key-value
// primitive every persisted value goes through.
package storage

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrClosed      = errors.New("kv store closed")
)

// KVStore defines the interface for a local key-value store.
//
// Implementation requirements:
//   - Atomic values: Set replaces a whole value, readers never observe a
//     partial write
//   - Durable (for disk-backed engines): data must survive process restarts
//   - Safe for use from a single owner goroutine plus shutdown hooks
type KVStore interface {
	// Get retrieves a value by key.
	// Returns ErrKeyNotFound if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value, replacing any previous one.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Scan iterates over keys with a given prefix in key order.
	// Callback returns false to stop iteration.
	Scan(ctx context.Context, prefix string, fn func(key string, value []byte) bool) error

	// Close releases the store.
	Close() error
}

// KVConfig configures a KV engine.
type KVConfig struct {
	// Engine specifies the engine type ("badger", "memory").
	// Default: "badger"
	Engine string

	// Dir is the storage directory (unused by the memory engine).
	Dir string

	// Badger-specific configuration
	Badger BadgerConfig
}

// BadgerConfig contains Badger-specific tuning parameters.
//
// The defaults are sized for a few thousand short values, not for
// throughput.
type BadgerConfig struct {
	// GCInterval is the interval between automatic value-log GC runs.
	// Zero disables automatic GC. Default: 10m
	GCInterval string

	// GCThreshold is the GC discard ratio threshold (0.0-1.0).
	// Default: 0.5
	GCThreshold float64

	// CacheSize is the block cache size in bytes.
	// Default: 8MB
	CacheSize int64

	// ValueLogFileSize is the max value log file size in bytes.
	// Default: 64MB
	ValueLogFileSize int64

	// SyncWrites enables sync writes (fsync after each write).
	// Default: true, a saved snapshot must survive a crash right after Save.
	SyncWrites bool
}

// DefaultKVConfig returns the default KV configuration.
func DefaultKVConfig(dir string) KVConfig {
	return KVConfig{
		Engine: "badger",
		Dir:    dir,
		Badger: DefaultBadgerConfig(),
	}
}

// DefaultBadgerConfig returns the default Badger configuration.
func DefaultBadgerConfig() BadgerConfig {
	return BadgerConfig{
		GCInterval:       "10m",
		GCThreshold:      0.5,
		CacheSize:        8 << 20,  // 8MB
		ValueLogFileSize: 64 << 20, // 64MB
		SyncWrites:       true,
	}
}
