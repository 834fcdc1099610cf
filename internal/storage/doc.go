// Package storage provides the storage primitives for QuestKeep.
//
// Everything QuestKeep persists goes through KVStore, a byte-oriented
// key-value store with whole-value atomic writes.
//
// Implementations:
//
//   - BadgerEngine: embedded, directory-backed store (dgraph-io/badger)
//   - memory.Store: map-backed store for tests and dry runs
//
// On top of the primitive:
//
//   - TypedReader: per-key JSON decoding with an "absent" result instead
//     of errors, used to read legacy flat keys
//   - snapshot: the canonical snapshot store and its migration dispatcher
//   - migrate: pure migrations from legacy shapes to the canonical one
package storage
