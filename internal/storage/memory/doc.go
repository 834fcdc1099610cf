// Package memory provides an in-memory KV store for QuestKeep.
//
// It implements storage.KVStore on a plain map guarded by a RWMutex.
// Nothing is persisted; the store is used by tests and by the CLI's
// "--engine memory" dry-run mode.
package memory
