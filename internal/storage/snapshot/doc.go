// Package snapshot is the single source of truth for the persisted
// QuestKeep state.
//
// A Store owns CanonicalKey in a storage.KVStore and hides the three
// schema generations behind three calls:
//
//   - Load: always returns a complete, schema-current snapshot
//   - Save: overwrites the canonical value
//   - Reset: removes the canonical value, leaving legacy keys in place
//
// Load runs the migration chain from package migrate in priority order.
// The first strategy that produces a snapshot wins. Legacy results are
// written back under CanonicalKey, so migration happens once. Canonical
// bytes that no strategy can decode are deleted before falling back to
// older generations. When nothing usable exists Load returns
// domain.DefaultSnapshot without writing it.
//
// Purge is the explicit full wipe: canonical, V1 and flat keys.
//
// A Store is not safe for concurrent use; its owner serializes calls.
package snapshot
