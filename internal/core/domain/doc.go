// Package domain defines the core domain models for QuestKeep.
//
// Domain models are pure value objects without any IO dependencies or
// framework coupling. This package contains:
//
//   - Snapshot: the canonical, schema-versioned aggregate of progress and settings
//   - ProgressState: completed items, streak counters, arc start dates
//   - UserSettings: the flat record of user preferences and their defaults
//   - LegacySnapshotV1: the earlier structured shape, kept only as a migration source
//   - Normalize: idempotent repair of a snapshot's internal constraints
//   - Errors: domain-specific error definitions
//
// Values here are never mutated by the storage layer; callers own all
// business rules (streak arithmetic, completion semantics) and hand the
// resulting snapshot back for persistence.
package domain
