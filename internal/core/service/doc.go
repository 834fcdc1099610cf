// Package service provides the domain services for QuestKeep.
//
// Keeper is the single in-process owner of the current snapshot. It loads
// the snapshot once, applies progress and settings mutations in memory and
// hands the result back to its SnapshotRepository on Save. Business rules
// such as streak arithmetic belong to callers; Keeper only rejects values
// that cannot be stored.
//
// This package contains:
//
//   - Keeper: snapshot ownership, progress and settings mutations
//   - settings.go: the named setting table used by ApplySetting
package service
