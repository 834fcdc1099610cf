// Package main provides the entry point for questkeep.
//
// questkeep inspects and edits the locally persisted QuestKeep snapshot:
//
//   - Snapshot show, export, import and reset
//   - Legacy storage inspection and seeding
//   - Progress and settings editing
//   - Storage maintenance and metrics
//
// Usage:
//
//	questkeep [global flags] command [flags]
//	questkeep snapshot show -o json
//	questkeep legacy show
//	questkeep shell
//
// The first command that touches the snapshot migrates any legacy data
// it finds into the canonical key.
package main
