// Package migrate turns every recognized storage generation into the
// canonical domain.Snapshot.
//
// Generations, newest first:
//
//   - canonical: JSON Snapshot under CanonicalKey, with schemaVersion
//   - legacy V1: JSON LegacySnapshotV1, found under CanonicalKey (written
//     by builds that shared the key) or under LegacyV1Key
//   - flat: one JSON scalar per field under the FlatKeys() catalog
//
// Each generation is a Strategy: a pure function from Input to a snapshot.
// Strategies() returns them in the priority order the snapshot store tries
// them. A strategy returns ErrNoData when its source is absent, and any
// other error when the source is present but cannot be decoded.
//
// Nothing in this package writes to storage.
package migrate
