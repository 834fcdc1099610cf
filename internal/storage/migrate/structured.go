package migrate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yndnr/questkeep-go/internal/core/domain"
)

// Common errors
var (
	// ErrNoData means the strategy's source is absent; try the next one.
	ErrNoData = errors.New("migrate: no data")

	// ErrMissingMembers means the bytes are valid JSON but lack members
	// the shape requires.
	ErrMissingMembers = errors.New("migrate: required members missing")
)

type canonicalEnvelope struct {
	SchemaVersion *int            `json:"schemaVersion"`
	Progress      json.RawMessage `json:"progress"`
	Settings      json.RawMessage `json:"settings"`
}

// DecodeCanonical decodes a canonical Snapshot.
//
// schemaVersion, progress and settings must be present. Individual
// fields missing inside progress or settings take their defaults, so a
// snapshot written before a field existed still decodes. The result is
// not normalized.
func DecodeCanonical(data []byte) (*domain.Snapshot, error) {
	var env canonicalEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode canonical snapshot: %w", err)
	}
	if env.SchemaVersion == nil || isAbsent(env.Progress) || isAbsent(env.Settings) {
		return nil, fmt.Errorf("decode canonical snapshot: %w", ErrMissingMembers)
	}

	snap := domain.DefaultSnapshot()
	snap.SchemaVersion = *env.SchemaVersion
	if err := json.Unmarshal(env.Progress, &snap.Progress); err != nil {
		return nil, fmt.Errorf("decode canonical progress: %w", err)
	}
	if err := json.Unmarshal(env.Settings, &snap.Settings); err != nil {
		return nil, fmt.Errorf("decode canonical settings: %w", err)
	}
	return snap, nil
}

// EncodeCanonical encodes s in the canonical format.
func EncodeCanonical(s *domain.Snapshot) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("encode canonical snapshot: %w", domain.ErrSnapshotInvalid)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode canonical snapshot: %w", err)
	}
	return data, nil
}

type v1Envelope struct {
	Version     *int            `json:"version"`
	Progress    json.RawMessage `json:"progress"`
	Preferences json.RawMessage `json:"preferences"`
	Home        json.RawMessage `json:"home"`
}

// DecodeV1 decodes a LegacySnapshotV1.
//
// progress and preferences must be present; home is optional and
// defaults to DefaultHomePreferences.
func DecodeV1(data []byte) (*domain.LegacySnapshotV1, error) {
	var env v1Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode v1 snapshot: %w", err)
	}
	if isAbsent(env.Progress) || isAbsent(env.Preferences) {
		return nil, fmt.Errorf("decode v1 snapshot: %w", ErrMissingMembers)
	}

	v1 := &domain.LegacySnapshotV1{
		Version:     1,
		Progress:    domain.DefaultProgress(),
		Preferences: domain.PreferencesState{Tone: domain.DefaultTone, Appearance: domain.DefaultAppearance},
		Home:        domain.DefaultHomePreferences(),
	}
	if env.Version != nil {
		v1.Version = *env.Version
	}
	if err := json.Unmarshal(env.Progress, &v1.Progress); err != nil {
		return nil, fmt.Errorf("decode v1 progress: %w", err)
	}
	if err := json.Unmarshal(env.Preferences, &v1.Preferences); err != nil {
		return nil, fmt.Errorf("decode v1 preferences: %w", err)
	}
	if !isAbsent(env.Home) {
		if err := json.Unmarshal(env.Home, &v1.Home); err != nil {
			return nil, fmt.Errorf("decode v1 home: %w", err)
		}
	}
	return v1, nil
}

// MigrateV1 maps a V1 snapshot onto the canonical shape.
//
// Progress carries over unchanged. Preferences and home layout map field
// by field; every setting V1 never had takes its documented default
// (nudge intensity "standard", quest density "balanced", hero cards,
// streaks and arc progress on share visible). The result is normalized.
func MigrateV1(v1 *domain.LegacySnapshotV1) *domain.Snapshot {
	snap := domain.DefaultSnapshot()
	if v1 == nil {
		return snap
	}

	snap.Progress = v1.Progress.Clone()

	prefs := v1.Preferences
	snap.Settings.Tone = prefs.Tone
	snap.Settings.Appearance = prefs.Appearance
	snap.Settings.SafeMode = prefs.HideHeavyTopics
	snap.Settings.OverwhelmedLevel = prefs.OverwhelmedLevel
	if prefs.PrimaryFocus != nil {
		focus := *prefs.PrimaryFocus
		snap.Settings.PrimaryFocus = &focus
	}

	snap.Settings.ShowCompletedQuests = v1.Home.ShowCompletedQuests
	snap.Settings.CompactLayout = v1.Home.CompactLayout

	return domain.Normalize(snap)
}

// isAbsent reports whether a raw member was missing or explicitly null.
func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Decode accepts either structured generation: canonical bytes first,
// then V1. The result is normalized. It backs snapshot import.
func Decode(data []byte) (*domain.Snapshot, Source, error) {
	snap, cerr := DecodeCanonical(data)
	if cerr == nil {
		return domain.Normalize(snap), SourceCanonical, nil
	}
	v1, verr := DecodeV1(data)
	if verr == nil {
		return MigrateV1(v1), SourceLegacyV1, nil
	}
	return nil, "", errors.Join(cerr, verr)
}
