package domain

import "time"

// CurrentSchemaVersion identifies the canonical snapshot generation.
//
// Generation 0 is the flat per-field key scheme and generation 1 is
// LegacySnapshotV1. Both exist only as migration sources.
const CurrentSchemaVersion = 2

// Snapshot is the canonical unit of persisted state.
type Snapshot struct {
	SchemaVersion int           `json:"schemaVersion"`
	Progress      ProgressState `json:"progress"`
	Settings      UserSettings  `json:"settings"`
}

// ProgressState records what the user has done so far.
type ProgressState struct {
	// CompletedItemIDs holds checklist item identifiers. Completing an
	// item twice is a no-op.
	CompletedItemIDs Set[string] `json:"completedItemIDs"`

	// CurrentStreak and BestStreak are stored verbatim; BestStreak >=
	// CurrentStreak is the caller's business, not this layer's.
	CurrentStreak int `json:"currentStreak"`
	BestStreak    int `json:"bestStreak"`

	// LastActiveDay is nil until activity is first recorded.
	LastActiveDay *time.Time `json:"lastActiveDay"`

	// ArcStartDates maps a journey or arc identifier to when it began.
	ArcStartDates map[string]time.Time `json:"arcStartDates"`
}

// DefaultProgress returns the zero-state progress with empty collections.
func DefaultProgress() ProgressState {
	return ProgressState{
		CompletedItemIDs: NewSet[string](),
		ArcStartDates:    make(map[string]time.Time),
	}
}

// DefaultSnapshot returns the snapshot used when no prior state exists.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		SchemaVersion: CurrentSchemaVersion,
		Progress:      DefaultProgress(),
		Settings:      DefaultSettings(),
	}
}

// Clone returns a deep copy.
func (p ProgressState) Clone() ProgressState {
	out := p
	out.CompletedItemIDs = p.CompletedItemIDs.Clone()
	if p.LastActiveDay != nil {
		day := *p.LastActiveDay
		out.LastActiveDay = &day
	}
	out.ArcStartDates = make(map[string]time.Time, len(p.ArcStartDates))
	for id, at := range p.ArcStartDates {
		out.ArcStartDates[id] = at
	}
	return out
}

// IsEmpty reports whether no progress has been recorded at all.
func (p ProgressState) IsEmpty() bool {
	return p.CompletedItemIDs.Len() == 0 &&
		p.CurrentStreak == 0 &&
		p.BestStreak == 0 &&
		p.LastActiveDay == nil &&
		len(p.ArcStartDates) == 0
}

// Equal reports whether both states hold the same values.
// Timestamps are compared as instants.
func (p ProgressState) Equal(o ProgressState) bool {
	if !p.CompletedItemIDs.Equal(o.CompletedItemIDs) {
		return false
	}
	if p.CurrentStreak != o.CurrentStreak || p.BestStreak != o.BestStreak {
		return false
	}
	if (p.LastActiveDay == nil) != (o.LastActiveDay == nil) {
		return false
	}
	if p.LastActiveDay != nil && !p.LastActiveDay.Equal(*o.LastActiveDay) {
		return false
	}
	if len(p.ArcStartDates) != len(o.ArcStartDates) {
		return false
	}
	for id, at := range p.ArcStartDates {
		other, ok := o.ArcStartDates[id]
		if !ok || !at.Equal(other) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy. Cloning nil returns nil.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	return &Snapshot{
		SchemaVersion: s.SchemaVersion,
		Progress:      s.Progress.Clone(),
		Settings:      s.Settings.Clone(),
	}
}

// Equal reports whether both snapshots are structurally equal.
func (s *Snapshot) Equal(o *Snapshot) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.SchemaVersion == o.SchemaVersion &&
		s.Progress.Equal(o.Progress) &&
		s.Settings.Equal(o.Settings)
}
