package domain

// Normalize returns a repaired copy of s. The input is not modified.
//
// Repairs applied:
//   - SchemaVersion is forced to CurrentSchemaVersion
//   - MaxConcurrentArcs is clamped into [MinConcurrentArcs, MaxConcurrentArcs]
//   - unrecognized dimensions are dropped, and an empty dimension set
//     becomes the full set
//   - unrecognized enum values fall back to their defaults and an
//     unrecognized primary focus is cleared
//   - nil collections become empty ones
//
// Normalize is idempotent: Normalize(Normalize(x)) equals Normalize(x).
func Normalize(s *Snapshot) *Snapshot {
	if s == nil {
		return DefaultSnapshot()
	}

	out := s.Clone()
	out.SchemaVersion = CurrentSchemaVersion
	out.Settings = normalizeSettings(out.Settings)
	return out
}

// NeedsNormalization reports whether Normalize would change s.
func NeedsNormalization(s *Snapshot) bool {
	return !Normalize(s).Equal(s)
}

func normalizeSettings(s UserSettings) UserSettings {
	s.MaxConcurrentArcs = clamp(s.MaxConcurrentArcs, MinConcurrentArcs, MaxConcurrentArcs)

	if !s.Tone.Valid() {
		s.Tone = DefaultTone
	}
	if !s.Appearance.Valid() {
		s.Appearance = DefaultAppearance
	}
	if !s.NudgeIntensity.Valid() {
		s.NudgeIntensity = DefaultNudgeIntensity
	}
	if !s.QuestDensity.Valid() {
		s.QuestDensity = DefaultQuestDensity
	}
	if s.PrimaryFocus != nil && !s.PrimaryFocus.Valid() {
		s.PrimaryFocus = nil
	}

	dims := NewSet[LifeDimension]()
	for d := range s.EnabledDimensions {
		if d.Valid() {
			dims.Add(d)
		}
	}
	if dims.Len() == 0 {
		dims = AllDimensions()
	}
	s.EnabledDimensions = dims

	return s
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
