package domain

import "testing"

func TestNormalize_ClampsMaxConcurrentArcs(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-4, 1},
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 3},
		{9, 3},
	}

	for _, tt := range tests {
		s := DefaultSnapshot()
		s.Settings.MaxConcurrentArcs = tt.in

		got := Normalize(s).Settings.MaxConcurrentArcs
		if got != tt.want {
			t.Errorf("Normalize(maxConcurrentArcs=%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_EmptyDimensionsBecomeAll(t *testing.T) {
	s := DefaultSnapshot()
	s.Settings.EnabledDimensions = NewSet[LifeDimension]()

	got := Normalize(s)
	if !got.Settings.EnabledDimensions.Equal(AllDimensions()) {
		t.Errorf("dimensions = %v, want all", got.Settings.EnabledDimensions.Sorted())
	}

	s.Settings.EnabledDimensions = nil
	if !Normalize(s).Settings.EnabledDimensions.Equal(AllDimensions()) {
		t.Error("nil dimensions should normalize to all")
	}
}

func TestNormalize_UnknownValues(t *testing.T) {
	s := DefaultSnapshot()
	s.SchemaVersion = 7
	s.Settings.Tone = "shouty"
	s.Settings.Appearance = "sepia"
	s.Settings.NudgeIntensity = "relentless"
	s.Settings.QuestDensity = "packed"
	s.Settings.EnabledDimensions = NewSet[LifeDimension]("heart", "finance")
	focus := LifeDimension("finance")
	s.Settings.PrimaryFocus = &focus

	got := Normalize(s)

	if got.SchemaVersion != CurrentSchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", got.SchemaVersion, CurrentSchemaVersion)
	}
	if got.Settings.Tone != DefaultTone ||
		got.Settings.Appearance != DefaultAppearance ||
		got.Settings.NudgeIntensity != DefaultNudgeIntensity ||
		got.Settings.QuestDensity != DefaultQuestDensity {
		t.Errorf("unknown enum values not reset: %+v", got.Settings)
	}
	if !got.Settings.EnabledDimensions.Equal(NewSet(DimensionHeart)) {
		t.Errorf("dimensions = %v, want [heart]", got.Settings.EnabledDimensions.Sorted())
	}
	if got.Settings.PrimaryFocus != nil {
		t.Error("unknown primary focus should be cleared")
	}

	// Input must be untouched.
	if s.Settings.Tone != "shouty" || s.SchemaVersion != 7 {
		t.Error("Normalize modified its input")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []*Snapshot{
		DefaultSnapshot(),
		func() *Snapshot {
			s := DefaultSnapshot()
			s.SchemaVersion = 1
			s.Settings.MaxConcurrentArcs = 9
			s.Settings.EnabledDimensions = nil
			s.Progress.CompletedItemIDs = nil
			s.Progress.ArcStartDates = nil
			return s
		}(),
		func() *Snapshot {
			s := DefaultSnapshot()
			s.Settings.Tone = "??"
			s.Settings.EnabledDimensions = NewSet[LifeDimension]("nope")
			return s
		}(),
	}

	for i, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if !once.Equal(twice) {
			t.Errorf("input %d: Normalize is not idempotent", i)
		}
		if NeedsNormalization(once) {
			t.Errorf("input %d: normalized snapshot still needs normalization", i)
		}
	}
}

func TestNormalize_Nil(t *testing.T) {
	if !Normalize(nil).Equal(DefaultSnapshot()) {
		t.Error("Normalize(nil) should return the default snapshot")
	}
}

func TestNeedsNormalization(t *testing.T) {
	s := DefaultSnapshot()
	if NeedsNormalization(s) {
		t.Error("default snapshot should not need normalization")
	}

	s.Settings.MaxConcurrentArcs = 0
	if !NeedsNormalization(s) {
		t.Error("out-of-range maxConcurrentArcs should need normalization")
	}
}
