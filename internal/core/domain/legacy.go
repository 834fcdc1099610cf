package domain

// LegacySnapshotV1 is the first structured snapshot shape.
//
// Preferences and home layout lived in separate nested records. It is
// decoded during migration and never written.
type LegacySnapshotV1 struct {
	Version     int              `json:"version"`
	Progress    ProgressState    `json:"progress"`
	Preferences PreferencesState `json:"preferences"`
	Home        HomePreferences  `json:"home"`
}

// PreferencesState is the V1 preferences record.
type PreferencesState struct {
	Tone             ToneMode       `json:"tone"`
	Appearance       AppearanceMode `json:"appearance"`
	HideHeavyTopics  bool           `json:"hideHeavyTopics"`
	PrimaryFocus     *LifeDimension `json:"primaryFocus"`
	OverwhelmedLevel int            `json:"overwhelmedLevel"`
}

// HomePreferences is the V1 home-layout record.
type HomePreferences struct {
	ShowCompletedQuests bool `json:"showCompletedQuests"`
	CompactLayout       bool `json:"compactLayout"`
}

// DefaultHomePreferences returns the V1 home layout defaults, which match
// the corresponding UserSettings defaults.
func DefaultHomePreferences() HomePreferences {
	return HomePreferences{
		ShowCompletedQuests: DefaultShowCompletedQuests,
		CompactLayout:       DefaultCompactLayout,
	}
}
