package migrate

// Structured snapshot keys.
const (
	// CanonicalKey holds the current-generation Snapshot.
	CanonicalKey = "snapshot.current"

	// LegacyV1Key holds a LegacySnapshotV1 written by older builds.
	// It is read during migration and never written.
	LegacyV1Key = "snapshot.v1"
)

// Flat legacy keys, one per field. Read-only inputs to MigrateFlat.
const (
	KeyCompletedItemIDs  = "completedItemIDs"
	KeyCurrentStreak     = "currentStreak"
	KeyBestStreak        = "bestStreak"
	KeyLastActiveDay     = "lastActiveDay"
	KeyArcStartDates     = "arcStartDates"
	KeyToneMode          = "toneMode"
	KeyAppearanceMode    = "appearanceMode"
	KeyHideHeavyTopics   = "hideHeavyTopics"
	KeyPrimaryFocus      = "primaryFocus"
	KeyOverwhelmedLevel  = "overwhelmedLevel"
	KeyHomeShowCompleted = "home.showCompletedQuests"
	KeyHomeCompactLayout = "home.compactLayout"
)

// FlatKeys returns the flat legacy key catalog.
func FlatKeys() []string {
	return []string{
		KeyCompletedItemIDs,
		KeyCurrentStreak,
		KeyBestStreak,
		KeyLastActiveDay,
		KeyArcStartDates,
		KeyToneMode,
		KeyAppearanceMode,
		KeyHideHeavyTopics,
		KeyPrimaryFocus,
		KeyOverwhelmedLevel,
		KeyHomeShowCompleted,
		KeyHomeCompactLayout,
	}
}

// LegacyKeys returns every key that belongs to a legacy generation.
func LegacyKeys() []string {
	return append([]string{LegacyV1Key}, FlatKeys()...)
}
