package domain

import "slices"

// ToneMode selects the voice used for copy and nudges.
type ToneMode string

const (
	ToneSoft     ToneMode = "soft"
	ToneRealTalk ToneMode = "real-talk"
)

// ToneModes lists the recognized tone modes.
var ToneModes = []ToneMode{ToneSoft, ToneRealTalk}

// Valid reports whether t is a recognized tone mode.
func (t ToneMode) Valid() bool { return slices.Contains(ToneModes, t) }

// AppearanceMode selects the color scheme.
type AppearanceMode string

const (
	AppearanceSystem AppearanceMode = "system"
	AppearanceLight  AppearanceMode = "light"
	AppearanceDark   AppearanceMode = "dark"
)

// AppearanceModes lists the recognized appearance modes.
var AppearanceModes = []AppearanceMode{AppearanceSystem, AppearanceLight, AppearanceDark}

// Valid reports whether a is a recognized appearance mode.
func (a AppearanceMode) Valid() bool { return slices.Contains(AppearanceModes, a) }

// NudgeIntensity controls how insistent daily reminders are.
type NudgeIntensity string

const (
	NudgeGentle     NudgeIntensity = "gentle"
	NudgeStandard   NudgeIntensity = "standard"
	NudgePersistent NudgeIntensity = "persistent"
)

// NudgeIntensities lists the recognized nudge intensities.
var NudgeIntensities = []NudgeIntensity{NudgeGentle, NudgeStandard, NudgePersistent}

// Valid reports whether n is a recognized nudge intensity.
func (n NudgeIntensity) Valid() bool { return slices.Contains(NudgeIntensities, n) }

// QuestDensity controls how many quests the board shows at once.
type QuestDensity string

const (
	DensityLight    QuestDensity = "light"
	DensityBalanced QuestDensity = "balanced"
	DensityFull     QuestDensity = "full"
)

// QuestDensities lists the recognized quest-board densities.
var QuestDensities = []QuestDensity{DensityLight, DensityBalanced, DensityFull}

// Valid reports whether d is a recognized density.
func (d QuestDensity) Valid() bool { return slices.Contains(QuestDensities, d) }

// LifeDimension is one area of life quests are grouped under.
type LifeDimension string

const (
	DimensionBody       LifeDimension = "body"
	DimensionMind       LifeDimension = "mind"
	DimensionHeart      LifeDimension = "heart"
	DimensionConnection LifeDimension = "connection"
	DimensionWork       LifeDimension = "work"
	DimensionHome       LifeDimension = "home"
)

// LifeDimensions lists every recognized dimension in display order.
var LifeDimensions = []LifeDimension{
	DimensionBody,
	DimensionMind,
	DimensionHeart,
	DimensionConnection,
	DimensionWork,
	DimensionHome,
}

// Valid reports whether d is a recognized dimension.
func (d LifeDimension) Valid() bool { return slices.Contains(LifeDimensions, d) }

// AllDimensions returns a fresh set holding every dimension.
func AllDimensions() Set[LifeDimension] {
	return NewSet(LifeDimensions...)
}

// Arc concurrency bounds.
const (
	MinConcurrentArcs = 1
	MaxConcurrentArcs = 3
)

// Setting defaults.
const (
	DefaultTone                   = ToneSoft
	DefaultAppearance             = AppearanceSystem
	DefaultNudgeIntensity         = NudgeStandard
	DefaultQuestDensity           = DensityBalanced
	DefaultMaxConcurrentArcs      = 1
	DefaultShowHeartRepairContent = true
	DefaultShowProTeasers         = true
	DefaultShowHeroCards          = true
	DefaultShowStreaks            = true
	DefaultShowArcProgressOnShare = true
	DefaultShowCompletedQuests    = true
	DefaultCompactLayout          = false
)

// UserSettings is the flat record of user preferences.
//
// Nothing here is computed. Fields are caller supplied and stored as-is,
// apart from the repairs Normalize performs.
type UserSettings struct {
	Tone                   ToneMode           `json:"tone"`
	Appearance             AppearanceMode     `json:"appearance"`
	SafeMode               bool               `json:"safeMode"` // hides sensitive content categories
	NudgeIntensity         NudgeIntensity     `json:"nudgeIntensity"`
	MaxConcurrentArcs      int                `json:"maxConcurrentArcs"`
	QuestDensity           QuestDensity       `json:"questDensity"`
	ShowHeartRepairContent bool               `json:"showHeartRepairContent"`
	EnabledDimensions      Set[LifeDimension] `json:"enabledDimensions"`
	ShowProTeasers         bool               `json:"showProTeasers"`

	// Home layout.
	ShowHeroCards          bool `json:"showHeroCards"`
	ShowStreaks            bool `json:"showStreaks"`
	ShowArcProgressOnShare bool `json:"showArcProgressOnShare"`
	ShowCompletedQuests    bool `json:"showCompletedQuests"`
	CompactLayout          bool `json:"compactLayout"`

	PrimaryFocus     *LifeDimension `json:"primaryFocus"`
	OverwhelmedLevel int            `json:"overwhelmedLevel"`
}

// DefaultSettings returns settings with every field at its documented default.
func DefaultSettings() UserSettings {
	return UserSettings{
		Tone:                   DefaultTone,
		Appearance:             DefaultAppearance,
		NudgeIntensity:         DefaultNudgeIntensity,
		MaxConcurrentArcs:      DefaultMaxConcurrentArcs,
		QuestDensity:           DefaultQuestDensity,
		ShowHeartRepairContent: DefaultShowHeartRepairContent,
		EnabledDimensions:      AllDimensions(),
		ShowProTeasers:         DefaultShowProTeasers,
		ShowHeroCards:          DefaultShowHeroCards,
		ShowStreaks:            DefaultShowStreaks,
		ShowArcProgressOnShare: DefaultShowArcProgressOnShare,
		ShowCompletedQuests:    DefaultShowCompletedQuests,
		CompactLayout:          DefaultCompactLayout,
	}
}

// Clone returns a deep copy.
func (s UserSettings) Clone() UserSettings {
	out := s
	if s.EnabledDimensions != nil {
		out.EnabledDimensions = s.EnabledDimensions.Clone()
	}
	if s.PrimaryFocus != nil {
		focus := *s.PrimaryFocus
		out.PrimaryFocus = &focus
	}
	return out
}

// Equal reports whether both records hold the same values.
func (s UserSettings) Equal(o UserSettings) bool {
	if (s.PrimaryFocus == nil) != (o.PrimaryFocus == nil) {
		return false
	}
	if s.PrimaryFocus != nil && *s.PrimaryFocus != *o.PrimaryFocus {
		return false
	}
	return s.Tone == o.Tone &&
		s.Appearance == o.Appearance &&
		s.SafeMode == o.SafeMode &&
		s.NudgeIntensity == o.NudgeIntensity &&
		s.MaxConcurrentArcs == o.MaxConcurrentArcs &&
		s.QuestDensity == o.QuestDensity &&
		s.ShowHeartRepairContent == o.ShowHeartRepairContent &&
		s.EnabledDimensions.Equal(o.EnabledDimensions) &&
		s.ShowProTeasers == o.ShowProTeasers &&
		s.ShowHeroCards == o.ShowHeroCards &&
		s.ShowStreaks == o.ShowStreaks &&
		s.ShowArcProgressOnShare == o.ShowArcProgressOnShare &&
		s.ShowCompletedQuests == o.ShowCompletedQuests &&
		s.CompactLayout == o.CompactLayout &&
		s.OverwhelmedLevel == o.OverwhelmedLevel
}
