package service

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yndnr/questkeep-go/internal/core/domain"
)

// settingDef binds a setting name to its parser and formatter.
type settingDef struct {
	name   string
	apply  func(s *domain.UserSettings, value string) error
	format func(s domain.UserSettings) string
}

var settingDefs = []settingDef{
	enumSetting("tone", domain.ToneModes, func(s *domain.UserSettings) *domain.ToneMode { return &s.Tone }),
	enumSetting("appearance", domain.AppearanceModes, func(s *domain.UserSettings) *domain.AppearanceMode { return &s.Appearance }),
	boolSetting("safeMode", func(s *domain.UserSettings) *bool { return &s.SafeMode }),
	enumSetting("nudgeIntensity", domain.NudgeIntensities, func(s *domain.UserSettings) *domain.NudgeIntensity { return &s.NudgeIntensity }),
	intSetting("maxConcurrentArcs", domain.MinConcurrentArcs, domain.MaxConcurrentArcs, func(s *domain.UserSettings) *int { return &s.MaxConcurrentArcs }),
	enumSetting("questDensity", domain.QuestDensities, func(s *domain.UserSettings) *domain.QuestDensity { return &s.QuestDensity }),
	boolSetting("showHeartRepairContent", func(s *domain.UserSettings) *bool { return &s.ShowHeartRepairContent }),
	{name: "enabledDimensions", apply: applyDimensions, format: formatDimensions},
	boolSetting("showProTeasers", func(s *domain.UserSettings) *bool { return &s.ShowProTeasers }),
	boolSetting("showHeroCards", func(s *domain.UserSettings) *bool { return &s.ShowHeroCards }),
	boolSetting("showStreaks", func(s *domain.UserSettings) *bool { return &s.ShowStreaks }),
	boolSetting("showArcProgressOnShare", func(s *domain.UserSettings) *bool { return &s.ShowArcProgressOnShare }),
	boolSetting("showCompletedQuests", func(s *domain.UserSettings) *bool { return &s.ShowCompletedQuests }),
	boolSetting("compactLayout", func(s *domain.UserSettings) *bool { return &s.CompactLayout }),
	{name: "primaryFocus", apply: applyFocus, format: formatFocus},
	intSetting("overwhelmedLevel", 0, 10, func(s *domain.UserSettings) *int { return &s.OverwhelmedLevel }),
}

// SettingNames lists every name ApplySetting accepts, in display order.
func SettingNames() []string {
	names := make([]string, len(settingDefs))
	for i, def := range settingDefs {
		names[i] = def.name
	}
	return names
}

// FormatSettings renders every setting as name/value pairs in display order.
func FormatSettings(s domain.UserSettings) [][2]string {
	out := make([][2]string, len(settingDefs))
	for i, def := range settingDefs {
		out[i] = [2]string{def.name, def.format(s)}
	}
	return out
}

// lookupSetting matches names case-insensitively.
func lookupSetting(name string) (settingDef, bool) {
	for _, def := range settingDefs {
		if strings.EqualFold(def.name, strings.TrimSpace(name)) {
			return def, true
		}
	}
	return settingDef{}, false
}

func invalid(name, value, want string) error {
	return domain.ErrSettingInvalid.WithDetails(fmt.Sprintf("%s: %q is not %s", name, value, want))
}

func enumSetting[T ~string](name string, options []T, field func(*domain.UserSettings) *T) settingDef {
	return settingDef{
		name: name,
		apply: func(s *domain.UserSettings, value string) error {
			v := T(strings.ToLower(value))
			if !slices.Contains(options, v) {
				return invalid(name, value, fmt.Sprintf("one of %v", options))
			}
			*field(s) = v
			return nil
		},
		format: func(s domain.UserSettings) string { return string(*field(&s)) },
	}
}

func boolSetting(name string, field func(*domain.UserSettings) *bool) settingDef {
	return settingDef{
		name: name,
		apply: func(s *domain.UserSettings, value string) error {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return invalid(name, value, "a boolean")
			}
			*field(s) = b
			return nil
		},
		format: func(s domain.UserSettings) string { return strconv.FormatBool(*field(&s)) },
	}
}

func intSetting(name string, lo, hi int, field func(*domain.UserSettings) *int) settingDef {
	return settingDef{
		name: name,
		apply: func(s *domain.UserSettings, value string) error {
			n, err := strconv.Atoi(value)
			if err != nil || n < lo || n > hi {
				return invalid(name, value, fmt.Sprintf("an integer in [%d,%d]", lo, hi))
			}
			*field(s) = n
			return nil
		},
		format: func(s domain.UserSettings) string { return strconv.Itoa(*field(&s)) },
	}
}

// applyDimensions accepts a comma-separated list, or "all".
func applyDimensions(s *domain.UserSettings, value string) error {
	if strings.EqualFold(value, "all") {
		s.EnabledDimensions = domain.AllDimensions()
		return nil
	}
	dims := domain.NewSet[domain.LifeDimension]()
	for _, part := range strings.Split(value, ",") {
		d := domain.LifeDimension(strings.ToLower(strings.TrimSpace(part)))
		if d == "" {
			continue
		}
		if !d.Valid() {
			return invalid("enabledDimensions", string(d), fmt.Sprintf("one of %v", domain.LifeDimensions))
		}
		dims.Add(d)
	}
	if dims.Len() == 0 {
		return invalid("enabledDimensions", value, "a non-empty list")
	}
	s.EnabledDimensions = dims
	return nil
}

func formatDimensions(s domain.UserSettings) string {
	// Display order, not alphabetical.
	var parts []string
	for _, d := range domain.LifeDimensions {
		if s.EnabledDimensions.Has(d) {
			parts = append(parts, string(d))
		}
	}
	return strings.Join(parts, ",")
}

// applyFocus accepts a dimension, or "none" to clear.
func applyFocus(s *domain.UserSettings, value string) error {
	if value == "" || strings.EqualFold(value, "none") {
		s.PrimaryFocus = nil
		return nil
	}
	d := domain.LifeDimension(strings.ToLower(value))
	if !d.Valid() {
		return invalid("primaryFocus", value, fmt.Sprintf("one of %v or none", domain.LifeDimensions))
	}
	s.PrimaryFocus = &d
	return nil
}

func formatFocus(s domain.UserSettings) string {
	if s.PrimaryFocus == nil {
		return "none"
	}
	return string(*s.PrimaryFocus)
}
