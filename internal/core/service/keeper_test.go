package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yndnr/questkeep-go/internal/core/domain"
)

// mockRepo is an in-memory SnapshotRepository that mirrors the store's
// contract: Load normalizes, Save stores verbatim.
type mockRepo struct {
	saved   *domain.Snapshot
	legacy  *domain.Snapshot
	saves   int
	saveErr error
}

func (m *mockRepo) Load(context.Context) *domain.Snapshot {
	switch {
	case m.saved != nil:
		return domain.Normalize(m.saved)
	case m.legacy != nil:
		return domain.Normalize(m.legacy)
	default:
		return domain.DefaultSnapshot()
	}
}

func (m *mockRepo) Save(_ context.Context, s *domain.Snapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.saved = s.Clone()
	return nil
}

func (m *mockRepo) Reset(context.Context) error {
	m.saved = nil
	return nil
}

func (m *mockRepo) Purge(context.Context) error {
	m.saved = nil
	m.legacy = nil
	return nil
}

func newTestKeeper(t *testing.T) (*Keeper, *mockRepo) {
	t.Helper()
	repo := &mockRepo{}
	k := NewKeeper(repo)
	k.Open(context.Background())
	return k, repo
}

func TestKeeper_CompleteItem(t *testing.T) {
	k, _ := newTestKeeper(t)

	changed, err := k.CompleteItem("q-1")
	if err != nil || !changed {
		t.Fatalf("CompleteItem() = %v, %v", changed, err)
	}
	changed, err = k.CompleteItem("q-1")
	if err != nil || changed {
		t.Errorf("second CompleteItem() = %v, %v; want no-op", changed, err)
	}
	if _, err := k.CompleteItem("  "); !domain.IsDomainError(err, "QK-PROG-4000") {
		t.Errorf("CompleteItem(blank) error = %v", err)
	}

	if !k.UncompleteItem("q-1") {
		t.Error("UncompleteItem() = false")
	}
	if k.UncompleteItem("q-1") {
		t.Error("second UncompleteItem() = true")
	}
}

func TestKeeper_SetStreaks(t *testing.T) {
	k, _ := newTestKeeper(t)

	if err := k.SetStreaks(5, 2); err != nil {
		t.Fatalf("SetStreaks(5, 2) error = %v", err)
	}
	p := k.Snapshot().Progress
	if p.CurrentStreak != 5 || p.BestStreak != 2 {
		t.Errorf("streaks = %d/%d; stored verbatim", p.CurrentStreak, p.BestStreak)
	}

	err := k.SetStreaks(-1, 0)
	if !errors.Is(err, domain.ErrProgressInvalid) {
		t.Errorf("SetStreaks(-1, 0) error = %v", err)
	}
}

func TestKeeper_ArcsAndActivity(t *testing.T) {
	k, _ := newTestKeeper(t)
	at := time.Date(2024, 6, 1, 9, 30, 0, 0, time.FixedZone("X", 3600))

	if err := k.StartArc("arc-calm", at); err != nil {
		t.Fatal(err)
	}
	if err := k.StartArc("", at); !errors.Is(err, domain.ErrProgressInvalid) {
		t.Errorf("StartArc(blank) error = %v", err)
	}
	k.MarkActive(at)

	p := k.Snapshot().Progress
	if got := p.ArcStartDates["arc-calm"]; !got.Equal(at) || got.Location() != time.UTC {
		t.Errorf("ArcStartDates[arc-calm] = %v", got)
	}
	if p.LastActiveDay == nil || !p.LastActiveDay.Equal(at) {
		t.Errorf("LastActiveDay = %v", p.LastActiveDay)
	}
}

func TestKeeper_ApplySetting(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		check   func(domain.UserSettings) bool
		wantErr error
	}{
		{"tone", "real-talk", func(s domain.UserSettings) bool { return s.Tone == domain.ToneRealTalk }, nil},
		{"Appearance", "DARK", func(s domain.UserSettings) bool { return s.Appearance == domain.AppearanceDark }, nil},
		{"safeMode", "true", func(s domain.UserSettings) bool { return s.SafeMode }, nil},
		{"maxConcurrentArcs", "3", func(s domain.UserSettings) bool { return s.MaxConcurrentArcs == 3 }, nil},
		{"enabledDimensions", "body, mind", func(s domain.UserSettings) bool {
			return s.EnabledDimensions.Equal(domain.NewSet(domain.DimensionBody, domain.DimensionMind))
		}, nil},
		{"enabledDimensions", "all", func(s domain.UserSettings) bool { return s.EnabledDimensions.Len() == 6 }, nil},
		{"primaryFocus", "heart", func(s domain.UserSettings) bool {
			return s.PrimaryFocus != nil && *s.PrimaryFocus == domain.DimensionHeart
		}, nil},
		{"primaryFocus", "none", func(s domain.UserSettings) bool { return s.PrimaryFocus == nil }, nil},
		{"overwhelmedLevel", "4", func(s domain.UserSettings) bool { return s.OverwhelmedLevel == 4 }, nil},

		{"tone", "harsh", nil, domain.ErrSettingInvalid},
		{"maxConcurrentArcs", "9", nil, domain.ErrSettingInvalid},
		{"safeMode", "maybe", nil, domain.ErrSettingInvalid},
		{"enabledDimensions", "body,space", nil, domain.ErrSettingInvalid},
		{"enabledDimensions", ",", nil, domain.ErrSettingInvalid},
		{"colour", "blue", nil, domain.ErrSettingUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name+"="+tt.value, func(t *testing.T) {
			k, _ := newTestKeeper(t)
			before := k.Snapshot().Settings

			err := k.ApplySetting(tt.name, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ApplySetting() error = %v, want %v", err, tt.wantErr)
				}
				if !k.Snapshot().Settings.Equal(before) {
					t.Error("failed ApplySetting changed settings")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplySetting() error = %v", err)
			}
			if !tt.check(k.Snapshot().Settings) {
				t.Errorf("setting not applied: %+v", k.Snapshot().Settings)
			}
		})
	}
}

func TestKeeper_SettingValue(t *testing.T) {
	k, _ := newTestKeeper(t)

	if v, err := k.SettingValue("enabledDimensions"); err != nil || v != "body,mind,heart,connection,work,home" {
		t.Errorf("SettingValue(enabledDimensions) = %q, %v", v, err)
	}
	if v, _ := k.SettingValue("primaryFocus"); v != "none" {
		t.Errorf("SettingValue(primaryFocus) = %q", v)
	}
	if _, err := k.SettingValue("nope"); !errors.Is(err, domain.ErrSettingUnknown) {
		t.Errorf("SettingValue(nope) error = %v", err)
	}

	// Every formatted value is accepted back.
	for _, pair := range FormatSettings(k.Snapshot().Settings) {
		if err := k.ApplySetting(pair[0], pair[1]); err != nil {
			t.Errorf("ApplySetting(%s, %q) error = %v", pair[0], pair[1], err)
		}
	}
	if len(SettingNames()) != len(FormatSettings(domain.DefaultSettings())) {
		t.Error("SettingNames and FormatSettings disagree")
	}
}

func TestKeeper_SaveAndDirty(t *testing.T) {
	k, repo := newTestKeeper(t)
	ctx := context.Background()

	if saved, err := k.SaveIfDirty(ctx); saved || err != nil {
		t.Errorf("SaveIfDirty() on clean keeper = %v, %v", saved, err)
	}

	if _, err := k.CompleteItem("q-1"); err != nil {
		t.Fatal(err)
	}
	if !k.Dirty() {
		t.Error("Dirty() = false after mutation")
	}
	if saved, err := k.SaveIfDirty(ctx); !saved || err != nil {
		t.Errorf("SaveIfDirty() = %v, %v", saved, err)
	}
	if k.Dirty() || repo.saves != 1 {
		t.Errorf("Dirty() = %v, saves = %d", k.Dirty(), repo.saves)
	}
	if !repo.saved.Progress.CompletedItemIDs.Has("q-1") {
		t.Error("saved snapshot missing q-1")
	}

	repo.saveErr = errors.New("disk full")
	k.MarkActive(time.Now())
	if err := k.Save(ctx); err == nil {
		t.Error("Save() should surface repository errors")
	}
	if !k.Dirty() {
		t.Error("failed Save cleared the dirty flag")
	}
}

func TestKeeper_ResetKeepsLegacy(t *testing.T) {
	legacy := domain.DefaultSnapshot()
	legacy.Progress.CurrentStreak = 3
	repo := &mockRepo{legacy: legacy}
	k := NewKeeper(repo)
	ctx := context.Background()
	k.Open(ctx)

	if err := k.SetStreaks(10, 10); err != nil {
		t.Fatal(err)
	}
	if err := k.Save(ctx); err != nil {
		t.Fatal(err)
	}

	snap, err := k.Reset(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Progress.CurrentStreak != 3 {
		t.Errorf("after Reset CurrentStreak = %d, want legacy 3", snap.Progress.CurrentStreak)
	}

	snap, err = k.Purge(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !snap.Equal(domain.DefaultSnapshot()) {
		t.Errorf("after Purge = %+v, want defaults", snap)
	}
}

func TestKeeper_Replace(t *testing.T) {
	k, repo := newTestKeeper(t)
	ctx := context.Background()

	in := domain.DefaultSnapshot()
	in.SchemaVersion = 1
	in.Settings.MaxConcurrentArcs = 0
	in.Progress.CompletedItemIDs.Add("imported")

	if err := k.Replace(ctx, in); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	got := k.Snapshot()
	if got.SchemaVersion != domain.CurrentSchemaVersion || got.Settings.MaxConcurrentArcs != 1 {
		t.Errorf("Replace did not normalize: %+v", got)
	}
	if !repo.saved.Equal(got) {
		t.Error("Replace did not save")
	}
	if err := k.Replace(ctx, nil); !errors.Is(err, domain.ErrSnapshotInvalid) {
		t.Errorf("Replace(nil) error = %v", err)
	}
}

func TestKeeper_SnapshotIsCopy(t *testing.T) {
	k, _ := newTestKeeper(t)

	s := k.Snapshot()
	s.Progress.CompletedItemIDs.Add("leak")
	s.Settings.EnabledDimensions.Remove(domain.DimensionBody)

	again := k.Snapshot()
	if again.Progress.CompletedItemIDs.Has("leak") || !again.Settings.EnabledDimensions.Has(domain.DimensionBody) {
		t.Error("Snapshot() returned shared state")
	}
}

func TestKeeper_WithoutOpen(t *testing.T) {
	k := NewKeeper(&mockRepo{})
	if _, err := k.CompleteItem("x"); err != nil {
		t.Fatal(err)
	}
	if !k.Snapshot().Progress.CompletedItemIDs.Has("x") {
		t.Error("mutation before Open was lost")
	}
}
