// Package tests provides integration tests that run the snapshot store
// over a real Badger database.
//
// The tests cover:
//   - Flat-key migration surviving a reopen
//   - V1 migration leaving the legacy key in place
//   - Corrupt canonical recovery
package tests

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/yndnr/questkeep-go/internal/core/domain"
	"github.com/yndnr/questkeep-go/internal/core/service"
	"github.com/yndnr/questkeep-go/internal/storage"
	"github.com/yndnr/questkeep-go/internal/storage/migrate"
	"github.com/yndnr/questkeep-go/internal/storage/snapshot"
)

// openBadger opens a Badger engine in dir with automatic GC disabled.
func openBadger(t *testing.T, dir string) *storage.BadgerEngine {
	t.Helper()
	cfg := storage.DefaultKVConfig(dir)
	cfg.Badger.GCInterval = "0"
	engine, err := storage.NewBadgerEngine(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	return engine
}

func TestBadger_FlatMigrationSurvivesReopen(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	dir := t.TempDir()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	// Phase 1: a flat-key install.
	engine := openBadger(t, dir)
	seed := map[string]any{
		migrate.KeyCompletedItemIDs: []string{"q-1", "q-2", "q-1"},
		migrate.KeyCurrentStreak:    3,
		migrate.KeyBestStreak:       8,
		migrate.KeyLastActiveDay:    storage.EpochSeconds(day),
		migrate.KeyToneMode:         "real-talk",
		migrate.KeyPrimaryFocus:     "heart",
	}
	for key, v := range seed {
		if err := storage.PutValue(ctx, engine, key, v); err != nil {
			t.Fatal(err)
		}
	}

	res := snapshot.New(engine, snapshot.Config{}).LoadDetailed(ctx)
	if res.Source != migrate.SourceFlat || !res.Persisted {
		t.Fatalf("first load = %s persisted=%v", res.Source, res.Persisted)
	}
	if err := engine.Close(); err != nil {
		t.Fatal(err)
	}

	// Phase 2: the canonical key wins after reopening.
	engine = openBadger(t, dir)
	defer engine.Close()

	res = snapshot.New(engine, snapshot.Config{}).LoadDetailed(ctx)
	if res.Source != migrate.SourceCanonical {
		t.Fatalf("second load source = %s", res.Source)
	}
	snap := res.Snapshot
	if !snap.Progress.CompletedItemIDs.Equal(domain.NewSet("q-1", "q-2")) {
		t.Errorf("completed = %v", snap.Progress.CompletedItemIDs.Sorted())
	}
	if snap.Progress.LastActiveDay == nil || !snap.Progress.LastActiveDay.Equal(day) {
		t.Errorf("LastActiveDay = %v", snap.Progress.LastActiveDay)
	}
	if snap.Settings.Tone != domain.ToneRealTalk || snap.Settings.PrimaryFocus == nil {
		t.Errorf("settings = %+v", snap.Settings)
	}

	// Flat keys are never deleted by migration.
	if _, err := engine.Get(ctx, migrate.KeyCurrentStreak); err != nil {
		t.Errorf("flat key removed: %v", err)
	}
}

func TestBadger_KeeperEditsPersist(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	dir := t.TempDir()

	engine := openBadger(t, dir)
	keeper := service.NewKeeper(snapshot.New(engine, snapshot.Config{}))
	keeper.Open(ctx)
	if _, err := keeper.CompleteItem("q-9"); err != nil {
		t.Fatal(err)
	}
	if err := keeper.ApplySetting("appearance", "dark"); err != nil {
		t.Fatal(err)
	}
	if _, err := keeper.SaveIfDirty(ctx); err != nil {
		t.Fatal(err)
	}
	if err := engine.Close(); err != nil {
		t.Fatal(err)
	}

	engine = openBadger(t, dir)
	defer engine.Close()
	snap := snapshot.New(engine, snapshot.Config{}).Load(ctx)
	if !snap.Progress.CompletedItemIDs.Has("q-9") || snap.Settings.Appearance != domain.AppearanceDark {
		t.Errorf("reloaded = %+v", snap)
	}
}

func TestBadger_CorruptCanonicalFallsBackToV1(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	engine := openBadger(t, t.TempDir())
	defer engine.Close()

	v1 := domain.LegacySnapshotV1{
		Version:  1,
		Progress: domain.DefaultProgress(),
		Preferences: domain.PreferencesState{
			Tone:             domain.ToneRealTalk,
			Appearance:       domain.AppearanceLight,
			OverwhelmedLevel: 2,
		},
		Home: domain.DefaultHomePreferences(),
	}
	v1.Progress.CurrentStreak = 6
	if err := storage.PutValue(ctx, engine, migrate.LegacyV1Key, v1); err != nil {
		t.Fatal(err)
	}
	if err := engine.Set(ctx, migrate.CanonicalKey, []byte("{truncated")); err != nil {
		t.Fatal(err)
	}

	res := snapshot.New(engine, snapshot.Config{}).LoadDetailed(ctx)
	if res.Source != migrate.SourceLegacyV1Key || !res.ClearedCorrupt || !res.Persisted {
		t.Fatalf("load = %s cleared=%v persisted=%v", res.Source, res.ClearedCorrupt, res.Persisted)
	}
	if res.Snapshot.Progress.CurrentStreak != 6 || res.Snapshot.Settings.OverwhelmedLevel != 2 {
		t.Errorf("snapshot = %+v", res.Snapshot)
	}

	data, err := engine.Get(ctx, migrate.CanonicalKey)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := migrate.DecodeCanonical(data); err != nil {
		t.Errorf("canonical not rewritten: %v", err)
	}
	if _, err := engine.Get(ctx, migrate.LegacyV1Key); err != nil {
		t.Errorf("V1 key removed: %v", err)
	}
}
