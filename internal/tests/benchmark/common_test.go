package benchmark

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/questkeep-go/internal/core/domain"
	"github.com/yndnr/questkeep-go/internal/storage"
	"github.com/yndnr/questkeep-go/internal/storage/migrate"
)

// ItemCounts defines the completed item counts for benchmarking.
var ItemCounts = []int{10, 100, 1000, 10000}

// SmallItemCounts for quick benchmarks.
var SmallItemCounts = []int{10, 1000}

// newItemID generates a checklist item ID.
func newItemID() string {
	return "q-" + strings.ToLower(ulid.Make().String())
}

// newSnapshot returns a snapshot with count completed items and a few arcs.
func newSnapshot(count int) *domain.Snapshot {
	snap := domain.DefaultSnapshot()
	for i := 0; i < count; i++ {
		snap.Progress.CompletedItemIDs.Add(newItemID())
	}
	now := time.Now().UTC().Truncate(time.Second)
	snap.Progress.CurrentStreak = 4
	snap.Progress.BestStreak = 9
	snap.Progress.LastActiveDay = &now
	for i := 0; i < 8; i++ {
		snap.Progress.ArcStartDates[fmt.Sprintf("arc-%d", i)] = now.Add(-time.Duration(i) * 24 * time.Hour)
	}
	return snap
}

// seedFlat writes the flat legacy keys for a snapshot with count items.
func seedFlat(b *testing.B, kv storage.KVStore, count int) {
	b.Helper()
	ctx := context.Background()
	snap := newSnapshot(count)

	arcs := make(map[string]float64, len(snap.Progress.ArcStartDates))
	for id, at := range snap.Progress.ArcStartDates {
		arcs[id] = storage.EpochSeconds(at)
	}
	values := map[string]any{
		migrate.KeyCompletedItemIDs: snap.Progress.CompletedItemIDs.Sorted(),
		migrate.KeyCurrentStreak:    snap.Progress.CurrentStreak,
		migrate.KeyBestStreak:       snap.Progress.BestStreak,
		migrate.KeyLastActiveDay:    storage.EpochSeconds(*snap.Progress.LastActiveDay),
		migrate.KeyArcStartDates:    arcs,
		migrate.KeyToneMode:         string(domain.ToneRealTalk),
		migrate.KeyHideHeavyTopics:  true,
	}
	for key, v := range values {
		if err := storage.PutValue(ctx, kv, key, v); err != nil {
			b.Fatalf("seed %s: %v", key, err)
		}
	}
}

// seedV1 writes a V1 snapshot with count items under key.
func seedV1(b *testing.B, kv storage.KVStore, key string, count int) {
	b.Helper()
	snap := newSnapshot(count)
	v1 := domain.LegacySnapshotV1{
		Version:  1,
		Progress: snap.Progress,
		Preferences: domain.PreferencesState{
			Tone:       domain.ToneRealTalk,
			Appearance: domain.AppearanceDark,
		},
		Home: domain.DefaultHomePreferences(),
	}
	if err := storage.PutValue(context.Background(), kv, key, v1); err != nil {
		b.Fatalf("seed v1: %v", err)
	}
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithItemCounts runs a benchmark function with various item counts.
func runWithItemCounts(b *testing.B, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("items_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}
