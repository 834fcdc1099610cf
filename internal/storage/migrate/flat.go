package migrate

import (
	"context"
	"time"

	"github.com/yndnr/questkeep-go/internal/core/domain"
	"github.com/yndnr/questkeep-go/internal/storage"
)

// flatKey is a typed accessor for one flat legacy key. A key that is
// missing or holds a value of the wrong type yields def.
type flatKey[T any] struct {
	name string
	def  T
	read func(*storage.TypedReader, context.Context, string) (T, bool)
}

func (k flatKey[T]) get(ctx context.Context, r *storage.TypedReader) T {
	if v, ok := k.read(r, ctx, k.name); ok {
		return v
	}
	return k.def
}

var (
	flatCompleted = flatKey[[]string]{KeyCompletedItemIDs, nil, (*storage.TypedReader).StringSlice}
	flatCurrent   = flatKey[int]{KeyCurrentStreak, 0, (*storage.TypedReader).Int}
	flatBest      = flatKey[int]{KeyBestStreak, 0, (*storage.TypedReader).Int}
	flatLastDay   = flatKey[*time.Time]{KeyLastActiveDay, nil, readOptionalTime}
	flatArcs      = flatKey[map[string]float64]{KeyArcStartDates, nil, (*storage.TypedReader).Float64Map}
	flatTone      = flatKey[domain.ToneMode]{KeyToneMode, domain.DefaultTone, readTone}
	flatAppear    = flatKey[domain.AppearanceMode]{KeyAppearanceMode, domain.DefaultAppearance, readAppearance}
	flatHideHeavy = flatKey[bool]{KeyHideHeavyTopics, false, (*storage.TypedReader).Bool}
	flatFocus     = flatKey[*domain.LifeDimension]{KeyPrimaryFocus, nil, readFocus}
	flatOverwhelm = flatKey[int]{KeyOverwhelmedLevel, 0, (*storage.TypedReader).Int}
	flatShowDone  = flatKey[bool]{KeyHomeShowCompleted, domain.DefaultShowCompletedQuests, (*storage.TypedReader).Bool}
	flatCompact   = flatKey[bool]{KeyHomeCompactLayout, domain.DefaultCompactLayout, (*storage.TypedReader).Bool}
)

// MigrateFlat rebuilds a snapshot from the flat legacy keys.
//
// Every key is read independently and falls back to its default. The
// second result is false when there is nothing worth migrating: no
// completed items, both streaks zero, no last active day, no arc start
// dates, no primary focus and hideHeavyTopics false. Tone, appearance
// and the home layout flags alone never count as prior state.
func MigrateFlat(ctx context.Context, r *storage.TypedReader) (*domain.Snapshot, bool) {
	progress := domain.DefaultProgress()
	for _, id := range flatCompleted.get(ctx, r) {
		progress.CompletedItemIDs.Add(id)
	}
	progress.CurrentStreak = flatCurrent.get(ctx, r)
	progress.BestStreak = flatBest.get(ctx, r)
	progress.LastActiveDay = flatLastDay.get(ctx, r)
	for id, secs := range flatArcs.get(ctx, r) {
		if at, ok := storage.EpochTime(secs); ok {
			progress.ArcStartDates[id] = at
		}
	}

	hideHeavy := flatHideHeavy.get(ctx, r)
	focus := flatFocus.get(ctx, r)

	if progress.IsEmpty() && focus == nil && !hideHeavy {
		return nil, false
	}

	snap := domain.DefaultSnapshot()
	snap.Progress = progress
	snap.Settings.Tone = flatTone.get(ctx, r)
	snap.Settings.Appearance = flatAppear.get(ctx, r)
	snap.Settings.SafeMode = hideHeavy
	snap.Settings.PrimaryFocus = focus
	snap.Settings.OverwhelmedLevel = flatOverwhelm.get(ctx, r)
	snap.Settings.ShowCompletedQuests = flatShowDone.get(ctx, r)
	snap.Settings.CompactLayout = flatCompact.get(ctx, r)

	return domain.Normalize(snap), true
}

func readOptionalTime(r *storage.TypedReader, ctx context.Context, key string) (*time.Time, bool) {
	t, ok := r.Time(ctx, key)
	if !ok {
		return nil, false
	}
	return &t, true
}

func readTone(r *storage.TypedReader, ctx context.Context, key string) (domain.ToneMode, bool) {
	s, ok := r.String(ctx, key)
	return domain.ToneMode(s), ok && domain.ToneMode(s).Valid()
}

func readAppearance(r *storage.TypedReader, ctx context.Context, key string) (domain.AppearanceMode, bool) {
	s, ok := r.String(ctx, key)
	return domain.AppearanceMode(s), ok && domain.AppearanceMode(s).Valid()
}

// readFocus treats an unrecognized dimension as absent.
func readFocus(r *storage.TypedReader, ctx context.Context, key string) (*domain.LifeDimension, bool) {
	s, ok := r.String(ctx, key)
	if !ok {
		return nil, false
	}
	d := domain.LifeDimension(s)
	if !d.Valid() {
		return nil, false
	}
	return &d, true
}
