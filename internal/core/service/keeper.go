package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/yndnr/questkeep-go/internal/core/domain"
)

// SnapshotRepository defines the persistence interface Keeper depends on.
type SnapshotRepository interface {
	// Load returns the current snapshot. It never fails.
	Load(ctx context.Context) *domain.Snapshot

	// Save overwrites the persisted snapshot.
	Save(ctx context.Context, snap *domain.Snapshot) error

	// Reset removes the persisted snapshot, keeping legacy data.
	Reset(ctx context.Context) error

	// Purge removes the persisted snapshot and all legacy data.
	Purge(ctx context.Context) error
}

// Keeper owns the in-memory snapshot.
type Keeper struct {
	repo SnapshotRepository

	mu    sync.Mutex
	snap  *domain.Snapshot
	dirty bool
}

// NewKeeper creates a Keeper. Call Open before anything else.
func NewKeeper(repo SnapshotRepository) *Keeper {
	return &Keeper{repo: repo}
}

// Open loads the snapshot from the repository, replacing any unsaved state.
func (k *Keeper) Open(ctx context.Context) *domain.Snapshot {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.snap = k.repo.Load(ctx)
	k.dirty = false
	return k.snap.Clone()
}

// Snapshot returns a deep copy of the owned snapshot.
func (k *Keeper) Snapshot() *domain.Snapshot {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.current().Clone()
}

// Dirty reports whether there are unsaved changes.
func (k *Keeper) Dirty() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.dirty
}

// current returns the owned snapshot, falling back to defaults when Open
// was never called. Caller holds mu.
func (k *Keeper) current() *domain.Snapshot {
	if k.snap == nil {
		k.snap = domain.DefaultSnapshot()
	}
	return k.snap
}

// ============================================================================
// Progress
// ============================================================================

// CompleteItem marks id completed. It reports whether anything changed.
func (k *Keeper) CompleteItem(id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, domain.ErrProgressInvalid.WithDetails("item id is required")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	changed := k.current().Progress.CompletedItemIDs.Add(id)
	k.dirty = k.dirty || changed
	return changed, nil
}

// UncompleteItem clears id. It reports whether anything changed.
func (k *Keeper) UncompleteItem(id string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	changed := k.current().Progress.CompletedItemIDs.Remove(strings.TrimSpace(id))
	k.dirty = k.dirty || changed
	return changed
}

// SetStreaks stores both streak counters verbatim. Negative values are
// rejected; best < current is allowed.
func (k *Keeper) SetStreaks(current, best int) error {
	if current < 0 || best < 0 {
		return domain.ErrProgressInvalid.WithDetails(
			fmt.Sprintf("streaks must be >= 0, got current=%d best=%d", current, best))
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	p := &k.current().Progress
	p.CurrentStreak = current
	p.BestStreak = best
	k.dirty = true
	return nil
}

// MarkActive records at as the last active day.
func (k *Keeper) MarkActive(at time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()

	at = at.UTC()
	k.current().Progress.LastActiveDay = &at
	k.dirty = true
}

// StartArc records when arc id began, overwriting any earlier start.
func (k *Keeper) StartArc(id string, at time.Time) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrProgressInvalid.WithDetails("arc id is required")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.current().Progress.ArcStartDates[id] = at.UTC()
	k.dirty = true
	return nil
}

// ============================================================================
// Settings
// ============================================================================

// ApplySetting parses value and assigns it to the named setting.
// Names are the JSON field names of domain.UserSettings.
func (k *Keeper) ApplySetting(name, value string) error {
	def, ok := lookupSetting(name)
	if !ok {
		return domain.ErrSettingUnknown.WithDetails(name)
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	s := k.current().Settings
	if err := def.apply(&s, strings.TrimSpace(value)); err != nil {
		return err
	}
	// Keep the in-memory value in the shape Load would return.
	k.snap.Settings = domain.Normalize(&domain.Snapshot{Settings: s}).Settings
	k.dirty = true
	return nil
}

// SettingValue returns the named setting formatted as ApplySetting accepts it.
func (k *Keeper) SettingValue(name string) (string, error) {
	def, ok := lookupSetting(name)
	if !ok {
		return "", domain.ErrSettingUnknown.WithDetails(name)
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	return def.format(k.current().Settings), nil
}

// ============================================================================
// Persistence
// ============================================================================

// Save writes the owned snapshot.
func (k *Keeper) Save(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := k.repo.Save(ctx, k.current()); err != nil {
		return err
	}
	k.dirty = false
	return nil
}

// SaveIfDirty writes the owned snapshot only when it has unsaved changes.
func (k *Keeper) SaveIfDirty(ctx context.Context) (bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.dirty {
		return false, nil
	}
	if err := k.repo.Save(ctx, k.current()); err != nil {
		return false, err
	}
	k.dirty = false
	return true, nil
}

// Reset removes the persisted snapshot and reloads. Legacy data is kept,
// so the reloaded snapshot may come from a legacy generation.
func (k *Keeper) Reset(ctx context.Context) (*domain.Snapshot, error) {
	return k.wipe(ctx, k.repo.Reset)
}

// Purge removes the persisted snapshot and all legacy data, then reloads.
func (k *Keeper) Purge(ctx context.Context) (*domain.Snapshot, error) {
	return k.wipe(ctx, k.repo.Purge)
}

func (k *Keeper) wipe(ctx context.Context, fn func(context.Context) error) (*domain.Snapshot, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := fn(ctx); err != nil {
		return nil, err
	}
	k.snap = k.repo.Load(ctx)
	k.dirty = false
	return k.snap.Clone(), nil
}

// Replace swaps in snap, normalized, and saves it.
func (k *Keeper) Replace(ctx context.Context, snap *domain.Snapshot) error {
	if snap == nil {
		return domain.ErrSnapshotInvalid.WithDetails("snapshot is nil")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	next := domain.Normalize(snap)
	if err := k.repo.Save(ctx, next); err != nil {
		return err
	}
	k.snap = next
	k.dirty = false
	return nil
}
