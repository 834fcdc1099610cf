package migrate

import (
	"context"
	"fmt"

	"github.com/yndnr/questkeep-go/internal/core/domain"
	"github.com/yndnr/questkeep-go/internal/storage"
)

// Source names the generation a loaded snapshot came from.
type Source string

// Sources, in priority order.
const (
	SourceCanonical   Source = "canonical"
	SourceLegacyV1    Source = "legacy_v1"
	SourceLegacyV1Key Source = "legacy_v1_key"
	SourceFlat        Source = "flat"
	SourceDefault     Source = "default"
)

// Input is everything a strategy may read. Canonical and LegacyV1 hold
// the raw bytes under CanonicalKey and LegacyV1Key, nil when absent.
type Input struct {
	Canonical []byte
	LegacyV1  []byte
	Flat      *storage.TypedReader
}

// Strategy turns one storage generation into a canonical snapshot.
type Strategy struct {
	Source Source

	// UsesCanonicalKey is true for strategies that decode the bytes under
	// CanonicalKey. Once every such strategy has failed, the bytes are
	// corrupt and the store clears them.
	UsesCanonicalKey bool

	// Migrate returns ErrNoData when the source is absent.
	Migrate func(ctx context.Context, in Input) (*domain.Snapshot, error)
}

// Strategies returns the migration chain in priority order:
// canonical, V1 at the canonical key, V1 at its own key, then flat keys.
// The default snapshot is not a strategy; it is what the store returns
// when every strategy fails.
func Strategies() []Strategy {
	return []Strategy{
		{Source: SourceCanonical, UsesCanonicalKey: true, Migrate: canonicalStrategy},
		{Source: SourceLegacyV1, UsesCanonicalKey: true, Migrate: v1Strategy(func(in Input) []byte { return in.Canonical })},
		{Source: SourceLegacyV1Key, Migrate: v1Strategy(func(in Input) []byte { return in.LegacyV1 })},
		{Source: SourceFlat, Migrate: flatStrategy},
	}
}

func canonicalStrategy(_ context.Context, in Input) (*domain.Snapshot, error) {
	if in.Canonical == nil {
		return nil, ErrNoData
	}
	return DecodeCanonical(in.Canonical)
}

func v1Strategy(pick func(Input) []byte) func(context.Context, Input) (*domain.Snapshot, error) {
	return func(_ context.Context, in Input) (*domain.Snapshot, error) {
		data := pick(in)
		if data == nil {
			return nil, ErrNoData
		}
		v1, err := DecodeV1(data)
		if err != nil {
			return nil, err
		}
		return MigrateV1(v1), nil
	}
}

func flatStrategy(ctx context.Context, in Input) (*domain.Snapshot, error) {
	if in.Flat == nil {
		return nil, ErrNoData
	}
	snap, ok := MigrateFlat(ctx, in.Flat)
	if !ok {
		return nil, fmt.Errorf("flat keys: %w", ErrNoData)
	}
	return snap, nil
}
