package snapshot

import (
	"context"
	"errors"

	"github.com/yndnr/questkeep-go/internal/storage"
	"github.com/yndnr/questkeep-go/internal/storage/migrate"
)

// KeyState classifies the value stored under a structured key.
type KeyState string

const (
	StateAbsent    KeyState = "absent"
	StateCanonical KeyState = "canonical"
	StateV1        KeyState = "v1"
	StateCorrupt   KeyState = "corrupt"
	StateError     KeyState = "error"
)

// Report lists which storage generations are present. Probe never writes.
type Report struct {
	Canonical KeyState `json:"canonical" yaml:"canonical"`
	LegacyV1  KeyState `json:"legacyV1" yaml:"legacyV1"`
	FlatKeys  []string `json:"flatKeys" yaml:"flatKeys"`
}

// HasLegacy reports whether any legacy generation is still stored.
func (r Report) HasLegacy() bool {
	return r.LegacyV1 != StateAbsent || len(r.FlatKeys) > 0
}

// Probe inspects every known key without migrating anything.
func (s *Store) Probe(ctx context.Context) Report {
	rep := Report{
		Canonical: s.classify(ctx, migrate.CanonicalKey),
		LegacyV1:  s.classify(ctx, migrate.LegacyV1Key),
		FlatKeys:  []string{},
	}
	r := storage.NewTypedReader(s.kv)
	for _, key := range migrate.FlatKeys() {
		if r.Has(ctx, key) {
			rep.FlatKeys = append(rep.FlatKeys, key)
		}
	}
	return rep
}

func (s *Store) classify(ctx context.Context, key string) KeyState {
	data, err := s.kv.Get(ctx, key)
	switch {
	case errors.Is(err, storage.ErrKeyNotFound):
		return StateAbsent
	case err != nil:
		return StateError
	}
	if _, err := migrate.DecodeCanonical(data); err == nil {
		return StateCanonical
	}
	if _, err := migrate.DecodeV1(data); err == nil {
		return StateV1
	}
	return StateCorrupt
}
