package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/yndnr/questkeep-go/internal/core/domain"
	"github.com/yndnr/questkeep-go/internal/storage"
	"github.com/yndnr/questkeep-go/internal/storage/migrate"
	"github.com/yndnr/questkeep-go/internal/telemetry/logger"
	"github.com/yndnr/questkeep-go/internal/telemetry/metric"
)

// Reset scopes, as recorded in metrics.
const (
	ScopeCanonical = "canonical"
	ScopePurge     = "purge"
)

// Config holds Store configuration.
type Config struct {
	// Logger receives migration and recovery events. Defaults to a no-op logger.
	Logger logger.Logger

	// Metrics is optional.
	Metrics *metric.Registry

	// Strategies overrides the migration chain. Defaults to migrate.Strategies().
	Strategies []migrate.Strategy
}

// Store loads and persists the canonical snapshot.
type Store struct {
	kv         storage.KVStore
	logger     logger.Logger
	metrics    *metric.Registry
	strategies []migrate.Strategy
}

// New creates a Store over kv.
func New(kv storage.KVStore, cfg Config) *Store {
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	if cfg.Strategies == nil {
		cfg.Strategies = migrate.Strategies()
	}
	return &Store{
		kv:         kv,
		logger:     cfg.Logger.With("component", "snapshot"),
		metrics:    cfg.Metrics,
		strategies: cfg.Strategies,
	}
}

// LoadResult describes how Load produced its snapshot.
type LoadResult struct {
	Snapshot *domain.Snapshot
	Source   migrate.Source

	// Persisted is true when Load wrote the result under CanonicalKey.
	Persisted bool

	// ClearedCorrupt is true when undecodable canonical bytes were removed.
	ClearedCorrupt bool

	// ReadOnly is true when a storage read failed. Load then returns its
	// best result without writing or deleting anything.
	ReadOnly bool
}

// Load returns the current snapshot. It never fails: decode failures
// fall through to older generations and then to the default snapshot.
func (s *Store) Load(ctx context.Context) *domain.Snapshot {
	return s.LoadDetailed(ctx).Snapshot
}

// LoadDetailed is Load with a report of what happened.
func (s *Store) LoadDetailed(ctx context.Context) LoadResult {
	in, readOK := s.readInput(ctx)
	res := LoadResult{ReadOnly: !readOK}

	canonicalFailed := false
	for _, st := range s.strategies {
		if canonicalFailed && !st.UsesCanonicalKey && !res.ClearedCorrupt {
			res.ClearedCorrupt = s.clearCorrupt(ctx, in.Canonical, res.ReadOnly)
		}

		snap, err := st.Migrate(ctx, in)
		if in.Flat != nil && in.Flat.Err() != nil && !res.ReadOnly {
			s.logger.Warn("read failed, load will not write", "source", st.Source, "error", in.Flat.Err())
			res.ReadOnly = true
		}
		if errors.Is(err, migrate.ErrNoData) {
			continue
		}
		if err != nil {
			s.logger.Debug("strategy failed", "source", st.Source, "error", err)
			s.metrics.RecordDecodeFailure(string(st.Source))
			if st.UsesCanonicalKey {
				canonicalFailed = true
			}
			continue
		}

		// Canonical data is rewritten only when normalization changes it;
		// anything migrated from an older generation is always written.
		persist := st.Source != migrate.SourceCanonical || domain.NeedsNormalization(snap)
		res.Snapshot = domain.Normalize(snap)
		res.Source = st.Source
		if persist && !res.ReadOnly {
			res.Persisted = s.persist(ctx, res.Snapshot, st.Source)
		}
		s.metrics.RecordLoad(string(res.Source))
		return res
	}

	if canonicalFailed && !res.ClearedCorrupt {
		res.ClearedCorrupt = s.clearCorrupt(ctx, in.Canonical, res.ReadOnly)
	}

	res.Snapshot = domain.DefaultSnapshot()
	res.Source = migrate.SourceDefault
	s.metrics.RecordLoad(string(res.Source))
	s.logger.Debug("no prior state, using defaults")
	return res
}

// Save writes snap under CanonicalKey, overwriting any previous value.
// snap is written as given; Load normalizes on the way back.
func (s *Store) Save(ctx context.Context, snap *domain.Snapshot) error {
	data, err := migrate.EncodeCanonical(snap)
	if err != nil {
		if snap == nil {
			return err
		}
		s.logger.Error("encode snapshot failed", "error", err)
		s.metrics.RecordWriteFailure("encode")
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := s.kv.Set(ctx, migrate.CanonicalKey, data); err != nil {
		s.metrics.RecordWriteFailure("save")
		return fmt.Errorf("save snapshot: %w", err)
	}
	s.metrics.RecordSave()
	return nil
}

// Reset removes the canonical snapshot. Legacy V1 and flat keys are left
// in place, so the next Load migrates them again. Use Purge to remove
// them as well.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.kv.Delete(ctx, migrate.CanonicalKey); err != nil {
		s.metrics.RecordWriteFailure("reset")
		return fmt.Errorf("reset snapshot: %w", err)
	}
	s.metrics.RecordReset(ScopeCanonical)
	s.logger.Info("snapshot reset", "scope", ScopeCanonical)
	return nil
}

// Purge removes the canonical snapshot and every legacy key. After Purge,
// Load returns the default snapshot.
func (s *Store) Purge(ctx context.Context) error {
	keys := append([]string{migrate.CanonicalKey}, migrate.LegacyKeys()...)
	var errs []error
	for _, key := range keys {
		if err := s.kv.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		s.metrics.RecordWriteFailure("purge")
		return fmt.Errorf("purge snapshot: %w", err)
	}
	s.metrics.RecordReset(ScopePurge)
	s.logger.Info("snapshot reset", "scope", ScopePurge, "keys", len(keys))
	return nil
}

// readInput gathers the raw strategy inputs. The second result is false
// when a read failed for a reason other than a missing key.
func (s *Store) readInput(ctx context.Context) (migrate.Input, bool) {
	ok := true
	read := func(key string) []byte {
		data, err := s.kv.Get(ctx, key)
		switch {
		case err == nil:
			return data
		case errors.Is(err, storage.ErrKeyNotFound):
			return nil
		default:
			s.logger.Warn("read failed, load will not write", "key", key, "error", err)
			ok = false
			return nil
		}
	}
	in := migrate.Input{
		Canonical: read(migrate.CanonicalKey),
		LegacyV1:  read(migrate.LegacyV1Key),
		Flat:      storage.NewTypedReader(s.kv),
	}
	return in, ok
}

func (s *Store) persist(ctx context.Context, snap *domain.Snapshot, source migrate.Source) bool {
	if err := s.Save(ctx, snap); err != nil {
		s.logger.Warn("persist migrated snapshot failed", "source", source, "error", err)
		return false
	}
	if source != migrate.SourceCanonical {
		s.logger.Info("migrated snapshot", "source", source, "schema_version", snap.SchemaVersion)
	} else {
		s.logger.Debug("normalized snapshot")
	}
	return true
}

func (s *Store) clearCorrupt(ctx context.Context, data []byte, readOnly bool) bool {
	s.logger.Warn("canonical snapshot undecodable", "payload", data, "cleared", !readOnly)
	if readOnly {
		return false
	}
	if err := s.kv.Delete(ctx, migrate.CanonicalKey); err != nil {
		s.metrics.RecordWriteFailure("clear")
		s.logger.Warn("clear corrupt snapshot failed", "error", err)
		return false
	}
	s.metrics.RecordCorruptCleared()
	return true
}
