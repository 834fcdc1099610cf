package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/questkeep-go/internal/cli/config"
	"github.com/yndnr/questkeep-go/internal/core/domain"
	"github.com/yndnr/questkeep-go/internal/core/service"
	"github.com/yndnr/questkeep-go/internal/storage"
	"github.com/yndnr/questkeep-go/internal/storage/memory"
	"github.com/yndnr/questkeep-go/internal/storage/snapshot"
	"github.com/yndnr/questkeep-go/internal/telemetry/logger"
	"github.com/yndnr/questkeep-go/internal/telemetry/metric"
)

// errUnsupportedEngine is returned by badger-only commands on other engines.
var errUnsupportedEngine = errors.New("not supported by the configured storage engine")

// Runtime holds everything a command invocation shares: configuration,
// logging, metrics and the lazily opened store.
type Runtime struct {
	Config  *config.Config
	Source  config.Source
	Logger  logger.Logger
	Metrics *metric.Registry
	RunID   string

	mu     sync.Mutex
	kv     storage.KVStore
	store  *snapshot.Store
	keeper *service.Keeper
	loaded bool
}

// openRuntime loads configuration and sets up logging. Storage is not
// touched until a command asks for it.
func openRuntime(src config.Source, logOutput io.Writer) (*Runtime, error) {
	cfg, err := config.Load(src)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: logOutput,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	return newRuntime(cfg, src, log), nil
}

// newRuntime builds a Runtime without opening storage.
func newRuntime(cfg *config.Config, src config.Source, log logger.Logger) *Runtime {
	rt := &Runtime{
		Config:  cfg,
		Source:  src,
		Logger:  log,
		Metrics: metric.NewRegistry(),
		RunID:   ulid.Make().String(),
	}
	rt.Metrics.Registerer().MustRegister(metric.NewProgressCollector(rt.loadedSnapshot))
	return rt
}

// Context attaches the runtime's logger and run ID to ctx; logger.L(ctx)
// then tags log lines with the run ID.
func (rt *Runtime) Context(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.WithRunID(logger.WithLogger(ctx, rt.Logger), rt.RunID)
}

// attach wires kv into the runtime. Caller holds mu.
func (rt *Runtime) attach(kv storage.KVStore) {
	rt.kv = kv
	rt.store = snapshot.New(kv, snapshot.Config{
		Logger:  rt.Logger.With("run_id", rt.RunID),
		Metrics: rt.Metrics,
	})
	rt.keeper = service.NewKeeper(rt.store)
	if engine, ok := kv.(*storage.BadgerEngine); ok {
		engine.RegisterMetrics(rt.Metrics.Registerer())
	}
}

// KV returns the key-value store, opening it on first use.
func (rt *Runtime) KV() (storage.KVStore, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.kv != nil {
		return rt.kv, nil
	}
	kv, err := openKV(rt.Config.Storage, rt.Logger)
	if err != nil {
		return nil, err
	}
	rt.attach(kv)
	return kv, nil
}

// Store returns the snapshot store without loading anything.
func (rt *Runtime) Store() (*snapshot.Store, error) {
	if _, err := rt.KV(); err != nil {
		return nil, err
	}
	return rt.store, nil
}

// Keeper returns the keeper, loading (and migrating) the snapshot on
// first use.
func (rt *Runtime) Keeper(ctx context.Context) (*service.Keeper, error) {
	if _, err := rt.KV(); err != nil {
		return nil, err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	if !rt.loaded {
		rt.keeper.Open(rt.Context(ctx))
		rt.loaded = true
	}
	return rt.keeper, nil
}

// loadedSnapshot feeds the progress collector. It reports nothing until
// a command has loaded the snapshot.
func (rt *Runtime) loadedSnapshot() *domain.Snapshot {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if !rt.loaded {
		return nil
	}
	return rt.keeper.Snapshot()
}

// Close closes the store if it was opened.
func (rt *Runtime) Close() error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.kv == nil {
		return nil
	}
	err := rt.kv.Close()
	rt.kv = nil
	rt.loaded = false
	return err
}

// openKV opens the configured engine.
func openKV(cfg config.StorageSection, log logger.Logger) (storage.KVStore, error) {
	switch cfg.Engine {
	case config.EngineMemory:
		log.Debug("using in-memory storage, changes are discarded on exit")
		return memory.New(), nil
	case config.EngineBadger:
		if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		kvCfg := storage.DefaultKVConfig(cfg.DataDir)
		kvCfg.Badger.SyncWrites = cfg.SyncWrites
		kvCfg.Badger.GCInterval = cfg.GCInterval.String()
		engine, err := storage.NewBadgerEngine(kvCfg, logger.Slog(log))
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		return engine, nil
	default:
		return nil, fmt.Errorf("storage.engine %q: %w", cfg.Engine, errUnsupportedEngine)
	}
}

// badger returns the Badger engine, or errUnsupportedEngine.
func (rt *Runtime) badger() (*storage.BadgerEngine, error) {
	kv, err := rt.KV()
	if err != nil {
		return nil, err
	}
	engine, ok := kv.(*storage.BadgerEngine)
	if !ok {
		return nil, fmt.Errorf("storage engine %q: %w", rt.Config.Storage.Engine, errUnsupportedEngine)
	}
	return engine, nil
}
