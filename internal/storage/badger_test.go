package storage

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestEngine(t *testing.T, dir string) *BadgerEngine {
	t.Helper()

	cfg := DefaultKVConfig(dir)
	cfg.Badger.GCInterval = "0" // no auto GC in tests
	cfg.Badger.SyncWrites = false

	engine, err := NewBadgerEngine(cfg, slog.Default())
	if err != nil {
		t.Fatal(err)
	}
	return engine
}

func TestBadgerEngine_BasicOperations(t *testing.T) {
	engine := newTestEngine(t, t.TempDir())
	defer engine.Close()

	ctx := context.Background()

	t.Run("Set and Get", func(t *testing.T) {
		if err := engine.Set(ctx, "test-key", []byte("test-value")); err != nil {
			t.Fatal(err)
		}

		got, err := engine.Get(ctx, "test-key")
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "test-value" {
			t.Errorf("expected test-value, got %s", got)
		}
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		_, err := engine.Get(ctx, "non-existent")
		if !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound, got %v", err)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		_ = engine.Set(ctx, "k", []byte("one"))
		_ = engine.Set(ctx, "k", []byte("two"))

		got, err := engine.Get(ctx, "k")
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "two" {
			t.Errorf("expected two, got %s", got)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := engine.Set(ctx, "delete-key", []byte("v")); err != nil {
			t.Fatal(err)
		}
		if err := engine.Delete(ctx, "delete-key"); err != nil {
			t.Fatal(err)
		}
		if _, err := engine.Get(ctx, "delete-key"); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
		}
		if err := engine.Delete(ctx, "never-set"); err != nil {
			t.Errorf("deleting a missing key should not fail: %v", err)
		}
	})
}

func TestBadgerEngine_Scan(t *testing.T) {
	engine := newTestEngine(t, t.TempDir())
	defer engine.Close()

	ctx := context.Background()

	testData := map[string]string{
		"home.showCompletedQuests": "true",
		"home.compactLayout":       "false",
		"toneMode":                 `"soft"`,
	}
	for k, v := range testData {
		if err := engine.Set(ctx, k, []byte(v)); err != nil {
			t.Fatal(err)
		}
	}

	found := make(map[string]string)
	err := engine.Scan(ctx, "home.", func(key string, value []byte) bool {
		found[key] = string(value)
		return true
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(found) != 2 {
		t.Errorf("expected 2 keys with prefix home., got %d", len(found))
	}
	if found["home.compactLayout"] != "false" {
		t.Errorf("home.compactLayout = %q", found["home.compactLayout"])
	}
}

func TestBadgerEngine_Persistence(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	engine := newTestEngine(t, dir)
	if err := engine.Set(ctx, "snapshot.current", []byte(`{"schemaVersion":2}`)); err != nil {
		t.Fatal(err)
	}
	if err := engine.Close(); err != nil {
		t.Fatal(err)
	}

	reopened := newTestEngine(t, dir)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "snapshot.current")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"schemaVersion":2}` {
		t.Errorf("value after reopen = %s", got)
	}
}

func TestBadgerEngine_Close(t *testing.T) {
	engine := newTestEngine(t, t.TempDir())
	ctx := context.Background()

	if err := engine.Close(); err != nil {
		t.Fatal(err)
	}
	if err := engine.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}

	if _, err := engine.Get(ctx, "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("Get after Close = %v, want ErrClosed", err)
	}
	if err := engine.Set(ctx, "k", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after Close = %v, want ErrClosed", err)
	}
}

func TestBadgerEngine_GC(t *testing.T) {
	engine := newTestEngine(t, t.TempDir())
	defer engine.Close()

	ctx := context.Background()
	for i := 0; i < 100; i++ {
		_ = engine.Set(ctx, "k", []byte("value"))
	}

	if _, err := engine.GC(ctx); err != nil {
		t.Fatalf("GC() error = %v", err)
	}

	stats, err := engine.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.LastGCTime == 0 {
		t.Error("LastGCTime should be set after GC")
	}
}

func TestBadgerEngine_RegisterMetrics(t *testing.T) {
	engine := newTestEngine(t, t.TempDir())
	defer engine.Close()

	registry := prometheus.NewRegistry()
	engine.RegisterMetrics(registry)

	if _, err := engine.GC(context.Background()); err != nil {
		t.Fatal(err)
	}
	engine.UpdateMetrics(context.Background())

	count, err := testutil.GatherAndCount(registry)
	if err != nil {
		t.Fatal(err)
	}
	if count != 4 {
		t.Errorf("registered metric count = %d, want 4", count)
	}
	if v := testutil.ToFloat64(engine.metricsLastGCTime); v <= 0 {
		t.Errorf("last gc gauge = %v, want > 0", v)
	}
}

func TestNewBadgerEngine_RequiresDir(t *testing.T) {
	if _, err := NewBadgerEngine(KVConfig{}, nil); err == nil {
		t.Error("expected error for empty dir")
	}
}
