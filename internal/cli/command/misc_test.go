package command

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigShow(t *testing.T) {
	rt, _ := newTestRuntime(t)
	out := mustRun(t, rt, "config", "show")
	for _, want := range []string{"storage.engine", "memory", "log.level", "output.format"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
}

func TestVersion(t *testing.T) {
	rt, _ := newTestRuntime(t)
	out := mustRun(t, rt, "version")
	if !strings.Contains(out, "version") || !strings.Contains(out, "goVersion") {
		t.Errorf("version = %q", out)
	}
}

func TestMetrics(t *testing.T) {
	rt, _ := newTestRuntime(t)
	mustRun(t, rt, "progress", "complete", "a", "b")

	out := mustRun(t, rt, "metrics")
	for _, want := range []string{
		"questkeep_progress_completed_items 2",
		`questkeep_snapshot_loads_total{source="default"} 1`,
		"questkeep_snapshot_saves_total 1",
		"go_goroutines",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestStorage_MemoryUnsupported(t *testing.T) {
	rt, _ := newTestRuntime(t)
	for _, sub := range []string{"stats", "gc"} {
		if _, err := runCLI(t, rt, "storage", sub); !errors.Is(err, errUnsupportedEngine) {
			t.Errorf("storage %s error = %v", sub, err)
		}
	}
}

func TestRuntime_LazyOpen(t *testing.T) {
	rt, _ := newTestRuntime(t)
	if rt.loadedSnapshot() != nil {
		t.Error("collector reported a snapshot before any load")
	}
	mustRun(t, rt, "config", "show")
	if rt.loaded {
		t.Error("config show loaded the snapshot")
	}
	mustRun(t, rt, "snapshot", "show")
	if rt.loadedSnapshot() == nil {
		t.Error("snapshot show did not load")
	}
	if err := rt.Close(); err != nil {
		t.Fatal(err)
	}
	if err := rt.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
