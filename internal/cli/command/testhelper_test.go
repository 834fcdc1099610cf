package command

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/questkeep-go/internal/cli/config"
	"github.com/yndnr/questkeep-go/internal/storage"
	"github.com/yndnr/questkeep-go/internal/storage/memory"
	"github.com/yndnr/questkeep-go/internal/telemetry/logger"
)

// newTestRuntime returns a runtime over an in-memory store.
func newTestRuntime(t *testing.T) (*Runtime, *memory.Store) {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Engine = config.EngineMemory
	rt := newRuntime(cfg, config.Source{}, logger.Nop())

	kv := memory.New()
	rt.mu.Lock()
	rt.attach(kv)
	rt.mu.Unlock()
	t.Cleanup(func() { rt.Close() })
	return rt, kv
}

// newTestApp returns an App bound to rt that never exits the process.
func newTestApp(rt *Runtime, stdin string) (*cli.App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	app := App()
	app.Metadata = map[string]any{runtimeKey: rt}
	app.Reader = strings.NewReader(stdin)
	app.Writer = out
	app.ErrWriter = out
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app, out
}

// runCLI runs one command line against rt.
func runCLI(t *testing.T, rt *Runtime, args ...string) (string, error) {
	t.Helper()
	app, out := newTestApp(rt, "")
	err := app.RunContext(context.Background(), append([]string{"questkeep"}, args...))
	return out.String(), err
}

// mustRun fails the test when the command fails.
func mustRun(t *testing.T, rt *Runtime, args ...string) string {
	t.Helper()
	out, err := runCLI(t, rt, args...)
	if err != nil {
		t.Fatalf("questkeep %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

// putRaw stores raw bytes under key.
func putRaw(t *testing.T, kv storage.KVStore, key, value string) {
	t.Helper()
	if err := kv.Set(context.Background(), key, []byte(value)); err != nil {
		t.Fatal(err)
	}
}
