package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/questkeep-go/internal/cli/config"
	"github.com/yndnr/questkeep-go/internal/cli/repl"
	"github.com/yndnr/questkeep-go/internal/infra/confloader"
	"github.com/yndnr/questkeep-go/internal/infra/shutdown"
	"github.com/yndnr/questkeep-go/internal/telemetry/logger"
)

// shutdownTimeout bounds the save-and-close hooks.
const shutdownTimeout = 10 * time.Second

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Interactive mode; commands share one loaded snapshot",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "history-file",
				Usage: "History file, empty to keep history in memory",
				Value: filepath.Join(config.DefaultHome(), "history"),
			},
		},
		Action: shellRun,
	}
}

func shellRun(c *cli.Context) error {
	rt := runtimeFrom(c)
	ctx, cancel := context.WithCancel(rt.Context(c.Context))
	defer cancel()
	log := logger.L(ctx)

	keeper, err := rt.Keeper(ctx)
	if err != nil {
		return err
	}

	handler := shutdown.NewHandler(shutdownTimeout, shutdown.WithLogger(log))
	handler.OnShutdown("save snapshot", func(ctx context.Context) error {
		_, err := keeper.SaveIfDirty(ctx)
		return err
	})

	if watcher := watchConfig(rt, log); watcher != nil {
		handler.OnShutdown("config watcher", func(context.Context) error {
			return watcher.Stop()
		})
	}

	history := repl.NewHistory(c.String("history-file"))
	if err := history.Load(); err != nil {
		log.Warn("failed to load history", "error", err)
	}
	handler.OnShutdown("history", func(context.Context) error {
		return history.Save()
	})

	hookErr := make(chan error, 1)
	go func() {
		sig, err := handler.Wait(ctx)
		if sig != nil {
			cancel()
		}
		hookErr <- err
	}()

	shell := repl.New(shellExecutor(c, rt),
		repl.WithIO(c.App.Reader, c.App.Writer),
		repl.WithHistory(history),
		repl.WithCompleter(repl.NewCompleter(commandPaths(commands()))),
	)
	fmt.Fprintln(c.App.Writer, "QuestKeep shell. Type 'exit' to quit, 'complete' to list commands.")
	runErr := shell.Run(ctx)

	cancel()
	return errors.Join(runErr, <-hookErr)
}

// shellExecutor runs each line through a fresh command tree sharing rt.
func shellExecutor(c *cli.Context, rt *Runtime) repl.Executor {
	return func(ctx context.Context, args []string) error {
		if args[0] == "shell" {
			return fmt.Errorf("already in the shell")
		}
		app := App()
		app.Metadata = map[string]any{runtimeKey: rt}
		app.Reader = c.App.Reader
		app.Writer = c.App.Writer
		app.ErrWriter = c.App.ErrWriter
		app.ExitErrHandler = func(*cli.Context, error) {}
		return app.RunContext(ctx, append([]string{app.Name}, args...))
	}
}

// watchConfig reloads the log level when the configuration file changes.
// It returns nil when there is no file to watch.
func watchConfig(rt *Runtime, log logger.Logger) *confloader.Watcher {
	if rt.Source.File == "" {
		return nil
	}
	if _, err := os.Stat(rt.Source.File); err != nil {
		return nil
	}

	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		log.Warn("config watcher unavailable", "error", err)
		return nil
	}
	if err := watcher.Watch(rt.Source.File); err != nil {
		log.Warn("config watcher unavailable", "error", err)
		_ = watcher.Stop()
		return nil
	}
	watcher.OnChange(func(path string) {
		cfg, err := config.Load(rt.Source)
		if err != nil {
			log.Warn("ignoring invalid configuration change", "file", path, "error", err)
			return
		}
		logger.SetLevel(cfg.Log.Level)
		log.Info("log level reloaded", "level", cfg.Log.Level)
	})
	watcher.StartAsync()
	return watcher
}

// commandPaths lists "group sub" paths for completion.
func commandPaths(cmds []*cli.Command) []string {
	var paths []string
	for _, cmd := range cmds {
		paths = append(paths, cmd.Name)
		for _, sub := range cmd.Subcommands {
			paths = append(paths, cmd.Name+" "+sub.Name)
		}
	}
	return paths
}
