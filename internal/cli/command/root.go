package command

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/questkeep-go/internal/cli/config"
	"github.com/yndnr/questkeep-go/internal/cli/output"
	"github.com/yndnr/questkeep-go/internal/infra/buildinfo"
)

// runtimeKey is the App.Metadata key holding the *Runtime.
const runtimeKey = "runtime"

// App creates the CLI application.
//
// Before resolves configuration and logging. Storage is opened by the
// first command that needs it and closed in After. An App whose Metadata
// already carries a Runtime (the shell, tests) reuses it and never closes it.
func App() *cli.App {
	var owned *Runtime

	app := &cli.App{
		Name:     "questkeep",
		Usage:    "Inspect, migrate and edit the local QuestKeep snapshot store",
		Version:  buildinfo.Get().Version,
		Flags:    globalFlags(),
		Commands: commands(),
		Before: func(c *cli.Context) error {
			if _, ok := c.App.Metadata[runtimeKey].(*Runtime); ok {
				return nil
			}
			rt, err := openRuntime(sourceFromFlags(c), c.App.ErrWriter)
			if err != nil {
				return err
			}
			owned = rt
			c.App.Metadata[runtimeKey] = rt
			return nil
		},
		After: func(c *cli.Context) error {
			if owned == nil {
				return nil
			}
			err := owned.Close()
			owned = nil
			return err
		},
	}

	return app
}

// commands returns the top-level command list.
func commands() []*cli.Command {
	return []*cli.Command{
		SnapshotCommand(),
		LegacyCommand(),
		ProgressCommand(),
		SettingsCommand(),
		ConfigCommand(),
		MetricsCommand(),
		StorageCommand(),
		ShellCommand(),
		VersionCommand(),
	}
}

// globalFlags returns the global CLI flags. Flags left unset do not
// override the configuration file or environment.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file (default ~/.questkeep/config.yaml)",
			EnvVars: []string{"QUESTKEEP_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "data-dir",
			Usage: "Badger data directory",
		},
		&cli.StringFlag{
			Name:  "engine",
			Usage: "Storage engine: badger, memory",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
	}
}

// sourceFromFlags builds the configuration source from global flags.
func sourceFromFlags(c *cli.Context) config.Source {
	src := config.Source{
		File:  config.DefaultConfigPath(),
		Flags: make(map[string]any),
	}
	if c.IsSet("config") {
		src.File = c.String("config")
		src.FileExplicit = true
	}

	set := func(flag, key string) {
		if c.IsSet(flag) {
			src.Flags[key] = c.String(flag)
		}
	}
	set("data-dir", "storage.data_dir")
	set("engine", "storage.engine")
	set("log-level", "log.level")
	if c.IsSet("output") {
		src.Flags["output.format"] = strings.ToLower(c.String("output"))
	}
	if c.Bool("verbose") {
		src.Flags["log.level"] = "debug"
	}
	return src
}

// runtimeFrom retrieves the runtime installed by App.Before.
func runtimeFrom(c *cli.Context) *Runtime {
	rt, _ := c.App.Metadata[runtimeKey].(*Runtime)
	return rt
}

// outputFormat returns the --output flag when given, else the configured format.
func outputFormat(c *cli.Context) output.Format {
	if c.IsSet("output") {
		if f, err := output.ParseFormat(c.String("output")); err == nil {
			return f
		}
	}
	if rt := runtimeFrom(c); rt != nil {
		if f, err := output.ParseFormat(rt.Config.Output.Format); err == nil {
			return f
		}
	}
	return output.FormatTable
}

// printResult writes data in the selected output format.
func printResult(c *cli.Context, data any) error {
	return output.Print(c.App.Writer, outputFormat(c), data)
}
