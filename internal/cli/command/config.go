package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/questkeep-go/internal/cli/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration inspection",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShow,
			},
		},
	}
}

// configView adds the file the configuration was read from.
type configView struct {
	File    string                `json:"file"`
	Storage config.StorageSection `json:"storage"`
	Log     config.LogSection     `json:"log"`
	Output  config.OutputSection  `json:"output"`
}

func configShow(c *cli.Context) error {
	rt := runtimeFrom(c)
	cfg := rt.Config
	return printResult(c, configView{
		File:    rt.Source.File,
		Storage: cfg.Storage,
		Log:     cfg.Log,
		Output:  cfg.Output,
	})
}
