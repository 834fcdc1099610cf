package command

import (
	"github.com/urfave/cli/v2"
)

// MetricsCommand returns the metrics command.
func MetricsCommand() *cli.Command {
	return &cli.Command{
		Name:   "metrics",
		Usage:  "Load the snapshot and print metrics in Prometheus text format",
		Action: metricsDump,
	}
}

func metricsDump(c *cli.Context) error {
	rt := runtimeFrom(c)
	if _, err := rt.Keeper(c.Context); err != nil {
		return err
	}
	if engine, err := rt.badger(); err == nil {
		engine.UpdateMetrics(c.Context)
	}
	return rt.Metrics.WriteText(c.App.Writer)
}
