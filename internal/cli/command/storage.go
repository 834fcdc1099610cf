package command

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
)

// StorageCommand returns the storage subcommand group.
func StorageCommand() *cli.Command {
	return &cli.Command{
		Name:  "storage",
		Usage: "Storage engine maintenance (badger only)",
		Subcommands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show engine statistics",
				Action: storageStats,
			},
			{
				Name:  "gc",
				Usage: "Run value-log garbage collection",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Give up after this long",
						Value: time.Minute,
					},
				},
				Action: storageGC,
			},
		},
	}
}

// statsView is the output of storage stats.
type statsView struct {
	Engine           string    `json:"engine"`
	Dir              string    `json:"dir"`
	LSMSize          uint64    `json:"lsmSizeBytes"`
	ValueLogSize     uint64    `json:"valueLogSizeBytes"`
	LastGC           time.Time `json:"lastGC"`
	GCBytesReclaimed uint64    `json:"gcBytesReclaimed"`
}

func storageStats(c *cli.Context) error {
	rt := runtimeFrom(c)
	engine, err := rt.badger()
	if err != nil {
		return err
	}
	stats, err := engine.Stats(c.Context)
	if err != nil {
		return err
	}

	view := statsView{
		Engine:           rt.Config.Storage.Engine,
		Dir:              rt.Config.Storage.DataDir,
		LSMSize:          stats.LSMSize,
		ValueLogSize:     stats.ValueLogSize,
		GCBytesReclaimed: stats.GCBytesReclaimed,
	}
	if stats.LastGCTime > 0 {
		view.LastGC = time.UnixMilli(stats.LastGCTime).UTC()
	}
	return printResult(c, view)
}

func storageGC(c *cli.Context) error {
	rt := runtimeFrom(c)
	engine, err := rt.badger()
	if err != nil {
		return err
	}

	ctx, cancel := contextWithTimeout(c, c.Duration("timeout"))
	defer cancel()

	reclaimed, err := engine.GC(ctx)
	if err != nil {
		return fmt.Errorf("gc: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "GC completed, about %d bytes reclaimed\n", reclaimed)
	return nil
}

// contextWithTimeout derives a timeout context from the command context.
func contextWithTimeout(c *cli.Context, d time.Duration) (context.Context, context.CancelFunc) {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
