package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
)

// ProgressCommand returns the progress subcommand group.
func ProgressCommand() *cli.Command {
	return &cli.Command{
		Name:  "progress",
		Usage: "Edit checklist progress",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show progress",
				Action: progressShow,
			},
			{
				Name:      "complete",
				Usage:     "Mark items completed",
				ArgsUsage: "ID...",
				Action:    progressComplete,
			},
			{
				Name:      "uncomplete",
				Usage:     "Mark items not completed",
				ArgsUsage: "ID...",
				Action:    progressUncomplete,
			},
			{
				Name:  "streak",
				Usage: "Set the current and best streaks",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "current", Usage: "Current streak in days"},
					&cli.IntFlag{Name: "best", Usage: "Best streak in days"},
				},
				Action: progressStreak,
			},
			{
				Name:      "arc",
				Usage:     "Record the start of an arc",
				ArgsUsage: "ID",
				Flags:     []cli.Flag{atFlag()},
				Action:    progressArc,
			},
			{
				Name:   "active",
				Usage:  "Record the last active day",
				Flags:  []cli.Flag{atFlag()},
				Action: progressActive,
			},
		},
	}
}

func progressShow(c *cli.Context) error {
	keeper, err := runtimeFrom(c).Keeper(c.Context)
	if err != nil {
		return err
	}
	return printResult(c, keeper.Snapshot().Progress)
}

func progressComplete(c *cli.Context) error {
	ids := c.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("at least one item ID required")
	}
	return mutate(c, func(m mutator) error {
		for _, id := range ids {
			changed, err := m.keeper.CompleteItem(id)
			if err != nil {
				return err
			}
			if changed {
				m.printf("Completed %s\n", id)
			} else {
				m.printf("%s was already completed\n", id)
			}
		}
		return nil
	})
}

func progressUncomplete(c *cli.Context) error {
	ids := c.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("at least one item ID required")
	}
	return mutate(c, func(m mutator) error {
		for _, id := range ids {
			if m.keeper.UncompleteItem(id) {
				m.printf("Uncompleted %s\n", id)
			} else {
				m.printf("%s was not completed\n", id)
			}
		}
		return nil
	})
}

func progressStreak(c *cli.Context) error {
	if !c.IsSet("current") && !c.IsSet("best") {
		return fmt.Errorf("--current or --best required")
	}
	return mutate(c, func(m mutator) error {
		p := m.keeper.Snapshot().Progress
		current, best := p.CurrentStreak, p.BestStreak
		if c.IsSet("current") {
			current = c.Int("current")
		}
		if c.IsSet("best") {
			best = c.Int("best")
		}
		if err := m.keeper.SetStreaks(current, best); err != nil {
			return err
		}
		m.printf("Streak %d, best %d\n", current, best)
		return nil
	})
}

func progressArc(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("arc ID required")
	}
	at := timestampOrNow(c, "at")
	return mutate(c, func(m mutator) error {
		if err := m.keeper.StartArc(id, at); err != nil {
			return err
		}
		m.printf("Arc %s started at %s\n", id, at.UTC().Format(time.RFC3339))
		return nil
	})
}

func progressActive(c *cli.Context) error {
	at := timestampOrNow(c, "at")
	return mutate(c, func(m mutator) error {
		m.keeper.MarkActive(at)
		m.printf("Last active day set to %s\n", at.UTC().Format(time.RFC3339))
		return nil
	})
}

func atFlag() cli.Flag {
	return &cli.TimestampFlag{
		Name:   "at",
		Usage:  "Timestamp (RFC 3339), default now",
		Layout: time.RFC3339,
	}
}

func timestampOrNow(c *cli.Context, name string) time.Time {
	if ts := c.Timestamp(name); ts != nil {
		return *ts
	}
	return time.Now()
}
