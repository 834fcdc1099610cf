package command

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/questkeep-go/internal/core/service"
	"github.com/yndnr/questkeep-go/internal/telemetry/logger"
)

// mutator is handed to commands that change the snapshot.
type mutator struct {
	keeper *service.Keeper
	out    io.Writer
}

func (m mutator) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

// mutate loads the snapshot, applies fn and saves when anything changed.
func mutate(c *cli.Context, fn func(m mutator) error) error {
	rt := runtimeFrom(c)
	ctx := rt.Context(c.Context)
	keeper, err := rt.Keeper(ctx)
	if err != nil {
		return err
	}

	if err := fn(mutator{keeper: keeper, out: c.App.Writer}); err != nil {
		return err
	}

	saved, err := keeper.SaveIfDirty(ctx)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if saved {
		logger.L(ctx).Debug("snapshot saved", "command", c.Command.FullName())
	}
	return nil
}
