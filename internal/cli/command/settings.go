package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/questkeep-go/internal/cli/output"
	"github.com/yndnr/questkeep-go/internal/core/domain"
	"github.com/yndnr/questkeep-go/internal/core/service"
)

// SettingsCommand returns the settings subcommand group.
func SettingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Show and change user settings",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show every setting",
				Action: settingsShow,
			},
			{
				Name:      "get",
				Usage:     "Show one setting",
				ArgsUsage: "NAME",
				Action:    settingsGet,
			},
			{
				Name:      "set",
				Usage:     "Change one setting",
				ArgsUsage: "NAME VALUE",
				Action:    settingsSet,
			},
		},
	}
}

// settingsView renders settings in display order as a table and as the
// snapshot's JSON otherwise.
type settingsView struct {
	domain.UserSettings
}

// Table implements output.Tabler.
func (v settingsView) Table() *output.Table {
	return output.KeyValues("SETTING", "VALUE", service.FormatSettings(v.UserSettings))
}

func settingsShow(c *cli.Context) error {
	keeper, err := runtimeFrom(c).Keeper(c.Context)
	if err != nil {
		return err
	}
	return printResult(c, settingsView{keeper.Snapshot().Settings})
}

func settingsGet(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("setting name required")
	}
	keeper, err := runtimeFrom(c).Keeper(c.Context)
	if err != nil {
		return err
	}
	value, err := keeper.SettingValue(name)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, value)
	return nil
}

func settingsSet(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: settings set NAME VALUE")
	}
	name, value := c.Args().Get(0), c.Args().Get(1)
	return mutate(c, func(m mutator) error {
		if err := m.keeper.ApplySetting(name, value); err != nil {
			return err
		}
		current, _ := m.keeper.SettingValue(name)
		m.printf("%s = %s\n", name, current)
		return nil
	})
}
