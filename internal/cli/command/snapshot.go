package command

import (
	"fmt"
	"os"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/oklog/ulid/v2"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/questkeep-go/internal/cli/output"
	"github.com/yndnr/questkeep-go/internal/core/domain"
	"github.com/yndnr/questkeep-go/internal/storage/migrate"
	"github.com/yndnr/questkeep-go/internal/telemetry/logger"
)

// SnapshotCommand returns the snapshot subcommand group.
func SnapshotCommand() *cli.Command {
	return &cli.Command{
		Name:    "snapshot",
		Aliases: []string{"snap"},
		Usage:   "Canonical snapshot management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Load (migrating if needed) and show the current snapshot",
				Action: snapshotShow,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON Schema of the canonical snapshot",
				Action: snapshotSchema,
			},
			{
				Name:  "reset",
				Usage: "Delete the canonical snapshot",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "purge-legacy",
						Usage: "Also delete every legacy key so nothing is re-migrated",
					},
				},
				Action: snapshotReset,
			},
			{
				Name:  "export",
				Usage: "Write the current snapshot as canonical JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output-file",
						Aliases: []string{"f"},
						Usage:   "Destination file, - for stdout (default questkeep-<ulid>.json)",
					},
				},
				Action: snapshotExport,
			},
			{
				Name:      "import",
				Usage:     "Replace the snapshot with a canonical or V1 JSON file",
				ArgsUsage: "FILE",
				Action:    snapshotImport,
			},
		},
	}
}

func snapshotShow(c *cli.Context) error {
	rt := runtimeFrom(c)
	keeper, err := rt.Keeper(c.Context)
	if err != nil {
		return err
	}
	return printResult(c, keeper.Snapshot())
}

func snapshotSchema(c *cli.Context) error {
	schema := SnapshotSchema()
	if outputFormat(c) == output.FormatYAML {
		return output.Print(c.App.Writer, output.FormatYAML, schema)
	}
	return output.Print(c.App.Writer, output.FormatJSON, schema)
}

func snapshotReset(c *cli.Context) error {
	rt := runtimeFrom(c)
	ctx := rt.Context(c.Context)
	keeper, err := rt.Keeper(ctx)
	if err != nil {
		return err
	}

	scope := "canonical snapshot"
	reset := keeper.Reset
	if c.Bool("purge-legacy") {
		scope = "canonical snapshot and legacy keys"
		reset = keeper.Purge
	}

	snap, err := reset(ctx)
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	logger.L(ctx).Info("snapshot reset", "purge_legacy", c.Bool("purge-legacy"))

	fmt.Fprintf(c.App.Writer, "Deleted %s.\n", scope)
	if !snap.Progress.IsEmpty() {
		fmt.Fprintf(c.App.Writer, "Legacy data was migrated again: %d completed items, streak %d.\n",
			snap.Progress.CompletedItemIDs.Len(), snap.Progress.CurrentStreak)
	}
	return nil
}

func snapshotExport(c *cli.Context) error {
	rt := runtimeFrom(c)
	keeper, err := rt.Keeper(c.Context)
	if err != nil {
		return err
	}

	data, err := migrate.EncodeCanonical(keeper.Snapshot())
	if err != nil {
		return err
	}

	path := c.String("output-file")
	if path == "-" {
		_, err := fmt.Fprintln(c.App.Writer, string(data))
		return err
	}
	if path == "" {
		path = fmt.Sprintf("questkeep-%s.json", ulid.Make())
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Exported snapshot to %s\n", path)
	return nil
}

func snapshotImport(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("snapshot file path required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	snap, source, err := migrate.Decode(data)
	if err != nil {
		return domain.ErrSnapshotInvalid.WithDetails(path).WithCause(err)
	}

	rt := runtimeFrom(c)
	ctx := rt.Context(c.Context)
	keeper, err := rt.Keeper(ctx)
	if err != nil {
		return err
	}
	if err := keeper.Replace(ctx, snap); err != nil {
		return err
	}
	logger.L(ctx).Info("snapshot imported", "file", path, "source", source)

	fmt.Fprintf(c.App.Writer, "Imported %s snapshot from %s\n", source, path)
	return nil
}

// SnapshotSchema returns the JSON Schema of the canonical snapshot.
// Sets are described as arrays of unique strings and the settings enums
// list their accepted values.
func SnapshotSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		ExpandedStruct:            true,
		Mapper:                    schemaMapper,
	}
	schema := reflector.Reflect(&domain.Snapshot{})
	schema.Title = "QuestKeep snapshot"
	schema.Description = fmt.Sprintf("Canonical snapshot, schema version %d.", domain.CurrentSchemaVersion)
	return schema
}

var schemaEnums = map[reflect.Type][]string{
	reflect.TypeOf(domain.ToneMode("")):       enumValues(domain.ToneModes),
	reflect.TypeOf(domain.AppearanceMode("")): enumValues(domain.AppearanceModes),
	reflect.TypeOf(domain.NudgeIntensity("")): enumValues(domain.NudgeIntensities),
	reflect.TypeOf(domain.QuestDensity("")):   enumValues(domain.QuestDensities),
	reflect.TypeOf(domain.LifeDimension("")):  enumValues(domain.LifeDimensions),
}

func schemaMapper(t reflect.Type) *jsonschema.Schema {
	if values, ok := schemaEnums[t]; ok {
		return enumSchema(values)
	}
	// Set[T] marshals as a sorted array.
	if t.Kind() == reflect.Map && t.Elem().Kind() == reflect.Struct && t.Elem().NumField() == 0 {
		items := &jsonschema.Schema{Type: "string"}
		if values, ok := schemaEnums[t.Key()]; ok {
			items = enumSchema(values)
		}
		return &jsonschema.Schema{Type: "array", Items: items, UniqueItems: true}
	}
	return nil
}

func enumSchema(values []string) *jsonschema.Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return &jsonschema.Schema{Type: "string", Enum: enum}
}

func enumValues[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
