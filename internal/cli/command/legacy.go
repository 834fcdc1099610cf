package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/yndnr/questkeep-go/internal/cli/output"
	"github.com/yndnr/questkeep-go/internal/storage"
	"github.com/yndnr/questkeep-go/internal/storage/migrate"
	"github.com/yndnr/questkeep-go/internal/storage/snapshot"
	"github.com/yndnr/questkeep-go/internal/telemetry/logger"
)

// LegacyCommand returns the legacy subcommand group.
func LegacyCommand() *cli.Command {
	return &cli.Command{
		Name:  "legacy",
		Usage: "Inspect and seed older storage generations",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show which generations are stored, without migrating",
				Action: legacyShow,
			},
			{
				Name:      "seed",
				Usage:     "Write legacy keys from a YAML file to rehearse a migration",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "clean",
						Usage: "Delete the canonical and legacy keys first",
					},
				},
				Action: legacySeed,
			},
		},
	}
}

// legacyView is the output of legacy show.
type legacyView struct {
	snapshot.Report
	Values map[string]string `json:"values,omitempty"`
}

// Table implements output.Tabler.
func (v legacyView) Table() *output.Table {
	t := &output.Table{Headers: []string{"KEY", "STATE", "VALUE"}}
	t.AddRow(migrate.CanonicalKey, string(v.Canonical), "-")
	t.AddRow(migrate.LegacyV1Key, string(v.LegacyV1), "-")
	for _, key := range v.FlatKeys {
		t.AddRow(key, "flat", v.Values[key])
	}
	return t
}

func legacyShow(c *cli.Context) error {
	rt := runtimeFrom(c)
	ctx := rt.Context(c.Context)
	store, err := rt.Store()
	if err != nil {
		return err
	}
	kv, err := rt.KV()
	if err != nil {
		return err
	}

	view := legacyView{Report: store.Probe(ctx), Values: make(map[string]string)}
	for _, key := range view.FlatKeys {
		if data, err := kv.Get(ctx, key); err == nil {
			view.Values[key] = logger.Preview(data)
		}
	}
	return printResult(c, view)
}

// SeedFile is the YAML layout accepted by legacy seed.
//
//	flat:
//	  completedItemIDs: [a, b]
//	  currentStreak: 3
//	  lastActiveDay: 2024-06-01T08:00:00Z
//	  arcStartDates: {arc-calm: 2024-05-20T00:00:00Z}
//	  home.compactLayout: true
//	v1:
//	  version: 1
//	  progress: {...}
//	  preferences: {...}
//	raw:
//	  snapshot.current: "{not json"
//
// Flat timestamps may be RFC 3339 strings or epoch seconds. V1 documents
// are stored under snapshot.v1 as JSON. Raw values are written verbatim.
type SeedFile struct {
	Flat map[string]any    `yaml:"flat"`
	V1   map[string]any    `yaml:"v1"`
	Raw  map[string]string `yaml:"raw"`
}

func legacySeed(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("seed file path required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	rt := runtimeFrom(c)
	ctx := rt.Context(c.Context)
	kv, err := rt.KV()
	if err != nil {
		return err
	}

	if c.Bool("clean") {
		keys := append([]string{migrate.CanonicalKey}, migrate.LegacyKeys()...)
		for _, key := range keys {
			if err := kv.Delete(ctx, key); err != nil {
				return fmt.Errorf("delete %s: %w", key, err)
			}
		}
	}

	n, err := applySeed(ctx, kv, seed)
	if err != nil {
		return err
	}
	logger.L(ctx).Info("legacy keys seeded", "file", path, "keys", n)

	fmt.Fprintf(c.App.Writer, "Seeded %d keys from %s\n", n, path)
	return nil
}

// applySeed writes every entry of seed and returns the number of keys written.
func applySeed(ctx context.Context, kv storage.KVStore, seed SeedFile) (int, error) {
	flatKeys := migrate.FlatKeys()
	names := make([]string, 0, len(seed.Flat))
	for key := range seed.Flat {
		if !slices.Contains(flatKeys, key) {
			return 0, fmt.Errorf("unknown flat key %q", key)
		}
		names = append(names, key)
	}
	sort.Strings(names)

	written := 0
	for _, key := range names {
		value, err := flatValue(key, seed.Flat[key])
		if err != nil {
			return written, fmt.Errorf("%s: %w", key, err)
		}
		if err := storage.PutValue(ctx, kv, key, value); err != nil {
			return written, err
		}
		written++
	}

	if seed.V1 != nil {
		if err := storage.PutValue(ctx, kv, migrate.LegacyV1Key, seed.V1); err != nil {
			return written, err
		}
		written++
	}

	rawKeys := make([]string, 0, len(seed.Raw))
	for key := range seed.Raw {
		rawKeys = append(rawKeys, key)
	}
	sort.Strings(rawKeys)
	for _, key := range rawKeys {
		if err := kv.Set(ctx, key, []byte(seed.Raw[key])); err != nil {
			return written, fmt.Errorf("set %s: %w", key, err)
		}
		written++
	}
	return written, nil
}

// flatValue converts timestamps to the epoch-seconds form flat keys use.
func flatValue(key string, v any) (any, error) {
	switch key {
	case migrate.KeyLastActiveDay:
		return epochSeconds(v)
	case migrate.KeyArcStartDates:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, errors.New("want a mapping of arc id to timestamp")
		}
		out := make(map[string]float64, len(m))
		for id, at := range m {
			secs, err := epochSeconds(at)
			if err != nil {
				return nil, fmt.Errorf("arc %s: %w", id, err)
			}
			out[id] = secs
		}
		return out, nil
	default:
		return v, nil
	}
}

func epochSeconds(v any) (float64, error) {
	switch t := v.(type) {
	case time.Time:
		return storage.EpochSeconds(t), nil
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return 0, err
		}
		return storage.EpochSeconds(parsed), nil
	case int:
		return float64(t), nil
	case float64:
		return t, nil
	default:
		return 0, fmt.Errorf("unsupported timestamp %v (%T)", v, v)
	}
}
