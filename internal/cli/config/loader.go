package config

import (
	"fmt"

	"github.com/yndnr/questkeep-go/internal/infra/confloader"
)

// Source describes where configuration is read from.
type Source struct {
	// File is the configuration file. When FileExplicit is false a
	// missing file is ignored.
	File         string
	FileExplicit bool

	// Flags holds dotted keys set on the command line.
	Flags map[string]any
}

// Load builds the configuration from defaults, file, environment and flags,
// then verifies it.
func Load(src Source) (*Config, error) {
	cfg := Default()

	opts := []confloader.Option{confloader.WithKnownKeys(Keys()...)}
	if src.File != "" {
		if src.FileExplicit {
			opts = append(opts, confloader.WithConfigFile(src.File))
		} else {
			opts = append(opts, confloader.WithOptionalConfigFile(src.File))
		}
	}
	loader := confloader.NewLoader(opts...)

	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if len(src.Flags) > 0 {
		if err := loader.LoadMap(src.Flags); err != nil {
			return nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("apply flags: %w", err)
		}
	}

	if err := Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
