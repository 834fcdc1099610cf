package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/yndnr/questkeep-go/internal/telemetry/logger"
)

// Recognized values.
var (
	Engines       = []string{EngineBadger, EngineMemory}
	LogFormats    = []string{"text", "json"}
	OutputFormats = []string{"table", "json", "yaml"}
)

// Verify validates the configuration.
func Verify(cfg *Config) error {
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	if err := verifyLog(&cfg.Log); err != nil {
		return err
	}
	if !slices.Contains(OutputFormats, cfg.Output.Format) {
		return fmt.Errorf("output.format must be one of %v, got %q", OutputFormats, cfg.Output.Format)
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	if !slices.Contains(Engines, cfg.Engine) {
		return fmt.Errorf("storage.engine must be one of %v, got %q", Engines, cfg.Engine)
	}
	if cfg.Engine == EngineBadger && cfg.DataDir == "" {
		return errors.New("storage.data_dir is required for the badger engine")
	}
	if cfg.GCInterval < 0 {
		return errors.New("storage.gc_interval must not be negative")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if !logger.ValidLevel(cfg.Level) {
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", cfg.Level)
	}
	if !slices.Contains(LogFormats, cfg.Format) {
		return fmt.Errorf("log.format must be one of %v, got %q", LogFormats, cfg.Format)
	}
	return nil
}
