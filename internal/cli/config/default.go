package config

import (
	"os"
	"path/filepath"
	"time"
)

// Storage engines.
const (
	EngineBadger = "badger"
	EngineMemory = "memory"
)

// Default configuration values.
const (
	DefaultEngine     = EngineBadger
	DefaultSyncWrites = true
	DefaultGCInterval = 10 * time.Minute

	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	DefaultOutputFormat = "table"
)

// DefaultHome returns the questkeep home directory, ~/.questkeep.
func DefaultHome() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".questkeep"
	}
	return filepath.Join(homeDir, ".questkeep")
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultHome(), "config.yaml")
}

// DefaultDataDir returns the default badger directory.
func DefaultDataDir() string {
	return filepath.Join(DefaultHome(), "data")
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageSection{
			Engine:     DefaultEngine,
			DataDir:    DefaultDataDir(),
			SyncWrites: DefaultSyncWrites,
			GCInterval: DefaultGCInterval,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Output: OutputSection{
			Format: DefaultOutputFormat,
		},
	}
}
