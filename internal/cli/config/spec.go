package config

import "time"

// Config is the root configuration for questkeep.
type Config struct {
	Storage StorageSection `koanf:"storage" json:"storage" yaml:"storage"`
	Log     LogSection     `koanf:"log" json:"log" yaml:"log"`
	Output  OutputSection  `koanf:"output" json:"output" yaml:"output"`
}

// StorageSection configures the key-value engine.
type StorageSection struct {
	// Engine is "badger" (on disk) or "memory" (discarded on exit).
	Engine     string        `koanf:"engine" json:"engine" yaml:"engine"`
	DataDir    string        `koanf:"data_dir" json:"data_dir" yaml:"data_dir"`
	SyncWrites bool          `koanf:"sync_writes" json:"sync_writes" yaml:"sync_writes"`
	// GCInterval of zero disables automatic value-log GC.
	GCInterval time.Duration `koanf:"gc_interval" json:"gc_interval" yaml:"gc_interval"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" json:"level" yaml:"level"`
	Format string `koanf:"format" json:"format" yaml:"format"`
}

// OutputSection configures command output.
type OutputSection struct {
	Format string `koanf:"format" json:"format" yaml:"format"`
}

// Keys lists every dotted configuration key.
func Keys() []string {
	return []string{
		"storage.engine",
		"storage.data_dir",
		"storage.sync_writes",
		"storage.gc_interval",
		"log.level",
		"log.format",
		"output.format",
	}
}
