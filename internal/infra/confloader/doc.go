// Package confloader loads QuestKeep configuration with koanf.
//
// Sources, highest priority first:
//
//  1. Command-line flags (applied by the caller through LoadMap)
//  2. Environment variables (QUESTKEEP_ prefix)
//  3. The YAML configuration file
//  4. Defaults (LoadMap before Load)
//
// Environment variable names map to dotted keys by replacing the
// underscores. Keys that themselves contain underscores, such as
// storage.data_dir, are resolved against the known key list, so
// QUESTKEEP_STORAGE_DATA_DIR sets storage.data_dir.
//
// Watcher reports writes to the configuration file; the shell uses it to
// apply log level changes without restarting.
package confloader
