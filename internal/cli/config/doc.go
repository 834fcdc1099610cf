// Package config defines the questkeep configuration structure.
//
// Configuration is read by Load in this order, later sources winning:
// Default(), the YAML file, QUESTKEEP_* environment variables, and
// finally explicitly set command-line flags.
//
// Example file:
//
//	storage:
//	  engine: badger
//	  data_dir: ~/.questkeep/data
//	  sync_writes: true
//	  gc_interval: 10m
//	log:
//	  level: info
//	  format: text
//	output:
//	  format: table
package config
