// Package command provides the questkeep command tree.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: App, global flags and output helpers
//   - runtime.go: configuration, logging and lazily opened storage
//   - snapshot.go: show, schema, reset, export, import
//   - legacy.go: inspect and seed legacy storage generations
//   - progress.go, settings.go: mutate the owned snapshot
//   - config.go, metrics.go, storage.go, version.go: diagnostics
//   - shell.go: interactive mode over the same runtime
//
// Commands follow a consistent pattern of resolving the runtime,
// calling the Keeper or Store, and formatting output.
package command
