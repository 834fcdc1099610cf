// Package metric provides Prometheus metrics for QuestKeep.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: the Registry, snapshot store counters and text dump
//   - collector.go: gauges computed from the current progress on scrape
//
// Metrics include:
//
//   - Snapshot loads by source generation
//   - Decode failures by generation and cleared corrupt values
//   - Snapshot saves, resets and write failures
//   - Progress gauges (completed items, streaks, active arcs)
//
// QuestKeep is a CLI, so nothing is served over HTTP. The registry is
// dumped in the text exposition format by the "metrics" command.
package metric
