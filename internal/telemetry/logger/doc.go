// Package logger provides structured logging for QuestKeep.
//
// Files:
//
//   - logger.go: Logger interface and the log/slog backed implementation
//   - payload.go: shortening of raw storage payloads in log attributes
//   - context.go: context propagation of the logger and the run ID
//
// Features:
//
//   - JSON and text output formats
//   - Log level filtering, adjustable at runtime with SetLevel
//   - Byte payloads (corrupt snapshot bytes, raw legacy values) are
//     logged as a bounded preview
package logger
