// Package log provides structured logging for unilang.
//
// Package: log
// Title: unilang Structured Logging
// Description: Leveled, structured logging with pluggable formatters (JSON,
//              text, colored console, logfmt), immutable context loggers and
//              operation timers. Integrates with core/error so that a
//              structured error is logged at a level matching its severity.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-03
// Modified: 2025-11-03
//
// Change History:
// - 2025-11-03 v0.1.0: Initial implementation
//
// Usage:
//   import ullog "github.com/msto63/unilang/core/log"
//
//   logger := ullog.NewWithConfig(ullog.Config{
//     Level:  ullog.LevelDebug,
//     Format: ullog.FormatConsole,
//     Output: os.Stderr,
//   }).WithField("component", "unilang-parser")
//
//   logger.Debug("parsed instruction", ullog.Fields{"command": ".math.add"})
//
//   timer := logger.StartTimer("pipeline.process")
//   timer.Checkpoint("parsed")
//   timer.Stop()
package log
