// Package error provides structured error handling for unilang.
//
// Package: error
// Title: unilang Error Handling
// Description: Structured errors with codes, severities, details and stack
//              traces. Every stage of the command pipeline (parsing,
//              registration, semantic analysis, execution) reports failures
//              through this type so that callers and the CLI can classify
//              them by code and category.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-03
// Modified: 2025-11-03
//
// Change History:
// - 2025-11-03 v0.1.0: Initial implementation with pipeline error codes
//
// Usage:
//   import ulerror "github.com/msto63/unilang/core/error"
//
//   err := ulerror.New("command name must start with '.'").
//     WithCode(ulerror.CodeInvalidCommandName).
//     WithDetail("name", name).
//     WithOperation("validation.ValidateCommandName")
//
//   if ulerror.HasCode(err, ulerror.CodeInvalidCommandName) {
//     // registration problem
//   }
//
//   os.Exit(ulerror.GetCode(err).ExitCode())
package error
