// File: errors.go
// Title: Semantic Errors
// Description: Typed analysis errors carrying the failing command, argument,
//              suggestion and, for help requests, the rendered help text.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-08
// Modified: 2025-11-08
//
// Change History:
// - 2025-11-08 v0.1.0: Initial implementation

package semantic

import (
	"errors"

	ulerror "github.com/msto63/unilang/core/error"
	"github.com/msto63/unilang/unilang/command"
)

// Error is returned by the analyzer. A help request is reported as an Error
// with CodeHelpRequested and the help text in HelpContent.
type Error struct {
	Code        ulerror.Code
	Message     string
	Command     string
	Argument    string
	Suggestion  string
	Expected    string
	HelpContent string
	// Index is the position of the failing instruction in the batch
	Index int
}

func (e *Error) Error() string {
	if e.IsHelp() {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Message
}

// IsHelp reports whether the error is a help request
func (e *Error) IsHelp() bool {
	return e.Code == ulerror.CodeHelpRequested
}

// ErrorData converts the error into the result form used by the pipeline.
// Help requests carry the help text as message.
func (e *Error) ErrorData() *command.ErrorData {
	if e.IsHelp() {
		return command.NewErrorData(e.Code, e.HelpContent)
	}
	return command.NewErrorData(e.Code, e.Message)
}

// ToError converts the error into a structured error
func (e *Error) ToError() *ulerror.Error {
	err := ulerror.Wrap(e, "semantic analysis failed").
		WithCode(e.Code).
		WithOperation("semantic.Analyze").
		WithDetail("index", e.Index)
	if e.Command != "" {
		err = err.WithDetail("command", e.Command)
	}
	if e.Argument != "" {
		err = err.WithDetail("argument", e.Argument)
	}
	if e.Suggestion != "" {
		err = err.WithDetail("suggestion", e.Suggestion)
	}
	return err
}

// AsError returns the *Error in err's chain
func AsError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// HelpContent returns the help text when err is a help request
func HelpContent(err error) (string, bool) {
	se, ok := AsError(err)
	if !ok || !se.IsHelp() {
		return "", false
	}
	return se.HelpContent, true
}
