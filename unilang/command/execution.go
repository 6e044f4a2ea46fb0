// File: execution.go
// Title: Execution Types
// Description: The verified command handed to routines, the routine
//              signature, routine results and the shared execution context.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-04
// Modified: 2025-11-04
//
// Change History:
// - 2025-11-04 v0.1.0: Initial implementation

package command

import (
	"reflect"
	"time"

	"github.com/google/uuid"
	ulerror "github.com/msto63/unilang/core/error"
	"github.com/msto63/unilang/unilang/types"
)

// VerifiedCommand is a resolved, type-checked and fully bound instruction
type VerifiedCommand struct {
	Definition *CommandDefinition
	Arguments  map[string]types.Value
}

// Arg returns the bound value of the named argument
func (v VerifiedCommand) Arg(name string) (types.Value, bool) {
	val, ok := v.Arguments[name]
	return val, ok
}

// Routine is the callback bound to a command definition
type Routine func(cmd VerifiedCommand, ctx *ExecutionContext) (OutputData, error)

// OutputData is the result of a successful routine
type OutputData struct {
	Content         string `json:"content"`
	Format          string `json:"format"`
	ExecutionTimeMs int64  `json:"execution_time_ms"`
}

// Text returns a plain text output
func Text(content string) OutputData {
	return OutputData{Content: content, Format: "text"}
}

// ErrorData is the result of a failed routine
type ErrorData struct {
	Code    ulerror.Code `json:"code"`
	Message string       `json:"message"`
}

// Error implements the error interface
func (e *ErrorData) Error() string {
	return string(e.Code) + ": " + e.Message
}

// NewErrorData creates an ErrorData with the given code
func NewErrorData(code ulerror.Code, message string) *ErrorData {
	return &ErrorData{Code: code, Message: message}
}

// ExecutionContext is shared by all commands of one run. Values are stored
// by their Go type, so each type holds at most one value.
type ExecutionContext struct {
	RequestID string
	Timestamp time.Time
	Metadata  map[string]string

	values map[reflect.Type]interface{}
}

// NewExecutionContext creates an empty context with a fresh request ID
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{
		RequestID: uuid.New().String(),
		Timestamp: time.Now(),
		Metadata:  make(map[string]string),
		values:    make(map[reflect.Type]interface{}),
	}
}

// Len returns the number of stored values
func (c *ExecutionContext) Len() int {
	return len(c.values)
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Set stores value under its type, replacing a previous value of that type
func Set[T any](ctx *ExecutionContext, value T) {
	if ctx.values == nil {
		ctx.values = make(map[reflect.Type]interface{})
	}
	ctx.values[typeKey[T]()] = value
}

// Get returns the value stored for type T
func Get[T any](ctx *ExecutionContext) (T, bool) {
	v, ok := ctx.values[typeKey[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Delete removes the value stored for type T and reports whether it existed
func Delete[T any](ctx *ExecutionContext) bool {
	key := typeKey[T]()
	_, ok := ctx.values[key]
	delete(ctx.values, key)
	return ok
}
