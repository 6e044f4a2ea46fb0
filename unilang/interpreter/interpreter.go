// File: interpreter.go
// Title: Command Interpreter
// Description: Executes verified commands sequentially against a shared
//              execution context. Execution is fail-fast: the first routine
//              error aborts the run. Handles routine lookup, panic recovery,
//              timing and audit logging.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-09
// Modified: 2025-11-09
//
// Change History:
// - 2025-11-09 v0.1.0: Initial implementation

package interpreter

import (
	"errors"
	"fmt"
	"time"

	ulerror "github.com/msto63/unilang/core/error"
	ullog "github.com/msto63/unilang/core/log"
	"github.com/msto63/unilang/unilang/command"
	"github.com/msto63/unilang/unilang/registry"
)

// Options configures interpreter behavior
type Options struct {
	Logger         *ullog.Logger
	EnableAuditLog bool
}

// Interpreter runs verified commands through the routines of a registry
type Interpreter struct {
	registry registry.Registry
	logger   *ullog.Logger
	options  Options
}

// New creates a new interpreter
func New(reg registry.Registry, opts Options) (*Interpreter, error) {
	if reg == nil {
		return nil, ulerror.New("registry is required").
			WithCode(ulerror.CodeInvalidInput).
			WithOperation("interpreter.New")
	}
	if opts.Logger == nil {
		opts.Logger = ullog.GetDefault()
	}
	return &Interpreter{
		registry: reg,
		logger:   opts.Logger.WithField("component", "unilang-interpreter"),
		options:  opts,
	}, nil
}

// Run executes the commands in order. ctx is shared by all commands; a nil
// ctx is replaced by a fresh one. On failure the error is a
// *command.ErrorData and no outputs are returned.
func (it *Interpreter) Run(commands []command.VerifiedCommand, ctx *command.ExecutionContext) ([]command.OutputData, error) {
	if ctx == nil {
		ctx = command.NewExecutionContext()
	}

	outputs := make([]command.OutputData, 0, len(commands))
	for i, cmd := range commands {
		out, err := it.Execute(cmd, ctx)
		if err != nil {
			it.logger.Debug("Run aborted", ullog.Fields{
				"requestID": ctx.RequestID,
				"index":     i,
				"remaining": len(commands) - i - 1,
			})
			return nil, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// Execute runs a single command. A failure is always a *command.ErrorData.
func (it *Interpreter) Execute(cmd command.VerifiedCommand, ctx *command.ExecutionContext) (command.OutputData, error) {
	if cmd.Definition == nil {
		return command.OutputData{}, command.NewErrorData(ulerror.CodeInternal,
			"Internal Error: verified command has no definition")
	}
	if ctx == nil {
		ctx = command.NewExecutionContext()
	}

	name := cmd.Definition.FullName()
	routine, ok := it.registry.Routine(name)
	if !ok {
		it.logger.Error("No routine bound to command", ullog.Fields{"command": name})
		return command.OutputData{}, command.NewErrorData(ulerror.CodeInternal,
			fmt.Sprintf("Internal Error: no routine is bound to command '%s'", name))
	}

	it.audit(name, ctx, "STARTED")
	timer := it.logger.StartTimer("execute " + name).
		WithField("requestID", ctx.RequestID).
		WithField("command", name)

	start := time.Now()
	out, err := invoke(routine, cmd, ctx)
	elapsed := time.Since(start)
	timer.StopWithResult(err == nil, nil)

	if err != nil {
		data := toErrorData(err)
		it.audit(name, ctx, "FAILED")
		it.logger.Debug("Routine failed", ullog.Fields{
			"command": name,
			"code":    string(data.Code),
		})
		return command.OutputData{}, data
	}

	if out.ExecutionTimeMs == 0 {
		out.ExecutionTimeMs = elapsed.Milliseconds()
	}
	if out.Format == "" {
		out.Format = "text"
	}
	it.audit(name, ctx, "COMPLETED")
	return out, nil
}

// invoke calls the routine and converts a panic into an internal error
func invoke(routine command.Routine, cmd command.VerifiedCommand, ctx *command.ExecutionContext) (out command.OutputData, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = command.OutputData{}
			err = command.NewErrorData(ulerror.CodeInternal,
				fmt.Sprintf("Internal Error: routine of '%s' panicked: %v", cmd.Definition.FullName(), r))
		}
	}()
	return routine(cmd, ctx)
}

// toErrorData keeps routine-provided codes: an *ErrorData is passed
// through and a coded *ulerror.Error keeps its code. Anything else is an
// execution error.
func toErrorData(err error) *command.ErrorData {
	var data *command.ErrorData
	if errors.As(err, &data) {
		return data
	}
	var coded *ulerror.Error
	if errors.As(err, &coded) && coded.Code() != "" && coded.Code() != ulerror.CodeUnknown {
		return command.NewErrorData(coded.Code(), coded.Message())
	}
	return command.NewErrorData(ulerror.CodeExecution, err.Error())
}

func (it *Interpreter) audit(name string, ctx *command.ExecutionContext, status string) {
	if !it.options.EnableAuditLog {
		return
	}
	it.logger.Audit("Command execution", ullog.Fields{
		"requestID": ctx.RequestID,
		"command":   name,
		"status":    status,
		"timestamp": ctx.Timestamp,
	})
}
