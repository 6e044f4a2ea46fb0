// File: pipeline.go
// Title: Instruction Processing Pipeline
// Description: High-level entry points combining parser, semantic analyzer
//              and interpreter: process one instruction string, a batch or
//              a fail-fast sequence, or validate input without executing it.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-09
// Modified: 2025-11-10
//
// Change History:
// - 2025-11-09 v0.1.0: Initial implementation
// - 2025-11-10 v0.1.0: Options from configuration settings

package unilang

import (
	"errors"

	ulconfig "github.com/msto63/unilang/core/config"
	ulerror "github.com/msto63/unilang/core/error"
	ullog "github.com/msto63/unilang/core/log"
	"github.com/msto63/unilang/unilang/ast"
	"github.com/msto63/unilang/unilang/command"
	"github.com/msto63/unilang/unilang/interpreter"
	"github.com/msto63/unilang/unilang/parser"
	"github.com/msto63/unilang/unilang/registry"
	"github.com/msto63/unilang/unilang/semantic"
)

// HelpFormat marks outputs that carry help text
const HelpFormat = registry.HelpFormat

// Options configures a pipeline
type Options struct {
	Logger         *ullog.Logger
	Parser         parser.Options
	EnableAuditLog bool
}

// OptionsFromSettings derives pipeline options from configuration settings
func OptionsFromSettings(s *ulconfig.Settings, logger *ullog.Logger) Options {
	return Options{
		Logger: logger,
		Parser: parser.Options{
			Logger:                         logger,
			MaxInputLength:                 s.Parser.MaxInputLength,
			KeepQuotes:                     s.Parser.KeepQuotes,
			StrictQuotes:                   s.Parser.StrictQuotes,
			ErrorOnPositionalAfterNamed:    s.Parser.ErrorOnPositionalAfterNamed,
			ErrorOnDuplicateNamedArguments: s.Parser.ErrorOnDuplicateNamedArguments,
		},
		EnableAuditLog: s.Log.Audit,
	}
}

// Pipeline turns instruction strings into executed results
type Pipeline struct {
	registry    registry.Registry
	parser      *parser.Parser
	analyzer    *semantic.Analyzer
	interpreter *interpreter.Interpreter
	logger      *ullog.Logger
}

// NewPipeline creates a pipeline over reg. At most one Options value is
// used.
func NewPipeline(reg registry.Registry, opts ...Options) (*Pipeline, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Logger == nil {
		o.Logger = ullog.GetDefault()
	}
	if o.Parser.Logger == nil {
		o.Parser.Logger = o.Logger
	}

	p, err := parser.New(o.Parser)
	if err != nil {
		return nil, ulerror.Wrap(err, "failed to initialize parser").
			WithCode(ulerror.CodeInvalidConfig).
			WithOperation("unilang.NewPipeline")
	}
	a, err := semantic.New(reg, semantic.Options{Logger: o.Logger})
	if err != nil {
		return nil, err
	}
	it, err := interpreter.New(reg, interpreter.Options{Logger: o.Logger, EnableAuditLog: o.EnableAuditLog})
	if err != nil {
		return nil, err
	}

	logger := o.Logger.WithField("component", "unilang-pipeline")
	logger.Debug("Pipeline initialized", ullog.Fields{
		"auditEnabled":   o.EnableAuditLog,
		"maxInputLength": p.Options().MaxInputLength,
	})

	return &Pipeline{
		registry:    reg,
		parser:      p,
		analyzer:    a,
		interpreter: it,
		logger:      logger,
	}, nil
}

// Registry returns the registry the pipeline resolves commands against
func (p *Pipeline) Registry() registry.Registry {
	return p.registry
}

// ProcessCommand parses, analyzes and executes input, which may hold a
// ';;' sequence. A help request is a successful result with one help
// output. A nil ctx is replaced by a fresh context.
func (p *Pipeline) ProcessCommand(input string, ctx *command.ExecutionContext) Result {
	result := Result{Command: input, Outputs: []command.OutputData{}}

	verified, help, err := p.prepare(input)
	if err != nil {
		result.Error = toErrorData(err)
		p.logger.Debug("Instruction failed before execution", ullog.Fields{
			"code": string(result.Error.Code),
		})
		return result
	}
	if help != "" {
		result.Success = true
		result.Outputs = append(result.Outputs, command.OutputData{Content: help, Format: HelpFormat})
		return result
	}

	outputs, err := p.interpreter.Run(verified, ctx)
	if err != nil {
		result.Error = toErrorData(err)
		return result
	}
	result.Success = true
	result.Outputs = outputs
	return result
}

// ProcessCommandSimple processes input with a fresh execution context
func (p *Pipeline) ProcessCommandSimple(input string) Result {
	return p.ProcessCommand(input, command.NewExecutionContext())
}

// ProcessBatch processes every input, continuing after failures. All
// inputs share ctx.
func (p *Pipeline) ProcessBatch(inputs []string, ctx *command.ExecutionContext) BatchResult {
	if ctx == nil {
		ctx = command.NewExecutionContext()
	}
	batch := BatchResult{Results: make([]Result, 0, len(inputs)), Total: len(inputs)}
	for _, input := range inputs {
		batch.add(p.ProcessCommand(input, ctx))
	}
	return batch
}

// ProcessSequence processes inputs in order and stops at the first failure
func (p *Pipeline) ProcessSequence(inputs []string, ctx *command.ExecutionContext) BatchResult {
	if ctx == nil {
		ctx = command.NewExecutionContext()
	}
	batch := BatchResult{Results: make([]Result, 0, len(inputs)), Total: len(inputs)}
	for i, input := range inputs {
		r := p.ProcessCommand(input, ctx)
		batch.add(r)
		if !r.Success {
			p.logger.Debug("Sequence stopped", ullog.Fields{"index": i, "skipped": len(inputs) - i - 1})
			break
		}
	}
	return batch
}

// ValidateCommand parses and analyzes input without executing it. A help
// request is valid.
func (p *Pipeline) ValidateCommand(input string) error {
	_, _, err := p.prepare(input)
	if err == nil {
		return nil
	}
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return pe.ToError()
	}
	if se, ok := semantic.AsError(err); ok {
		return se.ToError()
	}
	return err
}

// ValidateBatch validates every input. Results carry no outputs.
func (p *Pipeline) ValidateBatch(inputs []string) BatchResult {
	batch := BatchResult{Results: make([]Result, 0, len(inputs)), Total: len(inputs)}
	for _, input := range inputs {
		r := Result{Command: input, Outputs: []command.OutputData{}, Success: true}
		if _, _, err := p.prepare(input); err != nil {
			r.Success = false
			r.Error = toErrorData(err)
		}
		batch.add(r)
	}
	return batch
}

// prepare parses and analyzes input. It returns the help text instead of
// commands when help was requested. Empty input requests the listing.
func (p *Pipeline) prepare(input string) ([]command.VerifiedCommand, string, error) {
	instructions, err := p.parser.Parse(input)
	if err != nil {
		return nil, "", err
	}
	if len(instructions) == 0 {
		instructions = []*ast.Instruction{{CommandPath: []string{}, Named: map[string]ast.Argument{}}}
	}

	verified, err := p.analyzer.Analyze(instructions)
	if err != nil {
		if help, ok := semantic.HelpContent(err); ok {
			return nil, help, nil
		}
		return nil, "", err
	}
	return verified, "", nil
}

func toErrorData(err error) *command.ErrorData {
	var data *command.ErrorData
	if errors.As(err, &data) {
		return data
	}
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return command.NewErrorData(pe.Code(), pe.Error())
	}
	if se, ok := semantic.AsError(err); ok {
		return se.ErrorData()
	}
	return command.NewErrorData(ulerror.CodeInternal, err.Error())
}

// ProcessSingleCommand processes input with a throwaway pipeline
func ProcessSingleCommand(input string, reg registry.Registry, ctx *command.ExecutionContext) Result {
	p, err := NewPipeline(reg)
	if err != nil {
		return Result{Command: input, Error: toErrorData(err), Outputs: []command.OutputData{}}
	}
	return p.ProcessCommand(input, ctx)
}

// ValidateSingleCommand validates input with a throwaway pipeline
func ValidateSingleCommand(input string, reg registry.Registry) error {
	p, err := NewPipeline(reg)
	if err != nil {
		return err
	}
	return p.ValidateCommand(input)
}
