// File: analyzer.go
// Title: Semantic Analyzer
// Description: Resolves parsed instructions against a command registry and
//              binds, coerces, validates and defaults their arguments,
//              producing verified commands ready for execution.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-08
// Modified: 2025-11-09
//
// Change History:
// - 2025-11-08 v0.1.0: Initial implementation
// - 2025-11-09 v0.1.0: Interactive arguments and multiple-value flattening

package semantic

import (
	"fmt"
	"strings"

	ulerror "github.com/msto63/unilang/core/error"
	ullog "github.com/msto63/unilang/core/log"
	"github.com/msto63/unilang/unilang/ast"
	"github.com/msto63/unilang/unilang/command"
	"github.com/msto63/unilang/unilang/registry"
	"github.com/msto63/unilang/unilang/suggest"
	"github.com/msto63/unilang/unilang/types"
	"github.com/msto63/unilang/unilang/validation"
)

// redacted replaces sensitive values in messages
const redacted = "***"

// Options configures the analyzer
type Options struct {
	Logger *ullog.Logger
}

// Analyzer turns instructions into verified commands. It does not mutate
// the registry and is safe for concurrent use.
type Analyzer struct {
	registry registry.Registry
	logger   *ullog.Logger
}

// New creates an analyzer over the given registry
func New(reg registry.Registry, opts Options) (*Analyzer, error) {
	if reg == nil {
		return nil, ulerror.New("registry is required").
			WithCode(ulerror.CodeInvalidInput).
			WithOperation("semantic.New")
	}
	if opts.Logger == nil {
		opts.Logger = ullog.GetDefault()
	}
	return &Analyzer{
		registry: reg,
		logger:   opts.Logger.WithField("component", "unilang-semantic"),
	}, nil
}

// Analyze verifies every instruction of a batch. The first error aborts the
// batch and no commands are returned.
func (a *Analyzer) Analyze(instructions []*ast.Instruction) (verified []command.VerifiedCommand, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("Semantic analysis panicked", ullog.Fields{"panic": fmt.Sprint(r)})
			verified, err = nil, &Error{
				Code:    ulerror.CodeInternal,
				Message: "Internal Error: an unexpected error occurred during command analysis",
			}
		}
	}()

	verified = make([]command.VerifiedCommand, 0, len(instructions))
	for i, in := range instructions {
		vc, serr := a.analyze(in)
		if serr != nil {
			serr.Index = i
			if !serr.IsHelp() {
				a.logger.Debug("Instruction rejected", ullog.Fields{
					"index":   i,
					"code":    string(serr.Code),
					"command": serr.Command,
				})
			}
			return nil, serr
		}
		verified = append(verified, vc)
	}
	return verified, nil
}

// AnalyzeInstruction verifies a single instruction
func (a *Analyzer) AnalyzeInstruction(in *ast.Instruction) (command.VerifiedCommand, error) {
	verified, err := a.Analyze([]*ast.Instruction{in})
	if err != nil {
		return command.VerifiedCommand{}, err
	}
	return verified[0], nil
}

func (a *Analyzer) analyze(in *ast.Instruction) (command.VerifiedCommand, *Error) {
	if in == nil || in.IsEmpty() {
		return command.VerifiedCommand{}, &Error{
			Code:        ulerror.CodeHelpRequested,
			Message:     "command listing requested",
			HelpContent: registry.FormatListing(a.registry.Commands()),
		}
	}

	name := in.CommandName()
	def, ok := a.registry.Command(name)
	if !ok {
		return command.VerifiedCommand{}, a.commandNotFound(name)
	}
	fullName := def.FullName()

	if in.HelpRequested {
		return command.VerifiedCommand{}, &Error{
			Code:        ulerror.CodeHelpRequested,
			Message:     "help requested for " + fullName,
			Command:     fullName,
			HelpContent: registry.FormatHelp(def),
		}
	}

	if def.IsDeprecated() {
		a.logger.Warn("Deprecated command used", ullog.Fields{
			"command": fullName,
			"message": def.DeprecationMessage,
		})
	}

	args, err := bind(in, def)
	if err != nil {
		err.Command = fullName
		return command.VerifiedCommand{}, err
	}
	return command.VerifiedCommand{Definition: def, Arguments: args}, nil
}

func (a *Analyzer) commandNotFound(name string) *Error {
	var candidates []string
	for _, def := range a.registry.Commands() {
		candidates = append(candidates, def.FullName())
		for _, alias := range def.Aliases {
			candidates = append(candidates, validation.NormalizeName(alias))
		}
	}

	e := &Error{Code: ulerror.CodeCommandNotFound, Command: name}
	if s, ok := suggest.Closest(name, candidates); ok {
		e.Suggestion = s
		e.Message = fmt.Sprintf("Command Error: The command '%s' was not found. Did you mean '%s'? "+
			"Use '.' to see all available commands.", name, s)
		return e
	}
	e.Message = fmt.Sprintf("Command Error: The command '%s' was not found. "+
		"Use '.' to see all available commands or check for typos.", name)
	return e
}

// bind matches named arguments, fills positionals, coerces, validates and
// defaults. Named arguments are processed in sorted order so the result
// does not depend on map iteration.
func bind(in *ast.Instruction, def *command.CommandDefinition) (map[string]types.Value, *Error) {
	raw := make(map[string][]string, len(def.Arguments))
	boundBy := make(map[string]string, len(in.Named))

	for _, key := range in.NamedKeys() {
		arg := matchArgument(def, key)
		if arg == nil {
			return nil, unknownParameter(def, key)
		}
		if prev, dup := boundBy[arg.Name]; dup {
			return nil, &Error{
				Code:     ulerror.CodeDuplicateArgument,
				Argument: arg.Name,
				Message: fmt.Sprintf("Argument Error: The argument '%s' was given twice (as '%s' and '%s').",
					arg.Name, prev, key),
			}
		}
		boundBy[arg.Name] = key
		raw[arg.Name] = []string{in.Named[key].Value}
	}

	positionals := in.PositionalValues()
	next := 0
	for i := range def.Arguments {
		arg := &def.Arguments[i]
		if _, done := raw[arg.Name]; done || next >= len(positionals) {
			continue
		}
		if arg.Attributes.Multiple {
			raw[arg.Name] = positionals[next:]
			next = len(positionals)
			continue
		}
		raw[arg.Name] = []string{positionals[next]}
		next++
	}
	if next < len(positionals) {
		return nil, &Error{
			Code: ulerror.CodeTooManyArguments,
			Message: fmt.Sprintf("Argument Error: Too many arguments provided; '%s' has no matching parameter. "+
				"Use '%s ?' to see the command usage.", positionals[next], def.FullName()),
		}
	}

	values := make(map[string]types.Value, len(def.Arguments))
	for i := range def.Arguments {
		arg := &def.Arguments[i]
		texts, supplied := raw[arg.Name]
		if !supplied {
			continue
		}
		v, err := coerce(arg, texts)
		if err != nil {
			return nil, err
		}
		for _, rule := range arg.ValidationRules {
			if !rule.Check(v) {
				return nil, &Error{
					Code:     ulerror.CodeValidationRuleFailed,
					Argument: arg.Name,
					Expected: rule.String(),
					Message: fmt.Sprintf("Validation Error: The value provided for argument '%s' does not meet "+
						"the required criteria: %s.", arg.Name, rule.Describe()),
				}
			}
		}
		values[arg.Name] = v
	}

	for i := range def.Arguments {
		arg := &def.Arguments[i]
		if _, ok := values[arg.Name]; ok {
			continue
		}
		if arg.Attributes.Default != nil {
			v, err := coerce(arg, []string{*arg.Attributes.Default})
			if err != nil {
				return nil, err
			}
			values[arg.Name] = v
			continue
		}
		if arg.Attributes.Optional {
			continue
		}
		if arg.Attributes.Interactive {
			return nil, &Error{
				Code:     ulerror.CodeInteractiveArgument,
				Argument: arg.Name,
				Expected: arg.Kind.String(),
				Message:  fmt.Sprintf("Argument Error: The argument '%s' must be entered interactively.", arg.Name),
			}
		}
		return nil, &Error{
			Code:     ulerror.CodeArgumentMissing,
			Argument: arg.Name,
			Expected: arg.Kind.String(),
			Message: fmt.Sprintf("Argument Error: The required argument '%s' is missing. "+
				"Please provide a value for this argument.", arg.Name),
		}
	}
	return values, nil
}

func matchArgument(def *command.CommandDefinition, name string) *command.ArgumentDefinition {
	for i := range def.Arguments {
		if def.Arguments[i].Matches(name) {
			return &def.Arguments[i]
		}
	}
	return nil
}

func unknownParameter(def *command.CommandDefinition, name string) *Error {
	var candidates []string
	for _, arg := range def.Arguments {
		candidates = append(candidates, arg.Name)
		candidates = append(candidates, arg.Aliases...)
	}

	e := &Error{Code: ulerror.CodeUnknownParameter, Argument: name}
	if s, ok := suggest.Closest(name, candidates); ok {
		e.Suggestion = s
		e.Message = fmt.Sprintf("Argument Error: Unknown parameter '%s'. Did you mean '%s'? "+
			"Use '%s ?' to see valid parameters.", name, s, def.FullName())
		return e
	}
	e.Message = fmt.Sprintf("Argument Error: Unknown parameter '%s'. Use '%s ?' to see valid parameters.",
		name, def.FullName())
	return e
}

// coerce parses the raw texts of one argument. A multiple-value argument
// yields a list; list-kind items are flattened into it.
func coerce(arg *command.ArgumentDefinition, texts []string) (types.Value, *Error) {
	if !arg.Attributes.Multiple {
		return parseValue(arg, texts[0])
	}

	var items []types.Value
	for _, text := range texts {
		v, err := parseValue(arg, text)
		if err != nil {
			return types.Value{}, err
		}
		if inner, ok := v.List(); ok && arg.Kind.Tag == types.TagList {
			items = append(items, inner...)
			continue
		}
		items = append(items, v)
	}
	return types.ListValue(items...), nil
}

func parseValue(arg *command.ArgumentDefinition, text string) (types.Value, *Error) {
	v, err := types.Parse(text, arg.Kind)
	if err == nil {
		return v, nil
	}

	e := &Error{
		Code:     ulerror.CodeTypeMismatch,
		Argument: arg.Name,
		Expected: arg.Kind.String(),
	}
	if arg.Attributes.Sensitive {
		e.Message = fmt.Sprintf("Type Error: The value '%s' for argument '%s' is not a valid %s.",
			redacted, arg.Name, arg.Kind)
		return types.Value{}, e
	}
	reason := err.Error()
	if te, ok := err.(*types.TypeError); ok {
		reason = te.Reason
	}
	e.Message = fmt.Sprintf("Type Error: The value '%s' for argument '%s' is not a valid %s: %s.",
		text, arg.Name, arg.Kind, strings.TrimSuffix(reason, "."))
	return types.Value{}, e
}
