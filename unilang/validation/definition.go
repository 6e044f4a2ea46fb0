// File: definition.go
// Title: Definition Checks
// Description: Whole-definition validation collecting every problem of a
//              command definition, including argument declarations and the
//              compatibility of validation rules with argument kinds.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-04
// Modified: 2025-11-05
//
// Change History:
// - 2025-11-04 v0.1.0: Initial implementation
// - 2025-11-05 v0.1.0: Reject rules that do not fit the argument kind

package validation

import (
	"errors"
	"fmt"
	"strings"

	ulerror "github.com/msto63/unilang/core/error"
	"github.com/msto63/unilang/unilang/command"
	"github.com/msto63/unilang/unilang/types"
	ulstringx "github.com/msto63/unilang/utils/stringx"
)

// Problem is one finding of Check
type Problem struct {
	Code    ulerror.Code `json:"code"`
	Field   string       `json:"field,omitempty"`
	Message string       `json:"message"`
}

// Result collects the problems of a definition
type Result struct {
	Command  string    `json:"command"`
	Valid    bool      `json:"valid"`
	Problems []Problem `json:"problems,omitempty"`
}

func (r *Result) add(code ulerror.Code, field, message string) {
	r.Valid = false
	r.Problems = append(r.Problems, Problem{Code: code, Field: field, Message: message})
}

func (r *Result) addErr(field string, err error) {
	var ue *ulerror.Error
	if errors.As(err, &ue) {
		r.add(ue.Code(), field, ue.Message())
		return
	}
	r.add(ulerror.CodeInvalidDefinition, field, err.Error())
}

// Messages returns the problem messages in order
func (r *Result) Messages() []string {
	msgs := make([]string, len(r.Problems))
	for i, p := range r.Problems {
		msgs[i] = p.Message
	}
	return msgs
}

// Err returns the first problem as a *ulerror.Error, or nil when valid
func (r *Result) Err() error {
	if r.Valid || len(r.Problems) == 0 {
		return nil
	}
	first := r.Problems[0]
	err := ulerror.New(first.Message).
		WithCode(first.Code).
		WithOperation("validation.ValidateDefinition").
		WithDetail("command", r.Command)
	if first.Field != "" {
		err = err.WithDetail("field", first.Field)
	}
	if len(r.Problems) > 1 {
		err = err.WithDetail("problems", len(r.Problems))
	}
	return err
}

// ValidateDefinition returns the first problem of def, or nil
func ValidateDefinition(def *command.CommandDefinition) error {
	return Check(def).Err()
}

// Check validates every part of def and collects all problems
func Check(def *command.CommandDefinition) *Result {
	r := &Result{Valid: true}
	if def == nil {
		r.add(ulerror.CodeInvalidDefinition, "", "command definition must not be nil")
		return r
	}
	r.Command = def.FullName()

	if err := ValidateCommandName(def.Name); err != nil {
		r.addErr("name", err)
	}
	if err := ValidateNamespace(def.Namespace); err != nil {
		r.addErr("namespace", err)
	}
	if err := ValidateVersion(def.Version); err != nil {
		r.addErr("version", err)
	}
	switch def.Status {
	case "", command.StatusStable, command.StatusExperimental, command.StatusDeprecated:
	default:
		r.add(ulerror.CodeInvalidDefinition, "status", fmt.Sprintf("unknown status '%s'", def.Status))
	}

	seen := make(map[string]bool)
	for _, alias := range def.Aliases {
		if err := ValidateAlias(alias); err != nil {
			r.addErr("aliases", err)
			continue
		}
		norm := NormalizeName(alias)
		if norm == r.Command {
			r.add(ulerror.CodeAliasConflict, "aliases",
				fmt.Sprintf("alias '%s' repeats the command name", alias))
			continue
		}
		if strings.HasSuffix(norm, command.HelpSuffix) {
			r.add(ulerror.CodeAliasConflict, "aliases",
				fmt.Sprintf("alias '%s' must not end with '%s'", alias, command.HelpSuffix))
			continue
		}
		if seen[norm] {
			r.add(ulerror.CodeAliasConflict, "aliases", fmt.Sprintf("alias '%s' is declared twice", alias))
			continue
		}
		seen[norm] = true
	}

	names := make(map[string]string)
	for i := range def.Arguments {
		arg := &def.Arguments[i]
		field := "arguments." + arg.Name
		if err := ValidateArgument(arg); err != nil {
			r.addErr(field, err)
		}
		for _, n := range append([]string{arg.Name}, arg.Aliases...) {
			if owner, dup := names[n]; dup {
				r.add(ulerror.CodeInvalidDefinition, field,
					fmt.Sprintf("argument name '%s' is already used by argument '%s'", n, owner))
				continue
			}
			names[n] = arg.Name
		}
	}

	return r
}

// ValidateArgument checks one argument declaration. A multiple-value
// argument cannot carry a scalar-only rule, min_items needs a collection,
// every rule must fit the kind, and a default must coerce to the kind.
func ValidateArgument(arg *command.ArgumentDefinition) error {
	fail := func(code ulerror.Code, msg string) error {
		return ulerror.New(msg).
			WithCode(code).
			WithOperation("validation.ValidateArgument").
			WithDetail("argument", arg.Name)
	}

	if !ulstringx.IsIdentifier(arg.Name) {
		return fail(ulerror.CodeInvalidDefinition,
			fmt.Sprintf("argument name '%s' must be an identifier", arg.Name))
	}
	for _, alias := range arg.Aliases {
		if !ulstringx.IsIdentifier(alias) {
			return fail(ulerror.CodeInvalidDefinition,
				fmt.Sprintf("argument alias '%s' must be an identifier", alias))
		}
		if alias == arg.Name {
			return fail(ulerror.CodeInvalidDefinition,
				fmt.Sprintf("argument alias '%s' repeats the argument name", alias))
		}
	}

	if err := validateKind(arg.Kind); err != nil {
		return fail(ulerror.CodeInvalidDefinition, fmt.Sprintf("argument '%s': %v", arg.Name, err))
	}

	multiple := arg.IsMultiple()
	for _, rule := range arg.ValidationRules {
		switch {
		case multiple && rule.ScalarOnly():
			return fail(ulerror.CodeInvalidDefinition, fmt.Sprintf(
				"argument '%s' holds multiple values and cannot use the scalar rule '%s'", arg.Name, rule))
		case rule.Kind == command.RuleMinItems && !multiple:
			return fail(ulerror.CodeInvalidDefinition, fmt.Sprintf(
				"argument '%s' holds a single value and cannot use the rule '%s'", arg.Name, rule))
		case !ruleFits(rule, arg):
			return fail(ulerror.CodeInvalidDefinition, fmt.Sprintf(
				"rule '%s' does not apply to argument '%s' of kind %s", rule, arg.Name, arg.Kind))
		}
	}

	if arg.Attributes.Default != nil {
		def := *arg.Attributes.Default
		switch arg.Kind.Tag {
		case types.TagFile, types.TagDirectory:
			if def == "" {
				return fail(ulerror.CodeInvalidDefinition,
					fmt.Sprintf("default of argument '%s' must not be empty", arg.Name))
			}
		default:
			if _, err := types.Parse(def, arg.Kind); err != nil {
				return fail(ulerror.CodeInvalidDefinition,
					fmt.Sprintf("default of argument '%s' is invalid: %v", arg.Name, err))
			}
		}
	}

	return nil
}

func ruleFits(rule command.ValidationRule, arg *command.ArgumentDefinition) bool {
	if rule.AppliesTo(arg.Kind) {
		return true
	}
	// Multiple scalar arguments are collected into a list.
	if arg.Attributes.Multiple {
		switch rule.Kind {
		case command.RuleMinLength, command.RuleMaxLength, command.RuleMinItems:
			return true
		}
	}
	return false
}

func validateKind(k types.Kind) error {
	switch k.Tag {
	case types.TagEnum:
		if len(k.Choices) == 0 {
			return fmt.Errorf("enum kind needs at least one choice")
		}
	case types.TagList:
		if k.Item != nil {
			return validateKind(*k.Item)
		}
	case types.TagMap:
		if k.EntrySeparator() == k.KeyValueSeparator() {
			return fmt.Errorf("map entry and key/value delimiters must differ")
		}
		if k.Key != nil {
			if err := validateKind(*k.Key); err != nil {
				return err
			}
		}
		if k.Val != nil {
			return validateKind(*k.Val)
		}
	}
	if k.Tag < types.TagString || k.Tag > types.TagObject {
		return fmt.Errorf("unknown kind tag %d", int(k.Tag))
	}
	return nil
}
