// File: ast.go
// Title: Parsed Instructions
// Description: Syntax tree produced by the parser: one Instruction per
//              ';;'-separated segment, with source spans for diagnostics.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-04
// Modified: 2025-11-04
//
// Change History:
// - 2025-11-04 v0.1.0: Initial implementation

package ast

import (
	"sort"
	"strings"

	ulstringx "github.com/msto63/unilang/utils/stringx"
)

// Span is a half-open byte range [Start, End) in the parsed input
type Span struct {
	Start int
	End   int
}

// Argument is a raw argument value. Name is empty for positionals.
type Argument struct {
	Name      string
	Value     string
	NameSpan  Span
	ValueSpan Span
}

// Instruction is one parsed command invocation before semantic analysis
type Instruction struct {
	CommandPath   []string
	Positional    []Argument
	Named         map[string]Argument
	HelpRequested bool
	Span          Span
}

// CommandName returns the dot-prefixed command name, or "" for an empty path
func (in *Instruction) CommandName() string {
	if len(in.CommandPath) == 0 {
		return ""
	}
	return "." + strings.Join(in.CommandPath, ".")
}

// IsEmpty reports whether the instruction has no command path
func (in *Instruction) IsEmpty() bool {
	return len(in.CommandPath) == 0
}

// PositionalValues returns the raw positional values in order
func (in *Instruction) PositionalValues() []string {
	values := make([]string, len(in.Positional))
	for i, a := range in.Positional {
		values[i] = a.Value
	}
	return values
}

// NamedValues returns the named arguments as a name to raw value map
func (in *Instruction) NamedValues() map[string]string {
	values := make(map[string]string, len(in.Named))
	for name, a := range in.Named {
		values[name] = a.Value
	}
	return values
}

// NamedKeys returns the names of the named arguments in sorted order
func (in *Instruction) NamedKeys() []string {
	keys := make([]string, 0, len(in.Named))
	for k := range in.Named {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String re-serializes the instruction. Parsing the result yields an
// equivalent instruction; named arguments are emitted in sorted order.
func (in *Instruction) String() string {
	var parts []string
	if name := in.CommandName(); name != "" {
		parts = append(parts, name)
	}
	for _, a := range in.Positional {
		parts = append(parts, ulstringx.QuoteIfNeeded(a.Value))
	}
	for _, k := range in.NamedKeys() {
		parts = append(parts, k+"::"+ulstringx.QuoteIfNeeded(in.Named[k].Value))
	}
	if in.HelpRequested {
		parts = append(parts, "?")
	}
	return strings.Join(parts, " ")
}

// Equivalent reports whether two instructions carry the same command path,
// arguments and help flag, ignoring source spans
func (in *Instruction) Equivalent(other *Instruction) bool {
	if in.HelpRequested != other.HelpRequested ||
		len(in.CommandPath) != len(other.CommandPath) ||
		len(in.Positional) != len(other.Positional) ||
		len(in.Named) != len(other.Named) {
		return false
	}
	for i := range in.CommandPath {
		if in.CommandPath[i] != other.CommandPath[i] {
			return false
		}
	}
	for i := range in.Positional {
		if in.Positional[i].Value != other.Positional[i].Value {
			return false
		}
	}
	for k, a := range in.Named {
		b, ok := other.Named[k]
		if !ok || a.Value != b.Value {
			return false
		}
	}
	return true
}

// JoinInstructions re-serializes a sequence with the ';;' separator
func JoinInstructions(instructions []*Instruction) string {
	parts := make([]string, len(instructions))
	for i, in := range instructions {
		parts[i] = in.String()
	}
	return strings.Join(parts, " ;; ")
}
