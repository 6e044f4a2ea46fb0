// File: errors.go
// Title: Parse Errors
// Description: Typed parse errors carrying the offending text and its
//              location in the input.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-05
// Modified: 2025-11-05
//
// Change History:
// - 2025-11-05 v0.1.0: Initial implementation

package parser

import (
	"fmt"

	ulerror "github.com/msto63/unilang/core/error"
	ulstringx "github.com/msto63/unilang/utils/stringx"
)

// ErrorKind classifies a parse error
type ErrorKind int

const (
	ErrSyntax ErrorKind = iota
	ErrUnterminatedQuote
	ErrPositionalAfterNamed
	ErrDuplicateNamedArgument
	ErrEmptyInstructionSegment
	ErrTrailingDelimiter
	ErrInputTooLong
)

// String returns the name of the error kind
func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax"
	case ErrUnterminatedQuote:
		return "unterminated_quote"
	case ErrPositionalAfterNamed:
		return "positional_after_named"
	case ErrDuplicateNamedArgument:
		return "duplicate_named_argument"
	case ErrEmptyInstructionSegment:
		return "empty_instruction_segment"
	case ErrTrailingDelimiter:
		return "trailing_delimiter"
	case ErrInputTooLong:
		return "input_too_long"
	default:
		return "unknown"
	}
}

// Code returns the error code of the kind
func (k ErrorKind) Code() ulerror.Code {
	switch k {
	case ErrUnterminatedQuote:
		return ulerror.CodeUnterminatedQuote
	case ErrPositionalAfterNamed:
		return ulerror.CodePositionalAfterNamed
	case ErrDuplicateNamedArgument:
		return ulerror.CodeDuplicateNamedArgument
	case ErrEmptyInstructionSegment:
		return ulerror.CodeEmptyInstructionSegment
	case ErrTrailingDelimiter:
		return ulerror.CodeTrailingDelimiter
	case ErrInputTooLong:
		return ulerror.CodeInputTooLong
	default:
		return ulerror.CodeSyntax
	}
}

// ParseError represents a parsing error with position information.
// Position and End delimit the offending text as byte offsets.
type ParseError struct {
	Kind      ErrorKind
	Message   string
	Offending string
	Position  int
	End       int
	Line      int
	Column    int
}

func (pe *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s (near '%s')",
		pe.Line, pe.Column, pe.Message, ulstringx.Truncate(pe.Offending, 40, "..."))
}

// Code returns the error code for the kind of the error
func (pe *ParseError) Code() ulerror.Code {
	return pe.Kind.Code()
}

// ToError converts the parse error into a structured error
func (pe *ParseError) ToError() *ulerror.Error {
	return ulerror.Wrap(pe, "failed to parse instruction").
		WithCode(pe.Code()).
		WithOperation("parser.Parse").
		WithDetail("offending", pe.Offending).
		WithDetail("position", pe.Position)
}

func errorAt(kind ErrorKind, tok Token, message string) *ParseError {
	return &ParseError{
		Kind:      kind,
		Message:   message,
		Offending: tok.Raw,
		Position:  tok.Position,
		End:       tok.End,
		Line:      tok.Line,
		Column:    tok.Column,
	}
}

func errorSpan(kind ErrorKind, input string, first, last Token, message string) *ParseError {
	return &ParseError{
		Kind:      kind,
		Message:   message,
		Offending: input[first.Position:last.End],
		Position:  first.Position,
		End:       last.End,
		Line:      first.Line,
		Column:    first.Column,
	}
}
