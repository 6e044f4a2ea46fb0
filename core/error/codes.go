// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across the command pipeline,
//              grouped into categories. Codes are stable strings so they can
//              be surfaced to users and matched by scripts.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-03
// Modified: 2025-11-03
//
// Change History:
// - 2025-11-03 v0.1.0: Initial implementation with pipeline error codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "UNILANG_INTERNAL_ERROR"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Parse
	CodeSyntax                  Code = "UNILANG_SYNTAX_ERROR"
	CodeUnterminatedQuote       Code = "UNILANG_UNTERMINATED_QUOTE"
	CodePositionalAfterNamed    Code = "UNILANG_POSITIONAL_AFTER_NAMED"
	CodeDuplicateNamedArgument  Code = "UNILANG_DUPLICATE_NAMED_ARGUMENT"
	CodeEmptyInstructionSegment Code = "UNILANG_EMPTY_INSTRUCTION_SEGMENT"
	CodeTrailingDelimiter       Code = "UNILANG_TRAILING_DELIMITER"
	CodeInputTooLong            Code = "UNILANG_INPUT_TOO_LONG"

	// Registration
	CodeInvalidCommandName   Code = "UNILANG_INVALID_COMMAND_NAME"
	CodeInvalidNamespace     Code = "UNILANG_INVALID_NAMESPACE"
	CodeInvalidVersion       Code = "UNILANG_INVALID_VERSION"
	CodeInvalidDefinition    Code = "UNILANG_INVALID_DEFINITION"
	CodeCommandAlreadyExists Code = "UNILANG_COMMAND_ALREADY_EXISTS"
	CodeAliasConflict        Code = "UNILANG_ALIAS_CONFLICT"
	CodeRoutineNotFound      Code = "UNILANG_ROUTINE_NOT_FOUND"

	// Semantic
	CodeCommandNotFound      Code = "UNILANG_COMMAND_NOT_FOUND"
	CodeUnknownParameter     Code = "UNILANG_UNKNOWN_PARAMETER"
	CodeDuplicateArgument    Code = "UNILANG_DUPLICATE_ARGUMENT"
	CodeTypeMismatch         Code = "UNILANG_TYPE_MISMATCH"
	CodeValidationRuleFailed Code = "UNILANG_VALIDATION_RULE_FAILED"
	CodeArgumentMissing      Code = "UNILANG_ARGUMENT_MISSING"
	CodeInteractiveArgument  Code = "UNILANG_ARGUMENT_INTERACTIVE_REQUIRED"
	CodeTooManyArguments     Code = "UNILANG_TOO_MANY_ARGUMENTS"
	CodeHelpRequested        Code = "HELP_REQUESTED"

	// Execution
	CodeExecution Code = "UNILANG_EXECUTION_ERROR"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Storage
	CodeDatabaseError Code = "DATABASE_ERROR"

	// Validation
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeRequiredField    Code = "REQUIRED_FIELD"
	CodeInvalidFormat    Code = "INVALID_FORMAT"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	return c.Category() != ""
}

// Category returns the high-level category of the error code.
// An unknown code yields the empty string.
func (c Code) Category() string {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput:
		return "generic"
	case CodeSyntax, CodeUnterminatedQuote, CodePositionalAfterNamed, CodeDuplicateNamedArgument,
		CodeEmptyInstructionSegment, CodeTrailingDelimiter, CodeInputTooLong:
		return "parse"
	case CodeInvalidCommandName, CodeInvalidNamespace, CodeInvalidVersion, CodeInvalidDefinition,
		CodeCommandAlreadyExists, CodeAliasConflict, CodeRoutineNotFound:
		return "registration"
	case CodeCommandNotFound, CodeUnknownParameter, CodeDuplicateArgument, CodeTypeMismatch,
		CodeValidationRuleFailed, CodeArgumentMissing, CodeInteractiveArgument,
		CodeTooManyArguments, CodeHelpRequested:
		return "semantic"
	case CodeExecution:
		return "execution"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	case CodeDatabaseError:
		return "storage"
	case CodeValidationFailed, CodeRequiredField, CodeInvalidFormat:
		return "validation"
	default:
		return ""
	}
}

// ExitCode returns the process exit status the CLI uses for this code.
// Values follow sysexits(3) where one applies.
func (c Code) ExitCode() int {
	switch c.Category() {
	case "parse", "semantic", "validation":
		if c == CodeHelpRequested {
			return 0
		}
		return 64 // EX_USAGE
	case "registration":
		return 65 // EX_DATAERR
	case "configuration":
		return 78 // EX_CONFIG
	case "storage":
		return 74 // EX_IOERR
	case "execution":
		return 1
	default:
		return 70 // EX_SOFTWARE
	}
}
