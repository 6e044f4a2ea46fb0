// File: codes_test.go
// Title: Error Code Tests
// Description: Tests for code validity, categories and exit codes.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-03
// Modified: 2025-11-03
//
// Change History:
// - 2025-11-03 v0.1.0: Initial implementation

package error

import (
	"testing"
)

func TestCodeIsValid(t *testing.T) {
	tests := []struct {
		name string
		code Code
		want bool
	}{
		{"parse code", CodeSyntax, true},
		{"semantic code", CodeUnknownParameter, true},
		{"unknown code", Code("NOT_A_CODE"), false},
		{"empty code", Code(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.code.IsValid(); got != tt.want {
				t.Errorf("Code.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeCategory(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeUnterminatedQuote, "parse"},
		{CodeTrailingDelimiter, "parse"},
		{CodeInvalidVersion, "registration"},
		{CodeAliasConflict, "registration"},
		{CodeCommandNotFound, "semantic"},
		{CodeHelpRequested, "semantic"},
		{CodeExecution, "execution"},
		{CodeInvalidConfig, "configuration"},
		{CodeDatabaseError, "storage"},
		{CodeRequiredField, "validation"},
		{CodeInternal, "generic"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.Category(); got != tt.want {
				t.Errorf("Category() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCodeExitCode(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeHelpRequested, 0},
		{CodeSyntax, 64},
		{CodeArgumentMissing, 64},
		{CodeCommandAlreadyExists, 65},
		{CodeExecution, 1},
		{CodeInvalidConfig, 78},
		{CodeDatabaseError, 74},
		{CodeInternal, 70},
		{Code("SOMETHING_ELSE"), 70},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.ExitCode(); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSeverityString(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityLow, "low"},
		{SeverityMedium, "medium"},
		{SeverityHigh, "high"},
		{SeverityCritical, "critical"},
		{Severity(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
	if SeverityMedium.ShouldAlert() || !SeverityHigh.ShouldAlert() {
		t.Error("ShouldAlert() threshold should be SeverityHigh")
	}
}
