// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. The logger maps severities
//              to log levels, so user mistakes such as typos are logged
//              quietly while internal failures are logged loudly.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-03
// Modified: 2025-11-03
//
// Change History:
// - 2025-11-03 v0.1.0: Initial implementation with severity levels

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow marks user input problems: typos, bad values, unknown commands
	SeverityLow Severity = iota

	// SeverityMedium marks failures with a workaround, such as a failing routine
	SeverityMedium

	// SeverityHigh marks broken definitions, configuration or storage
	SeverityHigh

	// SeverityCritical marks internal invariant violations
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code.Category() {
	case "parse", "semantic", "validation":
		return SeverityLow
	case "execution":
		return SeverityMedium
	case "registration", "configuration", "storage":
		return SeverityHigh
	}
	if code == CodeInternal {
		return SeverityCritical
	}
	if code == CodeNotFound || code == CodeInvalidInput {
		return SeverityLow
	}
	return SeverityMedium
}
