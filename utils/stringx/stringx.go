// File: stringx.go
// Title: String Utility Functions
// Description: Small string helpers shared by the parser, the validation
//              core, help rendering and the built-in routines. All helpers
//              are Unicode aware.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-04
// Modified: 2025-11-12
//
// Change History:
// - 2025-11-04 v0.1.0: Initial implementation
// - 2025-11-12 v0.1.0: Removed unused Reverse helper

package stringx

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsBlank reports whether s is empty or contains only whitespace
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsNotBlank is the negation of IsBlank
func IsNotBlank(s string) bool {
	return !IsBlank(s)
}

// ContainsWhitespace reports whether s contains any whitespace rune
func ContainsWhitespace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

// IsIdentifier reports whether s is a non-empty run of letters, digits and
// underscores that does not start with a digit
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return true
}

// FirstInvalidIdentifierRune returns the first rune that keeps s from being
// an identifier, or utf8.RuneError and false when s is valid or empty
func FirstInvalidIdentifierRune(s string) (rune, bool) {
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (unicode.IsDigit(r) && i > 0) {
			continue
		}
		return r, true
	}
	return utf8.RuneError, false
}

// Truncate shortens s to at most maxLen runes, appending ellipsis when cut
func Truncate(s string, maxLen int, ellipsis string) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	keep := maxLen - utf8.RuneCountInString(ellipsis)
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + ellipsis
}

// PadRight pads s with pad runes up to width runes
func PadRight(s string, width int, pad rune) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(string(pad), width-n)
}

// NeedsQuoting reports whether s must be quoted to survive a round trip
// through the command-language tokenizer
func NeedsQuoting(s string) bool {
	if s == "" {
		return true
	}
	if strings.Contains(s, "::") || strings.Contains(s, ";;") {
		return true
	}
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			return true
		case r == '"' || r == '\'' || r == '\\' || r == '?':
			return true
		}
	}
	return false
}

// Quote wraps s in double quotes, escaping backslashes, double quotes and
// control characters the tokenizer unescapes
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// QuoteIfNeeded returns s unchanged unless NeedsQuoting reports true
func QuoteIfNeeded(s string) string {
	if NeedsQuoting(s) {
		return Quote(s)
	}
	return s
}
