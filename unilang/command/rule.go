// File: rule.go
// Title: Argument Validation Rules
// Description: Constraints attached to arguments and checked after value
//              coercion. Rules have a textual form ("min_items:2") used in
//              manifests and generated code.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-04
// Modified: 2025-11-04
//
// Change History:
// - 2025-11-04 v0.1.0: Initial implementation

package command

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/msto63/unilang/unilang/types"
)

// RuleKind identifies a validation rule
type RuleKind string

const (
	RuleMin       RuleKind = "min"
	RuleMax       RuleKind = "max"
	RuleMinLength RuleKind = "min_length"
	RuleMaxLength RuleKind = "max_length"
	RulePattern   RuleKind = "pattern"
	RuleMinItems  RuleKind = "min_items"
)

// ValidationRule is one constraint on an argument value. Number is used by
// the numeric and length rules, Pattern by the pattern rule.
type ValidationRule struct {
	Kind    RuleKind
	Number  float64
	Pattern string
}

// Min returns a rule requiring a numeric value of at least n
func Min(n float64) ValidationRule { return ValidationRule{Kind: RuleMin, Number: n} }

// Max returns a rule requiring a numeric value of at most n
func Max(n float64) ValidationRule { return ValidationRule{Kind: RuleMax, Number: n} }

// MinLength returns a rule requiring a string or list of at least n elements
func MinLength(n int) ValidationRule { return ValidationRule{Kind: RuleMinLength, Number: float64(n)} }

// MaxLength returns a rule requiring a string or list of at most n elements
func MaxLength(n int) ValidationRule { return ValidationRule{Kind: RuleMaxLength, Number: float64(n)} }

// Pattern returns a rule requiring a string to match a regular expression
func Pattern(re string) ValidationRule { return ValidationRule{Kind: RulePattern, Pattern: re} }

// MinItems returns a rule requiring a list of at least n items
func MinItems(n int) ValidationRule { return ValidationRule{Kind: RuleMinItems, Number: float64(n)} }

// ScalarOnly reports whether the rule only makes sense on a single value
func (r ValidationRule) ScalarOnly() bool {
	switch r.Kind {
	case RuleMin, RuleMax, RulePattern:
		return true
	}
	return false
}

// AppliesTo reports whether the rule can be checked against kind
func (r ValidationRule) AppliesTo(kind types.Kind) bool {
	switch r.Kind {
	case RuleMin, RuleMax:
		return kind.IsNumeric()
	case RuleMinLength, RuleMaxLength:
		return kind.Tag == types.TagString || kind.Tag == types.TagList
	case RulePattern:
		return kind.Tag == types.TagString
	case RuleMinItems:
		return kind.IsCollection()
	}
	return false
}

// String returns the textual form accepted by ParseRule
func (r ValidationRule) String() string {
	if r.Kind == RulePattern {
		return string(r.Kind) + ":" + r.Pattern
	}
	return string(r.Kind) + ":" + strconv.FormatFloat(r.Number, 'g', -1, 64)
}

// MarshalText implements encoding.TextMarshaler
func (r ValidationRule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *ValidationRule) UnmarshalText(text []byte) error {
	parsed, err := ParseRule(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRule parses "kind:value". The pattern rule keeps everything after
// the first colon verbatim.
func ParseRule(s string) (ValidationRule, error) {
	name, arg, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return ValidationRule{}, fmt.Errorf("validation rule %q must have the form kind:value", s)
	}
	kind := RuleKind(strings.ToLower(strings.TrimSpace(name)))

	switch kind {
	case RulePattern:
		if _, err := regexp.Compile(arg); err != nil {
			return ValidationRule{}, fmt.Errorf("validation rule %q: %w", s, err)
		}
		return Pattern(arg), nil
	case RuleMin, RuleMax:
		n, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return ValidationRule{}, fmt.Errorf("validation rule %q: invalid number", s)
		}
		return ValidationRule{Kind: kind, Number: n}, nil
	case RuleMinLength, RuleMaxLength, RuleMinItems:
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || n < 0 {
			return ValidationRule{}, fmt.Errorf("validation rule %q: expected a non-negative integer", s)
		}
		return ValidationRule{Kind: kind, Number: float64(n)}, nil
	}
	return ValidationRule{}, fmt.Errorf("unknown validation rule %q", name)
}

// MustParseRule is like ParseRule but panics on error. It is used by
// generated static tables.
func MustParseRule(s string) ValidationRule {
	r, err := ParseRule(s)
	if err != nil {
		panic("command: " + err.Error())
	}
	return r
}

// Check reports whether v satisfies the rule. A rule that does not apply to
// the value's type fails.
func (r ValidationRule) Check(v types.Value) bool {
	switch r.Kind {
	case RuleMin, RuleMax:
		f, ok := v.Float()
		if !ok {
			return false
		}
		if r.Kind == RuleMin {
			return f >= r.Number
		}
		return f <= r.Number

	case RuleMinLength, RuleMaxLength:
		if v.Tag() != types.TagString && v.Tag() != types.TagList {
			return false
		}
		if r.Kind == RuleMinLength {
			return float64(v.Len()) >= r.Number
		}
		return float64(v.Len()) <= r.Number

	case RulePattern:
		s, ok := v.Str()
		if !ok || v.Tag() != types.TagString {
			return false
		}
		re, err := regexp.Compile(r.Pattern)
		return err == nil && re.MatchString(s)

	case RuleMinItems:
		if !(v.Tag() == types.TagList || v.Tag() == types.TagMap) {
			return false
		}
		return float64(v.Len()) >= r.Number
	}
	return false
}

// Describe renders the rule for error messages and help output
func (r ValidationRule) Describe() string {
	n := strconv.FormatFloat(r.Number, 'g', -1, 64)
	switch r.Kind {
	case RuleMin:
		return "value must be at least " + n
	case RuleMax:
		return "value must be at most " + n
	case RuleMinLength:
		return "length must be at least " + n
	case RuleMaxLength:
		return "length must be at most " + n
	case RulePattern:
		return "value must match pattern '" + r.Pattern + "'"
	case RuleMinItems:
		return "must contain at least " + n + " items"
	}
	return r.String()
}
