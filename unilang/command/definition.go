// File: definition.go
// Title: Command Definitions
// Description: Declarative description of a command and its arguments as
//              registered with a registry, loaded from manifests or compiled
//              into a static table.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-04
// Modified: 2025-11-06
//
// Change History:
// - 2025-11-04 v0.1.0: Initial implementation
// - 2025-11-06 v0.1.0: Added yaml/json/toml tags for manifests

package command

import (
	"fmt"
	"strings"

	"github.com/msto63/unilang/unilang/types"
)

// HelpSuffix is appended to a command name to address its help entry
const HelpSuffix = ".help"

// Status describes the lifecycle stage of a command
type Status string

const (
	StatusStable       Status = "stable"
	StatusExperimental Status = "experimental"
	StatusDeprecated   Status = "deprecated"
)

// ParseStatus parses a status name case-insensitively; empty means stable
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stable":
		return StatusStable, nil
	case "experimental":
		return StatusExperimental, nil
	case "deprecated":
		return StatusDeprecated, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// CommandDefinition describes one command. Name is the dot-prefixed local
// name (".add"), Namespace is empty or dot-prefixed (".math").
type CommandDefinition struct {
	Name               string               `yaml:"name" json:"name" toml:"name"`
	Namespace          string               `yaml:"namespace" json:"namespace" toml:"namespace"`
	Description        string               `yaml:"description" json:"description" toml:"description"`
	Hint               string               `yaml:"hint" json:"hint" toml:"hint"`
	Status             Status               `yaml:"status" json:"status" toml:"status"`
	Version            string               `yaml:"version" json:"version" toml:"version"`
	Arguments          []ArgumentDefinition `yaml:"arguments" json:"arguments" toml:"arguments"`
	RoutineLink        string               `yaml:"routine_link" json:"routine_link" toml:"routine_link"`
	Aliases            []string             `yaml:"aliases" json:"aliases" toml:"aliases"`
	Tags               []string             `yaml:"tags" json:"tags" toml:"tags"`
	Permissions        []string             `yaml:"permissions" json:"permissions" toml:"permissions"`
	Idempotent         bool                 `yaml:"idempotent" json:"idempotent" toml:"idempotent"`
	DeprecationMessage string               `yaml:"deprecation_message" json:"deprecation_message" toml:"deprecation_message"`
	Examples           []string             `yaml:"examples" json:"examples" toml:"examples"`
}

// FullName returns the fully-qualified dot-prefixed name
func (d *CommandDefinition) FullName() string {
	if d.Namespace == "" || d.Namespace == "." {
		return d.Name
	}
	return d.Namespace + d.Name
}

// IsHelp reports whether the definition is a help entry
func (d *CommandDefinition) IsHelp() bool {
	return strings.HasSuffix(d.Name, HelpSuffix)
}

// IsDeprecated reports whether the command is deprecated
func (d *CommandDefinition) IsDeprecated() bool {
	return d.Status == StatusDeprecated
}

// Argument returns the argument declared with name or alias
func (d *CommandDefinition) Argument(name string) (*ArgumentDefinition, bool) {
	for i := range d.Arguments {
		if d.Arguments[i].Matches(name) {
			return &d.Arguments[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the definition
func (d *CommandDefinition) Clone() *CommandDefinition {
	c := *d
	c.Aliases = cloneStrings(d.Aliases)
	c.Tags = cloneStrings(d.Tags)
	c.Permissions = cloneStrings(d.Permissions)
	c.Examples = cloneStrings(d.Examples)
	if d.Arguments != nil {
		c.Arguments = make([]ArgumentDefinition, len(d.Arguments))
		for i := range d.Arguments {
			c.Arguments[i] = d.Arguments[i].Clone()
		}
	}
	return &c
}

// ArgumentAttributes hold the binding behaviour of an argument
type ArgumentAttributes struct {
	Optional    bool    `yaml:"optional" json:"optional" toml:"optional"`
	Multiple    bool    `yaml:"multiple" json:"multiple" toml:"multiple"`
	Default     *string `yaml:"default" json:"default,omitempty" toml:"default"`
	Sensitive   bool    `yaml:"sensitive" json:"sensitive" toml:"sensitive"`
	Interactive bool    `yaml:"interactive" json:"interactive" toml:"interactive"`
}

// ArgumentDefinition describes one argument of a command
type ArgumentDefinition struct {
	Name            string             `yaml:"name" json:"name" toml:"name"`
	Kind            types.Kind         `yaml:"kind" json:"kind" toml:"kind"`
	Hint            string             `yaml:"hint" json:"hint" toml:"hint"`
	Description     string             `yaml:"description" json:"description" toml:"description"`
	Attributes      ArgumentAttributes `yaml:"attributes" json:"attributes" toml:"attributes"`
	ValidationRules []ValidationRule   `yaml:"validation_rules" json:"validation_rules" toml:"validation_rules"`
	Aliases         []string           `yaml:"aliases" json:"aliases" toml:"aliases"`
	Tags            []string           `yaml:"tags" json:"tags" toml:"tags"`
}

// Required reports whether the argument must be supplied
func (a *ArgumentDefinition) Required() bool {
	return !a.Attributes.Optional && a.Attributes.Default == nil
}

// IsMultiple reports whether the argument holds several values, either by
// attribute or by a collection kind
func (a *ArgumentDefinition) IsMultiple() bool {
	return a.Attributes.Multiple || a.Kind.IsCollection()
}

// Matches reports whether name is the argument's name or one of its aliases
func (a *ArgumentDefinition) Matches(name string) bool {
	if a.Name == name {
		return true
	}
	for _, alias := range a.Aliases {
		if alias == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the argument
func (a *ArgumentDefinition) Clone() ArgumentDefinition {
	c := *a
	c.Kind = a.Kind.Clone()
	c.Aliases = cloneStrings(a.Aliases)
	c.Tags = cloneStrings(a.Tags)
	if a.ValidationRules != nil {
		c.ValidationRules = append([]ValidationRule(nil), a.ValidationRules...)
	}
	if a.Attributes.Default != nil {
		d := *a.Attributes.Default
		c.Attributes.Default = &d
	}
	return c
}

// DefaultValue is a helper for building a *string default
func DefaultValue(s string) *string {
	return &s
}

// Namespace groups the commands sharing a namespace
type Namespace struct {
	Name     string
	Commands []*CommandDefinition
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
