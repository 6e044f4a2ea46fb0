// File: help.go
// Title: Help Synthesis and Formatting
// Description: Generates the "X.help" companion entries and renders command
//              help, the command listing and the namespace grouping.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-06
// Modified: 2025-11-07
//
// Change History:
// - 2025-11-06 v0.1.0: Initial implementation

package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/msto63/unilang/unilang/command"
	ulstringx "github.com/msto63/unilang/utils/stringx"
)

// HelpFormat is the output format of help content
const HelpFormat = "help"

func synthesizeHelp(parent *command.CommandDefinition) *entry {
	def := &command.CommandDefinition{
		Name:        parent.Name + command.HelpSuffix,
		Namespace:   parent.Namespace,
		Description: fmt.Sprintf("Show help for %s", parent.FullName()),
		Hint:        parent.Description,
		Status:      parent.Status,
		Version:     parent.Version,
		Tags:        []string{"help"},
		Idempotent:  true,
		Examples:    []string{parent.FullName() + command.HelpSuffix},
	}
	text := FormatHelp(parent)
	routine := func(command.VerifiedCommand, *command.ExecutionContext) (command.OutputData, error) {
		return command.OutputData{Content: text, Format: HelpFormat}, nil
	}
	return &entry{def: def, routine: routine, synthetic: true}
}

// FormatHelp renders the help text of a command
func FormatHelp(def *command.CommandDefinition) string {
	var b strings.Builder
	name := def.FullName()

	fmt.Fprintf(&b, "Command: %s\n", name)
	fmt.Fprintf(&b, "Description: %s\n", def.Description)
	if def.Hint != "" {
		fmt.Fprintf(&b, "Hint: %s\n", def.Hint)
	}
	fmt.Fprintf(&b, "Version: %s\n", def.Version)
	status := def.Status
	if status == "" {
		status = command.StatusStable
	}
	fmt.Fprintf(&b, "Status: %s\n", status)
	if def.IsDeprecated() && def.DeprecationMessage != "" {
		fmt.Fprintf(&b, "Deprecated: %s\n", def.DeprecationMessage)
	}

	if len(def.Arguments) > 0 {
		b.WriteString("\nArguments:\n")
		for i := range def.Arguments {
			arg := &def.Arguments[i]
			required := "required"
			if !arg.Required() {
				required = "optional"
			}
			fmt.Fprintf(&b, "  %s (%s, %s)", arg.Name, arg.Kind, required)
			if arg.Attributes.Multiple {
				b.WriteString(" [multiple]")
			}
			if d := arg.Attributes.Default; d != nil {
				if arg.Attributes.Sensitive {
					b.WriteString(" [default: ***]")
				} else {
					fmt.Fprintf(&b, " [default: %s]", *d)
				}
			}
			b.WriteString("\n")
			if text := firstNonEmpty(arg.Description, arg.Hint); text != "" {
				fmt.Fprintf(&b, "    %s\n", text)
			}
			if len(arg.ValidationRules) > 0 {
				rules := make([]string, len(arg.ValidationRules))
				for j, r := range arg.ValidationRules {
					rules[j] = r.String()
				}
				fmt.Fprintf(&b, "    Rules: %s\n", strings.Join(rules, ", "))
			}
			if len(arg.Aliases) > 0 {
				fmt.Fprintf(&b, "    Aliases: %s\n", strings.Join(arg.Aliases, ", "))
			}
		}
	}

	if len(def.Examples) > 0 {
		b.WriteString("\nExamples:\n")
		for _, ex := range def.Examples {
			fmt.Fprintf(&b, "  %s\n", ex)
		}
	}

	if len(def.Aliases) > 0 {
		fmt.Fprintf(&b, "\nAliases: %s\n", strings.Join(def.Aliases, ", "))
	}

	b.WriteString("\nUsage:\n")
	fmt.Fprintf(&b, "  %s  # Execute command\n", name)
	if !def.IsHelp() {
		fmt.Fprintf(&b, "  %s.help  # Show this help\n", name)
		fmt.Fprintf(&b, "  %s ??  # Alternative help access\n", name)
	}
	return b.String()
}

// FormatListing renders the overview of the given commands
func FormatListing(defs []*command.CommandDefinition) string {
	if len(defs) == 0 {
		return "No commands are currently available.\n"
	}

	var b strings.Builder
	b.WriteString("Available commands:\n\n")
	for _, def := range defs {
		fmt.Fprintf(&b, "  %s %s\n", ulstringx.PadRight(def.FullName(), 20, ' '), def.Description)
	}
	b.WriteString("\nUse '<command> ?' to get detailed help for a specific command.\n")
	return b.String()
}

// Namespaces groups the commands of reg by namespace. The root namespace
// is reported as ".". Groups and their commands are sorted by name.
func Namespaces(reg Registry) []command.Namespace {
	groups := make(map[string][]*command.CommandDefinition)
	for _, def := range reg.Commands() {
		ns := def.Namespace
		if ns == "" {
			ns = "."
		}
		groups[ns] = append(groups[ns], def)
	}

	names := make([]string, 0, len(groups))
	for ns := range groups {
		names = append(names, ns)
	}
	sort.Strings(names)

	result := make([]command.Namespace, len(names))
	for i, ns := range names {
		result[i] = command.Namespace{Name: ns, Commands: groups[ns]}
	}
	return result
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
