// File: complete.go
// Title: Command Name Completion
// Description: Fuzzy completion over the command names and aliases of a
//              registry, used for tab completion in the REPL.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-11
// Modified: 2025-11-11
//
// Change History:
// - 2025-11-11 v0.1.0: Initial implementation

package repl

import (
	"sort"
	"strings"

	"github.com/msto63/unilang/unilang/registry"
	"github.com/msto63/unilang/unilang/validation"
	"github.com/sahilm/fuzzy"
)

// Completer completes command names
type Completer struct {
	names []string
}

// NewCompleter collects the full names and aliases of reg
func NewCompleter(reg registry.Registry) *Completer {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, def := range reg.Commands() {
		add(def.FullName())
		for _, alias := range def.Aliases {
			add(validation.NormalizeName(alias))
		}
	}
	sort.Strings(names)
	return &Completer{names: names}
}

// Names returns every completable name in sorted order
func (c *Completer) Names() []string {
	return append([]string(nil), c.names...)
}

// Complete returns up to max names matching prefix, best first. Names that
// start with prefix rank before other fuzzy matches. An empty prefix
// returns the first names in sorted order.
func (c *Completer) Complete(prefix string, max int) []string {
	if max <= 0 {
		max = len(c.names)
	}
	if prefix == "" {
		return limit(c.Names(), max)
	}

	query := validation.NormalizeName(prefix)
	var direct, other []string
	for _, m := range fuzzy.Find(query, c.names) {
		if strings.HasPrefix(m.Str, query) {
			direct = append(direct, m.Str)
		} else {
			other = append(other, m.Str)
		}
	}
	sort.Strings(direct)
	return limit(append(direct, other...), max)
}

// CommonPrefix returns the longest prefix shared by all names
func CommonPrefix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	prefix := names[0]
	for _, n := range names[1:] {
		for !strings.HasPrefix(n, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

func limit(names []string, max int) []string {
	if len(names) > max {
		return names[:max]
	}
	return names
}
