// File: aggregate.go
// Title: Multi-Manifest Aggregation
// Description: Merges the commands of several manifest modules into one
//              set, applying per-module and global namespace prefixes and
//              reporting name collisions between modules.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-12
// Modified: 2025-11-12
//
// Change History:
// - 2025-11-12 v0.1.0: Initial implementation

package loader

import (
	"path/filepath"
	"sort"
	"strings"

	ulerror "github.com/msto63/unilang/core/error"
	"github.com/msto63/unilang/unilang/command"
	"github.com/msto63/unilang/unilang/validation"
)

// Module is a named group of definitions sharing an optional prefix
type Module struct {
	Name        string
	Prefix      string
	Definitions []*command.CommandDefinition
}

// ConflictKind classifies a ConflictReport
type ConflictKind int

const (
	// ConflictNameCollision means several modules declare the same full
	// name with the same arguments
	ConflictNameCollision ConflictKind = iota
	// ConflictSignatureMismatch means several modules declare the same full
	// name with different arguments
	ConflictSignatureMismatch
	// ConflictPrefix means several modules share one prefix
	ConflictPrefix
)

// String returns the string representation of the conflict kind
func (k ConflictKind) String() string {
	switch k {
	case ConflictNameCollision:
		return "name_collision"
	case ConflictSignatureMismatch:
		return "signature_mismatch"
	case ConflictPrefix:
		return "prefix_conflict"
	default:
		return "unknown"
	}
}

// ConflictReport names a command or prefix claimed by more than one module,
// listing the modules in declaration order
type ConflictReport struct {
	Command string
	Modules []string
	Kind    ConflictKind
}

// Aggregation is the outcome of Aggregate
type Aggregation struct {
	Definitions []*command.CommandDefinition
	Conflicts   []ConflictReport
}

// ModuleName derives a module name from a manifest path: the base name
// without extension
func ModuleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ValidatePrefix checks a namespace prefix such as "math" or ".tools.math".
// The empty prefix is valid and means no prefix.
func ValidatePrefix(prefix string) error {
	if strings.TrimSpace(prefix) == "" {
		return nil
	}
	if err := validation.ValidateNamespace(validation.NormalizeName(prefix)); err != nil {
		return ulerror.Wrap(err, "invalid namespace prefix").
			WithOperation("loader.ValidatePrefix").
			WithDetail("prefix", prefix)
	}
	return nil
}

// ApplyPrefix moves def below prefix: the namespace ".b" becomes ".a.b"
// under prefix "a", the root namespace becomes ".a"
func ApplyPrefix(def *command.CommandDefinition, prefix string) {
	prefix = strings.TrimSpace(prefix)
	if def == nil || prefix == "" {
		return
	}
	prefix = validation.NormalizeName(prefix)
	if def.Namespace == "" || def.Namespace == validation.Delimiter {
		def.Namespace = prefix
		return
	}
	def.Namespace = prefix + def.Namespace
}

// Aggregate merges modules in order. Each definition is cloned, then the
// module prefix and after it the global prefix are applied, so the global
// prefix is outermost. For a full name declared by several modules the
// first declaration is kept and a conflict is reported.
func Aggregate(modules []Module, globalPrefix string) (*Aggregation, error) {
	if err := ValidatePrefix(globalPrefix); err != nil {
		return nil, err
	}

	agg := &Aggregation{}
	owners := make(map[string][]string)
	kept := make(map[string]*command.CommandDefinition)
	mismatch := make(map[string]bool)
	prefixes := make(map[string][]string)
	var order, prefixOrder []string

	for _, m := range modules {
		if err := ValidatePrefix(m.Prefix); err != nil {
			return nil, ulerror.Wrap(err, "invalid module prefix").
				WithOperation("loader.Aggregate").
				WithDetail("module", m.Name)
		}
		if p := strings.TrimSpace(m.Prefix); p != "" {
			p = validation.NormalizeName(p)
			if _, ok := prefixes[p]; !ok {
				prefixOrder = append(prefixOrder, p)
			}
			prefixes[p] = appendOnce(prefixes[p], m.Name)
		}

		for _, def := range m.Definitions {
			if def == nil {
				continue
			}
			c := def.Clone()
			ApplyPrefix(c, m.Prefix)
			ApplyPrefix(c, globalPrefix)
			name := c.FullName()

			if first, dup := kept[name]; dup {
				if !sameSignature(first, c) {
					mismatch[name] = true
				}
				owners[name] = append(owners[name], m.Name)
				continue
			}
			kept[name] = c
			owners[name] = []string{m.Name}
			order = append(order, name)
			agg.Definitions = append(agg.Definitions, c)
		}
	}

	for _, name := range order {
		if len(owners[name]) < 2 {
			continue
		}
		kind := ConflictNameCollision
		if mismatch[name] {
			kind = ConflictSignatureMismatch
		}
		agg.Conflicts = append(agg.Conflicts, ConflictReport{Command: name, Modules: owners[name], Kind: kind})
	}
	for _, p := range prefixOrder {
		if len(prefixes[p]) > 1 {
			agg.Conflicts = append(agg.Conflicts, ConflictReport{Command: p, Modules: prefixes[p], Kind: ConflictPrefix})
		}
	}
	sort.SliceStable(agg.Conflicts, func(i, j int) bool {
		return agg.Conflicts[i].Command < agg.Conflicts[j].Command
	})
	return agg, nil
}

// Collisions returns the reports about commands, leaving out shared prefixes
func (a *Aggregation) Collisions() []ConflictReport {
	var out []ConflictReport
	for _, c := range a.Conflicts {
		if c.Kind != ConflictPrefix {
			out = append(out, c)
		}
	}
	return out
}

func sameSignature(a, b *command.CommandDefinition) bool {
	if len(a.Arguments) != len(b.Arguments) {
		return false
	}
	for i := range a.Arguments {
		x, y := a.Arguments[i], b.Arguments[i]
		if x.Name != y.Name || !x.Kind.Equal(y.Kind) || x.Required() != y.Required() {
			return false
		}
	}
	return true
}

func appendOnce(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
