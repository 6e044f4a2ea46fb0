// File: registry.go
// Title: Registry Interface and Index
// Description: The read interface shared by all registry variants and the
//              name index they are built on: canonical entries, alias
//              resolution and synthesized help entries.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-06
// Modified: 2025-11-07
//
// Change History:
// - 2025-11-06 v0.1.0: Initial implementation

package registry

import (
	"sort"
	"strings"

	ulerror "github.com/msto63/unilang/core/error"
	ullog "github.com/msto63/unilang/core/log"
	"github.com/msto63/unilang/unilang/command"
	"github.com/msto63/unilang/unilang/validation"
)

// Registry is the read-only capability consumed by the analyzer and the
// interpreter. Names may omit the leading dot.
type Registry interface {
	// Command resolves a full name, an alias or a help name
	Command(name string) (*command.CommandDefinition, bool)
	// Commands returns the registered commands sorted by full name,
	// without synthesized help entries
	Commands() []*command.CommandDefinition
	// GetHelpForCommand returns the help entry of the named command
	GetHelpForCommand(name string) (*command.CommandDefinition, bool)
	// Routine returns the routine bound to a command
	Routine(name string) (command.Routine, bool)
}

// DefaultCacheSize is the capacity of the hybrid lookup cache
const DefaultCacheSize = 256

// Options configures a registry
type Options struct {
	Logger    *ullog.Logger
	Metrics   *Metrics
	CacheSize int
}

func (o Options) withDefaults(component string) Options {
	if o.Logger == nil {
		o.Logger = ullog.GetDefault()
	}
	o.Logger = o.Logger.WithField("component", component)
	if o.Metrics == nil {
		o.Metrics = NewMetrics()
	}
	if o.CacheSize <= 0 {
		o.CacheSize = DefaultCacheSize
	}
	return o
}

// entry is one resolvable name. Synthetic entries are generated help.
type entry struct {
	def       *command.CommandDefinition
	routine   command.Routine
	synthetic bool
}

// index maps full names and aliases to entries. It is not synchronized;
// Dynamic guards it with its mutex and Static never mutates it after build.
type index struct {
	entries map[string]*entry
	aliases map[string]string // normalized alias -> canonical full name
}

func newIndex() *index {
	return &index{
		entries: make(map[string]*entry),
		aliases: make(map[string]string),
	}
}

// resolve finds the entry for a full name, an alias or "<alias>.help"
func (ix *index) resolve(name string) (*entry, bool) {
	name = validation.NormalizeName(name)
	if e, ok := ix.entries[name]; ok {
		return e, true
	}
	if canonical, ok := ix.aliases[name]; ok {
		e, ok := ix.entries[canonical]
		return e, ok
	}
	if base, ok := strings.CutSuffix(name, command.HelpSuffix); ok {
		if canonical, ok := ix.aliases[base]; ok {
			e, ok := ix.entries[canonical+command.HelpSuffix]
			return e, ok
		}
	}
	return nil, false
}

// has reports whether name is taken by an entry or an alias
func (ix *index) has(name string) bool {
	name = validation.NormalizeName(name)
	if _, ok := ix.entries[name]; ok {
		return true
	}
	_, ok := ix.aliases[name]
	return ok
}

// check returns an error when def cannot be inserted. A user definition
// may take over the name of a synthesized help entry.
func (ix *index) check(def *command.CommandDefinition) error {
	name := def.FullName()
	if e, ok := ix.entries[name]; ok && !e.synthetic {
		return ulerror.Newf("command '%s' is already registered", name).
			WithCode(ulerror.CodeCommandAlreadyExists).
			WithOperation("registry.Register").
			WithDetail("command", name)
	}
	if owner, ok := ix.aliases[name]; ok {
		return ulerror.Newf("command name '%s' is already an alias of '%s'", name, owner).
			WithCode(ulerror.CodeAliasConflict).
			WithOperation("registry.Register").
			WithDetail("command", name)
	}

	for _, alias := range def.Aliases {
		key := validation.NormalizeName(alias)
		if owner, ok := ix.aliases[key]; ok {
			return ulerror.Newf("alias '%s' of '%s' is already used by '%s'", alias, name, owner).
				WithCode(ulerror.CodeAliasConflict).
				WithOperation("registry.Register").
				WithDetail("command", name).
				WithDetail("alias", alias)
		}
		if _, ok := ix.entries[key]; ok {
			return ulerror.Newf("alias '%s' of '%s' collides with a registered command", alias, name).
				WithCode(ulerror.CodeAliasConflict).
				WithOperation("registry.Register").
				WithDetail("command", name).
				WithDetail("alias", alias)
		}
	}
	return nil
}

// insert adds def, its aliases and, for non-help commands, a synthesized
// help entry unless a user-defined one already exists
func (ix *index) insert(def *command.CommandDefinition, routine command.Routine) {
	name := def.FullName()
	ix.entries[name] = &entry{def: def, routine: routine}
	for _, alias := range def.Aliases {
		ix.aliases[validation.NormalizeName(alias)] = name
	}
	if def.IsHelp() {
		return
	}
	helpName := name + command.HelpSuffix
	if _, exists := ix.entries[helpName]; !exists {
		ix.entries[helpName] = synthesizeHelp(def)
	}
}

// remove deletes the canonical entry for name (or alias) together with its
// aliases and synthesized help. Synthesized entries cannot be removed.
func (ix *index) remove(name string) (*command.CommandDefinition, bool) {
	e, ok := ix.resolve(name)
	if !ok || e.synthetic {
		return nil, false
	}
	full := e.def.FullName()
	delete(ix.entries, full)
	for _, alias := range e.def.Aliases {
		delete(ix.aliases, validation.NormalizeName(alias))
	}

	if !e.def.IsHelp() {
		if h, ok := ix.entries[full+command.HelpSuffix]; ok && h.synthetic {
			delete(ix.entries, full+command.HelpSuffix)
		}
		return e.def, true
	}

	// a removed user help entry falls back to the synthesized one
	base := strings.TrimSuffix(full, command.HelpSuffix)
	if parent, ok := ix.entries[base]; ok && !parent.synthetic && !parent.def.IsHelp() {
		ix.entries[full] = synthesizeHelp(parent.def)
	}
	return e.def, true
}

// primary returns the non-synthetic definitions sorted by full name
func (ix *index) primary() []*command.CommandDefinition {
	defs := make([]*command.CommandDefinition, 0, len(ix.entries))
	for _, e := range ix.entries {
		if !e.synthetic {
			defs = append(defs, e.def)
		}
	}
	sortDefinitions(defs)
	return defs
}

func (ix *index) size() int {
	n := 0
	for _, e := range ix.entries {
		if !e.synthetic {
			n++
		}
	}
	return n
}

func sortDefinitions(defs []*command.CommandDefinition) {
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].FullName() < defs[j].FullName()
	})
}

func helpName(name string) string {
	return validation.NormalizeName(name) + command.HelpSuffix
}
