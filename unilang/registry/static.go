// File: static.go
// Title: Static Registry
// Description: Immutable registry built once from a precomputed table. It
//              applies the same validation as the dynamic registry and needs
//              no locking after construction.
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

	ulerror "github.com/msto63/unilang/core/error"
	ullog "github.com/msto63/unilang/core/log"
	"github.com/msto63/unilang/unilang/command"
	"github.com/msto63/unilang/unilang/validation"
)

// Table maps full command names to definitions. Generated code produces
// tables of this type.
type Table map[string]*command.CommandDefinition

// Static is an immutable registry
type Static struct {
	index   *index
	logger  *ullog.Logger
	metrics *Metrics
	options Options
}

// NewStatic builds a registry from table. Routines are looked up by full
// name first and by routine link second; commands without a routine are
// allowed and fail when executed.
func NewStatic(table Table, routines map[string]command.Routine, opts Options) (*Static, error) {
	opts = opts.withDefaults("unilang-registry-static")

	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ix := newIndex()
	for _, key := range keys {
		def := table[key]
		if def == nil {
			return nil, ulerror.Newf("static table entry '%s' is nil", key).
				WithCode(ulerror.CodeInvalidDefinition).
				WithOperation("registry.NewStatic")
		}
		if err := validation.ValidateDefinition(def); err != nil {
			return nil, ulerror.Wrap(err, "invalid static command").
				WithOperation("registry.NewStatic").
				WithDetail("key", key)
		}
		if def.FullName() != validation.NormalizeName(key) {
			return nil, ulerror.Newf("static table key '%s' does not match command '%s'", key, def.FullName()).
				WithCode(ulerror.CodeInvalidDefinition).
				WithOperation("registry.NewStatic").
				WithDetail("key", key)
		}

		def = def.Clone()
		if err := ix.check(def); err != nil {
			return nil, err
		}
		ix.insert(def, routineFor(def, routines))
	}

	s := &Static{
		index:   ix,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		options: opts,
	}
	s.logger.Debug("Static registry built", ullog.Fields{"commands": ix.size()})
	return s, nil
}

// MustStatic is like NewStatic but panics on an invalid table. It is meant
// for generated code, where an invalid table is a build defect.
func MustStatic(table Table, routines map[string]command.Routine) *Static {
	s, err := NewStatic(table, routines, Options{})
	if err != nil {
		panic("registry: invalid static table: " + err.Error())
	}
	return s
}

// Command resolves a command, alias or help name
func (s *Static) Command(name string) (*command.CommandDefinition, bool) {
	e, ok := s.lookup(name)
	if !ok {
		return nil, false
	}
	return e.def, true
}

// Commands returns the commands sorted by full name
func (s *Static) Commands() []*command.CommandDefinition {
	return s.index.primary()
}

// GetHelpForCommand returns the help entry of a command
func (s *Static) GetHelpForCommand(name string) (*command.CommandDefinition, bool) {
	return s.Command(helpName(name))
}

// Routine returns the routine of a command
func (s *Static) Routine(name string) (command.Routine, bool) {
	e, ok := s.lookup(name)
	if !ok || e.routine == nil {
		return nil, false
	}
	return e.routine, true
}

// Has reports whether name is taken by a command or an alias
func (s *Static) Has(name string) bool {
	return s.index.has(name)
}

// Len returns the number of commands
func (s *Static) Len() int {
	return s.index.size()
}

// Metrics returns the lookup counters of this registry
func (s *Static) Metrics() *Metrics {
	return s.metrics
}

func (s *Static) lookup(name string) (*entry, bool) {
	s.metrics.recordLookup()
	s.metrics.recordStatic()
	return s.index.resolve(name)
}

func routineFor(def *command.CommandDefinition, routines map[string]command.Routine) command.Routine {
	if r, ok := routines[def.FullName()]; ok {
		return r
	}
	if def.RoutineLink != "" {
		return routines[def.RoutineLink]
	}
	return nil
}
