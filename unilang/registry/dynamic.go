// File: dynamic.go
// Title: Dynamic Registry
// Description: Registry for commands registered at runtime. Writers are
//              serialized and readers run concurrently under a RWMutex.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-06
// Modified: 2025-11-07
//
// Change History:
// - 2025-11-06 v0.1.0: Initial implementation
// - 2025-11-07 v0.1.0: Unregister, Clear and generation counter

package registry

import (
	"sync"
	"sync/atomic"

	ulerror "github.com/msto63/unilang/core/error"
	ullog "github.com/msto63/unilang/core/log"
	"github.com/msto63/unilang/unilang/command"
	"github.com/msto63/unilang/unilang/validation"
)

// Dynamic is a mutable registry
type Dynamic struct {
	index      *index
	logger     *ullog.Logger
	metrics    *Metrics
	generation atomic.Uint64
	mutex      sync.RWMutex
	options    Options
}

// NewDynamic creates an empty dynamic registry
func NewDynamic(opts Options) *Dynamic {
	opts = opts.withDefaults("unilang-registry-dynamic")
	return &Dynamic{
		index:   newIndex(),
		logger:  opts.Logger,
		metrics: opts.Metrics,
		options: opts,
	}
}

// Register validates def and adds it with its routine. The registry keeps
// a deep copy; later changes to def have no effect.
func (r *Dynamic) Register(def *command.CommandDefinition, routine command.Routine) error {
	if def == nil {
		return ulerror.New("command definition must not be nil").
			WithCode(ulerror.CodeInvalidDefinition).
			WithOperation("registry.Register")
	}
	if err := validation.ValidateDefinition(def); err != nil {
		r.logger.Debug("Command rejected", ullog.Fields{
			"command": def.FullName(),
			"error":   err.Error(),
		})
		return err
	}

	def = def.Clone()

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.index.check(def); err != nil {
		r.logger.Debug("Command rejected", ullog.Fields{
			"command": def.FullName(),
			"error":   err.Error(),
		})
		return err
	}
	r.index.insert(def, routine)
	r.generation.Add(1)

	r.logger.Info("Command registered", ullog.Fields{
		"command":    def.FullName(),
		"aliases":    len(def.Aliases),
		"arguments":  len(def.Arguments),
		"hasRoutine": routine != nil,
	})
	return nil
}

// Unregister removes a command (by name or alias) with its aliases and
// synthesized help. It reports whether a command was removed.
func (r *Dynamic) Unregister(name string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	def, ok := r.index.remove(name)
	if !ok {
		return false
	}
	r.generation.Add(1)

	r.logger.Info("Command unregistered", ullog.Fields{"command": def.FullName()})
	return true
}

// Clear removes all commands
func (r *Dynamic) Clear() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.index = newIndex()
	r.generation.Add(1)
	r.logger.Info("Registry cleared")
}

// Command resolves a command, alias or help name
func (r *Dynamic) Command(name string) (*command.CommandDefinition, bool) {
	e, ok := r.lookup(name)
	if !ok {
		return nil, false
	}
	return e.def, true
}

// Commands returns the registered commands sorted by full name
func (r *Dynamic) Commands() []*command.CommandDefinition {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.index.primary()
}

// GetHelpForCommand returns the help entry of a command
func (r *Dynamic) GetHelpForCommand(name string) (*command.CommandDefinition, bool) {
	return r.Command(helpName(name))
}

// Routine returns the routine of a command
func (r *Dynamic) Routine(name string) (command.Routine, bool) {
	e, ok := r.lookup(name)
	if !ok || e.routine == nil {
		return nil, false
	}
	return e.routine, true
}

// Has reports whether name is taken by a command or an alias
func (r *Dynamic) Has(name string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.index.has(name)
}

// Len returns the number of registered commands
func (r *Dynamic) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.index.size()
}

// Metrics returns the lookup counters of this registry
func (r *Dynamic) Metrics() *Metrics {
	return r.metrics
}

func (r *Dynamic) lookup(name string) (*entry, bool) {
	r.metrics.recordLookup()
	r.metrics.recordDynamic()

	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.index.resolve(name)
}

// version changes whenever the set of commands changes
func (r *Dynamic) version() uint64 {
	return r.generation.Load()
}
