// File: hybrid.go
// Title: Hybrid Registry
// Description: Combines a static and a dynamic registry. Lookups try the
//              static layer first; dynamic hits are served through a bounded
//              LRU cache. The lookup mode selects which layers are consulted.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-07
// Modified: 2025-11-07
//
// Change History:
// - 2025-11-07 v0.1.0: Initial implementation

package registry

import (
	"fmt"
	"strings"
	"sync/atomic"

	ulerror "github.com/msto63/unilang/core/error"
	ullog "github.com/msto63/unilang/core/log"
	"github.com/msto63/unilang/unilang/command"
	"github.com/msto63/unilang/unilang/validation"
)

// Mode selects the layers a hybrid registry consults
type Mode int32

const (
	ModeStaticOnly Mode = iota
	ModeDynamicOnly
	ModeHybrid
	// ModeAuto behaves like ModeHybrid when both layers hold commands and
	// like the non-empty layer otherwise
	ModeAuto
)

// String returns the name of the mode
func (m Mode) String() string {
	switch m {
	case ModeStaticOnly:
		return "static"
	case ModeDynamicOnly:
		return "dynamic"
	case ModeHybrid:
		return "hybrid"
	case ModeAuto:
		return "auto"
	default:
		return fmt.Sprintf("Mode(%d)", int32(m))
	}
}

// ParseMode parses a mode name; "static-only" and "dynamic-only" are
// accepted as well
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "static", "static-only", "static_only":
		return ModeStaticOnly, nil
	case "dynamic", "dynamic-only", "dynamic_only":
		return ModeDynamicOnly, nil
	case "hybrid":
		return ModeHybrid, nil
	case "", "auto":
		return ModeAuto, nil
	}
	return ModeAuto, ulerror.Newf("unknown registry mode '%s'", s).
		WithCode(ulerror.CodeInvalidConfig).
		WithOperation("registry.ParseMode")
}

// Hybrid is a static registry in front of a dynamic one
type Hybrid struct {
	static  *Static
	dynamic *Dynamic
	mode    atomic.Int32
	cache   *lookupCache
	logger  *ullog.Logger
	metrics *Metrics
	options Options
}

// NewHybrid combines static and dynamic. Either may be nil and is then
// replaced by an empty registry.
func NewHybrid(static *Static, dynamic *Dynamic, mode Mode, opts Options) *Hybrid {
	opts = opts.withDefaults("unilang-registry-hybrid")
	if static == nil {
		static, _ = NewStatic(nil, nil, Options{Logger: opts.Logger})
	}
	if dynamic == nil {
		dynamic = NewDynamic(Options{Logger: opts.Logger})
	}

	h := &Hybrid{
		static:  static,
		dynamic: dynamic,
		cache:   newLookupCache(opts.CacheSize),
		logger:  opts.Logger,
		metrics: opts.Metrics,
		options: opts,
	}
	h.mode.Store(int32(mode))

	h.logger.Debug("Hybrid registry created", ullog.Fields{
		"mode":            mode.String(),
		"staticCommands":  static.Len(),
		"dynamicCommands": dynamic.Len(),
		"cacheSize":       opts.CacheSize,
	})
	return h
}

// Mode returns the configured lookup mode
func (h *Hybrid) Mode() Mode {
	return Mode(h.mode.Load())
}

// SetMode changes the lookup mode
func (h *Hybrid) SetMode(mode Mode) {
	h.mode.Store(int32(mode))
	h.cache.clear()
}

// Static returns the static layer
func (h *Hybrid) Static() *Static {
	return h.static
}

// Dynamic returns the dynamic layer
func (h *Hybrid) Dynamic() *Dynamic {
	return h.dynamic
}

// Metrics returns the lookup counters of this registry
func (h *Hybrid) Metrics() *Metrics {
	return h.metrics
}

// CacheLen returns the number of cached dynamic lookups
func (h *Hybrid) CacheLen() int {
	return h.cache.len()
}

// ClearCache empties the lookup cache
func (h *Hybrid) ClearCache() {
	h.cache.clear()
}

// layers returns which layers the effective mode consults
func (h *Hybrid) layers() (useStatic, useDynamic bool) {
	switch h.Mode() {
	case ModeStaticOnly:
		return true, false
	case ModeDynamicOnly:
		return false, true
	case ModeAuto:
		hasStatic := h.static.Len() > 0
		hasDynamic := h.dynamic.Len() > 0
		if hasStatic != hasDynamic {
			return hasStatic, hasDynamic
		}
		return true, true
	default:
		return true, true
	}
}

// Register adds a dynamic command. Names and aliases already used by the
// static layer are rejected.
func (h *Hybrid) Register(def *command.CommandDefinition, routine command.Routine) error {
	if h.Mode() == ModeStaticOnly {
		return ulerror.New("registry is in static-only mode").
			WithCode(ulerror.CodeInvalidDefinition).
			WithOperation("registry.Register")
	}
	if def != nil {
		names := append([]string{def.FullName()}, def.Aliases...)
		for _, name := range names {
			if h.static.Has(name) {
				return ulerror.Newf("'%s' is already defined by a static command", name).
					WithCode(ulerror.CodeCommandAlreadyExists).
					WithOperation("registry.Register").
					WithDetail("command", def.FullName())
			}
		}
	}
	return h.dynamic.Register(def, routine)
}

// Unregister removes a dynamic command. Static commands cannot be removed.
func (h *Hybrid) Unregister(name string) bool {
	return h.dynamic.Unregister(name)
}

// Command resolves a command, alias or help name
func (h *Hybrid) Command(name string) (*command.CommandDefinition, bool) {
	e, ok := h.lookup(name)
	if !ok {
		return nil, false
	}
	return e.def, true
}

// Commands returns the commands of the consulted layers sorted by full
// name. A static command shadows a dynamic one of the same name.
func (h *Hybrid) Commands() []*command.CommandDefinition {
	useStatic, useDynamic := h.layers()

	var defs []*command.CommandDefinition
	seen := make(map[string]bool)
	if useStatic {
		for _, def := range h.static.Commands() {
			seen[def.FullName()] = true
			defs = append(defs, def)
		}
	}
	if useDynamic {
		for _, def := range h.dynamic.Commands() {
			if !seen[def.FullName()] {
				defs = append(defs, def)
			}
		}
	}
	sortDefinitions(defs)
	return defs
}

// GetHelpForCommand returns the help entry of a command
func (h *Hybrid) GetHelpForCommand(name string) (*command.CommandDefinition, bool) {
	return h.Command(helpName(name))
}

// Routine returns the routine of a command
func (h *Hybrid) Routine(name string) (command.Routine, bool) {
	e, ok := h.lookup(name)
	if !ok || e.routine == nil {
		return nil, false
	}
	return e.routine, true
}

func (h *Hybrid) lookup(name string) (*entry, bool) {
	useStatic, useDynamic := h.layers()
	h.metrics.recordLookup()

	if useStatic {
		h.metrics.recordStatic()
		if e, ok := h.static.index.resolve(name); ok {
			return e, true
		}
	}
	if !useDynamic {
		return nil, false
	}

	h.metrics.recordDynamic()
	key := validation.NormalizeName(name)
	generation := h.dynamic.version()
	if e, ok := h.cache.get(key, generation); ok {
		h.metrics.recordCache(true)
		return e, true
	}
	h.metrics.recordCache(false)

	h.dynamic.mutex.RLock()
	e, ok := h.dynamic.index.resolve(key)
	h.dynamic.mutex.RUnlock()
	if ok {
		h.cache.put(key, e, generation)
	}
	return e, ok
}
