// File: builder.go
// Title: Registry Builder
// Description: Fluent construction of a hybrid registry from programmatic
//              definitions, a static table and declarative manifests, with
//              routine links resolved at build time.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-07
// Modified: 2025-11-12
//
// Change History:
// - 2025-11-07 v0.1.0: Initial implementation
// - 2025-11-08 v0.1.0: Manifest loading through the loader package
// - 2025-11-12 v0.1.0: Manifest modules with prefixes and conflict reports

package registry

import (
	"strconv"
	"strings"

	ulerror "github.com/msto63/unilang/core/error"
	ullog "github.com/msto63/unilang/core/log"
	"github.com/msto63/unilang/unilang/command"
	"github.com/msto63/unilang/unilang/loader"
)

type pendingCommand struct {
	def     *command.CommandDefinition
	routine command.Routine
}

// Builder collects commands and builds a registry. The first error of any
// step is reported by Build.
type Builder struct {
	commands        []pendingCommand
	modules         []loader.Module
	static          Table
	links           map[string]command.Routine
	mode            Mode
	globalPrefix    string
	detectConflicts bool
	conflicts       []loader.ConflictReport
	err             error
}

// NewBuilder creates an empty builder using ModeAuto
func NewBuilder() *Builder {
	return &Builder{
		static: make(Table),
		links:  make(map[string]command.Routine),
		mode:   ModeAuto,
	}
}

// Command adds a dynamic command with its routine
func (b *Builder) Command(def *command.CommandDefinition, routine command.Routine) *Builder {
	b.commands = append(b.commands, pendingCommand{def: def, routine: routine})
	return b
}

// WithStaticCommands adds the entries of a precomputed table to the static
// layer
func (b *Builder) WithStaticCommands(table Table) *Builder {
	for name, def := range table {
		b.static[name] = def
	}
	return b
}

// WithRoutineLinks adds routines addressable by routine link or full name
func (b *Builder) WithRoutineLinks(links map[string]command.Routine) *Builder {
	for name, r := range links {
		b.links[name] = r
	}
	return b
}

// WithMode sets the lookup mode of the built registry
func (b *Builder) WithMode(mode Mode) *Builder {
	b.mode = mode
	return b
}

// WithGlobalPrefix places every manifest and module command below prefix.
// Programmatic commands and the static table keep their names.
func (b *Builder) WithGlobalPrefix(prefix string) *Builder {
	b.globalPrefix = prefix
	return b
}

// WithConflictDetection switches how Build treats a command declared by
// several modules. Enabled, the first declaration wins and every conflict
// is logged and kept for Conflicts. Disabled, the first collision fails
// Build.
func (b *Builder) WithConflictDetection(enabled bool) *Builder {
	b.detectConflicts = enabled
	return b
}

// Conflicts returns the conflicts found by the last Build
func (b *Builder) Conflicts() []loader.ConflictReport {
	return b.conflicts
}

// LoadYAML adds the commands of a YAML manifest
func (b *Builder) LoadYAML(data []byte) *Builder {
	defs, err := loader.ParseYAML(data)
	return b.load("", "", defs, err)
}

// LoadJSON adds the commands of a JSON manifest
func (b *Builder) LoadJSON(data []byte) *Builder {
	defs, err := loader.ParseJSON(data)
	return b.load("", "", defs, err)
}

// LoadTOML adds the commands of a TOML manifest
func (b *Builder) LoadTOML(data []byte) *Builder {
	defs, err := loader.ParseTOML(data)
	return b.load("", "", defs, err)
}

// LoadFile adds the commands of a manifest file as a module named after
// the file
func (b *Builder) LoadFile(path string) *Builder {
	return b.LoadModule("", path, "")
}

// LoadModule adds the commands of a manifest file below prefix. An empty
// name is derived from the file name.
func (b *Builder) LoadModule(name, path, prefix string) *Builder {
	if name == "" {
		name = loader.ModuleName(path)
	}
	defs, err := loader.LoadFile(path)
	return b.load(name, prefix, defs, err)
}

// StaticModule adds compiled-in definitions below prefix. They are
// registered dynamically like manifest commands.
func (b *Builder) StaticModule(name, prefix string, defs []*command.CommandDefinition) *Builder {
	if err := loader.Validate(defs); err != nil {
		return b.load(name, prefix, nil, ulerror.Wrap(err, "invalid static module").WithDetail("module", name))
	}
	return b.load(name, prefix, defs, nil)
}

func (b *Builder) load(name, prefix string, defs []*command.CommandDefinition, err error) *Builder {
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	if name == "" {
		name = "manifest-" + strconv.Itoa(len(b.modules)+1)
	}
	b.modules = append(b.modules, loader.Module{Name: name, Prefix: prefix, Definitions: defs})
	return b
}

// aggregate merges the modules and applies the conflict policy
func (b *Builder) aggregate(logger *ullog.Logger) ([]*command.CommandDefinition, error) {
	agg, err := loader.Aggregate(b.modules, b.globalPrefix)
	if err != nil {
		return nil, err
	}
	b.conflicts = agg.Conflicts

	if !b.detectConflicts {
		if collisions := agg.Collisions(); len(collisions) > 0 {
			c := collisions[0]
			return nil, ulerror.Newf("command '%s' is declared by modules %s", c.Command, strings.Join(c.Modules, ", ")).
				WithCode(ulerror.CodeCommandAlreadyExists).
				WithOperation("registry.Builder.Build").
				WithDetail("command", c.Command).
				WithDetail("conflict", c.Kind.String())
		}
		return agg.Definitions, nil
	}

	for _, c := range agg.Conflicts {
		logger.Warn("Module conflict", ullog.Fields{
			"command":  c.Command,
			"modules":  strings.Join(c.Modules, ","),
			"conflict": c.Kind.String(),
		})
	}
	return agg.Definitions, nil
}

// Build validates everything collected and returns the registry. Static
// table entries form the static layer; programmatic and manifest commands
// are registered dynamically.
func (b *Builder) Build(opts Options) (*Hybrid, error) {
	if b.err != nil {
		return nil, b.err
	}
	opts = opts.withDefaults("unilang-registry-builder")

	staticDefs := make([]*command.CommandDefinition, 0, len(b.static))
	for _, def := range b.static {
		if def != nil {
			staticDefs = append(staticDefs, def)
		}
	}
	staticRoutines, err := loader.Bind(staticDefs, b.links)
	if err != nil {
		return nil, err
	}
	static, err := NewStatic(b.static, staticRoutines, Options{Logger: opts.Logger})
	if err != nil {
		return nil, err
	}

	manifests, err := b.aggregate(opts.Logger)
	if err != nil {
		return nil, err
	}
	manifestRoutines, err := loader.Bind(manifests, b.links)
	if err != nil {
		return nil, err
	}

	h := NewHybrid(static, NewDynamic(Options{Logger: opts.Logger}), b.mode, opts)
	for _, def := range manifests {
		if err := h.Register(def, manifestRoutines[def.FullName()]); err != nil {
			return nil, err
		}
	}
	for _, pc := range b.commands {
		routine := pc.routine
		if routine == nil && pc.def != nil {
			bound, err := loader.Bind([]*command.CommandDefinition{pc.def}, b.links)
			if err != nil {
				return nil, err
			}
			routine = bound[pc.def.FullName()]
		}
		if err := h.Register(pc.def, routine); err != nil {
			return nil, err
		}
	}
	return h, nil
}
