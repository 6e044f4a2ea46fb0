// File: registry.go
// Title: Builtin Registry Assembly
// Description: Builds the registry used by the CLI and the REPL from the
//              generated static table, the builtin routines and the command
//              manifests named in the settings.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-10
// Modified: 2025-11-12
//
// Change History:
// - 2025-11-10 v0.1.0: Initial implementation
// - 2025-11-11 v0.1.0: Extra definitions from the catalog
// - 2025-11-12 v0.1.0: Prefixed manifest modules from the settings

package builtin

//go:generate go run github.com/msto63/unilang/cmd/unilang generate --manifest commands.yaml --output static_commands.go --package builtin

import (
	"errors"
	"io/fs"
	"os"

	ulconfig "github.com/msto63/unilang/core/config"
	ullog "github.com/msto63/unilang/core/log"
	"github.com/msto63/unilang/unilang/command"
	"github.com/msto63/unilang/unilang/registry"
)

// Options configures NewRegistry
type Options struct {
	Settings *ulconfig.Settings
	Logger   *ullog.Logger
	// Definitions are registered dynamically next to the manifests, for
	// example commands read from the catalog
	Definitions []*command.CommandDefinition
}

// NewRegistry assembles the registry: StaticCommands form the static layer,
// the commands manifest, the extra manifests, the enabled modules and
// Definitions the dynamic one. The global prefix applies to manifest and
// module commands. A missing commands manifest at the default path is skipped; every
// other missing manifest is an error. In static mode only StaticCommands
// are served.
func NewRegistry(opts Options) (*registry.Hybrid, error) {
	s := opts.Settings
	if s == nil {
		s = ulconfig.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = ullog.GetDefault()
	}
	logger = logger.WithField("component", "unilang-builtin")

	mode, err := registry.ParseMode(s.Registry.Mode)
	if err != nil {
		return nil, err
	}

	b := registry.NewBuilder().
		WithStaticCommands(StaticCommands).
		WithRoutineLinks(Routines()).
		WithMode(mode)

	if mode == registry.ModeStaticOnly {
		logger.Debug("Static mode, manifests are not loaded", ullog.Fields{"manifest": s.Commands.Path})
	} else {
		if path := s.Commands.Path; path != "" {
			if path == ulconfig.DefaultCommandsPath && !exists(path) {
				logger.Debug("Default commands manifest not found", ullog.Fields{"path": path})
			} else {
				b.LoadFile(path)
			}
		}
		for _, path := range s.Commands.Extra {
			b.LoadFile(path)
		}
		for _, m := range s.Commands.EnabledModules() {
			b.LoadModule(m.Name, m.Path, m.Prefix)
		}
		b.WithGlobalPrefix(s.Commands.Prefix).WithConflictDetection(s.Commands.DetectConflicts)
		for _, def := range opts.Definitions {
			b.Command(def, nil)
		}
	}

	h, err := b.Build(registry.Options{Logger: logger, CacheSize: s.Registry.CacheSize})
	if err != nil {
		return nil, err
	}
	logger.Debug("Registry assembled", ullog.Fields{
		"mode":      mode.String(),
		"static":    h.Static().Len(),
		"dynamic":   h.Dynamic().Len(),
		"manifest":  s.Commands.Path,
		"conflicts": len(b.Conflicts()),
	})
	return h, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
