// File: loader.go
// Title: Command Manifest Loader
// Description: Reads declarative command manifests in YAML, JSON or TOML,
//              fills manifest defaults, validates every definition and binds
//              routine links to routines.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-07
// Modified: 2025-11-08
//
// Change History:
// - 2025-11-07 v0.1.0: Initial implementation
// - 2025-11-08 v0.1.0: JSON and TOML manifests, routine binding

package loader

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	ulerror "github.com/msto63/unilang/core/error"
	"github.com/msto63/unilang/unilang/command"
	"github.com/msto63/unilang/unilang/validation"
	"gopkg.in/yaml.v3"
)

// DefaultVersion is assigned to manifest commands without a version
const DefaultVersion = "1.0.0"

// Format identifies a manifest format
type Format int

const (
	FormatAuto Format = iota
	FormatYAML
	FormatJSON
	FormatTOML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	default:
		return "auto"
	}
}

// Manifest is the mapping form of a manifest file. YAML and JSON manifests
// may also be a plain list of commands.
type Manifest struct {
	Version  string                       `yaml:"version" json:"version" toml:"version"`
	Commands []*command.CommandDefinition `yaml:"commands" json:"commands" toml:"commands"`
}

// DetectFormat derives the format from the file extension
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatAuto
	}
}

// LoadFile reads, normalizes and validates the manifest at path
func LoadFile(path string) ([]*command.CommandDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := ulerror.CodeConfigError
		if os.IsNotExist(err) {
			code = ulerror.CodeMissingConfig
		}
		return nil, ulerror.Wrap(err, "failed to read command manifest").
			WithCode(code).
			WithOperation("loader.LoadFile").
			WithDetail("path", path)
	}

	defs, err := Parse(data, DetectFormat(path))
	if err != nil {
		return nil, ulerror.Wrap(err, "failed to load command manifest").
			WithOperation("loader.LoadFile").
			WithDetail("path", path)
	}
	return defs, nil
}

// Parse decodes a manifest, fills defaults and validates the result.
// FormatAuto sniffs the content.
func Parse(data []byte, format Format) ([]*command.CommandDefinition, error) {
	if format == FormatAuto {
		format = sniffFormat(data)
	}

	var defs []*command.CommandDefinition
	var err error
	switch format {
	case FormatJSON:
		defs, err = decodeJSON(data)
	case FormatTOML:
		defs, err = decodeTOML(data)
	default:
		format = FormatYAML
		defs, err = decodeYAML(data)
	}
	if err != nil {
		return nil, ulerror.Wrap(err, "failed to parse "+format.String()+" manifest").
			WithCode(ulerror.CodeInvalidDefinition).
			WithOperation("loader.Parse")
	}

	for _, def := range defs {
		Normalize(def)
	}
	if err := Validate(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

// ParseYAML parses a YAML manifest
func ParseYAML(data []byte) ([]*command.CommandDefinition, error) {
	return Parse(data, FormatYAML)
}

// ParseJSON parses a JSON manifest
func ParseJSON(data []byte) ([]*command.CommandDefinition, error) {
	return Parse(data, FormatJSON)
}

// ParseTOML parses a TOML manifest
func ParseTOML(data []byte) ([]*command.CommandDefinition, error) {
	return Parse(data, FormatTOML)
}

// decodeYAML accepts a top-level sequence of commands or a mapping with a
// "commands" key
func decodeYAML(data []byte) ([]*command.CommandDefinition, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}

	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		var defs []*command.CommandDefinition
		if err := doc.Decode(&defs); err != nil {
			return nil, err
		}
		return defs, nil
	case yaml.MappingNode:
		var m Manifest
		if err := doc.Decode(&m); err != nil {
			return nil, err
		}
		return m.Commands, nil
	default:
		return nil, ulerror.Newf("manifest at line %d must be a list or a mapping", doc.Line).
			WithCode(ulerror.CodeInvalidDefinition)
	}
}

func decodeJSON(data []byte) ([]*command.CommandDefinition, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var defs []*command.CommandDefinition
		if err := json.Unmarshal(trimmed, &defs); err != nil {
			return nil, err
		}
		return defs, nil
	}
	var m Manifest
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return nil, err
	}
	return m.Commands, nil
}

func decodeTOML(data []byte) ([]*command.CommandDefinition, error) {
	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, ulerror.Newf("unknown manifest key '%s'", undecoded[0].String()).
			WithCode(ulerror.CodeInvalidDefinition)
	}
	return m.Commands, nil
}

// Normalize fills manifest defaults: leading dots on names, namespaces and
// aliases, status stable and version 1.0.0
func Normalize(def *command.CommandDefinition) {
	if def == nil {
		return
	}
	def.Name = validation.NormalizeName(def.Name)
	if def.Namespace != validation.Delimiter {
		def.Namespace = validation.NormalizeName(def.Namespace)
	}
	for i, alias := range def.Aliases {
		def.Aliases[i] = strings.TrimSpace(alias)
	}
	if def.Status == "" {
		def.Status = command.StatusStable
	}
	if strings.TrimSpace(def.Version) == "" {
		def.Version = DefaultVersion
	}
}

// Validate checks every definition and rejects duplicate full names
func Validate(defs []*command.CommandDefinition) error {
	seen := make(map[string]int, len(defs))
	for i, def := range defs {
		if err := validation.ValidateDefinition(def); err != nil {
			return ulerror.Wrap(err, "invalid command in manifest").
				WithOperation("loader.Validate").
				WithDetail("index", i)
		}
		name := def.FullName()
		if first, dup := seen[name]; dup {
			return ulerror.Newf("command '%s' is declared twice (entries %d and %d)", name, first, i).
				WithCode(ulerror.CodeCommandAlreadyExists).
				WithOperation("loader.Validate").
				WithDetail("command", name)
		}
		seen[name] = i
	}
	return nil
}

// Index keys definitions by full name, the shape static tables use
func Index(defs []*command.CommandDefinition) map[string]*command.CommandDefinition {
	table := make(map[string]*command.CommandDefinition, len(defs))
	for _, def := range defs {
		table[def.FullName()] = def
	}
	return table
}

// Bind resolves the routine of every definition. A definition with a
// routine link must find it in links; a definition without one picks up a
// routine registered under its full name, if any. The result is keyed by
// full name.
func Bind(defs []*command.CommandDefinition, links map[string]command.Routine) (map[string]command.Routine, error) {
	routines := make(map[string]command.Routine, len(defs))
	for _, def := range defs {
		name := def.FullName()
		if def.RoutineLink != "" {
			r, ok := links[def.RoutineLink]
			if !ok || r == nil {
				return nil, ulerror.Newf("routine link '%s' of command '%s' is not registered", def.RoutineLink, name).
					WithCode(ulerror.CodeRoutineNotFound).
					WithOperation("loader.Bind").
					WithDetail("command", name).
					WithDetail("routine_link", def.RoutineLink)
			}
			routines[name] = r
			continue
		}
		if r, ok := links[name]; ok && r != nil {
			routines[name] = r
		}
	}
	return routines, nil
}

func sniffFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		if json.Valid(trimmed) {
			return FormatJSON
		}
	}
	if bytes.Contains(data, []byte("[[commands]]")) {
		return FormatTOML
	}
	return FormatYAML
}
