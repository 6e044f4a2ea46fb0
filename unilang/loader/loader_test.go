// File: loader_test.go
// Title: Command Manifest Loader Unit Tests
// Description: Tests for decoding YAML, JSON and TOML manifests, manifest
//              defaults, validation failures and routine binding.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-07
// Modified: 2025-11-08
//
// Change History:
// - 2025-11-07 v0.1.0: Initial test suite

package loader

import (
	"os"
	"path/filepath"
	"testing"

	ulerror "github.com/msto63/unilang/core/error"
	"github.com/msto63/unilang/unilang/command"
	"github.com/msto63/unilang/unilang/types"
)

const yamlList = `
- name: add
  namespace: math
  description: Adds two numbers
  aliases: [sum, " plus "]
  routine_link: math_add
  arguments:
    - name: a
      kind: Integer
    - name: b
      kind: Integer
      validation_rules: ["min:0"]
- name: .echo
  version: "2.1.0"
  status: experimental
  arguments:
    - name: words
      kind: List(String)
      attributes:
        multiple: true
        default: "none"
`

const yamlMapping = `
version: "1"
commands:
  - name: .ping
    description: Replies with pong
`

const jsonArray = `[
  {"name": ".ping", "description": "Replies with pong"},
  {"name": ".echo", "arguments": [{"name": "text", "kind": "String"}]}
]`

const jsonObject = `{"version": "1", "commands": [{"name": ".ping"}]}`

const tomlManifest = `
version = "1"

[[commands]]
name = ".ping"
description = "Replies with pong"

[[commands]]
name = "add"
namespace = ".math"
aliases = ["sum"]

  [[commands.arguments]]
  name = "a"
  kind = "Integer"
  validation_rules = ["max:100"]
`

func TestParse_YAMLList(t *testing.T) {
	defs, err := ParseYAML([]byte(yamlList))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("got %d commands, want 2", len(defs))
	}

	add := defs[0]
	if add.FullName() != ".math.add" {
		t.Errorf("FullName() = %q", add.FullName())
	}
	if add.Version != DefaultVersion || add.Status != command.StatusStable {
		t.Errorf("defaults not applied: version %q status %q", add.Version, add.Status)
	}
	if add.Aliases[1] != "plus" {
		t.Errorf("alias not trimmed: %q", add.Aliases[1])
	}
	if add.RoutineLink != "math_add" {
		t.Errorf("RoutineLink = %q", add.RoutineLink)
	}
	if !add.Arguments[0].Kind.Equal(types.Scalar(types.TagInteger)) {
		t.Errorf("argument kind = %v", add.Arguments[0].Kind)
	}
	if rules := add.Arguments[1].ValidationRules; len(rules) != 1 || rules[0] != command.Min(0) {
		t.Errorf("validation rules = %v", rules)
	}

	echo := defs[1]
	if echo.Version != "2.1.0" || echo.Status != command.StatusExperimental {
		t.Errorf("explicit values overwritten: version %q status %q", echo.Version, echo.Status)
	}
	words := echo.Arguments[0]
	if !words.IsMultiple() || words.Attributes.Default == nil || *words.Attributes.Default != "none" {
		t.Errorf("attributes = %+v", words.Attributes)
	}
	if words.Kind.Tag != types.TagList {
		t.Errorf("kind = %v, want a list", words.Kind)
	}
}

func TestParse_Formats(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		want   []string
	}{
		{"yaml mapping", yamlMapping, FormatYAML, []string{".ping"}},
		{"json array", jsonArray, FormatJSON, []string{".ping", ".echo"}},
		{"json object", jsonObject, FormatJSON, []string{".ping"}},
		{"toml", tomlManifest, FormatTOML, []string{".ping", ".math.add"}},
		{"sniff json", jsonArray, FormatAuto, []string{".ping", ".echo"}},
		{"sniff toml", tomlManifest, FormatAuto, []string{".ping", ".math.add"}},
		{"sniff yaml", yamlMapping, FormatAuto, []string{".ping"}},
		{"empty yaml", "", FormatYAML, nil},
		{"empty json", "  ", FormatJSON, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs, err := Parse([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(defs) != len(tt.want) {
				t.Fatalf("got %d commands, want %d", len(defs), len(tt.want))
			}
			for i, name := range tt.want {
				if defs[i].FullName() != name {
					t.Errorf("command %d = %q, want %q", i, defs[i].FullName(), name)
				}
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		code   ulerror.Code
	}{
		{"yaml syntax", "- name: [unclosed", FormatYAML, ulerror.CodeInvalidDefinition},
		{"yaml scalar", "just text", FormatYAML, ulerror.CodeInvalidDefinition},
		{"unknown kind", "- name: .x\n  arguments:\n    - name: a\n      kind: Quaternion\n", FormatYAML, ulerror.CodeInvalidDefinition},
		{"unknown rule", "- name: .x\n  arguments:\n    - name: a\n      kind: String\n      validation_rules: [\"shiny:1\"]\n", FormatYAML, ulerror.CodeInvalidDefinition},
		{"json syntax", `[{"name": }]`, FormatJSON, ulerror.CodeInvalidDefinition},
		{"toml unknown key", "[[commands]]\nname = \".x\"\ncolour = \"red\"\n", FormatTOML, ulerror.CodeInvalidDefinition},
		{"invalid name", "- name: .bad name\n", FormatYAML, ulerror.CodeInvalidCommandName},
		{"duplicate", "- name: .x\n- name: x\n", FormatYAML, ulerror.CodeCommandAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			if !ulerror.HasCode(err, tt.code) {
				t.Errorf("Parse() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"commands.yaml": FormatYAML,
		"commands.YML":  FormatYAML,
		"a/b.json":      FormatJSON,
		"x.toml":        FormatTOML,
		"commands":      FormatAuto,
	}
	for path, want := range tests {
		if got := DetectFormat(path); got != want {
			t.Errorf("DetectFormat(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "commands.toml")
	if err := os.WriteFile(path, []byte(tomlManifest), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	defs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(defs) != 2 {
		t.Errorf("got %d commands, want 2", len(defs))
	}

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	if !ulerror.HasCode(err, ulerror.CodeMissingConfig) {
		t.Errorf("missing file: error = %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("- name: .x\n- name: .x\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := LoadFile(bad); !ulerror.HasCode(err, ulerror.CodeCommandAlreadyExists) {
		t.Errorf("invalid manifest: error = %v", err)
	}
}

func TestNormalize(t *testing.T) {
	def := &command.CommandDefinition{Name: " greet ", Namespace: "."}
	Normalize(def)
	if def.Name != ".greet" || def.Namespace != "." {
		t.Errorf("Normalize() = name %q namespace %q", def.Name, def.Namespace)
	}
	Normalize(nil)
}

func TestIndex(t *testing.T) {
	defs, err := ParseTOML([]byte(tomlManifest))
	if err != nil {
		t.Fatalf("ParseTOML() error = %v", err)
	}
	table := Index(defs)
	if table[".math.add"] != defs[1] || table[".ping"] != defs[0] {
		t.Errorf("Index() = %v", table)
	}
}

func TestBind(t *testing.T) {
	routine := func(command.VerifiedCommand, *command.ExecutionContext) (command.OutputData, error) {
		return command.Text("ok"), nil
	}
	linked := &command.CommandDefinition{Name: ".add", Namespace: ".math", RoutineLink: "math_add"}
	byName := &command.CommandDefinition{Name: ".ping"}
	unbound := &command.CommandDefinition{Name: ".idle"}

	routines, err := Bind([]*command.CommandDefinition{linked, byName, unbound},
		map[string]command.Routine{"math_add": routine, ".ping": routine})
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if routines[".math.add"] == nil || routines[".ping"] == nil {
		t.Errorf("Bind() = %v", routines)
	}
	if _, ok := routines[".idle"]; ok {
		t.Error("a command without a routine must stay unbound")
	}

	missing := &command.CommandDefinition{Name: ".gone", RoutineLink: "nowhere"}
	_, err = Bind([]*command.CommandDefinition{missing}, nil)
	if !ulerror.HasCode(err, ulerror.CodeRoutineNotFound) {
		t.Errorf("missing link: error = %v", err)
	}
}
