// File: catalog_test.go
// Title: Command Definition Catalog Unit Tests
// Description: Tests for storing, replacing, listing and removing
//              definitions and for transactional imports.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-11
// Modified: 2025-11-12
//
// Change History:
// - 2025-11-11 v0.1.0: Initial test suite
// - 2025-11-12 v0.1.0: Covered kinds with syntax delimiters

package catalog

import (
	"context"
	"path/filepath"
	"testing"

	ulerror "github.com/msto63/unilang/core/error"
	ullog "github.com/msto63/unilang/core/log"
	"github.com/msto63/unilang/unilang/command"
	"github.com/msto63/unilang/unilang/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{Path: filepath.Join(t.TempDir(), "nested", "catalog.db"), Logger: ullog.NewNop()})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func greetDefinition(version string) *command.CommandDefinition {
	return &command.CommandDefinition{
		Name: ".greet", Namespace: ".demo", Version: version,
		Status:      command.StatusExperimental,
		Description: "Greets someone",
		RoutineLink: "echo",
		Aliases:     []string{"hi"},
		Arguments: []command.ArgumentDefinition{
			{
				Name: "name", Kind: types.ListOf(types.Scalar(types.TagString), ';'),
				Attributes:      command.ArgumentAttributes{Default: command.DefaultValue("world")},
				ValidationRules: []command.ValidationRule{command.MinItems(1)},
			},
			{Name: "mode", Kind: types.EnumOf("short", "long"), Attributes: command.ArgumentAttributes{Optional: true}},
		},
	}
}

func TestStore_PutAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	entry, err := s.Put(ctx, greetDefinition("1.0.0"), "demo.yaml")
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if entry.ID == "" || entry.Name != ".demo.greet" || entry.Source != "demo.yaml" {
		t.Errorf("entry = %+v", entry)
	}

	got, err := s.Get(ctx, "demo.greet")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != entry.ID || got.Version != "1.0.0" {
		t.Errorf("Get() = %+v", got)
	}

	def := got.Definition
	if def.FullName() != ".demo.greet" || def.Status != command.StatusExperimental || def.RoutineLink != "echo" {
		t.Errorf("definition = %+v", def)
	}
	if len(def.Arguments) != 2 {
		t.Fatalf("got %d arguments, want 2", len(def.Arguments))
	}
	name := def.Arguments[0]
	if !name.Kind.Equal(types.ListOf(types.Scalar(types.TagString), ';')) {
		t.Errorf("kind = %s", name.Kind)
	}
	if name.Attributes.Default == nil || *name.Attributes.Default != "world" {
		t.Errorf("default = %v", name.Attributes.Default)
	}
	if len(name.ValidationRules) != 1 || name.ValidationRules[0].String() != "min_items:1" {
		t.Errorf("rules = %v", name.ValidationRules)
	}
	if def.Arguments[1].Kind.String() != "Enum(short,long)" {
		t.Errorf("enum kind = %s", def.Arguments[1].Kind)
	}
}

func TestStore_PutKeepsSyntaxDelimiters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	def := greetDefinition("1.0.0")
	pairs := types.MapOf(types.Scalar(types.TagString), types.Scalar(types.TagInteger), ',', ':')
	def.Arguments[0].Kind = pairs
	def.Arguments[0].ValidationRules = nil
	def.Arguments[0].Attributes.Default = nil
	if _, err := s.Put(ctx, def, ""); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, "demo.greet")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !got.Definition.Arguments[0].Kind.Equal(pairs) {
		t.Errorf("kind = %s, want %s", got.Definition.Arguments[0].Kind, pairs)
	}
	if _, err := s.List(ctx); err != nil {
		t.Errorf("List() error = %v", err)
	}
}

func TestStore_PutReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, _ := s.Put(ctx, greetDefinition("1.0.0"), "a.yaml")
	second, err := s.Put(ctx, greetDefinition("1.1.0"), "b.yaml")
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("replacement changed the id: %s != %s", second.ID, first.ID)
	}

	got, _ := s.Get(ctx, ".demo.greet")
	if got.Version != "1.1.0" || got.Source != "b.yaml" {
		t.Errorf("Get() = %+v", got)
	}
	if n, _ := s.Count(ctx); n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestStore_Import(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	defs := []*command.CommandDefinition{
		greetDefinition("1.0.0"),
		{Name: ".ping", Version: "1.0.0"},
	}
	n, err := s.Import(ctx, defs, "manifest.toml")
	if err != nil || n != 2 {
		t.Fatalf("Import() = %d, %v", n, err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].Name != ".demo.greet" || list[1].Name != ".ping" {
		t.Errorf("List() = %+v", list)
	}

	// an invalid definition rolls the whole import back
	bad := []*command.CommandDefinition{
		{Name: ".pong", Version: "1.0.0"},
		{Name: ".broken", Version: "not-a-version"},
	}
	if _, err := s.Import(ctx, bad, "bad.yaml"); !ulerror.HasCode(err, ulerror.CodeInvalidVersion) {
		t.Errorf("Import(bad) error = %v", err)
	}
	if _, err := s.Get(ctx, ".pong"); !ulerror.HasCode(err, ulerror.CodeNotFound) {
		t.Errorf("partial import stored .pong: %v", err)
	}

	defsOut, _ := s.Definitions(ctx)
	if len(defsOut) != 2 {
		t.Errorf("Definitions() returned %d, want 2", len(defsOut))
	}
}

func TestStore_Remove(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Put(ctx, greetDefinition("1.0.0"), ""); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove(ctx, ".demo.greet"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := s.Remove(ctx, ".demo.greet"); !ulerror.HasCode(err, ulerror.CodeNotFound) {
		t.Errorf("second Remove() error = %v", err)
	}
	if _, err := s.Get(ctx, ".demo.greet"); !ulerror.HasCode(err, ulerror.CodeNotFound) {
		t.Errorf("Get() after Remove() error = %v", err)
	}
}

func TestStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	ctx := context.Background()

	s, err := Open(Config{Path: path, Logger: ullog.NewNop()})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Put(ctx, greetDefinition("2.0.0"), ""); err != nil {
		t.Fatal(err)
	}
	s.Close()

	reopened, err := Open(Config{Path: path, Logger: ullog.NewNop()})
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	if got, err := reopened.Get(ctx, ".demo.greet"); err != nil || got.Version != "2.0.0" {
		t.Errorf("Get() after reopen = %+v, %v", got, err)
	}
}

func TestStore_RejectsInvalid(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Put(context.Background(), &command.CommandDefinition{Name: "no dot", Version: "1.0.0"}, "")
	if !ulerror.HasCode(err, ulerror.CodeInvalidCommandName) {
		t.Errorf("Put(invalid) error = %v", err)
	}
}
