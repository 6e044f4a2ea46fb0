// File: registry_test.go
// Title: Dynamic Registry Unit Tests
// Description: Tests for runtime registration, validation wiring, alias
//              resolution, help synthesis, removal and concurrent access.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-06
// Modified: 2025-11-07
//
// Change History:
// - 2025-11-06 v0.1.0: Initial test suite

package registry

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	ulerror "github.com/msto63/unilang/core/error"
	ullog "github.com/msto63/unilang/core/log"
	"github.com/msto63/unilang/unilang/command"
	"github.com/msto63/unilang/unilang/types"
)

func addDefinition() *command.CommandDefinition {
	return &command.CommandDefinition{
		Name:        ".add",
		Namespace:   ".math",
		Description: "Adds two numbers",
		Hint:        "a + b",
		Version:     "1.0.0",
		Aliases:     []string{"sum", "plus"},
		Examples:    []string{".math.add 1 2"},
		Arguments: []command.ArgumentDefinition{
			{Name: "a", Kind: types.Scalar(types.TagInteger), Description: "First operand"},
			{Name: "b", Kind: types.Scalar(types.TagInteger), Description: "Second operand"},
		},
	}
}

func simpleDefinition(name string) *command.CommandDefinition {
	return &command.CommandDefinition{Name: name, Description: "Command " + name, Version: "1.0.0"}
}

func textRoutine(text string) command.Routine {
	return func(command.VerifiedCommand, *command.ExecutionContext) (command.OutputData, error) {
		return command.Text(text), nil
	}
}

func newTestDynamic(t *testing.T) *Dynamic {
	t.Helper()
	return NewDynamic(Options{Logger: ullog.NewNop()})
}

func TestDynamic_RegisterRejectsInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name string
		def  *command.CommandDefinition
		code ulerror.Code
	}{
		{"nil definition", nil, ulerror.CodeInvalidDefinition},
		{"empty name", &command.CommandDefinition{Version: "1.0.0"}, ulerror.CodeInvalidCommandName},
		{"missing leading dot", &command.CommandDefinition{Name: "add", Version: "1.0.0"}, ulerror.CodeInvalidCommandName},
		{"whitespace in name", &command.CommandDefinition{Name: ".a b", Version: "1.0.0"}, ulerror.CodeInvalidCommandName},
		{"empty version", &command.CommandDefinition{Name: ".add"}, ulerror.CodeInvalidVersion},
		{"unparseable version", &command.CommandDefinition{Name: ".add", Version: "one"}, ulerror.CodeInvalidVersion},
		{"invalid namespace", &command.CommandDefinition{Name: ".add", Namespace: "math", Version: "1"}, ulerror.CodeInvalidNamespace},
		{
			"multiple argument with scalar rule",
			&command.CommandDefinition{Name: ".sum", Version: "1.0.0", Arguments: []command.ArgumentDefinition{{
				Name:            "values",
				Kind:            types.ListOf(types.Scalar(types.TagInteger), 0),
				ValidationRules: []command.ValidationRule{command.Min(1)},
			}}},
			ulerror.CodeInvalidDefinition,
		},
		{
			"min_items on scalar",
			&command.CommandDefinition{Name: ".sum", Version: "1.0.0", Arguments: []command.ArgumentDefinition{{
				Name:            "value",
				Kind:            types.Scalar(types.TagInteger),
				ValidationRules: []command.ValidationRule{command.MinItems(2)},
			}}},
			ulerror.CodeInvalidDefinition,
		},
		{
			"default not coercible",
			&command.CommandDefinition{Name: ".sum", Version: "1.0.0", Arguments: []command.ArgumentDefinition{{
				Name:       "value",
				Kind:       types.Scalar(types.TagInteger),
				Attributes: command.ArgumentAttributes{Default: command.DefaultValue("ten")},
			}}},
			ulerror.CodeInvalidDefinition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestDynamic(t)
			err := r.Register(tt.def, nil)
			if err == nil {
				t.Fatal("Register() expected error")
			}
			if !ulerror.HasCode(err, tt.code) {
				t.Errorf("Register() code = %v, want %v (%v)", ulerror.GetCode(err), tt.code, err)
			}
			if r.Len() != 0 {
				t.Errorf("Len() = %d after rejected registration", r.Len())
			}
		})
	}
}

func TestDynamic_RegisterConflicts(t *testing.T) {
	tests := []struct {
		name string
		def  *command.CommandDefinition
		code ulerror.Code
	}{
		{"duplicate name", addDefinition(), ulerror.CodeCommandAlreadyExists},
		{
			"alias used by another command",
			&command.CommandDefinition{Name: ".total", Version: "1.0.0", Aliases: []string{"sum"}},
			ulerror.CodeAliasConflict,
		},
		{
			"name equals an existing alias",
			simpleDefinition(".plus"),
			ulerror.CodeAliasConflict,
		},
		{
			"alias equals an existing command",
			&command.CommandDefinition{Name: ".other", Version: "1.0.0", Aliases: []string{"math.add"}},
			ulerror.CodeAliasConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestDynamic(t)
			if err := r.Register(addDefinition(), textRoutine("3")); err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			err := r.Register(tt.def, nil)
			if !ulerror.HasCode(err, tt.code) {
				t.Errorf("Register() error = %v, want code %v", err, tt.code)
			}
			if r.Len() != 1 {
				t.Errorf("Len() = %d, want 1", r.Len())
			}
		})
	}
}

func TestDynamic_AliasesResolveToSameDefinition(t *testing.T) {
	r := newTestDynamic(t)
	if err := r.Register(addDefinition(), textRoutine("3")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	canonical, ok := r.Command(".math.add")
	if !ok {
		t.Fatal("canonical lookup failed")
	}
	for _, name := range []string{"math.add", "sum", ".sum", "plus", " .plus "} {
		got, ok := r.Command(name)
		if !ok {
			t.Errorf("Command(%q) not found", name)
			continue
		}
		if got != canonical {
			t.Errorf("Command(%q) returned a different definition", name)
		}
	}

	if _, ok := r.Routine("sum"); !ok {
		t.Error("Routine() should resolve aliases")
	}
}

func TestDynamic_HelpEntries(t *testing.T) {
	r := newTestDynamic(t)
	if err := r.Register(addDefinition(), textRoutine("3")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	help, ok := r.Command(".math.add.help")
	if !ok {
		t.Fatal(".math.add.help should resolve")
	}
	if !help.IsHelp() || help.FullName() != ".math.add.help" {
		t.Errorf("help definition = %+v", help)
	}
	if _, ok := r.Command(".math.add.help.help"); ok {
		t.Error(".math.add.help.help must not resolve")
	}

	viaAlias, ok := r.Command("sum.help")
	if !ok || viaAlias != help {
		t.Error("alias help should resolve to the same help entry")
	}
	viaGetter, ok := r.GetHelpForCommand("plus")
	if !ok || viaGetter != help {
		t.Error("GetHelpForCommand() should resolve aliases")
	}

	routine, ok := r.Routine(".math.add.help")
	if !ok {
		t.Fatal("help routine missing")
	}
	out, err := routine(command.VerifiedCommand{Definition: help}, command.NewExecutionContext())
	if err != nil {
		t.Fatalf("help routine error = %v", err)
	}
	if out.Format != HelpFormat || !strings.Contains(out.Content, "Command: .math.add\n") {
		t.Errorf("help output = %+v", out)
	}

	for _, def := range r.Commands() {
		if def.IsHelp() {
			t.Errorf("Commands() lists synthesized help %s", def.FullName())
		}
	}
}

func TestDynamic_UserHelpKeepsPriority(t *testing.T) {
	r := newTestDynamic(t)
	custom := simpleDefinition(".x.help")
	custom.Description = "custom help"

	if err := r.Register(simpleDefinition(".x"), nil); err != nil {
		t.Fatalf("Register(.x) error = %v", err)
	}
	if err := r.Register(custom, textRoutine("custom")); err != nil {
		t.Fatalf("Register(.x.help) error = %v", err)
	}
	if got, _ := r.Command(".x.help"); got.Description != "custom help" {
		t.Errorf("Description = %q, want user help", got.Description)
	}
	if _, ok := r.Command(".x.help.help"); ok {
		t.Error("user help must not get a help entry")
	}

	if !r.Unregister(".x.help") {
		t.Fatal("Unregister(.x.help) = false")
	}
	got, ok := r.Command(".x.help")
	if !ok || got.Description != "Show help for .x" {
		t.Errorf("synthesized help not restored: %+v", got)
	}

	// user help registered before its command
	r.Clear()
	if err := r.Register(custom, nil); err != nil {
		t.Fatalf("Register(.x.help) error = %v", err)
	}
	if err := r.Register(simpleDefinition(".x"), nil); err != nil {
		t.Fatalf("Register(.x) error = %v", err)
	}
	if got, _ := r.Command(".x.help"); got.Description != "custom help" {
		t.Errorf("Description = %q, want user help", got.Description)
	}
}

func TestDynamic_StoresCopy(t *testing.T) {
	r := newTestDynamic(t)
	def := addDefinition()
	if err := r.Register(def, nil); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	def.Description = "changed"
	def.Arguments[0].Name = "changed"

	got, _ := r.Command(".math.add")
	if got.Description != "Adds two numbers" || got.Arguments[0].Name != "a" {
		t.Error("registry shares state with the caller's definition")
	}
}

func TestDynamic_UnregisterAndClear(t *testing.T) {
	r := newTestDynamic(t)
	if err := r.Register(addDefinition(), nil); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(simpleDefinition(".version"), nil); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if r.Unregister(".math.add.help") {
		t.Error("synthesized help must not be removable")
	}
	if !r.Unregister("sum") {
		t.Fatal("Unregister by alias = false")
	}
	for _, name := range []string{".math.add", "sum", "plus", ".math.add.help"} {
		if _, ok := r.Command(name); ok {
			t.Errorf("%s still resolves after Unregister", name)
		}
	}
	if r.Unregister(".math.add") {
		t.Error("second Unregister should report false")
	}

	// the alias is free again
	if err := r.Register(&command.CommandDefinition{Name: ".total", Version: "1", Aliases: []string{"sum"}}, nil); err != nil {
		t.Errorf("Register() after Unregister error = %v", err)
	}

	r.Clear()
	if r.Len() != 0 || len(r.Commands()) != 0 {
		t.Error("Clear() left commands behind")
	}
	if _, ok := r.Command(".version.help"); ok {
		t.Error("Clear() left help entries behind")
	}
}

func TestDynamic_CommandsSorted(t *testing.T) {
	r := newTestDynamic(t)
	for _, name := range []string{".zeta", ".alpha", ".mid"} {
		if err := r.Register(simpleDefinition(name), nil); err != nil {
			t.Fatalf("Register(%s) error = %v", name, err)
		}
	}

	var names []string
	for _, def := range r.Commands() {
		names = append(names, def.FullName())
	}
	if strings.Join(names, " ") != ".alpha .mid .zeta" {
		t.Errorf("Commands() = %v", names)
	}
}

func TestDynamic_ConcurrentAccess(t *testing.T) {
	r := newTestDynamic(t)
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_ = r.Register(simpleDefinition(fmt.Sprintf(".cmd%d_%d", n, j)), nil)
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				r.Command(".cmd0_0")
				r.Commands()
			}
		}()
	}
	wg.Wait()

	if r.Len() != 200 {
		t.Errorf("Len() = %d, want 200", r.Len())
	}
}

func TestOptions_MetricsInjection(t *testing.T) {
	m := NewMetrics()
	a := NewDynamic(Options{Logger: ullog.NewNop(), Metrics: m})
	b := NewDynamic(Options{Logger: ullog.NewNop()})

	if a.Metrics() != m {
		t.Error("injected metrics not used")
	}
	if b.Metrics() == nil || b.Metrics() == m {
		t.Error("registries without metrics should get their own instance")
	}
}

func TestMetricsSnapshot_Rates(t *testing.T) {
	s := MetricsSnapshot{TotalLookups: 4, StaticLookups: 3, DynamicLookups: 1, CacheHits: 1, CacheMisses: 3}
	if s.CacheHitRate() != 0.25 {
		t.Errorf("CacheHitRate() = %v", s.CacheHitRate())
	}
	if s.StaticRatio() != 0.75 {
		t.Errorf("StaticRatio() = %v", s.StaticRatio())
	}
	if (MetricsSnapshot{}).CacheHitRate() != 0 {
		t.Error("empty snapshot should have zero hit rate")
	}
}

func BenchmarkDynamic_Command(b *testing.B) {
	r := NewDynamic(Options{Logger: ullog.NewNop()})
	for i := 0; i < 100; i++ {
		_ = r.Register(simpleDefinition(fmt.Sprintf(".cmd%d", i)), nil)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Command(".cmd50")
	}
}
