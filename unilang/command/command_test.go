// File: command_test.go
// Title: Command Model Tests
// Description: Tests for definitions, validation rules and the execution
//              context.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-04
// Modified: 2025-11-04
//
// Change History:
// - 2025-11-04 v0.1.0: Initial implementation

package command

import (
	"testing"

	"github.com/msto63/unilang/unilang/types"
)

func sampleDefinition() *CommandDefinition {
	return &CommandDefinition{
		Name:      ".add",
		Namespace: ".math",
		Version:   "1.0.0",
		Aliases:   []string{"sum"},
		Arguments: []ArgumentDefinition{
			{Name: "a", Kind: types.Scalar(types.TagInteger), Aliases: []string{"first"}},
			{
				Name:            "b",
				Kind:            types.Scalar(types.TagInteger),
				Attributes:      ArgumentAttributes{Default: DefaultValue("0")},
				ValidationRules: []ValidationRule{Min(0)},
			},
		},
	}
}

func TestCommandDefinition_FullName(t *testing.T) {
	tests := []struct {
		name, namespace, want string
	}{
		{".add", ".math", ".math.add"},
		{".ping", "", ".ping"},
		{".ping", ".", ".ping"},
	}

	for _, tt := range tests {
		d := &CommandDefinition{Name: tt.name, Namespace: tt.namespace}
		if got := d.FullName(); got != tt.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tt.namespace, tt.name, got, tt.want)
		}
	}
}

func TestCommandDefinition_Argument(t *testing.T) {
	d := sampleDefinition()

	if arg, ok := d.Argument("first"); !ok || arg.Name != "a" {
		t.Errorf("Argument(first) = %v, %v", arg, ok)
	}
	if _, ok := d.Argument("c"); ok {
		t.Error("Argument(c) should not resolve")
	}
	if !d.Arguments[0].Required() || d.Arguments[1].Required() {
		t.Error("Required() mismatch")
	}
}

func TestCommandDefinition_CloneIsDeep(t *testing.T) {
	d := sampleDefinition()
	c := d.Clone()

	c.Aliases[0] = "changed"
	c.Arguments[0].Aliases[0] = "changed"
	*c.Arguments[1].Attributes.Default = "9"

	if d.Aliases[0] != "sum" || d.Arguments[0].Aliases[0] != "first" || *d.Arguments[1].Attributes.Default != "0" {
		t.Error("Clone() shares state with the original")
	}
}

func TestCommandDefinition_IsHelp(t *testing.T) {
	if (&CommandDefinition{Name: ".add"}).IsHelp() {
		t.Error(".add is not a help entry")
	}
	if !(&CommandDefinition{Name: ".add.help"}).IsHelp() {
		t.Error(".add.help is a help entry")
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"", StatusStable, false},
		{"Stable", StatusStable, false},
		{"experimental", StatusExperimental, false},
		{"DEPRECATED", StatusDeprecated, false},
		{"retired", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.input)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, %v", tt.input, got, err)
		}
	}
}

func TestParseRule(t *testing.T) {
	tests := []struct {
		input   string
		want    ValidationRule
		wantErr bool
	}{
		{"min:1", Min(1), false},
		{"max:2.5", Max(2.5), false},
		{"min_length:3", MinLength(3), false},
		{"MAX_LENGTH:10", MaxLength(10), false},
		{"pattern:^[a-z]+:[0-9]$", Pattern("^[a-z]+:[0-9]$"), false},
		{"min_items:2", MinItems(2), false},
		{"min_items:-1", ValidationRule{}, true},
		{"min:abc", ValidationRule{}, true},
		{"pattern:(", ValidationRule{}, true},
		{"between:1", ValidationRule{}, true},
		{"min", ValidationRule{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRule(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRule() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRule() = %+v, want %+v", got, tt.want)
			}
			if !tt.wantErr {
				again, err := ParseRule(got.String())
				if err != nil || again != got {
					t.Errorf("round trip of %q gave %+v, %v", got.String(), again, err)
				}
			}
		})
	}
}

func TestValidationRule_Check(t *testing.T) {
	list := func(n int) types.Value {
		items := make([]types.Value, n)
		for i := range items {
			items[i] = types.IntValue(int64(i))
		}
		return types.ListValue(items...)
	}

	tests := []struct {
		name  string
		rule  ValidationRule
		value types.Value
		want  bool
	}{
		{"min ok", Min(1), types.IntValue(1), true},
		{"min fail", Min(1), types.IntValue(0), false},
		{"max float", Max(1.5), types.FloatValue(1.4), true},
		{"min on string", Min(1), types.StringValue("5"), false},
		{"min_length string", MinLength(3), types.StringValue("abc"), true},
		{"min_length string short", MinLength(3), types.StringValue("ab"), false},
		{"max_length list", MaxLength(2), list(3), false},
		{"pattern ok", Pattern("^a+$"), types.StringValue("aaa"), true},
		{"pattern fail", Pattern("^a+$"), types.StringValue("ab"), false},
		{"min_items ok", MinItems(2), list(2), true},
		{"min_items fail", MinItems(2), list(1), false},
		{"min_items on scalar", MinItems(1), types.IntValue(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Check(tt.value); got != tt.want {
				t.Errorf("Check() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidationRule_Classification(t *testing.T) {
	if !Min(0).ScalarOnly() || !Pattern("x").ScalarOnly() || MinItems(1).ScalarOnly() {
		t.Error("ScalarOnly() mismatch")
	}
	if !MinItems(1).AppliesTo(types.ListOf(types.Scalar(types.TagInteger), 0)) {
		t.Error("min_items should apply to lists")
	}
	if MinItems(1).AppliesTo(types.Scalar(types.TagInteger)) {
		t.Error("min_items should not apply to integers")
	}
	if Min(0).AppliesTo(types.Scalar(types.TagString)) {
		t.Error("min should not apply to strings")
	}
}

func TestExecutionContext(t *testing.T) {
	type counter struct{ n int }

	ctx := NewExecutionContext()
	if ctx.RequestID == "" {
		t.Error("RequestID should be set")
	}

	if _, ok := Get[*counter](ctx); ok {
		t.Error("Get() on empty context should fail")
	}

	c := &counter{}
	Set(ctx, c)
	Set(ctx, "label")

	got, ok := Get[*counter](ctx)
	if !ok || got != c {
		t.Fatalf("Get() = %v, %v", got, ok)
	}
	got.n++
	again, _ := Get[*counter](ctx)
	if again.n != 1 {
		t.Errorf("n = %d, want 1", again.n)
	}

	if s, _ := Get[string](ctx); s != "label" {
		t.Errorf("Get[string]() = %q", s)
	}
	if ctx.Len() != 2 {
		t.Errorf("Len() = %d", ctx.Len())
	}
	if !Delete[string](ctx) || Delete[string](ctx) {
		t.Error("Delete() should succeed once")
	}
}

func TestErrorData(t *testing.T) {
	e := NewErrorData("UNILANG_EXECUTION_ERROR", "division by zero")
	if e.Error() != "UNILANG_EXECUTION_ERROR: division by zero" {
		t.Errorf("Error() = %q", e.Error())
	}
}
