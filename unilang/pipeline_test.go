// File: pipeline_test.go
// Title: Pipeline Unit Tests
// Description: End-to-end tests for processing, batch and sequence modes,
//              help requests and validation without execution.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-09
// Modified: 2025-11-10
//
// Change History:
// - 2025-11-09 v0.1.0: Initial test suite

package unilang

import (
	"strconv"
	"strings"
	"testing"

	ulconfig "github.com/msto63/unilang/core/config"
	ulerror "github.com/msto63/unilang/core/error"
	ullog "github.com/msto63/unilang/core/log"
	"github.com/msto63/unilang/unilang/command"
	"github.com/msto63/unilang/unilang/registry"
	"github.com/msto63/unilang/unilang/types"
)

type tally struct{ runs int }

func testRegistry(t *testing.T) *registry.Dynamic {
	t.Helper()
	reg := registry.NewDynamic(registry.Options{Logger: ullog.NewNop()})

	add := &command.CommandDefinition{
		Name: ".add", Namespace: ".math", Version: "1.0.0",
		Description: "Adds two numbers",
		Aliases:     []string{"sum", "plus"},
		Arguments: []command.ArgumentDefinition{
			{Name: "a", Kind: types.Scalar(types.TagInteger)},
			{Name: "b", Kind: types.Scalar(types.TagInteger)},
		},
	}
	mustRegister(t, reg, add, func(cmd command.VerifiedCommand, ctx *command.ExecutionContext) (command.OutputData, error) {
		av, _ := cmd.Arg("a")
		bv, _ := cmd.Arg("b")
		a, _ := av.Int()
		b, _ := bv.Int()
		return command.Text(strconv.FormatInt(a+b, 10)), nil
	})

	count := &command.CommandDefinition{Name: ".count", Version: "1.0.0", Description: "Counts runs"}
	mustRegister(t, reg, count, func(cmd command.VerifiedCommand, ctx *command.ExecutionContext) (command.OutputData, error) {
		c, ok := command.Get[*tally](ctx)
		if !ok {
			c = &tally{}
			command.Set(ctx, c)
		}
		c.runs++
		return command.Text(strconv.Itoa(c.runs)), nil
	})

	fail := &command.CommandDefinition{Name: ".fail", Version: "1.0.0"}
	mustRegister(t, reg, fail, func(command.VerifiedCommand, *command.ExecutionContext) (command.OutputData, error) {
		return command.OutputData{}, command.NewErrorData("DOMAIN_FAILURE", "nothing to do")
	})
	return reg
}

func mustRegister(t *testing.T, reg *registry.Dynamic, def *command.CommandDefinition, routine command.Routine) {
	t.Helper()
	if err := reg.Register(def, routine); err != nil {
		t.Fatalf("Register(%s) error = %v", def.FullName(), err)
	}
}

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := NewPipeline(testRegistry(t), Options{Logger: ullog.NewNop()})
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	return p
}

func TestNewPipeline(t *testing.T) {
	if _, err := NewPipeline(nil); err == nil {
		t.Error("NewPipeline(nil) should fail")
	}

	opts := Options{Logger: ullog.NewNop()}
	opts.Parser.MaxInputLength = -1
	_, err := NewPipeline(testRegistry(t), opts)
	if !ulerror.HasCode(err, ulerror.CodeInvalidConfig) {
		t.Errorf("negative input length error = %v, want %s", err, ulerror.CodeInvalidConfig)
	}
}

func TestPipeline_ProcessCommand(t *testing.T) {
	p := newTestPipeline(t)

	tests := []struct {
		name    string
		input   string
		success bool
		outputs []string
		code    ulerror.Code
	}{
		{"positional", ".math.add 1 2", true, []string{"3"}, ""},
		{"named", ".math.add b::5 a::1", true, []string{"6"}, ""},
		{"alias", "sum 2 2", true, []string{"4"}, ""},
		{"sequence", ".math.add 1 1 ;; .math.add 2 2", true, []string{"2", "4"}, ""},
		{"parse error", ".math.add 1 ;;", false, nil, ulerror.CodeTrailingDelimiter},
		{"unknown command", ".math.mul 1 2", false, nil, ulerror.CodeCommandNotFound},
		{"type mismatch", ".math.add one 2", false, nil, ulerror.CodeTypeMismatch},
		{"missing argument", ".math.add 1", false, nil, ulerror.CodeArgumentMissing},
		{"routine failure", ".fail", false, nil, "DOMAIN_FAILURE"},
		{"failure in sequence", ".math.add 1 1 ;; .fail", false, nil, "DOMAIN_FAILURE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := p.ProcessCommand(tt.input, nil)
			if r.Command != tt.input {
				t.Errorf("Command = %q, want %q", r.Command, tt.input)
			}
			if r.Success != tt.success {
				t.Fatalf("Success = %v, want %v (error %+v)", r.Success, tt.success, r.Error)
			}
			if !tt.success {
				if r.Error == nil || r.Error.Code != tt.code {
					t.Errorf("Error = %+v, want code %s", r.Error, tt.code)
				}
				if len(r.Outputs) != 0 {
					t.Errorf("failed result carries outputs: %+v", r.Outputs)
				}
				return
			}
			if r.Error != nil {
				t.Errorf("Error = %+v, want nil", r.Error)
			}
			if len(r.Outputs) != len(tt.outputs) {
				t.Fatalf("got %d outputs, want %d", len(r.Outputs), len(tt.outputs))
			}
			for i, want := range tt.outputs {
				if r.Outputs[i].Content != want {
					t.Errorf("output %d = %q, want %q", i, r.Outputs[i].Content, want)
				}
			}
		})
	}
}

func TestPipeline_Help(t *testing.T) {
	p := newTestPipeline(t)

	tests := []struct {
		input string
		want  string
	}{
		{".math.add ?", "Command: .math.add"},
		{"plus ?", "Command: .math.add"},
		{".math.add.help", "Command: .math.add"},
		{".", ".math.add"},
		{"", ".count"},
		{"   ", ".fail"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := p.ProcessCommandSimple(tt.input)
			if !r.Success || r.Error != nil {
				t.Fatalf("help result failed: %+v", r.Error)
			}
			if len(r.Outputs) != 1 || r.Outputs[0].Format != HelpFormat {
				t.Fatalf("outputs = %+v, want one help output", r.Outputs)
			}
			if !r.IsHelp() {
				t.Error("IsHelp() = false")
			}
			if !strings.Contains(r.Text(), tt.want) {
				t.Errorf("help text missing %q:\n%s", tt.want, r.Text())
			}
		})
	}
}

func TestPipeline_ProcessBatch(t *testing.T) {
	p := newTestPipeline(t)
	ctx := command.NewExecutionContext()

	batch := p.ProcessBatch([]string{".count", ".fail", ".count", ".nope"}, ctx)
	if batch.Total != 4 || batch.Successful != 2 || batch.Failed != 2 || len(batch.Results) != 4 {
		t.Errorf("batch = %d/%d/%d with %d results", batch.Total, batch.Successful, batch.Failed, len(batch.Results))
	}
	if batch.SuccessRate() != 50 {
		t.Errorf("SuccessRate() = %v, want 50", batch.SuccessRate())
	}
	if !batch.AnyFailed() || batch.AllSucceeded() {
		t.Error("AnyFailed/AllSucceeded disagree with the results")
	}
	// inputs share the context
	if got := batch.Results[2].Text(); got != "2" {
		t.Errorf("third result = %q, want 2", got)
	}
}

func TestPipeline_ProcessSequence(t *testing.T) {
	p := newTestPipeline(t)

	batch := p.ProcessSequence([]string{".count", ".fail", ".count"}, nil)
	if batch.Total != 3 || len(batch.Results) != 2 {
		t.Fatalf("Total = %d with %d results, want 3 with 2", batch.Total, len(batch.Results))
	}
	if batch.Successful != 1 || batch.Failed != 1 {
		t.Errorf("Successful = %d, Failed = %d", batch.Successful, batch.Failed)
	}

	batch = p.ProcessSequence([]string{".count", ".count"}, nil)
	if !batch.AllSucceeded() || batch.Results[1].Text() != "2" {
		t.Errorf("sequence = %+v", batch)
	}

	empty := p.ProcessSequence(nil, nil)
	if empty.Total != 0 || empty.AllSucceeded() || empty.SuccessRate() != 0 {
		t.Errorf("empty sequence = %+v", empty)
	}
}

func TestPipeline_ValidateCommand(t *testing.T) {
	p := newTestPipeline(t)
	ctx := command.NewExecutionContext()

	tests := []struct {
		input string
		code  ulerror.Code
	}{
		{".math.add 1 2", ""},
		{".count", ""},
		{".math.add ?", ""},
		{".", ""},
		{".math.add 1 2 3", ulerror.CodeTooManyArguments},
		{".math.add 1 c::2", ulerror.CodeUnknownParameter},
		{";; .count", ulerror.CodeEmptyInstructionSegment},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := p.ValidateCommand(tt.input)
			if tt.code == "" {
				if err != nil {
					t.Errorf("ValidateCommand() error = %v", err)
				}
				return
			}
			if !ulerror.HasCode(err, tt.code) {
				t.Errorf("ValidateCommand() error = %v, want code %s", err, tt.code)
			}
		})
	}

	// validation never runs routines
	_ = p.ValidateCommand(".count")
	if r := p.ProcessCommand(".count", ctx); r.Text() != "1" {
		t.Errorf("routine ran during validation: %q", r.Text())
	}
}

func TestPipeline_ValidateBatch(t *testing.T) {
	p := newTestPipeline(t)

	batch := p.ValidateBatch([]string{".math.add 1 2", ".math.add x 2", ".fail"})
	if batch.Total != 3 || batch.Successful != 2 || batch.Failed != 1 {
		t.Errorf("batch = %+v", batch)
	}
	if r := batch.Results[1]; r.Error == nil || r.Error.Code != ulerror.CodeTypeMismatch {
		t.Errorf("second result error = %+v", r.Error)
	}
	for _, r := range batch.Results {
		if len(r.Outputs) != 0 {
			t.Errorf("validation produced outputs for %q", r.Command)
		}
	}
}

func TestSingleCommandHelpers(t *testing.T) {
	reg := testRegistry(t)
	ullog.SetDefault(ullog.NewNop())

	if r := ProcessSingleCommand("plus 40 2", reg, nil); !r.Success || r.Text() != "42" {
		t.Errorf("ProcessSingleCommand() = %+v", r)
	}
	if r := ProcessSingleCommand("x", nil, nil); r.Success || r.Error == nil {
		t.Errorf("ProcessSingleCommand(nil registry) = %+v", r)
	}
	if err := ValidateSingleCommand(".math.add 1", reg); !ulerror.HasCode(err, ulerror.CodeArgumentMissing) {
		t.Errorf("ValidateSingleCommand() error = %v", err)
	}
}

func TestOptionsFromSettings(t *testing.T) {
	s := ulconfig.Default()
	s.Parser.StrictQuotes = true
	s.Parser.MaxInputLength = 16
	s.Log.Audit = true

	opts := OptionsFromSettings(s, ullog.NewNop())
	if !opts.Parser.StrictQuotes || opts.Parser.MaxInputLength != 16 || !opts.EnableAuditLog {
		t.Errorf("options = %+v", opts)
	}

	p, err := NewPipeline(testRegistry(t), opts)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	if r := p.ProcessCommandSimple(`.math.add "1`); r.Success || r.Error.Code != ulerror.CodeUnterminatedQuote {
		t.Errorf("strict quotes not applied: %+v", r.Error)
	}
	if r := p.ProcessCommandSimple(".math.add 1 2 ;; .math.add 3 4"); r.Success || r.Error.Code != ulerror.CodeInputTooLong {
		t.Errorf("input length not applied: %+v", r.Error)
	}
}

func BenchmarkPipeline_ProcessCommand(b *testing.B) {
	reg := registry.NewDynamic(registry.Options{Logger: ullog.NewNop()})
	_ = reg.Register(&command.CommandDefinition{
		Name: ".echo", Version: "1.0.0",
		Arguments: []command.ArgumentDefinition{{Name: "text", Kind: types.Scalar(types.TagString)}},
	}, func(cmd command.VerifiedCommand, _ *command.ExecutionContext) (command.OutputData, error) {
		v, _ := cmd.Arg("text")
		return command.Text(v.String()), nil
	})
	p, _ := NewPipeline(reg, Options{Logger: ullog.NewNop()})
	ctx := command.NewExecutionContext()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.ProcessCommand(`.echo text::"hello world"`, ctx)
	}
}
