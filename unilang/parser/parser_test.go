// File: parser_test.go
// Title: Parser Unit Tests
// Description: Tests for instruction parsing: command paths, positional and
//              named arguments, help requests, sequences, policy options,
//              error reporting and re-serialization.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-05
// Modified: 2025-11-06
//
// Change History:
// - 2025-11-05 v0.1.0: Initial test suite

package parser

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	ulerror "github.com/msto63/unilang/core/error"
	ullog "github.com/msto63/unilang/core/log"
	"github.com/msto63/unilang/unilang/ast"
)

func newTestParser(t *testing.T, opts Options) *Parser {
	t.Helper()
	opts.Logger = ullog.NewNop()
	p, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func TestParser_ParseSingle(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		path       []string
		positional []string
		named      map[string]string
		help       bool
	}{
		{
			name:  "simple command",
			input: ".math.add",
			path:  []string{"math", "add"},
			named: map[string]string{},
		},
		{
			name:  "leading dot optional",
			input: "math.add 1 2",
			path:  []string{"math", "add"}, positional: []string{"1", "2"},
			named: map[string]string{},
		},
		{
			name:  "named without spaces",
			input: ".cmd a::b",
			path:  []string{"cmd"},
			named: map[string]string{"a": "b"},
		},
		{
			name:  "named with spaces",
			input: ".cmd a :: b",
			path:  []string{"cmd"},
			named: map[string]string{"a": "b"},
		},
		{
			name:  "named with mixed spacing",
			input: ".cmd a:: b c ::d",
			path:  []string{"cmd"},
			named: map[string]string{"a": "b", "c": "d"},
		},
		{
			name:  "comma stays inside value",
			input: ".buy coord::1,1",
			path:  []string{"buy"},
			named: map[string]string{"coord": "1,1"},
		},
		{
			name:  "path value joins dots",
			input: ".file.read path::./docs/readme.md",
			path:  []string{"file", "read"},
			named: map[string]string{"path": "./docs/readme.md"},
		},
		{
			name:  "quoted values",
			input: `.greet "hello world" name::'John Doe'`,
			path:  []string{"greet"}, positional: []string{"hello world"},
			named: map[string]string{"name": "John Doe"},
		},
		{
			name:  "quoted value adjacent to word",
			input: `.echo pre"fix"`,
			path:  []string{"echo"}, positional: []string{"prefix"},
			named: map[string]string{},
		},
		{
			name:  "help without space",
			input: ".math.add?",
			path:  []string{"math", "add"},
			named: map[string]string{},
			help:  true,
		},
		{
			name:  "help after arguments",
			input: ".math.add 1 b::2 ?",
			path:  []string{"math", "add"}, positional: []string{"1"},
			named: map[string]string{"b": "2"},
			help:  true,
		},
		{
			name:  "double question mark",
			input: ".math.add ??",
			path:  []string{"math", "add"},
			named: map[string]string{},
			help:  true,
		},
		{
			name:  "hash and bang are ordinary",
			input: ".tag #urgent !important",
			path:  []string{"tag"}, positional: []string{"#urgent", "!important"},
			named: map[string]string{},
		},
		{
			name:  "duplicate named last wins",
			input: ".cmd a::1 a::2",
			path:  []string{"cmd"},
			named: map[string]string{"a": "2"},
		},
		{
			name:  "positional after named allowed",
			input: ".cmd a::1 x",
			path:  []string{"cmd"}, positional: []string{"x"},
			named: map[string]string{"a": "1"},
		},
		{
			name:  "dangling quote closes implicitly",
			input: `.echo "unterminated text`,
			path:  []string{"echo"}, positional: []string{"unterminated text"},
			named: map[string]string{},
		},
		{
			name:  "dot alone is empty path",
			input: ".",
			path:  []string{},
			named: map[string]string{},
		},
		{
			name:  "question mark alone",
			input: "?",
			path:  []string{},
			named: map[string]string{},
			help:  true,
		},
		{
			name:  "empty input",
			input: "",
			path:  []string{},
			named: map[string]string{},
		},
		{
			name:  "unicode identifiers",
			input: ".größe wert::groß",
			path:  []string{"größe"},
			named: map[string]string{"wert": "groß"},
		},
	}

	p := newTestParser(t, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := p.ParseSingle(tt.input)
			if err != nil {
				t.Fatalf("ParseSingle(%q) error = %v", tt.input, err)
			}
			if !reflect.DeepEqual(in.CommandPath, tt.path) {
				t.Errorf("CommandPath = %#v, want %#v", in.CommandPath, tt.path)
			}
			if got := in.PositionalValues(); len(got) != len(tt.positional) || (len(got) > 0 && !reflect.DeepEqual(got, tt.positional)) {
				t.Errorf("Positional = %#v, want %#v", got, tt.positional)
			}
			if got := in.NamedValues(); !reflect.DeepEqual(got, tt.named) {
				t.Errorf("Named = %#v, want %#v", got, tt.named)
			}
			if in.HelpRequested != tt.help {
				t.Errorf("HelpRequested = %v, want %v", in.HelpRequested, tt.help)
			}
		})
	}
}

func TestParser_NamedOperatorSpacingIsEquivalent(t *testing.T) {
	p := newTestParser(t, Options{})

	a, err := p.ParseSingle(".cmd a::b")
	if err != nil {
		t.Fatalf("ParseSingle() error = %v", err)
	}
	b, err := p.ParseSingle(".cmd a :: b")
	if err != nil {
		t.Fatalf("ParseSingle() error = %v", err)
	}
	if !a.Equivalent(b) {
		t.Errorf("instructions differ: %s vs %s", a, b)
	}
}

func TestParser_Spans(t *testing.T) {
	p := newTestParser(t, Options{})
	in, err := p.ParseSingle(".cmd x name::\"a b\"")
	if err != nil {
		t.Fatalf("ParseSingle() error = %v", err)
	}

	if in.Span != (ast.Span{Start: 0, End: 18}) {
		t.Errorf("Span = %+v", in.Span)
	}
	if in.Positional[0].ValueSpan != (ast.Span{Start: 5, End: 6}) {
		t.Errorf("positional span = %+v", in.Positional[0].ValueSpan)
	}
	named := in.Named["name"]
	if named.NameSpan != (ast.Span{Start: 7, End: 11}) || named.ValueSpan != (ast.Span{Start: 13, End: 18}) {
		t.Errorf("named spans = %+v / %+v", named.NameSpan, named.ValueSpan)
	}
}

func TestParser_Sequences(t *testing.T) {
	p := newTestParser(t, Options{})

	instructions, err := p.Parse(".a 1 ;; .b x::y;;.c ?")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(instructions) != 3 {
		t.Fatalf("got %d instructions, want 3", len(instructions))
	}
	names := []string{instructions[0].CommandName(), instructions[1].CommandName(), instructions[2].CommandName()}
	if !reflect.DeepEqual(names, []string{".a", ".b", ".c"}) {
		t.Errorf("names = %v", names)
	}
	if !instructions[2].HelpRequested {
		t.Error("third instruction should request help")
	}

	for _, empty := range []string{"", "   ", "\n\t"} {
		got, err := p.Parse(empty)
		if err != nil || len(got) != 0 {
			t.Errorf("Parse(%q) = %v, %v; want no instructions", empty, got, err)
		}
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		input     string
		wantKind  ErrorKind
		wantPos   int
		offending string
	}{
		{"leading separator", Options{}, ";; .a", ErrEmptyInstructionSegment, 0, ";;"},
		{"double separator", Options{}, ".a ;; ;; .b", ErrEmptyInstructionSegment, 6, ";;"},
		{"separator only", Options{}, ";;", ErrEmptyInstructionSegment, 0, ";;"},
		{"trailing separator", Options{}, ".a ;;", ErrTrailingDelimiter, 3, ";;"},
		{"consecutive dots", Options{}, ".math..add", ErrSyntax, 5, ".."},
		{"trailing dot", Options{}, ".math.", ErrSyntax, 5, "."},
		{"invalid character", Options{}, ".ma-th", ErrSyntax, 1, "ma-th"},
		{"invalid identifier", Options{}, ".1math", ErrSyntax, 1, "1math"},
		{"help not last", Options{}, ".cmd ? x", ErrSyntax, 5, "?"},
		{"operator without name", Options{}, ".cmd ::b", ErrSyntax, 5, "::"},
		{"named without value", Options{}, ".cmd a::", ErrSyntax, 6, "::"},
		{"named followed by help", Options{}, ".cmd a:: ?", ErrSyntax, 6, "::"},
		{"invalid argument name", Options{}, ".cmd a-b::1", ErrSyntax, 5, "a-b"},
		{"empty path with arguments", Options{}, ". x", ErrSyntax, 2, "x"},
		{"named argument without path", Options{}, "a::b", ErrSyntax, 0, "a"},
		{"quoted without path", Options{}, `"x"`, ErrSyntax, 0, `"x"`},
		{
			"strict quotes", Options{StrictQuotes: true},
			`.echo "open`, ErrUnterminatedQuote, 6, `"open`,
		},
		{
			"positional after named", Options{ErrorOnPositionalAfterNamed: true},
			".cmd a::1 x", ErrPositionalAfterNamed, 10, "x",
		},
		{
			"duplicate named", Options{ErrorOnDuplicateNamedArguments: true},
			".cmd a::1 a::2", ErrDuplicateNamedArgument, 10, "a::2",
		},
		{
			"input too long", Options{MaxInputLength: 4},
			".abcdef", ErrInputTooLong, 4, ".abcdef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(t, tt.opts)
			_, err := p.Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", tt.input)
			}

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error type = %T, want *ParseError", err)
			}
			if pe.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v (%v)", pe.Kind, tt.wantKind, pe)
			}
			if pe.Position != tt.wantPos {
				t.Errorf("Position = %d, want %d", pe.Position, tt.wantPos)
			}
			if pe.Offending != tt.offending {
				t.Errorf("Offending = %q, want %q", pe.Offending, tt.offending)
			}
		})
	}
}

func TestParser_ParseSingleRejectsSequence(t *testing.T) {
	p := newTestParser(t, Options{})
	_, err := p.ParseSingle(".a ;; .b")
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Kind != ErrSyntax || pe.Position != 3 {
		t.Errorf("ParseSingle() error = %v", err)
	}
}

func TestParseError_Codes(t *testing.T) {
	pe := &ParseError{Kind: ErrDuplicateNamedArgument, Message: "duplicate", Offending: "a::2", Line: 1, Column: 11}
	if pe.Code() != ulerror.CodeDuplicateNamedArgument {
		t.Errorf("Code() = %v", pe.Code())
	}
	if pe.Error() != "parse error at line 1, column 11: duplicate (near 'a::2')" {
		t.Errorf("Error() = %q", pe.Error())
	}

	converted := pe.ToError()
	if !ulerror.HasCode(converted, ulerror.CodeDuplicateNamedArgument) {
		t.Errorf("ToError() code = %v", converted.Code())
	}
	var back *ParseError
	if !errors.As(converted, &back) {
		t.Error("ToError() should wrap the parse error")
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	if _, err := New(Options{Logger: ullog.NewNop(), MaxInputLength: -1}); err == nil {
		t.Error("New() should reject a negative length")
	}
	if _, err := New(Options{Logger: ullog.NewNop(), QuotePairs: []QuotePair{{'.', '.'}}}); err == nil {
		t.Error("New() should reject '.' as quote")
	}
}

func TestParser_RoundTrip(t *testing.T) {
	inputs := []string{
		".math.add 1 2",
		`.greet "hello world" name::"John \"JD\" Doe"`,
		".buy coord::1,1 tags::a,b,c",
		`.write path::"C:\\temp\\x.txt" text::"line\nbreak"`,
		".echo 'it''s' ?",
		`.echo "a::b" "x;;y" "what?" ""`,
		".file.read ./docs/readme.md",
		".cmd a :: b",
	}

	p := newTestParser(t, Options{})
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := p.ParseSingle(input)
			if err != nil {
				t.Fatalf("ParseSingle(%q) error = %v", input, err)
			}
			text := first.String()
			second, err := p.ParseSingle(text)
			if err != nil {
				t.Fatalf("ParseSingle(%q) error = %v", text, err)
			}
			if !first.Equivalent(second) {
				t.Errorf("round trip changed instruction:\n%q\n%q", input, text)
			}
		})
	}
}

func TestParser_RoundTripSequence(t *testing.T) {
	p := newTestParser(t, Options{})
	first, err := p.Parse(".a x::1 ;; .b \"two words\"")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	second, err := p.Parse(ast.JoinInstructions(first))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(second) != 2 || !first[0].Equivalent(second[0]) || !first[1].Equivalent(second[1]) {
		t.Errorf("sequence round trip failed: %s", ast.JoinInstructions(second))
	}
	if !strings.Contains(ast.JoinInstructions(second), `"two words"`) {
		t.Errorf("quoting lost: %s", ast.JoinInstructions(second))
	}
}

func BenchmarkParse(b *testing.B) {
	p, _ := New(Options{Logger: ullog.NewNop()})
	input := `.game.region.buy_castle coord::1,2 name::"Castle Black" gold::100 ;; .math.add 1 2`
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Parse(input)
	}
}
