// File: parser.go
// Title: Command Language Parser
// Description: Turns a token stream into instructions. Handles the command
//              path, positional and named arguments, the help operator and
//              ';;'-separated instruction sequences, with policy options for
//              quoting, argument ordering and duplicate names.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-05
// Modified: 2025-11-06
//
// Change History:
// - 2025-11-05 v0.1.0: Initial parser implementation
// - 2025-11-06 v0.1.0: Instruction sequences and policy options

package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	ullog "github.com/msto63/unilang/core/log"
	"github.com/msto63/unilang/unilang/ast"
	ulstringx "github.com/msto63/unilang/utils/stringx"
)

// DefaultMaxInputLength is used when Options.MaxInputLength is zero
const DefaultMaxInputLength = 64 * 1024

// Options configures parser behavior
type Options struct {
	Logger                         *ullog.Logger
	MaxInputLength                 int
	QuotePairs                     []QuotePair
	KeepQuotes                     bool
	StrictQuotes                   bool
	ErrorOnPositionalAfterNamed    bool
	ErrorOnDuplicateNamedArguments bool
}

// Parser parses instruction text. It holds no per-call state and is safe
// for concurrent use.
type Parser struct {
	logger  *ullog.Logger
	options Options
}

// New creates a new parser with the given options
func New(opts Options) (*Parser, error) {
	if opts.Logger == nil {
		opts.Logger = ullog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	if opts.MaxInputLength < 0 {
		return nil, fmt.Errorf("max input length must not be negative: %d", opts.MaxInputLength)
	}
	if len(opts.QuotePairs) == 0 {
		opts.QuotePairs = DefaultQuotePairs
	}
	for _, q := range opts.QuotePairs {
		if unicode.IsSpace(q.Open) || unicode.IsSpace(q.Close) ||
			strings.ContainsRune(".:;?\\", q.Open) || strings.ContainsRune(".:;?\\", q.Close) {
			return nil, fmt.Errorf("invalid quote pair %q%q", q.Open, q.Close)
		}
	}

	return &Parser{
		logger:  opts.Logger.WithField("component", "unilang-parser"),
		options: opts,
	}, nil
}

// Options returns the effective options
func (p *Parser) Options() Options {
	return p.options
}

// Parse parses a ';;'-separated sequence of instructions. Empty or
// whitespace-only input yields no instructions.
func (p *Parser) Parse(input string) ([]*ast.Instruction, error) {
	tokens, err := p.tokenize(input)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Parsing instruction sequence", ullog.Fields{
		"length": len(input),
		"tokens": len(tokens),
	})

	if len(tokens) == 1 {
		return []*ast.Instruction{}, nil
	}

	segments, err := splitSegments(tokens)
	if err != nil {
		p.logger.Debug("Instruction sequence rejected", ullog.Fields{"error": err.Error()})
		return nil, err
	}

	instructions := make([]*ast.Instruction, 0, len(segments))
	for _, seg := range segments {
		in, err := p.parseInstruction(input, seg)
		if err != nil {
			p.logger.Debug("Instruction rejected", ullog.Fields{"error": err.Error()})
			return nil, err
		}
		instructions = append(instructions, in)
	}

	p.logger.Debug("Parsing completed", ullog.Fields{"instructions": len(instructions)})
	return instructions, nil
}

// ParseSingle parses exactly one instruction. A ';;' separator is an error.
// Empty input yields an instruction with an empty command path.
func (p *Parser) ParseSingle(input string) (*ast.Instruction, error) {
	tokens, err := p.tokenize(input)
	if err != nil {
		return nil, err
	}
	for _, tok := range tokens {
		if tok.Type == TokenSeparator {
			return nil, errorAt(ErrSyntax, tok, "expected a single instruction, found ';;'")
		}
	}
	return p.parseInstruction(input, tokens[:len(tokens)-1])
}

func (p *Parser) tokenize(input string) ([]Token, error) {
	if len(input) > p.options.MaxInputLength {
		return nil, &ParseError{
			Kind:      ErrInputTooLong,
			Message:   fmt.Sprintf("input exceeds maximum length: %d > %d", len(input), p.options.MaxInputLength),
			Offending: ulstringx.Truncate(input, 40, "..."),
			Position:  p.options.MaxInputLength,
			End:       len(input),
			Line:      1,
			Column:    1,
		}
	}
	lexer := newLexer(input, p.options.QuotePairs, p.options.KeepQuotes, p.options.StrictQuotes)
	return lexer.Tokenize()
}

// splitSegments splits the tokens (ending in EOF) at separators. Empty
// segments are errors.
func splitSegments(tokens []Token) ([][]Token, error) {
	var segments [][]Token
	start := 0
	for i, tok := range tokens {
		if tok.Type != TokenSeparator && tok.Type != TokenEOF {
			continue
		}
		if i == start {
			switch {
			case tok.Type == TokenEOF:
				return nil, errorAt(ErrTrailingDelimiter, tokens[i-1],
					"instruction sequence must not end with ';;'")
			default:
				return nil, errorAt(ErrEmptyInstructionSegment, tok,
					"empty instruction before ';;'")
			}
		}
		segments = append(segments, tokens[start:i])
		start = i + 1
	}
	return segments, nil
}

// parseInstruction parses the tokens of one segment (without separator or
// EOF)
func (p *Parser) parseInstruction(input string, tokens []Token) (*ast.Instruction, error) {
	in := &ast.Instruction{Named: make(map[string]ast.Argument)}
	if len(tokens) == 0 {
		in.CommandPath = []string{}
		return in, nil
	}
	in.Span = ast.Span{Start: tokens[0].Position, End: tokens[len(tokens)-1].End}

	path, i, err := parsePath(input, tokens)
	if err != nil {
		return nil, err
	}
	in.CommandPath = path

	seenNamed := false
	for i < len(tokens) {
		tok := tokens[i]

		switch tok.Type {
		case TokenHelp:
			if i != len(tokens)-1 {
				return nil, errorAt(ErrSyntax, tok,
					fmt.Sprintf("help operator '%s' must be the last token of an instruction", tok.Raw))
			}
			in.HelpRequested = true
			i++
			continue
		case TokenNamedOp:
			return nil, errorAt(ErrSyntax, tok, "named argument operator '::' without an argument name")
		}

		if len(path) == 0 {
			return nil, errorAt(ErrSyntax, tok, "expected a command path before arguments")
		}

		value, end := p.valueRun(tokens, i)
		if end < len(tokens) && tokens[end].Type == TokenNamedOp {
			name := tokens[i]
			if end-i != 1 || name.Type != TokenWord || !ulstringx.IsIdentifier(name.Value) {
				return nil, errorSpan(ErrSyntax, input, tokens[i], tokens[end-1],
					fmt.Sprintf("invalid argument name '%s'", value))
			}
			op := tokens[end]
			vstart := end + 1
			if vstart >= len(tokens) || !isValueToken(tokens[vstart].Type) {
				return nil, errorAt(ErrSyntax, op,
					fmt.Sprintf("named argument '%s' has no value", name.Value))
			}
			val, vend := p.valueRun(tokens, vstart)

			if _, dup := in.Named[name.Value]; dup && p.options.ErrorOnDuplicateNamedArguments {
				return nil, errorSpan(ErrDuplicateNamedArgument, input, name, tokens[vend-1],
					fmt.Sprintf("duplicate named argument '%s'", name.Value))
			}
			in.Named[name.Value] = ast.Argument{
				Name:      name.Value,
				Value:     val,
				NameSpan:  ast.Span{Start: name.Position, End: name.End},
				ValueSpan: ast.Span{Start: tokens[vstart].Position, End: tokens[vend-1].End},
			}
			seenNamed = true
			i = vend
			continue
		}

		if seenNamed && p.options.ErrorOnPositionalAfterNamed {
			return nil, errorSpan(ErrPositionalAfterNamed, input, tokens[i], tokens[end-1],
				fmt.Sprintf("positional argument '%s' after named arguments", value))
		}
		in.Positional = append(in.Positional, ast.Argument{
			Value:     value,
			ValueSpan: ast.Span{Start: tokens[i].Position, End: tokens[end-1].End},
		})
		i = end
	}

	return in, nil
}

func isValueToken(t TokenType) bool {
	return t == TokenWord || t == TokenQuoted || t == TokenDot
}

// valueRun joins the value tokens starting at i that are not separated by
// whitespace and returns the joined value and the index after the run
func (p *Parser) valueRun(tokens []Token, i int) (string, int) {
	var b strings.Builder
	j := i
	for j < len(tokens) && isValueToken(tokens[j].Type) && (j == i || !tokens[j].SpaceBefore) {
		b.WriteString(tokens[j].Value)
		j++
	}
	return b.String(), j
}

// parsePath reads the command path at the start of a segment and returns
// its segments and the index of the first token after it. A leading dot is
// optional; "." alone is the empty path.
func parsePath(input string, tokens []Token) ([]string, int, error) {
	end := 0
	for end < len(tokens) {
		t := tokens[end]
		if t.Type != TokenWord && t.Type != TokenDot {
			break
		}
		if end > 0 && t.SpaceBefore {
			break
		}
		end++
	}

	// a lone word followed by '::' is an argument name, not a path
	if end == 1 && tokens[0].Type == TokenWord && end < len(tokens) && tokens[end].Type == TokenNamedOp {
		return nil, 0, errorAt(ErrSyntax, tokens[0], "expected a command path before arguments")
	}

	run := tokens[:end]
	if len(run) == 0 {
		return []string{}, 0, nil
	}
	if len(run) == 1 && run[0].Type == TokenDot {
		return []string{}, 1, nil
	}

	var path []string
	k := 0
	if run[0].Type == TokenDot {
		k = 1
	}
	for k < len(run) {
		t := run[k]
		if t.Type == TokenDot {
			return nil, 0, errorSpan(ErrSyntax, input, run[k-1], t, "consecutive dots in command path")
		}
		if err := checkSegment(t); err != nil {
			return nil, 0, err
		}
		path = append(path, t.Value)
		k++
		if k == len(run) {
			break
		}
		// run[k] is a dot
		if k == len(run)-1 {
			return nil, 0, errorAt(ErrSyntax, run[k], "command path must not end with '.'")
		}
		k++
	}
	return path, end, nil
}

func checkSegment(t Token) *ParseError {
	if r, bad := ulstringx.FirstInvalidIdentifierRune(t.Value); bad {
		if unicode.IsDigit(r) {
			if first, _ := utf8.DecodeRuneInString(t.Value); first == r {
				return errorAt(ErrSyntax, t, fmt.Sprintf("invalid identifier '%s' in command path", t.Value))
			}
		}
		return errorAt(ErrSyntax, t, fmt.Sprintf("invalid character '%c' in command path", r))
	}
	return nil
}
