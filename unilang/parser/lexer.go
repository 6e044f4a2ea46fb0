// File: lexer.go
// Title: Command Language Lexer
// Description: Splits raw instruction text into tokens: words, quoted
//              sections, the namespace dot, the '::' operator, the help
//              operator and the ';;' separator. Every token records whether
//              whitespace preceded it so the parser can join adjacent tokens
//              into values and recognize '::' with or without spacing.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-05
// Modified: 2025-11-06
//
// Change History:
// - 2025-11-05 v0.1.0: Initial lexer implementation
// - 2025-11-06 v0.1.0: Configurable quote pairs and strict quote mode

package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	TokenEOF       TokenType = iota
	TokenWord                // math, 1,2, ./a/b
	TokenQuoted              // "hello world"
	TokenDot                 // .
	TokenNamedOp             // ::
	TokenHelp                // ? or ??
	TokenSeparator           // ;;
)

// String returns a string representation of the token type
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenWord:
		return "WORD"
	case TokenQuoted:
		return "QUOTED"
	case TokenDot:
		return "DOT"
	case TokenNamedOp:
		return "NAMED_OP"
	case TokenHelp:
		return "HELP"
	case TokenSeparator:
		return "SEPARATOR"
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexical token with position information. Value is the
// unescaped text, Raw the source slice.
type Token struct {
	Type        TokenType
	Value       string
	Raw         string
	Position    int // byte offset of the first byte
	End         int // byte offset after the last byte
	Line        int // 1-based
	Column      int // 1-based, in runes
	SpaceBefore bool
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.Type == TokenEOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%s)", t.Type, t.Value)
}

// QuotePair is an opening and closing quote character
type QuotePair struct {
	Open  rune
	Close rune
}

// DefaultQuotePairs are the double and single quote
var DefaultQuotePairs = []QuotePair{{'"', '"'}, {'\'', '\''}}

// Lexer performs lexical analysis of instruction text
type Lexer struct {
	input        string
	pos          int
	line         int
	column       int
	quotes       []QuotePair
	keepQuotes   bool
	strictQuotes bool
}

// NewLexer creates a lexer with the default quote pairs
func NewLexer(input string) *Lexer {
	return newLexer(input, DefaultQuotePairs, false, false)
}

func newLexer(input string, quotes []QuotePair, keepQuotes, strictQuotes bool) *Lexer {
	if len(quotes) == 0 {
		quotes = DefaultQuotePairs
	}
	return &Lexer{
		input:        input,
		line:         1,
		column:       1,
		quotes:       quotes,
		keepQuotes:   keepQuotes,
		strictQuotes: strictQuotes,
	}
}

// Tokenize returns all tokens including the final EOF token
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// NextToken returns the next token. The only lexical error is an
// unterminated quote in strict mode.
func (l *Lexer) NextToken() (Token, error) {
	space := l.skipWhitespace()

	tok := Token{Position: l.pos, Line: l.line, Column: l.column, SpaceBefore: space}
	if l.pos >= len(l.input) {
		tok.Type = TokenEOF
		tok.End = l.pos
		return tok, nil
	}

	r := l.peek(0)
	switch {
	case r == ';' && l.peek(1) == ';':
		l.advance()
		l.advance()
		tok.Type = TokenSeparator
	case r == ':' && l.peek(1) == ':':
		l.advance()
		l.advance()
		tok.Type = TokenNamedOp
	case r == '?':
		l.advance()
		if l.peek(0) == '?' {
			l.advance()
		}
		tok.Type = TokenHelp
	case r == '.':
		l.advance()
		tok.Type = TokenDot
	case l.isQuoteOpen(r):
		value, err := l.readQuoted(tok)
		if err != nil {
			return tok, err
		}
		tok.Type = TokenQuoted
		tok.Value = value
		tok.End = l.pos
		tok.Raw = l.input[tok.Position:tok.End]
		return tok, nil
	default:
		l.readWord()
		tok.Type = TokenWord
	}

	tok.End = l.pos
	tok.Raw = l.input[tok.Position:tok.End]
	tok.Value = tok.Raw
	return tok, nil
}

func (l *Lexer) peek(n int) rune {
	pos := l.pos
	for i := 0; i < n; i++ {
		if pos >= len(l.input) {
			return 0
		}
		_, size := utf8.DecodeRuneInString(l.input[pos:])
		pos += size
	}
	if pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos:])
	return r
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) skipWhitespace() bool {
	skipped := false
	for l.pos < len(l.input) {
		r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		l.advance()
		skipped = true
	}
	return skipped
}

func (l *Lexer) isQuoteOpen(r rune) bool {
	for _, q := range l.quotes {
		if q.Open == r {
			return true
		}
	}
	return false
}

func (l *Lexer) closeFor(open rune) rune {
	for _, q := range l.quotes {
		if q.Open == open {
			return q.Close
		}
	}
	return open
}

func (l *Lexer) isQuoteChar(r rune) bool {
	for _, q := range l.quotes {
		if q.Open == r || q.Close == r {
			return true
		}
	}
	return false
}

// readWord consumes runes up to whitespace, a dot, a quote, '?', '::' or ';;'
func (l *Lexer) readWord() {
	for l.pos < len(l.input) {
		r := l.peek(0)
		if unicode.IsSpace(r) || r == '.' || r == '?' || l.isQuoteOpen(r) {
			return
		}
		if (r == ':' || r == ';') && l.peek(1) == r {
			return
		}
		l.advance()
	}
}

// readQuoted consumes a quoted section and returns its unescaped content.
// A missing closing quote ends the section at end of input unless strict
// quoting is enabled.
func (l *Lexer) readQuoted(start Token) (string, error) {
	open := l.advance()
	closing := l.closeFor(open)

	var b strings.Builder
	if l.keepQuotes {
		b.WriteRune(open)
	}

	for l.pos < len(l.input) {
		r := l.advance()
		switch {
		case r == closing:
			if l.keepQuotes {
				b.WriteRune(closing)
			}
			return b.String(), nil
		case r == '\\' && l.pos < len(l.input):
			next := l.peek(0)
			switch {
			case next == '\\':
				b.WriteRune('\\')
			case next == 'n':
				b.WriteRune('\n')
			case next == 't':
				b.WriteRune('\t')
			case next == 'r':
				b.WriteRune('\r')
			case l.isQuoteChar(next):
				b.WriteRune(next)
			default:
				b.WriteRune('\\')
				continue
			}
			l.advance()
		default:
			b.WriteRune(r)
		}
	}

	if l.strictQuotes {
		return "", &ParseError{
			Kind:      ErrUnterminatedQuote,
			Message:   fmt.Sprintf("unterminated quote %q", string(open)),
			Offending: l.input[start.Position:],
			Position:  start.Position,
			End:       len(l.input),
			Line:      start.Line,
			Column:    start.Column,
		}
	}
	if l.keepQuotes {
		b.WriteRune(closing)
	}
	return b.String(), nil
}

// TokenizeInput tokenizes input with the default settings
func TokenizeInput(input string) ([]Token, error) {
	return NewLexer(input).Tokenize()
}
