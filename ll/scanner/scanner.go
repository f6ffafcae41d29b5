/*
Package scanner defines an interface for scanners to be used with the LL(1)
parser of package ll1.

Parsers look at the terminal name of a token only. Scanners are therefore
responsible for mapping lexemes to terminals of a grammar. Three scanner
implementations are provided: (1) a tokenizer splitting input at white
space, where every field is a terminal name, (2) a thin wrapper over the Go
std lib 'text/scanner', and (3) an adapter for lexmachine, living in
sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/gollo"
	"github.com/npillmayer/gollo/ll"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gollo.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("gollo.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Field is the token type of tokens produced by a FieldsTokenizer.
const Field gollo.TokType = 1

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() gollo.Token
	SetErrorHandler(func(error))
}

// Tokens reads tokens from a tokenizer until EOF. The EOF token is not
// included.
func Tokens(t Tokenizer) []gollo.Token {
	var toks []gollo.Token
	for {
		tok := t.NextToken()
		if tok.TokType() == EOF {
			break
		}
		toks = append(toks, tok)
	}
	tracer().Debugf("read %d tokens", len(toks))
	return toks
}

// Terminals returns the terminal names of a sequence of tokens.
func Terminals(toks []gollo.Token) []string {
	terms := make([]string, len(toks))
	for i, tok := range toks {
		terms[i] = tok.Terminal()
	}
	return terms
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// --- Fields tokenizer ------------------------------------------------------

// FieldsTokenizer splits its input at white space. Every field is a token,
// with the field itself as the terminal name. This is the input format of
// plain token sequences, e.g. "id + id * id".
type FieldsTokenizer struct {
	input string
	pos   int
	Error func(error) // error handler
}

var _ Tokenizer = (*FieldsTokenizer)(nil)

// Fields creates a tokenizer which splits input at white space.
func Fields(input string) *FieldsTokenizer {
	return &FieldsTokenizer{input: input, Error: logError}
}

// SetErrorHandler sets an error handler for the scanner. Splitting at white
// space never fails, the handler is never called.
func (t *FieldsTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *FieldsTokenizer) NextToken() gollo.Token {
	for t.pos < len(t.input) {
		r, w := utf8.DecodeRuneInString(t.input[t.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		t.pos += w
	}
	start := t.pos
	if start == len(t.input) {
		return MakeDefaultToken(EOF, "", ll.EOF, gollo.Span{uint64(start), uint64(start)})
	}
	for t.pos < len(t.input) {
		r, w := utf8.DecodeRuneInString(t.input[t.pos:])
		if unicode.IsSpace(r) {
			break
		}
		t.pos += w
	}
	lexeme := t.input[start:t.pos]
	return MakeDefaultToken(Field, lexeme, lexeme, gollo.Span{uint64(start), uint64(t.pos)})
}

// --- Go tokenizer ----------------------------------------------------------

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune                     // last token this scanner has produced
	Error        func(error)              // error handler
	unifyStrings bool                     // convert single chars to strings
	keywords     map[string]bool          // lexemes which are terminals by themselves
	categories   map[gollo.TokType]string // terminal names for token categories
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go
// language.
//
// By default, the terminal name of a token is its lexeme. Clients map token
// categories to terminals with option Category, e.g., every identifier to
// terminal "id". Lexemes declared as keywords are exempt from this mapping.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{
		keywords:   make(map[string]bool),
		categories: make(map[gollo.TokType]string),
	}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() gollo.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
		off := uint64(t.Pos().Offset)
		return MakeDefaultToken(EOF, "", ll.EOF, gollo.Span{off, off})
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	kind := gollo.TokType(t.lastToken)
	lexeme := t.TokenText()
	return MakeDefaultToken(kind, lexeme, t.terminal(kind, lexeme),
		gollo.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)})
}

func (t *DefaultTokenizer) terminal(kind gollo.TokType, lexeme string) string {
	if t.keywords[lexeme] {
		return lexeme
	}
	if term, ok := t.categories[kind]; ok {
		return term
	}
	return lexeme
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the
// tokenizers of this package as well as the LexMachine scanner.
type DefaultToken struct {
	kind     gollo.TokType
	lexeme   string
	terminal string
	span     gollo.Span
}

// MakeDefaultToken creates a token standing for terminal.
func MakeDefaultToken(typ gollo.TokType, lexeme, terminal string, span gollo.Span) DefaultToken {
	return DefaultToken{
		kind:     typ,
		lexeme:   lexeme,
		terminal: terminal,
		span:     span,
	}
}

func (t DefaultToken) TokType() gollo.TokType {
	return t.kind
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Terminal() string {
	return t.terminal
}

func (t DefaultToken) Span() gollo.Span {
	return t.span
}

func (t DefaultToken) String() string {
	if t.lexeme == t.terminal {
		return fmt.Sprintf("%q%v", t.lexeme, t.span)
	}
	return fmt.Sprintf("%s(%q)%v", t.terminal, t.lexeme, t.span)
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenizer.
type Option func(p *DefaultTokenizer)

// SkipComments sets or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

// Keywords declares lexemes which stand for themselves, even if their token
// category is mapped to a terminal.
func Keywords(kw ...string) Option {
	return func(t *DefaultTokenizer) {
		for _, k := range kw {
			t.keywords[k] = true
		}
	}
}

// Category maps every token of category kind (e.g., Ident) to terminal term.
func Category(kind rune, term string) Option {
	return func(t *DefaultTokenizer) {
		t.categories[gollo.TokType(kind)] = term
	}
}
