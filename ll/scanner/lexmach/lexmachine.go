package lexmach

import (
	"regexp"
	"strings"

	"github.com/npillmayer/gollo"
	"github.com/npillmayer/gollo/ll"
	"github.com/npillmayer/gollo/ll/scanner"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'gollo.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("gollo.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	init(adapter.Lexer)
	for _, lit := range literals {
		adapter.Lexer.Add([]byte(quote(lit)), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

var word = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ForTerminals creates a lexmachine adapter for the terminals of a grammar.
// Terminals with an entry in patterns are recognized by the pattern's
// regular expression, all other terminals stand for themselves. The
// end-of-input marker is ignored. White space is skipped.
//
// Literal terminals take precedence over patterns for matches of equal
// length, i.e. keywords are not recognized as identifiers.
func ForTerminals(terminals []string, patterns map[string]string) (*LMAdapter, error) {
	var literals, keywords []string
	tokenIds := make(map[string]int)
	for _, t := range terminals {
		if t == ll.EOF || t == ll.Epsilon {
			continue
		}
		tokenIds[t] = len(tokenIds) + 1
		if _, ok := patterns[t]; ok {
			continue
		}
		if word.MatchString(t) {
			keywords = append(keywords, t)
		} else {
			literals = append(literals, t)
		}
	}
	names := maps.Keys(patterns)
	slices.Sort(names)
	for _, name := range names {
		if _, ok := tokenIds[name]; !ok {
			tokenIds[name] = len(tokenIds) + 1
		}
	}
	tracer().Debugf("lexer for %d literals, %d keywords, %d patterns",
		len(literals), len(keywords), len(names))
	return newTerminalAdapter(literals, keywords, names, patterns, tokenIds)
}

func newTerminalAdapter(literals, keywords, names []string, patterns map[string]string,
	tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{Lexer: lexmachine.NewLexer()}
	for _, lit := range literals {
		adapter.Lexer.Add([]byte(quote(lit)), MakeToken(lit, tokenIds[lit]))
	}
	for _, kw := range keywords {
		adapter.Lexer.Add([]byte(kw), MakeToken(kw, tokenIds[kw]))
	}
	for _, name := range names {
		adapter.Lexer.Add([]byte(patterns[name]), MakeToken(name, tokenIds[name]))
	}
	adapter.Lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// quote escapes every character of a literal.
func quote(lit string) string {
	return "\\" + strings.Join(strings.Split(lit, ""), "\\")
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, length: len(input), Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	length  int
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// NextToken is part of the Tokenizer interface.
//
// Input which cannot be matched is reported to the error handler and
// skipped.
func (lms *LMScanner) NextToken() gollo.Token {
	eot := uint64(lms.length)
	if lms.scanner == nil {
		return scanner.MakeDefaultToken(scanner.EOF, "", ll.EOF, gollo.Span{eot, eot})
	}
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return scanner.MakeDefaultToken(scanner.EOF, "", ll.EOF, gollo.Span{eot, eot})
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	terminal, _ := token.Value.(string)
	return scanner.MakeDefaultToken(
		gollo.TokType(token.Type),
		string(token.Lexeme),
		terminal,
		gollo.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token
// for terminal name.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, name, m), nil
	}
}
