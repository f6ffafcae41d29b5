package ll1

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/gollo"
	"github.com/npillmayer/gollo/ll"
	"github.com/npillmayer/schuko/gconf"
)

// Action is the kind of transition a parser step performs.
type Action int8

// Actions of the LL(1) stack machine. Accept and the error actions are final.
const (
	Accept        Action = iota // stack and input are exhausted
	Match                       // terminal on top of stack matches the current token
	Apply                       // non-terminal on top of stack is expanded
	ErrorMismatch               // terminal on top of stack differs from the current token
	ErrorNoRule                 // no table entry for (top of stack, current token)
	ErrorCycle                  // expansion would never consume input
)

func (a Action) String() string {
	switch a {
	case Accept:
		return "Accept"
	case Match:
		return "Match"
	case Apply:
		return "Apply"
	case ErrorMismatch:
		return "ErrorMismatch"
	case ErrorNoRule:
		return "ErrorNoRule"
	case ErrorCycle:
		return "ErrorCycle"
	}
	return fmt.Sprintf("Action(%d)", int8(a))
}

// IsError is true for the error actions.
func (a Action) IsError() bool {
	return a >= ErrorMismatch
}

// IsFinal is true for actions which end a parse.
func (a Action) IsFinal() bool {
	return a == Accept || a.IsError()
}

// Step is a snapshot of the parser state, together with the action taken in
// this state.
type Step struct {
	Stack  []string   // parse stack, bottom first
	Input  []string   // remaining input, including EOF
	Action Action     // transition taken
	Rule   *ll.Rule   // rule applied, for Apply and ErrorCycle
	Symbol string     // symbol on top of the stack
	Token  string     // current input token
	Span   gollo.Span // span of the current input token, if known
}

func (s Step) String() string {
	switch s.Action {
	case Accept:
		return "Accept"
	case Match:
		return "Match terminal: " + s.Token
	case Apply:
		return "Apply rule: " + s.Rule.String()
	case ErrorMismatch:
		return fmt.Sprintf("Error: Expected %s but got %s", s.Symbol, s.Token)
	case ErrorNoRule:
		return fmt.Sprintf("Error: No rule for (%s, %s)", s.Symbol, s.Token)
	case ErrorCycle:
		return fmt.Sprintf("Error: Cycle expanding %s at %s", s.Symbol, s.Token)
	}
	return s.Action.String()
}

// Trace is the ordered sequence of steps of a parse.
type Trace []Step

// Accepted is true if the trace ends with an Accept step.
func (t Trace) Accepted() bool {
	return len(t) > 0 && t[len(t)-1].Action == Accept
}

// Err returns the error a parse has been halted with, or nil.
// Errors are of type *MismatchError, *NoRuleError or *CycleError.
func (t Trace) Err() error {
	if len(t) == 0 {
		return nil
	}
	s := t[len(t)-1]
	switch s.Action {
	case ErrorMismatch:
		return &MismatchError{Expected: s.Symbol, Got: s.Token, Span: s.Span}
	case ErrorNoRule:
		return &NoRuleError{NonTerminal: s.Symbol, Token: s.Token, Span: s.Span}
	case ErrorCycle:
		return &CycleError{NonTerminal: s.Symbol, Token: s.Token, Span: s.Span}
	}
	return nil
}

// --- Errors ----------------------------------------------------------------

// MismatchError is returned if a terminal on the stack does not match the
// current input token.
type MismatchError struct {
	Expected string
	Got      string
	Span     gollo.Span
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("syntax error at %v: expected %s but got %s", e.Span, e.Expected, e.Got)
}

// NoRuleError is returned if the parse table has no entry for a
// non-terminal on the stack and the current input token.
type NoRuleError struct {
	NonTerminal string
	Token       string
	Span        gollo.Span
}

func (e *NoRuleError) Error() string {
	return fmt.Sprintf("syntax error at %v: no rule for (%s, %s)", e.Span, e.NonTerminal, e.Token)
}

// CycleError is returned if expanding a non-terminal leads back to the same
// non-terminal without consuming input. This happens for left recursive
// grammars, where a conflicting table cell has been kept.
type CycleError struct {
	NonTerminal string
	Token       string
	Span        gollo.Span
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("parser stuck at %v: %s derives itself without consuming %s",
		e.Span, e.NonTerminal, e.Token)
}

// === Parser ================================================================

// Parser is an LL(1)-parser type. Create and initialize one with
// ll1.NewParser(...). A parser does not hold any state of a parse and may be
// used for any number of parses, even concurrently.
type Parser struct {
	Start string // symbol to derive, defaults to the start symbol of the grammar
	table *ll.Table
}

// NewParser creates an LL(1) parser for a parse table.
func NewParser(table *ll.Table) *Parser {
	return &Parser{
		Start: table.Grammar().Start(),
		table: table,
	}
}

// Parse is a convenience function which parses a sequence of terminals,
// deriving from non-terminal start. If start is empty, the start symbol of
// the grammar is used.
func Parse(table *ll.Table, start string, tokens []string) (Trace, bool) {
	p := NewParser(table)
	if start != "" {
		p.Start = start
	}
	return p.Parse(tokens)
}

// Parse runs the parser on a sequence of terminals. The end-of-input marker
// is appended by the parser. Parse returns the complete trace of the parse
// and true, if the input has been accepted.
func (p *Parser) Parse(tokens []string) (Trace, bool) {
	return p.Run(tokens).drain()
}

// ParseTokens runs the parser on a sequence of tokens, as delivered by a
// scanner. The parser looks at tok.Terminal() only; spans of tokens are
// preserved within the steps of the trace.
func (p *Parser) ParseTokens(tokens []gollo.Token) (Trace, bool) {
	return p.RunTokens(tokens).drain()
}

// Run prepares a Run for a sequence of terminals, without performing any
// step.
func (p *Parser) Run(tokens []string) *Run {
	input := make([]inputToken, len(tokens), len(tokens)+1)
	for i, t := range tokens {
		input[i] = inputToken{terminal: t, span: gollo.Span{uint64(i), uint64(i + 1)}}
	}
	return p.newRun(input)
}

// RunTokens prepares a Run for a sequence of tokens, without performing
// any step.
func (p *Parser) RunTokens(tokens []gollo.Token) *Run {
	input := make([]inputToken, len(tokens), len(tokens)+1)
	for i, t := range tokens {
		input[i] = inputToken{terminal: t.Terminal(), span: t.Span()}
	}
	return p.newRun(input)
}

func (p *Parser) newRun(input []inputToken) *Run {
	var end uint64
	if len(input) > 0 {
		end = input[len(input)-1].span.To()
	}
	input = append(input, inputToken{terminal: ll.EOF, span: gollo.Span{end, end}})
	r := &Run{
		table: p.table,
		start: p.Start,
		input: input,
		stack: arraystack.New(),
	}
	r.Reset()
	return r
}

// --- Run -------------------------------------------------------------------

// Run is a single parse in progress. Steps are computed lazily, one per call
// to Next. A Run is not safe for concurrent use, but different runs may share
// a parser.
type Run struct {
	table    *ll.Table
	start    string
	input    []inputToken
	pos      int               // input pointer
	stack    *arraystack.Stack // of grammar symbols
	trace    Trace
	done     bool
	expanded map[string]int // non-terminals expanded since the last match, with stack height
}

type inputToken struct {
	terminal string
	span     gollo.Span
}

// Reset restarts a run from the beginning. Steps already computed are
// discarded.
func (r *Run) Reset() {
	r.pos = 0
	r.stack.Clear()
	r.stack.Push(ll.EOF)
	r.stack.Push(r.start)
	r.trace = nil
	r.done = false
	r.expanded = make(map[string]int)
}

// Next performs the next transition of the parser. It returns false if the
// run has already reached a final step.
//
//    for run.Next() {
//        step := run.Step()
//        ...
//    }
//
func (r *Run) Next() bool {
	if r.done {
		return false
	}
	tos, _ := r.stack.Peek()
	top := tos.(string)
	cur := r.input[r.pos]
	step := r.snapshot(top, cur)
	g := r.table.Grammar()
	switch {
	case cur.terminal == ll.EOF && r.pos < len(r.input)-1:
		step.Action = ErrorMismatch // end marker within the input
	case top == ll.EOF && cur.terminal == ll.EOF:
		step.Action = Accept
	case !g.IsNonTerminal(top):
		if top != cur.terminal {
			step.Action = ErrorMismatch
			break
		}
		step.Action = Match
		r.stack.Pop()
		r.pos++
		r.expanded = make(map[string]int)
	default:
		rule, ok := r.table.Lookup(top, cur.terminal)
		if !ok {
			step.Action = ErrorNoRule
			break
		}
		step.Rule = rule
		height := r.stack.Size()
		if h, seen := r.expanded[top]; seen && h <= height {
			step.Action = ErrorCycle
			break
		}
		step.Action = Apply
		r.expanded[top] = height
		r.stack.Pop()
		r.forgetAbove(height)
		if !rule.IsEpsilon() {
			for _, sym := range reverse(rule.RHS()) {
				r.stack.Push(sym)
			}
		}
	}
	r.done = step.Action.IsFinal()
	r.trace = append(r.trace, step)
	if gconf.GetBool("gollo.trace-steps") {
		tracer().Debugf("%-30s  %-30s  %s", strings.Join(step.Stack, " "),
			strings.Join(step.Input, " "), step)
	}
	return true
}

// forgetAbove removes expansion records of non-terminals which have been
// placed above stack height h. Having popped the element at height h, the
// stack prefix they relied on is gone.
func (r *Run) forgetAbove(h int) {
	for A, height := range r.expanded {
		if height > h {
			delete(r.expanded, A)
		}
	}
}

// snapshot records the parser state, before any action is applied.
func (r *Run) snapshot(top string, cur inputToken) Step {
	vals := r.stack.Values() // top first
	stack := make([]string, len(vals))
	for i, v := range vals {
		stack[len(vals)-1-i] = v.(string)
	}
	input := make([]string, 0, len(r.input)-r.pos)
	for _, t := range r.input[r.pos:] {
		input = append(input, t.terminal)
	}
	return Step{
		Stack:  stack,
		Input:  input,
		Symbol: top,
		Token:  cur.terminal,
		Span:   cur.span,
	}
}

// Step returns the most recent step, or a zero step if Next has not been
// called yet.
func (r *Run) Step() Step {
	if len(r.trace) == 0 {
		return Step{}
	}
	return r.trace[len(r.trace)-1]
}

// Trace returns the steps performed so far.
func (r *Run) Trace() Trace {
	return append(Trace(nil), r.trace...)
}

// Done is true if the run has reached a final step.
func (r *Run) Done() bool {
	return r.done
}

// Accepted is true if the run has reached an Accept step.
func (r *Run) Accepted() bool {
	return r.trace.Accepted()
}

func (r *Run) drain() (Trace, bool) {
	for r.Next() {
	}
	if err := r.trace.Err(); err != nil {
		tracer().Infof("%v", err)
	}
	return r.Trace(), r.Accepted()
}

// --- Helpers ---------------------------------------------------------------

// reverse the symbols of a RHS of a rule
func reverse(syms []string) []string {
	r := append([]string(nil), syms...) // make copy first
	for i := len(r)/2 - 1; i >= 0; i-- {
		opp := len(r) - 1 - i
		r[i], r[opp] = r[opp], r[i]
	}
	return r
}
