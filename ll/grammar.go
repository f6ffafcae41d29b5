package ll

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"golang.org/x/exp/slices"
)

// Reserved symbol names.
const (
	Epsilon = "ε" // the empty production
	EOF     = "$" // end of input
)

// Errors returned by grammar ingestion and analysis.
var (
	ErrEmptyGrammar   = errors.New("grammar has no productions")
	ErrNoProductions  = errors.New("non-terminal registered without productions")
	ErrIllegalSymbol  = errors.New("illegal symbol name")
	ErrNoConvergence  = errors.New("fixed-point iteration did not converge")
	errSymbolKindUsed = errors.New("symbol used as terminal and non-terminal")
)

// === Rules =================================================================

// Rule is a type for productions of a grammar.
//
//     LHS -> X1 … Xn
//
// The RHS of an epsilon-production consists of the single symbol Epsilon.
type Rule struct {
	Serial int    // ordinal no. of the rule in its grammar
	LHS    string // non-terminal to be expanded
	rhs    []string
}

// RHS returns a copy of the right hand side of a rule.
func (r *Rule) RHS() []string {
	return append([]string(nil), r.rhs...)
}

// IsEpsilon returns true for a rule LHS -> ε.
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 1 && r.rhs[0] == Epsilon
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.LHS, strings.Join(r.rhs, " "))
}

// === Grammar ===============================================================

// Grammar is a type for a normalized context-free grammar.
// Grammars are built once and are read-only thereafter.
type Grammar struct {
	Name         string
	nonterminals []string           // in order of first appearance as rule head
	rules        []*Rule            // all rules, index = serial
	byLHS        map[string][]*Rule // rules per non-terminal
	terminals    []string           // sorted, followed by EOF
	ntIndex      map[string]int
	tIndex       map[string]int
}

// RawRule is the input format for grammar ingestion: a non-terminal and a
// list of alternative right hand sides.
type RawRule struct {
	LHS    string
	Bodies [][]string
}

// Ingest creates a grammar from a list of raw rules. Rules for a repeated
// non-terminal are merged, the first non-terminal seen is the start symbol.
// Every symbol which never occurs as a rule head is a terminal.
//
// Empty bodies are normalized to [ε], and ε occuring within a longer
// body is dropped.
//
// Ingest returns ErrEmptyGrammar if raw does not contain any productions,
// ErrNoProductions if a raw rule has an empty body list and ErrIllegalSymbol
// for an empty or reserved rule head or an end-of-input marker within a body.
func Ingest(name string, raw []RawRule) (*Grammar, error) {
	g := &Grammar{
		Name:    name,
		byLHS:   make(map[string][]*Rule),
		ntIndex: make(map[string]int),
		tIndex:  make(map[string]int),
	}
	for _, r := range raw {
		if r.LHS == "" || r.LHS == Epsilon || r.LHS == EOF {
			return nil, fmt.Errorf("%w: rule head %q", ErrIllegalSymbol, r.LHS)
		}
		if len(r.Bodies) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoProductions, r.LHS)
		}
		if _, ok := g.ntIndex[r.LHS]; !ok {
			g.ntIndex[r.LHS] = len(g.nonterminals)
			g.nonterminals = append(g.nonterminals, r.LHS)
		}
		for _, body := range r.Bodies {
			rhs, err := normalize(body)
			if err != nil {
				return nil, fmt.Errorf("rule for %s: %w", r.LHS, err)
			}
			rule := &Rule{Serial: len(g.rules), LHS: r.LHS, rhs: rhs}
			g.rules = append(g.rules, rule)
			g.byLHS[r.LHS] = append(g.byLHS[r.LHS], rule)
		}
	}
	if len(g.rules) == 0 {
		return nil, fmt.Errorf("grammar %q: %w", name, ErrEmptyGrammar)
	}
	g.classifyTerminals()
	tracer().Debugf("grammar %q: %d non-terminals, %d terminals, %d rules",
		name, len(g.nonterminals), len(g.terminals), len(g.rules))
	return g, nil
}

func normalize(body []string) ([]string, error) {
	rhs := make([]string, 0, len(body))
	for _, sym := range body {
		switch sym {
		case "", Epsilon:
			continue
		case EOF:
			return nil, fmt.Errorf("%w: %q within right hand side", ErrIllegalSymbol, sym)
		}
		rhs = append(rhs, sym)
	}
	if len(rhs) == 0 {
		rhs = append(rhs, Epsilon)
	}
	return rhs, nil
}

// Every symbol within a RHS which is not a non-terminal is a terminal.
// Terminals are sorted and followed by the end-of-input marker.
func (g *Grammar) classifyTerminals() {
	seen := make(map[string]bool)
	for _, r := range g.rules {
		for _, sym := range r.rhs {
			if sym == Epsilon || seen[sym] || g.IsNonTerminal(sym) {
				continue
			}
			seen[sym] = true
			g.terminals = append(g.terminals, sym)
		}
	}
	slices.Sort(g.terminals)
	g.terminals = append(g.terminals, EOF)
	for i, t := range g.terminals {
		g.tIndex[t] = i
	}
}

// Start returns the start symbol of the grammar.
func (g *Grammar) Start() string {
	return g.nonterminals[0]
}

// NonTerminals returns the non-terminals of the grammar in order of their
// first appearance.
func (g *Grammar) NonTerminals() []string {
	return append([]string(nil), g.nonterminals...)
}

// Terminals returns the terminals of the grammar in sorted order, followed
// by the end-of-input marker.
func (g *Grammar) Terminals() []string {
	return append([]string(nil), g.terminals...)
}

// IsNonTerminal is true if sym is the head of at least one rule.
func (g *Grammar) IsNonTerminal(sym string) bool {
	_, ok := g.ntIndex[sym]
	return ok
}

// IsTerminal is true for every terminal of the grammar, including EOF.
func (g *Grammar) IsTerminal(sym string) bool {
	_, ok := g.tIndex[sym]
	return ok
}

// Rules returns all the rules for non-terminal A, in registration order.
func (g *Grammar) Rules(A string) []*Rule {
	return g.byLHS[A]
}

// Rule returns the rule with serial number n, or nil.
func (g *Grammar) Rule(n int) *Rule {
	if n < 0 || n >= len(g.rules) {
		return nil
	}
	return g.rules[n]
}

// Size returns the number of rules of the grammar.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// EachNonTerminal calls f for every non-terminal and its rules.
func (g *Grammar) EachNonTerminal(f func(A string, rules []*Rule)) {
	for _, A := range g.nonterminals {
		f(A, g.byLHS[A])
	}
}

// Dump is a debugging helper, listing all rules to the tracer.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------")
}

type grammarPrint struct {
	Rules [][]string
}

// Fingerprint returns a hash of the rules of a grammar. Grammars with the
// same rules in the same order have the same fingerprint, regardless of
// their names.
func (g *Grammar) Fingerprint() string {
	fp := grammarPrint{Rules: make([][]string, len(g.rules))}
	for i, r := range g.rules {
		fp.Rules[i] = append([]string{r.LHS}, r.rhs...)
	}
	h, err := structhash.Hash(fp, 1)
	if err != nil {
		tracer().Errorf("cannot compute fingerprint for grammar %q: %v", g.Name, err)
		return ""
	}
	return h
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is a builder type for grammars. Use it as
//
//    b := NewGrammarBuilder("My Grammar")
//    b.LHS("S").N("A").T("a").End()   // S -> A a
//    b.LHS("A").Epsilon()             // A -> ε
//    g, err := b.Grammar()
//
type GrammarBuilder struct {
	name      string
	rules     []RawRule
	terminals map[string]bool // symbols explicitly declared as terminals
}

// RuleBuilder collects the RHS of a single rule.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs string
	rhs []string
}

// NewGrammarBuilder creates a new builder for a grammar.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{
		name:      name,
		terminals: make(map[string]bool),
	}
}

// LHS starts a new rule for non-terminal s.
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	return &RuleBuilder{gb: gb, lhs: s}
}

// N appends a non-terminal to the RHS.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	rb.rhs = append(rb.rhs, s)
	return rb
}

// T appends a terminal to the RHS.
func (rb *RuleBuilder) T(s string) *RuleBuilder {
	rb.gb.terminals[s] = true
	rb.rhs = append(rb.rhs, s)
	return rb
}

// End finishes a rule.
func (rb *RuleBuilder) End() *GrammarBuilder {
	rb.gb.rules = append(rb.gb.rules, RawRule{LHS: rb.lhs, Bodies: [][]string{rb.rhs}})
	return rb.gb
}

// Epsilon finishes a rule as an epsilon-production. Symbols appended
// before are discarded.
func (rb *RuleBuilder) Epsilon() *GrammarBuilder {
	rb.rhs = []string{Epsilon}
	return rb.End()
}

// Grammar returns the grammar built so far.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	for _, r := range gb.rules {
		if gb.terminals[r.LHS] {
			return nil, fmt.Errorf("%w: %q", errSymbolKindUsed, r.LHS)
		}
	}
	return Ingest(gb.name, gb.rules)
}
