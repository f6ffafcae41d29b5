package ll

import (
	"fmt"

	"github.com/npillmayer/schuko/gconf"
)

// === FIRST and FOLLOW ======================================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 5.5 Building LL(1) Parse Tables

// FirstOfSequence computes FIRST(X1 … Xn) for a sequence of symbols, given
// the FIRST-sets of the non-terminals of g.
//
// The sequence is scanned from left to right. Scanning stops at the first
// terminal, at ε, or at a non-terminal which does not derive ε. If every
// symbol of the sequence is a nullable non-terminal, ε is included in
// the result. An empty sequence results in an empty set.
func FirstOfSequence(g *Grammar, seq []string, first SymbolSets) *SymbolSet {
	result := NewSymbolSet()
	for i, sym := range seq {
		if sym == Epsilon {
			result.add(Epsilon)
			break
		}
		if !g.IsNonTerminal(sym) {
			result.add(sym)
			break
		}
		F := first.Of(sym)
		result.union(F.without(Epsilon))
		if !F.Contains(Epsilon) {
			break
		}
		if i == len(seq)-1 {
			result.add(Epsilon)
		}
	}
	return result
}

// ComputeFirstSets computes FIRST(A) for every non-terminal A of g.
//
// All sets start empty. Every pass computes FIRST(RHS) for all rules, using
// the sets of the previous pass, and adds it to FIRST(LHS). Passes are
// repeated until no set grows any more.
func ComputeFirstSets(g *Grammar) (SymbolSets, error) {
	tracer().Debugf("=== FIRST sets =====================================")
	return fixpoint(g, "FIRST", emptySets(g.nonterminals), func(prev SymbolSets) SymbolSets {
		next := prev.clone()
		for _, A := range g.nonterminals {
			for _, r := range g.byLHS[A] {
				next[A].union(FirstOfSequence(g, r.rhs, prev))
			}
		}
		return next
	})
}

// ComputeFollowSets computes FOLLOW(A) for every non-terminal A of g.
// FOLLOW(S) of the start symbol S is initialized with EOF.
//
// For each occurence of a non-terminal B in a rule A -> α B β:
//
//     FIRST(β) \ {ε}  ⊆  FOLLOW(B)
//     FOLLOW(A)       ⊆  FOLLOW(B),   if ε ∈ FIRST(β) or β is empty
//
// Passes are repeated until no set grows any more.
func ComputeFollowSets(g *Grammar, first SymbolSets) (SymbolSets, error) {
	tracer().Debugf("=== FOLLOW sets ====================================")
	init := emptySets(g.nonterminals)
	init[g.Start()].add(EOF)
	return fixpoint(g, "FOLLOW", init, func(prev SymbolSets) SymbolSets {
		next := prev.clone()
		for _, A := range g.nonterminals {
			for _, r := range g.byLHS[A] {
				for i, B := range r.rhs {
					if !g.IsNonTerminal(B) {
						continue
					}
					beta := r.rhs[i+1:]
					fb := FirstOfSequence(g, beta, first)
					next[B].union(fb.without(Epsilon))
					if len(beta) == 0 || fb.Contains(Epsilon) {
						next[B].union(prev.Of(A))
					}
				}
			}
		}
		return next
	})
}

// fixpoint repeats pass until the resulting sets equal the input sets.
// Every pass adds at least one symbol to a set or terminates the loop, and
// sets are bounded by the grammar's alphabet. Exceeding the bound therefore
// indicates a bug.
func fixpoint(g *Grammar, what string, sets SymbolSets, pass func(SymbolSets) SymbolSets) (SymbolSets, error) {
	bound := maxPasses(g)
	for n := 1; n <= bound; n++ {
		next := pass(sets)
		if next.Equals(sets) {
			tracer().Debugf("%s sets converged after %d passes", what, n)
			return next, nil
		}
		sets = next
	}
	err := fmt.Errorf("%s sets for grammar %q after %d passes: %w", what, g.Name, bound, ErrNoConvergence)
	if gconf.GetBool("gollo.panic-on-no-convergence") {
		panic(err)
	}
	tracer().Errorf("%v", err)
	return nil, err
}

func maxPasses(g *Grammar) int {
	if n := gconf.GetInt("gollo.max-passes"); n > 0 {
		return n
	}
	return len(g.nonterminals)*(len(g.terminals)+1) + 2
}

// --- Analysis --------------------------------------------------------------

// LLAnalysis is an object for grammar analysis (computing FIRST- and
// FOLLOW-sets).
type LLAnalysis struct {
	g      *Grammar
	first  SymbolSets
	follow SymbolSets
}

// Analysis computes FIRST- and FOLLOW-sets for a grammar.
func Analysis(g *Grammar) (*LLAnalysis, error) {
	ga := &LLAnalysis{g: g}
	var err error
	if ga.first, err = ComputeFirstSets(g); err != nil {
		return nil, err
	}
	if ga.follow, err = ComputeFollowSets(g, ga.first); err != nil {
		return nil, err
	}
	return ga, nil
}

// Grammar returns the grammar this analyser operates on.
func (ga *LLAnalysis) Grammar() *Grammar {
	return ga.g
}

// First returns FIRST(A).
func (ga *LLAnalysis) First(A string) *SymbolSet {
	return ga.first.Of(A)
}

// Follow returns FOLLOW(A).
func (ga *LLAnalysis) Follow(A string) *SymbolSet {
	return ga.follow.Of(A)
}

// FirstOf returns FIRST(X1 … Xn).
func (ga *LLAnalysis) FirstOf(seq ...string) *SymbolSet {
	return FirstOfSequence(ga.g, seq, ga.first)
}

// FirstSets returns the FIRST-sets of all non-terminals.
func (ga *LLAnalysis) FirstSets() SymbolSets {
	return ga.first
}

// FollowSets returns the FOLLOW-sets of all non-terminals.
func (ga *LLAnalysis) FollowSets() SymbolSets {
	return ga.follow
}

// Table builds the LL(1) parse table for the analysed grammar.
func (ga *LLAnalysis) Table() (*Table, []Conflict) {
	return BuildTable(ga.g, ga.first, ga.follow)
}
