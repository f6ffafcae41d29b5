/*
Package ll implements prerequisites for LL(1) parsing.
It computes the static analyses needed to drive a table-based top-down
parser for a context-free grammar.

Building a Grammar

Grammars are either ingested from a list of raw rules (see Ingest and
package ll/source), or specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Symbols are plain
strings; a symbol is a non-terminal if and only if it occurs as the head of
a rule. Grammars may contain epsilon-productions.

Example:

    b := ll.NewGrammarBuilder("G")
    b.LHS("E").N("T").N("X").End()          // E  ->  T X
    b.LHS("X").T("+").N("T").N("X").End()   // X  ->  + T X
    b.LHS("X").Epsilon()                    // X  ->  ε
    b.LHS("T").T("id").End()                // T  ->  id
    g, err := b.Grammar()

This results in the following trivial grammar:

   g.Dump()

   0: E -> T X
   1: X -> + T X
   2: X -> ε
   3: T -> id

The first rule head is the start symbol. The names "ε" and "$" are reserved
for the empty production and the end-of-input marker.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an analysis, which computes FIRST and FOLLOW sets
for the grammar. Both are computed as fixed points: passes over the grammar
are repeated until no set grows any more.

    ga, err := ll.Analysis(g)
    for _, A := range g.NonTerminals() {
        fmt.Printf("FIRST(%s) = %v\n", A, ga.First(A))
    }

    // Output:
    FIRST(E) = { id }
    FIRST(X) = { +, ε }
    FIRST(T) = { id }

Parser Construction

Using grammar analysis as input, the LL(1) parse table is constructed.
Cells of the table which would be claimed by more than one rule are
reported as conflicts. The first rule claiming a cell stays in the table.

    table, conflicts := ll.BuildTable(g, ga.FirstSets(), ga.FollowSets())
    if len(conflicts) > 0 { ... }  // grammar is not LL(1)

The table is then handed to a driver, see package ll/ll1.

Configuration

The fixed-point loops are bounded. Clients may override the bound by setting
configuration key "gollo.max-passes" (see package schuko/gconf). If
"gollo.panic-on-no-convergence" is set, exceeding the bound panics instead of
returning ErrNoConvergence.
___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gollo.ll'.
func tracer() tracing.Trace {
	return tracing.Select("gollo.ll")
}
