/*
Package ll1 provides a table-driven LL(1)-parser. Clients have to use the
tools of package ll to prepare the parse table. The parser utilizes the
table to create a leftmost derivation for a given input.

Like its SLR sibling in spirit, this parser is intended for small to
moderate grammars, e.g. for configuration input, teaching or small
domain-specific languages. Clients are able to construct the parse table
from a grammar and use the parser directly, without a code-generation or
compile step.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := ll.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a").End()  // Var  -> Sign a
	b.LHS("Sign").T("+").End()           // Sign -> +
	b.LHS("Sign").T("-").End()           // Sign -> -
	b.LHS("Sign").Epsilon()              // Sign -> ε
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation.

	ga, err := ll.Analysis(g)
	table, conflicts := ga.Table()
	if len(conflicts) > 0 { ... }  // grammar is not LL(1)

Finally parse some input:

	p := ll1.NewParser(table)
	trace, accepted := p.Parse([]string{"+", "a"})

The parser records every transition of its stack machine as a Step. A
trace ends with either an Accept step or an error step; in the latter case
trace.Err() returns a typed error.

For step-wise inspection, clients may use a Run, which computes steps
lazily:

	run := p.Run([]string{"+", "a"})
	for run.Next() {
		fmt.Println(run.Step())
	}

Parse tables with conflicts may still be used; the first rule claiming a
cell wins. If a kept conflict leads the parser into a left recursion, the
run stops with ErrorCycle instead of looping forever.

Configuration

If configuration key "gollo.trace-steps" is set, every step is traced at
Debug level with key 'gollo.ll'.
___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll1

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gollo.ll'.
func tracer() tracing.Trace {
	return tracing.Select("gollo.ll")
}
