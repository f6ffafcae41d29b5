/*
Package gollo is an LL(1) parsing toolbox.

GoLLo computes the static analyses needed to drive a table-based top-down
parser for a context-free grammar, and simulates parsing of input token
sequences with the resulting table. Package structure is as follows:

■ ll: Package ll implements the grammar model, FIRST- and FOLLOW-set analysis
and LL(1) parse table construction with conflict detection.

■ ll/ll1: Package ll1 implements a table-driven LL(1) parser which records a
step-by-step trace of every parse run.

■ ll/scanner: Package scanner turns raw input into sequences of terminals.

■ ll/source: Package source reads grammars from text and YAML files.

■ cmd/llrepl: An interactive tool to explore LL(1) grammars and parser runs.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gollo
