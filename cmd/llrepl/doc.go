/*
Command llrepl is an interactive command line tool to explore LL(1) grammars.
It reads a grammar, computes FIRST and FOLLOW sets and the LL(1) parse table,
and lets the user parse input strings step by step.

Usage:

    llrepl [flags] [input]

    -grammar file      grammar file in text or YAML format (default: an expression grammar)
    -format text|yaml  format of the grammar file, overriding the file extension
    -lexer kind        how to split input into terminals: fields, go or lexmachine
    -pattern t=regex   regular expression for terminal t (lexer 'lexmachine', repeatable)
    -max-passes n      bound for fixed-point iterations
    -trace-steps       trace every parser step
    -trace level       trace level (Debug, Info, Error)

If an input is given on the command line, it is parsed once and llrepl exits
with status 1 if the input is rejected. Otherwise llrepl starts an interactive
session. Type 'help' to list the commands.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gollo.repl'
func tracer() tracing.Trace {
	return tracing.Select("gollo.repl")
}
