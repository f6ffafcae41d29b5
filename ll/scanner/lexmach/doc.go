/*
Package lexmach provides an adapter to use the lexmachine scanner generator
with the LL(1) parser of package ll1.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine has to be initialized by providing keywords and regular expressions.
Package lexmach is very opinionated on how to do the setup of lexmachine.
Clients who need more liberty in how to create the scanner should use their
own wrapper code to fit lexmachine into the scanner.Tokenizer interface.

The most convenient way is to derive a lexer directly from the terminals of a
grammar. Terminals are literal strings, except for the ones given a regular
expression:

	LM, err := lexmach.ForTerminals(g.Terminals(), map[string]string{
		"id":  `[a-zA-Z_][a-zA-Z0-9_]*`,
		"num": `[0-9]+`,
	})

White space between tokens is skipped. Alternatively, clients provide their
own initialization:

	var literals []string       // The tokens representing literal strings
	var keywords []string       // The keyword tokens
	var tokenIds map[string]int // A map from the token names to their int IDs

	init := func(lexer *lexmachine.Lexer) {
		// initialize lexmachine with all the necessary regular expressions
		//
		// lexmach.Skip      is a pre-defined action which ignores the scanned match
		// lexmach.MakeToken is a pre-defined action which wraps a scanned match into a
		//                   gollo.Token
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)

Both will return an error if compiling the DFA failed.
A scanner is instantiated for each concrete input sequence.
The scanner implements the scanner.Tokenizer interface.

	scan, err := LM.Scanner("input string to tokenize")
	if err != nil {
		// do error handling
	}
	tokens := scanner.Tokens(scan)

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
