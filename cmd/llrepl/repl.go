package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/gollo"
	"github.com/npillmayer/gollo/ll"
	"github.com/npillmayer/gollo/ll/ll1"
	"github.com/npillmayer/gollo/ll/scanner"
	"github.com/npillmayer/gollo/ll/scanner/lexmach"
	"github.com/pterm/pterm"
)

// Default regular expressions for lexer 'lexmachine', used for terminals
// without a pattern given on the command line.
var defaultPatterns = map[string]string{
	"id":  `[a-zA-Z_][a-zA-Z0-9_]*`,
	"num": `[0-9]+`,
}

// errQuit signals the end of an interactive session.
var errQuit = errors.New("quit")

// Intp is our interpreter object
type Intp struct {
	GA        *ll.LLAnalysis
	table     *ll.Table
	conflicts []ll.Conflict
	parser    *ll1.Parser
	lexer     string
	lm        *lexmach.LMAdapter
	repl      *readline.Instance
	lastTrace ll1.Trace
}

// NewIntp analyses a grammar and prepares a lexer of the given kind.
func NewIntp(g *ll.Grammar, lexer string, patterns map[string]string) (*Intp, error) {
	ga, err := ll.Analysis(g)
	if err != nil {
		return nil, err
	}
	intp := &Intp{GA: ga, lexer: lexer}
	intp.table, intp.conflicts = ga.Table()
	intp.parser = ll1.NewParser(intp.table)
	switch lexer {
	case "fields", "go":
	case "lexmachine":
		pats := make(map[string]string, len(patterns))
		for t, p := range defaultPatterns {
			if g.IsTerminal(t) {
				pats[t] = p
			}
		}
		for t, p := range patterns {
			pats[t] = p
		}
		if intp.lm, err = lexmach.ForTerminals(g.Terminals(), pats); err != nil {
			return nil, fmt.Errorf("cannot create lexer: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown lexer: %q", lexer)
	}
	if len(intp.conflicts) > 0 {
		pterm.Error.Printf("grammar %s is not LL(1): %d conflicts\n", g.Name, len(intp.conflicts))
	}
	return intp, nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if err = intp.Eval(line); err == errQuit {
			break
		} else if err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	println("Good bye!")
}

// Eval executes a command, given on a line by itself. It returns errQuit
// for the quit command.
func (intp *Intp) Eval(line string) error {
	cmd, arg := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		cmd, arg = line[:i], strings.TrimSpace(line[i+1:])
	}
	tracer().Debugf("command %q, argument %q", cmd, arg)
	switch strings.ToLower(cmd) {
	case "help", "?":
		showHelp()
	case "grammar":
		showGrammar(intp.GA.Grammar())
	case "first", "1":
		showSets("FIRST sets", intp.GA.Grammar(), intp.GA.FirstSets())
	case "follow", "2":
		showSets("FOLLOW sets", intp.GA.Grammar(), intp.GA.FollowSets())
	case "table", "3":
		showTable(intp.table)
	case "parse", "4":
		if arg == "" {
			return errors.New("nothing to parse")
		}
		intp.Parse(arg)
	case "conflicts":
		showConflicts(intp.conflicts)
	case "tree":
		if len(intp.lastTrace) == 0 {
			return errors.New("no input parsed yet")
		}
		showTree(intp.lastTrace)
	case "html":
		return intp.exportTable(arg)
	case "quit", "exit", "5":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, try 'help'", cmd)
	}
	return nil
}

// Parse tokenizes and parses an input string, displays the parser steps
// and returns true if the input has been accepted.
func (intp *Intp) Parse(input string) bool {
	tokens, errs := intp.tokenize(input)
	for _, err := range errs {
		pterm.Error.Println(err.Error())
	}
	tracer().Infof("parsing %v", scanner.Terminals(tokens))
	trace, accepted := intp.parser.ParseTokens(tokens)
	intp.lastTrace = trace
	showSteps(trace)
	if accepted {
		pterm.Info.Println("Input accepted!")
		showTree(trace)
		return true
	}
	if err := trace.Err(); err != nil {
		pterm.Error.Println(err.Error())
	}
	pterm.Error.Println("Input rejected!")
	return false
}

// tokenize splits an input string into tokens, using the lexer selected on
// the command line. Scanner errors are collected and returned.
func (intp *Intp) tokenize(input string) ([]gollo.Token, []error) {
	var errs []error
	collect := func(e error) {
		errs = append(errs, e)
	}
	var t scanner.Tokenizer
	switch intp.lexer {
	case "go":
		g := intp.GA.Grammar()
		opts := []scanner.Option{
			scanner.SkipComments(true),
			scanner.UnifyStrings(true),
			scanner.Keywords(g.Terminals()...),
		}
		if g.IsTerminal("id") {
			opts = append(opts, scanner.Category(scanner.Ident, "id"))
		}
		if g.IsTerminal("num") {
			opts = append(opts, scanner.Category(scanner.Int, "num"), scanner.Category(scanner.Float, "num"))
		}
		if g.IsTerminal("string") {
			opts = append(opts, scanner.Category(scanner.String, "string"))
		}
		t = scanner.GoTokenizer(g.Name, strings.NewReader(input), opts...)
	case "lexmachine":
		lms, err := intp.lm.Scanner(input)
		if err != nil {
			return nil, []error{err}
		}
		t = lms
	default:
		t = scanner.Fields(input)
	}
	t.SetErrorHandler(collect)
	return scanner.Tokens(t), errs
}

func (intp *Intp) exportTable(path string) error {
	if path == "" {
		return errors.New("usage: html <file>")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	ll.TableAsHTML(intp.table, f)
	pterm.Info.Printf("table written to %s\n", path)
	return nil
}
