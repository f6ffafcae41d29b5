package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/gollo/ll"
	"github.com/npillmayer/gollo/ll/source"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// We provide a simple expression grammar as a default for parsing
// experiments. It is the usual expression grammar with left recursion
// removed.
const exprGrammar = `
E -> T X
X -> + T X | ε
T -> F Y
Y -> * F Y | ε
F -> ( E ) | id
`

// main() starts an interactive CLI ("LLREPL"), where users may inspect
// the LL(1) analysis of a grammar and parse input strings. Every parse
// displays the steps of the LL(1) machine and the derivation tree.
func main() {
	// set up logging
	initDisplay()
	grammarFile := flag.String("grammar", "", "Grammar file (text or YAML)")
	format := flag.String("format", "", "Grammar format [text|yaml], default by file extension")
	lexer := flag.String("lexer", "fields", "Input lexer [fields|go|lexmachine]")
	patterns := patternFlag{}
	flag.Var(patterns, "pattern", "Regular expression for a terminal, as terminal=regex (repeatable)")
	maxPasses := flag.Int("max-passes", 0, "Bound for fixed-point iterations")
	traceSteps := flag.Bool("trace-steps", false, "Trace every parser step")
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flag.Parse()
	setupTracing(*tlevel)
	input := strings.TrimSpace(strings.Join(flag.Args(), " "))
	gconf.Initialize(newFlagConfig(*tlevel, *maxPasses, *traceSteps, input == ""))
	//
	// set up grammar and analysis
	g, err := loadGrammar(*grammarFile, *format)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	g.Dump() // only visible in debug mode
	intp, err := NewIntp(g, *lexer, patterns)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	if input != "" {
		tracer().Infof("Input argument is \"%s\"", input)
		if !intp.Parse(input) {
			os.Exit(1)
		}
		return
	}
	//
	// set up REPL
	pterm.Info.Println("Welcome to LLREPL") // colored welcome message
	repl, err := readline.New("llrepl> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	intp.repl = repl
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                         // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// setupTracing directs all tracers to a Go logger. The adapter is registered
// under key "go" for the global tracers created by gconf.
func setupTracing(level string) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracer().SetTraceLevel(traceLevel(level))
	tracer().Infof("Trace level is %s", level)
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}

// loadGrammar reads a grammar from a file. If no file is given, the
// expression grammar is used.
func loadGrammar(path, format string) (*ll.Grammar, error) {
	var g *ll.Grammar
	var diags []source.Diagnostic
	var err error
	switch {
	case path == "":
		g, diags, err = source.ReadString("Expr", exprGrammar)
	case format == "":
		g, diags, err = source.ReadFile(path)
	default:
		g, diags, err = readFormat(path, format)
	}
	for _, d := range diags {
		pterm.Error.Println(d.String())
	}
	if err == nil {
		tracer().Infof("%s", grammarHeader(g))
	}
	return g, err
}

func readFormat(path, format string) (*ll.Grammar, []source.Diagnostic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	switch strings.ToLower(format) {
	case "text":
		return source.Read(path, f)
	case "yaml", "yml":
		return source.ReadYAML(path, f)
	}
	return nil, nil, fmt.Errorf("unknown grammar format: %q", format)
}
