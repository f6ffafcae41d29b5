package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/gollo/ll"
	"github.com/npillmayer/gollo/ll/ll1"
	"github.com/pterm/pterm"
)

func showHelp() {
	pterm.DefaultSection.Println("Commands")
	pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Command", "Short", "Description"},
		{"first", "1", "show FIRST sets"},
		{"follow", "2", "show FOLLOW sets"},
		{"table", "3", "show the LL(1) parse table"},
		{"parse <input>", "4 <input>", "parse an input string"},
		{"conflicts", "", "list conflicts of the parse table"},
		{"grammar", "", "list the rules of the grammar"},
		{"tree", "", "show the derivation tree of the last parse"},
		{"html <file>", "", "export the parse table as HTML"},
		{"quit", "5", "leave LLREPL"},
	}).Render()
}

func showGrammar(g *ll.Grammar) {
	pterm.DefaultSection.Println(grammarHeader(g))
	data := pterm.TableData{{"Non-Terminal", "Rules"}}
	g.EachNonTerminal(func(A string, rules []*ll.Rule) {
		alts := make([]string, len(rules))
		for i, r := range rules {
			alts[i] = strings.Join(r.RHS(), " ")
		}
		data = append(data, []string{A, strings.Join(alts, " | ")})
	})
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// grammarHeader names a grammar together with its fingerprint, which tells
// apart grammar files with equal names but different rules.
func grammarHeader(g *ll.Grammar) string {
	return fmt.Sprintf("Grammar %s, %d rules, fingerprint %s", g.Name, g.Size(), g.Fingerprint())
}

func showSets(title string, g *ll.Grammar, sets ll.SymbolSets) {
	pterm.DefaultSection.Println(title)
	data := pterm.TableData{{"Non-Terminal", "Set"}}
	for _, A := range g.NonTerminals() {
		data = append(data, []string{A, sets.Of(A).String()})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func showTable(t *ll.Table) {
	pterm.DefaultSection.Printf("LL(1) table, %d entries\n", t.Entries())
	rows := t.Rows()
	rows[0][0] = "Non-Terminal"
	pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(rows)).Render()
}

func showConflicts(conflicts []ll.Conflict) {
	if len(conflicts) == 0 {
		pterm.Info.Println("no conflicts, grammar is LL(1)")
		return
	}
	for _, c := range conflicts {
		pterm.Error.Println(c.String())
	}
}

func showSteps(trace ll1.Trace) {
	data := pterm.TableData{{"Stack", "Input", "Action"}}
	for _, step := range trace {
		data = append(data, []string{
			strings.Join(step.Stack, " "),
			strings.Join(step.Input, " "),
			step.String(),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func showTree(trace ll1.Trace) {
	list := derivation(trace)
	if len(list) == 0 {
		return
	}
	root := pterm.NewTreeFromLeveledList(list)
	pterm.DefaultTree.WithRoot(root).Render()
}

// derivation re-constructs the (partial) derivation tree of a parse from
// its trace. The LL(1) machine performs a leftmost derivation, therefore
// the steps of the trace visit the nodes of the tree in pre-order.
func derivation(trace ll1.Trace) pterm.LeveledList {
	var list pterm.LeveledList
	i := 0
	var expand func(level int)
	expand = func(level int) {
		if i >= len(trace) || trace[i].Action != ll1.Apply {
			return
		}
		step := trace[i]
		i++
		list = append(list, pterm.LeveledListItem{Level: level, Text: step.Symbol})
		if step.Rule.IsEpsilon() {
			list = append(list, pterm.LeveledListItem{Level: level + 1, Text: ll.Epsilon})
			return
		}
		for range step.Rule.RHS() {
			if i >= len(trace) {
				return
			}
			switch trace[i].Action {
			case ll1.Match:
				list = append(list, pterm.LeveledListItem{Level: level + 1, Text: trace[i].Token})
				i++
			case ll1.Apply:
				expand(level + 1)
			default:
				return
			}
		}
	}
	expand(0)
	return list
}
