package ll

import (
	"fmt"
	"html"
	"io"

	"github.com/npillmayer/gollo/ll/sparse"
)

// === LL(1) Parse Table =====================================================

// Conflict reports a cell of a parse table which has been claimed by more
// than one rule. The grammar is not LL(1) if a table has conflicts.
type Conflict struct {
	NonTerminal string
	Terminal    string
	Kept        *Rule // first rule claiming the cell; stays in the table
	Competing   *Rule // rule which has been rejected
}

func (c Conflict) String() string {
	return fmt.Sprintf("conflict at (%s, %s): keeping [%s], rejecting [%s]",
		c.NonTerminal, c.Terminal, c.Kept, c.Competing)
}

// Table is an LL(1) parse table. Rows are indexed by non-terminals, columns
// by terminals (including EOF). A cell references at most one rule of the
// grammar.
//
// Tables are read-only after construction and may be shared between
// parsers.
type Table struct {
	g         *Grammar
	matrix    *sparse.IntMatrix
	conflicts []Conflict
}

// BuildTable constructs the LL(1) parse table for a grammar from its FIRST-
// and FOLLOW-sets.
//
// For every rule A -> α, table[A,a] is set to the rule for each terminal a in
// FIRST(α). If ε is in FIRST(α), table[A,b] is set to the rule for each b in
// FOLLOW(A).
//
// If a cell would be claimed by a second rule, the first rule stays in the
// table and a Conflict is reported. Conflicts are returned in the order of
// detection and are also available from the table.
func BuildTable(g *Grammar, first, follow SymbolSets) (*Table, []Conflict) {
	tracer().Debugf("=== build table ====================================")
	t := &Table{
		g:      g,
		matrix: sparse.NewIntMatrix(len(g.nonterminals), len(g.terminals), sparse.DefaultNullValue),
	}
	for _, A := range g.nonterminals {
		for _, r := range g.byLHS[A] {
			fr := FirstOfSequence(g, r.rhs, first)
			tracer().Debugf("FIRST(%s) = %v", r, fr)
			for _, a := range fr.Values() {
				if a != Epsilon {
					t.enter(A, a, r)
				}
			}
			if fr.Contains(Epsilon) {
				for _, b := range follow.Of(A).Values() {
					t.enter(A, b, r)
				}
			}
		}
	}
	tracer().Infof("LL(1) table for %q: %d x %d, %d entries, %d conflicts",
		g.Name, len(g.nonterminals), len(g.terminals), t.matrix.ValueCount(), len(t.conflicts))
	return t, t.Conflicts()
}

func (t *Table) enter(A, a string, r *Rule) {
	i, j, ok := t.position(A, a)
	if !ok {
		tracer().Errorf("cannot enter rule [%s] at (%s, %s): unknown symbol", r, A, a)
		return
	}
	old := t.matrix.Value(i, j)
	if old == t.matrix.NullValue() {
		tracer().Debugf("    M[%s, %s] = %s", A, a, r)
		t.matrix.Set(i, j, int32(r.Serial))
		return
	}
	if int(old) == r.Serial {
		return
	}
	for _, c := range t.conflicts {
		if c.NonTerminal == A && c.Terminal == a && c.Competing == r {
			return
		}
	}
	t.matrix.Add(i, j, int32(r.Serial))
	c := Conflict{NonTerminal: A, Terminal: a, Kept: t.g.rules[old], Competing: r}
	t.conflicts = append(t.conflicts, c)
	tracer().Infof("%s", c)
}

func (t *Table) position(A, a string) (int, int, bool) {
	i, ok1 := t.g.ntIndex[A]
	j, ok2 := t.g.tIndex[a]
	return i, j, ok1 && ok2
}

// Grammar returns the grammar a table has been built for.
func (t *Table) Grammar() *Grammar {
	return t.g
}

// Lookup returns the rule at table[A,a], if any.
func (t *Table) Lookup(A, a string) (*Rule, bool) {
	i, j, ok := t.position(A, a)
	if !ok {
		return nil, false
	}
	v := t.matrix.Value(i, j)
	if v == t.matrix.NullValue() {
		return nil, false
	}
	return t.g.rules[v], true
}

// IsConflict is true if table[A,a] has been claimed by more than one rule.
func (t *Table) IsConflict(A, a string) bool {
	i, j, ok := t.position(A, a)
	if !ok {
		return false
	}
	_, v2 := t.matrix.Values(i, j)
	return v2 != t.matrix.NullValue()
}

// Conflicts returns all conflicts detected during table construction.
func (t *Table) Conflicts() []Conflict {
	return append([]Conflict(nil), t.conflicts...)
}

// HasConflicts is true if at least one cell has been claimed by more than
// one rule, i.e. the grammar is not LL(1).
func (t *Table) HasConflicts() bool {
	return len(t.conflicts) > 0
}

// Entries returns the number of non-empty cells.
func (t *Table) Entries() int {
	return t.matrix.ValueCount()
}

// Rows returns a table as a matrix of strings, suitable for display.
// The first row contains the terminals, the first column the non-terminals.
// Conflicting cells are marked with a trailing '*'.
func (t *Table) Rows() [][]string {
	rows := make([][]string, len(t.g.nonterminals)+1)
	rows[0] = append([]string{""}, t.g.terminals...)
	for i, A := range t.g.nonterminals {
		rows[i+1] = make([]string, len(t.g.terminals)+1)
		rows[i+1][0] = A
	}
	t.matrix.Each(func(i, j int, a, b int32) {
		cell := t.g.rules[a].String()
		if b != t.matrix.NullValue() {
			cell += " *"
		}
		rows[i+1][j+1] = cell
	})
	return rows
}

// TableAsHTML exports an LL(1) table in HTML-format.
func TableAsHTML(t *Table, w io.Writer) {
	rows := t.Rows()
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("LL(1) table for %s, %d entries<p>", html.EscapeString(t.g.Name), t.Entries()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	for n, row := range rows {
		if n == 0 {
			io.WriteString(w, "<tr bgcolor=#cccccc>")
		} else {
			io.WriteString(w, "<tr>")
		}
		for _, cell := range row {
			if cell == "" {
				cell = "&nbsp;"
			} else {
				cell = html.EscapeString(cell)
			}
			io.WriteString(w, "<td>")
			io.WriteString(w, cell)
			io.WriteString(w, "</td>")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}
