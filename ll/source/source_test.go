package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/gollo/ll"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exprText = `
# expression grammar without left recursion
E -> T X
X -> + T X | ε
T -> F Y
Y -> * F Y | ε
F -> ( E ) | id
`

func TestReadText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.source")
	defer teardown()
	//
	g, diags, err := ReadString("Expr", exprText)
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, "E", g.Start())
	assert.Equal(t, []string{"E", "X", "T", "Y", "F"}, g.NonTerminals())
	assert.Equal(t, 8, g.Size())
	assert.True(t, g.Rules("X")[1].IsEpsilon())
	assert.Equal(t, "F -> ( E )", g.Rules("F")[0].String())
	assert.Equal(t, []string{"(", ")", "*", "+", "id", ll.EOF}, g.Terminals())
}

func TestReadTextSkipsMalformedLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.source")
	defer teardown()
	//
	g, diags, err := ReadString("G", "S -> A b\nthis is not a rule\n -> x\nA -> a |\nS -> c\n")
	require.NoError(t, err)
	require.Len(t, diags, 2)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, "this is not a rule", diags[0].Text)
	assert.Equal(t, 3, diags[1].Line)
	assert.Contains(t, diags[0].String(), "line 2")
	assert.Equal(t, []string{"S", "A"}, g.NonTerminals())
	rules := g.Rules("S")
	require.Len(t, rules, 2)
	assert.Equal(t, "S -> c", rules[1].String())
	assert.True(t, g.Rules("A")[1].IsEpsilon(), "empty alternative should be ε")
}

func TestReadEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.source")
	defer teardown()
	//
	for _, text := range []string{"", "# only a comment\n\n", "no arrows here"} {
		g, _, err := ReadString("G", text)
		assert.Nil(t, g)
		assert.True(t, errors.Is(err, ll.ErrEmptyGrammar), "text %q", text)
	}
}

const exprYAML = `
E: T X
X: [ "+ T X", "ε" ]
T: F Y
Y:
  - "* F Y"
  - ""
F: ( E ) | id
`

func TestReadYAML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.source")
	defer teardown()
	//
	g, diags, err := ReadYAML("Expr", strings.NewReader(exprYAML))
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, []string{"E", "X", "T", "Y", "F"}, g.NonTerminals())
	assert.Equal(t, 8, g.Size())
	assert.True(t, g.Rules("Y")[1].IsEpsilon())
	g2, _, err := ReadString("Expr", exprText)
	require.NoError(t, err)
	assert.Equal(t, g2.Fingerprint(), g.Fingerprint())
}

func TestReadYAMLDiagnostics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.source")
	defer teardown()
	//
	src := "S: A b\nA: { x: y }\nB: [ [a] ]\nC: c\n"
	g, diags, err := ReadYAML("G", strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, diags, 2)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, 3, diags[1].Line)
	assert.Equal(t, []string{"S", "C"}, g.NonTerminals())
	//
	_, _, err = ReadYAML("G", strings.NewReader("- a\n- b\n"))
	assert.True(t, errors.Is(err, ErrFormat))
	_, _, err = ReadYAML("G", strings.NewReader("S: [a\n"))
	assert.True(t, errors.Is(err, ErrFormat))
	_, _, err = ReadYAML("G", strings.NewReader(""))
	assert.True(t, errors.Is(err, ll.ErrEmptyGrammar))
}

func TestReadFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.source")
	defer teardown()
	//
	dir := t.TempDir()
	txt := filepath.Join(dir, "expr.grammar")
	yml := filepath.Join(dir, "expr.yaml")
	require.NoError(t, os.WriteFile(txt, []byte(exprText), 0644))
	require.NoError(t, os.WriteFile(yml, []byte(exprYAML), 0644))
	g1, _, err := ReadFile(txt)
	require.NoError(t, err)
	assert.Equal(t, "expr", g1.Name)
	g2, _, err := ReadFile(yml)
	require.NoError(t, err)
	assert.Equal(t, g1.Fingerprint(), g2.Fingerprint())
	_, _, err = ReadFile(filepath.Join(dir, "missing.grammar"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
