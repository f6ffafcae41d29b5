package ll

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// We use a small expression grammar without left recursion for testing.
//
//     E  ➞  T X
//     X  ➞  + T X  |  ε
//     T  ➞  F Y
//     Y  ➞  * F Y  |  ε
//     F  ➞  ( E )  |  id
//
func makeExprGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Expressions")
	b.LHS("E").N("T").N("X").End()
	b.LHS("X").T("+").N("T").N("X").End()
	b.LHS("X").Epsilon()
	b.LHS("T").N("F").N("Y").End()
	b.LHS("Y").T("*").N("F").N("Y").End()
	b.LHS("Y").Epsilon()
	b.LHS("F").T("(").N("E").T(")").End()
	b.LHS("F").T("id").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	return g
}

func TestIngestMergesRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.ll")
	defer teardown()
	//
	g, err := Ingest("G", []RawRule{
		{LHS: "S", Bodies: [][]string{{"A", "b"}}},
		{LHS: "A", Bodies: [][]string{{"a"}}},
		{LHS: "S", Bodies: [][]string{{"c"}, {"A"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "S", g.Start())
	assert.Equal(t, []string{"S", "A"}, g.NonTerminals())
	assert.Equal(t, 4, g.Size())
	rules := g.Rules("S")
	require.Len(t, rules, 3)
	assert.Equal(t, "S -> A b", rules[0].String())
	assert.Equal(t, "S -> c", rules[1].String())
	assert.Equal(t, 3, rules[2].Serial)
	assert.Equal(t, g.Rule(1), g.Rules("A")[0])
	assert.Nil(t, g.Rule(4))
}

func TestIngestClassifiesTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.ll")
	defer teardown()
	//
	g := makeExprGrammar(t)
	assert.Equal(t, []string{"(", ")", "*", "+", "id", EOF}, g.Terminals())
	assert.True(t, g.IsTerminal("id"))
	assert.True(t, g.IsTerminal(EOF))
	assert.False(t, g.IsTerminal(Epsilon))
	assert.False(t, g.IsTerminal("E"))
	assert.True(t, g.IsNonTerminal("Y"))
	assert.False(t, g.IsNonTerminal("+"))
}

func TestIngestErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.ll")
	defer teardown()
	//
	for i, test := range []struct {
		raw []RawRule
		err error
	}{
		{raw: nil, err: ErrEmptyGrammar},
		{raw: []RawRule{}, err: ErrEmptyGrammar},
		{raw: []RawRule{{LHS: "S"}}, err: ErrNoProductions},
		{raw: []RawRule{{LHS: "", Bodies: [][]string{{"a"}}}}, err: ErrIllegalSymbol},
		{raw: []RawRule{{LHS: Epsilon, Bodies: [][]string{{"a"}}}}, err: ErrIllegalSymbol},
		{raw: []RawRule{{LHS: EOF, Bodies: [][]string{{"a"}}}}, err: ErrIllegalSymbol},
		{raw: []RawRule{{LHS: "S", Bodies: [][]string{{"a", EOF}}}}, err: ErrIllegalSymbol},
	} {
		g, err := Ingest("G", test.raw)
		if !errors.Is(err, test.err) {
			t.Errorf("test %d: expected error %v, got %v", i, test.err, err)
		}
		if g != nil {
			t.Errorf("test %d: expected no grammar to be returned", i)
		}
	}
}

func TestIngestNormalizesEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.ll")
	defer teardown()
	//
	g, err := Ingest("G", []RawRule{
		{LHS: "S", Bodies: [][]string{{}, {"a", Epsilon, "b"}, {Epsilon, Epsilon}}},
	})
	require.NoError(t, err)
	rules := g.Rules("S")
	assert.True(t, rules[0].IsEpsilon())
	assert.Equal(t, []string{"a", "b"}, rules[1].RHS())
	assert.True(t, rules[2].IsEpsilon())
	assert.Equal(t, []string{"a", "b", EOF}, g.Terminals())
}

func TestBuilderRejectsTerminalAsHead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").T("a").End()
	b.LHS("a").T("b").End()
	_, err := b.Grammar()
	assert.Error(t, err)
}

func TestRuleRHSIsCopy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.ll")
	defer teardown()
	//
	g := makeExprGrammar(t)
	rhs := g.Rule(0).RHS()
	rhs[0] = "Z"
	assert.Equal(t, "E -> T X", g.Rule(0).String())
}

func TestEachNonTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.ll")
	defer teardown()
	//
	g := makeExprGrammar(t)
	var heads []string
	var counts []int
	g.EachNonTerminal(func(A string, rules []*Rule) {
		heads = append(heads, A)
		counts = append(counts, len(rules))
		for _, r := range rules {
			assert.Equal(t, A, r.LHS)
		}
	})
	assert.Equal(t, []string{"E", "X", "T", "Y", "F"}, heads)
	assert.Equal(t, []int{1, 2, 1, 2, 2}, counts)
}

func TestFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.ll")
	defer teardown()
	//
	g1 := makeExprGrammar(t)
	g2 := makeExprGrammar(t)
	g2.Name = "another name"
	fp := g1.Fingerprint()
	assert.NotEmpty(t, fp)
	assert.Equal(t, fp, g2.Fingerprint())
	b := NewGrammarBuilder("Expressions")
	b.LHS("E").T("id").End()
	g3, err := b.Grammar()
	require.NoError(t, err)
	assert.NotEqual(t, fp, g3.Fingerprint())
}
