package ll

import (
	"errors"
	"fmt"
	"testing"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstSetsExpr(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.ll")
	defer teardown()
	//
	g := makeExprGrammar(t)
	tracer().SetTraceLevel(tracing.LevelDebug)
	first, err := ComputeFirstSets(g)
	require.NoError(t, err)
	for A, expected := range map[string][]string{
		"E": {"(", "id"},
		"T": {"(", "id"},
		"F": {"(", "id"},
		"X": {"+", Epsilon},
		"Y": {"*", Epsilon},
	} {
		assert.Equal(t, expected, first.Of(A).Values(), "FIRST(%s)", A)
	}
	assert.True(t, first.Of("T").Equals(first.Of("F")))
}

func TestFollowSetsExpr(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.ll")
	defer teardown()
	//
	g := makeExprGrammar(t)
	ga, err := Analysis(g)
	require.NoError(t, err)
	for A, expected := range map[string][]string{
		"E": {EOF, ")"},
		"X": {EOF, ")"},
		"T": {EOF, ")", "+"},
		"Y": {EOF, ")", "+"},
		"F": {EOF, ")", "*", "+"},
	} {
		assert.Equal(t, expected, ga.Follow(A).Values(), "FOLLOW(%s)", A)
		assert.False(t, ga.Follow(A).Contains(Epsilon), "FOLLOW(%s) contains ε", A)
	}
	assert.True(t, ga.Follow("X").Equals(ga.Follow("E")))
	assert.Equal(t, "{ $, ) }", ga.Follow("E").String())
}

func TestFirstOfSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.ll")
	defer teardown()
	//
	g := makeExprGrammar(t)
	ga, err := Analysis(g)
	require.NoError(t, err)
	assert.True(t, ga.FirstOf().Empty(), "FIRST of empty sequence should be empty")
	assert.Equal(t, []string{Epsilon}, ga.FirstOf(Epsilon).Values())
	assert.Equal(t, []string{"*", "+", Epsilon}, ga.FirstOf("Y", "X").Values())
	assert.Equal(t, []string{")", "*", "+"}, ga.FirstOf("Y", "X", ")").Values())
	assert.Equal(t, []string{"+"}, ga.FirstOf("+", "Y").Values())
	assert.Equal(t, []string{"(", "id"}, ga.FirstOf("T", "X").Values())
}

func TestFirstSetsAreFixedPoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.ll")
	defer teardown()
	//
	for _, g := range testGrammars(t) {
		first1, err := ComputeFirstSets(g)
		require.NoError(t, err)
		first2, err := ComputeFirstSets(g)
		require.NoError(t, err)
		assert.True(t, first1.Equals(first2), "grammar %s: FIRST sets differ between runs", g.Name)
		// every rule contributes to FIRST(LHS)
		for _, A := range g.NonTerminals() {
			for _, r := range g.Rules(A) {
				fr := FirstOfSequence(g, r.rhs, first1)
				assert.True(t, fr.SubsetOf(first1.Of(A)), "grammar %s: FIRST(%s) ⊄ FIRST(%s)", g.Name, r, A)
			}
		}
	}
}

func TestFollowOfStartContainsEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.ll")
	defer teardown()
	//
	for _, g := range testGrammars(t) {
		ga, err := Analysis(g)
		require.NoError(t, err)
		assert.True(t, ga.Follow(g.Start()).Contains(EOF), "grammar %s", g.Name)
	}
}

func TestFollowThroughNullableSuffix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("Nullable")
	b.LHS("S").N("A").N("B").N("C").T("d").End() // S -> A B C d
	b.LHS("A").T("a").End()                      // A -> a
	b.LHS("B").T("b").End()                      // B -> b
	b.LHS("B").Epsilon()                         // B -> ε
	b.LHS("C").T("c").End()                      // C -> c
	b.LHS("C").Epsilon()                         // C -> ε
	g, err := b.Grammar()
	require.NoError(t, err)
	ga, err := Analysis(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "d"}, ga.Follow("A").Values())
	assert.Equal(t, []string{"c", "d"}, ga.Follow("B").Values())
	assert.Equal(t, []string{"d"}, ga.Follow("C").Values())
	assert.Equal(t, []string{EOF}, ga.Follow("S").Values())
	assert.Equal(t, []string{"a"}, ga.First("S").Values())
}

func TestFixpointIsBounded(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.ll")
	defer teardown()
	//
	g := makeExprGrammar(t)
	n := 0
	_, err := fixpoint(g, "TEST", emptySets(g.nonterminals), func(prev SymbolSets) SymbolSets {
		next := prev.clone()
		n++
		next["E"].add(fmt.Sprintf("t%d", n)) // grows forever
		return next
	})
	assert.True(t, errors.Is(err, ErrNoConvergence))
	assert.Equal(t, maxPasses(g), n)
}

func TestFixpointBoundFromConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gollo.ll")
	defer teardown()
	//
	gconf.Initialize(testconfig.Conf{"gollo.max-passes": "1"})
	defer gconf.Initialize(testconfig.Conf{})
	g := makeExprGrammar(t)
	assert.Equal(t, 1, maxPasses(g))
	_, err := ComputeFirstSets(g)
	assert.True(t, errors.Is(err, ErrNoConvergence))
	_, err = Analysis(g)
	assert.True(t, errors.Is(err, ErrNoConvergence))
	//
	gconf.Initialize(testconfig.Conf{
		"gollo.max-passes":              "1",
		"gollo.panic-on-no-convergence": "true",
	})
	assert.Panics(t, func() { ComputeFirstSets(g) })
}

// --- Helpers ---------------------------------------------------------------

func testGrammars(t *testing.T) []*Grammar {
	gs := []*Grammar{makeExprGrammar(t)}
	b := NewGrammarBuilder("Ambiguous")
	b.LHS("S").T("a").End()
	b.LHS("S").T("a").T("b").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	gs = append(gs, g)
	b = NewGrammarBuilder("LeftRecursive")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").T("id").End()
	g, err = b.Grammar()
	require.NoError(t, err)
	gs = append(gs, g)
	b = NewGrammarBuilder("Nullable")
	b.LHS("S").N("A").N("A").End()
	b.LHS("A").T("a").N("A").End()
	b.LHS("A").Epsilon()
	g, err = b.Grammar()
	require.NoError(t, err)
	return append(gs, g)
}
