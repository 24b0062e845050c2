package resolution_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AloisRautureau/pif/internal/resolution"
	"github.com/AloisRautureau/pif/internal/symtab"
	"github.com/AloisRautureau/pif/internal/term"
)

// freshRule alpha-renames a hand-built clause the way rule insertion would,
// so that distinct test clauses never accidentally share a variable.
func freshRule(table *symtab.Table, c *term.Clause) *term.Clause {
	return c.Freshen(table.FreshVariable)
}

func TestQuerySelectSkipsBareAttackerVariable(t *testing.T) {
	table := symtab.New()
	att := table.InternFunction("att")
	pair := table.InternFunction("pair")
	x := table.FreshVariable()
	y := table.FreshVariable()

	// att(X) /\ att(Y) => att(pair(X,Y))
	clause := term.NewClause(
		[]*term.Atom{term.NewAtom(att, term.Var(x)), term.NewAtom(att, term.Var(y))},
		term.NewAtom(att, term.Fun(pair, term.Var(x), term.Var(y))),
	)

	sel := resolution.QuerySelect(att)(clause)
	assert.Equal(t, resolution.Conclusion, sel.Kind)
}

func TestQuerySelectPrefersConcretePremise(t *testing.T) {
	table := symtab.New()
	att := table.InternFunction("att")
	pair := table.InternFunction("pair")
	x := table.FreshVariable()
	y := table.FreshVariable()

	// att(pair(X,Y)) => att(X)
	clause := term.NewClause(
		[]*term.Atom{term.NewAtom(att, term.Fun(pair, term.Var(x), term.Var(y)))},
		term.NewAtom(att, term.Var(x)),
	)

	sel := resolution.QuerySelect(att)(clause)
	require.Equal(t, resolution.Premise, sel.Kind)
	assert.Equal(t, 0, sel.Index)
}

func TestResolvePairDecomposition(t *testing.T) {
	table := symtab.New()
	att := table.InternFunction("att")
	pair := table.InternFunction("pair")
	a := table.InternFunction("a")
	b := table.InternFunction("b")

	x := table.FreshVariable()
	y := table.FreshVariable()
	decompose := freshRule(table, term.NewClause(
		[]*term.Atom{term.NewAtom(att, term.Fun(pair, term.Var(x), term.Var(y)))},
		term.NewAtom(att, term.Var(x)),
	))

	factA := term.NewClause(nil, term.NewAtom(att, term.Fun(a)))
	factB := term.NewClause(nil, term.NewAtom(att, term.Fun(b)))
	factPair := freshRule(table, term.NewClause(nil, term.NewAtom(att, term.Fun(pair, term.Fun(a), term.Fun(b)))))
	_ = factA
	_ = factB

	r := resolution.New(att)

	resolvent, ok := r.Resolve(decompose, factPair)
	require.True(t, ok)
	assert.True(t, resolvent.IsFact())
	assert.True(t, resolvent.Conclusion.Equal(term.NewAtom(att, term.Fun(a))))
}

func TestResolveTwoPremisesSelectedNeverResolves(t *testing.T) {
	table := symtab.New()
	att := table.InternFunction("att")
	pair := table.InternFunction("pair")
	x := table.FreshVariable()
	y := table.FreshVariable()

	c1 := term.NewClause(
		[]*term.Atom{term.NewAtom(att, term.Fun(pair, term.Var(x), term.Var(y)))},
		term.NewAtom(att, term.Var(x)),
	)
	c2 := term.NewClause(
		[]*term.Atom{term.NewAtom(att, term.Fun(pair, term.Var(x), term.Var(y)))},
		term.NewAtom(att, term.Var(y)),
	)

	r := resolution.New(att)
	_, ok := r.Resolve(c1, c2)
	assert.False(t, ok)
}

func TestQueryKeepDropsUnconstrainedAttackerPremise(t *testing.T) {
	table := symtab.New()
	att := table.InternFunction("att")
	x := table.FreshVariable()

	keep := resolution.QueryKeep(att)

	premise := term.NewAtom(att, term.Var(x))
	conclusionWithoutX := term.NewAtom(att, term.Var(table.FreshVariable()))
	conclusionWithX := term.NewAtom(att, term.Var(x))

	assert.False(t, keep(premise, conclusionWithoutX))
	assert.True(t, keep(premise, conclusionWithX))
}
