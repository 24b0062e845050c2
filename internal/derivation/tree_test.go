package derivation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AloisRautureau/pif/internal/config"
	"github.com/AloisRautureau/pif/internal/derivation"
	"github.com/AloisRautureau/pif/internal/obslog"
	"github.com/AloisRautureau/pif/internal/saturate"
	"github.com/AloisRautureau/pif/internal/symtab"
	"github.com/AloisRautureau/pif/internal/term"
)

func TestBuildLeafHasNoChildren(t *testing.T) {
	table := symtab.New()
	term.SetSymbolNamer(table.Namer())
	att := table.InternFunction("att")
	a := table.InternFunction("a")
	fact := term.NewClause(nil, term.NewAtom(att, term.Fun(a)))

	parents := saturate.NewParentage()
	node := derivation.Build(parents, fact)

	assert.Empty(t, node.Children)
	assert.Equal(t, []*derivation.Node{node}, node.Leaves())
}

func TestBuildAndRenderTwoLeafTree(t *testing.T) {
	table := symtab.New()
	term.SetSymbolNamer(table.Namer())
	engine := saturate.New(table, obslog.Noop(), config.Default())

	att := table.InternFunction("att")
	senc := table.InternFunction("senc")
	m := table.InternFunction("m")
	k := table.InternFunction("k")

	x, y := term.Var(table.FreshVariable()), term.Var(table.FreshVariable())
	combine := term.NewClause(
		[]*term.Atom{term.NewAtom(att, x), term.NewAtom(att, y)},
		term.NewAtom(att, term.Fun(senc, x, y)),
	)
	x2, y2 := term.Var(table.FreshVariable()), term.Var(table.FreshVariable())
	decrypt := term.NewClause(
		[]*term.Atom{term.NewAtom(att, term.Fun(senc, x2, y2)), term.NewAtom(att, y2)},
		term.NewAtom(att, x2),
	)
	factK := term.NewClause(nil, term.NewAtom(att, term.Fun(k)))
	factCt := term.NewClause(nil, term.NewAtom(att, term.Fun(senc, term.Fun(m), term.Fun(k))))

	engine.Load([]*term.Clause{combine, decrypt, factK, factCt})

	derived, goal := engine.Query(term.NewAtom(att, term.Fun(m)))
	require.True(t, derived)

	tree := derivation.Build(engine.Parents, goal)
	require.Len(t, tree.Children, 2)

	leaves := tree.Leaves()
	assert.Len(t, leaves, 2)

	rendered := derivation.RenderString(tree)
	assert.True(t, strings.Contains(rendered, "att(k)"))
	assert.True(t, strings.Contains(rendered, "att(senc(m, k))"))
}

func TestBuildGuardsAgainstSelfParentCycle(t *testing.T) {
	table := symtab.New()
	term.SetSymbolNamer(table.Namer())
	att := table.InternFunction("att")
	a := table.InternFunction("a")
	self := term.NewClause(nil, term.NewAtom(att, term.Fun(a)))

	parents := saturate.NewParentage()
	parents.RecordIfAbsent(self, saturate.ParentRecord{Parent1: self, Parent2: self})

	assert.NotPanics(t, func() {
		node := derivation.Build(parents, self)
		assert.Empty(t, node.Children[0].Children)
	})
}
