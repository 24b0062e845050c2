package unify_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AloisRautureau/pif/internal/symtab"
	"github.com/AloisRautureau/pif/internal/term"
	"github.com/AloisRautureau/pif/internal/unify"
)

func TestUnifyReflexive(t *testing.T) {
	table := symtab.New()
	x := table.FreshVariable()
	f := table.InternFunction("f")
	s := term.Fun(f, term.Var(x))

	g, err := unify.Unify(s, s)
	require.NoError(t, err)
	assert.Nil(t, g.Bindings().Lookup(x))
}

func TestUnifySoundness(t *testing.T) {
	table := symtab.New()
	x := table.FreshVariable()
	y := table.FreshVariable()
	pair := table.InternFunction("pair")
	a := table.InternFunction("a")

	s := term.Fun(pair, term.Var(x), term.Fun(a))
	u := term.Fun(pair, term.Fun(a), term.Var(y))

	g, err := unify.Unify(s, u)
	require.NoError(t, err)

	sub := g.Bindings()
	assert.True(t, s.Apply(sub).Equal(u.Apply(sub)))
}

func TestUnifyIdempotence(t *testing.T) {
	table := symtab.New()
	x := table.FreshVariable()
	y := table.FreshVariable()
	pair := table.InternFunction("pair")
	a := table.InternFunction("a")

	s := term.Fun(pair, term.Var(x), term.Fun(a))
	u := term.Fun(pair, term.Fun(a), term.Var(y))

	g, err := unify.Unify(s, u)
	require.NoError(t, err)

	sub := g.Bindings()
	once := s.Apply(sub)
	twice := once.Apply(sub)
	assert.True(t, once.Equal(twice))
}

func TestUnifyOccursCheckFails(t *testing.T) {
	table := symtab.New()
	x := table.FreshVariable()
	f := table.InternFunction("f")

	_, err := unify.Unify(term.Var(x), term.Fun(f, term.Var(x)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, unify.ErrOccursCheck))
	assert.True(t, errors.Is(err, unify.ErrFailed))
}

func TestUnifyArityMismatch(t *testing.T) {
	table := symtab.New()
	x := table.FreshVariable()
	y := table.FreshVariable()
	f := table.InternFunction("f")

	_, err := unify.Unify(
		term.Fun(f, term.Var(x)),
		term.Fun(f, term.Var(x), term.Var(y)),
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, unify.ErrArityMismatch))
}

func TestUnifyHeadMismatch(t *testing.T) {
	table := symtab.New()
	x := table.FreshVariable()
	f := table.InternFunction("f")
	gSym := table.InternFunction("g")

	_, err := unify.Unify(term.Fun(f, term.Var(x)), term.Fun(gSym, term.Var(x)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, unify.ErrHeadMismatch))
}

func TestUnifyMostGeneral(t *testing.T) {
	table := symtab.New()
	x := table.FreshVariable()
	pair := table.InternFunction("pair")
	a := table.InternFunction("a")
	b := table.InternFunction("b")

	// unify(pair(X, X), pair(a, a)) should bind X to a, the MGU; applying
	// any consistent ground substitution tau that also solves the
	// equation must already be consistent with the principal binding.
	s := term.Fun(pair, term.Var(x), term.Var(x))
	u := term.Fun(pair, term.Fun(a), term.Fun(a))

	g, err := unify.Unify(s, u)
	require.NoError(t, err)

	mgu := g.Bindings()
	assert.True(t, mgu.Lookup(x).Equal(term.Fun(a)))

	// A ground instance with a different binding for X (e.g. b) cannot
	// simultaneously solve the same equation, confirming a is forced.
	_, err = unify.Unify(term.Fun(pair, term.Fun(b), term.Fun(b)), u)
	require.Error(t, err) // pair(b, b) does not unify with pair(a, a)
	assert.False(t, term.Fun(b).Equal(term.Fun(a)))
}

func TestUnifyAtomsRequireSameHeadAndArity(t *testing.T) {
	table := symtab.New()
	att := table.InternFunction("att")
	x := table.FreshVariable()
	a := table.InternFunction("a")

	_, err := unify.UnifyAtoms(term.NewAtom(att, term.Var(x)), term.NewAtom(att, term.Fun(a)))
	require.NoError(t, err)
}
