package symtab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AloisRautureau/pif/internal/symtab"
)

func TestInternFunctionIsIdempotent(t *testing.T) {
	table := symtab.New()

	a := table.InternFunction("att")
	b := table.InternFunction("att")
	c := table.InternFunction("senc")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, a.IsFunction())
}

func TestFreshVariableNeverRepeats(t *testing.T) {
	table := symtab.New()

	x := table.FreshVariable()
	y := table.FreshVariable()

	assert.True(t, x.IsVariable())
	assert.NotEqual(t, x, y)

	name, ok := table.NameOf(x)
	require.True(t, ok)
	assert.Equal(t, "VAR0", name)
}

func TestNameOfAndIDOfAreInverses(t *testing.T) {
	table := symtab.New()

	sym := table.InternFunction("pair")
	name, ok := table.NameOf(sym)
	require.True(t, ok)
	assert.Equal(t, "pair", name)

	resolved, ok := table.IDOf("pair")
	require.True(t, ok)
	assert.Equal(t, sym, resolved)

	_, ok = table.IDOf("does-not-exist")
	assert.False(t, ok)
}
