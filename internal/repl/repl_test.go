package repl_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AloisRautureau/pif/internal/config"
	"github.com/AloisRautureau/pif/internal/obslog"
	"github.com/AloisRautureau/pif/internal/repl"
	"github.com/AloisRautureau/pif/internal/saturate"
	"github.com/AloisRautureau/pif/internal/symtab"
	"github.com/AloisRautureau/pif/internal/term"
)

const program = `
att(X) /\ att(Y) => att(pair(X,Y)).
att(pair(X,Y)) => att(X).
att(pair(X,Y)) => att(Y).
att(a).
att(b).
`

func newSession(t *testing.T, input string) (*repl.REPL, *strings.Builder) {
	t.Helper()
	table := symtab.New()
	term.SetSymbolNamer(table.Namer())
	engine := saturate.New(table, obslog.Noop(), config.Default())
	var out strings.Builder
	session := repl.New(engine, obslog.Noop(), strings.NewReader(input), &out)
	return session, &out
}

func readFileFake(contents string) func(string) (string, error) {
	return func(path string) (string, error) { return contents, nil }
}

func TestLoadThenQueryDerivable(t *testing.T) {
	session, out := newSession(t, "load rules.pif\nquery att(pair(a, b)).\nquit\n")
	err := session.Run(readFileFake(program))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "derivable: att(pair(a, b))")
}

func TestQueryNotDerivableReportsSaturated(t *testing.T) {
	session, out := newSession(t, "load rules.pif\nquery att(c).\nquit\n")
	err := session.Run(readFileFake(program))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "saturated")
}

func TestRulesListsLoadedClauses(t *testing.T) {
	session, out := newSession(t, "load rules.pif\nrules\nquit\n")
	err := session.Run(readFileFake(program))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "att(a)")
	assert.Contains(t, out.String(), "att(b)")
}

func TestUnknownCommandDoesNotStopTheLoop(t *testing.T) {
	session, out := newSession(t, "bogus\nquit\n")
	err := session.Run(readFileFake(program))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "unknown command")
}

func TestDerivationWithNoPriorQueryRendersWholeSet(t *testing.T) {
	session, out := newSession(t, "load rules.pif\nderivation\nquit\n")
	err := session.Run(readFileFake(program))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "att(a)")
}

func TestEmptyInputExitsCleanly(t *testing.T) {
	session, _ := newSession(t, "")
	err := session.Run(readFileFake(program))
	require.NoError(t, err)
}
