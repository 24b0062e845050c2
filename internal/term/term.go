// Package term defines the immutable term/atom/clause trees the engine
// reasons over, plus the operations spec.md requires on them:
// substitution application, the occurs-check, and alpha-freshening.
package term

import (
	"sort"
	"strings"

	"github.com/AloisRautureau/pif/internal/symtab"
)

// Term is a finite tree: either a bare Var or a Fun applied to zero or more
// argument terms. A Fun with no arguments denotes a constant. Terms are
// immutable once constructed; every transformation below returns a new
// tree rather than mutating in place.
type Term struct {
	sym  symtab.Symbol
	args []*Term // nil for a Var
}

// Var constructs a variable term.
func Var(sym symtab.Symbol) *Term {
	return &Term{sym: sym}
}

// Fun constructs a function term. args may be empty (a constant).
func Fun(sym symtab.Symbol, args ...*Term) *Term {
	return &Term{sym: sym, args: args}
}

// Symbol returns the term's head symbol (the variable's own symbol, for a
// Var).
func (t *Term) Symbol() symtab.Symbol { return t.sym }

// Args returns the term's arguments. Nil for a Var, and nil or empty for a
// zero-arity constant; callers should use IsVar to distinguish the two.
func (t *Term) Args() []*Term { return t.args }

// IsVar reports whether t is a bare variable.
func (t *Term) IsVar() bool { return t.sym.IsVariable() }

// Arity returns len(t.Args()).
func (t *Term) Arity() int { return len(t.args) }

// Equal reports whether t and other are the identical tree: same symbols
// throughout, same shape. This is strict structural equality, not
// unifiability.
func (t *Term) Equal(other *Term) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if t.sym != other.sym || len(t.args) != len(other.args) {
		return false
	}
	for i, a := range t.args {
		if !a.Equal(other.args[i]) {
			return false
		}
	}
	return true
}

// Occurs reports whether variable v appears anywhere within t. Traversal is
// iterative with an explicit stack so that deeply nested adversarial terms
// don't blow the Go call stack.
func (t *Term) Occurs(v symtab.Symbol) bool {
	stack := []*Term{t}
	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]

		if cur.IsVar() {
			if cur.sym == v {
				return true
			}
			continue
		}
		stack = append(stack, cur.args...)
	}
	return false
}

// Freshen walks t and replaces every variable symbol with a fresh one
// minted by gen, threading table so repeated occurrences of the same
// source variable map to the same fresh variable. Function symbols are
// left untouched. table may be shared across an entire clause (all of its
// premises plus its conclusion) so that the same source variable refreshens
// consistently clause-wide; pass a fresh table per clause to get
// per-clause alpha-renaming.
func (t *Term) Freshen(table map[symtab.Symbol]symtab.Symbol, gen func() symtab.Symbol) *Term {
	if t.IsVar() {
		fresh, ok := table[t.sym]
		if !ok {
			fresh = gen()
			table[t.sym] = fresh
		}
		return Var(fresh)
	}
	if len(t.args) == 0 {
		return t
	}
	newArgs := make([]*Term, len(t.args))
	for i, a := range t.args {
		newArgs[i] = a.Freshen(table, gen)
	}
	return Fun(t.sym, newArgs...)
}

// Substitution maps variable symbols to their bound terms.
type Substitution struct {
	bindings map[symtab.Symbol]*Term
}

// NewSubstitution wraps a variable->term map as a Substitution.
func NewSubstitution(bindings map[symtab.Symbol]*Term) *Substitution {
	if bindings == nil {
		bindings = map[symtab.Symbol]*Term{}
	}
	return &Substitution{bindings: bindings}
}

// Lookup returns the term bound to v, or nil if v is unbound.
func (s *Substitution) Lookup(v symtab.Symbol) *Term {
	if s == nil {
		return nil
	}
	return s.bindings[v]
}

// Apply returns t with every free variable replaced by its binding in s,
// recursively chasing chained bindings. Unbound variables are left as-is.
// Clause terms produced by this engine's own rule syntax are shallow
// enough that native recursion is the right tool here, unlike Occurs,
// which must also cope with adversarial, attacker-constructed terms
// during unification.
func (t *Term) Apply(s *Substitution) *Term {
	if t.IsVar() {
		if bound := s.Lookup(t.sym); bound != nil {
			return bound.Apply(s)
		}
		return t
	}
	if len(t.args) == 0 {
		return t
	}
	newArgs := make([]*Term, len(t.args))
	for i, a := range t.args {
		newArgs[i] = a.Apply(s)
	}
	return Fun(t.sym, newArgs...)
}

// String renders t the way the original pif surface syntax would: a bare
// name for a variable or a nullary constant, "f(a, b)" otherwise.
func (t *Term) String() string {
	var b strings.Builder
	writeTerm(&b, t)
	return b.String()
}

func writeTerm(b *strings.Builder, t *Term) {
	b.WriteString(symbolText(t.sym))
	if len(t.args) == 0 {
		return
	}
	b.WriteByte('(')
	for i, a := range t.args {
		if i > 0 {
			b.WriteString(", ")
		}
		writeTerm(b, a)
	}
	b.WriteByte(')')
}

// symbolText is overridden by the owning package at process start via
// SetSymbolNamer so that String() can print source names instead of
// internal ids; it defaults to the symbol's own (debug) String form.
var symbolText = func(sym symtab.Symbol) string { return sym.String() }

// SetSymbolNamer installs the function used to render a symbol's surface
// name in Term/Atom/Clause String() output. Call it once with a
// *symtab.Table-backed lookup before printing anything user-facing.
func SetSymbolNamer(namer func(symtab.Symbol) string) {
	symbolText = namer
}

// Atom is a Fun restricted to top level: a predicate symbol applied to a
// (possibly empty) argument list. It is the shape premises and conclusions
// of a clause must take.
type Atom struct {
	Sym  symtab.Symbol
	Args []*Term
}

// NewAtom builds an atom from a predicate symbol and its arguments.
func NewAtom(sym symtab.Symbol, args ...*Term) *Atom {
	return &Atom{Sym: sym, Args: args}
}

// AsTerm embeds the atom as a Fun term at the injection spec.md describes.
func (a *Atom) AsTerm() *Term {
	return Fun(a.Sym, a.Args...)
}

// AtomFromTerm embeds a term back into an atom, succeeding iff t is a Fun
// (as opposed to a bare Var).
func AtomFromTerm(t *Term) (*Atom, bool) {
	if t.IsVar() {
		return nil, false
	}
	return &Atom{Sym: t.sym, Args: t.args}, true
}

// Equal reports strict structural equality between two atoms.
func (a *Atom) Equal(other *Atom) bool {
	return a.AsTerm().Equal(other.AsTerm())
}

// Occurs reports whether v appears anywhere in a's arguments.
func (a *Atom) Occurs(v symtab.Symbol) bool {
	return a.AsTerm().Occurs(v)
}

// Apply substitutes every argument of a through s.
func (a *Atom) Apply(s *Substitution) *Atom {
	t := a.AsTerm().Apply(s)
	applied, _ := AtomFromTerm(t)
	return applied
}

// Freshen alpha-renames every variable in a through table, minting fresh
// ids via gen.
func (a *Atom) Freshen(table map[symtab.Symbol]symtab.Symbol, gen func() symtab.Symbol) *Atom {
	t := a.AsTerm().Freshen(table, gen)
	freshened, _ := AtomFromTerm(t)
	return freshened
}

func (a *Atom) String() string { return a.AsTerm().String() }

// key is a canonical string used both to detect exact-duplicate atoms and
// to impose the total order clauses need to canonicalize their premise
// multiset (see Clause.Key).
func (a *Atom) key() string { return a.AsTerm().String() }

// Clause is a Horn clause: premises /\ ... => conclusion. A Clause with no
// premises is a fact.
type Clause struct {
	Premises   []*Atom
	Conclusion *Atom
}

// NewClause builds a clause from its premises and conclusion.
func NewClause(premises []*Atom, conclusion *Atom) *Clause {
	return &Clause{Premises: premises, Conclusion: conclusion}
}

// IsFact reports whether c has no premises.
func (c *Clause) IsFact() bool { return len(c.Premises) == 0 }

// Apply substitutes every atom of c through s.
func (c *Clause) Apply(s *Substitution) *Clause {
	premises := make([]*Atom, len(c.Premises))
	for i, p := range c.Premises {
		premises[i] = p.Apply(s)
	}
	return &Clause{Premises: premises, Conclusion: c.Conclusion.Apply(s)}
}

// Freshen alpha-renames every variable occurring in c (across premises and
// conclusion alike) to a fresh id, using a single per-clause table so a
// variable repeated across premises still refers to the same fresh
// variable afterwards. A directly constructed rule goes through this once
// before it is loaded (parsed rules are renamed by internal/pifsyntax
// instead; Engine.Load itself never freshens) to keep the "two distinct
// rules share no variable" invariant.
func (c *Clause) Freshen(gen func() symtab.Symbol) *Clause {
	table := make(map[symtab.Symbol]symtab.Symbol)
	premises := make([]*Atom, len(c.Premises))
	for i, p := range c.Premises {
		premises[i] = p.Freshen(table, gen)
	}
	return &Clause{Premises: premises, Conclusion: c.Conclusion.Freshen(table, gen)}
}

// Key returns a canonical string for c: premises sorted by a total order so
// that two clauses differing only by premise permutation hash and compare
// equal, as spec.md's note on clause equality requires.
func (c *Clause) Key() string {
	keys := make([]string, len(c.Premises))
	for i, p := range c.Premises {
		keys[i] = p.key()
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('\x00')
	}
	b.WriteString("=>")
	b.WriteString(c.Conclusion.key())
	return b.String()
}

// Equal reports whether two clauses are equal up to premise-order
// canonicalization (see Key).
func (c *Clause) Equal(other *Clause) bool {
	return c.Key() == other.Key()
}

func (c *Clause) String() string {
	var b strings.Builder
	for i, p := range c.Premises {
		if i > 0 {
			b.WriteString(" /\\ ")
		}
		b.WriteString(p.String())
	}
	if len(c.Premises) > 0 {
		b.WriteString(" => ")
	}
	b.WriteString(c.Conclusion.String())
	return b.String()
}
