// Package unify implements Robinson unification with an occurs-check,
// backed by a union-find over variable symbols plus a map from each class
// to its (optional) function-term representative. This is the
// UnificationGraph of spec.md §4.4.
package unify

import (
	"github.com/pkg/errors"

	"github.com/AloisRautureau/pif/internal/symtab"
	"github.com/AloisRautureau/pif/internal/term"
	"github.com/AloisRautureau/pif/internal/unionfind"
)

// Sentinel errors distinguish the ways unification can fail; callers that
// only care about success/failure can compare against ErrFailed via
// errors.Is, since every failure below wraps it.
var (
	// ErrFailed is the root unification-failure sentinel; every other
	// error in this package wraps it.
	ErrFailed = errors.New("unification failed")
	// ErrOccursCheck reports that binding a variable would make it occur
	// within its own binding (e.g. unify(X, f(X))).
	ErrOccursCheck = errors.Wrap(ErrFailed, "occurs-check")
	// ErrHeadMismatch reports two function terms with different head
	// symbols.
	ErrHeadMismatch = errors.Wrap(ErrFailed, "function symbol mismatch")
	// ErrArityMismatch reports two function terms sharing a head symbol
	// but disagreeing on arity.
	ErrArityMismatch = errors.Wrap(ErrFailed, "arity mismatch")
)

// Graph is the union-find-backed state a single unification attempt
// builds. It is scoped to that one attempt and discarded once a
// Substitution has been materialized from it (see spec.md §5's memory
// discipline note).
type Graph struct {
	uf    *unionfind.UnionFind[symtab.Symbol]
	bound map[symtab.Symbol]*term.Term
}

func newGraph() *Graph {
	return &Graph{
		uf:    unionfind.New[symtab.Symbol](),
		bound: make(map[symtab.Symbol]*term.Term),
	}
}

// deref returns t unchanged if it is a function term, or, if it is a
// variable, the function term bound to its equivalence class, or (absent a
// binding) a canonical Var for that class. It peels exactly one layer; a
// bound term that itself contains variables is resolved further only when
// its arguments are visited by the caller's own worklist.
func (g *Graph) deref(t *term.Term) *term.Term {
	if !t.IsVar() {
		return t
	}
	root := g.uf.Find(t.Symbol())
	if bound, ok := g.bound[root]; ok {
		return bound
	}
	return term.Var(root)
}

// occurs reports whether variable v appears within t once bindings already
// recorded in g are taken into account. Traversal is iterative, and a
// monotonic "already expanded" marker on function-term nodes keeps the
// check linear even when dereferencing has introduced sharing (the same
// subterm reachable through more than one path).
func (g *Graph) occurs(v symtab.Symbol, t *term.Term) bool {
	visited := make(map[*term.Term]bool)
	stack := []*term.Term{t}
	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]

		d := g.deref(cur)
		if d.IsVar() {
			if d.Symbol() == v {
				return true
			}
			continue
		}
		if visited[d] {
			continue
		}
		visited[d] = true
		stack = append(stack, d.Args()...)
	}
	return false
}

func (g *Graph) bind(v symtab.Symbol, t *term.Term) {
	root := g.uf.Find(v)
	g.bound[root] = t
}

type pair struct{ a, b *term.Term }

// Unify attempts to make t1 and t2 equal, returning the UnificationGraph
// recording how on success, or a wrapped ErrFailed describing why on
// failure. The worklist is seeded with (t1, t2) and grows as function
// terms are decomposed argument by argument.
func Unify(t1, t2 *term.Term) (*Graph, error) {
	g := newGraph()
	worklist := []pair{{t1, t2}}

	for len(worklist) > 0 {
		n := len(worklist) - 1
		cur := worklist[n]
		worklist = worklist[:n]

		a := g.deref(cur.a)
		b := g.deref(cur.b)
		if a.Equal(b) {
			continue
		}

		switch {
		case a.IsVar() && b.IsVar():
			g.uf.Union(a.Symbol(), b.Symbol())
		case a.IsVar():
			if g.occurs(a.Symbol(), b) {
				return nil, ErrOccursCheck
			}
			g.bind(a.Symbol(), b)
		case b.IsVar():
			if g.occurs(b.Symbol(), a) {
				return nil, ErrOccursCheck
			}
			g.bind(b.Symbol(), a)
		default:
			if a.Symbol() != b.Symbol() {
				return nil, ErrHeadMismatch
			}
			if a.Arity() != b.Arity() {
				return nil, ErrArityMismatch
			}
			for i := range a.Args() {
				worklist = append(worklist, pair{a.Args()[i], b.Args()[i]})
			}
		}
	}
	return g, nil
}

// UnifyAtoms unifies two atoms by unifying their embeddings as top-level
// function terms: same head symbol and arity are required up front, same
// as any other function-term unification.
func UnifyAtoms(a1, a2 *term.Atom) (*Graph, error) {
	return Unify(a1.AsTerm(), a2.AsTerm())
}

// Bindings materializes a Substitution from g: every variable touched
// during unification maps to its class's function representative if one
// was bound, or otherwise to a canonical variable chosen for that class
// (the class's union-find root).
func (g *Graph) Bindings() *term.Substitution {
	bindings := make(map[symtab.Symbol]*term.Term)
	for _, v := range g.uf.Keys() {
		root := g.uf.Find(v)
		if bound, ok := g.bound[root]; ok {
			bindings[v] = bound
		} else if v != root {
			bindings[v] = term.Var(root)
		}
	}
	return term.NewSubstitution(bindings)
}
