// Package resolution implements binary ordered resolution over a pair of
// query-parameterized policies: which atom of a clause is eligible for
// resolution (Selection), and which premises of a freshly produced
// resolvent are worth keeping (the keep filter). Both are installed once
// per query and then held fixed for the whole saturation run.
package resolution

import (
	"github.com/AloisRautureau/pif/internal/symtab"
	"github.com/AloisRautureau/pif/internal/term"
	"github.com/AloisRautureau/pif/internal/unify"
)

// Kind distinguishes the two things a Selection can point at.
type Kind uint8

const (
	// Conclusion marks a clause's conclusion atom as selected.
	Conclusion Kind = iota
	// Premise marks one of a clause's premises as selected.
	Premise
)

// Selection names the one atom of a clause eligible for resolution: either
// the conclusion, or a premise identified by its index (so the resolver
// can remove it by position).
type Selection struct {
	Kind  Kind
	Atom  *term.Atom
	Index int // meaningful only when Kind == Premise
}

// SelectFunc picks the resolution-eligible atom of a clause.
type SelectFunc func(c *term.Clause) Selection

// KeepFunc decides whether a resolvent's premise is worth retaining, given
// the resolvent's (already substituted) conclusion.
type KeepFunc func(premise, conclusion *term.Atom) bool

// isBareVariable reports whether an atom's single argument is nothing more
// than an unconstrained variable, e.g. att(X). Atoms of other arities are
// never considered "trivial" by this check.
func isBareVariable(a *term.Atom) bool {
	return len(a.Args) == 1 && a.Args[0].IsVar()
}

// QuerySelect builds the selection policy for a query whose head predicate
// is querySym: scan the premises in order and return the first one headed
// by querySym whose argument is not a bare variable (a concrete
// attacker-capability premise); if none qualifies, fall back to the
// clause's conclusion. Atoms of the form querySym(X) are skipped because
// an attacker always knows at least one term, so resolving on an
// unconstrained "attacker knows something" premise produces no
// information.
func QuerySelect(querySym symtab.Symbol) SelectFunc {
	return func(c *term.Clause) Selection {
		for i, p := range c.Premises {
			if p.Sym == querySym && isBareVariable(p) {
				continue
			}
			if p.Sym == querySym {
				return Selection{Kind: Premise, Atom: p, Index: i}
			}
		}
		return Selection{Kind: Conclusion, Atom: c.Conclusion}
	}
}

// QueryKeep builds the keep policy for a query whose head predicate is
// querySym: a premise of the form querySym(X) with X a bare variable is
// dropped unless X also appears in the resolvent's conclusion. Every other
// premise is kept unconditionally.
func QueryKeep(querySym symtab.Symbol) KeepFunc {
	return func(premise, conclusion *term.Atom) bool {
		if premise.Sym != querySym || !isBareVariable(premise) {
			return true
		}
		return conclusion.Occurs(premise.Args[0].Symbol())
	}
}

// Resolver pairs a Select/Keep policy with the Resolve operation itself.
type Resolver struct {
	Select SelectFunc
	Keep   KeepFunc
}

// New builds a Resolver installed for the query whose head predicate is
// querySym.
func New(querySym symtab.Symbol) Resolver {
	return Resolver{Select: QuerySelect(querySym), Keep: QueryKeep(querySym)}
}

// Resolve attempts binary resolution between r1 and r2. It requires that
// exactly one of the two selects a premise and the other selects a
// conclusion (selecting two premises or two conclusions never resolves).
// On success it returns the resolvent, with the selected premise removed,
// the other clause's premises merged in, the unifying substitution
// applied throughout, and the keep filter applied to the merged premises.
func (r Resolver) Resolve(r1, r2 *term.Clause) (*term.Clause, bool) {
	s1, s2 := r.Select(r1), r.Select(r2)

	switch {
	case s1.Kind == Premise && s2.Kind == Conclusion:
		return r.resolveOrdered(r1, s1, r2, s2)
	case s1.Kind == Conclusion && s2.Kind == Premise:
		return r.resolveOrdered(r2, s2, r1, s1)
	default:
		return nil, false
	}
}

// ResolvePremise resolves premiseClause's premise at index i against
// conclusionClause's conclusion, bypassing the installed Select policy
// entirely. It exists for backward derivability search (spec.md §4.7's
// query resolution over "solved" clauses): QuerySelect never offers a
// bare-variable querySym premise for ordinary forward resolution, so a
// caller that has already decided such a premise should be discharged
// against a specific fact needs a way to resolve on it directly.
func (r Resolver) ResolvePremise(premiseClause *term.Clause, i int, conclusionClause *term.Clause) (*term.Clause, bool) {
	premiseSel := Selection{Kind: Premise, Atom: premiseClause.Premises[i], Index: i}
	conclusionSel := Selection{Kind: Conclusion, Atom: conclusionClause.Conclusion}
	return r.resolveOrdered(premiseClause, premiseSel, conclusionClause, conclusionSel)
}

func (r Resolver) resolveOrdered(premiseClause *term.Clause, premiseSel Selection, conclusionClause *term.Clause, conclusionSel Selection) (*term.Clause, bool) {
	graph, err := unify.UnifyAtoms(premiseSel.Atom, conclusionSel.Atom)
	if err != nil {
		return nil, false
	}
	sub := graph.Bindings()

	merged := make([]*term.Atom, 0, len(premiseClause.Premises)-1+len(conclusionClause.Premises))
	for i, p := range premiseClause.Premises {
		if i == premiseSel.Index {
			continue
		}
		merged = append(merged, p)
	}
	merged = append(merged, conclusionClause.Premises...)

	resolvent := term.NewClause(merged, premiseClause.Conclusion).Apply(sub)

	kept := make([]*term.Atom, 0, len(resolvent.Premises))
	for _, p := range resolvent.Premises {
		if r.Keep(p, resolvent.Conclusion) {
			kept = append(kept, p)
		}
	}
	resolvent.Premises = kept
	return resolvent, true
}
