package saturate

import (
	"github.com/AloisRautureau/pif/internal/resolution"
	"github.com/AloisRautureau/pif/internal/symtab"
	"github.com/AloisRautureau/pif/internal/term"
	"github.com/AloisRautureau/pif/internal/unify"
)

// isConstructiveGenerator reports whether c is a "solved clause" in the
// ProVerif sense: every one of its premises is a bare-variable atom of
// querySym (e.g. att(X)), and it has at least one such premise. Forward
// resolution's QuerySelect (internal/resolution) never selects these
// premises — resolving on "attacker knows something unspecified" carries
// no information — so a clause like the pair constructor
// att(X) /\ att(Y) => att(pair(X,Y)) survives saturation untouched. It is
// exactly the shape deriveConstructive needs to discharge backward: bind
// X and Y to the query's concrete subterms and check those are
// themselves known.
func isConstructiveGenerator(c *term.Clause, querySym symtab.Symbol) bool {
	if len(c.Premises) == 0 {
		return false
	}
	for _, p := range c.Premises {
		if p.Sym != querySym || len(p.Args) != 1 || !p.Args[0].IsVar() {
			return false
		}
	}
	return true
}

// deriveConstructive answers whether query is derivable by instantiating a
// solved clause's bare-variable premises rather than by literal forward
// resolution: it looks for a clause whose conclusion unifies with query,
// then recursively discharges each of that clause's premises — now known,
// by that unification, to require specific concrete subterms of query —
// either against an existing fact or via a further round of the same
// search. seen guards against an atom recurring on its own discharge path,
// the same defense derivation.Build uses against a self-parenting clause.
func (e *Engine) deriveConstructive(resolver resolution.Resolver, querySym symtab.Symbol, query *term.Atom, seen map[string]bool) (*term.Clause, bool) {
	key := query.String()
	if seen[key] {
		return nil, false
	}
	seen[key] = true
	defer delete(seen, key)

	for _, c := range e.Clauses.All() {
		if !isConstructiveGenerator(c, querySym) {
			continue
		}

		graph, err := unify.UnifyAtoms(query, c.Conclusion)
		if err != nil {
			continue
		}
		sub := graph.Bindings()

		targets := make([]*term.Atom, len(c.Premises))
		for i, p := range c.Premises {
			targets[i] = p.Apply(sub)
		}

		if proof, ok := e.dischargePremises(resolver, querySym, c, targets, seen); ok {
			return proof, true
		}
	}
	return nil, false
}

// dischargePremises folds current's premises away one at a time — always
// the first remaining one, which after each fold is the next entry of
// targets in order — each resolved against either an existing fact or a
// freshly derived constructive proof. Every fold is a genuine binary
// resolution step between two clauses already in the engine's clause set,
// recorded exactly as forward resolution records one, so the usual
// parentage invariants hold for the whole chain.
func (e *Engine) dischargePremises(resolver resolution.Resolver, querySym symtab.Symbol, current *term.Clause, targets []*term.Atom, seen map[string]bool) (*term.Clause, bool) {
	for _, target := range targets {
		factClause := term.NewClause(nil, target)

		proof := factClause
		if !e.Clauses.Contains(factClause) {
			var ok bool
			proof, ok = e.deriveConstructive(resolver, querySym, target, seen)
			if !ok {
				return nil, false
			}
		}

		selectedPremise := current.Premises[0]
		resolvent, ok := resolver.ResolvePremise(current, 0, proof)
		if !ok {
			return nil, false
		}
		e.Parents.RecordIfAbsent(resolvent, ParentRecord{
			Parent1: current, Parent2: proof,
			Select1: resolution.Selection{Kind: resolution.Premise, Atom: selectedPremise, Index: 0},
			Select2: resolution.Selection{Kind: resolution.Conclusion, Atom: proof.Conclusion},
		})
		e.Clauses.Insert(resolvent)
		current = resolvent
	}
	return current, true
}
