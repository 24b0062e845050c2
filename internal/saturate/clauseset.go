package saturate

import "github.com/AloisRautureau/pif/internal/term"

// ClauseSet is the current saturation state: a set of clauses with
// exact-duplicate rejection, canonicalized so that premise-order
// permutations of the same clause collapse to one entry (see
// term.Clause.Key).
type ClauseSet struct {
	byKey map[string]*term.Clause
}

// NewClauseSet returns an empty clause set.
func NewClauseSet() *ClauseSet {
	return &ClauseSet{byKey: make(map[string]*term.Clause)}
}

// Insert adds c to the set, reporting whether it was new. Re-inserting a
// clause already present (even a different *term.Clause instance that is
// Equal to one already stored) is a no-op that reports false.
func (cs *ClauseSet) Insert(c *term.Clause) bool {
	key := c.Key()
	if _, ok := cs.byKey[key]; ok {
		return false
	}
	cs.byKey[key] = c
	return true
}

// Contains reports whether a clause equal (up to premise-order
// canonicalization) to c is already a member.
func (cs *ClauseSet) Contains(c *term.Clause) bool {
	_, ok := cs.byKey[c.Key()]
	return ok
}

// All returns a snapshot slice of every clause currently in the set. The
// slice is safe to range over even while the caller later mutates cs.
func (cs *ClauseSet) All() []*term.Clause {
	out := make([]*term.Clause, 0, len(cs.byKey))
	for _, c := range cs.byKey {
		out = append(out, c)
	}
	return out
}

// Len reports the number of clauses currently in the set.
func (cs *ClauseSet) Len() int { return len(cs.byKey) }
