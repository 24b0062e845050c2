package saturate

import (
	"github.com/AloisRautureau/pif/internal/resolution"
	"github.com/AloisRautureau/pif/internal/term"
)

// ParentRecord associates a derived clause with the two parent clauses and
// the two selected atoms the resolution that produced it used.
type ParentRecord struct {
	Parent1, Parent2 *term.Clause
	Select1, Select2 resolution.Selection
}

// Parentage is the derived-clause -> provenance map spec.md §3 describes.
// Recording is "or_insert": the first derivation of a clause wins and is
// never overwritten by a later, possibly longer, one, which is what keeps
// the derivation tree free of the cycles a careless last-writer-wins
// policy could introduce.
type Parentage struct {
	records map[string]ParentRecord
}

// NewParentage returns an empty parentage map.
func NewParentage() *Parentage {
	return &Parentage{records: make(map[string]ParentRecord)}
}

// RecordIfAbsent records rec for child unless a parentage for an
// equal-up-to-key clause is already present.
func (p *Parentage) RecordIfAbsent(child *term.Clause, rec ParentRecord) {
	key := child.Key()
	if _, ok := p.records[key]; ok {
		return
	}
	p.records[key] = rec
}

// Lookup returns the recorded parentage for c, if any. A clause with no
// entry is an original (leaf) clause.
func (p *Parentage) Lookup(c *term.Clause) (ParentRecord, bool) {
	rec, ok := p.records[c.Key()]
	return rec, ok
}
