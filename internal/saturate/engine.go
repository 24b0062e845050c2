// Package saturate implements the worklist-based closure of a clause set
// under query-guided binary resolution: spec.md §4.7's saturation engine.
package saturate

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AloisRautureau/pif/internal/config"
	"github.com/AloisRautureau/pif/internal/resolution"
	"github.com/AloisRautureau/pif/internal/symtab"
	"github.com/AloisRautureau/pif/internal/term"
)

// Engine owns the symbol table, the current clause set, and the
// parentage map accumulated across every query run against it. Mutation
// is entirely serial: spec.md §5 calls for single-threaded, synchronous
// saturation with no suspension points, so Engine makes no attempt at
// concurrency internally.
type Engine struct {
	Symbols *symtab.Table
	Clauses *ClauseSet
	Parents *Parentage
	logger  *zap.SugaredLogger
	cfg     config.Config
}

// New builds an empty engine. logger may be obslog.Noop() in tests that
// don't want progress output.
func New(symbols *symtab.Table, logger *zap.SugaredLogger, cfg config.Config) *Engine {
	return &Engine{
		Symbols: symbols,
		Clauses: NewClauseSet(),
		Parents: NewParentage(),
		logger:  logger,
		cfg:     cfg,
	}
}

// Load replaces the engine's clause set with rules. Each rule is expected
// to already be alpha-renamed to its own private variable scope (spec.md
// §4.2): internal/pifsyntax does this at parse time, one fresh table per
// rule, so that distinct rules never share a variable symbol by the time
// they reach here.
func (e *Engine) Load(rules []*term.Clause) {
	e.Clauses = NewClauseSet()
	e.Parents = NewParentage()
	for _, r := range rules {
		e.Clauses.Insert(r)
	}
}

// Query installs the selection and keep policies for querySym, seeds the
// worklist with a snapshot of the current clause set, and saturates until
// the goal clause "(=> query)" is derived, the worklist empties, or one of
// the config budgets (MaxIterations, MaxClauses) is exhausted.
// It implements the loop of spec.md §4.7 verbatim, including its
// lagging-membership subtlety: a clause only becomes an "s ∈ S" candidate
// for future resolutions once it has itself been popped from the
// worklist and processed, even though it may already have been recorded
// as someone else's resolvent.
//
// Forward resolution alone cannot derive a query whose only proof goes
// through a "solved" generating clause (one whose premises are all bare
// attacker variables, e.g. the pair constructor
// att(X) /\ att(Y) => att(pair(X,Y))): QuerySelect never offers such a
// premise for resolution, so the literal fact "(=> query)" never gets
// produced no matter how long saturation runs. Once the loop ends (worklist
// empty or budget exhausted) without having derived the goal, Query falls
// back to deriveConstructive,
// a ProVerif-style backward search that instantiates exactly those
// premises against the saturated clause set.
func (e *Engine) Query(query *term.Atom) (derived bool, goal *term.Clause) {
	resolver := resolution.New(query.Sym)
	goalClause := term.NewClause(nil, query)

	worklist := e.Clauses.All()
	session := uuid.New()
	e.logger.Infow("saturation started", "session", session, "query", query.String(), "initial_clauses", len(worklist))

	iterations := 0
	for len(worklist) > 0 {
		if e.cfg.MaxIterations > 0 && iterations >= e.cfg.MaxIterations {
			e.logger.Warnw("saturation stopped: iteration budget exhausted", "session", session, "iterations", iterations)
			break
		}
		iterations++

		r := worklist[0]
		worklist = worklist[1:]

		for _, s := range e.Clauses.All() {
			if e.cfg.MaxClauses > 0 && e.Clauses.Len() >= e.cfg.MaxClauses {
				e.logger.Warnw("saturation stopped: clause budget exhausted", "session", session, "clauses", e.Clauses.Len())
				goto done
			}

			resolvent, ok := resolver.Resolve(r, s)
			if !ok {
				continue
			}
			if e.Clauses.Contains(resolvent) || resolvent.Equal(r) {
				continue
			}

			e.Parents.RecordIfAbsent(resolvent, ParentRecord{
				Parent1: r, Parent2: s,
				Select1: resolver.Select(r), Select2: resolver.Select(s),
			})
			worklist = append(worklist, resolvent)
		}

		e.Clauses.Insert(r)
		if r.Equal(goalClause) {
			e.logger.Infow("saturation derived goal", "session", session, "iterations", iterations)
			return true, r
		}
	}
done:
	if proof, ok := e.deriveConstructive(resolver, query.Sym, query, map[string]bool{}); ok {
		e.logger.Infow("saturation derived goal via backward construction", "session", session, "iterations", iterations)
		return true, proof
	}

	e.logger.Infow("saturation finished without deriving goal", "session", session, "iterations", iterations, "clauses", e.Clauses.Len())
	return false, nil
}
