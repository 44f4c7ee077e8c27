// Package adjudicate is Component C of the adjudication core: the CSP
// encoder and solver driver spec.md §4.C/§4.D describe. It is grounded on
// spec.md's own constraint families, cross-checked against
// original_source/game_engine/adjudicator.py for the rules the
// distillation left implicit, and built on internal/csp the way the
// original_source's solver wiring is built on its own backtracking
// routine — except here the generic engine only ever sees two kinds of
// decision variable per turn (one support_status per support order, one
// convoy_status per convoy order); everything
// downstream of those is a deterministic projection (project.go).
package adjudicate

import (
	"fmt"

	"github.com/dipjudge/adjudicator/internal/csp"
	"github.com/dipjudge/adjudicator/internal/hypergraph"
	"github.com/dipjudge/adjudicator/internal/mapmodel"
)

// Adjudicate resolves one turn's Hypergraph against mp and returns the
// settled Result. tracer receives the solver's decision/backtrack trace
// for the support_status/convoy_status sub-problem; pass csp.NoopTracer{}
// to discard it.
func Adjudicate(mp *mapmodel.Map, hg *hypergraph.Hypergraph, tracer csp.Tracer) (*Result, error) {
	st, chains, err := resolveSettlement(mp, hg, tracer)
	if err != nil {
		return nil, fmt.Errorf("adjudicating turn: %w", err)
	}
	return project(hg, chains, st), nil
}
