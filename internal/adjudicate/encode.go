package adjudicate

import (
	"fmt"
	"strings"

	"github.com/dipjudge/adjudicator/internal/csp"
	"github.com/dipjudge/adjudicator/internal/hypergraph"
	"github.com/dipjudge/adjudicator/internal/mapmodel"
)

// settlement is the outcome of Phase 1: every support and convoy order's
// final status, settled by the generic csp engine. Phase 2 (project.go)
// treats this as fact and never reopens it.
type settlement struct {
	Support map[string]string // order id -> "valid" | "cut"
	Convoy  map[string]string // order id -> "active" | "disrupted"
}

// resolveSettlement implements spec.md §4.C constraint families 1, 2, 4 and
// 11: it statically voids whatever adjacency alone decides, then hands the
// remaining support_status/convoy_status variables — the only ones whose
// truth can depend on each other — to internal/csp, including the Szykman
// tiebreak on a non-unique result.
func resolveSettlement(mp *mapmodel.Map, hg *hypergraph.Hypergraph, tracer csp.Tracer) (*settlement, map[string][]chain, error) {
	chains := voidStaticallyImpossibleOrders(mp, hg)

	problem := csp.NewProblem()
	var convoyIDs, supportIDs []string
	for _, c := range hg.Convoys() {
		if c.Void {
			continue
		}
		problem.AddVariable(csp.Identifier("convoy:"+c.ID), []string{"active", "disrupted"}, 1)
		convoyIDs = append(convoyIDs, c.ID)
	}
	for _, s := range hg.Supports() {
		if s.Void {
			continue
		}
		problem.AddVariable(csp.Identifier("support:"+s.ID), []string{"valid", "cut"}, 0)
		supportIDs = append(supportIDs, s.ID)
	}

	st := &settlement{Support: make(map[string]string), Convoy: make(map[string]string)}
	if len(convoyIDs) == 0 && len(supportIDs) == 0 {
		return st, chains, nil
	}

	allVars := make([]csp.Identifier, 0, len(convoyIDs)+len(supportIDs))
	for _, id := range convoyIDs {
		allVars = append(allVars, csp.Identifier("convoy:"+id))
	}
	for _, id := range supportIDs {
		allVars = append(allVars, csp.Identifier("support:"+id))
	}

	for _, s := range hg.Supports() {
		if s.Void {
			continue
		}
		s := s
		problem.AddConstraint(&csp.Func{
			VarIDs: allVars,
			Label:  fmt.Sprintf("support_status[%s] follows its cutters", s.ID),
			Pred: func(assignment map[csp.Identifier]string) bool {
				return assignment[csp.Identifier("support:"+s.ID)] == supportOutcome(hg, chains, s, assignment)
			},
		})
	}
	for _, c := range hg.Convoys() {
		if c.Void {
			continue
		}
		c := c
		problem.AddConstraint(&csp.Func{
			VarIDs: allVars,
			Label:  fmt.Sprintf("convoy_status[%s] follows its fleet's contest", c.ID),
			Pred: func(assignment map[csp.Identifier]string) bool {
				return assignment[csp.Identifier("convoy:"+c.ID)] == convoyOutcome(hg, chains, c, assignment)
			},
		})
	}

	solver := csp.NewSolver(csp.WithTracer(tracer))
	assignment, err := solver.Solve(problem)
	if err != nil {
		nu, ok := err.(*csp.NonUnique)
		if !ok {
			return nil, nil, fmt.Errorf("settling support/convoy status: %w", err)
		}
		// Szykman: the only way this sub-problem can have two solutions is a
		// self-referential convoy cycle (spec.md §4.C family 11). Pin every
		// convoy_status the two solutions disagree on to disrupted and
		// resolve again; that is now guaranteed unique.
		for id, v1 := range nu.First {
			if !strings.HasPrefix(string(id), "convoy:") {
				continue
			}
			if nu.Second[id] != v1 {
				problem.Pin(id, "disrupted")
			}
		}
		assignment, err = solver.Solve(problem)
		if err != nil {
			return nil, nil, fmt.Errorf("settling support/convoy status after the Szykman tiebreak: %w", err)
		}
	}

	for _, id := range convoyIDs {
		st.Convoy[id] = assignment[csp.Identifier("convoy:"+id)]
	}
	for _, id := range supportIDs {
		st.Support[id] = assignment[csp.Identifier("support:"+id)]
	}
	return st, chains, nil
}

// voidStaticallyImpossibleOrders applies spec.md §4.C family 1 and the
// adjacency half of family 4: everything decidable from the map alone,
// without needing anyone else's settled status. It returns, for every Move
// that cannot use a direct land/sea route (or explicitly required a
// convoy), the candidate convoy chains that could still carry it — the one
// piece of family 4 that is not static.
func voidStaticallyImpossibleOrders(mp *mapmodel.Map, hg *hypergraph.Hypergraph) map[string][]chain {
	convoys := hg.Convoys()
	for _, c := range convoys {
		if c.Void {
			continue
		}
		p := mp.Province(c.Unit.Location)
		if p == nil || p.Kind != mapmodel.Sea {
			c.Void = true
			c.VoidReason = "convoying fleet is not in a sea province"
		}
	}

	for _, s := range hg.Supports() {
		if s.Void {
			continue
		}
		if !mp.Adjacent(s.Unit.Location, s.To, s.Unit.Class) {
			s.Void = true
			s.VoidReason = "supporter is not adjacent to the supported action"
			continue
		}
		if s.Kind == hypergraph.SupportHold && s.SupportedUnit != nil {
			if held := hg.OrderOf(s.SupportedUnit.ID); held != nil && held.Kind == hypergraph.Move {
				s.Void = true
				s.VoidReason = "supported unit ordered to move, not to hold"
			}
		}
	}

	chains := make(map[string][]chain)
	for _, mv := range hg.Moves() {
		if mv.Void {
			continue
		}
		direct := mp.Adjacent(mv.From, mv.To, mv.Unit.Class)
		if mv.Unit.Class == mapmodel.Fleet {
			if !direct {
				mv.Void = true
				mv.VoidReason = "fleet has no direct route and cannot be convoyed"
			}
			continue
		}
		if direct && mv.ConvoyPreference != hypergraph.ConvoyRequired {
			continue
		}
		if mv.ConvoyPreference == hypergraph.ConvoyNone {
			mv.Void = true
			mv.VoidReason = "no land route and the order refused a convoy"
			continue
		}
		cs := findChains(mp, mv, convoys)
		if len(cs) == 0 {
			mv.Void = true
			mv.VoidReason = "no land route and no convoy chain"
			continue
		}
		chains[mv.ID] = cs
	}
	return chains
}

// cuttersOf returns every Move that is a candidate to cut s: a different
// power's Move into the supporter's own province, excluding — per the
// Szykman support-cut exception (spec.md §4.C family 2, invariant 13) —
// the very unit s is supporting an attack against.
func cuttersOf(hg *hypergraph.Hypergraph, s *hypergraph.Order) []*hypergraph.Order {
	var out []*hypergraph.Order
	for _, m := range hg.Attackers(s.Unit.Location) {
		if m.Unit.Nationality == s.Unit.Nationality {
			continue
		}
		if s.Kind == hypergraph.SupportMove && m.From == s.To {
			continue
		}
		out = append(out, m)
	}
	return out
}

// supportOutcome computes the settled support_status for s given a full
// assignment of every convoy_status/support_status variable: cut iff at
// least one of its cutters is not void, valid otherwise.
func supportOutcome(hg *hypergraph.Hypergraph, chains map[string][]chain, s *hypergraph.Order, assignment map[csp.Identifier]string) string {
	st := settlementFromAssignment(assignment)
	for _, m := range cuttersOf(hg, s) {
		if !moveVoid(m, chains[m.ID], st) {
			return "cut"
		}
	}
	return "valid"
}

// convoyOutcome computes the settled convoy_status for c: disrupted iff the
// convoying fleet is dislodged, which this resolves via the same per-
// province contest logic project.go uses for the final outcome, run here
// against the candidate assignment rather than the settled one.
func convoyOutcome(hg *hypergraph.Hypergraph, chains map[string][]chain, c *hypergraph.Order, assignment map[csp.Identifier]string) string {
	st := settlementFromAssignment(assignment)
	winner, ok := contestWinner(hg, chains, c.Unit.Location, st)
	if ok && winner != c.Unit.ID {
		return "disrupted"
	}
	return "active"
}

// settlementFromAssignment adapts a raw csp assignment (candidate or final)
// into the *settlement shape strength/contest computation reads, so the
// same helpers serve both Phase 1's Func constraints and Phase 2's
// projection.
func settlementFromAssignment(assignment map[csp.Identifier]string) *settlement {
	st := &settlement{Support: make(map[string]string), Convoy: make(map[string]string)}
	for id, v := range assignment {
		s := string(id)
		switch {
		case strings.HasPrefix(s, "support:"):
			st.Support[strings.TrimPrefix(s, "support:")] = v
		case strings.HasPrefix(s, "convoy:"):
			st.Convoy[strings.TrimPrefix(s, "convoy:")] = v
		}
	}
	return st
}
