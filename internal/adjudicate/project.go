package adjudicate

import (
	"github.com/dipjudge/adjudicator/internal/hypergraph"
)

// project is Phase 2: a pure, deterministic function from a settled
// settlement to the final TurnResult. Nothing here searches; every
// question it asks has exactly one answer once Phase 1 has run, which is
// what makes this phase safe to express as plain Go instead of another
// csp.Problem (spec.md §4.C "Outcome projection": outcome[u] is a
// dependent variable, forced by constraints 5-7).
func project(hg *hypergraph.Hypergraph, chains map[string][]chain, st *settlement) *Result {
	res := newResult()

	targets := targetProvinces(hg)

	rawWinner := make(map[string]string, len(targets))
	for _, p := range targets {
		if w, ok := contestWinner(hg, chains, p, st); ok {
			rawWinner[p] = w
		}
	}

	// Family 12: no self-dislodgement. A raw winner that shares its
	// resident's power, where that resident did not itself vacate, is
	// disqualified; the province is re-resolved without that power's
	// attackers.
	excludeByProvince := make(map[string]string)
	for p, w := range rawWinner {
		resident := hg.UnitAt(p)
		if resident == nil {
			continue
		}
		winnerOrder := hg.OrderOf(w)
		if winnerOrder == nil || winnerOrder.Unit.Nationality != resident.Nationality {
			continue
		}
		if residentVacated(hg, chains, st, rawWinner, resident) {
			continue
		}
		excludeByProvince[p] = resident.Nationality
	}

	finalWinner := make(map[string]string, len(targets))
	for _, p := range targets {
		report, w, ok := evaluateContest(hg, chains, p, st, excludeByProvince[p])
		if excludeByProvince[p] != "" {
			report.Reason = "self-dislodgement forbidden: " + report.Reason
		}
		res.Provinces[p] = report
		if ok {
			finalWinner[p] = w
		}
	}

	for _, o := range hg.Orders {
		res.OrderStatus[o.ID] = orderStatus(hg, chains, st, finalWinner, o)
		res.Units[o.Unit.ID] = unitResult(hg, chains, st, finalWinner, o)
	}

	return res
}

func targetProvinces(hg *hypergraph.Hypergraph) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range hg.Moves() {
		if seen[m.To] {
			continue
		}
		seen[m.To] = true
		out = append(out, m.To)
	}
	return out
}

// residentVacated reports whether the unit standing in a contested
// province at turn start successfully moved away, using only the raw
// (pre self-dislodgement-correction) winners: a resident's own departure
// never depends on whether some other province's raw winner gets
// corrected, only on whether it won its own destination outright.
func residentVacated(hg *hypergraph.Hypergraph, chains map[string][]chain, st *settlement, rawWinner map[string]string, resident *hypergraph.Unit) bool {
	ro := hg.OrderOf(resident.ID)
	if ro == nil || ro.Kind != hypergraph.Move || moveVoid(ro, chains[ro.ID], st) {
		return false
	}
	w, ok := rawWinner[ro.To]
	return ok && w == resident.ID
}

func orderStatus(hg *hypergraph.Hypergraph, chains map[string][]chain, st *settlement, finalWinner map[string]string, o *hypergraph.Order) OrderStatus {
	if o.Void {
		return StatusVoid
	}
	switch o.Kind {
	case hypergraph.Move:
		if moveVoid(o, chains[o.ID], st) {
			return StatusVoid
		}
		if finalWinner[o.To] == o.Unit.ID {
			return StatusSuccess
		}
		return StatusFailed
	case hypergraph.SupportHold, hypergraph.SupportMove:
		if st.Support[o.ID] == "cut" {
			return StatusCut
		}
		return StatusSuccess
	case hypergraph.Convoy:
		if st.Convoy[o.ID] == "disrupted" {
			return StatusFailed
		}
		return StatusSuccess
	default: // Hold
		return StatusSuccess
	}
}

// unitResult derives the owning unit's post-turn disposition from its own
// order and, if it stayed in place one way or another, whether another
// power's move displaced it.
func unitResult(hg *hypergraph.Hypergraph, chains map[string][]chain, st *settlement, finalWinner map[string]string, o *hypergraph.Order) *UnitResult {
	u := o.Unit
	if o.Kind == hypergraph.Move && !o.Void && !moveVoid(o, chains[o.ID], st) && finalWinner[o.To] == u.ID {
		return &UnitResult{UnitID: u.ID, Outcome: OutcomeMoves, Location: o.To, Coast: o.Coast}
	}

	if w, ok := finalWinner[u.Location]; ok && w != u.ID {
		winnerOrder := hg.OrderOf(w)
		from := ""
		if winnerOrder != nil {
			from = winnerOrder.From
		}
		return &UnitResult{UnitID: u.ID, Outcome: OutcomeDislodged, Location: u.Location, Coast: u.Coast, DislodgedFrom: from}
	}

	if o.Kind == hypergraph.Move {
		return &UnitResult{UnitID: u.ID, Outcome: OutcomeBounced, Location: u.Location, Coast: u.Coast}
	}
	return &UnitResult{UnitID: u.ID, Outcome: OutcomeHolds, Location: u.Location, Coast: u.Coast}
}
