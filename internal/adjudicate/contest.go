package adjudicate

import (
	"github.com/dipjudge/adjudicator/internal/hypergraph"
)

// This file holds the strength/contest arithmetic spec.md §4.C families 3,
// 5, 6 and 8 describe, shared between Phase 1's convoy_status resolution
// (a fleet's own province is just another contest) and Phase 2's final
// projection — both need the identical computation against whatever
// settlement they are evaluating.

// moveVoid reports whether mv is void: statically, or — for a move with
// candidate convoy chains — dynamically, because none of its chains is
// fully active under st.
func moveVoid(mv *hypergraph.Order, cs []chain, st *settlement) bool {
	if mv.Void {
		return true
	}
	if cs == nil {
		return false
	}
	status := make(map[string]string, len(cs))
	for _, ch := range cs {
		for _, fleet := range ch {
			status[fleet.ID] = st.Convoy[fleet.ID]
		}
	}
	return !anyChainActive(cs, status)
}

// strengthOf implements family 3: 1 plus every valid support of the right
// kind for o's action, or 0 if o (or, for a Move, its path) is void.
func strengthOf(hg *hypergraph.Hypergraph, chains map[string][]chain, o *hypergraph.Order, st *settlement) int {
	if o.Kind == hypergraph.Move {
		if moveVoid(o, chains[o.ID], st) {
			return 0
		}
	} else if o.Void {
		return 0
	}

	wantKind := hypergraph.SupportHold
	if o.Kind == hypergraph.Move {
		wantKind = hypergraph.SupportMove
	}
	strength := 1
	for _, s := range hg.SupportsOf(o.Unit.ID) {
		if s.Kind != wantKind {
			continue
		}
		if st.Support[s.ID] == "valid" {
			strength++
		}
	}
	return strength
}

// contest is one non-void Move competing for a province.
type contest struct {
	order    *hypergraph.Order
	strength int
}

// evaluateContest resolves family 5/6/8 for province and reports the full
// breakdown spec.md §6 requires in TurnResult.details. excludeNationality,
// when non-empty, removes every attacker of that power from contention —
// how project.go re-resolves a province once family 12 (no
// self-dislodgement) rules out its raw winner.
//
// The defender's strength is 0 when the resident itself ordered away
// (family 10's "a vacating unit defends with nothing", the rule that lets
// move chains and pure cycles resolve without recursing into each other),
// except in the head-to-head case (family 8), where the resident is the
// very unit the winning candidate is displacing in a two-unit swap, and so
// defends with its own strength as a mover instead.
func evaluateContest(hg *hypergraph.Hypergraph, chains map[string][]chain, province string, st *settlement, excludeNationality string) (*ProvinceReport, string, bool) {
	report := &ProvinceReport{Province: province, MoveStrengths: make(map[string]int)}

	var cands []contest
	for _, m := range hg.Attackers(province) {
		if moveVoid(m, chains[m.ID], st) {
			continue
		}
		str := strengthOf(hg, chains, m, st)
		report.MoveStrengths[m.Unit.ID] = str
		if excludeNationality != "" && m.Unit.Nationality == excludeNationality {
			continue
		}
		cands = append(cands, contest{order: m, strength: str})
	}
	if len(cands) == 0 {
		report.Reason = "no eligible attacker"
		return report, "", false
	}

	best := cands[0]
	tied := false
	for _, c := range cands[1:] {
		switch {
		case c.strength > best.strength:
			best, tied = c, false
		case c.strength == best.strength:
			tied = true
		}
	}
	if tied {
		report.Reason = "tied at maximum strength, bounce"
		return report, "", false
	}

	defense := 0
	resident := hg.UnitAt(province)
	if resident != nil {
		ro := hg.OrderOf(resident.ID)
		if ro != nil {
			switch {
			case ro.Kind != hypergraph.Move:
				defense = strengthOf(hg, chains, ro, st)
			case ro.To == best.order.From && !moveVoid(ro, chains[ro.ID], st):
				defense = strengthOf(hg, chains, ro, st)
			}
		}
	}
	report.HoldStrength = defense

	if best.strength <= defense {
		report.Reason = "does not exceed defender's strength"
		return report, "", false
	}
	report.Winner = best.order.Unit.ID
	report.Reason = "strongest eligible attacker"
	return report, best.order.Unit.ID, true
}

// contestWinner is evaluateContest without the breakdown, for Phase 1's
// convoy_status resolution, which only needs to know who wins the
// convoying fleet's own province.
func contestWinner(hg *hypergraph.Hypergraph, chains map[string][]chain, province string, st *settlement) (string, bool) {
	_, winner, ok := evaluateContest(hg, chains, province, st, "")
	return winner, ok
}
