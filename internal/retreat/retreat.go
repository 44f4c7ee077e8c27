// Package retreat implements the feature SPEC_FULL.md adds over
// spec.md's distillation: reporting legal retreat destinations for a
// dislodged unit rather than removing it from the board.
// original_source/game_engine/gamestate.py's update_state_after_turn
// does the latter ("In a full game, they would go to a retreat phase.
// Here we just remove them.") — this package is that missing phase,
// narrowed to spec.md §5's "separate turn type with a narrower variable
// set" framing: it reports options, it does not itself decide one.
package retreat

import (
	"sort"

	"github.com/dipjudge/adjudicator/internal/adjudicate"
	"github.com/dipjudge/adjudicator/internal/hypergraph"
	"github.com/dipjudge/adjudicator/internal/mapmodel"
)

// Options is one dislodged unit's legal retreat destinations. An empty
// Candidates slice means the unit has nowhere to go and must disband.
type Options struct {
	UnitID     string
	Candidates []string
}

// Compute derives retreat options from a settled TurnResult: a
// destination is legal if it is adjacent (per the unit's class), was not
// the attacker's origin, is not occupied by a surviving unit, and was
// not itself left empty by a standoff this same turn — the three
// standard restrictions on a retreat.
func Compute(mp *mapmodel.Map, hg *hypergraph.Hypergraph, result *adjudicate.Result) []Options {
	occupied := occupiedAfterTurn(result)
	standoffs := standoffProvinces(result, occupied)

	var out []Options
	for _, ur := range result.Units {
		if ur.Outcome != adjudicate.OutcomeDislodged {
			continue
		}
		order := hg.OrderOf(ur.UnitID)
		if order == nil {
			continue
		}
		var candidates []string
		for _, n := range mp.Neighbors(ur.Location, order.Unit.Class) {
			if n == ur.DislodgedFrom || occupied[n] || standoffs[n] {
				continue
			}
			candidates = append(candidates, n)
		}
		sort.Strings(candidates)
		out = append(out, Options{UnitID: ur.UnitID, Candidates: candidates})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UnitID < out[j].UnitID })
	return out
}

func occupiedAfterTurn(result *adjudicate.Result) map[string]bool {
	occupied := make(map[string]bool, len(result.Units))
	for _, ur := range result.Units {
		if ur.Outcome != adjudicate.OutcomeDislodged {
			occupied[ur.Location] = true
		}
	}
	return occupied
}

// standoffProvinces identifies provinces left empty by a bounce this
// turn: no winner, no resident, but at least one non-void attacker
// contested it.
func standoffProvinces(result *adjudicate.Result, occupied map[string]bool) map[string]bool {
	standoffs := make(map[string]bool)
	for province, report := range result.Provinces {
		if report.Winner != "" || occupied[province] || len(report.MoveStrengths) == 0 {
			continue
		}
		standoffs[province] = true
	}
	return standoffs
}
