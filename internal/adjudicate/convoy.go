package adjudicate

import (
	"github.com/dipjudge/adjudicator/internal/hypergraph"
	"github.com/dipjudge/adjudicator/internal/mapmodel"
)

// chain is one candidate sequence of convoying fleets carrying a single
// Move from its origin to its destination.
type chain []*hypergraph.Order

// findChains enumerates every simple path of fleet provinces connecting
// move.From to move.To, where every fleet on the path issued a Convoy order
// naming this exact army and exact endpoints. spec.md §9's open question
// on partial disruption asks for every chain to be considered, not just the
// first found, so that a move remains convoyed as long as at least one
// full chain survives.
func findChains(m *mapmodel.Map, move *hypergraph.Order, convoys []*hypergraph.Order) []chain {
	candidates := make([]*hypergraph.Order, 0, len(convoys))
	for _, c := range convoys {
		if c.Void {
			continue
		}
		if c.ConvoyedUnit == nil || c.ConvoyedUnit.ID != move.Unit.ID {
			continue
		}
		if c.From != move.From || c.To != move.To {
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return nil
	}

	var chains []chain
	visited := make(map[string]bool, len(candidates))
	var walk func(at string, path chain)
	walk = func(at string, path chain) {
		if len(path) > 0 && m.Adjacent(at, move.To, mapmodel.Fleet) {
			chains = append(chains, append(chain{}, path...))
		}
		for _, c := range candidates {
			if visited[c.Unit.Location] {
				continue
			}
			if !m.Adjacent(at, c.Unit.Location, mapmodel.Fleet) {
				continue
			}
			visited[c.Unit.Location] = true
			walk(c.Unit.Location, append(path, c))
			visited[c.Unit.Location] = false
		}
	}
	walk(move.From, nil)
	return chains
}

// anyChainActive reports whether at least one chain has every fleet on it
// marked active in status.
func anyChainActive(chains []chain, status map[string]string) bool {
	for _, c := range chains {
		allActive := true
		for _, fleet := range c {
			if status[fleet.ID] != "active" {
				allActive = false
				break
			}
		}
		if allActive {
			return true
		}
	}
	return false
}
