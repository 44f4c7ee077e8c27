// Package mapmodel implements Component A of the adjudication core:
// province identity, per-unit-class adjacency, coast structure and supply
// center marking. It is grounded on original_source/game_engine/map.py's
// GameMap, generalized with the army/fleet adjacency split spec.md §3
// requires and the original never modelled (its adjacency list is a single
// undifferentiated graph).
package mapmodel

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
	"github.com/hashicorp/go-multierror"
)

// Kind is the terrain class of a Province, which in turn constrains which
// UnitClass may occupy it (spec.md §3 invariant).
type Kind string

const (
	Inland  Kind = "inland"
	Coastal Kind = "coastal"
	Sea     Kind = "sea"
)

// UnitClass distinguishes army and fleet movement graphs; adjacency is
// queried per class because the two unit types see different graphs over
// the same provinces (spec.md §3 Adjacency).
type UnitClass string

const (
	Army  UnitClass = "army"
	Fleet UnitClass = "fleet"
)

// Province is a single node of the map.
type Province struct {
	ID             string
	Kind           Kind
	IsSupplyCenter bool
	// Coasts lists the named coast tags of a split-coast province
	// (e.g. Spain's "nc"/"sc"); empty for every other province.
	Coasts []string
}

// HasCoast reports whether tag names one of p's split coasts.
func (p *Province) HasCoast(tag string) bool {
	for _, c := range p.Coasts {
		if c == tag {
			return true
		}
	}
	return false
}

// CanHost reports whether a unit of the given class may legally occupy p,
// per spec.md §3: "a fleet may occupy only coastal or sea; an army only
// inland or coastal."
func (p *Province) CanHost(class UnitClass) bool {
	switch class {
	case Army:
		return p.Kind == Inland || p.Kind == Coastal
	case Fleet:
		return p.Kind == Coastal || p.Kind == Sea
	default:
		return false
	}
}

// Map is the immutable, once-constructed board: provinces plus the two
// adjacency graphs (army, fleet). Per spec.md §5 it is read-only for the
// life of the game and safe to share across concurrent solves.
type Map struct {
	provinces map[string]*Province
	adjacency map[UnitClass]map[string]map[string]bool
}

// Adjacency is a single directed (from, to, unitClass) edge, the unit of
// input New accepts; data is symmetric in practice but the type carries no
// such assumption (spec.md §3).
type Adjacency struct {
	From, To string
	Class    UnitClass
}

// New validates and constructs a Map. It aggregates every invariant
// violation it finds (rather than stopping at the first) via
// hashicorp/go-multierror, the way a map author debugging a malformed data
// file wants to see every problem in one pass.
func New(provinces []*Province, adjacencies []Adjacency) (*Map, error) {
	m := &Map{
		provinces: make(map[string]*Province, len(provinces)),
		adjacency: map[UnitClass]map[string]map[string]bool{
			Army:  make(map[string]map[string]bool),
			Fleet: make(map[string]map[string]bool),
		},
	}

	var errs *multierror.Error
	for _, p := range provinces {
		if _, dup := m.provinces[p.ID]; dup {
			errs = multierror.Append(errs, fmt.Errorf("province %q declared more than once", p.ID))
			continue
		}
		m.provinces[p.ID] = p
	}

	for _, a := range adjacencies {
		if _, ok := m.provinces[a.From]; !ok {
			errs = multierror.Append(errs, fmt.Errorf("adjacency references unknown province %q", a.From))
			continue
		}
		if _, ok := m.provinces[a.To]; !ok {
			errs = multierror.Append(errs, fmt.Errorf("adjacency references unknown province %q", a.To))
			continue
		}
		if a.Class != Army && a.Class != Fleet {
			errs = multierror.Append(errs, fmt.Errorf("adjacency %s->%s has unknown unit class %q", a.From, a.To, a.Class))
			continue
		}
		if m.adjacency[a.Class][a.From] == nil {
			m.adjacency[a.Class][a.From] = make(map[string]bool)
		}
		m.adjacency[a.Class][a.From][a.To] = true
	}

	if errs != nil {
		return nil, errs.ErrorOrNil()
	}
	return m, nil
}

// Province returns the Province registered under id, or nil if none is.
func (m *Map) Province(id string) *Province {
	return m.provinces[id]
}

// Provinces returns every Province on the map, in no particular order.
func (m *Map) Provinces() []*Province {
	out := make([]*Province, 0, len(m.provinces))
	for _, p := range m.provinces {
		out = append(out, p)
	}
	return out
}

// Adjacent reports whether a unit of class may move directly from p to q.
func (m *Map) Adjacent(p, q string, class UnitClass) bool {
	return m.adjacency[class][p][q]
}

// Neighbors returns every province directly reachable from p by a unit of
// the given class.
func (m *Map) Neighbors(p string, class UnitClass) []string {
	out := make([]string, 0, len(m.adjacency[class][p]))
	for to := range m.adjacency[class][p] {
		out = append(out, to)
	}
	return out
}

// IsSupplyCenter reports whether province id is a supply center.
func (m *Map) IsSupplyCenter(id string) bool {
	p := m.provinces[id]
	return p != nil && p.IsSupplyCenter
}

// DOT renders every province and both adjacency graphs as Graphviz
// source (fleet edges blue, army-only edges black), for debugging the
// loaded map by eye. This is the one
// visualiser-adjacent artifact in scope: spec.md explicitly excludes the
// WebSocket push channel and the visualiser itself, but a static dump of
// the adjacency graph is just this package describing itself.
func (m *Map) DOT() string {
	g := gographviz.NewGraph()
	_ = g.SetName("diplomacy_map")
	_ = g.SetDir(true)

	for id, p := range m.provinces {
		attrs := map[string]string{"shape": "box"}
		if p.IsSupplyCenter {
			attrs["shape"] = "doublecircle"
		}
		_ = g.AddNode("diplomacy_map", quote(id), attrs)
	}
	for from, tos := range m.adjacency[Fleet] {
		for to := range tos {
			_ = g.AddEdge(quote(from), quote(to), true, map[string]string{"color": "blue"})
		}
	}
	for from, tos := range m.adjacency[Army] {
		for to := range tos {
			if m.adjacency[Fleet][from] != nil && m.adjacency[Fleet][from][to] {
				continue
			}
			_ = g.AddEdge(quote(from), quote(to), true, map[string]string{"color": "black"})
		}
	}
	return g.String()
}

func quote(s string) string { return fmt.Sprintf("%q", s) }
