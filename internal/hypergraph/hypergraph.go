// Package hypergraph implements Component B of the adjudication core: it
// assembles raw parsed orders into typed hyperedges, canonicalises their
// unit/province references against the live GameState, flags unresolvable
// references as void, and exposes the two derived indexes spec.md §4.B
// names (attackers, supportsOf). It expresses no rules of its own — that is
// Component C's job (internal/adjudicate).
//
// Grounded on original_source/game_engine/hypergraph.py (Order, Move,
// Support, Convoy, TurnHypergraph.finalize_and_validate_supports),
// generalized into the tagged-variant shape spec.md §9 asks for (a single
// Order struct carrying a Kind, rather than one Go type per order kind, so
// the encoder can switch exhaustively on Kind).
package hypergraph

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/dipjudge/adjudicator/internal/mapmodel"
)

// Unit is a single army or fleet on the board at the start of the turn.
type Unit struct {
	ID          string
	Nationality string
	Class       mapmodel.UnitClass
	Location    string
	// Coast names the specific coast tag the unit occupies, for fleets on a
	// split-coast province; empty otherwise.
	Coast string
}

// Kind tags which of the five hyperedge variants an Order is. spec.md §9
// calls this out explicitly as a tagged variant rather than dynamic
// dispatch over per-kind types.
type Kind string

const (
	Hold        Kind = "hold"
	Move        Kind = "move"
	SupportHold Kind = "support_hold"
	SupportMove Kind = "support_move"
	Convoy      Kind = "convoy"
)

// ConvoyPreference records whether a Move explicitly requested a convoy,
// explicitly refused one, or left the resolver to decide (spec.md §3).
type ConvoyPreference string

const (
	ConvoyAuto     ConvoyPreference = "auto"
	ConvoyRequired ConvoyPreference = "required"
	ConvoyNone     ConvoyPreference = "none"
)

// Order is one hyperedge: exactly one of the five variants of spec.md §3,
// distinguished by Kind. Fields not meaningful to a given Kind are left
// zero.
type Order struct {
	ID   string
	Kind Kind
	Unit *Unit

	// Move: From is Unit.Location at canonicalisation time, To is the
	// destination. SupportMove: From/To describe the supported unit's
	// move. SupportHold: To is the province being held (the supported
	// unit's location). Convoy: From/To describe the convoyed army's move.
	From, To string
	// Coast names the specific coast tag requested for a Move's
	// destination, on a split-coast province; empty otherwise.
	Coast string

	ConvoyPreference ConvoyPreference

	// SupportedUnit is the resolved unit a Support order names; nil if
	// unresolvable (the order is then Void).
	SupportedUnit *Unit
	// ConvoyedUnit is the resolved army a Convoy order carries.
	ConvoyedUnit *Unit

	Void       bool
	VoidReason string
}

func (o *Order) markVoid(reason string) {
	o.Void = true
	o.VoidReason = reason
}

// RawOrder is what a parser (pkg/notation or a test) produces before the
// hypergraph resolves references against live units: the unit issuing the
// order, its kind, and whichever of the textual fields that kind needs.
type RawOrder struct {
	UnitID           string
	Kind             Kind
	To               string // Move/SupportMove/Convoy: destination; unused for SupportHold (see SupportedAt)
	Coast            string // Move only: requested coast tag at To, if any
	SupportedAt      string // SupportHold/SupportMove: the supported unit's current province
	ConvoyPreference ConvoyPreference
}

// Hypergraph is the full set of canonicalised orders for one turn, plus its
// derived indexes.
type Hypergraph struct {
	Orders map[string]*Order

	attackers  map[string][]*Order // province -> Move orders targeting it
	supportsOf map[string][]*Order // order ID -> supports attached to it
	locationOf map[string]*Unit    // province -> unit standing there at turn start
}

// Build canonicalises raw into a Hypergraph. Units without a matching raw
// order default to Hold, per spec.md §3 invariant 1. Duplicate orders for
// the same unit are a caller bug, aggregated via multierror rather than
// failing fast on the first one found.
func Build(units []*Unit, raw []RawOrder) (*Hypergraph, error) {
	byUnit := make(map[string]*Unit, len(units))
	for _, u := range units {
		byUnit[u.ID] = u
	}

	seen := make(map[string]bool, len(raw))
	var errs *multierror.Error
	h := &Hypergraph{
		Orders:     make(map[string]*Order, len(units)),
		attackers:  make(map[string][]*Order),
		supportsOf: make(map[string][]*Order),
	}

	locationOf := make(map[string]*Unit, len(units)) // province -> unit standing there at turn start
	for _, u := range units {
		locationOf[u.Location] = u
	}
	h.locationOf = locationOf
	orderOf := make(map[string]RawOrder, len(units))
	for _, r := range raw {
		if seen[r.UnitID] {
			errs = multierror.Append(errs, fmt.Errorf("unit %q has more than one order", r.UnitID))
			continue
		}
		if _, ok := byUnit[r.UnitID]; !ok {
			errs = multierror.Append(errs, fmt.Errorf("order issued for unknown unit %q", r.UnitID))
			continue
		}
		seen[r.UnitID] = true
		orderOf[r.UnitID] = r
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	for _, u := range units {
		r, ok := orderOf[u.ID]
		if !ok {
			r = RawOrder{UnitID: u.ID, Kind: Hold}
		}
		o := &Order{ID: orderID(r.UnitID), Kind: r.Kind, Unit: u, ConvoyPreference: r.ConvoyPreference}
		switch r.Kind {
		case Hold:
		case Move:
			o.From, o.To, o.Coast = u.Location, r.To, r.Coast
		case SupportHold:
			o.To = r.SupportedAt
			o.SupportedUnit = locationOf[r.SupportedAt]
		case SupportMove:
			o.From, o.To = r.SupportedAt, r.To
			o.SupportedUnit = locationOf[r.SupportedAt]
		case Convoy:
			o.From, o.To = r.SupportedAt, r.To
			o.ConvoyedUnit = locationOf[r.SupportedAt]
		}
		h.Orders[o.ID] = o
	}

	h.resolveVoidReferences()
	h.buildIndexes()
	return h, nil
}

func orderID(unitID string) string {
	// Deterministic, human-readable order ids ("Order_A-Par") are preferred
	// over random uuids so that TurnResult output is stable across runs;
	// uuid.NewString is kept in reserve for ids minted with no natural key
	// (see NewSyntheticID), matching the original parser's "Order_<unit>"
	// convention (original_source/cli/parser.py).
	return fmt.Sprintf("Order_%s", unitID)
}

// NewSyntheticID mints an identifier for an artifact that has no natural
// key of its own (internal/adjudicate uses it for Result.ID). Kept
// separate from orderID so order identifiers stay stable and readable.
func NewSyntheticID() string {
	return uuid.NewString()
}

// resolveVoidReferences applies the reference half of spec.md §3 invariant
// 2: a Support naming an empty province, a SupportMove whose supported unit
// did not order that exact move, or a Convoy naming an empty province or a
// non-army, is marked void but left in the hyperedge set.
//
// Adjacency-based voiding (which needs the Map) happens in
// internal/adjudicate, which is the only component that is allowed to know
// the rules; this pass only resolves structural reference validity — does
// the named unit exist, is the referenced province consistent.
func (h *Hypergraph) resolveVoidReferences() {
	for _, o := range h.Orders {
		switch o.Kind {
		case SupportHold:
			if o.SupportedUnit == nil {
				o.markVoid("no unit at supported province")
			}
		case SupportMove:
			if o.SupportedUnit == nil {
				o.markVoid("no unit at supported province")
				continue
			}
			supportedOrder := h.Orders[orderID(o.SupportedUnit.ID)]
			if supportedOrder == nil || supportedOrder.Kind != Move || supportedOrder.To != o.To {
				o.markVoid("supported unit did not order that exact move")
			}
		case Convoy:
			if o.ConvoyedUnit == nil {
				o.markVoid("no army at convoyed province")
				continue
			}
			if o.ConvoyedUnit.Class != mapmodel.Army {
				o.markVoid("convoyed unit is not an army")
			}
		}
	}
}

func (h *Hypergraph) buildIndexes() {
	for _, o := range h.Orders {
		if o.Kind == Move {
			h.attackers[o.To] = append(h.attackers[o.To], o)
		}
	}
	for _, o := range h.Orders {
		switch o.Kind {
		case SupportMove:
			if o.SupportedUnit != nil {
				h.supportsOf[orderID(o.SupportedUnit.ID)] = append(h.supportsOf[orderID(o.SupportedUnit.ID)], o)
			}
		case SupportHold:
			if o.SupportedUnit != nil {
				h.supportsOf[orderID(o.SupportedUnit.ID)] = append(h.supportsOf[orderID(o.SupportedUnit.ID)], o)
			}
		}
	}
}

// Attackers returns every Move order (void or not — callers filter) whose
// destination is province.
func (h *Hypergraph) Attackers(province string) []*Order {
	return h.attackers[province]
}

// SupportsOf returns every Support order attached to the order belonging
// to unitID — the union of supports naming it as their supported unit,
// whether the support is for its hold or for its specific move.
func (h *Hypergraph) SupportsOf(unitID string) []*Order {
	return h.supportsOf[orderID(unitID)]
}

// OrderOf returns the order belonging to unitID.
func (h *Hypergraph) OrderOf(unitID string) *Order {
	return h.Orders[orderID(unitID)]
}

// UnitAt returns the unit that stood in province at the start of the turn,
// or nil if it was empty.
func (h *Hypergraph) UnitAt(province string) *Unit {
	return h.locationOf[province]
}

// Moves returns every Move order in the hypergraph.
func (h *Hypergraph) Moves() []*Order {
	var out []*Order
	for _, o := range h.Orders {
		if o.Kind == Move {
			out = append(out, o)
		}
	}
	return out
}

// Convoys returns every Convoy order in the hypergraph.
func (h *Hypergraph) Convoys() []*Order {
	var out []*Order
	for _, o := range h.Orders {
		if o.Kind == Convoy {
			out = append(out, o)
		}
	}
	return out
}

// Supports returns every SupportHold/SupportMove order in the hypergraph.
func (h *Hypergraph) Supports() []*Order {
	var out []*Order
	for _, o := range h.Orders {
		if o.Kind == SupportHold || o.Kind == SupportMove {
			out = append(out, o)
		}
	}
	return out
}
