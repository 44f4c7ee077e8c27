// Package adjudicator is the public entry point to the adjudication
// core: it wires internal/mapmodel, internal/hypergraph and
// internal/adjudicate together behind the shape spec.md §6 calls the
// external interface — Map, GameState, Orders in; TurnResult out — and
// re-exports just enough of the internal vocabulary that a caller never
// needs to import an internal package directly.
package adjudicator

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dipjudge/adjudicator/internal/adjudicate"
	"github.com/dipjudge/adjudicator/internal/csp"
	"github.com/dipjudge/adjudicator/internal/hypergraph"
	"github.com/dipjudge/adjudicator/internal/mapmodel"
)

type (
	Map          = mapmodel.Map
	Province     = mapmodel.Province
	Adjacency    = mapmodel.Adjacency
	UnitClass    = mapmodel.UnitClass
	ProvinceKind = mapmodel.Kind

	Unit             = hypergraph.Unit
	OrderKind        = hypergraph.Kind
	ConvoyPreference = hypergraph.ConvoyPreference
	RawOrder         = hypergraph.RawOrder

	TurnResult     = adjudicate.Result
	UnitResult     = adjudicate.UnitResult
	UnitOutcome    = adjudicate.UnitOutcome
	OrderStatus    = adjudicate.OrderStatus
	ProvinceReport = adjudicate.ProvinceReport
)

const (
	Army  = mapmodel.Army
	Fleet = mapmodel.Fleet

	Inland  = mapmodel.Inland
	Coastal = mapmodel.Coastal
	Sea     = mapmodel.Sea

	Hold        = hypergraph.Hold
	Move        = hypergraph.Move
	SupportHold = hypergraph.SupportHold
	SupportMove = hypergraph.SupportMove
	Convoy      = hypergraph.Convoy

	ConvoyAuto     = hypergraph.ConvoyAuto
	ConvoyRequired = hypergraph.ConvoyRequired
	ConvoyNone     = hypergraph.ConvoyNone

	OutcomeHolds     = adjudicate.OutcomeHolds
	OutcomeMoves     = adjudicate.OutcomeMoves
	OutcomeDislodged = adjudicate.OutcomeDislodged
	OutcomeBounced   = adjudicate.OutcomeBounced

	StatusSuccess = adjudicate.StatusSuccess
	StatusFailed  = adjudicate.StatusFailed
	StatusVoid    = adjudicate.StatusVoid
	StatusCut     = adjudicate.StatusCut
)

// NewMap constructs the immutable board spec.md §4.A describes.
func NewMap(provinces []*Province, adjacencies []Adjacency) (*Map, error) {
	return mapmodel.New(provinces, adjacencies)
}

// GameState is spec.md §6's second input: the season/year tag and the
// live unit set a turn adjudicates over.
type GameState struct {
	Season string
	Year   int
	Units  []*Unit
}

// Adjudicate resolves one turn. Orders missing for a unit default to
// Hold per spec.md §3 invariant 1. tracer may be nil, in which case the
// solver's decision trace is discarded.
func Adjudicate(mp *Map, state GameState, orders []RawOrder, tracer csp.Tracer) (*TurnResult, error) {
	hg, err := hypergraph.Build(state.Units, orders)
	if err != nil {
		return nil, fmt.Errorf("building turn hypergraph for %s %d: %w", state.Season, state.Year, err)
	}
	if tracer == nil {
		tracer = csp.NoopTracer{}
	}
	return adjudicate.Adjudicate(mp, hg, tracer)
}

// AdjudicateWithLogging is Adjudicate wired to a zerolog.Logger sink
// (internal/csp.ZerologTracer) instead of a caller-supplied Tracer — the
// shape cmd/dipadj uses for its --verbose flag.
func AdjudicateWithLogging(mp *Map, state GameState, orders []RawOrder, log zerolog.Logger) (*TurnResult, error) {
	return Adjudicate(mp, state, orders, &csp.ZerologTracer{Log: log})
}
