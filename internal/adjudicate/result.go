package adjudicate

import "github.com/dipjudge/adjudicator/internal/hypergraph"

// UnitOutcome is the final disposition of one unit after a turn, per
// spec.md §3 TurnResult.
type UnitOutcome string

const (
	OutcomeHolds     UnitOutcome = "holds"
	OutcomeMoves     UnitOutcome = "moves"
	OutcomeDislodged UnitOutcome = "dislodged"
	OutcomeBounced   UnitOutcome = "bounced"
)

// OrderStatus is the final disposition of one order after a turn.
type OrderStatus string

const (
	StatusSuccess OrderStatus = "success"
	StatusFailed  OrderStatus = "failed"
	StatusVoid    OrderStatus = "void"
	StatusCut     OrderStatus = "cut"
)

// UnitResult is the post-turn state of a single unit.
type UnitResult struct {
	UnitID        string
	Outcome       UnitOutcome
	Location      string // province the unit occupies after the turn
	Coast         string // split-coast tag at Location, if any
	DislodgedFrom string // set only when Outcome == OutcomeDislodged: the attacker's origin, for the retreat phase
}

// ProvinceReport is the per-contested-province breakdown spec.md §6
// requires in TurnResult.details: every competing move, its strength, the
// holder's strength, the winner (if any) and why the contest went the way
// it did.
type ProvinceReport struct {
	Province       string
	MoveStrengths  map[string]int // unit id -> strength, for every non-void competing Move
	HoldStrength   int    // defender's strength; left 0 when no attacker is eligible or the strongest attackers tie
	Winner         string // unit id, empty if the contest bounced
	Reason         string
}

// Result is the core's output: spec.md §3/§6 TurnResult.
type Result struct {
	ID          string // opaque identifier for this resolved turn, for callers correlating logs/traces back to a result
	Units       map[string]*UnitResult
	OrderStatus map[string]OrderStatus
	Provinces   map[string]*ProvinceReport
}

func newResult() *Result {
	return &Result{
		ID:          hypergraph.NewSyntheticID(),
		Units:       make(map[string]*UnitResult),
		OrderStatus: make(map[string]OrderStatus),
		Provinces:   make(map[string]*ProvinceReport),
	}
}
