// Package notation parses spec.md §6's CLI order grammar into
// hypergraph.RawOrder values. Grounded on
// original_source/cli/parser.py's parse_order_string, generalized to
// handle split coasts and convoy orders, which the original never
// parses at all (its Order hierarchy has no Convoy variant).
package notation

import (
	"fmt"
	"strings"

	"github.com/dipjudge/adjudicator/internal/hypergraph"
)

// Parse reads a single order string issued by unitID. The string may
// optionally begin with the issuing unit's own type letter and province
// (as a human typing "A PAR - BUR" would write it) — both are accepted
// and ignored, since the caller already knows which unit this is.
//
// Grammar (spec.md §6):
//
//	H                          -> Hold
//	<from> - <to>              -> Move
//	<supporter> S <location>   -> SupportHold
//	<supporter> S <from> - <to> -> SupportMove
//	<fleet> C <army_from> - <army_to> -> Convoy
func Parse(unitID, raw string) (hypergraph.RawOrder, error) {
	tokens := strings.Fields(strings.ToUpper(strings.TrimSpace(raw)))
	if len(tokens) == 0 {
		return hypergraph.RawOrder{UnitID: unitID, Kind: hypergraph.Hold}, nil
	}
	tokens = dropUnitType(tokens)
	tokens = dropSelfLocation(tokens)

	if len(tokens) == 0 || tokens[0] == "H" {
		return hypergraph.RawOrder{UnitID: unitID, Kind: hypergraph.Hold}, nil
	}

	switch tokens[0] {
	case "S":
		return parseSupport(unitID, tokens[1:])
	case "C":
		return parseConvoy(unitID, tokens[1:])
	case "-":
		to, coast, err := parseDestination(tokens[1:])
		if err != nil {
			return hypergraph.RawOrder{}, err
		}
		return hypergraph.RawOrder{UnitID: unitID, Kind: hypergraph.Move, To: to, Coast: coast, ConvoyPreference: hypergraph.ConvoyAuto}, nil
	default:
		return hypergraph.RawOrder{}, fmt.Errorf("order %q: cannot parse %q", raw, strings.Join(tokens, " "))
	}
}

func parseSupport(unitID string, tokens []string) (hypergraph.RawOrder, error) {
	tokens = dropUnitType(tokens)
	if len(tokens) == 0 {
		return hypergraph.RawOrder{}, fmt.Errorf("support order names no action")
	}
	dashAt := indexOf(tokens, "-")
	if dashAt < 0 {
		// Support-hold: whatever is left is the held province.
		at := strings.Join(tokens, "")
		return hypergraph.RawOrder{UnitID: unitID, Kind: hypergraph.SupportHold, SupportedAt: at}, nil
	}
	from := strings.Join(tokens[:dashAt], "")
	to, _, err := parseDestination(tokens[dashAt+1:])
	if err != nil {
		return hypergraph.RawOrder{}, err
	}
	return hypergraph.RawOrder{UnitID: unitID, Kind: hypergraph.SupportMove, SupportedAt: from, To: to}, nil
}

func parseConvoy(unitID string, tokens []string) (hypergraph.RawOrder, error) {
	tokens = dropUnitType(tokens)
	dashAt := indexOf(tokens, "-")
	if dashAt < 0 {
		return hypergraph.RawOrder{}, fmt.Errorf("convoy order missing \"-\" between army origin and destination")
	}
	from := strings.Join(tokens[:dashAt], "")
	to, _, err := parseDestination(tokens[dashAt+1:])
	if err != nil {
		return hypergraph.RawOrder{}, err
	}
	return hypergraph.RawOrder{UnitID: unitID, Kind: hypergraph.Convoy, SupportedAt: from, To: to}, nil
}

// parseDestination joins the remaining tokens into a single province
// reference and splits off a trailing "/<coast>" tag, e.g. "STP / NC" or
// "STP/NC" both yield ("STP", "nc").
func parseDestination(tokens []string) (province, coast string, err error) {
	if len(tokens) == 0 {
		return "", "", fmt.Errorf("missing destination province")
	}
	joined := strings.Join(tokens, "")
	province, coast = splitCoast(joined)
	if province == "" {
		return "", "", fmt.Errorf("empty destination province")
	}
	return province, coast, nil
}

func splitCoast(s string) (province, coast string) {
	if i := strings.Index(s, "/"); i >= 0 {
		return s[:i], strings.ToLower(s[i+1:])
	}
	return s, ""
}

func dropUnitType(tokens []string) []string {
	if len(tokens) > 0 && (tokens[0] == "A" || tokens[0] == "F") {
		return tokens[1:]
	}
	return tokens
}

// dropSelfLocation strips a leading province token that is not itself a
// grammar keyword — the issuing unit's own location, redundant once the
// caller has already paired this string with a known unitID.
func dropSelfLocation(tokens []string) []string {
	if len(tokens) == 0 {
		return tokens
	}
	switch tokens[0] {
	case "H", "S", "C", "-":
		return tokens
	default:
		return tokens[1:]
	}
}

func indexOf(tokens []string, want string) int {
	for i, t := range tokens {
		if t == want {
			return i
		}
	}
	return -1
}
