// Package fixture decodes the JSON map/state/orders files cmd/dipadj's
// subcommands read — plain serialisation structs over the types the
// adjudicator package re-exports, kept separate from pkg/adjudicator
// itself because no library caller needs a JSON fixture format, only
// this CLI does.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dipjudge/adjudicator/pkg/adjudicator"
)

type mapFile struct {
	Provinces []struct {
		ID            string   `json:"id"`
		Kind          string   `json:"kind"`
		SupplyCenter  bool     `json:"supply_center"`
		Coasts        []string `json:"coasts"`
	} `json:"provinces"`
	Adjacencies []struct {
		From  string `json:"from"`
		To    string `json:"to"`
		Class string `json:"class"`
	} `json:"adjacencies"`
}

// LoadMap reads a map fixture and constructs the immutable Map.
func LoadMap(path string) (*adjudicator.Map, error) {
	var f mapFile
	if err := readJSON(path, &f); err != nil {
		return nil, err
	}

	provinces := make([]*adjudicator.Province, 0, len(f.Provinces))
	for _, p := range f.Provinces {
		provinces = append(provinces, &adjudicator.Province{
			ID:             p.ID,
			Kind:           adjudicator.ProvinceKind(p.Kind),
			IsSupplyCenter: p.SupplyCenter,
			Coasts:         p.Coasts,
		})
	}

	adjacencies := make([]adjudicator.Adjacency, 0, len(f.Adjacencies))
	for _, a := range f.Adjacencies {
		adjacencies = append(adjacencies, adjudicator.Adjacency{
			From:  a.From,
			To:    a.To,
			Class: adjudicator.UnitClass(a.Class),
		})
	}

	return adjudicator.NewMap(provinces, adjacencies)
}

type stateFile struct {
	Season string `json:"season"`
	Year   int    `json:"year"`
	Units  []struct {
		ID          string `json:"id"`
		Nationality string `json:"nationality"`
		Class       string `json:"class"`
		Location    string `json:"location"`
		Coast       string `json:"coast"`
	} `json:"units"`
}

// LoadState reads a game-state fixture.
func LoadState(path string) (adjudicator.GameState, error) {
	var f stateFile
	if err := readJSON(path, &f); err != nil {
		return adjudicator.GameState{}, err
	}

	units := make([]*adjudicator.Unit, 0, len(f.Units))
	for _, u := range f.Units {
		units = append(units, &adjudicator.Unit{
			ID:          u.ID,
			Nationality: u.Nationality,
			Class:       adjudicator.UnitClass(u.Class),
			Location:    u.Location,
			Coast:       u.Coast,
		})
	}

	return adjudicator.GameState{Season: f.Season, Year: f.Year, Units: units}, nil
}

type orderFile struct {
	UnitID           string `json:"unit_id"`
	Kind             string `json:"kind"`
	To               string `json:"to"`
	Coast            string `json:"coast"`
	SupportedAt      string `json:"supported_at"`
	ConvoyPreference string `json:"convoy_preference"`
}

// LoadOrders reads an orders fixture: one entry per unit with an order,
// in spec.md §3's canonical hyperedge shape rather than CLI notation
// text (pkg/notation.Parse is the bridge from text to this shape).
func LoadOrders(path string) ([]adjudicator.RawOrder, error) {
	var entries []orderFile
	if err := readJSON(path, &entries); err != nil {
		return nil, err
	}

	orders := make([]adjudicator.RawOrder, 0, len(entries))
	for _, e := range entries {
		pref := adjudicator.ConvoyPreference(e.ConvoyPreference)
		if pref == "" {
			pref = adjudicator.ConvoyAuto
		}
		orders = append(orders, adjudicator.RawOrder{
			UnitID:           e.UnitID,
			Kind:             adjudicator.OrderKind(e.Kind),
			To:               e.To,
			Coast:            e.Coast,
			SupportedAt:      e.SupportedAt,
			ConvoyPreference: pref,
		})
	}
	return orders, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
