package fixture_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dipjudge/adjudicator/cmd/dipadj/fixture"
	"github.com/dipjudge/adjudicator/pkg/adjudicator"
)

func writeFixture(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMap(t *testing.T) {
	path := writeFixture(t, "map.json", `{
		"provinces": [
			{"id": "par", "kind": "inland"},
			{"id": "bre", "kind": "coastal", "supply_center": true, "coasts": ["nc", "sc"]},
			{"id": "mid", "kind": "sea"}
		],
		"adjacencies": [
			{"from": "par", "to": "bre", "class": "army"},
			{"from": "bre", "to": "mid", "class": "fleet"}
		]
	}`)

	mp, err := fixture.LoadMap(path)
	require.NoError(t, err)
	assert.True(t, mp.Adjacent("par", "bre", adjudicator.Army))
	assert.True(t, mp.Adjacent("bre", "mid", adjudicator.Fleet))
	assert.True(t, mp.IsSupplyCenter("bre"))
	assert.True(t, mp.Province("bre").HasCoast("nc"))
}

func TestLoadState(t *testing.T) {
	path := writeFixture(t, "state.json", `{
		"season": "spring",
		"year": 1901,
		"units": [
			{"id": "A-Par", "nationality": "france", "class": "army", "location": "par"}
		]
	}`)

	state, err := fixture.LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, "spring", state.Season)
	assert.Equal(t, 1901, state.Year)
	require.Len(t, state.Units, 1)
	assert.Equal(t, "A-Par", state.Units[0].ID)
	assert.Equal(t, adjudicator.Army, state.Units[0].Class)
}

func TestLoadOrdersDefaultsConvoyPreference(t *testing.T) {
	path := writeFixture(t, "orders.json", `[
		{"unit_id": "A-Par", "kind": "move", "to": "bur"}
	]`)

	orders, err := fixture.LoadOrders(path)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, adjudicator.Move, orders[0].Kind)
	assert.Equal(t, "bur", orders[0].To)
	assert.Equal(t, adjudicator.ConvoyAuto, orders[0].ConvoyPreference)
}

func TestLoadMapRejectsMissingFile(t *testing.T) {
	_, err := fixture.LoadMap(filepath.Join(t.TempDir(), "nonexistent.json"))
	assert.Error(t, err)
}
