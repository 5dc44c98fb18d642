package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/euro-diffusion/internal/world"
)

func TestCityTransportMovesOneShare(t *testing.T) {
	g := buildGrid(t, country{"A", 0, 0, 0, 0}, country{"B", 1, 0, 1, 0})
	a, b := g.City(0), g.City(1)
	require.Equal(t, world.Coord{X: 0, Y: 0}, a.Coord)

	a.Transport(g.cities)

	assert.Equal(t, []int64{DefaultInitialCount - 1000, 0}, a.Coins())
	assert.Equal(t, []int64{1000, 0}, b.pending)
	assert.Equal(t, []int64{0, DefaultInitialCount}, b.Coins(), "pending is not spendable")
	assert.False(t, b.IsComplete())

	b.Settle()
	assert.Equal(t, []int64{1000, DefaultInitialCount}, b.Coins())
	assert.Equal(t, []int64{0, 0}, b.pending)
	assert.True(t, b.IsComplete())
}

func TestCityTransportSharesPerNeighbor(t *testing.T) {
	g := buildGrid(t, country{"Square", 0, 0, 2, 2})
	var center *City
	for i := 0; i < g.CityCount(); i++ {
		if c := g.City(i); c.Coord == (world.Coord{X: 1, Y: 1}) {
			center = c
		}
	}
	require.NotNil(t, center)

	center.coins[0] = 12_345
	center.Transport(g.cities)

	// floor(12345/1000) = 12 to each of four neighbors.
	assert.Equal(t, int64(12_345-4*12), center.coins[0])
	for _, n := range center.Neighbors() {
		assert.Equal(t, int64(12), g.cities[n].pending[0])
	}
}

func TestCityBelowPortionKeepsCoins(t *testing.T) {
	g := buildGrid(t, country{"A", 0, 0, 0, 0}, country{"B", 1, 0, 1, 0})
	a := g.City(0)
	a.coins[0] = 999

	a.Transport(g.cities)

	assert.Equal(t, int64(999), a.coins[0])
	assert.Equal(t, int64(0), g.City(1).pending[0])
}

func TestNewTerritoryValidation(t *testing.T) {
	tests := []struct {
		name   string
		tname  string
		bounds world.Rect
		want   error
	}{
		{"valid", "France", world.NewRect(1, 4, 4, 6), nil},
		{"full map", "World", world.NewRect(0, 0, world.MaxCoord, world.MaxCoord), nil},
		{"negative", "Neg", world.NewRect(-1, 0, 2, 2), ErrInvalidBounds},
		{"past max", "Big", world.NewRect(0, 0, world.MaxCoord+1, 2), ErrInvalidBounds},
		{"inverted x", "Inv", world.NewRect(3, 0, 2, 2), ErrInvalidBounds},
		{"inverted y", "Inv", world.NewRect(0, 3, 2, 2), ErrInvalidBounds},
		{"empty name", "", world.NewRect(0, 0, 0, 0), ErrInvalidName},
		{"25 characters", "Abcdefghijklmnopqrstuvwxy", world.NewRect(0, 0, 0, 0), nil},
		{"26 characters", "Abcdefghijklmnopqrstuvwxyz", world.NewRect(0, 0, 0, 0), ErrInvalidName},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := NewTerritory(tc.tname, tc.bounds)
			if tc.want != nil {
				require.ErrorIs(t, err, tc.want)
				if tc.want == ErrInvalidBounds {
					assert.ErrorIs(t, err, world.ErrOutOfRange)
				}
				assert.Nil(t, tr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.tname, tr.Name)
			assert.Empty(t, tr.Cities())
		})
	}
}
