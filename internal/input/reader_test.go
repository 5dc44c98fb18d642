package input

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/euro-diffusion/internal/engine"
	"github.com/talgya/euro-diffusion/internal/world"
)

const sample = `3
France 1 4 4 6
Spain 3 1 6 3
Portugal 1 1 2 2
1
Luxembourg 1 1 1 1
2
Netherlands 1 3 2 4
Belgium 1 1 2 2
0
`

func TestReadSample(t *testing.T) {
	cases, err := Read(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, cases, 3)

	assert.Equal(t, 1, cases[0].Number)
	assert.Equal(t, Country{Name: "France", Bounds: world.NewRect(0, 3, 3, 5)}, cases[0].Countries[0])
	assert.Equal(t, Country{Name: "Luxembourg", Bounds: world.NewRect(0, 0, 0, 0)}, cases[1].Countries[0])
	assert.Len(t, cases[2].Countries, 2)

	want := []map[string]int{
		{"France": 1325, "Spain": 382, "Portugal": 416},
		{"Luxembourg": 0},
		{"Netherlands": 2, "Belgium": 2},
	}
	for i, c := range cases {
		ts, err := c.Territories()
		require.NoError(t, err)
		g, err := engine.NewGrid(ts, engine.DefaultParams())
		require.NoError(t, err)
		got, err := g.Simulate()
		require.NoError(t, err)
		assert.Equal(t, want[i], got, "case %d", c.Number)
	}
}

func TestReadToleratesCRLFAndBlankLines(t *testing.T) {
	in := "1\r\n\r\nLuxembourg 1 1 1 1\r\n0"
	cases, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "Luxembourg", cases[0].Countries[0].Name)
}

func TestReadStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"missing terminator", "1\nLuxembourg 1 1 1 1\n", ErrMissingTerminator},
		{"empty input", "", ErrMissingTerminator},
		{"count is not a number", "abc\n0\n", ErrMalformed},
		{"negative count", "-2\n0\n", ErrMalformed},
		{"truncated case", "3\nFrance 1 4 4 6\n", ErrMalformed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tc.in))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestReadIsolatesBadCountryLines(t *testing.T) {
	in := "2\nFrance 1 4 x 6\nSpain 3 1 6 3\n1\nLuxembourg 1 1 1 1\n0\n"
	cases, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, cases, 2)

	_, err = cases[0].Territories()
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "line 2")

	ts, err := cases[1].Territories()
	require.NoError(t, err)
	assert.Len(t, ts, 1)
}

func TestTerritoriesValidatesCountries(t *testing.T) {
	in := "1\nAbcdefghijklmnopqrstuvwxyz 1 1 1 1\n1\nFar 1 1 12 1\n0\n"
	cases, err := Read(strings.NewReader(in))
	require.NoError(t, err)

	_, err = cases[0].Territories()
	assert.ErrorIs(t, err, engine.ErrInvalidName)
	_, err = cases[1].Territories()
	assert.ErrorIs(t, err, engine.ErrInvalidBounds)
}

func TestWriteRoundTrip(t *testing.T) {
	cases, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, cases))
	assert.Equal(t, sample, buf.String())
}
