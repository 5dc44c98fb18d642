package engine

import (
	"fmt"

	"github.com/talgya/euro-diffusion/internal/world"
)

const (
	// DefaultInitialCount is the number of home coins every city starts with.
	DefaultInitialCount = 1_000_000
	// DefaultMaxDays caps a run.
	DefaultMaxDays = 100_000
)

// Params holds the coin economics shared by every city of a grid.
type Params struct {
	InitialCount int64 `json:"initial_count"`
	Portion      int64 `json:"portion"` // Divisor sizing each day's outbound share
	MaxDays      int   `json:"max_days"`
}

// DefaultParams returns a million home coins with one thousandth moving to
// each neighbor per day.
func DefaultParams() Params {
	return Params{
		InitialCount: DefaultInitialCount,
		Portion:      DefaultInitialCount / 1000,
		MaxDays:      DefaultMaxDays,
	}
}

// Validate rejects a non-positive initial count or day cap, and a portion
// outside (4, InitialCount]. Portion must exceed the neighbor count so a city
// never ships out its whole stock. Valid params can still stall a run; the
// engine detects that and returns ErrNoProgress.
func (p Params) Validate() error {
	if p.InitialCount <= 0 {
		return fmt.Errorf("%w: initial count %d", ErrInvalidParams, p.InitialCount)
	}
	if p.Portion <= int64(len(world.Directions)) || p.Portion > p.InitialCount {
		return fmt.Errorf("%w: portion %d outside (%d, %d]",
			ErrInvalidParams, p.Portion, len(world.Directions), p.InitialCount)
	}
	if p.MaxDays <= 0 {
		return fmt.Errorf("%w: max days %d", ErrInvalidParams, p.MaxDays)
	}
	return nil
}

// City is one grid cell. It holds a count per denomination and a pending
// buffer for coins in transit during the current day.
// Neighbors are indices into the grid's city arena.
type City struct {
	Coord world.Coord
	Home  int // Denomination this city starts stocked with

	coins     []int64
	pending   []int64
	neighbors []int
	portion   int64
}

func newCity(coord world.Coord, home, denominations int, p Params) City {
	c := City{
		Coord:   coord,
		Home:    home,
		coins:   make([]int64, denominations),
		pending: make([]int64, denominations),
		portion: p.Portion,
	}
	c.reset(p.InitialCount)
	return c
}

// reset restores the starting stock and clears anything in transit.
func (c *City) reset(initial int64) {
	clear(c.coins)
	clear(c.pending)
	c.coins[c.Home] = initial
}

// IsComplete reports whether the city holds at least one coin of every
// denomination.
func (c *City) IsComplete() bool {
	for _, n := range c.coins {
		if n <= 0 {
			return false
		}
	}
	return true
}

// Transport moves one share of each sufficiently stocked denomination to
// every neighbor's pending buffer. The share is fixed from the count before
// any coins leave; remainders stay put. It reports whether any coins moved.
func (c *City) Transport(arena []City) bool {
	moved := false
	for i, count := range c.coins {
		if count < c.portion {
			continue
		}
		share := count / c.portion
		for _, n := range c.neighbors {
			arena[n].pending[i] += share
			c.coins[i] -= share
			moved = true
		}
	}
	return moved
}

// Settle applies the day's pending coins. Call only once every city of the
// grid has transported.
func (c *City) Settle() {
	for i, n := range c.pending {
		c.coins[i] += n
		c.pending[i] = 0
	}
}

// Coins returns a copy of the current count per denomination.
func (c *City) Coins() []int64 {
	out := make([]int64, len(c.coins))
	copy(out, c.coins)
	return out
}

// Neighbors returns the arena indices of adjacent cities.
func (c *City) Neighbors() []int {
	return c.neighbors
}
