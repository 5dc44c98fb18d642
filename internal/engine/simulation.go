package engine

// Simulate runs the diffusion to completion with a fresh engine and returns
// the day each territory completed.
func (g *Grid) Simulate() (map[string]int, error) {
	return NewEngine().Run(g)
}

// IsComplete reports whether every territory is complete.
func (g *Grid) IsComplete() bool {
	for _, t := range g.Territories {
		if !t.IsComplete(g.cities) {
			return false
		}
	}
	return true
}

// reset restores every city to its starting stock so a grid can be run
// again with identical results.
func (g *Grid) reset() {
	for i := range g.cities {
		g.cities[i].reset(g.params.InitialCount)
	}
}

// Totals returns, per denomination, the coins held plus the coins in transit
// across the whole grid.
func (g *Grid) Totals() []int64 {
	totals := make([]int64, len(g.Territories))
	for i := range g.cities {
		c := &g.cities[i]
		for d := range totals {
			totals[d] += c.coins[d] + c.pending[d]
		}
	}
	return totals
}

// Stats summarises a grid for logging.
type Stats struct {
	Territories int   `json:"territories"`
	Cities      int   `json:"cities"`
	Coins       int64 `json:"coins"`
}

// Stats returns aggregate counts across the grid.
func (g *Grid) Stats() Stats {
	s := Stats{Territories: len(g.Territories), Cities: len(g.cities)}
	for _, t := range g.Totals() {
		s.Coins += t
	}
	return s
}
