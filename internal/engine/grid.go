package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/euro-diffusion/internal/world"
)

// Grid owns every city of a map in a single arena and the territories that
// group them. Denomination i belongs to Territories[i].
type Grid struct {
	Territories []*Territory
	Bounds      world.Rect // Minimal rectangle covering all territories and the origin

	cities []City
	params Params
}

// NewGrid lays out one city per cell of every territory, wires each city to
// its cardinal neighbors and checks that a multi-territory map is a single
// landmass. Territories passed here are repopulated with cities.
func NewGrid(territories []*Territory, p Params) (*Grid, error) {
	if len(territories) == 0 {
		return nil, ErrNoTerritories
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	g := &Grid{
		Territories: territories,
		params:      p,
	}

	seen := make(map[string]bool, len(territories))
	for _, t := range territories {
		if seen[t.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, t.Name)
		}
		seen[t.Name] = true
		g.Bounds = g.Bounds.Union(t.Bounds)
	}

	// The coordinate table only lives for construction; the arena keeps
	// everything a run needs.
	lookup, err := g.addCities()
	if err != nil {
		return nil, err
	}
	if err := g.addNeighbors(lookup); err != nil {
		return nil, err
	}
	if len(territories) > 1 {
		if err := g.checkConnected(); err != nil {
			return nil, err
		}
	}

	slog.Debug("grid built",
		"territories", len(territories),
		"cities", len(g.cities),
		"bounds", g.Bounds.String(),
	)
	return g, nil
}

func (g *Grid) addCities() (map[world.Coord]int, error) {
	lookup := make(map[world.Coord]int)
	n := len(g.Territories)
	for ti, t := range g.Territories {
		t.cities = nil
		b := t.Bounds
		for x := b.XLow; x <= b.XHigh; x++ {
			for y := b.YLow; y <= b.YHigh; y++ {
				coord := world.Coord{X: x, Y: y}
				if other, ok := lookup[coord]; ok {
					return nil, fmt.Errorf("%w: %q and %q both claim %s",
						ErrOverlap, g.Territories[g.cities[other].Home].Name, t.Name, coord)
				}
				idx := len(g.cities)
				g.cities = append(g.cities, newCity(coord, ti, n, g.params))
				lookup[coord] = idx
				t.addCity(idx)
			}
		}
	}
	return lookup, nil
}

func (g *Grid) addNeighbors(lookup map[world.Coord]int) error {
	multi := len(g.Territories) > 1
	b := g.Bounds
	for x := b.XLow; x <= b.XHigh; x++ {
		for y := b.YLow; y <= b.YHigh; y++ {
			idx, ok := lookup[world.Coord{X: x, Y: y}]
			if !ok {
				continue
			}
			city := &g.cities[idx]

			neighbors := make([]int, 0, len(world.Directions))
			for _, n := range city.Coord.Neighbors() {
				if !b.Contains(n) {
					continue
				}
				if j, ok := lookup[n]; ok {
					neighbors = append(neighbors, j)
				}
			}

			if multi && len(neighbors) == 0 {
				return fmt.Errorf("%w: city %s in %q",
					ErrDisconnectedCity, city.Coord, g.Territories[city.Home].Name)
			}
			city.neighbors = neighbors
		}
	}
	return nil
}

// checkConnected walks the neighbor links from the first city. Islands that
// each have internal neighbors pass the zero-neighbor check but would never
// exchange coins.
func (g *Grid) checkConnected() error {
	visited := make([]bool, len(g.cities))
	queue := []int{0}
	visited[0] = true
	reached := 1
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.cities[cur].neighbors {
			if visited[n] {
				continue
			}
			visited[n] = true
			reached++
			queue = append(queue, n)
		}
	}
	if reached == len(g.cities) {
		return nil
	}
	for i, v := range visited {
		if !v {
			c := g.cities[i]
			return fmt.Errorf("%w: %q is cut off from %q",
				ErrDisconnectedRegion, g.Territories[c.Home].Name, g.Territories[g.cities[0].Home].Name)
		}
	}
	return nil
}

// City returns the city at arena index i.
func (g *Grid) City(i int) *City {
	return &g.cities[i]
}

// CityCount returns the number of cities on the map.
func (g *Grid) CityCount() int {
	return len(g.cities)
}
