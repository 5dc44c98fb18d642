// Package world provides the square cell grid coordinates and rectangles
// that territories are laid out on.
package world

import "fmt"

// MaxCoord is the largest addressable coordinate on either axis.
const MaxCoord = 10

// Coord is a cell position on the grid. X grows east, Y grows north.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Directions defines the four cardinal neighbor offsets, probed in this order:
// east, west, north, south.
var Directions = [4]Coord{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
}

// Add returns the coordinate offset by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// Neighbors returns the four adjacent coordinates in Directions order.
// Some of them may fall outside any grid.
func (c Coord) Neighbors() [4]Coord {
	var result [4]Coord
	for i, dir := range Directions {
		result[i] = c.Add(dir)
	}
	return result
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
