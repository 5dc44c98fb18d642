package engine

import (
	"fmt"
	"unicode/utf8"

	"github.com/talgya/euro-diffusion/internal/world"
)

// MaxNameLen is the longest territory name accepted.
const MaxNameLen = 25

// Territory is a named rectangle of cities whose home denomination is the
// territory's position in the grid.
type Territory struct {
	Name   string     `json:"name"`
	Bounds world.Rect `json:"bounds"`

	cities []int // Arena indices, creation order
}

// NewTerritory validates the name and bounds.
func NewTerritory(name string, bounds world.Rect) (*Territory, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLen {
		return nil, fmt.Errorf("%w: %q is %d characters, max %d", ErrInvalidName, name, n, MaxNameLen)
	}
	if err := bounds.Validate(); err != nil {
		return nil, fmt.Errorf("%w: territory %q: %w", ErrInvalidBounds, name, err)
	}
	return &Territory{Name: name, Bounds: bounds}, nil
}

func (t *Territory) addCity(index int) {
	t.cities = append(t.cities, index)
}

// Cities returns the arena indices of the territory's cities.
func (t *Territory) Cities() []int {
	return t.cities
}

// IsComplete reports whether every city of the territory is complete.
func (t *Territory) IsComplete(arena []City) bool {
	for _, i := range t.cities {
		if !arena[i].IsComplete() {
			return false
		}
	}
	return true
}
