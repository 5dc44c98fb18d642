// Package scenario generates random but always valid diffusion cases by
// tiling a square map with noise-sized rectangles.
package scenario

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/euro-diffusion/internal/input"
	"github.com/talgya/euro-diffusion/internal/world"
)

// GenConfig holds case generation parameters.
type GenConfig struct {
	Seed    int64   // Random seed (0 = random)
	Size    int     // Map side length in cells, 1 to MaxCoord+1
	MaxSpan int     // Largest country side length (0 = Size/2)
	Freq    float64 // Noise sampling frequency along the cut axis
}

// DefaultGenConfig returns a mid-sized map that simulates in well under a
// second.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Seed:    0,
		Size:    6,
		MaxSpan: 0,
		Freq:    0.7,
	}
}

// Generate returns count cases. Each case cuts the map into columns, then
// each column into rows, with cut widths read from OpenSimplex noise. The
// pieces tile the whole square, so every case is one connected landmass.
func Generate(cfg GenConfig, count int) []input.Case {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	size := min(max(cfg.Size, 1), world.MaxCoord+1)
	span := cfg.MaxSpan
	if span <= 0 {
		span = max(size/2, 1)
	}

	noise := opensimplex.NewNormalized(seed)
	rng := rand.New(rand.NewSource(seed + 400))

	cases := make([]input.Case, 0, count)
	for k := 0; k < count; k++ {
		// Each case samples its own band of the noise field.
		band := float64(k) * 13.0
		rects := tile(noise, size, span, cfg.Freq, band)
		names := generateNames(rng, len(rects))

		c := input.Case{Number: k + 1}
		for i, r := range rects {
			c.Countries = append(c.Countries, input.Country{Name: names[i], Bounds: r})
		}
		cases = append(cases, c)
	}
	return cases
}

func tile(noise opensimplex.Noise, size, span int, freq, band float64) []world.Rect {
	var rects []world.Rect
	for x := 0; x < size; {
		w := cut(noise.Eval2(float64(x)*freq, band), span, size-x)
		for y := 0; y < size; {
			h := cut(noise.Eval2(float64(x)*freq+float64(y)*freq*0.5, band+float64(y)+5.0), span, size-y)
			rects = append(rects, world.NewRect(x, y, x+w-1, y+h-1))
			y += h
		}
		x += w
	}
	return rects
}

// cut maps a noise sample in [0, 1) to a side length in [1, span], capped
// by what is left of the map.
func cut(sample float64, span, remaining int) int {
	n := 1 + int(sample*float64(span))
	return min(max(n, 1), span, remaining)
}

func generateNames(rng *rand.Rand, count int) []string {
	prefixes := []string{
		"Iron", "Green", "Ash", "Stone", "Mill", "Cross", "Black",
		"Silver", "Red", "White", "Dark", "Bright", "High", "Low",
		"Old", "New", "Far", "Deep", "Long", "Broad", "Gold", "Frost",
		"Storm", "Thorn", "Elm", "Oak", "Pine", "Copper", "River",
	}
	suffixes := []string{
		"land", "mark", "reach", "march", "vale", "shire", "moor",
		"holm", "mere", "fell", "heath", "wold", "strand", "field",
	}

	used := make(map[string]bool)
	names := make([]string, 0, count)

	for len(names) < count {
		name := prefixes[rng.Intn(len(prefixes))] + suffixes[rng.Intn(len(suffixes))]
		if !used[name] {
			used[name] = true
			names = append(names, name)
		}
	}

	return names
}
