// Package engine provides the coin diffusion grid and its day-by-day loop.
package engine

import (
	"fmt"
	"log/slog"
)

// Engine drives a grid forward one day at a time until every territory is
// complete. Each day is a transport pass over every city, a completion
// check, then a settle pass. The two passes are never merged: a city must
// not pass on coins it received the same day.
type Engine struct {
	Day int // Current day counter, reset by Run

	// Optional callbacks.
	OnDay      func(day int)                   // After each settle pass
	OnComplete func(territory string, day int) // When a territory's day is recorded
}

// NewEngine creates an engine with no callbacks.
func NewEngine() *Engine {
	return &Engine{}
}

// Run resets the grid to its starting stock and simulates until every
// territory is complete. The result has one entry per territory.
// A run that stops moving coins before completing, or that reaches the
// grid's day cap, fails with ErrNoProgress.
func (e *Engine) Run(g *Grid) (map[string]int, error) {
	g.reset()
	e.Day = 0
	result := make(map[string]int, len(g.Territories))

	for {
		moved := e.step(g, result)
		if g.IsComplete() {
			break
		}
		// Nothing in transit means every later day repeats this one.
		if !moved {
			return nil, fmt.Errorf("%w: no coins moved on day %d, %d of %d territories complete",
				ErrNoProgress, e.Day-1, len(result), len(g.Territories))
		}
		if e.Day >= g.params.MaxDays {
			return nil, fmt.Errorf("%w: not complete after %d days", ErrNoProgress, e.Day)
		}
	}

	// Territories completed by the last settle pass get the final count.
	for _, t := range g.Territories {
		if _, ok := result[t.Name]; !ok {
			e.record(result, t.Name)
		}
	}

	slog.Debug("diffusion finished", "days", e.Day, "territories", len(result))
	return result, nil
}

// step advances the simulation by one day and reports whether any coins
// moved.
func (e *Engine) step(g *Grid, result map[string]int) bool {
	moved := false
	for _, t := range g.Territories {
		for _, i := range t.cities {
			if g.cities[i].Transport(g.cities) {
				moved = true
			}
		}
	}

	for _, t := range g.Territories {
		if _, done := result[t.Name]; done {
			continue
		}
		if t.IsComplete(g.cities) {
			e.record(result, t.Name)
		}
	}

	for _, t := range g.Territories {
		for _, i := range t.cities {
			g.cities[i].Settle()
		}
	}

	if e.OnDay != nil {
		e.OnDay(e.Day)
	}
	e.Day++
	return moved
}

func (e *Engine) record(result map[string]int, name string) {
	result[name] = e.Day
	slog.Debug("territory complete", "territory", name, "day", e.Day)
	if e.OnComplete != nil {
		e.OnComplete(name, e.Day)
	}
}
