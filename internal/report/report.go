// Package report orders and prints diffusion results.
package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
)

// Entry is one territory's completion day.
type Entry struct {
	Name string `json:"name"`
	Days int    `json:"days"`
}

// Sort orders a result by completion day, then by name.
func Sort(result map[string]int) []Entry {
	entries := make([]Entry, 0, len(result))
	for name, days := range result {
		entries = append(entries, Entry{Name: name, Days: days})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(a.Days, b.Days); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return entries
}

// WriteCase prints the case header followed by one "name days" line per
// territory in Sort order.
func WriteCase(w io.Writer, number int, result map[string]int) error {
	if err := writeHeader(w, number); err != nil {
		return err
	}
	for _, e := range Sort(result) {
		if _, err := fmt.Fprintf(w, "%s %d\n", e.Name, e.Days); err != nil {
			return err
		}
	}
	return nil
}

// WriteError prints the case header followed by the reason the case failed.
func WriteError(w io.Writer, number int, caseErr error) error {
	if err := writeHeader(w, number); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Error: %v\n", caseErr)
	return err
}

func writeHeader(w io.Writer, number int) error {
	_, err := fmt.Fprintf(w, "Case Number %d\n", number)
	return err
}
