// Package input reads diffusion cases from the classic text format and from
// schema-checked JSON, and writes cases back as text.
//
// Text format: a line holding the country count c, then c lines of
// "name xl yl xh yh" with 1-based coordinates, repeated per case, ending with
// a line holding 0. Coordinates are shifted to 0-based on read.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/talgya/euro-diffusion/internal/engine"
	"github.com/talgya/euro-diffusion/internal/world"
)

var (
	ErrMalformed         = errors.New("malformed input")
	ErrMissingTerminator = errors.New("input must end with a 0 line")
	ErrSchema            = errors.New("input does not match schema")
)

// toZeroBased shifts 1-based input coordinates onto the grid.
var toZeroBased = world.Coord{X: -1, Y: -1}

// Country is one parsed country line, in 0-based grid coordinates.
type Country struct {
	Name   string     `json:"name"`
	Bounds world.Rect `json:"bounds"`
}

// Case is one map to simulate. Err is set when a country line of the case
// could not be parsed; other cases are unaffected.
type Case struct {
	Number    int
	Countries []Country
	Err       error
}

// Territories validates the case's countries into engine territories.
func (c Case) Territories() ([]*engine.Territory, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	out := make([]*engine.Territory, 0, len(c.Countries))
	for _, country := range c.Countries {
		t, err := engine.NewTerritory(country.Name, country.Bounds)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Read parses every case up to the terminating 0 line. Blank lines are
// ignored. A structural problem (bad count line, truncated case, missing
// terminator) fails the whole input.
func Read(r io.Reader) ([]Case, error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	next := func() (string, bool) {
		for scanner.Scan() {
			lineNo++
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	var cases []Case
	for {
		line, ok := next()
		if !ok {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("read input: %w", err)
			}
			return nil, ErrMissingTerminator
		}

		count, err := strconv.Atoi(line)
		if err != nil || count < 0 {
			return nil, fmt.Errorf("%w: line %d: expected a number of countries, got %q", ErrMalformed, lineNo, line)
		}
		if count == 0 {
			return cases, nil
		}

		c := Case{Number: len(cases) + 1}
		for i := 0; i < count; i++ {
			line, ok := next()
			if !ok {
				return nil, fmt.Errorf("%w: case %d: expected %d countries, got %d", ErrMalformed, c.Number, count, i)
			}
			country, err := parseCountry(line)
			if err != nil {
				if c.Err == nil {
					c.Err = fmt.Errorf("line %d: %w", lineNo, err)
				}
				continue
			}
			c.Countries = append(c.Countries, country)
		}
		cases = append(cases, c)
	}
}

// parseCountry parses "name xl yl xh yh".
func parseCountry(line string) (Country, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return Country{}, fmt.Errorf("%w: want \"name xl yl xh yh\", got %q", ErrMalformed, line)
	}

	var coords [4]int
	for i, f := range fields[1:] {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Country{}, fmt.Errorf("%w: coordinate %q of %s is not an integer", ErrMalformed, f, fields[0])
		}
		coords[i] = v
	}

	bounds := world.NewRect(coords[0], coords[1], coords[2], coords[3]).Shift(toZeroBased)
	return Country{Name: fields[0], Bounds: bounds}, nil
}

// Write encodes cases in the text format, converting back to 1-based
// coordinates, and appends the terminating 0 line.
func Write(w io.Writer, cases []Case) error {
	bw := bufio.NewWriter(w)
	for _, c := range cases {
		fmt.Fprintf(bw, "%d\n", len(c.Countries))
		for _, country := range c.Countries {
			b := country.Bounds
			fmt.Fprintf(bw, "%s %d %d %d %d\n", country.Name, b.XLow+1, b.YLow+1, b.XHigh+1, b.YHigh+1)
		}
	}
	fmt.Fprintln(bw, "0")
	return bw.Flush()
}
