package world

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned by Rect.Validate for a corner outside
// [0, MaxCoord] or a low corner above the high one.
var ErrOutOfRange = errors.New("rectangle out of range")

// Rect is an axis-aligned rectangle of cells, inclusive on all sides.
type Rect struct {
	XLow  int `json:"xl"`
	YLow  int `json:"yl"`
	XHigh int `json:"xh"`
	YHigh int `json:"yh"`
}

// NewRect builds a rectangle from its low and high corners.
func NewRect(xl, yl, xh, yh int) Rect {
	return Rect{XLow: xl, YLow: yl, XHigh: xh, YHigh: yh}
}

// Validate checks that every corner lies within [0, MaxCoord] and that the
// low corner does not exceed the high corner on either axis.
func (r Rect) Validate() error {
	for _, v := range [4]int{r.XLow, r.YLow, r.XHigh, r.YHigh} {
		if v < 0 || v > MaxCoord {
			return fmt.Errorf("%w: %s has coordinate %d outside [0, %d]", ErrOutOfRange, r, v, MaxCoord)
		}
	}
	if r.XLow > r.XHigh || r.YLow > r.YHigh {
		return fmt.Errorf("%w: %s is inverted", ErrOutOfRange, r)
	}
	return nil
}

// Contains reports whether c lies inside the rectangle.
func (r Rect) Contains(c Coord) bool {
	return c.X >= r.XLow && c.X <= r.XHigh && c.Y >= r.YLow && c.Y <= r.YHigh
}

// Width returns the number of cell columns.
func (r Rect) Width() int { return r.XHigh - r.XLow + 1 }

// Height returns the number of cell rows.
func (r Rect) Height() int { return r.YHigh - r.YLow + 1 }

// Area returns the number of cells covered.
func (r Rect) Area() int { return r.Width() * r.Height() }

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		XLow:  min(r.XLow, o.XLow),
		YLow:  min(r.YLow, o.YLow),
		XHigh: max(r.XHigh, o.XHigh),
		YHigh: max(r.YHigh, o.YHigh),
	}
}

// Shift returns the rectangle moved by d.
func (r Rect) Shift(d Coord) Rect {
	return Rect{XLow: r.XLow + d.X, YLow: r.YLow + d.Y, XHigh: r.XHigh + d.X, YHigh: r.YHigh + d.Y}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d..%d,%d]", r.XLow, r.YLow, r.XHigh, r.YHigh)
}
