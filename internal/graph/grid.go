package graph

import (
	"fmt"
	"math"
)

// Row is one value band on the vertical axis.
type Row struct {
	Value float64
	Label string
}

// Grid is the vertical axis of a chart. Rows are ordered from the lowest
// value (index 0) to the highest.
type Grid struct {
	Min  float64
	Max  float64
	Step float64
	Rows []Row
}

// BuildGrid computes the axis for values in [lo, hi] at the given
// resolution. The bounds are widened to whole numbers (even numbers for
// Coarse) so that a row always lands on zero when the range crosses it.
// The grid always has at least one row.
func BuildGrid(lo, hi float64, res Resolution) Grid {
	step := res.Step()
	top := math.Ceil(hi)
	bottom := math.Floor(lo)
	if lo == hi {
		// A flat series collapses to the single row its value buckets into.
		bottom = math.Round(lo/step) * step
		if bottom == 0 {
			bottom = 0 // no "-0.0" label
		}
		top = bottom
	} else if res == Coarse {
		if math.Mod(top, 2) != 0 {
			top++
		}
		if math.Mod(bottom, 2) != 0 {
			bottom--
		}
	}

	n := int(math.Round((top-bottom)/step)) + 1
	rows := make([]Row, n)
	for i := range rows {
		v := bottom + float64(i)*step
		rows[i] = Row{Value: v, Label: fmt.Sprintf("%+.1f", v)}
	}
	return Grid{Min: bottom, Max: top, Step: step, Rows: rows}
}

// Bucket returns the row index for v. Values are rounded half away from
// zero; an index outside the grid is clamped to the nearest row.
func (g Grid) Bucket(v float64) int {
	idx := int(math.Round(v/g.Step) - math.Round(g.Min/g.Step))
	return max(0, min(idx, len(g.Rows)-1))
}

// LabelWidth is the width of the label gutter, including the single space
// that separates it from the data columns.
func (g Grid) LabelWidth() int {
	w := 0
	for _, r := range g.Rows {
		w = max(w, len(r.Label))
	}
	return w + 1
}
