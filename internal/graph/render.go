package graph

import (
	"fmt"
	"strings"
)

const (
	timeLayout  = "15:04"
	titleLayout = "Jan 02 2006"
)

// Render draws a chart of the newest hours worth of readings. readings must
// be ordered newest first, as returned by the gauge API; the chart runs
// oldest to newest from left to right. A non-positive hours draws every
// reading.
//
// The result is a title line, a header of time labels, one line per grid
// row from the highest value down, and a footer of time labels offset by an
// hour from the header. Every line but the title fits within the label
// gutter plus one column per reading; the title is never cut, so on short
// spans it is wider than the chart.
func Render(readings []Reading, stationID string, res Resolution, hours int) ([]string, error) {
	shown := oldestFirst(readings, hours)
	lo, hi, err := Analyze(shown)
	if err != nil {
		return nil, err
	}
	grid := BuildGrid(lo, hi, res)
	gutter := grid.LabelWidth()
	width := gutter + len(shown)

	header, footer := timeLabels(shown, gutter)

	lines := make([]string, 0, len(grid.Rows)+3)
	lines = append(lines, title(stationID, shown[0], width), header)
	lines = append(lines, body(grid, shown, gutter)...)
	lines = append(lines, footer)
	return lines, nil
}

// oldestFirst returns a reversed copy of the newest hours*ReadingsPerHour
// readings.
func oldestFirst(readings []Reading, hours int) []Reading {
	n := len(readings)
	if hours > 0 {
		n = min(n, hours*ReadingsPerHour)
	}
	out := make([]Reading, n)
	for i := range n {
		out[n-1-i] = readings[i]
	}
	return out
}

func title(stationID string, first Reading, width int) string {
	left := "Station: " + stationID
	date := first.Time.UTC().Format(titleLayout)
	if pad := width - len(left) - len(date); pad > 0 {
		return left + strings.Repeat(" ", pad) + date
	}
	return left + "  " + date
}

// body returns the grid rows top to bottom.
func body(g Grid, shown []Reading, gutter int) []string {
	buckets := make([]int, len(shown))
	for i, r := range shown {
		buckets[i] = g.Bucket(r.Value)
	}

	lines := make([]string, 0, len(g.Rows))
	for row := len(g.Rows) - 1; row >= 0; row-- {
		cells := make([]byte, len(shown))
		for col, b := range buckets {
			if b == row {
				cells[col] = Marker
			} else {
				cells[col] = ' '
			}
		}
		lines = append(lines, fmt.Sprintf("%*s ", gutter-1, g.Rows[row].Label)+string(cells))
	}
	return lines
}

// timeLabels places an HH:MM label on every hour boundary counted back from
// the newest reading, with the colon over the reading's column. Labels
// alternate between the header and the footer; the header always carries
// the label nearest the newest reading, so with a full dataset the header
// starts one hour in when hours is even and the footer does when it is odd.
func timeLabels(shown []Reading, gutter int) (string, string) {
	width := gutter + len(shown)
	header := []byte(strings.Repeat(" ", width))
	footer := []byte(strings.Repeat(" ", width))

	for col, r := range shown {
		fromNewest := len(shown) - 1 - col
		if fromNewest%ReadingsPerHour != ReadingsPerHour-1 {
			continue
		}
		dst := header
		if (fromNewest/ReadingsPerHour)%2 == 1 {
			dst = footer
		}
		copy(dst[gutter+col-2:], r.Time.UTC().Format(timeLayout))
	}
	return strings.TrimRight(string(header), " "), strings.TrimRight(string(footer), " ")
}
