package graph

import (
	"fmt"
	"strings"
)

// Resolution controls the vertical quantization of a chart.
type Resolution int

const (
	Coarse Resolution = iota + 1
	Normal
	Fine
)

var resolutionNames = [...]string{
	Coarse: "coarse",
	Normal: "normal",
	Fine:   "fine",
}

func (r Resolution) String() string {
	if r > 0 && int(r) < len(resolutionNames) {
		return resolutionNames[r]
	}
	return "unknown"
}

// Step is the value distance between two adjacent rows.
func (r Resolution) Step() float64 {
	switch r {
	case Coarse:
		return 2
	case Fine:
		return 0.5
	default:
		return 1
	}
}

// Valid reports whether r is one of the defined resolutions.
func (r Resolution) Valid() bool {
	return r == Coarse || r == Normal || r == Fine
}

// ParseResolution maps a name to a Resolution. The legacy names small,
// medium and large are accepted as aliases.
func ParseResolution(s string) (Resolution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "coarse", "small":
		return Coarse, nil
	case "normal", "medium":
		return Normal, nil
	case "fine", "large":
		return Fine, nil
	}
	return 0, fmt.Errorf("%w: %q (use coarse, normal or fine)", ErrInvalidResolution, s)
}
