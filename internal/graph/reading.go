// Package graph turns a series of water-level readings into a fixed-width
// ASCII chart.
package graph

import (
	"errors"
	"time"
)

const (
	// Cadence is the sampling interval between consecutive readings.
	Cadence = 15 * time.Minute
	// ReadingsPerHour is the number of readings per hour at Cadence.
	ReadingsPerHour = int(time.Hour / Cadence)

	// MinHours and MaxHours bound the span a chart may cover.
	MinHours = 1
	MaxHours = 72

	// Marker is drawn where a reading meets its row.
	Marker = '~'
)

var (
	// ErrEmptyDataset is returned when there are no readings to chart.
	ErrEmptyDataset = errors.New("empty dataset")
	// ErrInvalidResolution is returned for an unknown resolution name.
	ErrInvalidResolution = errors.New("invalid resolution")
)

// Reading is a single water-level sample, in metres relative to the
// station datum.
type Reading struct {
	Time  time.Time
	Value float64
}

// Analyze returns the smallest and largest value in readings.
func Analyze(readings []Reading) (float64, float64, error) {
	if len(readings) == 0 {
		return 0, 0, ErrEmptyDataset
	}
	lo, hi := readings[0].Value, readings[0].Value
	for _, r := range readings[1:] {
		lo = min(lo, r.Value)
		hi = max(hi, r.Value)
	}
	return lo, hi, nil
}
