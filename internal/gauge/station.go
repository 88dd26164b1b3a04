package gauge

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidStationID is returned for a reference that is not a tide
// gauge notation such as E70024.
var ErrInvalidStationID = errors.New("invalid station id")

// Tide gauge references look like E70024, with an optional -anglian suffix
// on a handful of stations.
var stationIDPattern = regexp.MustCompile(`^E7\d{4}(?:-anglian)?$`)

// ValidateStationID checks id against the tide gauge reference format.
func ValidateStationID(id string) error {
	if !stationIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidStationID, id)
	}
	return nil
}

// Station is a tide gauge as listed by the stations endpoint.
type Station struct {
	Label         string `json:"label"`
	Notation      string `json:"notation"`
	Town          string `json:"town"`
	CatchmentName string `json:"catchmentName"`
}

// catchment returns the catchment name without its country prefix.
func (s Station) catchment() string {
	return strings.TrimPrefix(s.CatchmentName, "England - ")
}

// FullName formats the station as a single aligned listing line.
func (s Station) FullName() string {
	name := fmt.Sprintf("%-20s[%-15s", s.Label, s.Notation+"]")
	switch {
	case s.Town != "" && s.CatchmentName != "":
		name += fmt.Sprintf(" (%s, %s)", s.Town, s.catchment())
	case s.Town != "":
		name += fmt.Sprintf(" (%s)", s.Town)
	case s.CatchmentName != "":
		name += fmt.Sprintf(" (%s)", s.catchment())
	}
	return name
}

// Matches reports whether filter occurs, ignoring case, in any of the
// station's text fields. An empty filter matches every station.
func (s Station) Matches(filter string) bool {
	filter = strings.ToLower(filter)
	for _, field := range []string{s.CatchmentName, s.Label, s.Notation, s.Town} {
		if strings.Contains(strings.ToLower(field), filter) {
			return true
		}
	}
	return false
}

// FilterStations returns the stations matching filter, preserving order.
func FilterStations(stations []Station, filter string) []Station {
	if filter == "" {
		return stations
	}
	var out []Station
	for _, s := range stations {
		if s.Matches(filter) {
			out = append(out, s)
		}
	}
	return out
}
