// Package granularity defines the time scales an entry can attach to.
package granularity

import (
	"fmt"
	"strings"
)

// Granularity identifies the time scale of an entry or calendar cell.
type Granularity string

const (
	// Day is a single calendar day.
	Day Granularity = "day"
	// Week is a seven day span starting on the configured week start day.
	Week Granularity = "week"
	// Month is a calendar month.
	Month Granularity = "month"
	// Year is a calendar year.
	Year Granularity = "year"
	// Decade is the ten year span starting at floor(year/10)*10.
	Decade Granularity = "decade"
)

// All returns the supported granularities ordered finest to coarsest.
func All() []Granularity {
	return []Granularity{
		Day,
		Week,
		Month,
		Year,
		Decade,
	}
}

// Parse converts a string to a Granularity or returns an error for unknown
// values. The empty string defaults to Day.
func Parse(raw string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(raw)))
	if g == "" {
		return Day, nil
	}
	for _, candidate := range All() {
		if candidate == g {
			return candidate, nil
		}
	}
	return Day, fmt.Errorf("granularity: unknown granularity %q", raw)
}

// Must parses the input and panics on error. Intended for tests/config.
func Must(raw string) Granularity {
	g, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return g
}

// Valid reports whether g is one of the supported granularities.
func (g Granularity) Valid() bool {
	for _, candidate := range All() {
		if candidate == g {
			return true
		}
	}
	return false
}

// rank orders granularities finest (0) to coarsest (4). Unknown values rank
// coarsest so they sort after every real granularity.
func (g Granularity) rank() int {
	for i, candidate := range All() {
		if candidate == g {
			return i
		}
	}
	return len(All())
}

// FinerThan reports whether g is a strictly finer scale than other.
func (g Granularity) FinerThan(other Granularity) bool {
	return g.rank() < other.rank()
}

// AtOrAbove returns g and every coarser granularity, finest first. A day
// cell is covered by day, week, month, year, and decade entries; a year
// cell only by year and decade entries.
func (g Granularity) AtOrAbove() []Granularity {
	all := All()
	r := g.rank()
	if r >= len(all) {
		return nil
	}
	return all[r:]
}

func (g Granularity) String() string {
	return string(g)
}
