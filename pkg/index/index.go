// Package index maintains the multi-resolution entry index: one bucket
// map per granularity, keyed by canonical bucket start. It answers "does
// this calendar cell have an entry" and range overlap queries in O(1)
// per bucket probe, and supports incremental add/remove so single-entry
// edits never pay a full rebuild.
//
// The index trusts that every entry's CanonicalDate is already the start
// of its bucket (callers canonicalize before insertion). Existence is a
// derived property of the bucket maps: a key is present if and only if
// its list is non-empty, so the maps and the existence view can never
// drift apart.
package index

import (
	"fmt"

	"tableflip.dev/anno/pkg/caldate"
	"tableflip.dev/anno/pkg/entry"
	"tableflip.dev/anno/pkg/granularity"
)

// Index holds entries bucketed at five granularities. It has exactly one
// logical owner; mutations are not safe for concurrent use.
type Index struct {
	weekStart int

	days    map[string][]*entry.Entry
	weeks   map[string][]*entry.Entry
	months  map[string][]*entry.Entry
	years   map[int][]*entry.Entry
	decades map[int][]*entry.Entry

	// hasTime marks day bucket keys with at least one entry carrying a
	// time of day, for same-day multi-entry display.
	hasTime map[string]bool
}

// New returns an empty index using the given week start day (0=Sunday
// through 6=Saturday; other values are reduced modulo 7).
func New(weekStart int) *Index {
	return &Index{
		weekStart: ((weekStart % 7) + 7) % 7,
		days:      make(map[string][]*entry.Entry),
		weeks:     make(map[string][]*entry.Entry),
		months:    make(map[string][]*entry.Entry),
		years:     make(map[int][]*entry.Entry),
		decades:   make(map[int][]*entry.Entry),
		hasTime:   make(map[string]bool),
	}
}

// WeekStart returns the week start day the index was built with.
func (ix *Index) WeekStart() int {
	return ix.weekStart
}

// Len returns the total number of indexed entries.
func (ix *Index) Len() int {
	n := 0
	for _, b := range ix.days {
		n += len(b)
	}
	for _, b := range ix.weeks {
		n += len(b)
	}
	for _, b := range ix.months {
		n += len(b)
	}
	for _, b := range ix.years {
		n += len(b)
	}
	for _, b := range ix.decades {
		n += len(b)
	}
	return n
}

// HasKey reports whether the bucket for date d at granularity g holds at
// least one entry. This is the existence-set view, derived from the
// bucket maps so it can never disagree with them.
func (ix *Index) HasKey(d caldate.Date, g granularity.Granularity) bool {
	switch g {
	case granularity.Day:
		return len(ix.days[caldate.DayKey(d)]) > 0
	case granularity.Week:
		return len(ix.weeks[caldate.DayKey(d)]) > 0
	case granularity.Month:
		return len(ix.months[caldate.MonthKey(d)]) > 0
	case granularity.Year:
		return len(ix.years[caldate.YearKey(d)]) > 0
	case granularity.Decade:
		return len(ix.decades[caldate.DecadeKey(d)]) > 0
	}
	return false
}

// HasTimeOfDay reports whether any day entry on the given date carries a
// time of day.
func (ix *Index) HasTimeOfDay(d caldate.Date) bool {
	return ix.hasTime[caldate.DayKey(d)]
}

// bucketKey derives the index key for an entry from its stored canonical
// date. The date string is parsed once and reformatted so entries with
// equivalent but differently padded dates land in the same bucket. Week
// entries store the week start itself, so their key is the date string.
func bucketKey(e *entry.Entry) (caldate.Date, error) {
	if e == nil {
		return caldate.Date{}, fmt.Errorf("index: nil entry")
	}
	d, err := caldate.Parse(e.CanonicalDate)
	if err != nil {
		return caldate.Date{}, err
	}
	if !e.Granularity.Valid() {
		return caldate.Date{}, fmt.Errorf("index: entry %d has unknown granularity %q", e.ID, e.Granularity)
	}
	return d, nil
}

// Check verifies the structural invariant: no bucket key maps to an empty
// list, and every hasTime key is backed by a day bucket with at least one
// timed entry. Used by tests and debug assertions.
func (ix *Index) Check() error {
	for k, b := range ix.days {
		if len(b) == 0 {
			return fmt.Errorf("index: orphan day bucket %q", k)
		}
	}
	for k, b := range ix.weeks {
		if len(b) == 0 {
			return fmt.Errorf("index: orphan week bucket %q", k)
		}
	}
	for k, b := range ix.months {
		if len(b) == 0 {
			return fmt.Errorf("index: orphan month bucket %q", k)
		}
	}
	for k, b := range ix.years {
		if len(b) == 0 {
			return fmt.Errorf("index: orphan year bucket %d", k)
		}
	}
	for k, b := range ix.decades {
		if len(b) == 0 {
			return fmt.Errorf("index: orphan decade bucket %d", k)
		}
	}
	for k := range ix.hasTime {
		timed := false
		for _, e := range ix.days[k] {
			if e.HasTime {
				timed = true
				break
			}
		}
		if !timed {
			return fmt.Errorf("index: stale hasTime mark for %q", k)
		}
	}
	return nil
}
