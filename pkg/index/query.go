package index

import (
	"sort"

	"tableflip.dev/anno/pkg/caldate"
	"tableflip.dev/anno/pkg/entry"
	"tableflip.dev/anno/pkg/granularity"
	"tableflip.dev/anno/pkg/julian"
)

// cellDate maps the query date to the date whose bucket key represents
// the cell at granularity g. Only week granularity needs real work: the
// month/year/decade keys derive from any contained date directly.
func (ix *Index) cellDate(d caldate.Date, g granularity.Granularity) (caldate.Date, bool) {
	if g != granularity.Week {
		return d, true
	}
	ws, err := caldate.Canonicalize(d, granularity.Week, ix.weekStart)
	if err != nil {
		return caldate.Date{}, false
	}
	return ws, true
}

// HasEntry reports whether the calendar cell containing d at the given
// view granularity should be marked: true when the cell's own bucket or
// any coarser containing bucket holds an entry. A month entry marks every
// day cell of its month; a decade entry marks every year cell of its
// decade. Never fails; malformed input simply reports false.
func (ix *Index) HasEntry(d caldate.Date, view granularity.Granularity) bool {
	if !d.Valid() {
		return false
	}
	for _, g := range view.AtOrAbove() {
		cd, ok := ix.cellDate(d, g)
		if !ok {
			continue
		}
		if ix.HasKey(cd, g) {
			return true
		}
	}
	return false
}

// EntriesForCell returns every entry visible at the cell containing d at
// the view granularity, ordered finest granularity first and insertion
// order within each bucket. The first element is the cell's
// representative entry for single-value displays such as color.
func (ix *Index) EntriesForCell(d caldate.Date, view granularity.Granularity) []*entry.Entry {
	if !d.Valid() {
		return nil
	}
	var out []*entry.Entry
	for _, g := range view.AtOrAbove() {
		cd, ok := ix.cellDate(d, g)
		if !ok {
			continue
		}
		out = append(out, ix.bucket(cd, g)...)
	}
	return out
}

// Representative returns the first visible entry for the cell, or nil
// when the cell is empty: the first entry in the finest non-empty bucket.
func (ix *Index) Representative(d caldate.Date, view granularity.Granularity) *entry.Entry {
	if !d.Valid() {
		return nil
	}
	for _, g := range view.AtOrAbove() {
		cd, ok := ix.cellDate(d, g)
		if !ok {
			continue
		}
		if b := ix.bucket(cd, g); len(b) > 0 {
			return b[0]
		}
	}
	return nil
}

func (ix *Index) bucket(d caldate.Date, g granularity.Granularity) []*entry.Entry {
	switch g {
	case granularity.Day:
		return ix.days[caldate.DayKey(d)]
	case granularity.Week:
		return ix.weeks[caldate.DayKey(d)]
	case granularity.Month:
		return ix.months[caldate.MonthKey(d)]
	case granularity.Year:
		return ix.years[caldate.YearKey(d)]
	case granularity.Decade:
		return ix.decades[caldate.DecadeKey(d)]
	}
	return nil
}

// EntriesInRange returns every entry whose bucket interval intersects
// [start, end], not merely those whose start date falls inside it: a
// February month entry overlaps a range beginning mid-February. Results
// group by granularity finest first, buckets ordered chronologically,
// insertion order within each bucket.
func (ix *Index) EntriesInRange(start, end caldate.Date) []*entry.Entry {
	if !start.Valid() || !end.Valid() {
		return nil
	}
	if start.After(end) {
		start, end = end, start
	}

	var out []*entry.Entry
	for _, g := range granularity.All() {
		out = append(out, ix.rangeBuckets(g, start, end)...)
	}
	return out
}

// rangeBuckets collects the overlapping buckets of one granularity in
// chronological order. Every entry in a bucket shares its canonical
// date, so the bucket interval derives from the first entry.
func (ix *Index) rangeBuckets(g granularity.Granularity, start, end caldate.Date) []*entry.Entry {
	type hit struct {
		start   caldate.Date
		entries []*entry.Entry
	}
	var hits []hit

	collect := func(bucket []*entry.Entry) {
		if len(bucket) == 0 {
			return
		}
		bstart, err := caldate.Parse(bucket[0].CanonicalDate)
		if err != nil {
			return
		}
		bend := bucketEnd(bstart, g)
		if bend.Before(start) || bstart.After(end) {
			return
		}
		hits = append(hits, hit{start: bstart, entries: bucket})
	}

	switch g {
	case granularity.Day:
		for _, b := range ix.days {
			collect(b)
		}
	case granularity.Week:
		for _, b := range ix.weeks {
			collect(b)
		}
	case granularity.Month:
		for _, b := range ix.months {
			collect(b)
		}
	case granularity.Year:
		for _, b := range ix.years {
			collect(b)
		}
	case granularity.Decade:
		for _, b := range ix.decades {
			collect(b)
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].start.Before(hits[j].start)
	})

	var out []*entry.Entry
	for _, h := range hits {
		out = append(out, h.entries...)
	}
	return out
}

// bucketEnd returns the last day covered by the bucket starting at bstart.
func bucketEnd(bstart caldate.Date, g granularity.Granularity) caldate.Date {
	switch g {
	case granularity.Day:
		return bstart
	case granularity.Week:
		if d, err := bstart.AddDays(6); err == nil {
			return d
		}
		return bstart
	case granularity.Month:
		return caldate.Date{
			Year:  bstart.Year,
			Month: bstart.Month,
			Day:   julian.DaysInMonth(bstart.Year, bstart.Month),
		}
	case granularity.Year:
		return caldate.Date{Year: bstart.Year, Month: 12, Day: 31}
	case granularity.Decade:
		return caldate.Date{Year: bstart.Year + 9, Month: 12, Day: 31}
	}
	return bstart
}
