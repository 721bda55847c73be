package index

import (
	"tableflip.dev/anno/pkg/caldate"
	"tableflip.dev/anno/pkg/entry"
	"tableflip.dev/anno/pkg/granularity"
)

// Add indexes a single entry in place, O(1) amortized. The entry's
// CanonicalDate is trusted to already be the bucket start for its
// granularity; Add only parses it to derive the key. Errors are reported
// to the caller and leave the index untouched.
func (ix *Index) Add(e *entry.Entry) error {
	d, err := bucketKey(e)
	if err != nil {
		return err
	}
	switch e.Granularity {
	case granularity.Day:
		k := caldate.DayKey(d)
		ix.days[k] = append(ix.days[k], e)
		if e.HasTime {
			ix.hasTime[k] = true
		}
	case granularity.Week:
		// A week entry's stored canonical date already is the week
		// start, so the key is the date string itself.
		k := caldate.DayKey(d)
		ix.weeks[k] = append(ix.weeks[k], e)
	case granularity.Month:
		k := caldate.MonthKey(d)
		ix.months[k] = append(ix.months[k], e)
	case granularity.Year:
		k := caldate.YearKey(d)
		ix.years[k] = append(ix.years[k], e)
	case granularity.Decade:
		k := caldate.DecadeKey(d)
		ix.decades[k] = append(ix.decades[k], e)
	}
	return nil
}

// Remove drops the entry with e's id from its granularity bucket. When
// the bucket empties, its key is deleted from the map so no orphan key
// survives. A missing bucket, a missing id, or an unsaved entry (id 0)
// is a no-op: the index tolerates upstream inconsistency rather than
// crashing an interactive session.
func (ix *Index) Remove(e *entry.Entry) {
	if !e.Saved() {
		return
	}
	d, err := bucketKey(e)
	if err != nil {
		return
	}
	switch e.Granularity {
	case granularity.Day:
		k := caldate.DayKey(d)
		if b, ok := removeByID(ix.days[k], e.ID); ok {
			if len(b) == 0 {
				delete(ix.days, k)
				delete(ix.hasTime, k)
			} else {
				ix.days[k] = b
				ix.refreshHasTime(k, b)
			}
		}
	case granularity.Week:
		k := caldate.DayKey(d)
		if b, ok := removeByID(ix.weeks[k], e.ID); ok {
			if len(b) == 0 {
				delete(ix.weeks, k)
			} else {
				ix.weeks[k] = b
			}
		}
	case granularity.Month:
		k := caldate.MonthKey(d)
		if b, ok := removeByID(ix.months[k], e.ID); ok {
			if len(b) == 0 {
				delete(ix.months, k)
			} else {
				ix.months[k] = b
			}
		}
	case granularity.Year:
		k := caldate.YearKey(d)
		if b, ok := removeByID(ix.years[k], e.ID); ok {
			if len(b) == 0 {
				delete(ix.years, k)
			} else {
				ix.years[k] = b
			}
		}
	case granularity.Decade:
		k := caldate.DecadeKey(d)
		if b, ok := removeByID(ix.decades[k], e.ID); ok {
			if len(b) == 0 {
				delete(ix.decades, k)
			} else {
				ix.decades[k] = b
			}
		}
	}
}

// removeByID splices the entry with the given id out of the bucket,
// preserving insertion order. The second return reports whether an entry
// was removed.
func removeByID(bucket []*entry.Entry, id int64) ([]*entry.Entry, bool) {
	for i, e := range bucket {
		if e != nil && e.ID == id {
			return append(bucket[:i:i], bucket[i+1:]...), true
		}
	}
	return bucket, false
}

// refreshHasTime recomputes the time-of-day mark for a day bucket after a
// removal left it non-empty.
func (ix *Index) refreshHasTime(key string, bucket []*entry.Entry) {
	for _, e := range bucket {
		if e.HasTime {
			ix.hasTime[key] = true
			return
		}
	}
	delete(ix.hasTime, key)
}
