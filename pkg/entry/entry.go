// Package entry defines the journal entry model. The index never inspects
// an entry's payload beyond its id, canonical date, and granularity.
package entry

import (
	"fmt"

	"tableflip.dev/anno/pkg/granularity"
)

// New creates an unsaved entry (ID 0) for the given canonical date and
// granularity. Callers must canonicalize the date before building the
// entry; the index trusts it as stored.
func New(canonicalDate string, g granularity.Granularity, title string) *Entry {
	return &Entry{
		CanonicalDate: canonicalDate,
		Granularity:   g,
		Title:         title,
	}
}

// Entry is one journal entry attached to a time bucket.
//
// CanonicalDate is always the start of the bucket implied by Granularity
// (the first day of the month for a month entry, the configured week start
// for a week entry, and so on). Granularity is fixed for the entry's
// lifetime; changing it is modeled as delete plus recreate.
type Entry struct {
	// ID is the stable identity once persisted; 0 means not yet saved.
	ID int64 `json:"id,omitempty"`

	CanonicalDate string                  `json:"canonicalDate"`
	Granularity   granularity.Granularity `json:"granularity"`

	// Time of day, only meaningful for day granularity. Used for
	// same-day ordering and display, never for bucketing.
	HasTime bool `json:"hasTime,omitempty"`
	Hour    int  `json:"hour,omitempty"`
	Minute  int  `json:"minute,omitempty"`
	Second  int  `json:"second,omitempty"`

	Title    string    `json:"title,omitempty"`
	Body     string    `json:"body,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
	Pinned   bool      `json:"pinned,omitempty"`
	Archived bool      `json:"archived,omitempty"`
	Created  Timestamp `json:"created,omitempty"`
}

// Saved reports whether the entry has a persisted identity.
func (e *Entry) Saved() bool {
	return e != nil && e.ID != 0
}

// TimeOfDay renders the optional time as "HH:MM" or "HH:MM:SS", or ""
// when the entry carries no time.
func (e *Entry) TimeOfDay() string {
	if e == nil || !e.HasTime {
		return ""
	}
	if e.Second != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", e.Hour, e.Minute, e.Second)
	}
	return fmt.Sprintf("%02d:%02d", e.Hour, e.Minute)
}

func (e *Entry) String() string {
	if t := e.TimeOfDay(); t != "" {
		return fmt.Sprintf("%s %s  %s", e.CanonicalDate, t, e.Title)
	}
	return fmt.Sprintf("%s [%s]  %s", e.CanonicalDate, e.Granularity, e.Title)
}
