package index

import (
	"fmt"
	"os"

	"tableflip.dev/anno/pkg/entry"
)

// Build constructs an index from a full entry collection in one O(n)
// pass. Entries with canonical dates that cannot be parsed are skipped
// and logged rather than aborting the build: one corrupt entry must never
// take the rest of the calendar down. Building is idempotent; the same
// input always produces a structurally equal index.
func Build(entries []*entry.Entry, weekStart int) *Index {
	ix := New(weekStart)
	for _, e := range entries {
		if err := ix.Add(e); err != nil {
			fmt.Fprintf(os.Stderr, "index: skipping entry %d: %v\n", entryID(e), err)
		}
	}
	return ix
}

func entryID(e *entry.Entry) int64 {
	if e == nil {
		return 0
	}
	return e.ID
}
