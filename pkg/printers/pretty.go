// Package printers renders calendar grids and entry tables to the
// terminal. It is a read-only consumer of the index.
package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/anno/pkg/entry"
)

type PrettyPrint struct {
	// ColorFor supplies the display color for an entry; when nil, colors
	// are derived directly without memoization.
	ColorFor func(*entry.Entry) string
}

func (pp *PrettyPrint) colorFor(e *entry.Entry) string {
	if pp.ColorFor != nil {
		return pp.ColorFor(e)
	}
	return entry.DisplayColor(e)
}

// Entries prints a table of entries: id, bucket, optional time of day,
// granularity, and title.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	if len(entries) == 0 {
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("ID", "DATE", "TIME", "SCALE", "TITLE")

	for _, e := range entries {
		if e == nil {
			continue
		}
		title := e.Title
		if e.Pinned {
			title = "* " + title
		}
		tbl.AddRow(e.ID, e.CanonicalDate, e.TimeOfDay(), e.Granularity.String(), title)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Entry prints one entry with its body, for `get` on a single id.
func (pp *PrettyPrint) Entry(e *entry.Entry) {
	if e == nil {
		return
	}
	b := color.New(color.Bold)
	_, _ = b.Println(e.Title)
	fmt.Printf("%s [%s] %s\n", e.CanonicalDate, e.Granularity, e.TimeOfDay())
	if len(e.Tags) > 0 {
		i := color.New(color.Italic)
		for _, tag := range e.Tags {
			_, _ = i.Printf("#%s ", tag)
		}
		fmt.Println()
	}
	if e.Body != "" {
		fmt.Println()
		fmt.Println(e.Body)
	}
}
