package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/anno/pkg/caldate"
	"tableflip.dev/anno/pkg/entry"
	"tableflip.dev/anno/pkg/granularity"
	"tableflip.dev/anno/pkg/index"
	"tableflip.dev/anno/pkg/julian"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints a month grid, highlighting days whose cell has an entry
// at any covering granularity.
func (pp *PrettyPrint) Month(ix *index.Index, year, month int) {
	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %s", time.Month(month).String(), caldate.FormatYear(year))
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	pad := width - mid - len(m)
	if pad < 0 {
		pad = 0
	}
	tf.Printf("%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", pad))

	first := caldate.Date{Year: year, Month: month, Day: 1}
	jdn, err := first.JDN()
	if err != nil {
		fmt.Printf("unsupported month: %v\n", err)
		return
	}
	weekStart := ix.WeekStart()

	// Pad out the start of the month.
	col := (julian.Weekday(jdn) - weekStart + 7) % 7
	fmt.Print(strings.Repeat("   ", col))

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	days := julian.DaysInMonth(year, month)
	for i := 0; i < days; i++ {
		d := caldate.Date{Year: year, Month: month, Day: i + 1}
		printer := l1
		if ix.HasEntry(d, granularity.Day) {
			printer = l2
		}
		printer.Printf("%2d ", i+1)

		col++
		if col > 6 {
			col = 0
			fmt.Print("\n")
		}
	}
	fmt.Print("\n\n")
}

// Year prints twelve month grids for the year.
func (pp *PrettyPrint) Year(ix *index.Index, year int) {
	for month := 1; month <= 12; month++ {
		pp.Month(ix, year, month)
	}
}

// MonthEntries prints the month grid followed by the month's entries:
// entries at month scale or above once under the header, then day and
// week entries listed under the day their bucket starts on. Each entry
// prints once, not under every day it covers.
func (pp *PrettyPrint) MonthEntries(ix *index.Index, year, month int) {
	pp.Month(ix, year, month)

	first := caldate.Date{Year: year, Month: month, Day: 1}
	if coarse := ix.EntriesForCell(first, granularity.Month); len(coarse) > 0 {
		pp.Entries(coarse...)
		fmt.Println()
	}

	days := julian.DaysInMonth(year, month)
	for i := 0; i < days; i++ {
		d := caldate.Date{Year: year, Month: month, Day: i + 1}
		var bucket []*entry.Entry
		for _, e := range ix.EntriesForCell(d, granularity.Day) {
			if e.CanonicalDate == d.String() {
				bucket = append(bucket, e)
			}
		}
		if len(bucket) == 0 {
			continue
		}
		b := color.New(color.Bold)
		_, _ = b.Printf("%s\n", d)
		pp.Entries(bucket...)
	}
}

// Decade prints one line per year of the decade containing the given
// year, marking years with entries at year scale or above.
func (pp *PrettyPrint) Decade(ix *index.Index, year int) {
	start := caldate.DecadeStart(year)
	tf := color.New(color.FgWhite, color.Italic)
	tf.Printf("%ss\n", caldate.FormatYear(start))

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	for y := start; y < start+10; y++ {
		d := caldate.Date{Year: y, Month: 1, Day: 1}
		printer := l1
		if ix.HasEntry(d, granularity.Year) {
			printer = l2
		}
		printer.Printf("%s ", caldate.FormatYear(y))
	}
	fmt.Print("\n\n")
}
