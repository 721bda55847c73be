// Package options defines shared flag helpers for CLI commands.
package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/anno/pkg/caldate"
)

// DateOptions captures the --date flag shared by commands that target a
// calendar date.
type DateOptions struct {
	DateString string
}

func AddDateArgs(cmd *cobra.Command, o *DateOptions) {
	cmd.Flags().StringVarP(&o.DateString, "date", "d", "",
		`Specify a date, sign-prefixed ISO for BCE years, example: --date="2024-03-15" or --date="-0044-03-15". Defaults to today.`)
}

// GetDate resolves the flag, defaulting to today's local date.
func (o *DateOptions) GetDate() (caldate.Date, error) {
	if o.DateString == "" {
		return Today(), nil
	}
	return caldate.Parse(o.DateString)
}

// Today returns the current local date.
func Today() caldate.Date {
	now := time.Now()
	return caldate.Date{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}
}

// AtOptions captures the --at time-of-day flag for day entries.
type AtOptions struct {
	AtString string
}

func AddAtArgs(cmd *cobra.Command, o *AtOptions) {
	cmd.Flags().StringVar(&o.AtString, "at", "",
		`Specify a time of day for a day entry, example: --at="09:30" or --at="09:30:15".`)
}

// GetAt parses the flag into hour/minute/second. The bool reports whether
// a time was given.
func (o *AtOptions) GetAt() (hour, minute, second int, ok bool, err error) {
	if o.AtString == "" {
		return 0, 0, 0, false, nil
	}
	parts := strings.Split(o.AtString, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, 0, false, fmt.Errorf("invalid time %q", o.AtString)
	}
	if _, err := fmt.Sscanf(parts[0], "%d", &hour); err != nil || hour < 0 || hour > 23 {
		return 0, 0, 0, false, fmt.Errorf("invalid hour in %q", o.AtString)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &minute); err != nil || minute < 0 || minute > 59 {
		return 0, 0, 0, false, fmt.Errorf("invalid minute in %q", o.AtString)
	}
	if len(parts) == 3 {
		if _, err := fmt.Sscanf(parts[2], "%d", &second); err != nil || second < 0 || second > 59 {
			return 0, 0, 0, false, fmt.Errorf("invalid second in %q", o.AtString)
		}
	}
	return hour, minute, second, true, nil
}
