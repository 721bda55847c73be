package options

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/anno/pkg/caldate"
	"tableflip.dev/anno/pkg/timeutil"
)

// RangeOptions captures the flags selecting a date range: an explicit
// --from/--to pair, or a --window ending today.
type RangeOptions struct {
	FromString   string
	ToString     string
	WindowString string
}

func AddRangeArgs(cmd *cobra.Command, o *RangeOptions) {
	cmd.Flags().StringVar(&o.FromString, "from", "",
		"Range start date (inclusive).")
	cmd.Flags().StringVar(&o.ToString, "to", "",
		"Range end date (inclusive).")
	cmd.Flags().StringVarP(&o.WindowString, "window", "w", "",
		`Range as a window ending today, example: --window="2w" or --window="10d".`)
}

// Selected reports whether any range flag was set.
func (o *RangeOptions) Selected() bool {
	return o.FromString != "" || o.ToString != "" || o.WindowString != ""
}

// GetRange resolves the flags into an inclusive [start, end] pair.
func (o *RangeOptions) GetRange() (start, end caldate.Date, err error) {
	if o.WindowString != "" {
		if o.FromString != "" || o.ToString != "" {
			return start, end, errors.New("--window conflicts with --from/--to")
		}
		days, _, err := timeutil.ParseWindow(o.WindowString)
		if err != nil {
			return start, end, err
		}
		end = Today()
		start, err = end.AddDays(-(days - 1))
		if err != nil {
			return start, end, err
		}
		return start, end, nil
	}

	if o.FromString == "" || o.ToString == "" {
		return start, end, errors.New("both --from and --to are required (or use --window)")
	}
	if start, err = caldate.Parse(o.FromString); err != nil {
		return start, end, err
	}
	if end, err = caldate.Parse(o.ToString); err != nil {
		return start, end, err
	}
	return start, end, nil
}
