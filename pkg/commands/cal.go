package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/anno/pkg/app"
	"tableflip.dev/anno/pkg/commands/options"
	"tableflip.dev/anno/pkg/printers"
	"tableflip.dev/anno/pkg/store"
)

func addCal(topLevel *cobra.Command) {
	do := &options.DateOptions{}
	var yearView bool
	var decadeView bool
	var long bool

	cmd := &cobra.Command{
		Use:   "cal",
		Short: "Show a calendar with entry markers",
		Example: `
anno cal
anno cal --date 2024-03-01
anno cal --year
anno cal --decade --date 1960-01-01
anno cal --long
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := do.GetDate()
			if err != nil {
				return err
			}

			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := app.NewService(p)

			ctx := context.Background()
			if err := s.Reload(ctx); err != nil {
				return err
			}
			ix, err := s.Index()
			if err != nil {
				return err
			}

			pp := printers.PrettyPrint{ColorFor: s.Color}
			switch {
			case decadeView:
				pp.Decade(ix, d.Year)
			case yearView:
				pp.Year(ix, d.Year)
			case long:
				pp.MonthEntries(ix, d.Year, d.Month)
			default:
				pp.Month(ix, d.Year, d.Month)
			}
			return nil
		},
	}

	options.AddDateArgs(cmd, do)
	cmd.Flags().BoolVar(&yearView, "year", false, "Show all twelve months of the year.")
	cmd.Flags().BoolVar(&decadeView, "decade", false, "Show the decade at year scale.")
	cmd.Flags().BoolVar(&long, "long", false, "Show the month with each day's entries.")

	topLevel.AddCommand(cmd)
}
