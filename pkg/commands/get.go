package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/anno/pkg/app"
	"tableflip.dev/anno/pkg/commands/options"
	"tableflip.dev/anno/pkg/printers"
	"tableflip.dev/anno/pkg/store"
)

func addGet(topLevel *cobra.Command) {
	do := &options.DateOptions{}
	gro := &options.GranularityOptions{}
	ro := &options.RangeOptions{}
	var id int64

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get entries for a calendar cell, a date range, or an id",
		Example: `
anno get
anno get --date 2024-03-15 -g month
anno get --from 2024-03-01 --to 2024-03-31
anno get --window 2w
anno get --id 42
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := app.NewService(p)

			ctx := context.Background()

			if id != 0 {
				e, err := p.Get(ctx, id)
				if err != nil {
					return err
				}
				pp := printers.PrettyPrint{ColorFor: s.Color}
				pp.Entry(e)
				return nil
			}

			if err := s.Reload(ctx); err != nil {
				return err
			}
			pp := printers.PrettyPrint{ColorFor: s.Color}

			if ro.Selected() {
				start, end, err := ro.GetRange()
				if err != nil {
					return err
				}
				entries := s.EntriesInRange(start, end)
				if len(entries) == 0 {
					fmt.Printf("no entries between %s and %s\n", start, end)
					return nil
				}
				pp.Entries(entries...)
				return nil
			}

			g, err := gro.Get()
			if err != nil {
				return err
			}
			d, err := do.GetDate()
			if err != nil {
				return err
			}
			entries := s.EntriesForCell(d, g)
			if len(entries) == 0 {
				fmt.Printf("no entries at %s (%s)\n", d, g)
				return nil
			}
			pp.Entries(entries...)
			return nil
		},
	}

	options.AddDateArgs(cmd, do)
	options.AddGranularityArgs(cmd, gro)
	options.AddRangeArgs(cmd, ro)
	cmd.Flags().Int64Var(&id, "id", 0, "Show a single entry by id.")

	topLevel.AddCommand(cmd)
}
