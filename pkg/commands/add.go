package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/anno/pkg/app"
	"tableflip.dev/anno/pkg/commands/options"
	"tableflip.dev/anno/pkg/entry"
	"tableflip.dev/anno/pkg/granularity"
	"tableflip.dev/anno/pkg/printers"
	"tableflip.dev/anno/pkg/store"
)

func addAdd(topLevel *cobra.Command) {
	do := &options.DateOptions{}
	gro := &options.GranularityOptions{}
	ato := &options.AtOptions{}

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add an entry to a calendar bucket",
		Example: `
anno add watered the ferns
anno add -g month --date 2024-03-15 march retrospective
anno add --at 09:30 standup notes
anno add -g year --date -0044-01-01 a rough year for caesar
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("a title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gro.Get()
			if err != nil {
				return err
			}
			d, err := do.GetDate()
			if err != nil {
				return err
			}
			hour, minute, second, hasTime, err := ato.GetAt()
			if err != nil {
				return err
			}
			if hasTime && g != granularity.Day {
				return errors.New("--at only applies to day entries")
			}

			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := app.NewService(p)

			ctx := context.Background()
			title := strings.Join(args, " ")
			var e *entry.Entry
			if hasTime {
				e, err = s.CreateTimed(ctx, d.String(), title, app.TimeOfDay{Hour: hour, Minute: minute, Second: second})
			} else {
				e, err = s.Create(ctx, d.String(), g, title)
			}
			if err != nil {
				return err
			}

			pp := printers.PrettyPrint{ColorFor: s.Color}
			pp.Entries(e)
			return nil
		},
	}

	options.AddDateArgs(cmd, do)
	options.AddGranularityArgs(cmd, gro)
	options.AddAtArgs(cmd, ato)

	topLevel.AddCommand(cmd)
}
