package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/anno/pkg/app"
	"tableflip.dev/anno/pkg/store"
)

func addRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove an entry by id",
		Example: `
anno rm 42
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q", args[0])
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
			if err := s.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("removed entry %d\n", id)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
