package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/anno/pkg/granularity"
)

// GranularityOptions captures the --granularity flag.
type GranularityOptions struct {
	Raw string
}

func AddGranularityArgs(cmd *cobra.Command, o *GranularityOptions) {
	cmd.Flags().StringVarP(&o.Raw, "granularity", "g", "day",
		"Time scale of the entry: day, week, month, year, or decade.")
	_ = cmd.RegisterFlagCompletionFunc("granularity",
		func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			names := make([]string, 0, len(granularity.All()))
			for _, g := range granularity.All() {
				names = append(names, g.String())
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		})
}

// Get parses the flag value.
func (o *GranularityOptions) Get() (granularity.Granularity, error) {
	return granularity.Parse(o.Raw)
}
