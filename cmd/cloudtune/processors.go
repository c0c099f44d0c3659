package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/cloudtune/internal/filter"
)

func newProcessorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "processors",
		Short: "List the available processors and their default parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PROCESSOR\tDEFAULTS")
			for _, name := range filter.Names() {
				p, err := filter.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\n", p.Name(), p.Defaults())
			}
			return tw.Flush()
		},
	}
}
