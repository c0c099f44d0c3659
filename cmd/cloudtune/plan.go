package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/cloudtune/internal/runner"
	"github.com/GoSim-25-26J-441/cloudtune/pkg/config"
)

func newPlanCmd() *cobra.Command {
	var flags planFlags
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "List the trials a run would execute, in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, err := flags.load(cmd)
			if err != nil {
				return err
			}
			if err := runner.Check(plan); err != nil {
				return err
			}
			trials, err := runner.Enumerate(plan)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TRIAL\tPROCESSOR\tPARAMETERS\tRESOLVED")
			for _, tr := range trials {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", tr.Index+1, tr.Processor, tr.Params, tr.Resolved)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d trials, objective %s\n", len(trials), plan.Objective.Name)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newInitCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Print the default search plan as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.EncodePlan(config.DefaultPlan(input))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input point cloud to put in the plan")
	return cmd
}
