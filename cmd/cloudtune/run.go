package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/cloudtune/internal/grid"
	"github.com/GoSim-25-26J-441/cloudtune/internal/improvement"
	"github.com/GoSim-25-26J-441/cloudtune/internal/runner"
	"github.com/GoSim-25-26J-441/cloudtune/pkg/utils"
)

func newRunCmd() *cobra.Command {
	var (
		flags    planFlags
		progress bool
		top      int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a grid search and report the best filter configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, err := flags.load(cmd)
			if err != nil {
				return err
			}
			var opts runner.Options
			if progress {
				opts.Progress = progressPrinter(cmd.ErrOrStderr())
			}

			report, err := runner.Run(plan, opts)
			if err != nil {
				if report != nil {
					return fmt.Errorf("%w (completed trials are in %s)", err, report.TrialLog)
				}
				return err
			}
			printBest(cmd.OutOrStdout(), report)
			return printRanking(cmd.OutOrStdout(), report.Result.History, top)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&progress, "progress", false, "print one line per completed trial to stderr")
	cmd.Flags().IntVar(&top, "top", 5, "number of best trials to list (0 = none)")
	return cmd
}

func progressPrinter(w io.Writer) improvement.ProgressReporter {
	return func(p improvement.Progress) {
		pct := 100.0
		if p.Total > 0 {
			pct = utils.ClampFloat64(100*float64(p.Completed)/float64(p.Total), 0, 100)
		}
		fmt.Fprintf(w, "[%d/%d %3.0f%%] %s %s score=%s (best %s)\n",
			p.Completed, p.Total, pct, p.Last.Processor, p.Last.Params,
			grid.FormatFloat(p.Last.Score), grid.FormatFloat(p.Best.Score))
	}
}

func printBest(w io.Writer, report *runner.Report) {
	res := report.Result
	fmt.Fprintf(w, "Best processor: %s\n", res.Best.Processor)
	for name, v := range res.Params.All() {
		fmt.Fprintf(w, "  %s: %s\n", name, v)
	}
	fmt.Fprintf(w, "Score: %s\n", grid.FormatFloat(res.Score))
	fmt.Fprintf(w, "Points kept: %d of %d\n", res.Best.Retained, report.Points)
	fmt.Fprintf(w, "Trials: %d in %s\n", res.Trials, utils.FormatDuration(res.Elapsed))
	fmt.Fprintf(w, "Trial log: %s\n", report.TrialLog)
	fmt.Fprintf(w, "Summary: %s\n", report.SummaryPath)
}

func printRanking(w io.Writer, history []improvement.TrialRecord, top int) error {
	if top <= 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "\nPROCESSOR\tTRIALS\tBEST\tMEAN\tWORST")
	for _, c := range improvement.CompareProcessors(history) {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", c.Processor, c.Trials,
			grid.FormatFloat(c.Best.Score), grid.FormatFloat(utils.Round(c.MeanScore, 4)), grid.FormatFloat(c.Worst.Score))
	}

	fmt.Fprintln(tw, "\nRANK\tTRIAL\tPROCESSOR\tPARAMETERS\tSCORE\tTIME")
	for i, rec := range improvement.Rank(history)[:min(top, len(history))] {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%.2f ms\n", i+1, rec.Index+1, rec.Processor, rec.Params,
			grid.FormatFloat(rec.Score), utils.TimeToMs(rec.Elapsed))
	}
	return tw.Flush()
}
