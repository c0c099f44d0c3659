package main

import (
	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/cloudtune/pkg/config"
	"github.com/GoSim-25-26J-441/cloudtune/pkg/logger"
)

// planFlags are the flags shared by commands that work on a search plan.
type planFlags struct {
	configPath    string
	input         string
	outputDir     string
	logFile       string
	logLevel      string
	objective     string
	targetPercent float64
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cloudtune",
		Short: "Grid search over point cloud outlier filters",
		Long: `cloudtune runs every configuration of a set of point cloud outlier filters
against one input cloud, logs each trial and reports the configuration with the
lowest score.

Examples:
  cloudtune run --input scans/bunny.pcd
  cloudtune run --config config/plan.yaml --log-level debug
  cloudtune plan --config config/plan.yaml
  cloudtune init --input scans/bunny.pcd > plan.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRunCmd(),
		newPlanCmd(),
		newInitCmd(),
		newProcessorsCmd(),
		newGenerateCmd(),
	)
	return root
}

func (f *planFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "search plan YAML (default: built-in statistical and radius search)")
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "input point cloud (.xyz, .txt, .pts, .csv, .pcd, .las)")
	cmd.Flags().StringVar(&f.outputDir, "output-dir", config.DefaultOutputDir, "directory that receives one run directory per run")
	cmd.Flags().StringVar(&f.logFile, "log-file", config.DefaultLogFile, "trial log file name inside the run directory")
	cmd.Flags().StringVar(&f.logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&f.objective, "objective", config.DefaultObjective, "scoring function (reduction_percentage, target_reduction, centroid_shift)")
	cmd.Flags().Float64Var(&f.targetPercent, "target-percent", 0, "removal share in percent aimed at by target_reduction")
}

// load builds the plan from --config (or the default plan) and applies any
// flags given explicitly on the command line.
func (f *planFlags) load(cmd *cobra.Command) (*config.Plan, error) {
	var plan *config.Plan
	if f.configPath != "" {
		p, err := config.LoadPlan(f.configPath)
		if err != nil {
			return nil, err
		}
		plan = p
	} else {
		plan = config.DefaultPlan(f.input)
	}

	changed := cmd.Flags().Changed
	if changed("input") {
		plan.Input = f.input
	}
	if changed("output-dir") {
		plan.OutputDir = f.outputDir
	}
	if changed("log-file") {
		plan.LogFile = f.logFile
	}
	if changed("log-level") {
		plan.LogLevel = f.logLevel
	}
	if changed("objective") {
		plan.Objective.Name = f.objective
	}
	if changed("target-percent") {
		plan.Objective.TargetPercent = f.targetPercent
	}

	logger.SetDefault(logger.NewText(plan.LogLevel, cmd.ErrOrStderr()))
	return plan, nil
}
