package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/cloudtune/pkg/pointcloud"
)

func newGenerateCmd() *cobra.Command {
	var (
		opts pointcloud.SynthOptions
		out  string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic noisy point cloud for trying out searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			if opts.Points < 0 || opts.Outliers < 0 {
				return fmt.Errorf("point counts cannot be negative")
			}
			cloud := pointcloud.Synthesize(opts)
			if err := pointcloud.Save(out, cloud); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d points to %s\n", cloud.Len(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (.xyz, .txt, .pts, .csv, .pcd)")
	cmd.Flags().IntVar(&opts.Points, "points", 5000, "surface points")
	cmd.Flags().IntVar(&opts.Outliers, "outliers", 100, "scattered outlier points")
	cmd.Flags().Float64Var(&opts.Size, "size", 1.0, "side length of the surface patch")
	cmd.Flags().Float64Var(&opts.Noise, "noise", 0.002, "surface jitter standard deviation")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "random seed (0 = time based)")
	return cmd
}
