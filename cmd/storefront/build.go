package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/storefront"
)

func newBuildCmd(e *env) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export every product page to the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := e.app.Build(cmd.Context(), storefront.BuildOptions{
				DryRun: dryRun,
				Output: e.output,
			})
			if out.Error != nil {
				return fmt.Errorf("build failed: %w", out.Error)
			}
			if dryRun {
				e.output.PrintWarning("Dry run: nothing was written to %s", e.cfg.OutDir)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "render pages without writing output")
	cmd.Flags().String("out-dir", "", "output directory")
	cmd.Flags().String("public-dir", "", "static assets copied into the output")
	cmd.Flags().Int("concurrency", 0, "pages rendered in parallel (0 uses GOMAXPROCS)")
	return cmd
}
