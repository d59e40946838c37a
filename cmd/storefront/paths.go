package main

import (
	"github.com/spf13/cobra"
)

func newPathsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print enumerated product routes and their page props as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.app.ExportPaths(cmd.Context(), cmd.OutOrStdout())
		},
	}
}
