package main

import (
	"github.com/spf13/cobra"
)

func newServeCmd(e *env) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the exported site, or render pages live in development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e.output.PrintHeader("Storefront Preview")
			e.output.PrintStep("Serving %s on %s", e.cfg.Mode(), e.cfg.Server.Addr)
			return e.app.Serve(cmd.Context(), watch)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", true, "reload pages when the catalog file or public assets change (development only)")
	cmd.Flags().String("addr", "", "listen address")
	cmd.Flags().String("out-dir", "", "exported site directory")
	cmd.Flags().String("public-dir", "", "static assets directory")
	return cmd
}
