package main

import (
	"github.com/spf13/cobra"
)

func newAPICmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Serve the configured catalog over the product JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e.output.PrintHeader("Storefront Catalog API")
			e.output.PrintStep("Serving %s catalog on %s", e.cfg.Catalog.Source, e.cfg.Server.APIAddr)
			return e.app.ServeAPI(cmd.Context())
		},
	}

	cmd.Flags().String("api-addr", "", "listen address")
	return cmd
}
