package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/3-lines-studio/storefront"
	"github.com/3-lines-studio/storefront/internal/adapters/cli"
	"github.com/3-lines-studio/storefront/internal/config"
	"github.com/3-lines-studio/storefront/internal/observability"
)

// env carries state shared by subcommands once the root pre-run has loaded
// configuration.
type env struct {
	output *cli.Output
	cfg    config.Config
	logger *zap.Logger
	app    *storefront.App
}

// newRootCmd returns the root command and the state it fills in. Callers close
// the state once execution finishes, whether or not a command failed.
func newRootCmd(output *cli.Output) (*cobra.Command, *env) {
	e := &env{output: output}
	var configFile string

	cmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Generate and preview static product detail pages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := config.New()
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}

			logger, err := observability.NewLogger(cfg.LogLevel)
			if err != nil {
				return err
			}

			app, err := storefront.New(cmd.Context(), cfg, logger)
			if err != nil {
				_ = logger.Sync()
				return err
			}

			e.cfg = cfg
			e.logger = logger
			e.app = app
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "path to a YAML config file")
	flags.String("env", "", "build environment: production or development")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("store-name", "", "store name shown in page titles")
	flags.String("catalog-source", "", "catalog source: embedded, file, sql or api")
	flags.String("catalog-file", "", "YAML or JSON catalog file for the file source")
	flags.String("sql-driver", "", "database driver for the sql source: sqlite or postgres")
	flags.String("sql-dsn", "", "database DSN for the sql source")

	cmd.AddCommand(
		newBuildCmd(e),
		newServeCmd(e),
		newPathsCmd(e),
		newAPICmd(e),
	)
	return cmd, e
}

func (e *env) close() error {
	var err error
	if e.app != nil {
		err = e.app.Close()
		e.app = nil
	}
	if e.logger != nil {
		_ = e.logger.Sync()
	}
	return err
}
