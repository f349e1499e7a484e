package main

import (
	"context"
	"log/slog"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/jaideep-27/shophub/internal/config"
	"github.com/jaideep-27/shophub/internal/repository"
	"github.com/jaideep-27/shophub/pkg/logger"
)

// app is the state shared by every subcommand
type app struct {
	catalogFiles []string
	logLevel     string

	cfg  *config.Config
	log  *slog.Logger
	repo repository.ProductRepository
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "cartctl",
		Short: "Browse the storefront catalog and price carts",
		Long: `cartctl reads the product catalog and runs carts through the checkout
pricing rules without starting the HTTP server.

Configuration comes from CONFIG_FILE and the environment, the same as the
server. --catalog replaces the configured catalog with local files or URLs.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringSliceVar(&a.catalogFiles, "catalog", nil, "Catalog JSON files or URLs (gzip allowed)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newProductsCmd(a))
	rootCmd.AddCommand(newCategoriesCmd(a))
	rootCmd.AddCommand(newCheckoutCmd(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if len(a.catalogFiles) > 0 {
		cfg.Catalog.Source = config.SourceFile
		cfg.Catalog.Files = a.catalogFiles
	}
	cfg.LogLevel = a.logLevel

	a.cfg = cfg
	a.log = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	repo, err := repository.Open(ctx, cfg.Catalog, a.log)
	if err != nil {
		return errors.Wrap(err, "open catalog")
	}
	a.repo = repo
	return nil
}
