// Package cmd defines and implements the CLI commands for the explorer
// executable.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dannyfullextent/explorer/internal/app"
	"github.com/dannyfullextent/explorer/internal/cache"
	"github.com/dannyfullextent/explorer/internal/catalog"
	"github.com/dannyfullextent/explorer/internal/config"
)

var cfgFile string

// appKeyType is the key for storing the App in the context.
type appKeyType string

const appKey appKeyType = "app"

// App defines the application surface commands use. Keeping it an interface
// lets tests inject a mock application.
type App interface {
	Close()
	Logger() *zap.Logger
	Config() config.Config
	Details() *cache.DetailCache
	BuildCatalog(ctx context.Context) (catalog.Catalog, error)
}

// newApp is the application factory. It is a variable so tests can replace it
// with a mock factory.
var newApp = func() (App, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explorer",
		Short: "A catalog service for geospatial web services.",
		Long: `explorer discovers map and feature services from a portal's REST
services directory, enriches them with extent and availability metadata,
mines keyword tags from their names and descriptions, and serves the
resulting catalog as JSON and an interactive table.`,

		// Build and inject the application before any subcommand runs.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := newApp()
			if err != nil {
				return fmt.Errorf("failed to initialize application services: %w", err)
			}
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			cmd.SetContext(ctx)
			return nil
		},

		// Shut services down gracefully after the subcommand finishes.
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if appInstance, ok := cmd.Context().Value(appKey).(App); ok && appInstance != nil {
				appInstance.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newDiscoverCmd())

	return cmd
}

func resolveApp(ctx context.Context) (App, error) {
	appInstance, ok := ctx.Value(appKey).(App)
	if !ok || appInstance == nil {
		return nil, errors.New("application services not initialized")
	}
	return appInstance, nil
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
