package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"veda-core/internal/catalog"
	"veda-core/internal/config"
)

type app struct {
	cfg     *config.EngineConfig
	catalog *catalog.Catalog
	logger  *zap.Logger
	verbose bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	_ = godotenv.Load()

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var catalogDir string

	rootCmd := &cobra.Command{
		Use:           "veda-cli",
		Short:         "Dosha constitution scoring and dietary recommendations",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadEngineConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if catalogDir != "" {
				cfg.CatalogDir = catalogDir
			}
			a.cfg = cfg

			a.catalog, err = catalog.Open(cfg.CatalogDir)
			if err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}

			a.logger = zap.NewNop()
			if a.verbose {
				a.logger = zap.NewExample()
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&catalogDir, "catalog", "", "directory with catalog YAML files (default: embedded catalog)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log to stderr")

	rootCmd.AddCommand(
		assessCmd(a),
		imbalanceCmd(a),
		mealsCmd(a),
		suggestionsCmd(a),
		summarizeCmd(a),
		traitsCmd(a),
	)
	return rootCmd
}
