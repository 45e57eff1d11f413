// Package main provides the jobboard CLI: the HTTP API server, schema
// migration, and offline ranking and analytics over JSON snapshots.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/engine"
	"github.com/jonathan/jobboard/internal/logger"
)

var (
	cfgFile string
	logJSON bool
	debug   bool

	// set by PersistentPreRunE for every subcommand
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:               "jobboard",
	Short:             "Job board opportunity matching and analytics",
	Long:              "jobboard ranks job opportunities for candidates, scores job/candidate matches and aggregates application analytics, over PostgreSQL or JSON snapshots.",
	SilenceUsage:      true,
	PersistentPreRunE: initRuntime,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "JSON format for logging")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug logging")
}

func initRuntime(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	l, err := logger.New(logJSON || cfg.LogJSON, debug || cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	log = l
	return nil
}

// engineOptions maps the loaded configuration onto engine options.
func engineOptions(c *config.Config) engine.Options {
	return engine.Options{
		CampusLimit:  c.CampusLimit,
		GeneralLimit: c.GeneralLimit,
		Strategy:     c.Strategy,
		WindowMonths: c.WindowMonths,
		RecentLimit:  c.RecentLimit,
	}
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
