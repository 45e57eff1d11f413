package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/engine"
	"github.com/jonathan/jobboard/internal/logger"
	"github.com/jonathan/jobboard/internal/server"
)

var _ engine.Store = (*db.DB)(nil)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes opportunity, match and analytics endpoints backed by PostgreSQL.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config or PORT, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port := cfg.Port
	if servePort != 0 {
		port = servePort
	}

	jwtCfg, err := config.NewJWTConfig()
	if errors.Is(err, config.ErrJWTDisabled) {
		log.Warn("JWT_SECRET not set, serving without authentication")
		jwtCfg = nil
	} else if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := connect(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	eng, err := engine.New(database, engineOptions(cfg), log)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:   port,
		Engine: eng,
		Logger: logger.WithFields(log, logger.StringFields("component", "server")...),
		JWT:    jwtCfg,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}

// connect opens the pool and verifies connectivity.
func connect(ctx context.Context) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	log.Debug("connected to database")
	return database, nil
}
