package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded database schema",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	database, err := connect(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()

	applied, err := database.Migrate(cmd.Context())
	if err != nil {
		return err
	}

	for _, name := range applied {
		log.Info("applied migration", zap.String("file", name))
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s)\n", len(applied))
	return nil
}
