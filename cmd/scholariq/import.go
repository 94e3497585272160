package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scholariq/scholariq/internal/config"
	"github.com/scholariq/scholariq/internal/db"
	"github.com/scholariq/scholariq/internal/importer"
	"github.com/scholariq/scholariq/internal/logger"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import scholarships from a JSON file",
	Long: `Validate a JSON file of scholarship listings against the import schema and
load it into the database. Universities are created as needed; listings that
trip the fraud screen are stored flagged for review.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck // flush on exit, stderr may be closed

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	summary, err := importer.New(database, log).ImportFile(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d scholarships (%d flagged, %d new universities)\n",
		summary.Imported, summary.Flagged, summary.Universities)
	return nil
}
