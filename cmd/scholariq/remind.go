package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scholariq/scholariq/internal/config"
	"github.com/scholariq/scholariq/internal/db"
	"github.com/scholariq/scholariq/internal/logger"
	"github.com/scholariq/scholariq/internal/notify"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send deadline reminder emails",
	Long: `Run one reminder sweep: email every user who saved or applied to a
scholarship whose deadline is between 1 and 7 days away and has not been
reminded about it yet. Intended to run daily from cron.`,
	RunE: runRemind,
}

func init() {
	rootCmd.AddCommand(remindCmd)
}

func runRemind(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.SESRegion == "" {
		return fmt.Errorf("SES_REGION is required for the reminder job")
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

	mailer, err := notify.NewSESMailer(ctx, cfg.SESRegion, cfg.MailSender)
	if err != nil {
		return fmt.Errorf("failed to create mailer: %w", err)
	}

	return notify.NewJob(database, mailer, log).Run(ctx)
}
