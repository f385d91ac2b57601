package main

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/light-bringer/checkout-pricing-service/internal/config"
	"github.com/light-bringer/checkout-pricing-service/internal/logging"
	"github.com/light-bringer/checkout-pricing-service/internal/outbox"
	"github.com/light-bringer/checkout-pricing-service/internal/pkg/committer"
)

var (
	retentionDays int
	dryRun        bool
)

var rootCmd = &cobra.Command{
	Use:   "cleanup_outbox",
	Short: "Delete published and failed outbox events older than the retention window",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := logging.Configure(cfg.Log.Level, cfg.Log.Format); err != nil {
			return err
		}
		if !cmd.Flags().Changed("retention-days") {
			retentionDays = cfg.Outbox.RetentionDays
		}
		if retentionDays <= 0 {
			return fmt.Errorf("retention days must be positive, got %d", retentionDays)
		}
		return cleanupOutbox(cmd.Context(), cfg.Spanner.Database)
	},
}

func init() {
	rootCmd.Flags().IntVar(&retentionDays, "retention-days", 7, "Retention days for processed events (defaults to OUTBOX_RETENTION_DAYS)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be deleted without actually deleting")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logrus.WithError(err).Fatal("Cleanup failed")
	}
}

func cleanupOutbox(ctx context.Context, spannerDB string) error {
	client, err := spanner.NewClient(ctx, spannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	logger := logrus.WithFields(logrus.Fields{
		"cutoff":         cutoff.Format(time.RFC3339),
		"retention_days": retentionDays,
		"dry_run":        dryRun,
	})
	logger.Info("Starting outbox cleanup")

	cleaner := outbox.NewCleaner(outbox.NewSpannerStore(client), committer.NewCommitter(client))
	deleted, err := cleaner.Run(ctx, cutoff, dryRun)
	if err != nil {
		return fmt.Errorf("cleanup stopped after %d events: %w", deleted, err)
	}

	if dryRun {
		logger.WithField("events", deleted).Info("Dry run: events would be deleted")
		return nil
	}
	logger.WithField("events", deleted).Info("Outbox cleanup completed")
	return nil
}
