package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/careerforge/resume-builder/internal/observability"
	"github.com/careerforge/resume-builder/internal/usage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the usage report",
	Long:  `Connect to the usage database and print login analytics.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := usage.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to usage store: %w", err)
	}
	defer store.Close()

	report, err := store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to load usage report: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintStats(report)
	return nil
}
