package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/careerforge/resume-builder/internal/observability"
	"github.com/careerforge/resume-builder/internal/session"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Print a session's resume document",
	Long:  `Load a session from the shared Redis store and print its document.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return fmt.Errorf("REDIS_URL environment variable is required")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	store := session.NewRedisStore(redis.NewClient(opts), 0)
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sess, err := store.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if sess == nil {
		return fmt.Errorf("session %s not found", args[0])
	}

	fmt.Printf("Session %s  page=%s  step=%d  identity=%s\n",
		sess.ID, sess.Page, sess.Wizard.CurrentStep, sess.Identity.Email)
	observability.NewPrinter(os.Stdout).PrintDocument(&sess.Document)
	return nil
}
