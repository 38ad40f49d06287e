package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/careerforge/resume-builder/internal/config"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Hash an admin password",
	Long:  `Produce the bcrypt hash to set as ADMIN_PASSWORD_HASH for the stats endpoint.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHashPassword,
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	admin, err := config.NewAdminConfig()
	if err != nil {
		return err
	}

	hash, err := admin.HashPassword(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
