package main

import (
	"fmt"

	"github.com/aretw0/terminaltour/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that every section's scripts resolve",
	Long:  `Loads the page and the scripts (including --scripts) and reports missing or malformed scripts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.RunValidate(options(cmd)); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
