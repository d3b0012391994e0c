package main

import (
	"github.com/aretw0/terminaltour/internal/cli"
	"github.com/spf13/cobra"
)

var tocCmd = &cobra.Command{
	Use:   "toc",
	Short: "List the sections of the tour",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunTOC(options(cmd))
	},
}

func init() {
	rootCmd.AddCommand(tocCmd)
}
