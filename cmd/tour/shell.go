package main

import (
	"github.com/aretw0/terminaltour/internal/cli"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Practice terminal commands in a pretend folder tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cli.SignalContext(cmd.Context())
		defer cancel()

		return cli.RunShell(ctx, options(cmd), cmd.InOrStdin())
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
