package main

import (
	"fmt"
	"os"

	"github.com/aretw0/terminaltour/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tour",
	Short: "An interactive tour of terminal coding agents",
	Long: `Tour teaches newcomers how terminal coding agents work through scripted,
animated conversations, a practice shell and copyable commands.

Run it in the terminal with 'tour play' or share it as a web page with 'tour serve'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "tour.yaml", "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("scripts", "", "Directory of script files layered over the built-in scripts")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}

// options reads the persistent flags.
func options(cmd *cobra.Command) cli.Options {
	configPath, _ := cmd.Flags().GetString("config")
	scriptsDir, _ := cmd.Flags().GetString("scripts")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.Options{
		ConfigPath: configPath,
		ScriptsDir: scriptsDir,
		Debug:      debug,
		Out:        cmd.OutOrStdout(),
	}
}
