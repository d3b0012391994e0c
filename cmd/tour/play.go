package main

import (
	"github.com/aretw0/terminaltour/internal/cli"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [section]",
	Short: "Open the tour in the terminal",
	Long: `Opens the interactive player. When stdout is not a terminal, or with --plain,
the tour is streamed as text instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		section, _ := cmd.Flags().GetString("section")
		if !cmd.Flags().Changed("section") && len(args) > 0 {
			section = args[0]
		}
		script, _ := cmd.Flags().GetString("script")
		plain, _ := cmd.Flags().GetBool("plain")
		instant, _ := cmd.Flags().GetBool("instant")
		style, _ := cmd.Flags().GetString("style")

		ctx, cancel := cli.SignalContext(cmd.Context())
		defer cancel()

		return cli.RunPlay(ctx, options(cmd), cli.PlayOptions{
			Section: section,
			Script:  script,
			Plain:   plain,
			Instant: instant,
			Style:   style,
		})
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("section", "s", "", "Section to open first")
	playCmd.Flags().String("script", "", "Stream a single script and exit")
	playCmd.Flags().Bool("plain", false, "Stream the tour as text instead of opening the player")
	playCmd.Flags().Bool("instant", false, "Print plain output without delays")
	playCmd.Flags().String("style", "", "Markdown style: auto, dark, light or notty")

	// 'tour' alone opens the player
	rootCmd.RunE = playCmd.RunE
	rootCmd.Flags().AddFlagSet(playCmd.Flags())
}
