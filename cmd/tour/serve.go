package main

import (
	"github.com/aretw0/terminaltour/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tour as a web page",
	Long: `Starts the HTTP server. The page streams every widget from the server over
Server-Sent Events; /metrics exposes Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		ctx, cancel := cli.SignalContext(cmd.Context())
		defer cancel()

		return cli.RunServe(ctx, options(cmd), cli.ServeOptions{Addr: addr})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (overrides server.addr)")
}
