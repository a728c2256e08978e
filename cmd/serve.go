package cmd

import (
	"github.com/spf13/cobra"
	"github.com/yeisme/greeter/pkg/app"
)

var serveVariant string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the greeter HTTP server",
	Long: `
Start the greeter HTTP server. This is the same as running greeter without a subcommand.

Examples:
  # Listen on 8080 and answer with the default greeting
  greeter serve

  # Listen on 3000
  PORT=3000 greeter serve

  # Answer with another built-in greeting
  greeter serve --variant hrutika

Notes:
  - PORT must be an integer between 1 and 65535, otherwise server.port (default 8080) is used.
  - GET / is the only route; every other path or method returns 404.`,
	Args:    cobra.NoArgs,
	Aliases: []string{"s", "start"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServer(cmd.Context(), app.Options{Variant: serveVariant})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveVariant, "variant", "", "built-in greeting to serve (overrides server.variant)")
}
