package main

import (
	"os"

	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server.

Endpoints:
  POST /api/summary     - {"notes": "..."} -> structured summary
  POST /api/quiz        - {"notes": "..."} -> three multiple-choice questions
  POST /api/flashcards  - {"notes": "..."} -> five flashcards
  GET  /health          - server health and configured model

Examples:
  companion serve                  # Port from config (default 8080)
  companion serve --port 3000      # Override the configured port`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		app, err := newApplication(ctx, cfgFile, os.Stdout)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			app.config.Server.Port = servePort
		}

		return app.startHTTPServer(ctx, app.setupRouter())
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}
