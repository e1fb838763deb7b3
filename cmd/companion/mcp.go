package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/phrazzld/lecture-companion/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the generation tools over MCP on stdio",
	Long: `Start a Model Context Protocol server on stdin/stdout exposing the
generate_summary, generate_quiz and generate_flashcards tools.

Logs go to stderr so they do not interfere with the protocol.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		app, err := newApplication(ctx, cfgFile, os.Stderr)
		if err != nil {
			return err
		}

		return mcpserver.NewServer(app.pipeline, version, app.logger).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
