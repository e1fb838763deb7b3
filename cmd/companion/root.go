package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	cfgFile      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "companion",
	Short: "Turn lecture notes into summaries, quizzes and flashcards",
	Long: `Companion sends lecture notes to a generative language model and turns
the reply into study material:

  - a structured summary (topic, key points, definitions, conclusion)
  - a three-question multiple-choice quiz
  - five term/definition flashcards

Configuration is read from an optional YAML file (--config) and from
COMPANION_-prefixed environment variables, e.g. COMPANION_LLM_GEMINI_API_KEY.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch outputFormat {
		case formatYAML, formatJSON:
			return nil
		default:
			return fmt.Errorf("unsupported output format %q: use yaml or json", outputFormat)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (YAML); environment variables override it",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", formatYAML, "output format: yaml or json",
	)
}
