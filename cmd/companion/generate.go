package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phrazzld/lecture-companion/internal/api"
	"github.com/phrazzld/lecture-companion/internal/domain"
)

func newGenerateCmd(kind domain.ArtifactKind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s <file|->", kind),
		Short: short,
		Long:  fmt.Sprintf(`Generate a %s from a file of lecture notes, or from stdin with "-",
and print it as YAML or JSON (--output).

Logs go to stderr.`, kind),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			notes, err := readNotes(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			app, err := newApplication(ctx, cfgFile, os.Stderr)
			if err != nil {
				return err
			}

			return app.generate(ctx, cmd.OutOrStdout(), kind, notes)
		},
	}
}

// generate runs one request for kind under the configured request timeout
// and writes the result to out in the selected output format.
func (app *application) generate(ctx context.Context, out io.Writer, kind domain.ArtifactKind, notes string) error {
	if timeout := app.config.Server.RequestTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var (
		v          any
		diagnostic string
	)
	switch kind {
	case domain.ArtifactSummary:
		result := app.pipeline.RequestSummary(ctx, notes)
		v, diagnostic = api.SummaryResponse{RequestID: result.RequestID, Summary: result.Value}, result.Diagnostic()
	case domain.ArtifactQuiz:
		result := app.pipeline.RequestQuiz(ctx, notes)
		v, diagnostic = api.QuizResponse{RequestID: result.RequestID, Questions: result.Value}, result.Diagnostic()
	case domain.ArtifactFlashcards:
		result := app.pipeline.RequestFlashcards(ctx, notes)
		v, diagnostic = api.FlashcardsResponse{RequestID: result.RequestID, Flashcards: result.Value}, result.Diagnostic()
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownArtifactKind, kind)
	}

	if diagnostic != "" {
		return fmt.Errorf("%s generation failed: %s", kind, diagnostic)
	}
	return writeOutput(out, outputFormat, v)
}

func init() {
	rootCmd.AddCommand(
		newGenerateCmd(domain.ArtifactSummary, "Summarize lecture notes"),
		newGenerateCmd(domain.ArtifactQuiz, "Generate a multiple-choice quiz from lecture notes"),
		newGenerateCmd(domain.ArtifactFlashcards, "Generate flashcards from lecture notes"),
	)
}
