// Package main implements the companion command, which turns lecture notes
// into summaries, quizzes and flashcards. It serves them over HTTP or MCP,
// prints them for a single file of notes, or runs an interactive study
// session in the terminal.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
