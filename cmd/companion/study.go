package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/lecture-companion/internal/api"
	"github.com/phrazzld/lecture-companion/internal/domain"
	"github.com/phrazzld/lecture-companion/internal/study"
)

var studyCmd = &cobra.Command{
	Use:   "study [file]",
	Short: "Study lecture notes interactively in the terminal",
	Long: `Start an interactive study session. Notes are loaded from file when one
is given, or entered with the "notes" command. Type "help" for commands.

Logs go to stderr.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		app, err := newApplication(ctx, cfgFile, os.Stderr)
		if err != nil {
			return err
		}
		session, err := study.NewSession(app.pipeline, app.logger)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			notes, err := readNotes(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			session.SetNotes(notes)
		}

		return runStudy(ctx, session, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(studyCmd)
}

const studyHelp = `Commands:
  notes                 enter notes, finish with a line containing only "."
  summary               generate a summary
  quiz                  generate a quiz
  flashcards            generate flashcards
  show [tab]            show the current tab, or switch to summary|quiz|flashcards
  answer <q> <option>   answer question q (1-3) with option 1-4 or A-D
  next, prev            move between flashcards
  flip                  turn the current flashcard over
  clear                 clear notes and everything generated
  help                  show this help
  quit                  leave the session
`

// runStudy reads commands from in and drives session until quit, end of
// input or cancellation of ctx.
func runStudy(ctx context.Context, session *study.Session, in io.Reader, out io.Writer) error {
	scanner := newLineReader(in)

	fmt.Fprint(out, "Lecture companion. Type \"help\" for commands.\n> ")
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 {
			if quit := studyCommand(ctx, session, scanner, out, fields); quit {
				return nil
			}
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}

// studyCommand executes one command and reports whether the session should
// end.
func studyCommand(ctx context.Context, session *study.Session, scanner *lineReader, out io.Writer, fields []string) bool {
	switch cmd, args := strings.ToLower(fields[0]), fields[1:]; cmd {
	case "quit", "exit":
		return true

	case "help":
		fmt.Fprint(out, studyHelp)

	case "notes":
		fmt.Fprintln(out, `Enter notes, then "." on its own line:`)
		var lines []string
		for scanner.Scan() && scanner.Text() != "." {
			lines = append(lines, scanner.Text())
		}
		session.SetNotes(strings.Join(lines, "\n"))
		fmt.Fprintf(out, "Notes saved (%d lines).\n", len(lines))

	case "summary", "quiz", "flashcards":
		kind := domain.ArtifactKind(cmd)
		fmt.Fprintf(out, "Generating %s...\n", kind)
		err := session.Generate(ctx, kind)
		if err != nil {
			fmt.Fprintf(out, "Error: %s\n", studyErrorMessage(err))
		}
		if err == nil || kind == domain.ArtifactSummary {
			renderTab(out, session.View())
		}

	case "show":
		if len(args) > 0 {
			if err := session.SelectTab(domain.ArtifactKind(strings.ToLower(args[0]))); err != nil {
				fmt.Fprintf(out, "Error: unknown tab %q\n", args[0])
				return false
			}
		}
		renderTab(out, session.View())

	case "answer":
		answerQuestion(session, out, args)

	case "next", "prev":
		moved := session.NextCard
		if cmd == "prev" {
			moved = session.PrevCard
		}
		if !moved() {
			fmt.Fprintln(out, "No more cards in that direction.")
		}
		renderCard(out, session.View())

	case "flip":
		session.Flip()
		renderCard(out, session.View())

	case "clear":
		session.ClearAll()
		fmt.Fprintln(out, "Cleared.")

	default:
		fmt.Fprintf(out, "Unknown command %q. Type \"help\" for commands.\n", cmd)
	}
	return false
}

// lineReader reads input line by line like bufio.Scanner but without a
// maximum line length, so pasted notes of any size are accepted.
type lineReader struct {
	r    *bufio.Reader
	line string
	err  error
}

func newLineReader(in io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(in)}
}

// Scan advances to the next line, which is then available from Text. It
// returns false at end of input or on a read error.
func (l *lineReader) Scan() bool {
	if l.err != nil {
		return false
	}
	line, err := l.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			l.err = err
			return false
		}
		l.err = io.EOF
		if line == "" {
			return false
		}
	}
	l.line = strings.TrimRight(line, "\r\n")
	return true
}

// Text returns the current line without its line ending.
func (l *lineReader) Text() string {
	return l.line
}

// Err returns the first read error other than io.EOF.
func (l *lineReader) Err() error {
	if errors.Is(l.err, io.EOF) {
		return nil
	}
	return l.err
}

func studyErrorMessage(err error) string {
	if errors.Is(err, study.ErrBusy) {
		return "a request is already in progress"
	}
	return api.GetSafeErrorMessage(err)
}

func answerQuestion(session *study.Session, out io.Writer, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(out, "Usage: answer <question> <option>")
		return
	}
	question, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(out, "Error: invalid question %q\n", args[0])
		return
	}
	option, ok := parseOption(args[1])
	if !ok {
		fmt.Fprintf(out, "Error: invalid option %q\n", args[1])
		return
	}

	feedback, err := session.SelectAnswer(question-1, option)
	switch {
	case errors.Is(err, study.ErrQuestionOutOfRange):
		fmt.Fprintf(out, "Error: there is no question %d\n", question)
		return
	case errors.Is(err, domain.ErrOptionOutOfRange):
		fmt.Fprintf(out, "Error: question %d has no option %s\n", question, args[1])
		return
	case err != nil:
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}

	if feedback.Correct {
		fmt.Fprintln(out, "Correct!")
	} else {
		fmt.Fprintf(out, "Incorrect. The correct answer is: %s\n", feedback.CorrectOption)
	}
	if feedback.Explanation != "" {
		fmt.Fprintf(out, "Explanation: %s\n", feedback.Explanation)
	}
}

// parseOption accepts a 1-based number or a letter and returns the
// zero-based option index.
func parseOption(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n - 1, true
	}
	if len(s) == 1 {
		c := strings.ToUpper(s)[0]
		if c >= 'A' && c <= 'Z' {
			return int(c - 'A'), true
		}
	}
	return 0, false
}

func renderTab(out io.Writer, view study.View) {
	switch view.Tab {
	case domain.ArtifactSummary:
		if view.Summary == "" {
			fmt.Fprintln(out, "No summary yet. Type \"summary\" to generate one.")
			return
		}
		fmt.Fprintln(out, view.Summary)
	case domain.ArtifactQuiz:
		renderQuiz(out, view)
	case domain.ArtifactFlashcards:
		renderCard(out, view)
	}
}

func renderQuiz(out io.Writer, view study.View) {
	if len(view.Quiz) == 0 {
		fmt.Fprintln(out, "No quiz yet. Type \"quiz\" to generate one.")
		return
	}
	for i, q := range view.Quiz {
		fmt.Fprintf(out, "Q%d. %s\n", i+1, q.Question)
		selected, answered := view.Answers[i]
		for j, option := range q.Options {
			marker := " "
			if answered && selected == j {
				marker = "*"
			}
			fmt.Fprintf(out, "  %s %d) %s\n", marker, j+1, option)
		}
	}
}

func renderCard(out io.Writer, view study.View) {
	if len(view.Flashcards) == 0 {
		fmt.Fprintln(out, "No flashcards yet. Type \"flashcards\" to generate some.")
		return
	}
	card := view.Flashcards[view.Card]
	fmt.Fprintf(out, "Card %d/%d\n", view.Card+1, len(view.Flashcards))
	if view.Flipped {
		fmt.Fprintf(out, "  Definition: %s\n", card.Definition)
	} else {
		fmt.Fprintf(out, "  Term: %s\n", card.Term)
	}
}
