package main

import (
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/lecture-companion/internal/domain"
)

// readNotes reads all notes from path, or from stdin when path is "-".
// Notes have no length limit.
func readNotes(path string, stdin io.Reader) (string, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open notes: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read notes: %w", err)
	}

	notes := string(data)
	if err := domain.ValidateNotes(notes); err != nil {
		return "", err
	}
	return notes, nil
}
