package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/lecture-companion/internal/domain"
)

func TestReadNotes(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lecture.txt")
		require.NoError(t, os.WriteFile(path, []byte(testNotes), 0o600))

		notes, err := readNotes(path, strings.NewReader("ignored"))

		require.NoError(t, err)
		assert.Equal(t, testNotes, notes)
	})

	t.Run("stdin", func(t *testing.T) {
		notes, err := readNotes("-", strings.NewReader(testNotes))

		require.NoError(t, err)
		assert.Equal(t, testNotes, notes)
	})

	t.Run("file over 1 MiB is read in full", func(t *testing.T) {
		long := strings.Repeat("a", 1<<20) + " TAIL-OF-LECTURE é"
		path := filepath.Join(t.TempDir(), "long.txt")
		require.NoError(t, os.WriteFile(path, []byte(long), 0o600))

		notes, err := readNotes(path, nil)

		require.NoError(t, err)
		assert.Len(t, notes, len(long))
		assert.True(t, strings.HasSuffix(notes, " TAIL-OF-LECTURE é"))
	})

	t.Run("whitespace only", func(t *testing.T) {
		_, err := readNotes("-", strings.NewReader(" \n\t "))

		assert.ErrorIs(t, err, domain.ErrEmptyNotes)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readNotes(filepath.Join(t.TempDir(), "missing.txt"), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open notes")
	})
}
