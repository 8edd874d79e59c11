package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Creates Parent Directories", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), DefaultSystemDir, "config.yaml")

		require.NoError(t, WriteFileAtomic(filename, []byte("recursive: true\n"), 0o644))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "recursive: true\n", string(got))
	})

	t.Run("Overwrites Existing File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "note.md")
		require.NoError(t, os.WriteFile(filename, []byte("id: old\n"), 0o644))

		require.NoError(t, WriteFileAtomic(filename, []byte("id: new\n"), 0o644))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "id: new\n", string(got))
	})

	t.Run("Leaves No Temp Files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, WriteFileAtomic(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), TempFilePrefix), "stray temp file %s", e.Name())
		}
	})

	t.Run("Fails When Parent Is A File", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		err := WriteFileAtomic(filepath.Join(blocker, "child.txt"), []byte("x"), 0o644)
		assert.Error(t, err)
	})
}
