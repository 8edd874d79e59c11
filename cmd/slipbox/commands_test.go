package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/slipbox/pkg/core"
)

func sampleBox(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeNotes(t, dir, map[string]string{
		"a.md":        "id: a1\nsee id:b1 and id: c9\n",
		"b.md":        "id: b1\n",
		"c.txt":       "id=c1\nid:a1\n",
		"plain.md":    "just words\nid: a1\n",
		"sub/deep.md": "id: d1\nid:a1\n",
	})
	return dir
}

func TestList(t *testing.T) {
	dir := sampleBox(t)

	t.Run("Pretty", func(t *testing.T) {
		out, err := execute(t, "-d", dir, "list")
		require.NoError(t, err)

		want := "(none)\t\t\t\tplain.md\n" +
			"a1\t\t\t\ta.md\t\t\treferences: b1, c9\n" +
			"b1\t\t\t\tb.md\n" +
			"c1\t\t\t\tc.txt\t\t\treferences: a1\n"
		assert.Equal(t, want, out)
	})

	t.Run("Recursive JSON", func(t *testing.T) {
		out, err := execute(t, "-d", dir, "-r", "-f", "json", "list")
		require.NoError(t, err)

		var notes []core.Note
		require.NoError(t, json.Unmarshal([]byte(out), &notes))
		require.Len(t, notes, 5)
		assert.Equal(t, "sub/deep.md", notes[4].Name)
	})

	t.Run("Pattern", func(t *testing.T) {
		out, err := execute(t, "-d", dir, "-p", "*.txt", "list")
		require.NoError(t, err)
		assert.Equal(t, "c1\t\t\t\tc.txt\t\t\treferences: a1\n", out)
	})

	t.Run("Empty Slip-box Prints Nothing", func(t *testing.T) {
		out, err := execute(t, "-d", t.TempDir(), "-f", "json", "list")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("Unknown Format", func(t *testing.T) {
		_, err := execute(t, "-d", dir, "-f", "xml", "list")
		assert.Error(t, err)
	})

	t.Run("Missing Directory", func(t *testing.T) {
		_, err := execute(t, "-d", filepath.Join(dir, "nope"), "list")
		assert.Error(t, err)
	})
}

func TestGet(t *testing.T) {
	dir := sampleBox(t)

	out, err := execute(t, "-d", dir, "get", "c1", "zz", "a1")
	require.NoError(t, err)

	want := "c1\t\t\t\tc.txt\t\t\treferences: a1\n" +
		"a1\t\t\t\ta.md\t\t\treferences: b1, c9\n"
	assert.Equal(t, want, out)

	_, err = execute(t, "-d", dir, "get")
	assert.Error(t, err)
}

func TestTree(t *testing.T) {
	dir := sampleBox(t)

	t.Run("Text", func(t *testing.T) {
		out, err := execute(t, "-d", dir, "-r", "-f", "text", "tree", "a1")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, []string{"LINKERS", "ROOT", "DESCENDANTS"}, strings.Fields(lines[0]))
		assert.Equal(t, []string{"c1", "a1", "b1"}, strings.Fields(lines[1]))
		assert.Equal(t, []string{"d1"}, strings.Fields(lines[2]))
	})

	t.Run("Unknown Id", func(t *testing.T) {
		_, err := execute(t, "-d", dir, "tree", "zz")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("Empty Slip-box Prints Nothing", func(t *testing.T) {
		out, err := execute(t, "-d", t.TempDir(), "tree", "zz")
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestStrict(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, map[string]string{"x.md": "id: same\n", "y.md": "id: same\n"})

	out, err := execute(t, "-d", dir, "list")
	require.NoError(t, err)
	assert.Equal(t, "same\t\t\t\tx.md\nsame\t\t\t\ty.md\n", out)

	_, err = execute(t, "-d", dir, "--strict", "list")
	assert.ErrorIs(t, err, core.ErrDuplicateID)
}

func TestSettings(t *testing.T) {
	t.Run("Config File", func(t *testing.T) {
		dir := sampleBox(t)
		writeNotes(t, dir, map[string]string{".slipbox/config.yaml": "recursive: true\nformat: text\n"})

		out, err := execute(t, "-d", dir, "list")
		require.NoError(t, err)
		assert.Contains(t, out, "sub/deep.md")
		assert.NotContains(t, out, "\t")

		// Flags win over the file.
		out, err = execute(t, "-d", dir, "-f", "pretty", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "\t\t\t\tsub/deep.md")
	})

	t.Run("Explicit Config", func(t *testing.T) {
		dir := sampleBox(t)
		file := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(file, []byte("patterns: ['*.txt']\n"), 0o644))

		out, err := execute(t, "-d", dir, "--config", file, "list")
		require.NoError(t, err)
		assert.Equal(t, "c1\t\t\t\tc.txt\t\t\treferences: a1\n", out)
	})

	t.Run("Environment", func(t *testing.T) {
		dir := sampleBox(t)
		t.Setenv("SLIPBOX_FORMAT", "yaml")

		out, err := execute(t, "-d", dir, "get", "b1")
		require.NoError(t, err)
		assert.Contains(t, out, "id: b1")
	})
}

func TestGitignore(t *testing.T) {
	dir := sampleBox(t)
	writeNotes(t, dir, map[string]string{".gitignore": "c.txt\n"})

	out, err := execute(t, "-d", dir, "--gitignore", "get", "c1", "b1")
	require.NoError(t, err)
	assert.Equal(t, "b1\t\t\t\tb.md\n", out)
}

func TestRootDiscovery(t *testing.T) {
	dir := sampleBox(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".slipbox"), 0o755))

	out, err := execute(t, "-d", filepath.Join(dir, "sub"), "--root", "get", "b1")
	require.NoError(t, err)
	assert.Equal(t, "b1\t\t\t\tb.md\n", out)

	// Without --root the subdirectory itself is the slip-box.
	out, err = execute(t, "-d", filepath.Join(dir, "sub"), "get", "b1")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "-d", dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized")
	assert.FileExists(t, filepath.Join(dir, ".slipbox", "config.yaml"))

	out, err = execute(t, "-d", dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already exist")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "slipbox version "))
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, map[string]string{"a.md": "id: a1\n"})

	resetFlags()
	out := &syncBuffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"-d", dir, "watch"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- rootCmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "a1")
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("id: b1\n"), 0o644))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "b1")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestStatus(t *testing.T) {
	dir := sampleBox(t)
	writeNotes(t, dir, map[string]string{"dup.md": "id: b1\n"})

	t.Run("Pretty", func(t *testing.T) {
		out, err := execute(t, "-d", dir, "status")
		require.NoError(t, err)
		assert.Regexp(t, `notes:\s+5`, out)
		assert.Regexp(t, `untagged:\s+1`, out)
		assert.Regexp(t, `duplicate b1:\s+b\.md, dup\.md`, out)
		assert.Regexp(t, `recursive:\s+false`, out)
	})

	t.Run("JSON", func(t *testing.T) {
		out, err := execute(t, "-d", dir, "-f", "json", "status")
		require.NoError(t, err)

		var got struct {
			Notes   int `json:"notes"`
			Service struct {
				SourceType string `json:"source_type"`
				Loads      int    `json:"loads"`
			} `json:"service"`
			Source struct {
				Path string `json:"path"`
			} `json:"source"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, 5, got.Notes)
		assert.Equal(t, "fs-source", got.Service.SourceType)
		assert.Equal(t, 1, got.Service.Loads)
		assert.Equal(t, dir, got.Source.Path)
	})

	t.Run("Diagram", func(t *testing.T) {
		out, err := execute(t, "-d", dir, "status", "--diagram")
		require.NoError(t, err)
		assert.NotEmpty(t, strings.TrimSpace(out))
	})
}

func TestSettings_UnreadableConfigIsLogged(t *testing.T) {
	dir := sampleBox(t)

	resetFlags()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"-d", dir, "--config", filepath.Join(dir, "missing.yaml"), "get", "b1"})

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Equal(t, "b1\t\t\t\tb.md\n", out.String())
	assert.Contains(t, errOut.String(), "level=WARN")
	assert.Contains(t, errOut.String(), "failed to load settings")
	assert.Contains(t, errOut.String(), "missing.yaml")

	// A clean run does not repeat the warning.
	_, err := execute(t, "-d", dir, "get", "b1")
	require.NoError(t, err)
	assert.Nil(t, configErr)
}

func TestWatch_EmptiedSlipbox(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, map[string]string{"a.md": "id: a1\n"})

	resetFlags()
	out, errOut := &syncBuffer{}, &syncBuffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs([]string{"-d", dir, "watch"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- rootCmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "a1")
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.Remove(filepath.Join(dir, "a.md")))

	require.Eventually(t, func() bool {
		return strings.Contains(errOut.String(), "slip-box is empty")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
