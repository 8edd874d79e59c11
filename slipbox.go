package slipbox

import (
	"context"
	"log/slog"

	"github.com/aretw0/slipbox/internal/platform"
	"github.com/aretw0/slipbox/pkg/core"
)

// --- Types ---

// Note is a public alias for a parsed note.
type Note = core.Note

// Tree is a public alias for the neighborhood of a note.
type Tree = core.Tree

// Corpus is a public alias for a loaded slip-box.
type Corpus = core.Corpus

// Engine is a public alias for the query engine.
type Engine = core.Engine

// Service is a public alias for the load-and-query service.
type Service = core.Service

// Source is a public alias for the note source port.
type Source = core.Source

// NoID is the id of a note whose first line carries no tag.
const NoID = core.NoID

// --- Configuration ---

// Option defines a functional option for configuring a slip-box.
type Option = platform.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSource allows injecting a custom note source.
func WithSource(src Source) Option {
	return platform.WithSource(src)
}

// WithPatterns sets the glob patterns that select note files.
func WithPatterns(patterns ...string) Option {
	return platform.WithPatterns(patterns...)
}

// WithRecursive includes notes in subdirectories.
func WithRecursive(recursive bool) Option {
	return platform.WithRecursive(recursive)
}

// WithGitignore skips files matched by the root .gitignore.
func WithGitignore(enabled bool) Option {
	return platform.WithGitignore(enabled)
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".slipbox").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithStrictIDs makes loading fail when two notes declare the same id.
func WithStrictIDs(strict bool) Option {
	return platform.WithStrictIDs(strict)
}

// WithConcurrency bounds the number of files read in parallel.
func WithConcurrency(n int) Option {
	return platform.WithConcurrency(n)
}

// WithWatcherErrorHandler registers a callback for watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a service over the slip-box at path.
func New(path string, opts ...Option) (*Service, error) {
	return platform.New(path, opts...)
}

// Open returns the note source for the slip-box at path.
func Open(path string, opts ...Option) (Source, error) {
	return platform.Open(path, opts...)
}

// Load reads the slip-box at path once and returns an engine over it.
func Load(ctx context.Context, path string, opts ...Option) (*Engine, error) {
	svc, err := New(path, opts...)
	if err != nil {
		return nil, err
	}
	return svc.Load(ctx)
}

// NewEngine indexes an already loaded corpus.
func NewEngine(c *Corpus) *Engine {
	return core.NewEngine(c)
}

// FindRoot looks upwards from startDir for a slip-box root.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir, "")
}
