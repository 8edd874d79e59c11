package platform

import (
	"log/slog"

	"github.com/aretw0/slipbox/pkg/adapters/fs"
	"github.com/aretw0/slipbox/pkg/core"
)

// options holds the internal configuration for the slip-box service.
type options struct {
	source       core.Source
	logger       *slog.Logger
	patterns     []string
	recursive    bool
	gitignore    bool
	systemDir    string
	strict       bool
	concurrency  int
	errorHandler func(error)
}

// Option defines a functional option for configuring a slip-box.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		patterns:  fs.DefaultPatterns,
		systemDir: fs.DefaultSystemDir,
	}
}

func apply(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithSource allows injecting a custom source (e.g. an in-memory fixture).
// If provided, the filesystem adapter is skipped and the path is ignored.
func WithSource(src core.Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithLogger sets the logger for the service and its source.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPatterns sets the file patterns that select notes (e.g. "*.md").
// An empty list keeps the defaults.
func WithPatterns(patterns ...string) Option {
	return func(o *options) {
		if len(patterns) > 0 {
			o.patterns = patterns
		}
	}
}

// WithRecursive makes the filesystem source descend into subdirectories.
func WithRecursive(recursive bool) Option {
	return func(o *options) {
		o.recursive = recursive
	}
}

// WithGitignore skips files matched by the .gitignore at the slip-box root.
func WithGitignore(enabled bool) Option {
	return func(o *options) {
		o.gitignore = enabled
	}
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".slipbox").
func WithSystemDir(name string) Option {
	return func(o *options) {
		if name != "" {
			o.systemDir = name
		}
	}
}

// WithStrictIDs rejects slip-boxes in which two notes declare the same id.
// By default the first note in corpus order wins.
func WithStrictIDs(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithConcurrency bounds the number of files read in parallel.
// Zero means GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithWatcherErrorHandler registers a callback for errors raised while watching.
// Without it such errors are only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
