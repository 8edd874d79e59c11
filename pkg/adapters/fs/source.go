package fs

import (
	"context"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/slipbox/pkg/core"
)

// DefaultPatterns are the file patterns loaded when none are configured.
var DefaultPatterns = []string{"*.md", "*.txt"}

// DefaultSystemDir is the hidden directory holding slip-box configuration.
const DefaultSystemDir = ".slipbox"

// Config holds the configuration for the filesystem source.
type Config struct {
	Path         string
	Patterns     []string // doublestar patterns, matched against the slash-separated relative path
	Recursive    bool     // descend into subdirectories
	SystemDir    string   // e.g. ".slipbox", never scanned
	Gitignore    bool     // skip files matched by the root .gitignore
	Logger       *slog.Logger
	ErrorHandler func(error) // receives watcher errors, which are otherwise only logged
	Debounce     time.Duration
}

// Source implements core.Source over a directory of plaintext notes.
type Source struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastScan      *time.Time
	lastCount     int
}

// NewSource creates a new filesystem-backed source.
func NewSource(config Config) *Source {
	if len(config.Patterns) == 0 {
		config.Patterns = DefaultPatterns
	}
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.Debounce <= 0 {
		config.Debounce = 50 * time.Millisecond
	}
	return &Source{
		Path:   config.Path,
		config: config,
	}
}

// Initialize checks that the path is an existing directory and that every
// pattern is well formed.
func (s *Source) Initialize(ctx context.Context) error {
	info, err := os.Stat(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s does not exist or is not a directory", s.Path)
		}
		return fmt.Errorf("failed to stat %s: %w", s.Path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s does not exist or is not a directory", s.Path)
	}

	for _, p := range s.config.Patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}
	return nil
}

// Names walks the directory and returns the relative, slash-separated paths
// of every file matching the configured patterns, sorted.
//
// Workflow:
//  1. Walk the tree, staying at the top level unless Recursive is set.
//  2. Skip .git and the system directory.
//  3. Keep regular files (and symlinks) matching any pattern and not
//     excluded by .gitignore.
func (s *Source) Names(ctx context.Context) ([]string, error) {
	gi, err := s.loadIgnore()
	if err != nil {
		return nil, err
	}

	root := s.resolvedPath()

	var names []string
	err = filepath.WalkDir(root, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if p == root {
				return nil
			}
			if !s.config.Recursive || s.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() && d.Type()&iofs.ModeSymlink == 0 {
			return nil
		}

		rel, err := s.relative(p)
		if err != nil {
			return err
		}
		if s.matches(rel) && !ignored(gi, rel) {
			names = append(names, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", s.Path, err)
	}

	sort.Strings(names)
	s.config.Logger.Debug("scanned directory", "path", s.Path, "files", len(names))
	s.recordScan(len(names))

	return names, nil
}

// Open returns the content of the named file.
func (s *Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.Path, filepath.FromSlash(name)))
}

func (s *Source) skipDir(name string) bool {
	return name == ".git" || name == s.config.SystemDir
}

// resolvedPath returns Path with symlinks resolved. WalkDir and fsnotify
// do not follow a symlinked root, so both are given the target.
func (s *Source) resolvedPath() string {
	if resolved, err := filepath.EvalSymlinks(s.Path); err == nil {
		return resolved
	}
	return s.Path
}

func (s *Source) relative(p string) (string, error) {
	rel, err := filepath.Rel(s.resolvedPath(), p)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// matches reports whether rel is selected by any pattern.
// In recursive mode a pattern without a slash applies to the base name, so
// "*.md" selects notes at any depth.
func (s *Source) matches(rel string) bool {
	for _, pattern := range s.config.Patterns {
		target := rel
		if s.config.Recursive && !strings.Contains(pattern, "/") {
			target = path.Base(rel)
		}
		if ok, _ := doublestar.Match(pattern, target); ok {
			return true
		}
	}
	return false
}

// inSystemDir reports whether rel lives under .git or the system directory.
func (s *Source) inSystemDir(rel string) bool {
	for _, part := range strings.Split(path.Dir(rel), "/") {
		if s.skipDir(part) {
			return true
		}
	}
	return false
}

var _ core.Source = (*Source)(nil)
var _ core.Initializer = (*Source)(nil)
var _ core.Watchable = (*Source)(nil)

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
