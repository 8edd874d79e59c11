package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// SourceState exposes internal state for observability.
type SourceState struct {
	Path          string     `json:"path"`
	SystemDir     string     `json:"system_dir"`
	Patterns      []string   `json:"patterns"`
	Recursive     bool       `json:"recursive"`
	Gitignore     bool       `json:"gitignore"`
	WatcherActive bool       `json:"watcher_active"`
	LastScan      *time.Time `json:"last_scan,omitempty"`
	LastCount     int        `json:"last_count"`
}

// State implements introspection.Introspectable.
func (s *Source) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	patterns := make([]string, len(s.config.Patterns))
	copy(patterns, s.config.Patterns)

	return SourceState{
		Path:          s.Path,
		SystemDir:     s.config.SystemDir,
		Patterns:      patterns,
		Recursive:     s.config.Recursive,
		Gitignore:     s.config.Gitignore,
		WatcherActive: s.watcherActive,
		LastScan:      s.lastScan,
		LastCount:     s.lastCount,
	}
}

// ComponentType implements introspection.Component.
func (s *Source) ComponentType() string {
	return "fs-source"
}

var _ introspection.Introspectable = (*Source)(nil)
var _ introspection.Component = (*Source)(nil)

func (s *Source) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}

func (s *Source) recordScan(count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.lastScan = &now
	s.lastCount = count
}
