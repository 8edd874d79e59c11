package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Service wires a Source to the loader and query engine.
type Service struct {
	src      Source
	logger   *slog.Logger
	loadOpts []LoadOption

	mu        sync.RWMutex
	loads     int
	lastCount int
	lastLoad  *time.Time
}

// NewService creates a new Service. A nil logger discards all records.
func NewService(src Source, logger *slog.Logger, opts ...LoadOption) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{src: src, logger: logger, loadOpts: opts}
}

// Source returns the source the service reads from.
func (s *Service) Source() Source {
	return s.src
}

// Load builds a fresh corpus from the source and returns an engine over it.
// Each call re-reads the source; the returned engine never changes.
func (s *Service) Load(ctx context.Context) (*Engine, error) {
	start := time.Now()

	corpus, err := Load(ctx, s.src, s.loadOpts...)
	if err != nil {
		s.logger.Error("load failed", "error", err)
		return nil, err
	}

	engine := NewEngine(corpus)
	for id, names := range engine.Index().Duplicates() {
		s.logger.Warn("duplicate id, first match wins", "id", id, "notes", names)
	}
	s.logger.Debug("corpus loaded", "notes", corpus.Len(), "duration", time.Since(start))

	s.mu.Lock()
	s.loads++
	s.lastCount = corpus.Len()
	now := time.Now()
	s.lastLoad = &now
	s.mu.Unlock()

	return engine, nil
}

// ListNotes loads the corpus and returns every note sorted by id.
func (s *Service) ListNotes(ctx context.Context) ([]Note, error) {
	engine, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return engine.List(), nil
}

// GetNotes loads the corpus and resolves the given ids.
func (s *Service) GetNotes(ctx context.Context, ids ...string) ([]Note, error) {
	engine, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return engine.Get(ids...), nil
}

// Tree loads the corpus and returns the neighborhood of id.
func (s *Service) Tree(ctx context.Context, id string) (Tree, error) {
	engine, err := s.Load(ctx)
	if err != nil {
		return Tree{}, err
	}
	return engine.Tree(id)
}

// Watch observes changes in the source if supported.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.src.(Watchable)
	if !ok {
		return nil, ErrNotWatchable
	}
	events, err := w.Watch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to watch source: %w", err)
	}
	return events, nil
}
