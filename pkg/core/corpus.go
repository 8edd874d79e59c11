package core

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Corpus is the ordered, immutable set of notes loaded for one run.
type Corpus struct {
	notes []Note
}

// NewCorpus builds a corpus from already loaded notes, keeping their order.
// The slice is copied; later changes to it do not affect the corpus.
func NewCorpus(notes []Note) *Corpus {
	c := &Corpus{notes: make([]Note, len(notes))}
	for i, n := range notes {
		c.notes[i] = n.clone()
	}
	return c
}

// Notes returns a copy of the notes in corpus order.
func (c *Corpus) Notes() []Note {
	out := make([]Note, len(c.notes))
	for i, n := range c.notes {
		out[i] = n.clone()
	}
	return out
}

// Len returns the number of notes.
func (c *Corpus) Len() int {
	return len(c.notes)
}

// Empty reports whether the corpus holds no notes.
func (c *Corpus) Empty() bool {
	return len(c.notes) == 0
}

type loadOptions struct {
	concurrency int
	strict      bool
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithConcurrency bounds the number of files read in parallel.
// Values below 1 fall back to GOMAXPROCS.
func WithConcurrency(n int) LoadOption {
	return func(o *loadOptions) {
		o.concurrency = n
	}
}

// WithStrictIDs rejects a corpus in which two notes declare the same id.
func WithStrictIDs(strict bool) LoadOption {
	return func(o *loadOptions) {
		o.strict = strict
	}
}

// Load reads every file the source supplies and returns the resulting corpus.
//
// Files are read in parallel but the corpus keeps the order given by
// src.Names. The first file that cannot be opened or read aborts the load
// with a *ReadError.
func Load(ctx context.Context, src Source, opts ...LoadOption) (*Corpus, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.concurrency < 1 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}

	names, err := src.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	notes := make([]Note, len(names))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for i, name := range names {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			note, err := loadOne(gCtx, src, name)
			if err != nil {
				return err
			}
			notes[i] = note
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	corpus := &Corpus{notes: notes}
	if o.strict {
		if err := checkDuplicates(corpus); err != nil {
			return nil, err
		}
	}
	return corpus, nil
}

func loadOne(ctx context.Context, src Source, name string) (Note, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return Note{}, &ReadError{Name: name, Err: err}
	}
	defer rc.Close()

	return LoadNote(name, rc)
}

func checkDuplicates(c *Corpus) error {
	seen := make(map[string]int)
	for i, n := range c.notes {
		if !n.Tagged() {
			continue
		}
		first, ok := seen[n.ID]
		if !ok {
			seen[n.ID] = i
			continue
		}
		names := []string{c.notes[first].Name}
		for _, other := range c.notes[first+1:] {
			if other.ID == n.ID {
				names = append(names, other.Name)
			}
		}
		return &DuplicateIDError{ID: n.ID, Names: names}
	}
	return nil
}
