package core

import (
	"context"
	"io"
)

// Source supplies the raw files of a slip-box.
// Adhering to this interface keeps the core independent of where notes live
// (a directory, an archive, an in-memory fixture).
type Source interface {
	// Names returns the files to load, in the order they should appear in the corpus.
	Names(ctx context.Context) ([]string, error)

	// Open returns the content of a single file.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Initializer is implemented by sources that must validate or prepare
// themselves before the first load (e.g. check that a directory exists).
type Initializer interface {
	Initialize(ctx context.Context) error
}

// EventType represents the type of change observed in a source.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to one file of a source.
type Event struct {
	Type      EventType
	Name      string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return string(e.Type) + " " + e.Name
}

// Watchable is implemented by sources that can report changes.
// The returned channel is closed when ctx is done.
type Watchable interface {
	Watch(ctx context.Context) (<-chan Event, error)
}
