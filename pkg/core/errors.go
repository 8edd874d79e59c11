package core

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors.
var (
	ErrRead         = errors.New("failed to read note")
	ErrNotFound     = errors.New("note not found")
	ErrDuplicateID  = errors.New("duplicate note id")
	ErrNotWatchable = errors.New("source does not support watching")
)

// ReadError reports a file that could not be opened or read while loading.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrRead, e.Name, e.Err)
}

func (e *ReadError) Unwrap() []error {
	return []error{ErrRead, e.Err}
}

// DuplicateIDError is returned by a strict load when several notes declare the same id.
type DuplicateIDError struct {
	ID    string
	Names []string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s %q declared by %s", ErrDuplicateID, e.ID, strings.Join(e.Names, ", "))
}

func (e *DuplicateIDError) Unwrap() error {
	return ErrDuplicateID
}
