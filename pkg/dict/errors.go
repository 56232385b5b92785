package dict

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the provider answered but has no definition.
	ErrNotFound = errors.New("word not found")
	// ErrUnavailable means the provider could not be reached or answered
	// with something other than a definition or a clean not-found.
	ErrUnavailable = errors.New("lookup service unavailable")
	// ErrEmptyQuery means the term was blank after trimming.
	ErrEmptyQuery = errors.New("empty query")
)

// NotFoundError is the not-found outcome for a concrete word. Some
// providers attach spelling suggestions to it.
type NotFoundError struct {
	Word        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no definition found for %q", e.Word)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
