package deck

import (
	"errors"
	"fmt"
)

var (
	// ErrIgnoredLine marks blank and comment lines. It is not a failure.
	ErrIgnoredLine = errors.New("ignored line")

	// ErrUnparseableLine is returned for lines matching none of the grammars.
	ErrUnparseableLine = errors.New("unparseable deck line")

	// ErrSourceUnavailable wraps failures to open or read a deck source.
	ErrSourceUnavailable = errors.New("deck source unavailable")

	// ErrEmptyResult means a source was read but produced no cards.
	ErrEmptyResult = errors.New("deck source yielded no cards")

	// ErrCardNotFound is returned by a Resolver that does not know an id.
	ErrCardNotFound = errors.New("card not found")
)

// LineError records a text line that was skipped.
type LineError struct {
	Number int    // 1-based line number
	Text   string // Trimmed line content
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: could not parse '%s': %v", e.Number, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// EntryError records a structured-export entry that produced no cards.
type EntryError struct {
	Section string // "crypt" or "library"
	Index   int    // 0-based position within the section
	ID      int
	Count   int
	Err     error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s[%d]: card %d (x%d): %v", e.Section, e.Index, e.ID, e.Count, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }
