package tracker

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownQuestion means the question id is not in the catalog.
	ErrUnknownQuestion = errors.New("unknown question id")
	// ErrInvalidDomain means the domain is not one of the four exam domains.
	ErrInvalidDomain = errors.New("invalid domain")
	// ErrInvalidLevel means the level is not one of the three difficulty tiers.
	ErrInvalidLevel = errors.New("invalid level")
	// ErrNotAttempted means the operation needs an existing tracking entry.
	ErrNotAttempted = errors.New("question has no tracking entry")
)

// PersistError reports that the in-memory update succeeded but the
// write-through to the store failed. The session can continue; the caller
// should warn that progress may not be saved.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
