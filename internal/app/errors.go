package service

import (
	"errors"
	"fmt"
)

// Sentinel kinds for engine errors.
var (
	ErrPersist      = errors.New("persist failed")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrBackpressure = errors.New("backpressure")
)

// PersistError reports that a mutation was applied in memory but the
// durable write failed. The in-memory change is not rolled back; the
// operation's return value is still the new state.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrPersist, e.Err)
}

// Unwrap exposes both ErrPersist and the store's error to errors.Is.
func (e *PersistError) Unwrap() []error {
	return []error{ErrPersist, e.Err}
}
