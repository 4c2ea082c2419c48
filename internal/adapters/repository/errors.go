package repository

import "errors"

// Sentinel kinds for persistence errors.
var (
	ErrClosed         = errors.New("store closed")
	ErrUnknownBackend = errors.New("unknown store backend")
	ErrCorruptState   = errors.New("corrupt state file")
)
