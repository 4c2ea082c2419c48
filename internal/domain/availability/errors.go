package availability

import "errors"

var (
	// ErrInvalidPatch is returned when a patch carries an unknown status or a non-positive capacity.
	ErrInvalidPatch = errors.New("invalid availability patch")
	// ErrEmptyCoachID is returned when a write names no coach.
	ErrEmptyCoachID = errors.New("empty coach id")
)
