package report

import "errors"

// ErrUnknownCoach is returned when a coach has no availability record.
var ErrUnknownCoach = errors.New("unknown coach")
