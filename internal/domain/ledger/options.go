package ledger

import (
	"time"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
)

// Option applies a configuration option to the Ledger.
type Option func(*Ledger)

// WithClock overrides the time source for AssignedAt and history timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithIDGenerator overrides how history entry IDs are minted.
func WithIDGenerator(gen func() string) Option {
	return func(l *Ledger) {
		if gen != nil {
			l.newID = gen
		}
	}
}

// WithHistoryHook registers fn to observe every appended history entry.
// It runs while the athlete's lock is held and must not call back into the ledger.
func WithHistoryHook(fn func(athleteID string, h model.HistoryEntry)) Option {
	return func(l *Ledger) {
		l.onAppend = fn
	}
}
