package availability

import "time"

// Option applies a configuration option to the Tracker.
type Option func(*Tracker)

// WithDefaultCapacity sets MaxCapacity for records created on first touch.
func WithDefaultCapacity(capacity int) Option {
	return func(t *Tracker) {
		if capacity > 0 {
			t.defaultCapacity = capacity
		}
	}
}

// WithClock overrides the time source used for LastUpdated.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}
