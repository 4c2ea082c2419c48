package repository

import (
	"time"

	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"
)

// RetryOption applies a configuration option to the RetryingStore.
type RetryOption func(*RetryingStore)

// WithRetries sets how many times a failed save is retried.
func WithRetries(n int) RetryOption {
	return func(r *RetryingStore) {
		if n >= 0 {
			r.retries = n
		}
	}
}

// WithBackoff sets the delay before the first retry. It doubles per attempt.
func WithBackoff(d time.Duration) RetryOption {
	return func(r *RetryingStore) {
		if d > 0 {
			r.backoff = d
		}
	}
}

// WithRetryLogger sets the logger used to report retries.
func WithRetryLogger(l logger.Logger) RetryOption {
	return func(r *RetryingStore) {
		if l != nil {
			r.logger = l
		}
	}
}
