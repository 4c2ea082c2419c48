package service

import (
	"time"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/adapters/repository"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithStore sets the persistence backend; backend labels logs and metrics.
func WithStore(store repository.Store, backend string) Option {
	return func(e *Engine) {
		if store != nil {
			e.store = store
			e.backend = backend
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithDefaultCapacity sets MaxCapacity for coaches without an availability record.
func WithDefaultCapacity(capacity int) Option {
	return func(e *Engine) {
		if capacity > 0 {
			e.defaultCapacity = capacity
		}
	}
}

// WithClock overrides the time source for timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithWorkerCount sets how many workers apply request decisions.
func WithWorkerCount(count int) Option {
	return func(e *Engine) {
		if count > 0 {
			e.workerCount = count
		}
	}
}

// WithQueueSize sets how many request decisions may wait.
func WithQueueSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.queueSize = size
		}
	}
}

// WithDedupeSize sets how many decision IDs are remembered.
func WithDedupeSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.dedupeSize = size
		}
	}
}
