package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/metrics"
)

const (
	defaultRetries = 3
	defaultBackoff = 50 * time.Millisecond
	maxBackoff     = 2 * time.Second
)

// RetryingStore retries failed saves with exponential backoff. Loads are
// passed through untouched.
type RetryingStore struct {
	Store

	backend string
	retries int
	backoff time.Duration
	logger  logger.Logger
}

// NewRetryingStore wraps inner; backend labels metrics and logs.
func NewRetryingStore(inner Store, backend string, opts ...RetryOption) *RetryingStore {
	r := &RetryingStore{
		Store:   inner,
		backend: backend,
		retries: defaultRetries,
		backoff: defaultBackoff,
		logger:  logger.Get().Named("store-retry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RetryingStore) SaveState(ctx context.Context, patch model.StatePatch) error {
	delay := r.backoff
	var err error
	for attempt := 0; ; attempt++ {
		if err = r.Store.SaveState(ctx, patch); err == nil {
			return nil
		}
		if errors.Is(err, ErrClosed) || attempt >= r.retries {
			break
		}

		metrics.RecordPersistRetry(r.backend)
		r.logger.Warn(ctx, "save failed, retrying",
			logger.String("backend", r.backend),
			logger.Int("attempt", attempt+1),
			logger.Duration("delay", delay),
			logger.Error(err),
		)
		select {
		case <-ctx.Done():
			return fmt.Errorf("save state: %w", errors.Join(err, ctx.Err()))
		case <-time.After(delay):
		}
		delay = min(delay*2, maxBackoff)
	}
	return fmt.Errorf("save state after %d attempts: %w", r.retries+1, err)
}
