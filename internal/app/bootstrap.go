package service

import (
	"context"
	"fmt"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/adapters/repository"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/adapters/roster"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/config"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"
)

// FromConfig opens the configured store and builds an engine over it. The
// engine is not started.
func FromConfig(ctx context.Context, cfg *config.Config, log logger.Logger) (*Engine, error) {
	store, err := repository.Open(ctx, repository.Settings{
		Backend:   cfg.StoreBackend,
		StateFile: cfg.StateFile,
		DSN:       cfg.PostgresDSN,
		Retries:   cfg.PersistRetries,
		Backoff:   cfg.PersistBackoff(),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
	}
	return New(
		WithStore(store, cfg.StoreBackend),
		WithLogger(log),
		WithDefaultCapacity(cfg.DefaultMaxCapacity),
		WithWorkerCount(cfg.RequestWorkers),
		WithQueueSize(cfg.RequestQueueSize),
		WithDedupeSize(cfg.DedupeSize),
	), nil
}

// ImportRoster reads a CSV or YAML roster file and syncs it.
func (e *Engine) ImportRoster(ctx context.Context, path string, replace bool) (RosterResult, error) {
	coaches, err := roster.LoadFile(path)
	if err != nil {
		return RosterResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return e.SyncRoster(ctx, coaches, replace)
}
