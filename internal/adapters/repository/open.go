package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Settings selects and tunes a backend.
type Settings struct {
	Backend   string
	StateFile string
	DSN       string
	Retries   int
	Backoff   time.Duration
}

// Open builds the configured store, measured and wrapped in retries.
func Open(ctx context.Context, s Settings) (Store, error) {
	var base Store
	switch s.Backend {
	case BackendMemory, "":
		base = NewMemoryStore(model.State{})
		s.Backend = BackendMemory
	case BackendFile:
		base = NewFileStore(s.StateFile)
	case BackendPostgres:
		pg, err := OpenPostgres(ctx, s.DSN)
		if err != nil {
			return nil, err
		}
		base = pg
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, s.Backend)
	}
	return NewRetryingStore(Instrument(base, s.Backend), s.Backend,
		WithRetries(s.Retries),
		WithBackoff(s.Backoff),
	), nil
}
