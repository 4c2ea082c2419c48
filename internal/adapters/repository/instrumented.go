package repository

import (
	"context"
	"time"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/metrics"
)

// instrumented records latency and failures of the wrapped store.
type instrumented struct {
	Store
	backend string
}

// Instrument wraps s so every load and save is measured under backend.
func Instrument(s Store, backend string) Store {
	return &instrumented{Store: s, backend: backend}
}

func (i *instrumented) LoadState(ctx context.Context) (model.State, error) {
	start := time.Now()
	st, err := i.Store.LoadState(ctx)
	i.observe("load", start, err)
	return st, err
}

func (i *instrumented) SaveState(ctx context.Context, patch model.StatePatch) error {
	start := time.Now()
	err := i.Store.SaveState(ctx, patch)
	i.observe("save", start, err)
	return err
}

func (i *instrumented) observe(op string, start time.Time, err error) {
	metrics.RecordPersistLatency(i.backend, op, float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		metrics.RecordPersistFailure(i.backend)
		metrics.RecordErrorByComponent("repository", op+"_error")
	}
}
