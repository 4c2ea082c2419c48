// Package service hosts the assignment engine: the explicit, injected
// owner of the coach directory, availability tracker and assignment ledger.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/adapters/mq/queue"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/adapters/mq/worker"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/adapters/repository"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/availability"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/dedupe"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/directory"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/failover"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/ledger"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/report"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/metrics"
)

const (
	defaultCapacity    = 10
	defaultWorkerCount = 4
	defaultQueueSize   = 1024
	defaultDedupeSize  = 50000
)

// Engine applies assignment operations in memory first and then persists
// them. A failed write surfaces as *PersistError next to the new value.
type Engine struct {
	mu      sync.Mutex
	started bool

	store   repository.Store
	backend string

	directory *directory.Directory
	ledger    *ledger.Ledger
	tracker   *availability.Tracker
	failover  *failover.Coordinator
	reporter  *report.Reporter

	deduper dedupe.Deduper
	queue   *queue.InMemoryQueue
	pool    *worker.Pool

	defaultCapacity int
	workerCount     int
	queueSize       int
	dedupeSize      int
	now             func() time.Time

	logger logger.Logger
}

// New constructs an engine. Call Start before serving traffic.
func New(opts ...Option) *Engine {
	e := &Engine{
		defaultCapacity: defaultCapacity,
		workerCount:     defaultWorkerCount,
		queueSize:       defaultQueueSize,
		dedupeSize:      defaultDedupeSize,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = repository.NewMemoryStore(model.State{})
		e.backend = repository.BackendMemory
	}
	if e.logger == nil {
		e.logger = logger.Get().Named("engine")
	}

	e.directory = directory.New()
	e.ledger = ledger.New(
		ledger.WithClock(e.now),
		ledger.WithHistoryHook(func(_ string, h model.HistoryEntry) {
			metrics.RecordHistoryEntry(string(h.Action))
		}),
	)
	e.tracker = availability.New(e.ledger, e.directory,
		availability.WithDefaultCapacity(e.defaultCapacity),
		availability.WithClock(e.now),
	)
	e.failover = failover.New(e.ledger)
	e.reporter = report.New(e.ledger, e.tracker, e.directory)
	e.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(e.dedupeSize))
	e.queue = queue.NewInMemoryQueue(queue.WithCapacity(e.queueSize))
	return e
}

// Start loads persisted state and starts the request decision workers.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return nil
	}

	st, err := e.store.LoadState(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	e.directory.Replace(ctx, st.Coaches)
	e.tracker.Load(ctx, st.Availability)
	e.ledger.Load(ctx, st.Assignments)

	var created []model.Availability
	for _, c := range e.directory.List(ctx) {
		if rec, ok := e.tracker.Ensure(ctx, c.ID); ok {
			created = append(created, rec)
		}
	}
	if len(created) > 0 {
		if err := e.persist(ctx, "start", model.StatePatch{Availability: created}); err != nil {
			e.logger.Warn(ctx, "could not store default availability", logger.Error(err))
		}
	}

	e.pool = worker.NewPool(e.workerCount, e.queue, e)
	e.pool.Start(ctx)
	e.started = true
	e.refreshCoverage(ctx)

	e.logger.Info(ctx, "assignment engine started",
		logger.String("backend", e.backend),
		logger.Int("coaches", e.directory.Len()),
		logger.Int("athletes", e.ledger.Len()),
		logger.Int("workers", e.workerCount),
	)
	return nil
}

// Stop drains pending decisions and closes the store.
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return nil
	}
	e.started = false

	var firstErr error
	if err := e.pool.Shutdown(ctx); err != nil {
		firstErr = err
	}
	if err := e.store.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close store: %w", err)
	}
	e.logger.Info(ctx, "assignment engine stopped")
	return firstErr
}

// persist writes patch and converts a failure into *PersistError.
func (e *Engine) persist(ctx context.Context, op string, patch model.StatePatch) error {
	if err := e.store.SaveState(ctx, patch); err != nil {
		metrics.RecordOperation(op, "persist_failed")
		e.logger.Warn(ctx, "state not persisted, keeping in-memory change",
			logger.String("op", op),
			logger.String("backend", e.backend),
			logger.Error(err),
		)
		return &PersistError{Op: op, Err: err}
	}
	return nil
}

// finish records the outcome of a mutation that reached the persistence step.
func (e *Engine) finish(ctx context.Context, op string, err error) {
	if err == nil {
		metrics.RecordOperation(op, "ok")
	}
	e.refreshCoverage(ctx)
}

func (e *Engine) refreshCoverage(ctx context.Context) {
	s := e.reporter.SystemStats(ctx)
	metrics.UpdateCoverage(s.TotalAthletes, s.AthletesWithPrimary, s.TotalCoaches, s.AvailableCoaches, s.CoverageRate)
}
