// Package worker applies accepted coach request decisions to the ledger.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/metrics"
)

const (
	poolShutdownTimeout = 30 * time.Second
)

// ErrUnknownRole is returned for a decision whose role is neither primary nor secondary.
var ErrUnknownRole = errors.New("unknown decision role")

// Assigner is the slice of the engine a worker drives.
type Assigner interface {
	RegisterAthlete(ctx context.Context, athleteID, athleteName string) (*model.Assignment, error)
	AssignPrimaryCoach(ctx context.Context, athleteID, athleteName, coachID string) (*model.Assignment, error)
	AddSecondaryCoach(ctx context.Context, athleteID, coachID string, priority int) (*model.Assignment, error)
}

// Queue defines how workers receive decisions.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Decision
}

// InMemoryWorker pulls decisions off the queue and applies them.
type InMemoryWorker struct {
	queue    Queue
	assigner Assigner
	name     string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a worker.
func NewInMemoryWorker(q Queue, a Assigner, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		assigner: a,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run processes decisions until ctx is cancelled, Shutdown is called or the
// queue is closed.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	ch := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case d, ok := <-ch:
			if !ok {
				return
			}
			if err := w.Apply(ctx, d); err != nil {
				w.logger.Error(ctx, "error applying decision",
					logger.String("decisionID", d.ID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown stops the worker and waits for the in-flight decision.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Apply turns one decision into a ledger mutation. Rejected decisions are
// dropped. A secondary role registers the athlete first so the backup has a
// record to attach to.
func (w *InMemoryWorker) Apply(ctx context.Context, d model.Decision) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	if !d.Accepted {
		metrics.RecordDecisionApplied(string(d.Role), "rejected")
		w.logger.Info(ctx, "decision rejected by coach",
			logger.String("decisionID", d.ID),
			logger.String("athleteID", d.AthleteID),
			logger.String("coachID", d.CoachID),
		)
		return nil
	}

	var err error
	switch d.Role {
	case model.RolePrimary:
		_, err = w.assigner.AssignPrimaryCoach(ctx, d.AthleteID, d.AthleteName, d.CoachID)
	case model.RoleSecondary:
		if _, err = w.assigner.RegisterAthlete(ctx, d.AthleteID, d.AthleteName); err == nil {
			_, err = w.assigner.AddSecondaryCoach(ctx, d.AthleteID, d.CoachID, d.Priority)
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownRole, d.Role)
	}

	if err != nil {
		metrics.RecordDecisionApplied(string(d.Role), "error")
		metrics.RecordErrorByComponent("worker", "apply_error")
		return fmt.Errorf("apply decision %s: %w", d.ID, err)
	}
	metrics.RecordDecisionApplied(string(d.Role), "applied")
	w.logger.Debug(ctx, "decision applied",
		logger.String("decisionID", d.ID),
		logger.String("role", string(d.Role)),
	)
	return nil
}

// Pool runs several workers over one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates workerCount workers; a count below 1 means one per CPU.
func NewPool(workerCount int, q Queue, a Assigner) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewInMemoryWorker(q, a, WithName("worker-"+strconv.Itoa(i)))
	}
	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Start launches every worker.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Shutdown closes the queue and waits for the workers to drain it.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var timedOut bool
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			timedOut = true
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("workerID", i))
		}
	}
	metrics.UpdateWorkerCount(0)
	if timedOut {
		return fmt.Errorf("worker pool shutdown: %w", shutdownCtx.Err())
	}
	return nil
}
