// Package queue buffers coach request decisions between the HTTP intake
// and the workers that apply them to the ledger.
package queue

import (
	"context"
	"sync"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/metrics"
)

const defaultQueueCapacity = 1024

// Decision is the payload flowing through the queue.
type Decision = model.Decision

// Queue provides non-blocking enqueue and channel-based dequeue.
type Queue interface {
	// Enqueue adds d or returns ErrFull/ErrClosed without blocking.
	Enqueue(ctx context.Context, d Decision) error

	// Dequeue returns a channel that is closed once the queue is closed and drained.
	Dequeue(ctx context.Context) <-chan Decision

	Len() int
	Close() error
}

// InMemoryQueue implements Queue on a buffered channel.
type InMemoryQueue struct {
	items    chan Decision
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a bounded queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.items = make(chan Decision, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue adds d to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, d Decision) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "closed")
		return ErrClosed
	}

	select {
	case q.items <- d:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueueSize(len(q.items))
		return nil
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return ctx.Err()
	default:
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "queue_full")
		return ErrFull
	}
}

// Dequeue returns the consumer side of the queue.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Decision {
	out := make(chan Decision)
	go func() {
		defer close(out)
		for d := range q.items {
			select {
			case out <- d:
				metrics.RecordQueueDequeue()
				metrics.UpdateQueueSize(len(q.items))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the number of waiting decisions.
func (q *InMemoryQueue) Len() int {
	return len(q.items)
}

// Close stops intake; consumers drain what is left.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	close(q.items)
	q.closed = true
	return nil
}
