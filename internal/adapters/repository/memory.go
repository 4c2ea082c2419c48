package repository

import (
	"context"
	"sync"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
)

// MemoryStore keeps state in process. It backs tests and ephemeral runs.
type MemoryStore struct {
	mu     sync.RWMutex
	snap   *snapshot
	closed bool
}

// NewMemoryStore returns a store seeded with initial.
func NewMemoryStore(initial model.State) *MemoryStore {
	return &MemoryStore{snap: snapshotOf(initial)}
}

func (m *MemoryStore) LoadState(ctx context.Context) (model.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return model.State{}, ErrClosed
	}
	return m.snap.state(), nil
}

func (m *MemoryStore) SaveState(ctx context.Context, patch model.StatePatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.snap.apply(patch)
	return nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
