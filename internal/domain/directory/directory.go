// Package directory holds the coach reference data supplied by roster sync.
package directory

import (
	"context"
	"sort"
	"sync"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
)

// Directory is a read-mostly, in-memory coach roster.
type Directory struct {
	mu      sync.RWMutex
	coaches map[string]model.Coach
}

// New returns an empty directory.
func New() *Directory {
	return &Directory{coaches: make(map[string]model.Coach)}
}

// Replace swaps the whole roster for coaches.
func (d *Directory) Replace(ctx context.Context, coaches []model.Coach) {
	next := make(map[string]model.Coach, len(coaches))
	for _, c := range coaches {
		if c.ID == "" {
			continue
		}
		next[c.ID] = c.Clone()
	}
	d.mu.Lock()
	d.coaches = next
	d.mu.Unlock()
}

// Merge upserts coaches by ID. Coaches absent from the input are kept.
func (d *Directory) Merge(ctx context.Context, coaches []model.Coach) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range coaches {
		if c.ID == "" {
			continue
		}
		d.coaches[c.ID] = c.Clone()
	}
}

// Get returns a copy of the coach with id.
func (d *Directory) Get(ctx context.Context, id string) (model.Coach, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.coaches[id]
	if !ok {
		return model.Coach{}, false
	}
	return c.Clone(), true
}

// List returns all coaches ordered by ID.
func (d *Directory) List(ctx context.Context) []model.Coach {
	d.mu.RLock()
	out := make([]model.Coach, 0, len(d.coaches))
	for _, c := range d.coaches {
		out = append(out, c.Clone())
	}
	d.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of coaches.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.coaches)
}
