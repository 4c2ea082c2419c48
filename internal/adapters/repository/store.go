// Package repository persists engine state: the coach roster, availability
// records and assignment ledger.
package repository

import (
	"context"
	"sort"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
)

// Store loads and saves engine state. Implementations must leave every
// collection a patch does not carry untouched. No atomicity across the three
// collections is assumed by callers.
type Store interface {
	// LoadState returns everything stored, each collection ordered by key.
	LoadState(ctx context.Context) (model.State, error)

	// SaveState upserts the records carried by patch. An assignment older
	// than the stored one is skipped without error.
	SaveState(ctx context.Context, patch model.StatePatch) error

	Close() error
}

// snapshot is an indexed copy of the state shared by the memory and file stores.
type snapshot struct {
	coaches      map[string]model.Coach
	availability map[string]model.Availability
	assignments  map[string]model.Assignment
}

func newSnapshot() *snapshot {
	return &snapshot{
		coaches:      make(map[string]model.Coach),
		availability: make(map[string]model.Availability),
		assignments:  make(map[string]model.Assignment),
	}
}

func snapshotOf(st model.State) *snapshot {
	s := newSnapshot()
	s.apply(model.PatchOf(st))
	return s
}

func (s *snapshot) apply(p model.StatePatch) {
	if p.ReplaceCoaches {
		s.coaches = make(map[string]model.Coach, len(p.Coaches))
	}
	for _, c := range p.Coaches {
		s.coaches[c.ID] = c.Clone()
	}
	for _, a := range p.Availability {
		s.availability[a.CoachID] = a.Clone()
	}
	for _, a := range p.Assignments {
		if cur, ok := s.assignments[a.AthleteID]; ok && !a.Supersedes(cur) {
			continue
		}
		s.assignments[a.AthleteID] = a.Clone()
	}
}

func (s *snapshot) state() model.State {
	st := model.State{
		Coaches:      make([]model.Coach, 0, len(s.coaches)),
		Availability: make([]model.Availability, 0, len(s.availability)),
		Assignments:  make([]model.Assignment, 0, len(s.assignments)),
	}
	for _, c := range s.coaches {
		st.Coaches = append(st.Coaches, c.Clone())
	}
	for _, a := range s.availability {
		st.Availability = append(st.Availability, a.Clone())
	}
	for _, a := range s.assignments {
		st.Assignments = append(st.Assignments, a.Clone())
	}
	sortState(&st)
	return st
}

func sortState(st *model.State) {
	sort.Slice(st.Coaches, func(i, j int) bool { return st.Coaches[i].ID < st.Coaches[j].ID })
	sort.Slice(st.Availability, func(i, j int) bool { return st.Availability[i].CoachID < st.Availability[j].CoachID })
	sort.Slice(st.Assignments, func(i, j int) bool { return st.Assignments[i].AthleteID < st.Assignments[j].AthleteID })
}
