// Package availability tracks per-coach status, schedule and capacity.
//
// Capacity and status are soft constraints. Nothing here blocks an
// assignment to a full or unavailable coach; only Available filters them
// out. Admins rely on that to override capacity, so keep writes unguarded.
package availability

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
)

const defaultMaxCapacity = 10

// LoadCounter reports how many athletes have coachID as primary.
// The assignment ledger is the source of truth for load.
type LoadCounter interface {
	PrimaryCount(coachID string) int
}

// CoachLister yields the coach directory.
type CoachLister interface {
	List(ctx context.Context) []model.Coach
}

// Tracker owns availability facts. It never reacts to them; failover is
// the caller's job.
type Tracker struct {
	mu      sync.RWMutex
	records map[string]model.Availability

	loads   LoadCounter
	coaches CoachLister

	defaultCapacity int
	now             func() time.Time
}

// New creates a tracker that derives load from loads and candidates from coaches.
func New(loads LoadCounter, coaches CoachLister, opts ...Option) *Tracker {
	t := &Tracker{
		records:         make(map[string]model.Availability),
		loads:           loads,
		coaches:         coaches,
		defaultCapacity: defaultMaxCapacity,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) defaultRecord(coachID string) model.Availability {
	return model.Availability{
		CoachID:          coachID,
		Status:           model.StatusAvailable,
		Schedule:         model.DefaultSchedule(),
		MaxCapacity:      t.defaultCapacity,
		UnavailableDates: []string{},
		LastUpdated:      t.now().UTC(),
	}
}

// Ensure creates a default record for coachID if none exists and reports
// whether one was created.
func (t *Tracker) Ensure(ctx context.Context, coachID string) (model.Availability, bool) {
	t.mu.Lock()
	rec, ok := t.records[coachID]
	if !ok {
		rec = t.defaultRecord(coachID)
		t.records[coachID] = rec
	}
	t.mu.Unlock()
	return t.withLoad(rec), !ok
}

// Update merges patch into the coach's record and stamps LastUpdated.
func (t *Tracker) Update(ctx context.Context, coachID string, patch model.AvailabilityPatch) (model.Availability, error) {
	if coachID == "" {
		return model.Availability{}, ErrEmptyCoachID
	}
	if err := validate(patch); err != nil {
		return model.Availability{}, err
	}

	t.mu.Lock()
	rec, ok := t.records[coachID]
	if !ok {
		rec = t.defaultRecord(coachID)
	}
	rec = apply(rec.Clone(), patch)
	rec.LastUpdated = t.now().UTC()
	t.records[coachID] = rec
	t.mu.Unlock()

	return t.withLoad(rec), nil
}

func validate(p model.AvailabilityPatch) error {
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: status %q", ErrInvalidPatch, *p.Status)
	}
	if p.MaxCapacity != nil && *p.MaxCapacity <= 0 {
		return fmt.Errorf("%w: max capacity %d", ErrInvalidPatch, *p.MaxCapacity)
	}
	return nil
}

func apply(rec model.Availability, p model.AvailabilityPatch) model.Availability {
	if p.Status != nil {
		rec.Status = *p.Status
	}
	if p.MaxCapacity != nil {
		rec.MaxCapacity = *p.MaxCapacity
	}
	if p.Schedule != nil {
		if rec.Schedule == nil {
			rec.Schedule = make(model.Schedule, len(p.Schedule))
		}
		for day, hours := range p.Schedule {
			rec.Schedule[day] = hours
		}
	}
	dates := rec.UnavailableDates
	if p.UnavailableDates != nil {
		dates = p.UnavailableDates
	}
	dates = append(append([]string(nil), dates...), p.AddUnavailableDates...)
	if len(p.RemoveUnavailableDates) > 0 {
		drop := make(map[string]struct{}, len(p.RemoveUnavailableDates))
		for _, d := range p.RemoveUnavailableDates {
			drop[d] = struct{}{}
		}
		kept := dates[:0]
		for _, d := range dates {
			if _, ok := drop[d]; !ok {
				kept = append(kept, d)
			}
		}
		dates = kept
	}
	rec.UnavailableDates = model.NormalizeDates(dates)
	return rec
}

// withLoad fills CurrentLoad from the ledger. The stored value is never trusted.
func (t *Tracker) withLoad(rec model.Availability) model.Availability {
	out := rec.Clone()
	if t.loads != nil {
		out.CurrentLoad = t.loads.PrimaryCount(rec.CoachID)
	}
	return out
}

// Get returns the coach's record with a freshly derived CurrentLoad.
func (t *Tracker) Get(ctx context.Context, coachID string) (model.Availability, bool) {
	t.mu.RLock()
	rec, ok := t.records[coachID]
	t.mu.RUnlock()
	if !ok {
		return model.Availability{}, false
	}
	return t.withLoad(rec), true
}

// All returns every record ordered by coach ID.
func (t *Tracker) All(ctx context.Context) []model.Availability {
	t.mu.RLock()
	out := make([]model.Availability, 0, len(t.records))
	for _, rec := range t.records {
		out = append(out, rec)
	}
	t.mu.RUnlock()
	for i := range out {
		out[i] = t.withLoad(out[i])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CoachID < out[j].CoachID })
	return out
}

// Load replaces the tracker contents with records read from storage.
func (t *Tracker) Load(ctx context.Context, records []model.Availability) {
	next := make(map[string]model.Availability, len(records))
	for _, rec := range records {
		if rec.CoachID == "" {
			continue
		}
		rec = rec.Clone()
		rec.UnavailableDates = model.NormalizeDates(rec.UnavailableDates)
		next[rec.CoachID] = rec
	}
	t.mu.Lock()
	t.records = next
	t.mu.Unlock()
}

// Available lists directory coaches that are available, below capacity and
// not excluded, best rated first. The result is advisory: two callers can
// both see a free slot and both assign.
func (t *Tracker) Available(ctx context.Context, excludeIDs []string) []model.Coach {
	if t.coaches == nil {
		return []model.Coach{}
	}
	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	out := []model.Coach{}
	for _, c := range t.coaches.List(ctx) {
		if _, skip := excluded[c.ID]; skip {
			continue
		}
		rec, ok := t.Get(ctx, c.ID)
		if !ok || rec.Status != model.StatusAvailable || !rec.HasCapacity() {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// IsUnavailableOn reports whether coachID blocked out date (YYYY-MM-DD).
func (t *Tracker) IsUnavailableOn(ctx context.Context, coachID, date string) bool {
	rec, ok := t.Get(ctx, coachID)
	return ok && rec.IsUnavailableOn(date)
}

// OpenOn reports whether coachID's schedule is open on day.
func (t *Tracker) OpenOn(ctx context.Context, coachID string, day time.Weekday) bool {
	rec, ok := t.Get(ctx, coachID)
	return ok && rec.Schedule.OpenOn(day)
}
