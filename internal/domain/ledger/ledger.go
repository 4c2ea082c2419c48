// Package ledger keeps the per-athlete assignment records: one primary
// slot, a ranked backup list and an append-only history.
//
// Mutations on one athlete are serialised by a per-athlete mutex, so two
// concurrent writers can no longer lose each other's update. Reads return
// deep copies and may be stale by the time the caller uses them.
package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
)

// History reasons written by the ledger itself.
const (
	ReasonManualAssignment = "manual assignment"
	ReasonBackupAdded      = "backup coach added"
	ReasonBackupRemoved    = "backup coach removed"
	ReasonManualRemoval    = "manual removal"
	ReasonPromoted         = "promoted from secondary"
)

// Ledger is the in-memory assignment store.
type Ledger struct {
	mu      sync.RWMutex
	records map[string]model.Assignment

	athletes *keyedMutex
	now      func() time.Time
	newID    func() string
	onAppend func(athleteID string, h model.HistoryEntry)
}

// New returns an empty ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		records:  make(map[string]model.Assignment),
		athletes: newKeyedMutex(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Ledger) load(athleteID string) (model.Assignment, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.records[athleteID]
	return a, ok
}

// store bumps a's version and makes it the athlete's current record.
// Callers hold the athlete's lock, so versions only grow.
func (l *Ledger) store(a *model.Assignment) {
	a.Version++
	l.mu.Lock()
	l.records[a.AthleteID] = *a
	l.mu.Unlock()
}

// commit stores a and reports the history entries appended since before.
func (l *Ledger) commit(a *model.Assignment, before int) {
	l.store(a)
	if l.onAppend == nil {
		return
	}
	for _, h := range a.History[before:] {
		l.onAppend(a.AthleteID, h)
	}
}

func (l *Ledger) entry(action model.Action, reason string, at time.Time) model.HistoryEntry {
	return model.HistoryEntry{ID: l.newID(), Action: action, Timestamp: at, Reason: reason}
}

func newRecord(athleteID, athleteName string, at time.Time) model.Assignment {
	return model.Assignment{
		AthleteID:        athleteID,
		AthleteName:      athleteName,
		SecondaryCoaches: []model.SecondaryCoach{},
		History:          []model.HistoryEntry{},
		UpdatedAt:        at,
	}
}

// EnsureAthlete creates a record with no primary coach if the athlete has
// none yet. It reports whether a record was created.
func (l *Ledger) EnsureAthlete(ctx context.Context, athleteID, athleteName string) (model.Assignment, bool) {
	unlock := l.athletes.Lock(athleteID)
	defer unlock()

	if a, ok := l.load(athleteID); ok {
		if a.AthleteName == "" && athleteName != "" {
			a = a.Clone()
			a.AthleteName = athleteName
			l.store(&a)
		}
		return a.Clone(), false
	}
	a := newRecord(athleteID, athleteName, l.now().UTC())
	l.store(&a)
	return a.Clone(), true
}

// AssignPrimary sets or replaces the primary coach. The backup list is left
// as is and capacity is not checked.
func (l *Ledger) AssignPrimary(ctx context.Context, athleteID, athleteName, coachID string) model.Assignment {
	unlock := l.athletes.Lock(athleteID)
	defer unlock()

	now := l.now().UTC()
	a, ok := l.load(athleteID)
	if ok {
		a = a.Clone()
	} else {
		a = newRecord(athleteID, athleteName, now)
	}
	if athleteName != "" {
		a.AthleteName = athleteName
	}
	before := len(a.History)

	h := l.entry(model.ActionPrimaryAssigned, ReasonManualAssignment, now)
	h.CoachID = coachID
	if prev := a.PrimaryCoachID(); prev != "" && prev != coachID {
		h.FromCoachID = prev
	}
	a.PrimaryCoach = &model.CoachSlot{CoachID: coachID, AssignedAt: now, Status: model.SlotActive}
	a.History = append(a.History, h)
	a.UpdatedAt = now

	l.commit(&a, before)
	return a.Clone()
}

// AddSecondary inserts or re-ranks coachID in the backup list. It returns
// false when the athlete has no record yet.
func (l *Ledger) AddSecondary(ctx context.Context, athleteID, coachID string, priority int) (model.Assignment, bool) {
	unlock := l.athletes.Lock(athleteID)
	defer unlock()

	a, ok := l.load(athleteID)
	if !ok {
		return model.Assignment{}, false
	}
	a = a.Clone()
	now := l.now().UTC()
	before := len(a.History)

	backups := make([]model.SecondaryCoach, 0, len(a.SecondaryCoaches)+1)
	for _, s := range a.SecondaryCoaches {
		if s.CoachID != coachID {
			backups = append(backups, s)
		}
	}
	backups = append(backups, model.SecondaryCoach{
		CoachID:    coachID,
		AssignedAt: now,
		Status:     model.SlotStandby,
		Priority:   priority,
	})
	sort.SliceStable(backups, func(i, j int) bool { return backups[i].Priority < backups[j].Priority })
	a.SecondaryCoaches = backups

	h := l.entry(model.ActionSecondaryAdded, ReasonBackupAdded, now)
	h.CoachID = coachID
	p := priority
	h.Priority = &p
	a.History = append(a.History, h)
	a.UpdatedAt = now

	l.commit(&a, before)
	return a.Clone(), true
}

// RemoveCoach drops coachID from the backup list, or from the primary slot
// when isSecondary is false. Removing the primary promotes the first backup.
// It returns false when the athlete has no record. Removing a coach that
// does not hold the slot leaves the record unchanged.
func (l *Ledger) RemoveCoach(ctx context.Context, athleteID, coachID string, isSecondary bool) (model.Assignment, bool) {
	unlock := l.athletes.Lock(athleteID)
	defer unlock()

	a, ok := l.load(athleteID)
	if !ok {
		return model.Assignment{}, false
	}
	a = a.Clone()
	now := l.now().UTC()
	before := len(a.History)

	if isSecondary {
		if !a.HasSecondary(coachID) {
			return a, true
		}
		kept := make([]model.SecondaryCoach, 0, len(a.SecondaryCoaches))
		for _, s := range a.SecondaryCoaches {
			if s.CoachID != coachID {
				kept = append(kept, s)
			}
		}
		a.SecondaryCoaches = kept
		h := l.entry(model.ActionSecondaryRemoved, ReasonBackupRemoved, now)
		h.CoachID = coachID
		a.History = append(a.History, h)
	} else {
		if a.PrimaryCoachID() != coachID {
			return a, true
		}
		removed := l.entry(model.ActionPrimaryRemoved, ReasonManualRemoval, now)
		removed.CoachID = coachID
		a.History = append(a.History, removed)

		if next, ok := promoteHead(&a, coachID, now); ok {
			promoted := l.entry(model.ActionPrimaryPromoted, ReasonPromoted, now)
			promoted.CoachID = next
			promoted.FromCoachID = coachID
			promoted.ToCoachID = next
			a.History = append(a.History, promoted)
		} else {
			a.PrimaryCoach = nil
		}
	}
	a.UpdatedAt = now

	l.commit(&a, before)
	return a.Clone(), true
}

// promoteHead moves the highest ranked backup other than skip into the
// primary slot. A backup entry for skip stays where it is.
func promoteHead(a *model.Assignment, skip string, at time.Time) (string, bool) {
	for i, s := range a.SecondaryCoaches {
		if s.CoachID == skip {
			continue
		}
		rest := make([]model.SecondaryCoach, 0, len(a.SecondaryCoaches)-1)
		rest = append(rest, a.SecondaryCoaches[:i]...)
		rest = append(rest, a.SecondaryCoaches[i+1:]...)
		a.SecondaryCoaches = rest
		a.PrimaryCoach = &model.CoachSlot{CoachID: s.CoachID, AssignedAt: at, Status: model.SlotActive}
		return s.CoachID, true
	}
	return "", false
}

// Failover replaces fromCoachID as primary with the first backup.
//
// matched is false when the athlete's primary is no longer fromCoachID, which
// makes a repeated run a no-op. When matched but no backup other than
// fromCoachID exists the record is left untouched, primary included, and
// promoted is empty.
func (l *Ledger) Failover(ctx context.Context, athleteID, fromCoachID, reason string) (a model.Assignment, promoted string, matched bool) {
	unlock := l.athletes.Lock(athleteID)
	defer unlock()

	a, ok := l.load(athleteID)
	if !ok || a.PrimaryCoachID() != fromCoachID {
		return a.Clone(), "", false
	}
	a = a.Clone()
	now := l.now().UTC()
	before := len(a.History)

	promoted, ok = promoteHead(&a, fromCoachID, now)
	if !ok {
		return a, "", true
	}

	removed := l.entry(model.ActionPrimaryRemoved, reason, now)
	removed.CoachID = fromCoachID
	moved := l.entry(model.ActionAutomaticFailover, reason, now)
	moved.CoachID = promoted
	moved.FromCoachID = fromCoachID
	moved.ToCoachID = promoted
	a.History = append(a.History, removed, moved)
	a.UpdatedAt = now

	l.commit(&a, before)
	return a.Clone(), promoted, true
}

// Get returns a copy of the athlete's record.
func (l *Ledger) Get(ctx context.Context, athleteID string) (model.Assignment, bool) {
	a, ok := l.load(athleteID)
	if !ok {
		return model.Assignment{}, false
	}
	return a.Clone(), true
}

// All returns copies of every record ordered by athlete ID.
func (l *Ledger) All(ctx context.Context) []model.Assignment {
	l.mu.RLock()
	out := make([]model.Assignment, 0, len(l.records))
	for _, a := range l.records {
		out = append(out, a.Clone())
	}
	l.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].AthleteID < out[j].AthleteID })
	return out
}

// Load replaces the ledger contents with records read from storage.
func (l *Ledger) Load(ctx context.Context, records []model.Assignment) {
	next := make(map[string]model.Assignment, len(records))
	for _, a := range records {
		if a.AthleteID == "" {
			continue
		}
		a = a.Clone()
		if a.SecondaryCoaches == nil {
			a.SecondaryCoaches = []model.SecondaryCoach{}
		}
		sort.SliceStable(a.SecondaryCoaches, func(i, j int) bool {
			return a.SecondaryCoaches[i].Priority < a.SecondaryCoaches[j].Priority
		})
		next[a.AthleteID] = a
	}
	l.mu.Lock()
	l.records = next
	l.mu.Unlock()
}

// PrimaryOf lists, in ID order, the athletes whose primary is coachID.
func (l *Ledger) PrimaryOf(coachID string) []string {
	l.mu.RLock()
	var ids []string
	for id, a := range l.records {
		if a.PrimaryCoachID() == coachID {
			ids = append(ids, id)
		}
	}
	l.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// PrimaryCount is the derived load of coachID.
func (l *Ledger) PrimaryCount(coachID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for _, a := range l.records {
		if a.PrimaryCoachID() == coachID {
			n++
		}
	}
	return n
}

// SecondaryCount counts the records listing coachID as a backup.
func (l *Ledger) SecondaryCount(coachID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for _, a := range l.records {
		if a.HasSecondary(coachID) {
			n++
		}
	}
	return n
}

// Len returns the number of athletes in the ledger.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
