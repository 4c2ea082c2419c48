package model

import "time"

// Slot statuses.
const (
	SlotActive  = "active"
	SlotStandby = "standby"
)

// Action names a kind of assignment history entry.
type Action string

const (
	ActionPrimaryAssigned   Action = "primary_assigned"
	ActionSecondaryAdded    Action = "secondary_added"
	ActionSecondaryRemoved  Action = "secondary_removed"
	ActionPrimaryRemoved    Action = "primary_removed"
	ActionPrimaryPromoted   Action = "primary_promoted"
	ActionAutomaticFailover Action = "automatic_failover"
)

// CoachSlot is the primary coach of an athlete.
type CoachSlot struct {
	CoachID    string    `json:"coachId" yaml:"coach_id"`
	AssignedAt time.Time `json:"assignedAt" yaml:"assigned_at"`
	Status     string    `json:"status" yaml:"status"`
}

// SecondaryCoach is a ranked backup. Lower Priority wins.
type SecondaryCoach struct {
	CoachID    string    `json:"coachId" yaml:"coach_id"`
	AssignedAt time.Time `json:"assignedAt" yaml:"assigned_at"`
	Status     string    `json:"status" yaml:"status"`
	Priority   int       `json:"priority" yaml:"priority"`
}

// HistoryEntry records one state transition of an Assignment.
type HistoryEntry struct {
	ID          string    `json:"id" yaml:"id"`
	Action      Action    `json:"action" yaml:"action"`
	CoachID     string    `json:"coachId,omitempty" yaml:"coach_id,omitempty"`
	FromCoachID string    `json:"fromCoachId,omitempty" yaml:"from_coach_id,omitempty"`
	ToCoachID   string    `json:"toCoachId,omitempty" yaml:"to_coach_id,omitempty"`
	Priority    *int      `json:"priority,omitempty" yaml:"priority,omitempty"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
	Reason      string    `json:"reason" yaml:"reason"`
}

// Assignment is the per-athlete ledger record.
//
// A nil PrimaryCoach means the athlete is awaiting assignment.
// SecondaryCoaches is unique by CoachID and sorted by Priority ascending.
// History is append-only. Version grows by one on every ledger write; stores
// keep the highest version they have seen.
type Assignment struct {
	AthleteID        string           `json:"athleteId" yaml:"athlete_id"`
	AthleteName      string           `json:"athleteName" yaml:"athlete_name"`
	PrimaryCoach     *CoachSlot       `json:"primaryCoach" yaml:"primary_coach"`
	SecondaryCoaches []SecondaryCoach `json:"secondaryCoaches" yaml:"secondary_coaches"`
	History          []HistoryEntry   `json:"history" yaml:"history"`
	UpdatedAt        time.Time        `json:"updatedAt" yaml:"updated_at"`
	Version          int64            `json:"version" yaml:"version"`
}

// Clone returns a deep copy so callers never alias ledger state.
func (a Assignment) Clone() Assignment {
	out := a
	if a.PrimaryCoach != nil {
		p := *a.PrimaryCoach
		out.PrimaryCoach = &p
	}
	out.SecondaryCoaches = append([]SecondaryCoach(nil), a.SecondaryCoaches...)
	if a.SecondaryCoaches != nil && out.SecondaryCoaches == nil {
		out.SecondaryCoaches = []SecondaryCoach{}
	}
	out.History = make([]HistoryEntry, len(a.History))
	for i, h := range a.History {
		if h.Priority != nil {
			p := *h.Priority
			h.Priority = &p
		}
		out.History[i] = h
	}
	return out
}

// Supersedes reports whether a may overwrite stored. An equal version is a
// replay of the same write.
func (a Assignment) Supersedes(stored Assignment) bool {
	return a.Version >= stored.Version
}

// PrimaryCoachID returns the primary coach id or "".
func (a Assignment) PrimaryCoachID() string {
	if a.PrimaryCoach == nil {
		return ""
	}
	return a.PrimaryCoach.CoachID
}

// HasSecondary reports whether coachID is among the backups.
func (a Assignment) HasSecondary(coachID string) bool {
	for _, s := range a.SecondaryCoaches {
		if s.CoachID == coachID {
			return true
		}
	}
	return false
}
