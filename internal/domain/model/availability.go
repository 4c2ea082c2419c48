package model

import (
	"sort"
	"strings"
	"time"
)

// AvailabilityStatus is a coach's coarse availability.
type AvailabilityStatus string

const (
	StatusAvailable   AvailabilityStatus = "available"
	StatusUnavailable AvailabilityStatus = "unavailable"
)

// Valid reports whether s is a known status.
func (s AvailabilityStatus) Valid() bool {
	return s == StatusAvailable || s == StatusUnavailable
}

// Weekdays lists schedule keys in calendar order.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// DaySchedule describes the open hours for one weekday.
type DaySchedule struct {
	IsOpen bool   `json:"isOpen" yaml:"is_open"`
	Hours  string `json:"hours" yaml:"hours"` // e.g. "09:00-17:00"
}

// Schedule maps lower-case weekday names to open hours.
type Schedule map[string]DaySchedule

// DefaultSchedule is open Monday to Friday, 9 to 5.
func DefaultSchedule() Schedule {
	s := make(Schedule, len(Weekdays))
	for i, day := range Weekdays {
		if i < 5 {
			s[day] = DaySchedule{IsOpen: true, Hours: "09:00-17:00"}
		} else {
			s[day] = DaySchedule{IsOpen: false}
		}
	}
	return s
}

// OpenOn reports whether the schedule is open on the given weekday.
func (s Schedule) OpenOn(day time.Weekday) bool {
	d, ok := s[strings.ToLower(day.String())]
	return ok && d.IsOpen
}

// Availability is the mutable per-coach state tracked by the engine.
//
// CurrentLoad is derived: readers fill it from the assignment ledger and
// writers ignore whatever value it carries.
type Availability struct {
	CoachID          string             `json:"coachId" yaml:"coach_id"`
	Status           AvailabilityStatus `json:"status" yaml:"status"`
	Schedule         Schedule           `json:"schedule" yaml:"schedule"`
	CurrentLoad      int                `json:"currentLoad" yaml:"current_load"`
	MaxCapacity      int                `json:"maxCapacity" yaml:"max_capacity"`
	UnavailableDates []string           `json:"unavailableDates" yaml:"unavailable_dates"` // YYYY-MM-DD, sorted, unique
	LastUpdated      time.Time          `json:"lastUpdated" yaml:"last_updated"`
}

// Clone returns a deep copy.
func (a Availability) Clone() Availability {
	out := a
	if a.Schedule != nil {
		out.Schedule = make(Schedule, len(a.Schedule))
		for k, v := range a.Schedule {
			out.Schedule[k] = v
		}
	}
	out.UnavailableDates = append([]string(nil), a.UnavailableDates...)
	return out
}

// HasCapacity reports whether another primary athlete fits.
func (a Availability) HasCapacity() bool {
	return a.CurrentLoad < a.MaxCapacity
}

// IsUnavailableOn reports whether date (YYYY-MM-DD) is blocked out.
func (a Availability) IsUnavailableOn(date string) bool {
	i := sort.SearchStrings(a.UnavailableDates, date)
	return i < len(a.UnavailableDates) && a.UnavailableDates[i] == date
}

// AvailabilityPatch carries caller-supplied fields to merge into an
// Availability record. Nil fields are left untouched.
type AvailabilityPatch struct {
	Status                 *AvailabilityStatus `json:"status,omitempty"`
	Schedule               Schedule            `json:"schedule,omitempty"`
	MaxCapacity            *int                `json:"maxCapacity,omitempty"`
	UnavailableDates       []string            `json:"unavailableDates,omitempty"`
	AddUnavailableDates    []string            `json:"addUnavailableDates,omitempty"`
	RemoveUnavailableDates []string            `json:"removeUnavailableDates,omitempty"`
}

// NormalizeDates returns dates trimmed, de-duplicated and sorted.
func NormalizeDates(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
