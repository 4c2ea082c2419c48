// Package report derives workload and coverage figures. It never writes.
package report

import (
	"context"
	"fmt"
	"math"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
)

// Ledger is the read side of the assignment ledger.
type Ledger interface {
	All(ctx context.Context) []model.Assignment
	PrimaryCount(coachID string) int
	SecondaryCount(coachID string) int
}

// Availability is the read side of the availability tracker.
type Availability interface {
	Get(ctx context.Context, coachID string) (model.Availability, bool)
	All(ctx context.Context) []model.Availability
}

// Directory yields the coach roster.
type Directory interface {
	List(ctx context.Context) []model.Coach
}

// Reporter computes derived statistics on demand.
type Reporter struct {
	ledger       Ledger
	availability Availability
	directory    Directory
}

// New returns a reporter over the three state holders.
func New(l Ledger, a Availability, d Directory) *Reporter {
	return &Reporter{ledger: l, availability: a, directory: d}
}

// Workload returns coachID's load and utilization. Load is always counted
// from the ledger.
func (r *Reporter) Workload(ctx context.Context, coachID string) (model.Workload, error) {
	rec, ok := r.availability.Get(ctx, coachID)
	if !ok {
		return model.Workload{}, fmt.Errorf("%w: %s", ErrUnknownCoach, coachID)
	}
	return r.workload(rec), nil
}

func (r *Reporter) workload(rec model.Availability) model.Workload {
	load := r.ledger.PrimaryCount(rec.CoachID)
	return model.Workload{
		CoachID:              rec.CoachID,
		CurrentLoad:          load,
		MaxCapacity:          rec.MaxCapacity,
		UtilizationRate:      percent(load, rec.MaxCapacity),
		SecondaryAssignments: r.ledger.SecondaryCount(rec.CoachID),
	}
}

// Workloads returns the workload of every tracked coach, ordered by ID.
func (r *Reporter) Workloads(ctx context.Context) []model.Workload {
	recs := r.availability.All(ctx)
	out := make([]model.Workload, 0, len(recs))
	for _, rec := range recs {
		out = append(out, r.workload(rec))
	}
	return out
}

// SystemStats summarises coverage. CoverageRate is 0 for an empty ledger.
func (r *Reporter) SystemStats(ctx context.Context) model.SystemStats {
	var s model.SystemStats
	for _, a := range r.ledger.All(ctx) {
		s.TotalAthletes++
		if a.PrimaryCoach != nil {
			s.AthletesWithPrimary++
		}
		if len(a.SecondaryCoaches) > 0 {
			s.AthletesWithSecondary++
		}
	}
	s.AthletesWithoutPrimary = s.TotalAthletes - s.AthletesWithPrimary
	coaches := r.directory.List(ctx)
	s.TotalCoaches = len(coaches)
	for _, c := range coaches {
		if rec, ok := r.availability.Get(ctx, c.ID); ok && rec.Status == model.StatusAvailable {
			s.AvailableCoaches++
		}
	}
	s.BusyCoaches = s.TotalCoaches - s.AvailableCoaches
	s.CoverageRate = percent(s.AthletesWithPrimary, s.TotalAthletes)
	return s
}

// percent returns part/whole*100 rounded to one decimal, or 0 when whole is 0.
func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}
