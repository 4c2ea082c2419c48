package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/availability"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/report"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/metrics"
)

// RosterResult summarises a roster sync.
type RosterResult struct {
	Coaches         int  `json:"coaches"`
	NewAvailability int  `json:"newAvailability"`
	Replaced        bool `json:"replaced"`
}

// UpdateAvailability merges patch into the coach's availability. It never
// triggers failover; use SetCoachUnavailable for the toggle flow.
func (e *Engine) UpdateAvailability(ctx context.Context, coachID string, patch model.AvailabilityPatch) (*model.Availability, error) {
	const op = "update_availability"
	rec, err := e.tracker.Update(ctx, coachID, patch)
	if err != nil {
		metrics.RecordOperation(op, "invalid")
		if errors.Is(err, availability.ErrInvalidPatch) || errors.Is(err, availability.ErrEmptyCoachID) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return nil, err
	}
	e.logger.Info(ctx, "availability updated",
		logger.String("coachID", coachID),
		logger.String("status", string(rec.Status)),
		logger.Int("maxCapacity", rec.MaxCapacity),
	)

	err = e.persist(ctx, op, model.StatePatch{Availability: []model.Availability{rec}})
	e.finish(ctx, op, err)
	return &rec, err
}

// SetCoachUnavailable marks the coach unavailable and fails over their
// athletes. Persistence errors of both steps are joined.
func (e *Engine) SetCoachUnavailable(ctx context.Context, coachID, reason string) (*model.Availability, []model.FailoverResult, error) {
	status := model.StatusUnavailable
	rec, errAvail := e.UpdateAvailability(ctx, coachID, model.AvailabilityPatch{Status: &status})
	if rec == nil {
		return nil, nil, errAvail
	}
	results, errFail := e.HandleCoachUnavailable(ctx, coachID, reason)
	return rec, results, errors.Join(errAvail, errFail)
}

// HandleCoachUnavailable promotes backups for every athlete whose primary is
// coachID and saves the rewritten records as one batch. Athletes without a
// backup are reported, not treated as an error.
func (e *Engine) HandleCoachUnavailable(ctx context.Context, coachID, reason string) ([]model.FailoverResult, error) {
	const op = "failover"
	if err := requireIDs("coachId", coachID); err != nil {
		metrics.RecordOperation(op, "invalid")
		return nil, err
	}

	results, changed := e.failover.Run(ctx, coachID, reason)
	metrics.RecordFailoverRun()
	var moved, gaps int
	for _, r := range results {
		metrics.RecordFailoverResult(r.Success)
		if r.Success {
			moved++
			continue
		}
		gaps++
		e.logger.Warn(ctx, "athlete left without an active coach",
			logger.String("athleteID", r.AthleteID),
			logger.String("coachID", coachID),
			logger.String("reason", r.ErrorReason),
		)
	}
	e.logger.Info(ctx, "failover finished",
		logger.String("coachID", coachID),
		logger.Int("reassigned", moved),
		logger.Int("gaps", gaps),
	)

	var err error
	if len(changed) > 0 {
		err = e.persist(ctx, op, model.StatePatch{Assignments: changed})
	}
	e.finish(ctx, op, err)
	return results, err
}

// SyncRoster loads coach reference data. With replace the roster becomes
// exactly coaches; otherwise coaches are upserted. Every coach gets an
// availability record if it has none.
func (e *Engine) SyncRoster(ctx context.Context, coaches []model.Coach, replace bool) (RosterResult, error) {
	const op = "sync_roster"
	for i, c := range coaches {
		if c.ID == "" {
			metrics.RecordOperation(op, "invalid")
			return RosterResult{}, fmt.Errorf("%w: coach %d has no id", ErrInvalidInput, i)
		}
	}

	if replace {
		e.directory.Replace(ctx, coaches)
	} else {
		e.directory.Merge(ctx, coaches)
	}
	var created []model.Availability
	for _, c := range coaches {
		if rec, ok := e.tracker.Ensure(ctx, c.ID); ok {
			created = append(created, rec)
		}
	}
	res := RosterResult{Coaches: len(coaches), NewAvailability: len(created), Replaced: replace}
	e.logger.Info(ctx, "roster synced",
		logger.Int("coaches", res.Coaches),
		logger.Int("newAvailability", res.NewAvailability),
		logger.Bool("replace", replace),
	)

	patch := model.StatePatch{Coaches: coaches, ReplaceCoaches: replace}
	if patch.Coaches == nil {
		patch.Coaches = []model.Coach{}
	}
	if len(created) > 0 {
		patch.Availability = created
	}
	err := e.persist(ctx, op, patch)
	e.finish(ctx, op, err)
	return res, err
}

// AvailableCoaches lists assignable coaches, best rated first. The list is
// advisory; nothing reserves the capacity it shows.
func (e *Engine) AvailableCoaches(ctx context.Context, excludeIDs []string) []model.Coach {
	return e.tracker.Available(ctx, excludeIDs)
}

// Coach returns one directory entry.
func (e *Engine) Coach(ctx context.Context, coachID string) (model.Coach, error) {
	c, ok := e.directory.Get(ctx, coachID)
	if !ok {
		return model.Coach{}, fmt.Errorf("%w: coach %s", ErrNotFound, coachID)
	}
	return c, nil
}

// Coaches returns the directory ordered by ID.
func (e *Engine) Coaches(ctx context.Context) []model.Coach {
	return e.directory.List(ctx)
}

// Availability returns the coach's availability with a derived CurrentLoad.
func (e *Engine) Availability(ctx context.Context, coachID string) (model.Availability, error) {
	rec, ok := e.tracker.Get(ctx, coachID)
	if !ok {
		return model.Availability{}, fmt.Errorf("%w: availability for %s", ErrNotFound, coachID)
	}
	return rec, nil
}

// CoachWorkload returns the coach's derived load and utilization.
func (e *Engine) CoachWorkload(ctx context.Context, coachID string) (model.Workload, error) {
	w, err := e.reporter.Workload(ctx, coachID)
	if errors.Is(err, report.ErrUnknownCoach) {
		return model.Workload{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return w, err
}

// Workloads returns every tracked coach's workload.
func (e *Engine) Workloads(ctx context.Context) []model.Workload {
	return e.reporter.Workloads(ctx)
}

// SystemStats returns coverage figures for the whole system.
func (e *Engine) SystemStats(ctx context.Context) model.SystemStats {
	return e.reporter.SystemStats(ctx)
}
