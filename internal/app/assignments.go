package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/metrics"
)

func requireIDs(fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if strings.TrimSpace(fields[i+1]) == "" {
			return fmt.Errorf("%w: missing %s", ErrInvalidInput, fields[i])
		}
	}
	return nil
}

// AssignPrimaryCoach sets or replaces the athlete's primary coach, creating
// the record if needed. Capacity and availability are not checked here: an
// admin may deliberately overload or pick an unavailable coach. Only
// AvailableCoaches filters candidates.
func (e *Engine) AssignPrimaryCoach(ctx context.Context, athleteID, athleteName, coachID string) (*model.Assignment, error) {
	const op = "assign_primary"
	if err := requireIDs("athleteId", athleteID, "coachId", coachID); err != nil {
		metrics.RecordOperation(op, "invalid")
		return nil, err
	}

	a := e.ledger.AssignPrimary(ctx, athleteID, athleteName, coachID)
	e.logger.Info(ctx, "primary coach assigned",
		logger.String("athleteID", athleteID),
		logger.String("coachID", coachID),
	)

	err := e.persist(ctx, op, model.StatePatch{Assignments: []model.Assignment{a}})
	e.finish(ctx, op, err)
	return &a, err
}

// AddSecondaryCoach inserts or re-ranks a backup. It returns nil, nil when
// the athlete has no record yet.
func (e *Engine) AddSecondaryCoach(ctx context.Context, athleteID, coachID string, priority int) (*model.Assignment, error) {
	const op = "add_secondary"
	if err := requireIDs("athleteId", athleteID, "coachId", coachID); err != nil {
		metrics.RecordOperation(op, "invalid")
		return nil, err
	}

	a, ok := e.ledger.AddSecondary(ctx, athleteID, coachID, priority)
	if !ok {
		metrics.RecordOperation(op, "not_found")
		e.logger.Debug(ctx, "backup not added, athlete unknown", logger.String("athleteID", athleteID))
		return nil, nil
	}
	e.logger.Info(ctx, "secondary coach added",
		logger.String("athleteID", athleteID),
		logger.String("coachID", coachID),
		logger.Int("priority", priority),
	)

	err := e.persist(ctx, op, model.StatePatch{Assignments: []model.Assignment{a}})
	e.finish(ctx, op, err)
	return &a, err
}

// RemoveCoach removes a backup, or the primary when isSecondary is false, in
// which case the first backup is promoted. It returns nil, nil when the
// athlete has no record.
func (e *Engine) RemoveCoach(ctx context.Context, athleteID, coachID string, isSecondary bool) (*model.Assignment, error) {
	const op = "remove_coach"
	if err := requireIDs("athleteId", athleteID, "coachId", coachID); err != nil {
		metrics.RecordOperation(op, "invalid")
		return nil, err
	}

	a, ok := e.ledger.RemoveCoach(ctx, athleteID, coachID, isSecondary)
	if !ok {
		metrics.RecordOperation(op, "not_found")
		e.logger.Debug(ctx, "coach not removed, athlete unknown", logger.String("athleteID", athleteID))
		return nil, nil
	}
	e.logger.Info(ctx, "coach removed",
		logger.String("athleteID", athleteID),
		logger.String("coachID", coachID),
		logger.Bool("secondary", isSecondary),
		logger.String("primary", a.PrimaryCoachID()),
	)

	err := e.persist(ctx, op, model.StatePatch{Assignments: []model.Assignment{a}})
	e.finish(ctx, op, err)
	return &a, err
}

// RegisterAthlete creates a record awaiting assignment. Existing records are
// returned unchanged.
func (e *Engine) RegisterAthlete(ctx context.Context, athleteID, athleteName string) (*model.Assignment, error) {
	const op = "register_athlete"
	if err := requireIDs("athleteId", athleteID); err != nil {
		metrics.RecordOperation(op, "invalid")
		return nil, err
	}

	a, created := e.ledger.EnsureAthlete(ctx, athleteID, athleteName)
	if !created {
		metrics.RecordOperation(op, "exists")
		return &a, nil
	}
	e.logger.Info(ctx, "athlete registered", logger.String("athleteID", athleteID))

	err := e.persist(ctx, op, model.StatePatch{Assignments: []model.Assignment{a}})
	e.finish(ctx, op, err)
	return &a, err
}

// Assignment returns the athlete's record.
func (e *Engine) Assignment(ctx context.Context, athleteID string) (model.Assignment, error) {
	a, ok := e.ledger.Get(ctx, athleteID)
	if !ok {
		return model.Assignment{}, fmt.Errorf("%w: athlete %s", ErrNotFound, athleteID)
	}
	return a, nil
}

// Assignments returns every record ordered by athlete ID.
func (e *Engine) Assignments(ctx context.Context) []model.Assignment {
	return e.ledger.All(ctx)
}
