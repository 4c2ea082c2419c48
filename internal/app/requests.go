package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/adapters/mq/queue"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/metrics"
)

// SubmitDecision queues a coach's answer to a coaching request. Workers
// apply accepted decisions through AssignPrimaryCoach or AddSecondaryCoach.
// duplicate is true when the decision ID was already submitted. A decision
// without an ID gets a fresh one and is never treated as a duplicate.
func (e *Engine) SubmitDecision(ctx context.Context, d model.Decision) (id string, duplicate bool, err error) {
	if err := requireIDs("athleteId", d.AthleteID, "coachId", d.CoachID); err != nil {
		return "", false, err
	}
	if d.Role != model.RolePrimary && d.Role != model.RoleSecondary {
		return "", false, fmt.Errorf("%w: role must be %q or %q", ErrInvalidInput, model.RolePrimary, model.RoleSecondary)
	}
	if d.Role == model.RoleSecondary && d.Priority == 0 {
		d.Priority = 1
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	if e.deduper.SeenAndRecord(ctx, d.ID) {
		metrics.RecordDecisionDuplicate()
		e.logger.Debug(ctx, "duplicate decision", logger.String("decisionID", d.ID))
		return d.ID, true, nil
	}
	if err := e.queue.Enqueue(ctx, d); err != nil {
		e.deduper.Unrecord(ctx, d.ID)
		if errors.Is(err, queue.ErrFull) || errors.Is(err, queue.ErrClosed) {
			return d.ID, false, fmt.Errorf("%w: %w", ErrBackpressure, err)
		}
		return d.ID, false, err
	}
	return d.ID, false, nil
}

// PendingDecisions returns how many decisions wait to be applied.
func (e *Engine) PendingDecisions() int {
	return e.queue.Len()
}
