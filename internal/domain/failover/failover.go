// Package failover moves athletes off a coach that became unavailable.
package failover

import (
	"context"
	"strings"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
)

// Reason prefix and gap message written into results and history.
const (
	ReasonPrefix  = "Primary coach "
	GapReason     = "No secondary coaches available"
	DefaultReason = "manually marked unavailable"
)

// Ledger is the slice of the assignment ledger the coordinator drives.
type Ledger interface {
	PrimaryOf(coachID string) []string
	Failover(ctx context.Context, athleteID, fromCoachID, reason string) (model.Assignment, string, bool)
}

// Coordinator promotes backups for every athlete of an unavailable coach.
type Coordinator struct {
	ledger Ledger
}

// New returns a coordinator over l.
func New(l Ledger) *Coordinator {
	return &Coordinator{ledger: l}
}

// Run fails over every athlete whose primary is coachID, in athlete ID order.
// Athletes without a backup keep coachID as primary and get an unsuccessful
// result. changed holds the records that were rewritten and must be saved as
// one batch. Running it again for the same coach is a no-op for athletes
// already moved. A blank reason becomes DefaultReason.
func (c *Coordinator) Run(ctx context.Context, coachID, reason string) (results []model.FailoverResult, changed []model.Assignment) {
	if reason = strings.TrimSpace(reason); reason == "" {
		reason = DefaultReason
	}
	results = []model.FailoverResult{}
	for _, athleteID := range c.ledger.PrimaryOf(coachID) {
		a, promoted, matched := c.ledger.Failover(ctx, athleteID, coachID, ReasonPrefix+reason)
		if !matched {
			// primary moved between the scan and the lock
			continue
		}
		res := model.FailoverResult{AthleteID: a.AthleteID, AthleteName: a.AthleteName}
		if promoted == "" {
			res.ErrorReason = GapReason
		} else {
			res.Success = true
			res.NewPrimaryCoachID = promoted
			changed = append(changed, a)
		}
		results = append(results, res)
	}
	return results, changed
}
