package loadtest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"
)

// generateDecisions builds one accepted primary and one accepted secondary
// decision per athlete. Coaches are handed out round robin; the backup is
// the next coach in the list so it never equals the primary.
func generateDecisions(ctx context.Context, config *Config, coachIDs []string, stats *Stats) ([]Decision, []Plan, error) {
	if len(coachIDs) < 2 {
		return nil, nil, fmt.Errorf("need at least two available coaches, have %d", len(coachIDs))
	}
	logger.Get().Info(ctx, "generating decisions",
		logger.Int("athletes", config.Athletes),
		logger.Int("coaches", len(coachIDs)),
	)

	decisions := make([]Decision, 0, config.Athletes*2)
	plans := make([]Plan, config.Athletes)
	for i := 0; i < config.Athletes; i++ {
		athleteID := fmt.Sprintf("%s%06d", config.Prefix, i)
		plan := Plan{
			AthleteID: athleteID,
			Primary:   coachIDs[i%len(coachIDs)],
			Backup:    coachIDs[(i+1)%len(coachIDs)],
		}
		plans[i] = plan

		decisions = append(decisions,
			Decision{
				ID:          uuid.NewString(),
				AthleteID:   athleteID,
				AthleteName: "Athlete " + athleteID,
				CoachID:     plan.Primary,
				Role:        model.RolePrimary,
				Accepted:    true,
			},
			Decision{
				ID:        uuid.NewString(),
				AthleteID: athleteID,
				CoachID:   plan.Backup,
				Role:      model.RoleSecondary,
				Priority:  1,
				Accepted:  true,
			},
		)
	}

	// re-send some IDs; the service must acknowledge them as duplicates
	for i := 0; i < config.Duplicates && i < len(decisions); i++ {
		decisions = append(decisions, decisions[i])
	}

	stats.DecisionsGenerated = len(decisions)
	return decisions, plans, nil
}
