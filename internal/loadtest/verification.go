package loadtest

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"
)

// pollInterval spaces the checks while waiting for decisions to land.
const pollInterval = 250 * time.Millisecond

// fetchAssignments returns the service's records for this run's athletes.
func fetchAssignments(ctx context.Context, client *HTTPClient, plans []Plan) (map[string]model.Assignment, error) {
	var all []model.Assignment
	status, err := client.do(ctx, http.MethodGet, "/athletes", nil, &all)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list athletes: status %d", status)
	}
	want := make(map[string]struct{}, len(plans))
	for _, p := range plans {
		want[p.AthleteID] = struct{}{}
	}
	out := make(map[string]model.Assignment, len(plans))
	for _, a := range all {
		if _, ok := want[a.AthleteID]; ok {
			out[a.AthleteID] = a
		}
	}
	return out, nil
}

// matches reports whether a holds the planned primary and backup.
func matches(a model.Assignment, p Plan) bool {
	return a.PrimaryCoachID() == p.Primary && a.HasSecondary(p.Backup)
}

// waitForAssignments polls until every plan is visible or settle elapses.
func waitForAssignments(ctx context.Context, config *Config, client *HTTPClient, plans []Plan) (map[string]model.Assignment, error) {
	deadline := time.Now().Add(config.Settle)
	for {
		got, err := fetchAssignments(ctx, client, plans)
		if err != nil {
			return nil, err
		}
		done := 0
		for _, p := range plans {
			if a, ok := got[p.AthleteID]; ok && matches(a, p) {
				done++
			}
		}
		if done == len(plans) || time.Now().After(deadline) {
			return got, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// verifyAssignments counts plans the service applied exactly.
func verifyAssignments(ctx context.Context, config *Config, plans []Plan, got map[string]model.Assignment, stats *Stats) error {
	log := logger.Get().Named("verify")
	for _, p := range plans {
		a, ok := got[p.AthleteID]
		if ok && matches(a, p) {
			stats.Verified++
			continue
		}
		stats.Mismatched++
		if config.Verbose {
			log.Warn(ctx, "assignment mismatch",
				logger.String("athleteID", p.AthleteID),
				logger.String("wantPrimary", p.Primary),
				logger.String("gotPrimary", a.PrimaryCoachID()),
			)
		}
	}
	log.Info(ctx, "assignment verification completed",
		logger.Int("verified", stats.Verified),
		logger.Int("mismatched", stats.Mismatched),
	)
	if stats.Mismatched > 0 {
		return fmt.Errorf("%d of %d athletes do not match their decisions", stats.Mismatched, len(plans))
	}
	return nil
}

// busiestCoach picks the coach holding the most planned primaries.
func busiestCoach(plans []Plan) string {
	counts := make(map[string]int)
	for _, p := range plans {
		counts[p.Primary]++
	}
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// verifyFailover fails over the busiest coach and checks that each of its
// athletes in this run moved to the planned backup.
func verifyFailover(ctx context.Context, client *HTTPClient, plans []Plan, stats *Stats) error {
	coachID := busiestCoach(plans)
	var results []model.FailoverResult
	status, err := client.do(ctx, http.MethodPost, "/coaches/"+coachID+"/failover", map[string]string{"reason": "load test"}, &results)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("failover %s: status %d", coachID, status)
	}

	backups := make(map[string]string, len(plans))
	for _, p := range plans {
		if p.Primary == coachID {
			backups[p.AthleteID] = p.Backup
		}
	}
	for _, r := range results {
		want, ours := backups[r.AthleteID]
		if !ours {
			continue
		}
		if !r.Success {
			stats.Gaps++
			continue
		}
		if r.NewPrimaryCoachID != want {
			return fmt.Errorf("athlete %s moved to %s, want %s", r.AthleteID, r.NewPrimaryCoachID, want)
		}
		stats.FailedOver++
	}
	logger.Get().Info(ctx, "failover verification completed",
		logger.String("coachID", coachID),
		logger.Int("moved", stats.FailedOver),
		logger.Int("gaps", stats.Gaps),
	)
	if stats.FailedOver+stats.Gaps != len(backups) {
		return fmt.Errorf("failover covered %d of %d athletes", stats.FailedOver+stats.Gaps, len(backups))
	}
	return nil
}
