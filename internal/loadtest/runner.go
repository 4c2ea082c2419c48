package loadtest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"
)

// percentageMultiplier turns ratios into percentages.
const percentageMultiplier = 100

// Run executes the complete load run and returns its statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("loadtest")

	log.Info(ctx, "starting decision load run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("athletes", config.Athletes),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Bool("failover", config.Failover),
	)

	client := newHTTPClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate decisions over the available coaches
	coachIDs, err := client.availableCoaches(ctx)
	if err != nil {
		return stats, fmt.Errorf("coach lookup failed: %w", err)
	}
	decisions, plans, err := generateDecisions(ctx, config, coachIDs, stats)
	if err != nil {
		return stats, fmt.Errorf("decision generation failed: %w", err)
	}

	// Step 3: Submit decisions concurrently
	submitDecisions(ctx, config, client, decisions, stats)

	// Step 4: Wait for the workers and verify
	log.Info(ctx, "waiting for decisions to be applied", logger.Duration("settle", config.Settle))
	got, err := waitForAssignments(ctx, config, client, plans)
	if err != nil {
		return stats, fmt.Errorf("assignment retrieval failed: %w", err)
	}
	if err := verifyAssignments(ctx, config, plans, got, stats); err != nil {
		return stats, fmt.Errorf("assignment verification failed: %w", err)
	}

	// Step 5: Optional failover round
	if config.Failover {
		if err := verifyFailover(ctx, client, plans, stats); err != nil {
			return stats, fmt.Errorf("failover verification failed: %w", err)
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	status, err := client.do(ctx, http.MethodGet, "/healthz", nil, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if status != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", status)
	}
	return nil
}

// displayFinalStats logs the final statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var acceptRate, perSecond float64
	if stats.Submitted > 0 {
		acceptRate = float64(stats.Accepted) / float64(stats.Submitted) * percentageMultiplier
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("generated", stats.DecisionsGenerated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("backpressure", stats.Backpressure),
		logger.Int("failed", stats.Failed),
		logger.Int("verified", stats.Verified),
		logger.Int("failedOver", stats.FailedOver),
		logger.Duration("duration", stats.Duration),
		logger.Float64("acceptRate", acceptRate),
		logger.Float64("decisionsPerSecond", perSecond),
	)
}
