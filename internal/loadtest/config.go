// Package loadtest drives a running assignment service over HTTP: it submits
// coach request decisions concurrently, waits for the workers to apply them
// and verifies the resulting assignments.
package loadtest

import (
	"time"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
)

// Config holds configuration for a load run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Athletes   int           // Number of athletes to generate decisions for
	Duplicates int           // Decisions re-sent with the same ID
	Workers    int           // Number of concurrent submitters
	Timeout    time.Duration // HTTP request timeout
	Settle     time.Duration // How long to wait for decisions to be applied
	Failover   bool          // Fail over the busiest coach after verification
	Prefix     string        // Athlete ID prefix, keeps runs apart
	Verbose    bool          // Log every failed request
}

// Plan is the expected outcome for one athlete.
type Plan struct {
	AthleteID string
	Primary   string
	Backup    string
}

// AckResponse represents the response from decision submission.
type AckResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds run statistics.
type Stats struct {
	DecisionsGenerated int
	Submitted          int
	Accepted           int
	Duplicate          int
	Backpressure       int
	Failed             int
	Verified           int
	Mismatched         int
	FailedOver         int
	Gaps               int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}

// result kinds of one submission.
const (
	resultAccepted     = "accepted"
	resultDuplicate    = "duplicate"
	resultBackpressure = "backpressure"
	resultFailed       = "failed"
)

// Decision is the wire shape of POST /requests/decisions.
type Decision = model.Decision
