package model

// FailoverResult is the outcome of failover for one athlete. It is not persisted.
type FailoverResult struct {
	AthleteID         string `json:"athleteId"`
	AthleteName       string `json:"athleteName"`
	NewPrimaryCoachID string `json:"newPrimaryCoachId,omitempty"` // empty when no backup was promoted
	Success           bool   `json:"success"`
	ErrorReason       string `json:"errorReason,omitempty"`
}

// Workload is a coach's derived utilization.
type Workload struct {
	CoachID              string  `json:"coachId"`
	CurrentLoad          int     `json:"currentLoad"`
	MaxCapacity          int     `json:"maxCapacity"`
	UtilizationRate      float64 `json:"utilizationRate"` // percent, one decimal
	SecondaryAssignments int     `json:"secondaryAssignments"`
}

// SystemStats summarises coverage across the ledger and directory.
type SystemStats struct {
	TotalAthletes          int     `json:"totalAthletes"`
	AthletesWithPrimary    int     `json:"athletesWithPrimary"`
	AthletesWithSecondary  int     `json:"athletesWithSecondary"`
	AthletesWithoutPrimary int     `json:"athletesWithoutPrimary"`
	TotalCoaches           int     `json:"totalCoaches"`
	AvailableCoaches       int     `json:"availableCoaches"`
	BusyCoaches            int     `json:"busyCoaches"`
	CoverageRate           float64 `json:"coverageRate"` // percent, one decimal
}
