package model

// Role selects which slot an accepted coaching request fills.
type Role string

const (
	RolePrimary   Role = "primary"
	RoleSecondary Role = "secondary"
)

// Decision is a coach's answer to an athlete's coaching request, produced by
// the request workflow and applied to the ledger asynchronously.
type Decision struct {
	ID          string `json:"id"`
	AthleteID   string `json:"athleteId"`
	AthleteName string `json:"athleteName"`
	CoachID     string `json:"coachId"`
	Role        Role   `json:"role"`
	Priority    int    `json:"priority"`
	Accepted    bool   `json:"accepted"`
}
