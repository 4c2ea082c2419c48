package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
)

// AthleteDependencies is the engine surface used by athlete routes.
type AthleteDependencies interface {
	Assignments(ctx context.Context) []model.Assignment
	Assignment(ctx context.Context, athleteID string) (model.Assignment, error)
	RegisterAthlete(ctx context.Context, athleteID, athleteName string) (*model.Assignment, error)
	AssignPrimaryCoach(ctx context.Context, athleteID, athleteName, coachID string) (*model.Assignment, error)
	AddSecondaryCoach(ctx context.Context, athleteID, coachID string, priority int) (*model.Assignment, error)
	RemoveCoach(ctx context.Context, athleteID, coachID string, isSecondary bool) (*model.Assignment, error)
}

// AthletesHandler handles assignment ledger requests.
type AthletesHandler struct {
	deps AthleteDependencies
}

// NewAthletesHandler creates a new athletes handler.
func NewAthletesHandler(deps AthleteDependencies) *AthletesHandler {
	return &AthletesHandler{deps: deps}
}

type registerRequest struct {
	AthleteID   string `json:"athleteId" binding:"required"`
	AthleteName string `json:"athleteName"`
}

type primaryRequest struct {
	CoachID     string `json:"coachId" binding:"required"`
	AthleteName string `json:"athleteName"`
}

type secondaryRequest struct {
	CoachID  string `json:"coachId" binding:"required"`
	Priority int    `json:"priority"`
}

// HandleList handles GET /athletes.
func (h *AthletesHandler) HandleList(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.Assignments(c.Request.Context()))
}

// HandleGet handles GET /athletes/:id.
func (h *AthletesHandler) HandleGet(c *gin.Context) {
	a, err := h.deps.Assignment(c.Request.Context(), c.Param("id"))
	writeResult(c, http.StatusOK, a, err)
}

// HandleRegister handles POST /athletes.
func (h *AthletesHandler) HandleRegister(c *gin.Context) {
	var req registerRequest
	if !bind(c, &req) {
		return
	}
	a, err := h.deps.RegisterAthlete(c.Request.Context(), req.AthleteID, req.AthleteName)
	writeResult(c, http.StatusCreated, a, err)
}

// HandleAssignPrimary handles PUT /athletes/:id/primary.
func (h *AthletesHandler) HandleAssignPrimary(c *gin.Context) {
	var req primaryRequest
	if !bind(c, &req) {
		return
	}
	a, err := h.deps.AssignPrimaryCoach(c.Request.Context(), c.Param("id"), req.AthleteName, req.CoachID)
	writeResult(c, http.StatusOK, a, err)
}

// HandleAddSecondary handles POST /athletes/:id/secondary. Priority
// defaults to 1.
func (h *AthletesHandler) HandleAddSecondary(c *gin.Context) {
	var req secondaryRequest
	if !bind(c, &req) {
		return
	}
	if req.Priority == 0 {
		req.Priority = 1
	}
	a, err := h.deps.AddSecondaryCoach(c.Request.Context(), c.Param("id"), req.CoachID, req.Priority)
	writeAssignment(c, a, err, c.Param("id"))
}

// HandleRemoveCoach handles DELETE /athletes/:id/coaches/:coachId?secondary=true|false.
// The slot must be named; there is no default.
func (h *AthletesHandler) HandleRemoveCoach(c *gin.Context) {
	raw, given := c.GetQuery("secondary")
	if !given {
		writeError(c, http.StatusBadRequest, codeBadRequest, fmt.Errorf("%w: secondary query parameter is required", ErrBadRequest))
		return
	}
	secondary, err := strconv.ParseBool(raw)
	if err != nil {
		writeError(c, http.StatusBadRequest, codeBadRequest, fmt.Errorf("%w: secondary must be true or false", ErrBadRequest))
		return
	}
	a, err := h.deps.RemoveCoach(c.Request.Context(), c.Param("id"), c.Param("coachId"), secondary)
	writeAssignment(c, a, err, c.Param("id"))
}

// writeAssignment turns the engine's nil, nil for an unknown athlete into 404.
func writeAssignment(c *gin.Context, a *model.Assignment, err error, athleteID string) {
	if a == nil && err == nil {
		writeError(c, http.StatusNotFound, codeNotFound, fmt.Errorf("%w: %s", ErrAthleteNotFound, athleteID))
		return
	}
	writeResult(c, http.StatusOK, a, err)
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, http.StatusBadRequest, codeBadRequest, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return false
	}
	return true
}
