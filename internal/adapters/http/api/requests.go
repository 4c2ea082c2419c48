package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
)

// DecisionDependencies defines the interface for request decision intake.
type DecisionDependencies interface {
	SubmitDecision(ctx context.Context, d model.Decision) (id string, duplicate bool, err error)
}

// DecisionsHandler handles coach request decisions.
type DecisionsHandler struct {
	deps DecisionDependencies
}

// NewDecisionsHandler creates a new decisions handler.
func NewDecisionsHandler(deps DecisionDependencies) *DecisionsHandler {
	return &DecisionsHandler{deps: deps}
}

type ackResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// HandlePostDecision handles POST /requests/decisions. Accepted decisions
// are applied asynchronously; a repeated ID is acknowledged without
// being queued again.
func (h *DecisionsHandler) HandlePostDecision(c *gin.Context) {
	var req model.Decision
	if !bind(c, &req) {
		return
	}

	id, duplicate, err := h.deps.SubmitDecision(c.Request.Context(), req)
	if err != nil {
		writeResult(c, http.StatusAccepted, nil, err)
		return
	}
	if duplicate {
		c.JSON(http.StatusOK, ackResponse{ID: id, Status: "duplicate", Duplicate: true})
		return
	}
	c.JSON(http.StatusAccepted, ackResponse{ID: id, Status: "accepted"})
}
