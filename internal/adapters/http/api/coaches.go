package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
)

// CoachDependencies is the engine surface used by coach routes.
type CoachDependencies interface {
	Coaches(ctx context.Context) []model.Coach
	Coach(ctx context.Context, coachID string) (model.Coach, error)
	AvailableCoaches(ctx context.Context, excludeIDs []string) []model.Coach
	Availability(ctx context.Context, coachID string) (model.Availability, error)
	CoachWorkload(ctx context.Context, coachID string) (model.Workload, error)
	Workloads(ctx context.Context) []model.Workload
	UpdateAvailability(ctx context.Context, coachID string, patch model.AvailabilityPatch) (*model.Availability, error)
	SetCoachUnavailable(ctx context.Context, coachID, reason string) (*model.Availability, []model.FailoverResult, error)
	HandleCoachUnavailable(ctx context.Context, coachID, reason string) ([]model.FailoverResult, error)
}

// CoachesHandler handles coach directory and availability requests.
type CoachesHandler struct {
	deps CoachDependencies
}

// NewCoachesHandler creates a new coaches handler.
func NewCoachesHandler(deps CoachDependencies) *CoachesHandler {
	return &CoachesHandler{deps: deps}
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

type unavailableResponse struct {
	Availability *model.Availability   `json:"availability"`
	Results      []model.FailoverResult `json:"results"`
}

// HandleList handles GET /coaches.
func (h *CoachesHandler) HandleList(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.Coaches(c.Request.Context()))
}

// HandleAvailable handles GET /coaches/available?exclude=a,b.
func (h *CoachesHandler) HandleAvailable(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.AvailableCoaches(c.Request.Context(), splitParam(c.Query("exclude"))))
}

// HandleWorkloads handles GET /coaches/workloads.
func (h *CoachesHandler) HandleWorkloads(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.Workloads(c.Request.Context()))
}

// HandleGet handles GET /coaches/:id.
func (h *CoachesHandler) HandleGet(c *gin.Context) {
	coach, err := h.deps.Coach(c.Request.Context(), c.Param("id"))
	writeResult(c, http.StatusOK, coach, err)
}

// HandleWorkload handles GET /coaches/:id/workload.
func (h *CoachesHandler) HandleWorkload(c *gin.Context) {
	w, err := h.deps.CoachWorkload(c.Request.Context(), c.Param("id"))
	writeResult(c, http.StatusOK, w, err)
}

// HandleGetAvailability handles GET /coaches/:id/availability.
func (h *CoachesHandler) HandleGetAvailability(c *gin.Context) {
	rec, err := h.deps.Availability(c.Request.Context(), c.Param("id"))
	writeResult(c, http.StatusOK, rec, err)
}

// HandlePatchAvailability handles PATCH /coaches/:id/availability. It never
// triggers failover.
func (h *CoachesHandler) HandlePatchAvailability(c *gin.Context) {
	var patch model.AvailabilityPatch
	if !bind(c, &patch) {
		return
	}
	rec, err := h.deps.UpdateAvailability(c.Request.Context(), c.Param("id"), patch)
	writeResult(c, http.StatusOK, rec, err)
}

// HandleSetUnavailable handles POST /coaches/:id/unavailable: the status
// toggle followed by failover of the coach's athletes.
func (h *CoachesHandler) HandleSetUnavailable(c *gin.Context) {
	req, ok := bindReason(c)
	if !ok {
		return
	}
	rec, results, err := h.deps.SetCoachUnavailable(c.Request.Context(), c.Param("id"), req.Reason)
	if rec == nil && err != nil {
		writeResult(c, http.StatusOK, nil, err)
		return
	}
	writeResult(c, http.StatusOK, unavailableResponse{Availability: rec, Results: results}, err)
}

// HandleFailover handles POST /coaches/:id/failover without touching status.
func (h *CoachesHandler) HandleFailover(c *gin.Context) {
	req, ok := bindReason(c)
	if !ok {
		return
	}
	results, err := h.deps.HandleCoachUnavailable(c.Request.Context(), c.Param("id"), req.Reason)
	writeResult(c, http.StatusOK, results, err)
}

// bindReason accepts an empty body as an empty reason.
func bindReason(c *gin.Context) (reasonRequest, bool) {
	var req reasonRequest
	if c.Request.ContentLength == 0 {
		return req, true
	}
	ok := bind(c, &req)
	return req, ok
}
