package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/adapters/roster"
	service "github.com/iPranay05/OneAthleteOneNation-sub000/internal/app"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
)

// maxRosterBytes caps roster upload bodies.
const maxRosterBytes = 8 << 20

// RosterDependencies is the engine surface used by roster routes.
type RosterDependencies interface {
	SyncRoster(ctx context.Context, coaches []model.Coach, replace bool) (service.RosterResult, error)
}

// RosterHandler handles roster sync requests.
type RosterHandler struct {
	deps RosterDependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// HandlePutRoster handles PUT /roster with a JSON list of coaches. The list
// replaces the directory unless ?replace=false.
func (h *RosterHandler) HandlePutRoster(c *gin.Context) {
	replace, ok := replaceParam(c, "true")
	if !ok {
		return
	}
	var coaches []model.Coach
	if !bind(c, &coaches) {
		return
	}
	res, err := h.deps.SyncRoster(c.Request.Context(), coaches, replace)
	writeResult(c, http.StatusOK, res, err)
}

// HandlePostCSV handles POST /roster/csv with a text/csv body. Rows are
// merged into the directory unless ?replace=true.
func (h *RosterHandler) HandlePostCSV(c *gin.Context) {
	replace, ok := replaceParam(c, "false")
	if !ok {
		return
	}
	coaches, err := roster.ParseCSV(http.MaxBytesReader(c.Writer, c.Request.Body, maxRosterBytes))
	if err != nil {
		writeError(c, http.StatusBadRequest, codeBadRequest, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	res, err := h.deps.SyncRoster(c.Request.Context(), coaches, replace)
	writeResult(c, http.StatusOK, res, err)
}

func replaceParam(c *gin.Context, def string) (bool, bool) {
	replace, err := strconv.ParseBool(c.DefaultQuery("replace", def))
	if err != nil {
		writeError(c, http.StatusBadRequest, codeBadRequest, fmt.Errorf("%w: replace must be true or false", ErrBadRequest))
		return false, false
	}
	return replace, true
}
