// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/adapters/http/swagger"
	service "github.com/iPranay05/OneAthleteOneNation-sub000/internal/app"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"
)

// Dependencies required by HTTP handlers. *service.Engine satisfies it.
type Dependencies interface {
	CoachDependencies
	AthleteDependencies
	RosterDependencies
	DecisionDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	coachesHandler   *CoachesHandler
	athletesHandler  *AthletesHandler
	rosterHandler    *RosterHandler
	decisionsHandler *DecisionsHandler

	corsOrigins []string
	pprof       bool
	logger      logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(deps),
		coachesHandler:   NewCoachesHandler(deps),
		athletesHandler:  NewAthletesHandler(deps),
		rosterHandler:    NewRosterHandler(deps),
		decisionsHandler: NewDecisionsHandler(deps),
		corsOrigins:      []string{"*"},
		logger:           logger.Get().Named("http"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds a gin engine with middleware and every route attached.
func (s *Server) Router(ctx context.Context) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.corsMiddleware())
	s.Register(ctx, r)
	if s.pprof {
		pprof.Register(r)
		s.logger.Info(ctx, "pprof routes enabled", logger.String("prefix", pprof.DefaultPrefix))
	}
	r.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, codeNotFound, fmt.Errorf("no route for %s %s", c.Request.Method, c.Request.URL.Path))
	})
	return r
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(ctx context.Context, r gin.IRouter) {
	m := MetricsMiddleware

	r.GET("/healthz", m("healthz"), s.healthHandler.HandleHealth)
	r.GET("/stats", m("stats"), s.statsHandler.HandleStats)

	coaches := r.Group("/coaches")
	coaches.GET("", m("coaches"), s.coachesHandler.HandleList)
	coaches.GET("/available", m("coaches_available"), s.coachesHandler.HandleAvailable)
	coaches.GET("/workloads", m("coaches_workloads"), s.coachesHandler.HandleWorkloads)
	coaches.GET("/:id", m("coach"), s.coachesHandler.HandleGet)
	coaches.GET("/:id/workload", m("coach_workload"), s.coachesHandler.HandleWorkload)
	coaches.GET("/:id/availability", m("coach_availability"), s.coachesHandler.HandleGetAvailability)
	coaches.PATCH("/:id/availability", m("coach_availability"), s.coachesHandler.HandlePatchAvailability)
	coaches.POST("/:id/unavailable", m("coach_unavailable"), s.coachesHandler.HandleSetUnavailable)
	coaches.POST("/:id/failover", m("coach_failover"), s.coachesHandler.HandleFailover)

	r.PUT("/roster", m("roster"), s.rosterHandler.HandlePutRoster)
	r.POST("/roster/csv", m("roster_csv"), s.rosterHandler.HandlePostCSV)

	athletes := r.Group("/athletes")
	athletes.GET("", m("athletes"), s.athletesHandler.HandleList)
	athletes.POST("", m("athletes"), s.athletesHandler.HandleRegister)
	athletes.GET("/:id", m("athlete"), s.athletesHandler.HandleGet)
	athletes.PUT("/:id/primary", m("athlete_primary"), s.athletesHandler.HandleAssignPrimary)
	athletes.POST("/:id/secondary", m("athlete_secondary"), s.athletesHandler.HandleAddSecondary)
	athletes.DELETE("/:id/coaches/:coachId", m("athlete_coach"), s.athletesHandler.HandleRemoveCoach)

	r.POST("/requests/decisions", m("decisions"), s.decisionsHandler.HandlePostDecision)

	swagger.Register(ctx, r)
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	if len(s.corsOrigins) == 0 || (len(s.corsOrigins) == 1 && s.corsOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.corsOrigins
	}
	return cors.New(cfg)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeError(c *gin.Context, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, errorResponse{Code: code, Message: msg})
}

// writeResult writes v with status, or maps err. A persistence failure still
// carries v so clients can render the in-memory state.
func writeResult(c *gin.Context, status int, v any, err error) {
	if err == nil {
		c.JSON(status, v)
		return
	}
	code, kind := classify(err)
	if kind == codePersistFailed {
		c.AbortWithStatusJSON(code, errorResponse{Code: kind, Message: err.Error(), Data: v})
		return
	}
	writeError(c, code, kind, err)
}

// splitParam parses a comma separated query value.
func splitParam(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Compile-time check that the engine serves every route.
var _ Dependencies = (*service.Engine)(nil)
