package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/infrastructure/scheduler"
	"github.com/protrack/backend/internal/interfaces/http/dto"
)

// Pinger checks a backing dependency such as the database
type Pinger interface {
	Ping() error
}

// JobReporter exposes the run history of background jobs
type JobReporter interface {
	Stats() []scheduler.JobStats
}

// SystemHandler serves operational endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	states    *state.Controller
	db        Pinger
	jobs      JobReporter
	startTime time.Time
}

// SystemOption configures a SystemHandler
type SystemOption func(*SystemHandler)

// WithJobReporter adds background job status to the health report
func WithJobReporter(jobs JobReporter) SystemOption {
	return func(h *SystemHandler) {
		h.jobs = jobs
	}
}

// NewSystemHandler creates a new SystemHandler. db may be nil when running
// without a database.
func NewSystemHandler(name, version string, states *state.Controller, db Pinger, opts ...SystemOption) *SystemHandler {
	h := &SystemHandler{
		name:      name,
		version:   version,
		states:    states,
		db:        db,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// JobHealth is the latest known state of a background job
type JobHealth struct {
	Name      string     `json:"name"`
	Interval  string     `json:"interval"`
	Status    string     `json:"status"`
	Runs      int64      `json:"runs"`
	Failures  int64      `json:"failures"`
	Skipped   int64      `json:"skipped"`
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
	LastError string     `json:"last_error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string `json:"status"`
	Name         string `json:"name"`
	Version      string `json:"version"`
	GoVersion    string `json:"go_version"`
	Uptime       string `json:"uptime"`
	StateVersion uint64      `json:"state_version"`
	Database     string      `json:"database"`
	Jobs         []JobHealth `json:"jobs,omitempty"`
}

// Health reports liveness and database reachability.
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:       "ok",
		Name:         h.name,
		Version:      h.version,
		GoVersion:    runtime.Version(),
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		StateVersion: h.states.Snapshot().Version,
		Database:     "disabled",
	}

	status := http.StatusOK
	if h.db != nil {
		resp.Database = "ok"
		if err := h.db.Ping(); err != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}

	if h.jobs != nil {
		resp.Jobs = toJobHealth(h.jobs.Stats())
	}

	c.JSON(status, dto.NewSuccessResponse(resp))
}

func toJobHealth(stats []scheduler.JobStats) []JobHealth {
	jobs := make([]JobHealth, len(stats))
	for i, st := range stats {
		jobs[i] = JobHealth{
			Name:      st.Name,
			Interval:  st.Interval.String(),
			Status:    string(st.Status),
			Runs:      st.Runs,
			Failures:  st.Failures,
			Skipped:   st.Skipped,
			LastError: st.LastError,
		}
		if !st.LastRunAt.IsZero() {
			lastRun := st.LastRunAt
			jobs[i].LastRunAt = &lastRun
		}
	}
	return jobs
}
