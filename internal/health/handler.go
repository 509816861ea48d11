// AngelaMos | 2026
// handler.go

package health

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/teamcomm/internal/core"
	"github.com/carterperez-dev/teamcomm/internal/schema"
)

type Checker interface {
	Ping(ctx context.Context) error
}

// ReportSource returns the most recent reconciliation report, or nil before
// the first run.
type ReportSource interface {
	Last() *schema.Report
}

type Handler struct {
	checks   map[string]Checker
	reports  ReportSource
	ready    atomic.Bool
	shutdown atomic.Bool
}

func NewHandler(db, redis Checker, reports ReportSource) *Handler {
	h := &Handler{
		checks: map[string]Checker{
			"database": db,
			"redis":    redis,
		},
		reports: reports,
	}
	h.ready.Store(true)
	return h
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Liveness)
	r.Get("/livez", h.Liveness)
	r.Get("/readyz", h.Readiness)
}

func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		core.JSON(w, http.StatusServiceUnavailable, StatusResponse{Status: "shutting_down"})
		return
	}
	core.JSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// Readiness fails when a dependency is down. Failed schema steps only mark
// the response degraded; the service keeps answering with the tables it has.
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		core.JSON(w, http.StatusServiceUnavailable, StatusResponse{Status: "shutting_down"})
		return
	}

	if !h.ready.Load() {
		core.JSON(w, http.StatusServiceUnavailable, StatusResponse{Status: "not_ready"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := h.runChecks(ctx)

	status := "ok"
	code := http.StatusOK
	for _, c := range checks {
		if !c.Healthy {
			status = "unavailable"
			code = http.StatusServiceUnavailable
			break
		}
	}

	resp := ReadinessResponse{Status: status, Checks: checks}

	if h.reports != nil {
		if last := h.reports.Last(); last != nil {
			resp.Schema = &SchemaStatus{
				Applied: last.Applied(),
				Failed:  last.Failed(),
			}
			if last.Failed() > 0 && code == http.StatusOK {
				resp.Status = "degraded"
			}
		}
	}

	core.JSON(w, code, resp)
}

func (h *Handler) runChecks(ctx context.Context) []HealthCheck {
	names := []string{"database", "redis"}
	checks := make([]HealthCheck, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			checks[i] = ping(ctx, name, h.checks[name])
		}()
	}
	wg.Wait()

	return checks
}

func ping(ctx context.Context, name string, c Checker) HealthCheck {
	check := HealthCheck{Name: name, Healthy: true}

	if c == nil {
		check.Healthy = false
		check.Message = name + " checker not configured"
		return check
	}

	start := time.Now()
	err := c.Ping(ctx)
	check.Latency = time.Since(start).String()

	if err != nil {
		check.Healthy = false
		check.Message = "ping failed"
	}

	return check
}

func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}

func (h *Handler) SetShutdown(shutdown bool) {
	h.shutdown.Store(shutdown)
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ReadinessResponse struct {
	Status string        `json:"status"`
	Checks []HealthCheck `json:"checks"`
	Schema *SchemaStatus `json:"schema,omitempty"`
}

type SchemaStatus struct {
	Applied int `json:"applied"`
	Failed  int `json:"failed"`
}

type HealthCheck struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}
