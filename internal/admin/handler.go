// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/teamcomm/internal/access"
	"github.com/carterperez-dev/teamcomm/internal/core"
	"github.com/carterperez-dev/teamcomm/internal/schema"
)

type Authorizer interface {
	AuthorizeSuperAdmin(ctx context.Context, caller access.Caller) (access.Scope, error)
}

// Reconciler exposes the startup reconciliation report. Re-running it is a
// CLI operation and never happens while serving.
type Reconciler interface {
	Last() *schema.Report
}

// HandlerConfig wires the handler to the process resources it reports on.
// Any stats or ping func may be nil.
type HandlerConfig struct {
	DBStats    func() sql.DBStats
	RedisStats func() *redis.PoolStats
	RedisPing  func(ctx context.Context) error
	DBPing     func(ctx context.Context) error
	Policy     Authorizer
	Reconciler Reconciler
}

type Handler struct {
	HandlerConfig
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{HandlerConfig: cfg}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(h.superAdminOnly)

		r.Get("/stats", h.GetSystemStats)
		r.Get("/stats/db", h.GetDatabaseStats)
		r.Get("/stats/redis", h.GetRedisStats)
		r.Get("/stats/runtime", h.GetRuntimeStats)
		r.Get("/schema", h.GetSchemaReport)
	})
}

// superAdminOnly validates the session through the access policy, so an
// expired or revoked token is rejected here exactly as on data routes.
func (h *Handler) superAdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.Policy.AuthorizeSuperAdmin(r.Context(), access.CallerFrom(r.Context())); err != nil {
			core.JSONError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) GetSchemaReport(w http.ResponseWriter, r *http.Request) {
	last := h.Reconciler.Last()
	if last == nil {
		core.JSONError(w, core.NotFoundError("schema report"))
		return
	}
	core.OK(w, ToReportResponse(*last))
}

const statsPingTimeout = 2 * time.Second

func reachable(ctx context.Context, ping func(context.Context) error) bool {
	if ping == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, statsPingTimeout)
	defer cancel()
	return ping(ctx) == nil
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	resp := SystemStatsResponse{
		Database: DatabaseStatus{Healthy: reachable(r.Context(), h.DBPing), Stats: h.getDBStats()},
		Redis:    RedisStatus{Healthy: reachable(r.Context(), h.RedisPing), Stats: h.getRedisStats()},
		Runtime:  runtimeStats(),
	}
	if last := h.Reconciler.Last(); last != nil {
		report := ToReportResponse(*last)
		resp.Schema = &report
	}
	core.OK(w, resp)
}

func (h *Handler) GetDatabaseStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.getDBStats())
}

func (h *Handler) GetRedisStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.getRedisStats())
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, runtimeStats())
}

func runtimeStats() RuntimeStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     memStats.Alloc,
		MemSys:       memStats.Sys,
		NumGC:        memStats.NumGC,
	}
}

func (h *Handler) getDBStats() *DBPoolStats {
	if h.DBStats == nil {
		return nil
	}

	stats := h.DBStats()
	return &DBPoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.String(),
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxIdleTimeClosed:  stats.MaxIdleTimeClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}
}

func (h *Handler) getRedisStats() *RedisPoolStats {
	if h.RedisStats == nil {
		return nil
	}

	stats := h.RedisStats()
	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
		StaleConns: stats.StaleConns,
	}
}

type SystemStatsResponse struct {
	Database DatabaseStatus  `json:"database"`
	Redis    RedisStatus     `json:"redis"`
	Runtime  RuntimeStats    `json:"runtime"`
	Schema   *ReportResponse `json:"schema,omitempty"`
}

type ReportResponse struct {
	Schema    string        `json:"schema"`
	StartedAt string        `json:"started_at"`
	Duration  string        `json:"duration"`
	Applied   int           `json:"applied"`
	Present   int           `json:"present"`
	Failed    int           `json:"failed"`
	Steps     []schema.Step `json:"steps"`
}

func ToReportResponse(r schema.Report) ReportResponse {
	return ReportResponse{
		Schema:    r.Schema,
		StartedAt: r.StartedAt.UTC().Format(time.RFC3339),
		Duration:  r.Duration.String(),
		Applied:   r.Applied(),
		Present:   r.Present(),
		Failed:    r.Failed(),
		Steps:     r.Steps,
	}
}

type DatabaseStatus struct {
	Healthy bool         `json:"healthy"`
	Stats   *DBPoolStats `json:"stats,omitempty"`
}

type RedisStatus struct {
	Healthy bool            `json:"healthy"`
	Stats   *RedisPoolStats `json:"stats,omitempty"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
	MaxIdleClosed      int64  `json:"max_idle_closed"`
	MaxIdleTimeClosed  int64  `json:"max_idle_time_closed"`
	MaxLifetimeClosed  int64  `json:"max_lifetime_closed"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
	StaleConns uint32 `json:"stale_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
