// AngelaMos | 2026
// handler.go

package catalog

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/teamcomm/internal/core"
)

type Handler struct {
	refreshInterval time.Duration
}

func NewHandler(refreshInterval time.Duration) *Handler {
	return &Handler{refreshInterval: refreshInterval}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/catalog", h.List)
	r.Get("/client-config", h.ClientConfig)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	core.OK(w, All())
}

type ClientConfigResponse struct {
	RefreshIntervalSeconds int `json:"refresh_interval_seconds"`
}

func (h *Handler) ClientConfig(w http.ResponseWriter, r *http.Request) {
	core.OK(w, ClientConfigResponse{
		RefreshIntervalSeconds: int(h.refreshInterval / time.Second),
	})
}
