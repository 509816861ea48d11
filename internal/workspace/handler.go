// AngelaMos | 2026
// handler.go

package workspace

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/teamcomm/internal/access"
	"github.com/carterperez-dev/teamcomm/internal/catalog"
	"github.com/carterperez-dev/teamcomm/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: catalog.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/workspaces", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{workspaceID}", h.Get)
		r.Put("/{workspaceID}", h.Update)
		r.Post("/{workspaceID}/activate", h.Activate)
		r.Post("/{workspaceID}/deactivate", h.Deactivate)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		PageParams:      core.PageFromRequest(r),
		Search:          r.URL.Query().Get("search"),
		IncludeInactive: core.BoolQuery(r, "include_inactive"),
	}

	items, total, err := h.service.List(r.Context(), access.CallerFrom(r.Context()), params)
	if err != nil {
		core.WriteError(w, err, "workspace")
		return
	}

	core.Paginated(w, ToWorkspaceResponseList(items), params.Page, params.PageSize, total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ws, err := h.service.Get(
		r.Context(),
		access.CallerFrom(r.Context()),
		chi.URLParam(r, "workspaceID"),
	)
	if err != nil {
		core.WriteError(w, err, "workspace")
		return
	}

	core.OK(w, ToWorkspaceResponse(ws))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	ws, err := h.service.Create(r.Context(), access.CallerFrom(r.Context()), req)
	if err != nil {
		core.WriteError(w, err, "workspace")
		return
	}

	core.Created(w, ToWorkspaceResponse(ws))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	ws, err := h.service.Update(
		r.Context(),
		access.CallerFrom(r.Context()),
		chi.URLParam(r, "workspaceID"),
		req,
	)
	if err != nil {
		core.WriteError(w, err, "workspace")
		return
	}

	core.OK(w, ToWorkspaceResponse(ws))
}

func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	ws, err := h.service.SetActive(
		r.Context(),
		access.CallerFrom(r.Context()),
		chi.URLParam(r, "workspaceID"),
		active,
	)
	if err != nil {
		core.WriteError(w, err, "workspace")
		return
	}

	core.OK(w, ToWorkspaceResponse(ws))
}
