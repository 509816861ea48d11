// AngelaMos | 2026
// handler.go

package announcement

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
	r.Route("/announcements", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{announcementID}", h.Get)
		r.Put("/{announcementID}", h.Update)
		r.Post("/{announcementID}/archive", h.Archive)
		r.Post("/{announcementID}/unarchive", h.Unarchive)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		PageParams:      core.PageFromRequest(r),
		Search:          r.URL.Query().Get("search"),
		Priority:        catalog.Priority(r.URL.Query().Get("priority")),
		ActiveOnly:      core.BoolQuery(r, "active_only"),
		IncludeArchived: core.BoolQuery(r, "include_archived"),
	}

	items, total, err := h.service.List(r.Context(), access.CallerFrom(r.Context()), params)
	if err != nil {
		core.WriteError(w, err, "announcement")
		return
	}

	core.Paginated(w, ToAnnouncementResponseList(items), params.Page, params.PageSize, total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Get(
		r.Context(),
		access.CallerFrom(r.Context()),
		chi.URLParam(r, "announcementID"),
	)
	if err != nil {
		core.WriteError(w, err, "announcement")
		return
	}

	core.OK(w, ToAnnouncementResponse(a))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	a, err := h.service.Create(r.Context(), access.CallerFrom(r.Context()), req)
	if err != nil {
		core.WriteError(w, err, "announcement")
		return
	}

	core.Created(w, ToAnnouncementResponse(a))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	a, err := h.service.Update(
		r.Context(),
		access.CallerFrom(r.Context()),
		chi.URLParam(r, "announcementID"),
		req,
	)
	if err != nil {
		core.WriteError(w, err, "announcement")
		return
	}

	core.OK(w, ToAnnouncementResponse(a))
}

func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Archive(
		r.Context(),
		access.CallerFrom(r.Context()),
		chi.URLParam(r, "announcementID"),
	)
	if err != nil {
		core.WriteError(w, err, "announcement")
		return
	}

	core.OK(w, ToAnnouncementResponse(a))
}

func (h *Handler) Unarchive(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Unarchive(
		r.Context(),
		access.CallerFrom(r.Context()),
		chi.URLParam(r, "announcementID"),
	)
	if err != nil {
		core.WriteError(w, err, "announcement")
		return
	}

	core.OK(w, ToAnnouncementResponse(a))
}
