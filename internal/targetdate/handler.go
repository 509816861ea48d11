// AngelaMos | 2026
// handler.go

package targetdate

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
	r.Route("/target-dates", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{targetDateID}", h.Get)
		r.Put("/{targetDateID}", h.Update)
		r.Post("/{targetDateID}/archive", h.Archive)
		r.Post("/{targetDateID}/unarchive", h.Unarchive)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	from, err := core.TimeQuery(r, "from")
	if err != nil {
		core.BadRequest(w, err.Error())
		return
	}
	to, err := core.TimeQuery(r, "to")
	if err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	params := ListParams{
		PageParams:      core.PageFromRequest(r),
		Search:          r.URL.Query().Get("search"),
		Status:          catalog.TargetDateStatus(r.URL.Query().Get("status")),
		ActivityType:    catalog.ActivityType(r.URL.Query().Get("activity_type")),
		AssignedTo:      r.URL.Query().Get("assigned_to"),
		From:            from,
		To:              to,
		IncludeArchived: core.BoolQuery(r, "include_archived"),
	}

	items, total, err := h.service.List(r.Context(), access.CallerFrom(r.Context()), params)
	if err != nil {
		core.WriteError(w, err, "target date")
		return
	}

	core.Paginated(w, ToTargetDateResponseList(items), params.Page, params.PageSize, total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	td, err := h.service.Get(
		r.Context(),
		access.CallerFrom(r.Context()),
		chi.URLParam(r, "targetDateID"),
	)
	if err != nil {
		core.WriteError(w, err, "target date")
		return
	}

	core.OK(w, ToTargetDateResponse(td))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTargetDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	td, err := h.service.Create(r.Context(), access.CallerFrom(r.Context()), req)
	if err != nil {
		core.WriteError(w, err, "target date")
		return
	}

	core.Created(w, ToTargetDateResponse(td))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateTargetDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	td, err := h.service.Update(
		r.Context(),
		access.CallerFrom(r.Context()),
		chi.URLParam(r, "targetDateID"),
		req,
	)
	if err != nil {
		core.WriteError(w, err, "target date")
		return
	}

	core.OK(w, ToTargetDateResponse(td))
}

func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	td, err := h.service.Archive(
		r.Context(),
		access.CallerFrom(r.Context()),
		chi.URLParam(r, "targetDateID"),
	)
	if err != nil {
		core.WriteError(w, err, "target date")
		return
	}

	core.OK(w, ToTargetDateResponse(td))
}

func (h *Handler) Unarchive(w http.ResponseWriter, r *http.Request) {
	td, err := h.service.Unarchive(
		r.Context(),
		access.CallerFrom(r.Context()),
		chi.URLParam(r, "targetDateID"),
	)
	if err != nil {
		core.WriteError(w, err, "target date")
		return
	}

	core.OK(w, ToTargetDateResponse(td))
}
