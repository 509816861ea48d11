// AngelaMos | 2026
// handler.go

package deployment

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
	r.Route("/deployments", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{deploymentID}", h.Get)
		r.Put("/{deploymentID}", h.Update)
		r.Post("/{deploymentID}/archive", h.Archive)
		r.Post("/{deploymentID}/unarchive", h.Unarchive)
		r.Get("/{deploymentID}/comments", h.ListComments)
		r.Post("/{deploymentID}/comments", h.AddComment)
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
		Environment:     catalog.Environment(r.URL.Query().Get("environment")),
		Status:          catalog.DeploymentStatus(r.URL.Query().Get("status")),
		From:            from,
		To:              to,
		IncludeArchived: core.BoolQuery(r, "include_archived"),
	}

	items, total, err := h.service.List(r.Context(), access.CallerFrom(r.Context()), params)
	if err != nil {
		core.WriteError(w, err, "deployment")
		return
	}

	core.Paginated(w, ToDeploymentResponseList(items), params.Page, params.PageSize, total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Get(
		r.Context(),
		access.CallerFrom(r.Context()),
		chi.URLParam(r, "deploymentID"),
	)
	if err != nil {
		core.WriteError(w, err, "deployment")
		return
	}

	core.OK(w, ToDeploymentResponse(d))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDeploymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	d, err := h.service.Create(r.Context(), access.CallerFrom(r.Context()), req)
	if err != nil {
		core.WriteError(w, err, "deployment")
		return
	}

	core.Created(w, ToDeploymentResponse(d))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateDeploymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	d, err := h.service.Update(
		r.Context(),
		access.CallerFrom(r.Context()),
		chi.URLParam(r, "deploymentID"),
		req,
	)
	if err != nil {
		core.WriteError(w, err, "deployment")
		return
	}

	core.OK(w, ToDeploymentResponse(d))
}

func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Archive(
		r.Context(),
		access.CallerFrom(r.Context()),
		chi.URLParam(r, "deploymentID"),
	)
	if err != nil {
		core.WriteError(w, err, "deployment")
		return
	}

	core.OK(w, ToDeploymentResponse(d))
}

func (h *Handler) Unarchive(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Unarchive(
		r.Context(),
		access.CallerFrom(r.Context()),
		chi.URLParam(r, "deploymentID"),
	)
	if err != nil {
		core.WriteError(w, err, "deployment")
		return
	}

	core.OK(w, ToDeploymentResponse(d))
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.ListComments(
		r.Context(),
		access.CallerFrom(r.Context()),
		chi.URLParam(r, "deploymentID"),
	)
	if err != nil {
		core.WriteError(w, err, "deployment")
		return
	}

	core.OK(w, ToCommentResponseList(comments))
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.AddComment(
		r.Context(),
		access.CallerFrom(r.Context()),
		chi.URLParam(r, "deploymentID"),
		req,
	)
	if err != nil {
		core.WriteError(w, err, "deployment")
		return
	}

	core.Created(w, ToCommentResponseList([]Comment{*c})[0])
}
