// AngelaMos | 2026
// handler.go

package user

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
	r.Route("/users", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Get("/{userID}", h.GetUser)
		r.Put("/{userID}", h.UpdateUser)
		r.Put("/{userID}/password", h.ResetPassword)
		r.Post("/{userID}/activate", h.ActivateUser)
		r.Post("/{userID}/deactivate", h.DeactivateUser)
	})
}

// ListUsers returns a paginated list of users in the caller's scope.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := ListUsersParams{
		PageParams:      core.PageFromRequest(r),
		Search:          r.URL.Query().Get("search"),
		Role:            catalog.Role(r.URL.Query().Get("role")),
		IncludeInactive: core.BoolQuery(r, "include_inactive"),
	}

	users, total, err := h.service.List(r.Context(), access.CallerFrom(r.Context()), params)
	if err != nil {
		core.WriteError(w, err, "user")
		return
	}

	core.Paginated(w, ToUserResponseList(users), params.Page, params.PageSize, total)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Get(r.Context(), access.CallerFrom(r.Context()), chi.URLParam(r, "userID"))
	if err != nil {
		core.WriteError(w, err, "user")
		return
	}

	core.OK(w, ToUserResponse(u))
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.Create(r.Context(), access.CallerFrom(r.Context()), req)
	if err != nil {
		core.WriteError(w, err, "user")
		return
	}

	core.Created(w, ToUserResponse(u))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.Update(
		r.Context(),
		access.CallerFrom(r.Context()),
		chi.URLParam(r, "userID"),
		req,
	)
	if err != nil {
		core.WriteError(w, err, "user")
		return
	}

	core.OK(w, ToUserResponse(u))
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.ResetPassword(
		r.Context(),
		access.CallerFrom(r.Context()),
		chi.URLParam(r, "userID"),
		req,
	)
	if err != nil {
		core.WriteError(w, err, "user")
		return
	}

	core.NoContent(w)
}

func (h *Handler) ActivateUser(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	u, err := h.service.SetActive(
		r.Context(),
		access.CallerFrom(r.Context()),
		chi.URLParam(r, "userID"),
		active,
	)
	if err != nil {
		core.WriteError(w, err, "user")
		return
	}

	core.OK(w, ToUserResponse(u))
}
