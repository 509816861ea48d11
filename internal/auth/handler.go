// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/teamcomm/internal/access"
	"github.com/carterperez-dev/teamcomm/internal/catalog"
	"github.com/carterperez-dev/teamcomm/internal/core"
	"github.com/carterperez-dev/teamcomm/internal/middleware"
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
	loginLimiter func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.With(loginLimiter).Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/me", h.GetMe)
			r.Post("/logout", h.Logout)
			r.Get("/sessions", h.GetSessions)
			r.Post("/change-password", h.ChangePassword)
		})
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	res, err := h.service.Login(r.Context(), req, r.UserAgent(), middleware.ClientIP(r))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.JSONError(w, core.UnauthorizedError("invalid username or password"))
			return
		}
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToLoginResponse(res))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	caller := access.CallerFrom(r.Context())

	if err := h.service.Logout(r.Context(), caller.Token); err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	caller := access.CallerFrom(r.Context())

	user, err := h.service.CurrentUser(r.Context(), caller.Token)
	if err != nil {
		core.WriteError(w, err, "user")
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) GetSessions(w http.ResponseWriter, r *http.Request) {
	caller := access.CallerFrom(r.Context())

	sessions, err := h.service.Sessions(r.Context(), caller.Token)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, SessionsResponse{Sessions: sessions})
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	caller := access.CallerFrom(r.Context())

	if err := h.service.ChangePassword(r.Context(), caller.Token, req); err != nil {
		// The session is still valid here, so this must not look like a 401.
		if errors.Is(err, ErrInvalidCredentials) {
			core.JSONError(w, &core.AppError{
				Status:  http.StatusBadRequest,
				Code:    "INVALID_CURRENT_PASSWORD",
				Message: "current password is incorrect",
				Field:   "current_password",
				Err:     core.ErrInvalidInput,
			})
			return
		}
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}
