// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=128"`
}

type UserResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	FullName    string     `json:"full_name"`
	Email       *string    `json:"email,omitempty"`
	Role        string     `json:"role"`
	WorkspaceID *string    `json:"workspace_id"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

type SessionResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

type LoginResponse struct {
	User    UserResponse    `json:"user"`
	Session SessionResponse `json:"session"`
}

type SessionInfo struct {
	ID        string    `json:"id"`
	Current   bool      `json:"current"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionsResponse struct {
	Sessions []SessionInfo `json:"sessions"`
}

// LoginResult is what a successful login hands back: the account, the new
// session row and the only copy of the plaintext token.
type LoginResult struct {
	User    *UserInfo
	Session *Session
	Token   string
}

func ToUserResponse(u *UserInfo) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		Email:       u.Email,
		Role:        string(u.Role),
		WorkspaceID: u.WorkspaceID,
		LastLogin:   u.LastLogin,
	}
}

func ToLoginResponse(res *LoginResult) LoginResponse {
	return LoginResponse{
		User: ToUserResponse(res.User),
		Session: SessionResponse{
			Token:     res.Token,
			TokenType: "Bearer",
			ExpiresAt: res.Session.ExpiresAt,
		},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
