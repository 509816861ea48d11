// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/carterperez-dev/teamcomm/internal/catalog"
	"github.com/carterperez-dev/teamcomm/internal/core"
)

type CreateUserRequest struct {
	Username    string       `json:"username"     validate:"required,min=3,max=50,username"`
	Password    string       `json:"password"     validate:"required,min=8,max=128"`
	FullName    string       `json:"full_name"    validate:"required,min=1,max=100"`
	Email       *string      `json:"email"        validate:"omitempty,email,max=255"`
	Role        catalog.Role `json:"role"         validate:"required,role"`
	WorkspaceID *string      `json:"workspace_id" validate:"omitempty,max=36"`
}

type UpdateUserRequest struct {
	FullName    *string       `json:"full_name,omitempty"    validate:"omitempty,min=1,max=100"`
	Email       *string       `json:"email,omitempty"        validate:"omitempty,email,max=255"`
	Role        *catalog.Role `json:"role,omitempty"         validate:"omitempty,role"`
	WorkspaceID *string       `json:"workspace_id,omitempty" validate:"omitempty,max=36"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type ListUsersParams struct {
	core.PageParams
	Search          string
	Role            catalog.Role
	IncludeInactive bool
}

type UserResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	FullName    string     `json:"full_name"`
	Email       *string    `json:"email,omitempty"`
	Role        string     `json:"role"`
	WorkspaceID *string    `json:"workspace_id"`
	IsActive    bool       `json:"is_active"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		Email:       u.Email,
		Role:        string(u.Role),
		WorkspaceID: u.WorkspaceID,
		IsActive:    u.IsActive,
		LastLogin:   u.LastLogin,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses
}
