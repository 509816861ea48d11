// AngelaMos | 2026
// dto.go

package workspace

import (
	"time"

	"github.com/carterperez-dev/teamcomm/internal/core"
)

type CreateWorkspaceRequest struct {
	Name        string  `json:"name"        validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type UpdateWorkspaceRequest struct {
	Name        *string `json:"name,omitempty"        validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type ListParams struct {
	core.PageParams
	Search          string
	IncludeInactive bool
}

type WorkspaceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToWorkspaceResponse(w *Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		IsActive:    w.IsActive,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func ToWorkspaceResponseList(items []Workspace) []WorkspaceResponse {
	out := make([]WorkspaceResponse, 0, len(items))
	for i := range items {
		out = append(out, ToWorkspaceResponse(&items[i]))
	}
	return out
}
