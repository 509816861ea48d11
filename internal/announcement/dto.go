// AngelaMos | 2026
// dto.go

package announcement

import (
	"time"

	"github.com/carterperez-dev/teamcomm/internal/catalog"
	"github.com/carterperez-dev/teamcomm/internal/core"
)

type CreateAnnouncementRequest struct {
	WorkspaceID *string          `json:"workspace_id,omitempty"`
	Title       string           `json:"title"                  validate:"required,min=1,max=200"`
	Content     string           `json:"content"                validate:"required,min=1"`
	Priority    catalog.Priority `json:"priority"               validate:"omitempty,priority"`
	IsActive    *bool            `json:"is_active,omitempty"`
	ExpiresAt   *time.Time       `json:"expires_at,omitempty"`
}

type UpdateAnnouncementRequest struct {
	Title     *string           `json:"title,omitempty"      validate:"omitempty,min=1,max=200"`
	Content   *string           `json:"content,omitempty"    validate:"omitempty,min=1"`
	Priority  *catalog.Priority `json:"priority,omitempty"   validate:"omitempty,priority"`
	IsActive  *bool             `json:"is_active,omitempty"`
	ExpiresAt *time.Time        `json:"expires_at,omitempty"`

	// ClearExpiresAt removes the expiry. It cannot be combined with ExpiresAt.
	ClearExpiresAt bool `json:"clear_expires_at,omitempty"`
}

type ListParams struct {
	core.PageParams
	Search          string
	Priority        catalog.Priority
	ActiveOnly      bool
	IncludeArchived bool
}

type AnnouncementResponse struct {
	ID            string           `json:"id"`
	WorkspaceID   string           `json:"workspace_id"`
	Title         string           `json:"title"`
	Content       string           `json:"content"`
	Priority      catalog.Priority `json:"priority"`
	PriorityLabel string           `json:"priority_label"`
	PriorityColor string           `json:"priority_color"`
	IsActive      bool             `json:"is_active"`
	IsArchived    bool             `json:"is_archived"`
	ExpiresAt     *time.Time       `json:"expires_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	CreatedBy     *string          `json:"created_by,omitempty"`
	UpdatedBy     *string          `json:"updated_by,omitempty"`
}

func ToAnnouncementResponse(a *Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:            a.ID,
		WorkspaceID:   a.WorkspaceID,
		Title:         a.Title,
		Content:       a.Content,
		Priority:      a.Priority,
		PriorityLabel: a.Priority.DisplayName(),
		PriorityColor: a.Priority.Color(),
		IsActive:      a.IsActive,
		IsArchived:    a.IsArchived,
		ExpiresAt:     a.ExpiresAt,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
		CreatedBy:     a.CreatedBy,
		UpdatedBy:     a.UpdatedBy,
	}
}

func ToAnnouncementResponseList(items []Announcement) []AnnouncementResponse {
	out := make([]AnnouncementResponse, 0, len(items))
	for i := range items {
		out = append(out, ToAnnouncementResponse(&items[i]))
	}
	return out
}
