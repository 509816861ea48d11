// AngelaMos | 2026
// dto.go

package targetdate

import (
	"time"

	"github.com/carterperez-dev/teamcomm/internal/catalog"
	"github.com/carterperez-dev/teamcomm/internal/core"
)

type CreateTargetDateRequest struct {
	WorkspaceID  *string                  `json:"workspace_id,omitempty"`
	Title        string                   `json:"title"                  validate:"required,min=1,max=200"`
	Description  *string                  `json:"description,omitempty"  validate:"omitempty,max=5000"`
	TargetDate   time.Time                `json:"target_date"            validate:"required"`
	ActivityType catalog.ActivityType     `json:"activity_type"          validate:"required,activity_type"`
	Status       catalog.TargetDateStatus `json:"status"                 validate:"omitempty,target_status"`
	Priority     catalog.Priority         `json:"priority"               validate:"omitempty,priority"`
	AssignedTo   *string                  `json:"assigned_to,omitempty"  validate:"omitempty,uuid"`
}

type UpdateTargetDateRequest struct {
	Title        *string                   `json:"title,omitempty"         validate:"omitempty,min=1,max=200"`
	Description  *string                   `json:"description,omitempty"   validate:"omitempty,max=5000"`
	TargetDate   *time.Time                `json:"target_date,omitempty"`
	ActivityType *catalog.ActivityType     `json:"activity_type,omitempty" validate:"omitempty,activity_type"`
	Status       *catalog.TargetDateStatus `json:"status,omitempty"        validate:"omitempty,target_status"`
	Priority     *catalog.Priority         `json:"priority,omitempty"      validate:"omitempty,priority"`
	AssignedTo   *string                   `json:"assigned_to,omitempty"   validate:"omitempty,uuid"`
}

type ListParams struct {
	core.PageParams
	Search          string
	Status          catalog.TargetDateStatus
	ActivityType    catalog.ActivityType
	AssignedTo      string
	From            *time.Time
	To              *time.Time
	IncludeArchived bool
}

type TargetDateResponse struct {
	ID                string                   `json:"id"`
	WorkspaceID       string                   `json:"workspace_id"`
	Title             string                   `json:"title"`
	Description       *string                  `json:"description,omitempty"`
	TargetDate        time.Time                `json:"target_date"`
	ActivityType      catalog.ActivityType     `json:"activity_type"`
	ActivityTypeLabel string                   `json:"activity_type_label"`
	Status            catalog.TargetDateStatus `json:"status"`
	StatusLabel       string                   `json:"status_label"`
	StatusColor       string                   `json:"status_color"`
	Priority          catalog.Priority         `json:"priority"`
	PriorityColor     string                   `json:"priority_color"`
	AssignedTo        *string                  `json:"assigned_to,omitempty"`
	IsArchived        bool                     `json:"is_archived"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
	CreatedBy         *string                  `json:"created_by,omitempty"`
	UpdatedBy         *string                  `json:"updated_by,omitempty"`
}

func ToTargetDateResponse(t *TargetDate) TargetDateResponse {
	return TargetDateResponse{
		ID:                t.ID,
		WorkspaceID:       t.WorkspaceID,
		Title:             t.Title,
		Description:       t.Description,
		TargetDate:        t.TargetDate,
		ActivityType:      t.ActivityType,
		ActivityTypeLabel: t.ActivityType.DisplayName(),
		Status:            t.Status,
		StatusLabel:       t.Status.DisplayName(),
		StatusColor:       t.Status.Color(),
		Priority:          t.Priority,
		PriorityColor:     t.Priority.Color(),
		AssignedTo:        t.AssignedTo,
		IsArchived:        t.IsArchived,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
		CreatedBy:         t.CreatedBy,
		UpdatedBy:         t.UpdatedBy,
	}
}

func ToTargetDateResponseList(items []TargetDate) []TargetDateResponse {
	out := make([]TargetDateResponse, 0, len(items))
	for i := range items {
		out = append(out, ToTargetDateResponse(&items[i]))
	}
	return out
}
