// AngelaMos | 2026
// dto.go

package deployment

import (
	"time"

	"github.com/carterperez-dev/teamcomm/internal/catalog"
	"github.com/carterperez-dev/teamcomm/internal/core"
)

type CreateDeploymentRequest struct {
	WorkspaceID        *string                  `json:"workspace_id,omitempty"`
	ReleaseName        string                   `json:"release_name"            validate:"required,min=1,max=200"`
	Version            string                   `json:"version"                 validate:"required,min=1,max=50"`
	Environment        catalog.Environment      `json:"environment"             validate:"required,environment"`
	Status             catalog.DeploymentStatus `json:"status"                  validate:"omitempty,deployment_status"`
	DeploymentDateTime time.Time                `json:"deployment_datetime"     validate:"required"`
	TicketNumber       *string                  `json:"ticket_number,omitempty" validate:"omitempty,max=50"`
	Description        *string                  `json:"description,omitempty"`
	ReleaseNotes       *string                  `json:"release_notes,omitempty"`
}

type UpdateDeploymentRequest struct {
	ReleaseName        *string                   `json:"release_name,omitempty"        validate:"omitempty,min=1,max=200"`
	Version            *string                   `json:"version,omitempty"             validate:"omitempty,min=1,max=50"`
	Environment        *catalog.Environment      `json:"environment,omitempty"         validate:"omitempty,environment"`
	Status             *catalog.DeploymentStatus `json:"status,omitempty"              validate:"omitempty,deployment_status"`
	DeploymentDateTime *time.Time                `json:"deployment_datetime,omitempty"`
	TicketNumber       *string                   `json:"ticket_number,omitempty"       validate:"omitempty,max=50"`
	Description        *string                   `json:"description,omitempty"`
	ReleaseNotes       *string                   `json:"release_notes,omitempty"`
}

type AddCommentRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=5000"`
}

type ListParams struct {
	core.PageParams
	Search          string
	Environment     catalog.Environment
	Status          catalog.DeploymentStatus
	From            *time.Time
	To              *time.Time
	IncludeArchived bool
}

type DeploymentResponse struct {
	ID                 string                   `json:"id"`
	WorkspaceID        string                   `json:"workspace_id"`
	ReleaseName        string                   `json:"release_name"`
	Version            string                   `json:"version"`
	Environment        catalog.Environment      `json:"environment"`
	EnvironmentLabel   string                   `json:"environment_label"`
	EnvironmentColor   string                   `json:"environment_color"`
	Status             catalog.DeploymentStatus `json:"status"`
	StatusLabel        string                   `json:"status_label"`
	StatusColor        string                   `json:"status_color"`
	DeploymentDateTime time.Time                `json:"deployment_datetime"`
	TicketNumber       *string                  `json:"ticket_number"`
	Description        *string                  `json:"description,omitempty"`
	ReleaseNotes       *string                  `json:"release_notes,omitempty"`
	IsArchived         bool                     `json:"is_archived"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
	CreatedBy          *string                  `json:"created_by,omitempty"`
	UpdatedBy          *string                  `json:"updated_by,omitempty"`
}

type CommentResponse struct {
	ID           string    `json:"id"`
	DeploymentID string    `json:"deployment_id"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
	CreatedBy    *string   `json:"created_by,omitempty"`
	AuthorName   *string   `json:"author_name,omitempty"`
}

func ToDeploymentResponse(d *Deployment) DeploymentResponse {
	return DeploymentResponse{
		ID:                 d.ID,
		WorkspaceID:        d.WorkspaceID,
		ReleaseName:        d.ReleaseName,
		Version:            d.Version,
		Environment:        d.Environment,
		EnvironmentLabel:   d.Environment.DisplayName(),
		EnvironmentColor:   d.Environment.Color(),
		Status:             d.Status,
		StatusLabel:        d.Status.DisplayName(),
		StatusColor:        d.Status.Color(),
		DeploymentDateTime: d.DeploymentDateTime,
		TicketNumber:       d.TicketNumber,
		Description:        d.Description,
		ReleaseNotes:       d.ReleaseNotes,
		IsArchived:         d.IsArchived,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
		CreatedBy:          d.CreatedBy,
		UpdatedBy:          d.UpdatedBy,
	}
}

func ToDeploymentResponseList(items []Deployment) []DeploymentResponse {
	out := make([]DeploymentResponse, 0, len(items))
	for i := range items {
		out = append(out, ToDeploymentResponse(&items[i]))
	}
	return out
}

func ToCommentResponseList(items []Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(items))
	for _, c := range items {
		out = append(out, CommentResponse{
			ID:           c.ID,
			DeploymentID: c.DeploymentID,
			Comment:      c.Comment,
			CreatedAt:    c.CreatedAt,
			CreatedBy:    c.CreatedBy,
			AuthorName:   c.AuthorName,
		})
	}
	return out
}
