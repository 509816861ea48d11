// AngelaMos | 2026
// entity.go

package deployment

import (
	"time"

	"github.com/carterperez-dev/teamcomm/internal/catalog"
)

type Deployment struct {
	ID                 string                   `db:"id"`
	WorkspaceID        string                   `db:"workspace_id"`
	ReleaseName        string                   `db:"release_name"`
	Version            string                   `db:"version"`
	Environment        catalog.Environment      `db:"environment"`
	Status             catalog.DeploymentStatus `db:"status"`
	DeploymentDateTime time.Time                `db:"deployment_datetime"`
	TicketNumber       *string                  `db:"ticket_number"`
	Description        *string                  `db:"description"`
	ReleaseNotes       *string                  `db:"release_notes"`
	IsArchived         bool                     `db:"is_archived"`
	CreatedAt          time.Time                `db:"created_at"`
	UpdatedAt          time.Time                `db:"updated_at"`
	CreatedBy          *string                  `db:"created_by"`
	UpdatedBy          *string                  `db:"updated_by"`
}

// Comment is immutable once written.
type Comment struct {
	ID           string    `db:"id"`
	DeploymentID string    `db:"deployment_id"`
	Comment      string    `db:"comment"`
	CreatedAt    time.Time `db:"created_at"`
	CreatedBy    *string   `db:"created_by"`
	AuthorName   *string   `db:"author_name"`
}
