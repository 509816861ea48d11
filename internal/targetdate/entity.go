// AngelaMos | 2026
// entity.go

package targetdate

import (
	"time"

	"github.com/carterperez-dev/teamcomm/internal/catalog"
)

type TargetDate struct {
	ID           string                   `db:"id"`
	WorkspaceID  string                   `db:"workspace_id"`
	Title        string                   `db:"title"`
	Description  *string                  `db:"description"`
	TargetDate   time.Time                `db:"target_date"`
	ActivityType catalog.ActivityType     `db:"activity_type"`
	Status       catalog.TargetDateStatus `db:"status"`
	Priority     catalog.Priority         `db:"priority"`
	AssignedTo   *string                  `db:"assigned_to"`
	IsArchived   bool                     `db:"is_archived"`
	CreatedAt    time.Time                `db:"created_at"`
	UpdatedAt    time.Time                `db:"updated_at"`
	CreatedBy    *string                  `db:"created_by"`
	UpdatedBy    *string                  `db:"updated_by"`
}

// PastDue reports whether the date has passed while the item is still open.
// The stored status is not changed; OVERDUE is only set explicitly.
func (t *TargetDate) PastDue(now time.Time) bool {
	switch t.Status {
	case catalog.TargetCompleted, catalog.TargetCancelled:
		return false
	}
	return now.After(t.TargetDate)
}
