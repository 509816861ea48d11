// AngelaMos | 2026
// entity.go

package announcement

import (
	"time"

	"github.com/carterperez-dev/teamcomm/internal/catalog"
)

type Announcement struct {
	ID          string           `db:"id"`
	WorkspaceID string           `db:"workspace_id"`
	Title       string           `db:"title"`
	Content     string           `db:"content"`
	Priority    catalog.Priority `db:"priority"`
	IsActive    bool             `db:"is_active"`
	IsArchived  bool             `db:"is_archived"`
	ExpiresAt   *time.Time       `db:"expires_at"`
	CreatedAt   time.Time        `db:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at"`
	CreatedBy   *string          `db:"created_by"`
	UpdatedBy   *string          `db:"updated_by"`
}

// Expired reports whether the announcement has passed its display window.
// Expired announcements stay listed; clients decide how to render them.
func (a *Announcement) Expired(now time.Time) bool {
	return a.ExpiresAt != nil && now.After(*a.ExpiresAt)
}
