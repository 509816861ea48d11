// AngelaMos | 2026
// entity.go

package workspace

import (
	"time"
)

type Workspace struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
	CreatedBy   *string   `db:"created_by"`
	UpdatedBy   *string   `db:"updated_by"`
}
