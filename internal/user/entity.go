// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/carterperez-dev/teamcomm/internal/catalog"
	"github.com/carterperez-dev/teamcomm/internal/core"
)

type User struct {
	ID           string       `db:"id"`
	Username     string       `db:"username"`
	FullName     string       `db:"full_name"`
	Email        *string      `db:"email"`
	PasswordHash string       `db:"password_hash"`
	Role         catalog.Role `db:"role"`
	WorkspaceID  *string      `db:"workspace_id"`
	IsActive     bool         `db:"is_active"`
	LastLogin    *time.Time   `db:"last_login"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
	CreatedBy    *string      `db:"created_by"`
	UpdatedBy    *string      `db:"updated_by"`
}

func (u *User) Workspace() string {
	if u.WorkspaceID == nil {
		return ""
	}
	return *u.WorkspaceID
}

// CheckRoleWorkspace enforces the account invariant: a super-admin has no
// workspace, every other role has exactly one.
func CheckRoleWorkspace(role catalog.Role, workspaceID *string) error {
	if !role.Valid() {
		return core.NewInvalidInput("unknown role " + string(role))
	}

	hasWorkspace := workspaceID != nil && *workspaceID != ""

	if role.IsSuperAdmin() && hasWorkspace {
		return core.NewInvalidInput("a super administrator cannot belong to a workspace")
	}
	if role.NeedsWorkspace() && !hasWorkspace {
		return core.NewInvalidInput("role " + string(role) + " requires a workspace")
	}

	return nil
}
