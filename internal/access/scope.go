// AngelaMos | 2026
// scope.go

package access

import (
	"fmt"

	"github.com/carterperez-dev/teamcomm/internal/catalog"
	"github.com/carterperez-dev/teamcomm/internal/core"
)

// Scope is the effective workspace filter for one operation, computed once
// and passed down to repositories.
type Scope struct {
	identity    Identity
	workspaceID string
}

// EffectiveScope maps a caller identity and selection to a workspace filter.
// Super-admins honor the selection. Admins and users are pinned to their own
// workspace regardless of what they selected.
func EffectiveScope(id Identity, sel Selection) (Scope, error) {
	if id.Role.IsSuperAdmin() {
		if sel.All || sel.WorkspaceID == "" {
			return Scope{identity: id}, nil
		}
		return Scope{identity: id, workspaceID: sel.WorkspaceID}, nil
	}

	if !id.Role.NeedsWorkspace() {
		return Scope{}, fmt.Errorf("effective scope: unknown role %q: %w",
			id.Role, core.ErrForbidden)
	}

	if id.WorkspaceID == nil || *id.WorkspaceID == "" {
		return Scope{}, fmt.Errorf("effective scope: user %s has no workspace: %w",
			id.Username, core.ErrForbidden)
	}

	return Scope{identity: id, workspaceID: *id.WorkspaceID}, nil
}

func (s Scope) Identity() Identity { return s.identity }
func (s Scope) ActorID() string    { return s.identity.UserID }
func (s Scope) Role() catalog.Role { return s.identity.Role }

// Filter returns the workspace every query must be restricted to. ok is
// false when the scope spans all workspaces.
func (s Scope) Filter() (string, bool) {
	return s.workspaceID, s.workspaceID != ""
}

func (s Scope) IsAll() bool {
	return s.workspaceID == ""
}

func (s Scope) IsSuperAdmin() bool {
	return s.identity.Role.IsSuperAdmin()
}

func (s Scope) CanAdminister() bool {
	return s.identity.Role.CanAdminister()
}

// AppendFilter adds the workspace predicate for column to a condition list
// built with positional placeholders. Unrestricted scopes add nothing.
func (s Scope) AppendFilter(
	conditions []string,
	args []any,
	column string,
) ([]string, []any) {
	ws, ok := s.Filter()
	if !ok {
		return conditions, args
	}
	args = append(args, ws)
	conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	return conditions, args
}

// CanRead reports whether a row owned by workspaceID is visible.
func (s Scope) CanRead(workspaceID string) bool {
	ws, ok := s.Filter()
	return !ok || ws == workspaceID
}

// CanModify reports whether a row owned by workspaceID may be changed.
// Super-admins may change any row.
func (s Scope) CanModify(workspaceID string) bool {
	if s.IsSuperAdmin() {
		return true
	}
	ws, ok := s.Filter()
	return ok && ws == workspaceID
}
