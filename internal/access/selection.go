// AngelaMos | 2026
// selection.go

package access

import (
	"strings"
)

const (
	// SelectionHeader carries the workspace picked in the navigation control.
	SelectionHeader = "X-Workspace-ID"
	AllWorkspaces   = "ALL"
)

// Selection is the workspace a caller asked to see. It only matters for
// super-admins; every other role is pinned to its own workspace.
type Selection struct {
	All         bool
	WorkspaceID string
}

func SelectAll() Selection {
	return Selection{All: true}
}

func SelectWorkspace(id string) Selection {
	return Selection{WorkspaceID: id}
}

// ParseSelection reads the raw header value. Empty and "ALL" both mean every
// workspace.
func ParseSelection(raw string) Selection {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, AllWorkspaces) {
		return SelectAll()
	}
	return SelectWorkspace(raw)
}

func (s Selection) String() string {
	if s.All || s.WorkspaceID == "" {
		return AllWorkspaces
	}
	return s.WorkspaceID
}
