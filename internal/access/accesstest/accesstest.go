// AngelaMos | 2026
// accesstest.go

// Package accesstest provides in-memory session and workspace fakes for
// service tests that go through access.Policy.
package accesstest

import (
	"context"
	"sync"

	"github.com/carterperez-dev/teamcomm/internal/access"
	"github.com/carterperez-dev/teamcomm/internal/catalog"
	"github.com/carterperez-dev/teamcomm/internal/core"
)

const (
	WorkspaceEngineering = "ws-engineering"
	WorkspaceMarketing   = "ws-marketing"
)

// Sessions maps tokens to identities. Expired tokens fail validation the
// same way the real session service does.
type Sessions struct {
	mu         sync.Mutex
	identities map[string]access.Identity
	expired    map[string]bool
	calls      int
}

func NewSessions() *Sessions {
	return &Sessions{
		identities: make(map[string]access.Identity),
		expired:    make(map[string]bool),
	}
}

func (s *Sessions) Add(token string, id access.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identities[token] = id
}

func (s *Sessions) Expire(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expired[token] = true
}

func (s *Sessions) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *Sessions) ValidateSession(_ context.Context, token string) (*access.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.expired[token] {
		return nil, core.SessionExpiredError()
	}
	id, ok := s.identities[token]
	if !ok {
		return nil, core.UnauthorizedError("invalid session")
	}
	return &id, nil
}

// Workspaces maps workspace ids to their active flag.
type Workspaces map[string]bool

func (w Workspaces) WorkspaceStatus(_ context.Context, id string) (bool, bool, error) {
	active, ok := w[id]
	return ok, active, nil
}

// Fixture is the two-workspace setup used across service tests: jdoe is an
// admin in Engineering, msmith a user in Marketing and sys_admin a
// super-admin.
type Fixture struct {
	Sessions *Sessions
	Policy   *access.Policy
}

func NewFixture() *Fixture {
	sessions := NewSessions()
	eng, mkt := WorkspaceEngineering, WorkspaceMarketing

	sessions.Add("jdoe", access.Identity{
		SessionID: "s-jdoe", UserID: "u-jdoe", Username: "jdoe",
		Role: catalog.RoleAdmin, WorkspaceID: &eng,
	})
	sessions.Add("eng-user", access.Identity{
		SessionID: "s-eng", UserID: "u-eng", Username: "bwayne",
		Role: catalog.RoleUser, WorkspaceID: &eng,
	})
	sessions.Add("msmith", access.Identity{
		SessionID: "s-msmith", UserID: "u-msmith", Username: "msmith",
		Role: catalog.RoleUser, WorkspaceID: &mkt,
	})
	sessions.Add("sys_admin", access.Identity{
		SessionID: "s-root", UserID: "u-root", Username: "sys_admin",
		Role: catalog.RoleSuperAdmin,
	})

	workspaces := Workspaces{eng: true, mkt: true}

	return &Fixture{
		Sessions: sessions,
		Policy:   access.NewPolicy(sessions, workspaces, nil),
	}
}

func Caller(token string) access.Caller {
	return access.Caller{Token: token, Selection: access.SelectAll()}
}

func CallerIn(token, workspaceID string) access.Caller {
	return access.Caller{Token: token, Selection: access.SelectWorkspace(workspaceID)}
}
