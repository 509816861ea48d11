// AngelaMos | 2026
// policy.go

package access

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/teamcomm/internal/core"
)

type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*Identity, error)
}

// WorkspaceChecker reports whether a workspace exists and whether it is
// still active. A deactivated workspace stays selectable for reading.
type WorkspaceChecker interface {
	WorkspaceStatus(ctx context.Context, id string) (exists, active bool, err error)
}

const (
	DenySession          = "session"
	DenyNoWorkspace      = "no_workspace"
	DenyUnknownWorkspace = "unknown_workspace"
	DenyMismatch         = "workspace_mismatch"
	DenyRole             = "role"
)

// Policy is the single entry point every tenant operation goes through. It
// re-validates the session and derives the effective scope before any SQL
// runs.
type Policy struct {
	sessions   SessionValidator
	workspaces WorkspaceChecker
	metrics    *core.Metrics
}

func NewPolicy(
	sessions SessionValidator,
	workspaces WorkspaceChecker,
	metrics *core.Metrics,
) *Policy {
	return &Policy{
		sessions:   sessions,
		workspaces: workspaces,
		metrics:    metrics,
	}
}

// Authorize validates the caller's session and returns the scope for the
// current operation. An expired or logged-out session fails here, before the
// workspace filter is evaluated.
func (p *Policy) Authorize(ctx context.Context, caller Caller) (Scope, error) {
	if caller.Token == "" {
		return Scope{}, p.deny(DenySession, core.UnauthorizedError("missing session token"))
	}

	identity, err := p.sessions.ValidateSession(ctx, caller.Token)
	if err != nil {
		return Scope{}, p.deny(DenySession, err)
	}

	scope, err := EffectiveScope(*identity, caller.Selection)
	if err != nil {
		return Scope{}, p.deny(DenyNoWorkspace, err)
	}

	if ws, ok := scope.Filter(); ok && scope.IsSuperAdmin() {
		exists, _, err := p.workspaces.WorkspaceStatus(ctx, ws)
		if err != nil {
			return Scope{}, fmt.Errorf("authorize: %w", err)
		}
		if !exists {
			return Scope{}, p.deny(DenyUnknownWorkspace, core.NotFoundError("workspace"))
		}
	}

	return scope, nil
}

// AuthorizeAdmin is Authorize restricted to ADMIN and SUPER_ADMIN callers.
func (p *Policy) AuthorizeAdmin(ctx context.Context, caller Caller) (Scope, error) {
	scope, err := p.Authorize(ctx, caller)
	if err != nil {
		return Scope{}, err
	}
	if !scope.CanAdminister() {
		return Scope{}, p.deny(DenyRole, core.ForbiddenError("administrator role required"))
	}
	return scope, nil
}

func (p *Policy) AuthorizeSuperAdmin(ctx context.Context, caller Caller) (Scope, error) {
	scope, err := p.Authorize(ctx, caller)
	if err != nil {
		return Scope{}, err
	}
	if !scope.IsSuperAdmin() {
		return Scope{}, p.deny(DenyRole, core.ForbiddenError("super administrator role required"))
	}
	return scope, nil
}

// WorkspaceForCreate decides which workspace a new record belongs to. A
// restricted scope always wins over the supplied value. A super-admin viewing
// all workspaces must name one, and it has to exist.
func (p *Policy) WorkspaceForCreate(
	ctx context.Context,
	scope Scope,
	supplied string,
) (string, error) {
	if ws, ok := scope.Filter(); ok {
		if scope.IsSuperAdmin() {
			if err := p.RequireWorkspace(ctx, ws); err != nil {
				return "", err
			}
		}
		return ws, nil
	}

	supplied = strings.TrimSpace(supplied)
	if supplied == "" {
		return "", core.NewInvalidInput("workspace_id is required when all workspaces are selected")
	}

	if err := p.RequireWorkspace(ctx, supplied); err != nil {
		return "", err
	}

	return supplied, nil
}

// RequireWorkspace fails with invalid input when id names no workspace or a
// deactivated one. New rows never land in a deactivated workspace.
func (p *Policy) RequireWorkspace(ctx context.Context, id string) error {
	exists, active, err := p.workspaces.WorkspaceStatus(ctx, id)
	if err != nil {
		return fmt.Errorf("resolve workspace: %w", err)
	}
	if !exists {
		return core.NewInvalidInput("workspace " + id + " does not exist")
	}
	if !active {
		return core.NewInvalidInput("workspace " + id + " is deactivated")
	}
	return nil
}

// CheckRead hides rows outside the scope as not found.
func (p *Policy) CheckRead(scope Scope, workspaceID, resource string) error {
	if scope.CanRead(workspaceID) {
		return nil
	}
	p.metrics.ObserveAccessDenied(DenyMismatch)
	return core.NotFoundError(resource)
}

// CheckModify rejects changes to rows owned by another workspace.
func (p *Policy) CheckModify(scope Scope, workspaceID string) error {
	if scope.CanModify(workspaceID) {
		return nil
	}
	return p.deny(DenyMismatch, core.ForbiddenError("record belongs to another workspace"))
}

func (p *Policy) deny(reason string, err error) error {
	p.metrics.ObserveAccessDenied(reason)
	return err
}

// IsAuthError reports whether err should send the caller back to login
// rather than be shown as a data error.
func IsAuthError(err error) bool {
	return errors.Is(err, core.ErrUnauthorized) || errors.Is(err, core.ErrSessionExpired)
}
