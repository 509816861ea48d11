// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/teamcomm/internal/access"
	"github.com/carterperez-dev/teamcomm/internal/catalog"
	"github.com/carterperez-dev/teamcomm/internal/core"
)

// SessionRevoker logs out every session of a user.
type SessionRevoker interface {
	RevokeUserSessions(ctx context.Context, userID string) error
}

type Service struct {
	repo     Repository
	policy   *access.Policy
	sessions SessionRevoker
}

func NewService(
	repo Repository,
	policy *access.Policy,
	sessions SessionRevoker,
) *Service {
	return &Service{repo: repo, policy: policy, sessions: sessions}
}

func (s *Service) List(
	ctx context.Context,
	caller access.Caller,
	params ListUsersParams,
) ([]User, int, error) {
	scope, err := s.policy.Authorize(ctx, caller)
	if err != nil {
		return nil, 0, err
	}

	if !scope.CanAdminister() {
		params.IncludeInactive = false
	}

	return s.repo.List(ctx, scope, params)
}

func (s *Service) Get(
	ctx context.Context,
	caller access.Caller,
	id string,
) (*User, error) {
	scope, err := s.policy.Authorize(ctx, caller)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.ID == scope.ActorID() {
		return u, nil
	}

	if err := s.policy.CheckRead(scope, u.Workspace(), "user"); err != nil {
		return nil, err
	}

	return u, nil
}

// Create adds an account. Admins may only create plain users inside their
// own workspace; super-admins may create any role.
func (s *Service) Create(
	ctx context.Context,
	caller access.Caller,
	req CreateUserRequest,
) (*User, error) {
	scope, err := s.policy.AuthorizeAdmin(ctx, caller)
	if err != nil {
		return nil, err
	}

	if !scope.IsSuperAdmin() && req.Role != catalog.RoleUser {
		return nil, core.NewForbidden("administrators can only create USER accounts")
	}

	var workspaceID *string
	if req.Role.NeedsWorkspace() {
		ws, err := s.policy.WorkspaceForCreate(ctx, scope, deref(req.WorkspaceID))
		if err != nil {
			return nil, err
		}
		workspaceID = &ws
	} else if req.WorkspaceID != nil && *req.WorkspaceID != "" {
		return nil, core.NewInvalidInput("a super administrator cannot belong to a workspace")
	}

	if err := CheckRoleWorkspace(req.Role, workspaceID); err != nil {
		return nil, err
	}

	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	actor := scope.ActorID()
	u := &User{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(req.Username),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		WorkspaceID:  workspaceID,
		IsActive:     true,
		CreatedBy:    &actor,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.DuplicateError("username")
		}
		return nil, err
	}

	return u, nil
}

// Update changes profile fields. Anyone may edit their own name and email;
// role and workspace changes go through the administration rules.
func (s *Service) Update(
	ctx context.Context,
	caller access.Caller,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	scope, err := s.policy.Authorize(ctx, caller)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changesAccess := req.Role != nil || req.WorkspaceID != nil
	self := u.ID == scope.ActorID()

	if !self || changesAccess {
		if err := s.checkManage(scope, u); err != nil {
			return nil, err
		}
	}

	if req.FullName != nil {
		u.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		u.Email = req.Email
	}

	if changesAccess {
		if !scope.IsSuperAdmin() {
			return nil, core.NewForbidden("only a super administrator can change roles or workspaces")
		}
		if req.Role != nil {
			u.Role = *req.Role
			if u.Role.IsSuperAdmin() {
				u.WorkspaceID = nil
			}
		}
		if req.WorkspaceID != nil {
			if err := s.policy.RequireWorkspace(ctx, *req.WorkspaceID); err != nil {
				return nil, err
			}
			u.WorkspaceID = req.WorkspaceID
		}
		if err := CheckRoleWorkspace(u.Role, u.WorkspaceID); err != nil {
			return nil, err
		}
	}

	actor := scope.ActorID()
	u.UpdatedBy = &actor

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// SetActive deactivates or reactivates an account. Deactivation also logs
// out every session of that user.
func (s *Service) SetActive(
	ctx context.Context,
	caller access.Caller,
	id string,
	active bool,
) (*User, error) {
	scope, err := s.policy.AuthorizeAdmin(ctx, caller)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.ID == scope.ActorID() && !active {
		return nil, core.NewInvalidInput("you cannot deactivate your own account")
	}

	if err := s.checkManage(scope, u); err != nil {
		return nil, err
	}

	if err := s.repo.SetActive(ctx, u.ID, active, scope.ActorID()); err != nil {
		return nil, err
	}
	u.IsActive = active

	if !active {
		if err := s.sessions.RevokeUserSessions(ctx, u.ID); err != nil {
			return nil, fmt.Errorf("deactivate user: %w", err)
		}
	}

	return u, nil
}

func (s *Service) ResetPassword(
	ctx context.Context,
	caller access.Caller,
	id string,
	req ResetPasswordRequest,
) error {
	scope, err := s.policy.AuthorizeAdmin(ctx, caller)
	if err != nil {
		return err
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.checkManage(scope, u); err != nil {
		return err
	}

	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}

	return s.sessions.RevokeUserSessions(ctx, u.ID)
}

// checkManage applies the administration rules to a target account.
// Super-admins manage everyone; admins manage USER accounts of their own
// workspace; users manage nobody.
func (s *Service) checkManage(scope access.Scope, target *User) error {
	if scope.IsSuperAdmin() {
		return nil
	}
	if !scope.CanAdminister() {
		return core.NewForbidden("administrator role required")
	}
	if target.Role != catalog.RoleUser {
		return core.NewForbidden("administrators can only manage USER accounts")
	}
	return s.policy.CheckModify(scope, target.Workspace())
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
