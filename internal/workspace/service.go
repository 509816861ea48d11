// AngelaMos | 2026
// service.go

package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/teamcomm/internal/access"
	"github.com/carterperez-dev/teamcomm/internal/core"
)

type Service struct {
	repo   Repository
	policy *access.Policy
}

func NewService(repo Repository, policy *access.Policy) *Service {
	return &Service{repo: repo, policy: policy}
}

// List returns the workspaces visible to the caller. Super-admins always see
// every workspace so the selection control can offer them all.
func (s *Service) List(
	ctx context.Context,
	caller access.Caller,
	params ListParams,
) ([]Workspace, int, error) {
	scope, err := s.policy.Authorize(ctx, caller)
	if err != nil {
		return nil, 0, err
	}

	if !scope.IsSuperAdmin() {
		params.IncludeInactive = false
	}

	return s.repo.List(ctx, scope, params)
}

func (s *Service) Get(
	ctx context.Context,
	caller access.Caller,
	id string,
) (*Workspace, error) {
	scope, err := s.policy.Authorize(ctx, caller)
	if err != nil {
		return nil, err
	}

	if !scope.IsSuperAdmin() {
		if err := s.policy.CheckRead(scope, id, "workspace"); err != nil {
			return nil, err
		}
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(
	ctx context.Context,
	caller access.Caller,
	req CreateWorkspaceRequest,
) (*Workspace, error) {
	scope, err := s.policy.AuthorizeSuperAdmin(ctx, caller)
	if err != nil {
		return nil, err
	}

	actor := scope.ActorID()
	ws := &Workspace{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		IsActive:    true,
		CreatedBy:   &actor,
	}

	if err := s.repo.Create(ctx, ws); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.DuplicateError("name")
		}
		return nil, err
	}

	return ws, nil
}

func (s *Service) Update(
	ctx context.Context,
	caller access.Caller,
	id string,
	req UpdateWorkspaceRequest,
) (*Workspace, error) {
	scope, err := s.policy.AuthorizeSuperAdmin(ctx, caller)
	if err != nil {
		return nil, err
	}

	ws, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		ws.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		ws.Description = req.Description
	}

	actor := scope.ActorID()
	ws.UpdatedBy = &actor

	if err := s.repo.Update(ctx, ws); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.DuplicateError("name")
		}
		return nil, err
	}

	return ws, nil
}

// SetActive soft-deactivates or reactivates a workspace. Workspaces are
// never deleted.
func (s *Service) SetActive(
	ctx context.Context,
	caller access.Caller,
	id string,
	active bool,
) (*Workspace, error) {
	scope, err := s.policy.AuthorizeSuperAdmin(ctx, caller)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetActive(ctx, id, active, scope.ActorID()); err != nil {
		return nil, fmt.Errorf("workspace %s: %w", id, err)
	}

	return s.repo.GetByID(ctx, id)
}
