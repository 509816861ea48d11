// AngelaMos | 2026
// service.go

package announcement

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/teamcomm/internal/access"
	"github.com/carterperez-dev/teamcomm/internal/catalog"
	"github.com/carterperez-dev/teamcomm/internal/core"
)

type Service struct {
	repo   Repository
	policy *access.Policy
}

func NewService(repo Repository, policy *access.Policy) *Service {
	return &Service{repo: repo, policy: policy}
}

// List returns announcements in the caller's effective scope, newest first.
// Archived rows are left out unless params.IncludeArchived is set.
func (s *Service) List(
	ctx context.Context,
	caller access.Caller,
	params ListParams,
) ([]Announcement, int, error) {
	scope, err := s.policy.Authorize(ctx, caller)
	if err != nil {
		return nil, 0, err
	}

	return s.repo.List(ctx, scope, params)
}

func (s *Service) Get(
	ctx context.Context,
	caller access.Caller,
	id string,
) (*Announcement, error) {
	scope, err := s.policy.Authorize(ctx, caller)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CheckRead(scope, a.WorkspaceID, "announcement"); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Create(
	ctx context.Context,
	caller access.Caller,
	req CreateAnnouncementRequest,
) (*Announcement, error) {
	scope, err := s.policy.Authorize(ctx, caller)
	if err != nil {
		return nil, err
	}

	var supplied string
	if req.WorkspaceID != nil {
		supplied = *req.WorkspaceID
	}
	workspaceID, err := s.policy.WorkspaceForCreate(ctx, scope, supplied)
	if err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = catalog.PriorityMedium
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	actor := scope.ActorID()
	a := &Announcement{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		Priority:    priority,
		IsActive:    active,
		ExpiresAt:   req.ExpiresAt,
		CreatedBy:   &actor,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// Update applies the non-nil fields. Concurrent edits are last-writer-wins.
func (s *Service) Update(
	ctx context.Context,
	caller access.Caller,
	id string,
	req UpdateAnnouncementRequest,
) (*Announcement, error) {
	scope, err := s.policy.Authorize(ctx, caller)
	if err != nil {
		return nil, err
	}

	if req.ClearExpiresAt && req.ExpiresAt != nil {
		return nil, core.NewInvalidInput("expires_at and clear_expires_at are mutually exclusive")
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CheckModify(scope, a.WorkspaceID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		a.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		a.Content = *req.Content
	}
	if req.Priority != nil {
		a.Priority = *req.Priority
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	if req.ExpiresAt != nil {
		a.ExpiresAt = req.ExpiresAt
	}
	if req.ClearExpiresAt {
		a.ExpiresAt = nil
	}

	actor := scope.ActorID()
	a.UpdatedBy = &actor

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// Archive hides the announcement from default listings. Archiving an
// archived row succeeds without writing.
func (s *Service) Archive(
	ctx context.Context,
	caller access.Caller,
	id string,
) (*Announcement, error) {
	scope, err := s.policy.Authorize(ctx, caller)
	if err != nil {
		return nil, err
	}

	return s.setArchived(ctx, scope, id, true)
}

// Unarchive restores an archived announcement. Administrators only.
func (s *Service) Unarchive(
	ctx context.Context,
	caller access.Caller,
	id string,
) (*Announcement, error) {
	scope, err := s.policy.AuthorizeAdmin(ctx, caller)
	if err != nil {
		return nil, err
	}

	return s.setArchived(ctx, scope, id, false)
}

func (s *Service) setArchived(
	ctx context.Context,
	scope access.Scope,
	id string,
	archived bool,
) (*Announcement, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CheckModify(scope, a.WorkspaceID); err != nil {
		return nil, err
	}

	if a.IsArchived == archived {
		return a, nil
	}

	if err := s.repo.SetArchived(ctx, a.ID, a.WorkspaceID, archived, scope.ActorID()); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}
