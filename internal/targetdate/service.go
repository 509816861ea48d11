// AngelaMos | 2026
// service.go

package targetdate

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/teamcomm/internal/access"
	"github.com/carterperez-dev/teamcomm/internal/catalog"
	"github.com/carterperez-dev/teamcomm/internal/core"
)

// Assignees resolves the workspace of a user a target date is assigned to.
type Assignees interface {
	AssigneeWorkspace(ctx context.Context, userID string) (string, error)
}

type Service struct {
	repo      Repository
	policy    *access.Policy
	assignees Assignees
}

func NewService(repo Repository, policy *access.Policy, assignees Assignees) *Service {
	return &Service{repo: repo, policy: policy, assignees: assignees}
}

// List returns target dates in the caller's scope, latest date first.
func (s *Service) List(
	ctx context.Context,
	caller access.Caller,
	params ListParams,
) ([]TargetDate, int, error) {
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
) (*TargetDate, error) {
	scope, err := s.policy.Authorize(ctx, caller)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CheckRead(scope, t.WorkspaceID, "target date"); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Create(
	ctx context.Context,
	caller access.Caller,
	req CreateTargetDateRequest,
) (*TargetDate, error) {
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

	if err := s.checkAssignee(ctx, workspaceID, req.AssignedTo); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = catalog.TargetPending
	}
	priority := req.Priority
	if priority == "" {
		priority = catalog.PriorityMedium
	}

	actor := scope.ActorID()
	t := &TargetDate{
		ID:           uuid.New().String(),
		WorkspaceID:  workspaceID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		TargetDate:   req.TargetDate,
		ActivityType: req.ActivityType,
		Status:       status,
		Priority:     priority,
		AssignedTo:   req.AssignedTo,
		CreatedBy:    &actor,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// Update applies the non-nil fields. Any valid status may follow any other.
func (s *Service) Update(
	ctx context.Context,
	caller access.Caller,
	id string,
	req UpdateTargetDateRequest,
) (*TargetDate, error) {
	scope, err := s.policy.Authorize(ctx, caller)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CheckModify(scope, t.WorkspaceID); err != nil {
		return nil, err
	}

	if req.AssignedTo != nil {
		if err := s.checkAssignee(ctx, t.WorkspaceID, req.AssignedTo); err != nil {
			return nil, err
		}
		t.AssignedTo = req.AssignedTo
		if *req.AssignedTo == "" {
			t.AssignedTo = nil
		}
	}
	if req.Title != nil {
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.TargetDate != nil {
		t.TargetDate = *req.TargetDate
	}
	if req.ActivityType != nil {
		t.ActivityType = *req.ActivityType
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}

	actor := scope.ActorID()
	t.UpdatedBy = &actor

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Archive(
	ctx context.Context,
	caller access.Caller,
	id string,
) (*TargetDate, error) {
	scope, err := s.policy.Authorize(ctx, caller)
	if err != nil {
		return nil, err
	}

	return s.setArchived(ctx, scope, id, true)
}

func (s *Service) Unarchive(
	ctx context.Context,
	caller access.Caller,
	id string,
) (*TargetDate, error) {
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
) (*TargetDate, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CheckModify(scope, t.WorkspaceID); err != nil {
		return nil, err
	}

	if t.IsArchived == archived {
		return t, nil
	}

	if err := s.repo.SetArchived(ctx, t.ID, t.WorkspaceID, archived, scope.ActorID()); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// checkAssignee requires the assignee to be an active member of the record's
// workspace. Super-admins have no workspace and cannot be assigned.
func (s *Service) checkAssignee(ctx context.Context, workspaceID string, assignee *string) error {
	if assignee == nil || *assignee == "" {
		return nil
	}

	ws, err := s.assignees.AssigneeWorkspace(ctx, *assignee)
	if errors.Is(err, core.ErrNotFound) {
		return core.NewInvalidInput("assignee does not exist")
	}
	if err != nil {
		return err
	}

	if ws != workspaceID {
		return core.NewInvalidInput("assignee must belong to the same workspace")
	}

	return nil
}
