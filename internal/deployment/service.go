// AngelaMos | 2026
// service.go

package deployment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/teamcomm/internal/access"
	"github.com/carterperez-dev/teamcomm/internal/catalog"
)

type Service struct {
	repo   Repository
	policy *access.Policy
}

func NewService(repo Repository, policy *access.Policy) *Service {
	return &Service{repo: repo, policy: policy}
}

// List returns deployments in the caller's scope, latest scheduled first.
func (s *Service) List(
	ctx context.Context,
	caller access.Caller,
	params ListParams,
) ([]Deployment, int, error) {
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
) (*Deployment, error) {
	scope, err := s.policy.Authorize(ctx, caller)
	if err != nil {
		return nil, err
	}

	return s.visible(ctx, scope, id)
}

func (s *Service) Create(
	ctx context.Context,
	caller access.Caller,
	req CreateDeploymentRequest,
) (*Deployment, error) {
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

	status := req.Status
	if status == "" {
		status = catalog.DeploymentPlanned
	}

	actor := scope.ActorID()
	d := &Deployment{
		ID:                 uuid.New().String(),
		WorkspaceID:        workspaceID,
		ReleaseName:        strings.TrimSpace(req.ReleaseName),
		Version:            strings.TrimSpace(req.Version),
		Environment:        req.Environment,
		Status:             status,
		DeploymentDateTime: req.DeploymentDateTime,
		TicketNumber:       ticket(req.TicketNumber),
		Description:        req.Description,
		ReleaseNotes:       req.ReleaseNotes,
		CreatedBy:          &actor,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Update(
	ctx context.Context,
	caller access.Caller,
	id string,
	req UpdateDeploymentRequest,
) (*Deployment, error) {
	scope, err := s.policy.Authorize(ctx, caller)
	if err != nil {
		return nil, err
	}

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CheckModify(scope, d.WorkspaceID); err != nil {
		return nil, err
	}

	if req.ReleaseName != nil {
		d.ReleaseName = strings.TrimSpace(*req.ReleaseName)
	}
	if req.Version != nil {
		d.Version = strings.TrimSpace(*req.Version)
	}
	if req.Environment != nil {
		d.Environment = *req.Environment
	}
	if req.Status != nil {
		d.Status = *req.Status
	}
	if req.DeploymentDateTime != nil {
		d.DeploymentDateTime = *req.DeploymentDateTime
	}
	if req.TicketNumber != nil {
		d.TicketNumber = ticket(req.TicketNumber)
	}
	if req.Description != nil {
		d.Description = req.Description
	}
	if req.ReleaseNotes != nil {
		d.ReleaseNotes = req.ReleaseNotes
	}

	actor := scope.ActorID()
	d.UpdatedBy = &actor

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Archive(
	ctx context.Context,
	caller access.Caller,
	id string,
) (*Deployment, error) {
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
) (*Deployment, error) {
	scope, err := s.policy.AuthorizeAdmin(ctx, caller)
	if err != nil {
		return nil, err
	}

	return s.setArchived(ctx, scope, id, false)
}

// AddComment appends to the deployment's thread. Commenting counts as a
// change to the deployment, so it needs modify rights on its workspace.
func (s *Service) AddComment(
	ctx context.Context,
	caller access.Caller,
	deploymentID string,
	req AddCommentRequest,
) (*Comment, error) {
	scope, err := s.policy.Authorize(ctx, caller)
	if err != nil {
		return nil, err
	}

	d, err := s.repo.GetByID(ctx, deploymentID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CheckModify(scope, d.WorkspaceID); err != nil {
		return nil, err
	}

	actor := scope.ActorID()
	c := &Comment{
		ID:           uuid.New().String(),
		DeploymentID: d.ID,
		Comment:      strings.TrimSpace(req.Comment),
		CreatedBy:    &actor,
	}

	if err := s.repo.AddComment(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) ListComments(
	ctx context.Context,
	caller access.Caller,
	deploymentID string,
) ([]Comment, error) {
	scope, err := s.policy.Authorize(ctx, caller)
	if err != nil {
		return nil, err
	}

	d, err := s.visible(ctx, scope, deploymentID)
	if err != nil {
		return nil, err
	}

	return s.repo.ListComments(ctx, d.ID)
}

func (s *Service) visible(ctx context.Context, scope access.Scope, id string) (*Deployment, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CheckRead(scope, d.WorkspaceID, "deployment"); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) setArchived(
	ctx context.Context,
	scope access.Scope,
	id string,
	archived bool,
) (*Deployment, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CheckModify(scope, d.WorkspaceID); err != nil {
		return nil, err
	}

	if d.IsArchived == archived {
		return d, nil
	}

	if err := s.repo.SetArchived(ctx, d.ID, d.WorkspaceID, archived, scope.ActorID()); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// ticket normalizes an optional ticket reference; blank means none.
func ticket(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
