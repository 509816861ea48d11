// AngelaMos | 2026
// repository.go

package deployment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/teamcomm/internal/access"
	"github.com/carterperez-dev/teamcomm/internal/core"
)

type Repository interface {
	Create(ctx context.Context, d *Deployment) error
	GetByID(ctx context.Context, id string) (*Deployment, error)
	Update(ctx context.Context, d *Deployment) error
	SetArchived(ctx context.Context, id, workspaceID string, archived bool, actorID string) error
	List(ctx context.Context, scope access.Scope, params ListParams) ([]Deployment, int, error)
	AddComment(ctx context.Context, c *Comment) error
	ListComments(ctx context.Context, deploymentID string) ([]Comment, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const deploymentColumns = `id, workspace_id, release_name, version, environment,
	status, deployment_datetime, ticket_number, description, release_notes,
	is_archived, created_at, updated_at, created_by, updated_by`

func (r *repository) Create(ctx context.Context, d *Deployment) error {
	query := `
		INSERT INTO deployments (
			id, workspace_id, release_name, version, environment, status,
			deployment_datetime, ticket_number, description, release_notes,
			created_by, updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING is_archived, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		d.ID,
		d.WorkspaceID,
		d.ReleaseName,
		d.Version,
		d.Environment,
		d.Status,
		d.DeploymentDateTime,
		d.TicketNumber,
		d.Description,
		d.ReleaseNotes,
		d.CreatedBy,
	).Scan(&d.IsArchived, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create deployment: %w", core.MapDBError(err))
	}

	d.UpdatedBy = d.CreatedBy
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Deployment, error) {
	query := `SELECT ` + deploymentColumns + ` FROM deployments WHERE id = $1`

	var d Deployment
	err := r.db.GetContext(ctx, &d, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get deployment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get deployment: %w", core.MapDBError(err))
	}

	return &d, nil
}

func (r *repository) Update(ctx context.Context, d *Deployment) error {
	query := `
		UPDATE deployments
		SET release_name = $3, version = $4, environment = $5, status = $6,
			deployment_datetime = $7, ticket_number = $8, description = $9,
			release_notes = $10, updated_by = $11, updated_at = NOW()
		WHERE id = $1 AND workspace_id = $2
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &d.UpdatedAt, query,
		d.ID,
		d.WorkspaceID,
		d.ReleaseName,
		d.Version,
		d.Environment,
		d.Status,
		d.DeploymentDateTime,
		d.TicketNumber,
		d.Description,
		d.ReleaseNotes,
		d.UpdatedBy,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update deployment: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update deployment: %w", core.MapDBError(err))
	}

	return nil
}

func (r *repository) SetArchived(
	ctx context.Context,
	id, workspaceID string,
	archived bool,
	actorID string,
) error {
	query := `
		UPDATE deployments
		SET is_archived = $3, updated_by = $4, updated_at = NOW()
		WHERE id = $1 AND workspace_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, workspaceID, archived, actorID)
	if err != nil {
		return fmt.Errorf("archive deployment: %w", core.MapDBError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("archive deployment: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("archive deployment: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	scope access.Scope,
	params ListParams,
) ([]Deployment, int, error) {
	params.Normalize()

	conditions := []string{"TRUE"}
	var args []any

	conditions, args = scope.AppendFilter(conditions, args, "workspace_id")

	if !params.IncludeArchived {
		conditions = append(conditions, "is_archived = FALSE")
	}

	if params.Environment != "" {
		args = append(args, params.Environment)
		conditions = append(conditions, fmt.Sprintf("environment = $%d", len(args)))
	}

	if params.Status != "" {
		args = append(args, params.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	if params.From != nil {
		args = append(args, *params.From)
		conditions = append(conditions, fmt.Sprintf("deployment_datetime >= $%d", len(args)))
	}

	if params.To != nil {
		args = append(args, *params.To)
		conditions = append(conditions, fmt.Sprintf("deployment_datetime < $%d", len(args)))
	}

	if params.Search != "" {
		args = append(args, "%"+core.EscapeLike(params.Search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(release_name ILIKE $%d OR version ILIKE $%d OR ticket_number ILIKE $%d)", n, n, n))
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM deployments WHERE " + whereClause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count deployments: %w", core.MapDBError(err))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM deployments
		WHERE %s
		ORDER BY deployment_datetime DESC
		LIMIT $%d OFFSET $%d`,
		deploymentColumns, whereClause, len(args)+1, len(args)+2)

	args = append(args, params.PageSize, params.Offset())

	var items []Deployment
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list deployments: %w", core.MapDBError(err))
	}

	return items, total, nil
}

func (r *repository) AddComment(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO deployment_comments (id, deployment_id, comment, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID,
		c.DeploymentID,
		c.Comment,
		c.CreatedBy,
	).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("add deployment comment: %w", core.MapDBError(err))
	}

	return nil
}

// ListComments returns the thread oldest first.
func (r *repository) ListComments(ctx context.Context, deploymentID string) ([]Comment, error) {
	query := `
		SELECT c.id, c.deployment_id, c.comment, c.created_at, c.created_by,
			u.full_name AS author_name
		FROM deployment_comments c
		LEFT JOIN users u ON u.id = c.created_by
		WHERE c.deployment_id = $1
		ORDER BY c.created_at ASC`

	var items []Comment
	if err := r.db.SelectContext(ctx, &items, query, deploymentID); err != nil {
		return nil, fmt.Errorf("list deployment comments: %w", core.MapDBError(err))
	}

	return items, nil
}
