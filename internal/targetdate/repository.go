// AngelaMos | 2026
// repository.go

package targetdate

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
	Create(ctx context.Context, t *TargetDate) error
	GetByID(ctx context.Context, id string) (*TargetDate, error)
	Update(ctx context.Context, t *TargetDate) error
	SetArchived(ctx context.Context, id, workspaceID string, archived bool, actorID string) error
	List(ctx context.Context, scope access.Scope, params ListParams) ([]TargetDate, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const targetDateColumns = `id, workspace_id, title, description, target_date,
	activity_type, status, priority, assigned_to, is_archived,
	created_at, updated_at, created_by, updated_by`

func (r *repository) Create(ctx context.Context, t *TargetDate) error {
	query := `
		INSERT INTO target_dates (
			id, workspace_id, title, description, target_date,
			activity_type, status, priority, assigned_to, created_by, updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING is_archived, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		t.ID,
		t.WorkspaceID,
		t.Title,
		t.Description,
		t.TargetDate,
		t.ActivityType,
		t.Status,
		t.Priority,
		t.AssignedTo,
		t.CreatedBy,
	).Scan(&t.IsArchived, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create target date: %w", core.MapDBError(err))
	}

	t.UpdatedBy = t.CreatedBy
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*TargetDate, error) {
	query := `SELECT ` + targetDateColumns + ` FROM target_dates WHERE id = $1`

	var t TargetDate
	err := r.db.GetContext(ctx, &t, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get target date: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get target date: %w", core.MapDBError(err))
	}

	return &t, nil
}

func (r *repository) Update(ctx context.Context, t *TargetDate) error {
	query := `
		UPDATE target_dates
		SET title = $3, description = $4, target_date = $5, activity_type = $6,
			status = $7, priority = $8, assigned_to = $9,
			updated_by = $10, updated_at = NOW()
		WHERE id = $1 AND workspace_id = $2
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &t.UpdatedAt, query,
		t.ID,
		t.WorkspaceID,
		t.Title,
		t.Description,
		t.TargetDate,
		t.ActivityType,
		t.Status,
		t.Priority,
		t.AssignedTo,
		t.UpdatedBy,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update target date: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update target date: %w", core.MapDBError(err))
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
		UPDATE target_dates
		SET is_archived = $3, updated_by = $4, updated_at = NOW()
		WHERE id = $1 AND workspace_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, workspaceID, archived, actorID)
	if err != nil {
		return fmt.Errorf("archive target date: %w", core.MapDBError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("archive target date: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("archive target date: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	scope access.Scope,
	params ListParams,
) ([]TargetDate, int, error) {
	params.Normalize()

	conditions := []string{"TRUE"}
	var args []any

	conditions, args = scope.AppendFilter(conditions, args, "workspace_id")

	if !params.IncludeArchived {
		conditions = append(conditions, "is_archived = FALSE")
	}

	if params.Status != "" {
		args = append(args, params.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	if params.ActivityType != "" {
		args = append(args, params.ActivityType)
		conditions = append(conditions, fmt.Sprintf("activity_type = $%d", len(args)))
	}

	if params.AssignedTo != "" {
		args = append(args, params.AssignedTo)
		conditions = append(conditions, fmt.Sprintf("assigned_to = $%d", len(args)))
	}

	if params.From != nil {
		args = append(args, *params.From)
		conditions = append(conditions, fmt.Sprintf("target_date >= $%d", len(args)))
	}

	if params.To != nil {
		args = append(args, *params.To)
		conditions = append(conditions, fmt.Sprintf("target_date < $%d", len(args)))
	}

	if params.Search != "" {
		args = append(args, "%"+core.EscapeLike(params.Search)+"%")
		conditions = append(conditions,
			fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM target_dates WHERE " + whereClause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count target dates: %w", core.MapDBError(err))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM target_dates
		WHERE %s
		ORDER BY target_date DESC
		LIMIT $%d OFFSET $%d`,
		targetDateColumns, whereClause, len(args)+1, len(args)+2)

	args = append(args, params.PageSize, params.Offset())

	var items []TargetDate
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list target dates: %w", core.MapDBError(err))
	}

	return items, total, nil
}
