// AngelaMos | 2026
// repository.go

package workspace

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
	Create(ctx context.Context, ws *Workspace) error
	GetByID(ctx context.Context, id string) (*Workspace, error)
	GetByName(ctx context.Context, name string) (*Workspace, error)
	Update(ctx context.Context, ws *Workspace) error
	SetActive(ctx context.Context, id string, active bool, actorID string) error
	List(ctx context.Context, scope access.Scope, params ListParams) ([]Workspace, int, error)
	WorkspaceStatus(ctx context.Context, id string) (exists, active bool, err error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const workspaceColumns = `id, name, description, is_active,
	created_at, updated_at, created_by, updated_by`

func (r *repository) Create(ctx context.Context, ws *Workspace) error {
	query := `
		INSERT INTO workspaces (id, name, description, is_active, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		ws.ID,
		ws.Name,
		ws.Description,
		ws.IsActive,
		ws.CreatedBy,
	).Scan(&ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create workspace: %w", core.MapDBError(err))
	}

	ws.UpdatedBy = ws.CreatedBy
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Workspace, error) {
	query := `SELECT ` + workspaceColumns + ` FROM workspaces WHERE id = $1`

	var ws Workspace
	err := r.db.GetContext(ctx, &ws, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get workspace: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", core.MapDBError(err))
	}

	return &ws, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*Workspace, error) {
	query := `SELECT ` + workspaceColumns + ` FROM workspaces WHERE name = $1`

	var ws Workspace
	err := r.db.GetContext(ctx, &ws, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get workspace by name: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get workspace by name: %w", core.MapDBError(err))
	}

	return &ws, nil
}

func (r *repository) Update(ctx context.Context, ws *Workspace) error {
	query := `
		UPDATE workspaces
		SET name = $2, description = $3, updated_by = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &ws.UpdatedAt, query,
		ws.ID,
		ws.Name,
		ws.Description,
		ws.UpdatedBy,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update workspace: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update workspace: %w", core.MapDBError(err))
	}

	return nil
}

func (r *repository) SetActive(
	ctx context.Context,
	id string,
	active bool,
	actorID string,
) error {
	query := `
		UPDATE workspaces
		SET is_active = $2, updated_by = $3, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, active, actorID)
	if err != nil {
		return fmt.Errorf("set workspace active: %w", core.MapDBError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set workspace active: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("set workspace active: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	scope access.Scope,
	params ListParams,
) ([]Workspace, int, error) {
	params.Normalize()

	conditions := []string{"TRUE"}
	var args []any

	if !scope.IsSuperAdmin() {
		conditions, args = scope.AppendFilter(conditions, args, "id")
	}

	if !params.IncludeInactive {
		conditions = append(conditions, "is_active = TRUE")
	}

	if params.Search != "" {
		args = append(args, "%"+core.EscapeLike(params.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM workspaces WHERE " + whereClause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count workspaces: %w", core.MapDBError(err))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM workspaces
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d`,
		workspaceColumns, whereClause, len(args)+1, len(args)+2)

	args = append(args, params.PageSize, params.Offset())

	var items []Workspace
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list workspaces: %w", core.MapDBError(err))
	}

	return items, total, nil
}

func (r *repository) WorkspaceStatus(ctx context.Context, id string) (bool, bool, error) {
	query := `SELECT is_active FROM workspaces WHERE id = $1`

	var active bool
	err := r.db.GetContext(ctx, &active, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("check workspace: %w", core.MapDBError(err))
	}

	return true, active, nil
}
