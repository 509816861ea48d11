// AngelaMos | 2026
// repository.go

package announcement

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
	Create(ctx context.Context, a *Announcement) error
	GetByID(ctx context.Context, id string) (*Announcement, error)
	Update(ctx context.Context, a *Announcement) error
	SetArchived(ctx context.Context, id, workspaceID string, archived bool, actorID string) error
	List(ctx context.Context, scope access.Scope, params ListParams) ([]Announcement, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const announcementColumns = `id, workspace_id, title, content, priority, is_active,
	is_archived, expires_at, created_at, updated_at, created_by, updated_by`

func (r *repository) Create(ctx context.Context, a *Announcement) error {
	query := `
		INSERT INTO announcements (
			id, workspace_id, title, content, priority, is_active,
			expires_at, created_by, updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING is_archived, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		a.ID,
		a.WorkspaceID,
		a.Title,
		a.Content,
		a.Priority,
		a.IsActive,
		a.ExpiresAt,
		a.CreatedBy,
	).Scan(&a.IsArchived, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create announcement: %w", core.MapDBError(err))
	}

	a.UpdatedBy = a.CreatedBy
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = $1`

	var a Announcement
	err := r.db.GetContext(ctx, &a, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get announcement: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get announcement: %w", core.MapDBError(err))
	}

	return &a, nil
}

// Update overwrites the editable fields. The statement is pinned to the
// workspace the row was verified against, so a row that moved is not
// touched.
func (r *repository) Update(ctx context.Context, a *Announcement) error {
	query := `
		UPDATE announcements
		SET title = $3, content = $4, priority = $5, is_active = $6,
			expires_at = $7, updated_by = $8, updated_at = NOW()
		WHERE id = $1 AND workspace_id = $2
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &a.UpdatedAt, query,
		a.ID,
		a.WorkspaceID,
		a.Title,
		a.Content,
		a.Priority,
		a.IsActive,
		a.ExpiresAt,
		a.UpdatedBy,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update announcement: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update announcement: %w", core.MapDBError(err))
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
		UPDATE announcements
		SET is_archived = $3, updated_by = $4, updated_at = NOW()
		WHERE id = $1 AND workspace_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, workspaceID, archived, actorID)
	if err != nil {
		return fmt.Errorf("archive announcement: %w", core.MapDBError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("archive announcement: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("archive announcement: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	scope access.Scope,
	params ListParams,
) ([]Announcement, int, error) {
	params.Normalize()

	conditions := []string{"TRUE"}
	var args []any

	conditions, args = scope.AppendFilter(conditions, args, "workspace_id")

	if !params.IncludeArchived {
		conditions = append(conditions, "is_archived = FALSE")
	}

	if params.ActiveOnly {
		conditions = append(conditions,
			"is_active = TRUE", "(expires_at IS NULL OR expires_at > NOW())")
	}

	if params.Priority != "" {
		args = append(args, params.Priority)
		conditions = append(conditions, fmt.Sprintf("priority = $%d", len(args)))
	}

	if params.Search != "" {
		args = append(args, "%"+core.EscapeLike(params.Search)+"%")
		conditions = append(conditions,
			fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", len(args), len(args)))
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM announcements WHERE " + whereClause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count announcements: %w", core.MapDBError(err))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM announcements
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		announcementColumns, whereClause, len(args)+1, len(args)+2)

	args = append(args, params.PageSize, params.Offset())

	var items []Announcement
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list announcements: %w", core.MapDBError(err))
	}

	return items, total, nil
}
