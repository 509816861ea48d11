// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/teamcomm/internal/core"
)

type Repository interface {
	Create(ctx context.Context, session *Session) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	FindByID(ctx context.Context, id string) (*Session, error)
	Deactivate(ctx context.Context, id string) error
	DeactivateAllForUser(ctx context.Context, userID string) ([]Session, error)
	ListActiveForUser(
		ctx context.Context,
		userID string,
		now time.Time,
	) ([]Session, error)
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const sessionColumns = `id, user_id, session_token, expires_at, is_active,
	created_at, user_agent, ip_address`

func (r *repository) Create(ctx context.Context, session *Session) error {
	query := `
		INSERT INTO user_sessions (
			id, user_id, session_token, expires_at, is_active,
			user_agent, ip_address
		) VALUES (
			$1, $2, $3, $4, TRUE, $5, $6
		)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &session.CreatedAt, query,
		session.ID,
		session.UserID,
		session.TokenHash,
		session.ExpiresAt,
		session.UserAgent,
		session.IPAddress,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", core.MapDBError(err))
	}

	session.IsActive = true
	return nil
}

func (r *repository) FindByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM user_sessions
		WHERE session_token = $1`

	var session Session
	err := r.db.GetContext(ctx, &session, query, tokenHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find session: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", core.MapDBError(err))
	}

	return &session, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM user_sessions
		WHERE id = $1`

	var session Session
	err := r.db.GetContext(ctx, &session, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find session: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", core.MapDBError(err))
	}

	return &session, nil
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	query := `
		UPDATE user_sessions
		SET is_active = FALSE
		WHERE id = $1 AND is_active = TRUE`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate session: %w", core.MapDBError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivate session: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("deactivate session: %w", core.ErrNotFound)
	}

	return nil
}

// DeactivateAllForUser logs out every active session of the user and returns
// the rows it changed.
func (r *repository) DeactivateAllForUser(
	ctx context.Context,
	userID string,
) ([]Session, error) {
	query := `
		UPDATE user_sessions
		SET is_active = FALSE
		WHERE user_id = $1 AND is_active = TRUE
		RETURNING ` + sessionColumns

	var sessions []Session
	if err := r.db.SelectContext(ctx, &sessions, query, userID); err != nil {
		return nil, fmt.Errorf("deactivate user sessions: %w", core.MapDBError(err))
	}

	return sessions, nil
}

func (r *repository) ListActiveForUser(
	ctx context.Context,
	userID string,
	now time.Time,
) ([]Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM user_sessions
		WHERE user_id = $1
			AND is_active = TRUE
			AND expires_at > $2
		ORDER BY created_at DESC`

	var sessions []Session
	if err := r.db.SelectContext(ctx, &sessions, query, userID, now); err != nil {
		return nil, fmt.Errorf("list sessions: %w", core.MapDBError(err))
	}

	return sessions, nil
}

// DeleteStale removes sessions that expired, or were logged out, before
// cutoff.
func (r *repository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM user_sessions
		WHERE expires_at < $1
			OR (is_active = FALSE AND created_at < $1)`

	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete stale sessions: %w", core.MapDBError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete stale sessions: %w", err)
	}

	return rows, nil
}
