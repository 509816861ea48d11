// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/teamcomm/internal/access"
	"github.com/carterperez-dev/teamcomm/internal/config"
	"github.com/carterperez-dev/teamcomm/internal/core"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserProvider interface {
	GetByUsername(ctx context.Context, username string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
}

type Service struct {
	repo       Repository
	users      UserProvider
	revoked    Revocations
	ttl        time.Duration
	purgeGrace time.Duration
	metrics    *core.Metrics
	now        func() time.Time
}

func NewService(
	repo Repository,
	users UserProvider,
	revoked Revocations,
	cfg config.SessionConfig,
	metrics *core.Metrics,
) *Service {
	return &Service{
		repo:       repo,
		users:      users,
		revoked:    revoked,
		ttl:        cfg.TTL,
		purgeGrace: cfg.PurgeGrace,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Login verifies the credentials and opens a new session. Unknown users,
// wrong passwords and deactivated accounts are indistinguishable to the
// caller.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
	userAgent, ipAddress string,
) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // same argon2 cost for unknown usernames
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			s.metrics.ObserveLogin("invalid")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(req.Password, &user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid || !user.IsActive {
		s.metrics.ObserveLogin("invalid")
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.users.UpdatePassword(ctx, user.ID, newHash)
	}

	token, digest, err := core.NewSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TokenHash: digest,
		ExpiresAt: now.Add(s.ttl),
		UserAgent: optional(userAgent),
		IPAddress: optional(ipAddress),
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		slog.WarnContext(ctx, "failed to record last login",
			"user_id", user.ID,
			"error", err,
		)
	} else {
		user.LastLogin = &now
	}

	s.metrics.ObserveLogin("success")

	return &LoginResult{User: user, Session: session, Token: token}, nil
}

// Logout moves the session to LoggedOut. Unknown and already logged-out
// tokens are accepted silently.
func (s *Service) Logout(ctx context.Context, token string) error {
	hash := core.HashToken(token)

	session, err := s.repo.FindByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("find session: %w", err)
	}

	if err := s.repo.Deactivate(ctx, session.ID); err != nil &&
		!errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("logout: %w", err)
	}

	s.remember(ctx, *session)
	return nil
}

// ValidateSession resolves a bearer token to the caller identity. It runs
// before every data operation; expiry is detected here, lazily.
func (s *Service) ValidateSession(
	ctx context.Context,
	token string,
) (*access.Identity, error) {
	if token == "" {
		return nil, core.UnauthorizedError("missing session token")
	}

	hash := core.HashToken(token)

	revoked, err := s.revoked.IsRevoked(ctx, hash)
	if err != nil {
		slog.WarnContext(ctx, "revocation lookup failed, using database",
			"error", err,
		)
	}
	if revoked {
		return nil, core.UnauthorizedError("session has been logged out")
	}

	session, err := s.repo.FindByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.UnauthorizedError("invalid session")
		}
		return nil, fmt.Errorf("validate session: %w", err)
	}

	switch session.StateAt(s.now()) {
	case StateLoggedOut:
		return nil, core.UnauthorizedError("session has been logged out")
	case StateExpired:
		return nil, core.SessionExpiredError()
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.UnauthorizedError("invalid session")
		}
		return nil, fmt.Errorf("validate session: %w", err)
	}

	if !user.IsActive {
		return nil, core.UnauthorizedError("account is disabled")
	}

	return &access.Identity{
		SessionID:   session.ID,
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		WorkspaceID: user.WorkspaceID,
	}, nil
}

func (s *Service) CurrentUser(ctx context.Context, token string) (*UserInfo, error) {
	identity, err := s.ValidateSession(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, identity.UserID)
}

func (s *Service) Sessions(ctx context.Context, token string) ([]SessionInfo, error) {
	identity, err := s.ValidateSession(ctx, token)
	if err != nil {
		return nil, err
	}

	sessions, err := s.repo.ListActiveForUser(ctx, identity.UserID, s.now())
	if err != nil {
		return nil, fmt.Errorf("get sessions: %w", err)
	}

	out := make([]SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, SessionInfo{
			ID:        sess.ID,
			Current:   sess.ID == identity.SessionID,
			UserAgent: deref(sess.UserAgent),
			IPAddress: deref(sess.IPAddress),
			CreatedAt: sess.CreatedAt,
			ExpiresAt: sess.ExpiresAt,
		})
	}

	return out, nil
}

// ChangePassword replaces the password and logs out every session of the
// user, including the current one.
func (s *Service) ChangePassword(
	ctx context.Context,
	token string,
	req ChangePasswordRequest,
) error {
	identity, err := s.ValidateSession(ctx, token)
	if err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	valid, _, err := core.VerifyPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return ErrInvalidCredentials
	}

	newHash, err := core.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return s.RevokeUserSessions(ctx, user.ID)
}

// RevokeUserSessions logs out every active session of a user.
func (s *Service) RevokeUserSessions(ctx context.Context, userID string) error {
	sessions, err := s.repo.DeactivateAllForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}

	for _, sess := range sessions {
		s.remember(ctx, sess)
	}

	return nil
}

// PurgeExpired deletes sessions that ended more than the configured grace
// period ago. It only runs on demand.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.purgeGrace)

	n, err := s.repo.DeleteStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "purged stale sessions",
		"deleted", n,
		"cutoff", cutoff,
	)

	return n, nil
}

func (s *Service) remember(ctx context.Context, session Session) {
	if err := s.revoked.Revoke(ctx, session.TokenHash, session.ExpiresAt); err != nil {
		slog.WarnContext(ctx, "failed to cache session revocation",
			"session_id", session.ID,
			"error", err,
		)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
