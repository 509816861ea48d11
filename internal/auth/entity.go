// AngelaMos | 2026
// entity.go

package auth

import (
	"time"

	"github.com/carterperez-dev/teamcomm/internal/catalog"
)

type State string

const (
	StateActive    State = "ACTIVE"
	StateExpired   State = "EXPIRED"
	StateLoggedOut State = "LOGGED_OUT"
)

// Session is one login. TokenHash is the SHA-256 of the bearer token; the
// token itself is never stored.
type Session struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	TokenHash string    `db:"session_token"`
	ExpiresAt time.Time `db:"expires_at"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UserAgent *string   `db:"user_agent"`
	IPAddress *string   `db:"ip_address"`
}

// StateAt derives the session state lazily. Both non-active states are
// terminal: logout wins over expiry, and neither is ever reverted.
func (s *Session) StateAt(now time.Time) State {
	if !s.IsActive {
		return StateLoggedOut
	}
	if now.After(s.ExpiresAt) {
		return StateExpired
	}
	return StateActive
}

// UserInfo is the slice of a user account the session layer needs.
type UserInfo struct {
	ID           string
	Username     string
	FullName     string
	Email        *string
	PasswordHash string
	Role         catalog.Role
	WorkspaceID  *string
	IsActive     bool
	LastLogin    *time.Time
}
