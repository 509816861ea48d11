// AngelaMos | 2026
// provider.go

package user

import (
	"context"
	"fmt"
	"time"

	"github.com/carterperez-dev/teamcomm/internal/auth"
	"github.com/carterperez-dev/teamcomm/internal/core"
)

// AccountProvider exposes user rows to the session layer without going
// through the workspace policy, which itself depends on sessions.
type AccountProvider struct {
	repo Repository
}

func NewAccountProvider(repo Repository) *AccountProvider {
	return &AccountProvider{repo: repo}
}

func (p *AccountProvider) GetByUsername(
	ctx context.Context,
	username string,
) (*auth.UserInfo, error) {
	u, err := p.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return toUserInfo(u), nil
}

func (p *AccountProvider) GetByID(ctx context.Context, id string) (*auth.UserInfo, error) {
	u, err := p.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserInfo(u), nil
}

func (p *AccountProvider) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return p.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (p *AccountProvider) TouchLastLogin(
	ctx context.Context,
	userID string,
	at time.Time,
) error {
	return p.repo.TouchLastLogin(ctx, userID, at)
}

// AssigneeWorkspace returns the workspace of an active account, or not found
// when the account is missing or deactivated.
func (p *AccountProvider) AssigneeWorkspace(ctx context.Context, userID string) (string, error) {
	u, err := p.repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !u.IsActive {
		return "", fmt.Errorf("assignee %s: %w", userID, core.ErrNotFound)
	}
	return u.Workspace(), nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Username:     u.Username,
		FullName:     u.FullName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		WorkspaceID:  u.WorkspaceID,
		IsActive:     u.IsActive,
		LastLogin:    u.LastLogin,
	}
}

var _ auth.UserProvider = (*AccountProvider)(nil)
