// AngelaMos | 2026
// seed.go

// Package seed creates the demo workspaces and accounts. Existing rows are
// left untouched, so running it twice is harmless.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/teamcomm/internal/catalog"
	"github.com/carterperez-dev/teamcomm/internal/core"
	"github.com/carterperez-dev/teamcomm/internal/user"
	"github.com/carterperez-dev/teamcomm/internal/workspace"
)

type Account struct {
	Username  string
	FullName  string
	Role      catalog.Role
	Workspace string
}

type Options struct {
	Workspaces []string
	Accounts   []Account
	Password   string
}

// Demo is the two-workspace setup: an admin in Engineering, a user in
// Marketing and one super administrator.
func Demo(password string) Options {
	return Options{
		Workspaces: []string{"Engineering", "Marketing"},
		Accounts: []Account{
			{Username: "sys_admin", FullName: "System Administrator", Role: catalog.RoleSuperAdmin},
			{Username: "jdoe", FullName: "John Doe", Role: catalog.RoleAdmin, Workspace: "Engineering"},
			{Username: "msmith", FullName: "Mary Smith", Role: catalog.RoleUser, Workspace: "Marketing"},
		},
		Password: password,
	}
}

type Result struct {
	Workspaces map[string]string
	Users      map[string]string
	Created    int
}

func Run(ctx context.Context, db *sqlx.DB, opts Options) (*Result, error) {
	if len(opts.Password) < core.MinPasswordLength {
		return nil, core.NewInvalidInput(
			fmt.Sprintf("seed password must be at least %d characters", core.MinPasswordLength))
	}

	hash, err := core.HashPassword(opts.Password)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	result := &Result{
		Workspaces: make(map[string]string),
		Users:      make(map[string]string),
	}

	err = core.InTx(ctx, db, func(tx *sqlx.Tx) error {
		workspaces := workspace.NewRepository(tx)
		users := user.NewRepository(tx)

		for _, name := range opts.Workspaces {
			id, created, err := ensureWorkspace(ctx, workspaces, name)
			if err != nil {
				return err
			}
			result.Workspaces[name] = id
			if created {
				result.Created++
			}
		}

		for _, a := range opts.Accounts {
			id, created, err := ensureUser(ctx, users, a, hash, result.Workspaces)
			if err != nil {
				return err
			}
			result.Users[a.Username] = id
			if created {
				result.Created++
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "seed complete",
		"workspaces", len(result.Workspaces),
		"users", len(result.Users),
		"created", result.Created,
	)

	return result, nil
}

func ensureWorkspace(
	ctx context.Context,
	repo workspace.Repository,
	name string,
) (string, bool, error) {
	existing, err := repo.GetByName(ctx, name)
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return "", false, err
	}

	ws := &workspace.Workspace{
		ID:       uuid.New().String(),
		Name:     name,
		IsActive: true,
	}
	if err := repo.Create(ctx, ws); err != nil {
		return "", false, err
	}

	return ws.ID, true, nil
}

func ensureUser(
	ctx context.Context,
	repo user.Repository,
	a Account,
	passwordHash string,
	workspaces map[string]string,
) (string, bool, error) {
	existing, err := repo.GetByUsername(ctx, a.Username)
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return "", false, err
	}

	var workspaceID *string
	if a.Workspace != "" {
		id, ok := workspaces[a.Workspace]
		if !ok {
			return "", false, fmt.Errorf("seed user %s: unknown workspace %q", a.Username, a.Workspace)
		}
		workspaceID = &id
	}

	if err := user.CheckRoleWorkspace(a.Role, workspaceID); err != nil {
		return "", false, fmt.Errorf("seed user %s: %w", a.Username, err)
	}

	u := &user.User{
		ID:           uuid.New().String(),
		Username:     a.Username,
		FullName:     a.FullName,
		PasswordHash: passwordHash,
		Role:         a.Role,
		WorkspaceID:  workspaceID,
		IsActive:     true,
	}
	if err := repo.Create(ctx, u); err != nil {
		return "", false, err
	}

	return u.ID, true, nil
}
