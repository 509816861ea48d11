// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/teamcomm/internal/access"
	"github.com/carterperez-dev/teamcomm/internal/access/accesstest"
	"github.com/carterperez-dev/teamcomm/internal/catalog"
	"github.com/carterperez-dev/teamcomm/internal/core"
)

type fakeRepo struct {
	users map[string]*User
}

func strPtr(s string) *string { return &s }

func newFakeRepo() *fakeRepo {
	eng, mkt := accesstest.WorkspaceEngineering, accesstest.WorkspaceMarketing
	r := &fakeRepo{users: map[string]*User{}}
	for _, u := range []*User{
		{ID: "u-root", Username: "sys_admin", Role: catalog.RoleSuperAdmin, IsActive: true},
		{ID: "u-jdoe", Username: "jdoe", Role: catalog.RoleAdmin, WorkspaceID: &eng, IsActive: true},
		{ID: "u-eng", Username: "bwayne", Role: catalog.RoleUser, WorkspaceID: &eng, IsActive: true},
		{ID: "u-msmith", Username: "msmith", Role: catalog.RoleUser, WorkspaceID: &mkt, IsActive: true},
	} {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (r *fakeRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepo) Update(_ context.Context, u *User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.users[id].PasswordHash = hash
	return nil
}

func (r *fakeRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.users[id].LastLogin = &at
	return nil
}

func (r *fakeRepo) SetActive(_ context.Context, id string, active bool, _ string) error {
	r.users[id].IsActive = active
	return nil
}

func (r *fakeRepo) List(
	_ context.Context,
	scope access.Scope,
	params ListUsersParams,
) ([]User, int, error) {
	var out []User
	for _, u := range r.users {
		ws, restricted := scope.Filter()
		if restricted && u.Workspace() != ws {
			continue
		}
		if !params.IncludeInactive && !u.IsActive {
			continue
		}
		out = append(out, *u)
	}
	return out, len(out), nil
}

type fakeRevoker struct {
	revoked []string
}

func (f *fakeRevoker) RevokeUserSessions(_ context.Context, userID string) error {
	f.revoked = append(f.revoked, userID)
	return nil
}

func newTestService() (*Service, *fakeRepo, *fakeRevoker) {
	fx := accesstest.NewFixture()
	repo := newFakeRepo()
	revoker := &fakeRevoker{}
	return NewService(repo, fx.Policy, revoker), repo, revoker
}

func TestCheckRoleWorkspace(t *testing.T) {
	assert.NoError(t, CheckRoleWorkspace(catalog.RoleSuperAdmin, nil))
	assert.ErrorIs(t, CheckRoleWorkspace(catalog.RoleSuperAdmin, strPtr("ws")), core.ErrInvalidInput)
	assert.ErrorIs(t, CheckRoleWorkspace(catalog.RoleAdmin, nil), core.ErrInvalidInput)
	assert.ErrorIs(t, CheckRoleWorkspace(catalog.RoleUser, strPtr("")), core.ErrInvalidInput)
	assert.NoError(t, CheckRoleWorkspace(catalog.RoleUser, strPtr("ws")))
	assert.ErrorIs(t, CheckRoleWorkspace("OWNER", strPtr("ws")), core.ErrInvalidInput)
}

func TestService_List_IsWorkspaceScoped(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	mkt, _, err := svc.List(ctx, accesstest.Caller("msmith"), ListUsersParams{})
	require.NoError(t, err)
	require.Len(t, mkt, 1)
	assert.Equal(t, "msmith", mkt[0].Username)

	all, total, err := svc.List(ctx, accesstest.Caller("sys_admin"), ListUsersParams{})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Len(t, all, 4)

	eng, _, err := svc.List(ctx,
		accesstest.CallerIn("sys_admin", accesstest.WorkspaceEngineering), ListUsersParams{})
	require.NoError(t, err)
	assert.Len(t, eng, 2)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("admin creates a user in their own workspace", func(t *testing.T) {
		svc, _, _ := newTestService()
		u, err := svc.Create(ctx, accesstest.Caller("jdoe"), CreateUserRequest{
			Username: "ckent", Password: "password123", FullName: "Clark Kent",
			Role: catalog.RoleUser, WorkspaceID: strPtr(accesstest.WorkspaceMarketing),
		})
		require.NoError(t, err)
		assert.Equal(t, accesstest.WorkspaceEngineering, u.Workspace())
		assert.NotEqual(t, "password123", u.PasswordHash)
	})

	t.Run("admin cannot create admins", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.Create(ctx, accesstest.Caller("jdoe"), CreateUserRequest{
			Username: "boss", Password: "password123", FullName: "Boss", Role: catalog.RoleAdmin,
		})
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("user cannot create accounts", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.Create(ctx, accesstest.Caller("msmith"), CreateUserRequest{
			Username: "x", Password: "password123", FullName: "X", Role: catalog.RoleUser,
		})
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("super admin must name a workspace for admins", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.Create(ctx, accesstest.Caller("sys_admin"), CreateUserRequest{
			Username: "lead", Password: "password123", FullName: "Lead", Role: catalog.RoleAdmin,
		})
		assert.ErrorIs(t, err, core.ErrInvalidInput)

		u, err := svc.Create(ctx, accesstest.Caller("sys_admin"), CreateUserRequest{
			Username: "lead", Password: "password123", FullName: "Lead", Role: catalog.RoleAdmin,
			WorkspaceID: strPtr(accesstest.WorkspaceMarketing),
		})
		require.NoError(t, err)
		assert.Equal(t, accesstest.WorkspaceMarketing, u.Workspace())
	})

	t.Run("super admin accounts have no workspace", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.Create(ctx, accesstest.Caller("sys_admin"), CreateUserRequest{
			Username: "root2", Password: "password123", FullName: "Root", Role: catalog.RoleSuperAdmin,
			WorkspaceID: strPtr(accesstest.WorkspaceMarketing),
		})
		assert.ErrorIs(t, err, core.ErrInvalidInput)

		u, err := svc.Create(ctx, accesstest.Caller("sys_admin"), CreateUserRequest{
			Username: "root2", Password: "password123", FullName: "Root", Role: catalog.RoleSuperAdmin,
		})
		require.NoError(t, err)
		assert.Nil(t, u.WorkspaceID)
	})

	t.Run("duplicate username", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.Create(ctx, accesstest.Caller("jdoe"), CreateUserRequest{
			Username: "bwayne", Password: "password123", FullName: "Dup", Role: catalog.RoleUser,
		})
		assert.ErrorIs(t, err, core.ErrDuplicateKey)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("users edit their own profile", func(t *testing.T) {
		svc, _, _ := newTestService()
		u, err := svc.Update(ctx, accesstest.Caller("msmith"), "u-msmith",
			UpdateUserRequest{FullName: strPtr("Mary Smith")})
		require.NoError(t, err)
		assert.Equal(t, "Mary Smith", u.FullName)
	})

	t.Run("users cannot promote themselves", func(t *testing.T) {
		svc, repo, _ := newTestService()
		role := catalog.RoleAdmin
		_, err := svc.Update(ctx, accesstest.Caller("msmith"), "u-msmith",
			UpdateUserRequest{Role: &role})
		assert.ErrorIs(t, err, core.ErrForbidden)
		assert.Equal(t, catalog.RoleUser, repo.users["u-msmith"].Role)
	})

	t.Run("admin cannot edit another workspace", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.Update(ctx, accesstest.Caller("jdoe"), "u-msmith",
			UpdateUserRequest{FullName: strPtr("Hacked")})
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("promoting to super admin clears the workspace", func(t *testing.T) {
		svc, _, _ := newTestService()
		role := catalog.RoleSuperAdmin
		u, err := svc.Update(ctx, accesstest.Caller("sys_admin"), "u-jdoe",
			UpdateUserRequest{Role: &role})
		require.NoError(t, err)
		assert.Nil(t, u.WorkspaceID)
	})

	t.Run("moving to an unknown workspace fails", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.Update(ctx, accesstest.Caller("sys_admin"), "u-eng",
			UpdateUserRequest{WorkspaceID: strPtr("ws-gone")})
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})
}

func TestService_DeactivateRevokesSessions(t *testing.T) {
	ctx := context.Background()
	svc, repo, revoker := newTestService()

	u, err := svc.SetActive(ctx, accesstest.Caller("jdoe"), "u-eng", false)
	require.NoError(t, err)
	assert.False(t, u.IsActive)
	assert.False(t, repo.users["u-eng"].IsActive)
	assert.Equal(t, []string{"u-eng"}, revoker.revoked)

	_, err = svc.SetActive(ctx, accesstest.Caller("jdoe"), "u-jdoe", false)
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = svc.SetActive(ctx, accesstest.Caller("jdoe"), "u-msmith", false)
	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.True(t, repo.users["u-msmith"].IsActive)
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.Get(ctx, accesstest.Caller("msmith"), "u-eng")
	assert.ErrorIs(t, err, core.ErrNotFound)

	u, err := svc.Get(ctx, accesstest.Caller("msmith"), "u-msmith")
	require.NoError(t, err)
	assert.Equal(t, "msmith", u.Username)

	_, err = svc.Get(ctx, accesstest.Caller("jdoe"), "u-root")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
