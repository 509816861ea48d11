// AngelaMos | 2026
// scenario_integration_test.go

//go:build integration

package announcement_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/teamcomm/internal/access"
	"github.com/carterperez-dev/teamcomm/internal/announcement"
	"github.com/carterperez-dev/teamcomm/internal/auth"
	"github.com/carterperez-dev/teamcomm/internal/config"
	"github.com/carterperez-dev/teamcomm/internal/core"
	"github.com/carterperez-dev/teamcomm/internal/schema"
	"github.com/carterperez-dev/teamcomm/internal/seed"
	"github.com/carterperez-dev/teamcomm/internal/testdb"
	"github.com/carterperez-dev/teamcomm/internal/user"
	"github.com/carterperez-dev/teamcomm/internal/workspace"
)

const password = "changeme123"

func TestScenario_WorkspaceScopedAnnouncements(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	db := testdb.Start(t, ctx)
	rdb := testdb.StartRedis(t, ctx)

	report := schema.NewForDatabase(db.DB, testdb.Schema).Run(ctx, schema.TeamComm(testdb.Schema))
	require.Empty(t, report.Failures())

	seeded, err := seed.Run(ctx, db.DB, seed.Demo(password))
	require.NoError(t, err)
	engineering := seeded.Workspaces["Engineering"]

	wsRepo := workspace.NewRepository(db.DB)
	authSvc := auth.NewService(
		auth.NewRepository(db.DB),
		user.NewAccountProvider(user.NewRepository(db.DB)),
		auth.NewRedisRevocations(rdb.Client),
		config.SessionConfig{TTL: time.Hour, PurgeGrace: time.Hour},
		nil,
	)
	policy := access.NewPolicy(authSvc, wsRepo, nil)
	svc := announcement.NewService(announcement.NewRepository(db.DB), policy)

	login := func(username string) string {
		res, err := authSvc.Login(ctx, auth.LoginRequest{Username: username, Password: password},
			"integration-test", "127.0.0.1")
		require.NoError(t, err)
		return res.Token
	}

	jdoe := login("jdoe")
	msmith := login("msmith")
	root := login("sys_admin")

	all := func(token string) access.Caller {
		return access.Caller{Token: token, Selection: access.SelectAll()}
	}
	titles := func(items []announcement.Announcement) []string {
		out := make([]string, 0, len(items))
		for _, a := range items {
			out = append(out, a.Title)
		}
		return out
	}

	created, err := svc.Create(ctx, all(jdoe), announcement.CreateAnnouncementRequest{
		Title:   "Sprint Planning",
		Content: "Monday 10:00 in the big room",
	})
	require.NoError(t, err)
	assert.Equal(t, engineering, created.WorkspaceID)

	mkt, _, err := svc.List(ctx, all(msmith), announcement.ListParams{})
	require.NoError(t, err)
	assert.NotContains(t, titles(mkt), "Sprint Planning")

	everything, _, err := svc.List(ctx, all(root), announcement.ListParams{})
	require.NoError(t, err)
	assert.Contains(t, titles(everything), "Sprint Planning")

	t.Run("selected workspace behaves like a bound user", func(t *testing.T) {
		asAdmin, _, err := svc.List(ctx, all(jdoe), announcement.ListParams{})
		require.NoError(t, err)

		selected := access.Caller{Token: root, Selection: access.SelectWorkspace(engineering)}
		asRoot, _, err := svc.List(ctx, selected, announcement.ListParams{})
		require.NoError(t, err)

		assert.Equal(t, titles(asAdmin), titles(asRoot))
	})

	t.Run("cross-workspace update leaves the row unchanged", func(t *testing.T) {
		before, err := svc.Get(ctx, all(jdoe), created.ID)
		require.NoError(t, err)

		title := "Hijacked"
		_, err = svc.Update(ctx, all(msmith), created.ID,
			announcement.UpdateAnnouncementRequest{Title: &title})
		assert.ErrorIs(t, err, core.ErrForbidden)

		after, err := svc.Get(ctx, all(jdoe), created.ID)
		require.NoError(t, err)
		assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
		assert.Equal(t, "Sprint Planning", after.Title)
	})

	t.Run("archive is idempotent and hidden by default", func(t *testing.T) {
		first, err := svc.Archive(ctx, all(jdoe), created.ID)
		require.NoError(t, err)
		assert.True(t, first.IsArchived)

		second, err := svc.Archive(ctx, all(jdoe), created.ID)
		require.NoError(t, err)
		assert.Equal(t, first.UpdatedAt, second.UpdatedAt)

		listed, _, err := svc.List(ctx, all(jdoe), announcement.ListParams{})
		require.NoError(t, err)
		assert.NotContains(t, titles(listed), "Sprint Planning")

		archived, _, err := svc.List(ctx, all(jdoe), announcement.ListParams{IncludeArchived: true})
		require.NoError(t, err)
		assert.Contains(t, titles(archived), "Sprint Planning")
	})

	t.Run("logged out session is rejected before any query", func(t *testing.T) {
		require.NoError(t, authSvc.Logout(ctx, jdoe))

		_, _, err := svc.List(ctx, all(jdoe), announcement.ListParams{})
		require.Error(t, err)
		assert.True(t, access.IsAuthError(err))
	})
}
