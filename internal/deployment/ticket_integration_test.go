// AngelaMos | 2026
// ticket_integration_test.go

//go:build integration

package deployment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/teamcomm/internal/access"
	"github.com/carterperez-dev/teamcomm/internal/access/accesstest"
	"github.com/carterperez-dev/teamcomm/internal/catalog"
	"github.com/carterperez-dev/teamcomm/internal/deployment"
	"github.com/carterperez-dev/teamcomm/internal/schema"
	"github.com/carterperez-dev/teamcomm/internal/seed"
	"github.com/carterperez-dev/teamcomm/internal/testdb"
	"github.com/carterperez-dev/teamcomm/internal/workspace"
)

func TestScenario_TicketNumberAddedInPlace(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	db := testdb.Start(t, ctx)
	reconciler := schema.NewForDatabase(db.DB, testdb.Schema)
	plan := schema.TeamComm(testdb.Schema)

	require.Empty(t, reconciler.Run(ctx, plan).Failures())

	_, err := db.DB.ExecContext(ctx, `ALTER TABLE deployments DROP COLUMN ticket_number`)
	require.NoError(t, err)

	report := reconciler.Run(ctx, plan)
	require.Empty(t, report.Failures())
	assert.Equal(t, []string{
		`ALTER TABLE "team_comm"."deployments" ADD COLUMN "ticket_number" VARCHAR(50)`,
	}, report.Statements())

	seeded, err := seed.Run(ctx, db.DB, seed.Demo("changeme123"))
	require.NoError(t, err)

	engineering := seeded.Workspaces["Engineering"]
	sessions := accesstest.NewSessions()
	sessions.Add("jdoe", access.Identity{
		UserID:      seeded.Users["jdoe"],
		Username:    "jdoe",
		Role:        catalog.RoleAdmin,
		WorkspaceID: &engineering,
	})
	policy := access.NewPolicy(sessions, workspace.NewRepository(db.DB), nil)
	svc := deployment.NewService(deployment.NewRepository(db.DB), policy)

	d, err := svc.Create(ctx, accesstest.Caller("jdoe"), deployment.CreateDeploymentRequest{
		ReleaseName:        "payments-api",
		Version:            "2.4.0",
		Environment:        catalog.EnvironmentProduction,
		DeploymentDateTime: time.Date(2026, 3, 12, 22, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	stored, err := svc.Get(ctx, accesstest.Caller("jdoe"), d.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.TicketNumber)
	assert.False(t, stored.IsArchived)

	comment, err := svc.AddComment(ctx, accesstest.Caller("jdoe"), d.ID,
		deployment.AddCommentRequest{Comment: "go/no-go approved"})
	require.NoError(t, err)

	thread, err := svc.ListComments(ctx, accesstest.Caller("jdoe"), d.ID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, comment.ID, thread[0].ID)
	require.NotNil(t, thread[0].AuthorName)
	assert.Equal(t, "John Doe", *thread[0].AuthorName)
}
