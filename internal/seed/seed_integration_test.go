// AngelaMos | 2026
// seed_integration_test.go

//go:build integration

package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/teamcomm/internal/schema"
	"github.com/carterperez-dev/teamcomm/internal/seed"
	"github.com/carterperez-dev/teamcomm/internal/testdb"
)

func TestRun_Idempotent(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	db := testdb.Start(t, ctx)
	report := schema.NewForDatabase(db.DB, testdb.Schema).Run(ctx, schema.TeamComm(testdb.Schema))
	require.Empty(t, report.Failures())

	first, err := seed.Run(ctx, db.DB, seed.Demo("changeme123"))
	require.NoError(t, err)
	assert.Equal(t, 5, first.Created)

	second, err := seed.Run(ctx, db.DB, seed.Demo("changeme123"))
	require.NoError(t, err)
	assert.Zero(t, second.Created)
	assert.Equal(t, first.Users, second.Users)

	var superAdminWorkspace *string
	err = db.DB.GetContext(ctx, &superAdminWorkspace,
		`SELECT workspace_id FROM users WHERE username = 'sys_admin'`)
	require.NoError(t, err)
	assert.Nil(t, superAdminWorkspace)
}

func TestRun_RejectsShortPassword(t *testing.T) {
	_, err := seed.Run(context.Background(), nil, seed.Demo("short"))
	assert.Error(t, err)
}
