// AngelaMos | 2026
// reconciler_integration_test.go

//go:build integration

package schema_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/teamcomm/internal/schema"
	"github.com/carterperez-dev/teamcomm/internal/testdb"
)

func TestReconciler_Postgres(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	db := testdb.Start(t, ctx)
	r := schema.NewForDatabase(db.DB, testdb.Schema)
	plan := schema.TeamComm(testdb.Schema)

	first := r.Run(ctx, plan)
	require.Empty(t, first.Failures())
	require.Positive(t, first.Applied())

	second := r.Run(ctx, plan)
	assert.Zero(t, second.Applied())
	assert.Empty(t, second.Failures())
	assert.Empty(t, second.Statements())

	t.Run("adds missing ticket_number as nullable varchar", func(t *testing.T) {
		_, err := db.DB.ExecContext(ctx,
			`ALTER TABLE team_comm.deployments DROP COLUMN ticket_number`)
		require.NoError(t, err)

		report := r.Run(ctx, plan)
		require.Empty(t, report.Failures())
		assert.Equal(t, 1, report.Applied())

		var dataType string
		var maxLen sql.NullInt64
		var nullable string
		err = db.DB.QueryRowxContext(ctx, `
			SELECT data_type, character_maximum_length, is_nullable
			FROM information_schema.columns
			WHERE table_schema = $1 AND table_name = 'deployments'
			  AND column_name = 'ticket_number'`, testdb.Schema).
			Scan(&dataType, &maxLen, &nullable)
		require.NoError(t, err)

		assert.Equal(t, "character varying", dataType)
		assert.Equal(t, int64(50), maxLen.Int64)
		assert.Equal(t, "YES", nullable)
	})

	t.Run("check constraints reject unknown enum values", func(t *testing.T) {
		_, err := db.DB.ExecContext(ctx, `
			INSERT INTO workspaces (id, name) VALUES ('w1', 'Engineering')`)
		require.NoError(t, err)

		_, err = db.DB.ExecContext(ctx, `
			INSERT INTO announcements (id, workspace_id, title, content, priority)
			VALUES ('a1', 'w1', 'Sprint Planning', 'Monday', 'URGENT')`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chk_announcements_priority")
	})
}
