// AngelaMos | 2026
// teamcomm.go

package schema

import (
	"fmt"

	"github.com/carterperez-dev/teamcomm/internal/catalog"
)

const (
	TableWorkspaces         = "workspaces"
	TableUsers              = "users"
	TableSessions           = "user_sessions"
	TableAnnouncements      = "announcements"
	TableTargetDates        = "target_dates"
	TableDeployments        = "deployments"
	TableDeploymentComments = "deployment_comments"
)

// TeamComm returns the expected shape of the team communication schema.
// Columns listed under Columns were introduced after the first release and
// are added in place on older databases.
func TeamComm(schema string) Plan {
	q := func(table string) string { return qualify(schema, table) }

	index := func(table, name, columns string) Index {
		return Index{
			Name:  name,
			Table: table,
			DDL: fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
				ident(name), q(table), columns),
		}
	}

	return Plan{
		Schema: schema,
		Tables: []Table{
			{
				Name: TableWorkspaces,
				DDL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id          VARCHAR(36) PRIMARY KEY,
	name        VARCHAR(100) NOT NULL UNIQUE,
	description TEXT,
	is_active   BOOLEAN NOT NULL DEFAULT TRUE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	created_by  VARCHAR(36),
	updated_by  VARCHAR(36)
)`, q(TableWorkspaces)),
			},
			{
				Name: TableUsers,
				DDL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id            VARCHAR(36) PRIMARY KEY,
	username      VARCHAR(50) NOT NULL UNIQUE,
	full_name     VARCHAR(100) NOT NULL,
	email         VARCHAR(255),
	password_hash VARCHAR(255) NOT NULL,
	role          VARCHAR(20) NOT NULL
		CONSTRAINT chk_users_role CHECK (role IN (%s)),
	workspace_id  VARCHAR(36) REFERENCES %s (id),
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	created_by    VARCHAR(36) REFERENCES %s (id),
	updated_by    VARCHAR(36) REFERENCES %s (id)
)`, q(TableUsers), catalog.Roles.SQLList(), q(TableWorkspaces),
					q(TableUsers), q(TableUsers)),
				Indexes: []Index{
					index(TableUsers, "idx_users_workspace_id", "workspace_id"),
				},
			},
			{
				Name: TableSessions,
				DDL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id            VARCHAR(36) PRIMARY KEY,
	user_id       VARCHAR(36) NOT NULL REFERENCES %s (id),
	session_token VARCHAR(128) NOT NULL UNIQUE,
	expires_at    TIMESTAMPTZ NOT NULL,
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`, q(TableSessions), q(TableUsers)),
				Indexes: []Index{
					index(TableSessions, "idx_user_sessions_user_id", "user_id"),
					index(TableSessions, "idx_user_sessions_expires_at", "expires_at"),
				},
			},
			{
				Name: TableAnnouncements,
				DDL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id           VARCHAR(36) PRIMARY KEY,
	workspace_id VARCHAR(36) NOT NULL REFERENCES %s (id),
	title        VARCHAR(200) NOT NULL,
	content      TEXT NOT NULL,
	priority     VARCHAR(20) NOT NULL DEFAULT 'MEDIUM'
		CONSTRAINT chk_announcements_priority CHECK (priority IN (%s)),
	is_active    BOOLEAN NOT NULL DEFAULT TRUE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	created_by   VARCHAR(36) REFERENCES %s (id),
	updated_by   VARCHAR(36) REFERENCES %s (id)
)`, q(TableAnnouncements), q(TableWorkspaces), catalog.Priorities.SQLList(),
					q(TableUsers), q(TableUsers)),
				Indexes: []Index{
					index(TableAnnouncements, "idx_announcements_workspace_id", "workspace_id"),
					index(TableAnnouncements, "idx_announcements_created_at", "created_at DESC"),
				},
			},
			{
				Name: TableTargetDates,
				DDL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id            VARCHAR(36) PRIMARY KEY,
	workspace_id  VARCHAR(36) NOT NULL REFERENCES %s (id),
	title         VARCHAR(200) NOT NULL,
	description   TEXT,
	target_date   TIMESTAMPTZ NOT NULL,
	activity_type VARCHAR(20) NOT NULL
		CONSTRAINT chk_target_dates_activity_type CHECK (activity_type IN (%s)),
	status        VARCHAR(20) NOT NULL DEFAULT 'PENDING'
		CONSTRAINT chk_target_dates_status CHECK (status IN (%s)),
	priority      VARCHAR(20) NOT NULL DEFAULT 'MEDIUM'
		CONSTRAINT chk_target_dates_priority CHECK (priority IN (%s)),
	assigned_to   VARCHAR(36) REFERENCES %s (id),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	created_by    VARCHAR(36) REFERENCES %s (id),
	updated_by    VARCHAR(36) REFERENCES %s (id)
)`, q(TableTargetDates), q(TableWorkspaces),
					catalog.ActivityTypes.SQLList(),
					catalog.TargetDateStatuses.SQLList(),
					catalog.Priorities.SQLList(),
					q(TableUsers), q(TableUsers), q(TableUsers)),
				Indexes: []Index{
					index(TableTargetDates, "idx_target_dates_workspace_id", "workspace_id"),
					index(TableTargetDates, "idx_target_dates_target_date", "target_date DESC"),
				},
			},
			{
				Name: TableDeployments,
				DDL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id                  VARCHAR(36) PRIMARY KEY,
	workspace_id        VARCHAR(36) NOT NULL REFERENCES %s (id),
	release_name        VARCHAR(200) NOT NULL,
	version             VARCHAR(50) NOT NULL,
	environment         VARCHAR(20) NOT NULL
		CONSTRAINT chk_deployments_environment CHECK (environment IN (%s)),
	status              VARCHAR(20) NOT NULL DEFAULT 'PLANNED'
		CONSTRAINT chk_deployments_status CHECK (status IN (%s)),
	deployment_datetime TIMESTAMPTZ NOT NULL,
	description         TEXT,
	release_notes       TEXT,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	created_by          VARCHAR(36) REFERENCES %s (id),
	updated_by          VARCHAR(36) REFERENCES %s (id)
)`, q(TableDeployments), q(TableWorkspaces),
					catalog.Environments.SQLList(),
					catalog.DeploymentStatuses.SQLList(),
					q(TableUsers), q(TableUsers)),
				Indexes: []Index{
					index(TableDeployments, "idx_deployments_workspace_id", "workspace_id"),
					index(TableDeployments, "idx_deployments_datetime", "deployment_datetime DESC"),
				},
			},
			{
				Name: TableDeploymentComments,
				DDL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id            VARCHAR(36) PRIMARY KEY,
	deployment_id VARCHAR(36) NOT NULL REFERENCES %s (id),
	comment       TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	created_by    VARCHAR(36) REFERENCES %s (id)
)`, q(TableDeploymentComments), q(TableDeployments), q(TableUsers)),
				Indexes: []Index{
					index(TableDeploymentComments,
						"idx_deployment_comments_deployment_id", "deployment_id, created_at"),
				},
			},
		},
		Columns: []Column{
			{Table: TableUsers, Name: "last_login", Type: "TIMESTAMPTZ"},
			{Table: TableSessions, Name: "user_agent", Type: "TEXT"},
			{Table: TableSessions, Name: "ip_address", Type: "VARCHAR(45)"},
			{Table: TableAnnouncements, Name: "expires_at", Type: "TIMESTAMPTZ"},
			{
				Table:   TableAnnouncements,
				Name:    "is_archived",
				Type:    "BOOLEAN NOT NULL",
				Default: "FALSE",
				Index:   true,
			},
			{
				Table:   TableTargetDates,
				Name:    "is_archived",
				Type:    "BOOLEAN NOT NULL",
				Default: "FALSE",
				Index:   true,
			},
			{
				Table:   TableDeployments,
				Name:    "is_archived",
				Type:    "BOOLEAN NOT NULL",
				Default: "FALSE",
				Index:   true,
			},
			{Table: TableDeployments, Name: "ticket_number", Type: "VARCHAR(50)"},
		},
		Constraints: []Constraint{
			{
				Table: TableWorkspaces,
				Name:  "fk_workspaces_created_by",
				DDL: fmt.Sprintf(
					"ALTER TABLE %s ADD CONSTRAINT fk_workspaces_created_by FOREIGN KEY (created_by) REFERENCES %s (id)",
					q(TableWorkspaces), q(TableUsers)),
			},
			{
				Table: TableWorkspaces,
				Name:  "fk_workspaces_updated_by",
				DDL: fmt.Sprintf(
					"ALTER TABLE %s ADD CONSTRAINT fk_workspaces_updated_by FOREIGN KEY (updated_by) REFERENCES %s (id)",
					q(TableWorkspaces), q(TableUsers)),
			},
			{
				Table: TableUsers,
				Name:  "chk_users_role_workspace",
				DDL: fmt.Sprintf(
					"ALTER TABLE %s ADD CONSTRAINT chk_users_role_workspace CHECK "+
						"((role = '%s' AND workspace_id IS NULL) OR (role <> '%s' AND workspace_id IS NOT NULL))",
					q(TableUsers), catalog.RoleSuperAdmin, catalog.RoleSuperAdmin),
			},
		},
	}
}
