// AngelaMos | 2026
// enum_test.go

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_WorkspaceRules(t *testing.T) {
	assert.True(t, RoleSuperAdmin.IsSuperAdmin())
	assert.False(t, RoleSuperAdmin.NeedsWorkspace())
	assert.True(t, RoleAdmin.NeedsWorkspace())
	assert.True(t, RoleUser.NeedsWorkspace())
	assert.True(t, RoleAdmin.CanAdminister())
	assert.False(t, RoleUser.CanAdminister())
	assert.False(t, Role("OWNER").Valid())
}

func TestEnum_Metadata(t *testing.T) {
	assert.Equal(t, "Rolled Back", DeploymentRolledBack.DisplayName())
	assert.Equal(t, "#F44336", PriorityCritical.Color())
	assert.Equal(t, "UNKNOWN", Priority("UNKNOWN").DisplayName())
	assert.Equal(t, "#9E9E9E", Priority("UNKNOWN").Color())
}

func TestEnum_SQLList(t *testing.T) {
	assert.Equal(t, "'DEV', 'TEST', 'STAGING', 'PRODUCTION'", Environments.SQLList())
	assert.Equal(t, "SUPER_ADMIN ADMIN USER", Roles.OneOf())
}

func TestAll_CoversEveryValueSet(t *testing.T) {
	names := make([]string, 0)
	for _, d := range All() {
		assert.NotEmpty(t, d.Options, d.Name)
		names = append(names, d.Name)
	}

	assert.ElementsMatch(t, []string{
		"user_role",
		"priority",
		"activity_type",
		"target_date_status",
		"environment",
		"deployment_status",
	}, names)
}

func TestNewValidator_CatalogTags(t *testing.T) {
	type req struct {
		Priority    Priority     `validate:"required,priority"`
		Environment *Environment `validate:"omitempty,environment"`
	}

	v := NewValidator()

	assert.NoError(t, v.Struct(req{Priority: PriorityHigh}))
	assert.Error(t, v.Struct(req{Priority: "URGENT"}))

	env := Environment("QA")
	assert.Error(t, v.Struct(req{Priority: PriorityLow, Environment: &env}))

	env = EnvironmentStaging
	assert.NoError(t, v.Struct(req{Priority: PriorityLow, Environment: &env}))
}

func TestNewValidator_Username(t *testing.T) {
	type req struct {
		Username string `validate:"username"`
	}

	v := NewValidator()

	assert.NoError(t, v.Struct(req{Username: "sys_admin"}))
	assert.NoError(t, v.Struct(req{Username: "j.doe-2"}))
	assert.Error(t, v.Struct(req{Username: "_root"}))
	assert.Error(t, v.Struct(req{Username: "john doe"}))
}
