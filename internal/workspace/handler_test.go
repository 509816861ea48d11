// AngelaMos | 2026
// handler_test.go

package workspace

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/teamcomm/internal/access/accesstest"
	"github.com/carterperez-dev/teamcomm/internal/middleware"
)

func newTestRouter() chi.Router {
	fx := accesstest.NewFixture()
	r := chi.NewRouter()
	NewHandler(NewService(newFakeRepo(), fx.Policy)).RegisterRoutes(r, middleware.Authenticator)
	return r
}

func TestHandler_ListIsScopedToCaller(t *testing.T) {
	r := newTestRouter()

	own := accesstest.Serve(r, http.MethodGet, "/workspaces", "jdoe", accesstest.WorkspaceMarketing, "")
	require.Equal(t, http.StatusOK, own.Code)
	items := accesstest.Decode[[]WorkspaceResponse](t, own)
	require.Len(t, items, 1)
	assert.Equal(t, "Engineering", items[0].Name)

	all := accesstest.Serve(r, http.MethodGet, "/workspaces", "sys_admin", "ALL", "")
	require.Equal(t, http.StatusOK, all.Code)
	assert.Len(t, accesstest.Decode[[]WorkspaceResponse](t, all), 2)
}

func TestHandler_Create(t *testing.T) {
	r := newTestRouter()

	created := accesstest.Serve(r, http.MethodPost, "/workspaces", "sys_admin", "", `{"name":"Support"}`)
	require.Equal(t, http.StatusCreated, created.Code)
	ws := accesstest.Decode[WorkspaceResponse](t, created)
	assert.Equal(t, "Support", ws.Name)
	assert.True(t, ws.IsActive)

	tests := []struct {
		name   string
		token  string
		body   string
		status int
	}{
		{"empty name", "sys_admin", `{"name":""}`, http.StatusBadRequest},
		{"duplicate name", "sys_admin", `{"name":"Engineering"}`, http.StatusConflict},
		{"admin cannot create", "jdoe", `{"name":"Sales"}`, http.StatusForbidden},
		{"anonymous", "", `{"name":"Sales"}`, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := accesstest.Serve(r, http.MethodPost, "/workspaces", tt.token, "", tt.body)
			assert.Equal(t, tt.status, resp.Code)
		})
	}
}
