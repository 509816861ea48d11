// AngelaMos | 2026
// handler_test.go

package targetdate

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
	svc, _, _ := setup()
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, middleware.Authenticator)
	return r
}

func TestHandler_CreateAndListBySelectedWorkspace(t *testing.T) {
	r := newTestRouter()

	eng := accesstest.Serve(r, http.MethodPost, "/target-dates", "jdoe", "",
		`{"title":"Beta freeze","target_date":"2026-04-10T12:00:00Z","activity_type":"MILESTONE"}`)
	require.Equal(t, http.StatusCreated, eng.Code)
	created := accesstest.Decode[TargetDateResponse](t, eng)
	assert.Equal(t, accesstest.WorkspaceEngineering, created.WorkspaceID)

	mkt := accesstest.Serve(r, http.MethodPost, "/target-dates", "sys_admin", accesstest.WorkspaceMarketing,
		`{"title":"Press day","target_date":"2026-04-12T09:00:00Z","activity_type":"EVENT"}`)
	require.Equal(t, http.StatusCreated, mkt.Code)
	assert.Equal(t, accesstest.WorkspaceMarketing, accesstest.Decode[TargetDateResponse](t, mkt).WorkspaceID)

	selected := accesstest.Serve(r, http.MethodGet, "/target-dates", "sys_admin",
		accesstest.WorkspaceEngineering, "")
	require.Equal(t, http.StatusOK, selected.Code)
	items := accesstest.Decode[[]TargetDateResponse](t, selected)
	require.Len(t, items, 1)
	assert.Equal(t, "Beta freeze", items[0].Title)

	msmith := accesstest.Serve(r, http.MethodGet, "/target-dates", "msmith", "ALL", "")
	require.Equal(t, http.StatusOK, msmith.Code)
	items = accesstest.Decode[[]TargetDateResponse](t, msmith)
	require.Len(t, items, 1)
	assert.Equal(t, "Press day", items[0].Title)
}

func TestHandler_CreateRejectsInvalidBody(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"target_date":"2026-04-10T12:00:00Z","activity_type":"MILESTONE"}`},
		{"unknown activity type", `{"title":"t","target_date":"2026-04-10T12:00:00Z","activity_type":"PARTY"}`},
		{"bad status", `{"title":"t","target_date":"2026-04-10T12:00:00Z","activity_type":"REVIEW","status":"DONE"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := accesstest.Serve(r, http.MethodPost, "/target-dates", "jdoe", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.Code)
		})
	}

	badRange := accesstest.Serve(r, http.MethodGet, "/target-dates?from=yesterday", "jdoe", "", "")
	assert.Equal(t, http.StatusBadRequest, badRange.Code)
}
