// AngelaMos | 2026
// service_test.go

package deployment

import (
	"context"
	"fmt"
	"sort"
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
	rows     map[string]*Deployment
	comments []Comment
	clock    time.Time
	calls    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		rows:  map[string]*Deployment{},
		clock: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
}

func (r *fakeRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *fakeRepo) Create(_ context.Context, d *Deployment) error {
	r.calls++
	d.CreatedAt = r.tick()
	d.UpdatedAt = d.CreatedAt
	cp := *d
	r.rows[d.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Deployment, error) {
	r.calls++
	d, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("get deployment: %w", core.ErrNotFound)
	}
	cp := *d
	return &cp, nil
}

func (r *fakeRepo) Update(_ context.Context, d *Deployment) error {
	r.calls++
	stored, ok := r.rows[d.ID]
	if !ok || stored.WorkspaceID != d.WorkspaceID {
		return fmt.Errorf("update deployment: %w", core.ErrNotFound)
	}
	d.UpdatedAt = r.tick()
	cp := *d
	r.rows[d.ID] = &cp
	return nil
}

func (r *fakeRepo) SetArchived(
	_ context.Context,
	id, workspaceID string,
	archived bool,
	actorID string,
) error {
	r.calls++
	stored, ok := r.rows[id]
	if !ok || stored.WorkspaceID != workspaceID {
		return fmt.Errorf("archive deployment: %w", core.ErrNotFound)
	}
	stored.IsArchived = archived
	stored.UpdatedBy = &actorID
	stored.UpdatedAt = r.tick()
	return nil
}

func (r *fakeRepo) List(
	_ context.Context,
	scope access.Scope,
	params ListParams,
) ([]Deployment, int, error) {
	r.calls++
	var out []Deployment
	for _, d := range r.rows {
		if ws, ok := scope.Filter(); ok && d.WorkspaceID != ws {
			continue
		}
		if d.IsArchived && !params.IncludeArchived {
			continue
		}
		if params.Environment != "" && d.Environment != params.Environment {
			continue
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DeploymentDateTime.After(out[j].DeploymentDateTime)
	})
	return out, len(out), nil
}

func (r *fakeRepo) AddComment(_ context.Context, c *Comment) error {
	r.calls++
	c.CreatedAt = r.tick()
	r.comments = append(r.comments, *c)
	return nil
}

func (r *fakeRepo) ListComments(_ context.Context, deploymentID string) ([]Comment, error) {
	r.calls++
	var out []Comment
	for _, c := range r.comments {
		if c.DeploymentID == deploymentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func setup() (*Service, *fakeRepo, *accesstest.Fixture) {
	fx := accesstest.NewFixture()
	repo := newFakeRepo()
	return NewService(repo, fx.Policy), repo, fx
}

func release(name string, at time.Time) CreateDeploymentRequest {
	return CreateDeploymentRequest{
		ReleaseName:        name,
		Version:            "1.0.0",
		Environment:        catalog.EnvironmentStaging,
		DeploymentDateTime: at,
	}
}

func strPtr(s string) *string { return &s }

func TestService_CreateWithoutTicketNumber(t *testing.T) {
	svc, repo, _ := setup()

	d, err := svc.Create(context.Background(), accesstest.Caller("jdoe"),
		release("api", time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	assert.Nil(t, d.TicketNumber)
	assert.Nil(t, repo.rows[d.ID].TicketNumber)
	assert.Equal(t, catalog.DeploymentPlanned, d.Status)
}

func TestService_TicketNumberNormalized(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup()

	req := release("api", time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC))
	req.TicketNumber = strPtr("  OPS-1432 ")
	d, err := svc.Create(ctx, accesstest.Caller("jdoe"), req)
	require.NoError(t, err)
	assert.Equal(t, "OPS-1432", *d.TicketNumber)

	cleared, err := svc.Update(ctx, accesstest.Caller("jdoe"), d.ID,
		UpdateDeploymentRequest{TicketNumber: strPtr(" ")})
	require.NoError(t, err)
	assert.Nil(t, cleared.TicketNumber)
}

func TestService_ListScopedAndOrdered(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"early", "late", "middle"} {
		offset := map[string]int{"early": 1, "middle": 5, "late": 9}[name]
		_, err := svc.Create(ctx, accesstest.Caller("jdoe"),
			release(name, base.AddDate(0, 0, offset)))
		require.NoError(t, err, i)
	}
	_, err := svc.Create(ctx, accesstest.Caller("msmith"), release("site", base))
	require.NoError(t, err)

	items, _, err := svc.List(ctx, accesstest.Caller("eng-user"), ListParams{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "late", items[0].ReleaseName)
	assert.Equal(t, "middle", items[1].ReleaseName)
	assert.Equal(t, "early", items[2].ReleaseName)

	all, total, err := svc.List(ctx, accesstest.Caller("sys_admin"), ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Len(t, all, 4)
}

func TestService_Comments(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setup()

	d, err := svc.Create(ctx, accesstest.Caller("jdoe"),
		release("api", time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, accesstest.Caller("jdoe"), d.ID,
		AddCommentRequest{Comment: "smoke tests green"})
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, accesstest.Caller("eng-user"), d.ID,
		AddCommentRequest{Comment: "  rolled to 50%  "})
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, accesstest.Caller("msmith"), d.ID,
		AddCommentRequest{Comment: "not mine"})
	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.Len(t, repo.comments, 2)

	_, err = svc.ListComments(ctx, accesstest.Caller("msmith"), d.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	comments, err := svc.ListComments(ctx, accesstest.Caller("sys_admin"), d.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "smoke tests green", comments[0].Comment)
	assert.Equal(t, "rolled to 50%", comments[1].Comment)
	assert.Equal(t, "u-eng", *comments[1].CreatedBy)
}

func TestService_ArchiveIdempotentAndIncludeArchived(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup()

	d, err := svc.Create(ctx, accesstest.Caller("msmith"),
		release("site", time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	first, err := svc.Archive(ctx, accesstest.Caller("msmith"), d.ID)
	require.NoError(t, err)
	second, err := svc.Archive(ctx, accesstest.Caller("msmith"), d.ID)
	require.NoError(t, err)
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt)
	assert.Equal(t, "u-msmith", *second.UpdatedBy)

	items, _, err := svc.List(ctx, accesstest.Caller("msmith"), ListParams{})
	require.NoError(t, err)
	assert.Empty(t, items)

	items, _, err = svc.List(ctx, accesstest.Caller("msmith"), ListParams{IncludeArchived: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsArchived)

	got, err := svc.Get(ctx, accesstest.Caller("msmith"), d.ID)
	require.NoError(t, err)
	assert.True(t, got.IsArchived)
}

func TestService_ExpiredSessionRunsNoQueries(t *testing.T) {
	ctx := context.Background()
	svc, repo, fx := setup()

	fx.Sessions.Expire("msmith")

	_, err := svc.Create(ctx, accesstest.Caller("msmith"),
		release("site", time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, core.ErrSessionExpired)

	_, err = svc.AddComment(ctx, accesstest.Caller("msmith"), "d-1",
		AddCommentRequest{Comment: "x"})
	assert.ErrorIs(t, err, core.ErrSessionExpired)

	_, err = svc.ListComments(ctx, accesstest.Caller("msmith"), "d-1")
	assert.ErrorIs(t, err, core.ErrSessionExpired)

	assert.Zero(t, repo.calls)
}
