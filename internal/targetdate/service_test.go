// AngelaMos | 2026
// service_test.go

package targetdate

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
	rows  map[string]*TargetDate
	clock time.Time
	calls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		rows:  map[string]*TargetDate{},
		clock: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
}

func (r *fakeRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *fakeRepo) Create(_ context.Context, t *TargetDate) error {
	r.calls++
	t.CreatedAt = r.tick()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	r.rows[t.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*TargetDate, error) {
	r.calls++
	t, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("get target date: %w", core.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (r *fakeRepo) Update(_ context.Context, t *TargetDate) error {
	r.calls++
	stored, ok := r.rows[t.ID]
	if !ok || stored.WorkspaceID != t.WorkspaceID {
		return fmt.Errorf("update target date: %w", core.ErrNotFound)
	}
	t.UpdatedAt = r.tick()
	cp := *t
	r.rows[t.ID] = &cp
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
		return fmt.Errorf("archive target date: %w", core.ErrNotFound)
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
) ([]TargetDate, int, error) {
	r.calls++
	var out []TargetDate
	for _, t := range r.rows {
		if ws, ok := scope.Filter(); ok && t.WorkspaceID != ws {
			continue
		}
		if t.IsArchived && !params.IncludeArchived {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TargetDate.After(out[j].TargetDate) })
	return out, len(out), nil
}

type fakeAssignees map[string]string

func (f fakeAssignees) AssigneeWorkspace(_ context.Context, userID string) (string, error) {
	ws, ok := f[userID]
	if !ok {
		return "", core.ErrNotFound
	}
	return ws, nil
}

func setup() (*Service, *fakeRepo, *accesstest.Fixture) {
	fx := accesstest.NewFixture()
	repo := newFakeRepo()
	assignees := fakeAssignees{
		"u-jdoe":   accesstest.WorkspaceEngineering,
		"u-eng":    accesstest.WorkspaceEngineering,
		"u-msmith": accesstest.WorkspaceMarketing,
	}
	return NewService(repo, fx.Policy, assignees), repo, fx
}

func day(d int) time.Time {
	return time.Date(2026, 4, d, 12, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func TestService_CreateDefaults(t *testing.T) {
	svc, _, _ := setup()

	td, err := svc.Create(context.Background(), accesstest.Caller("eng-user"), CreateTargetDateRequest{
		Title:        "Design review",
		TargetDate:   day(10),
		ActivityType: catalog.ActivityReview,
	})
	require.NoError(t, err)
	assert.Equal(t, catalog.TargetPending, td.Status)
	assert.Equal(t, catalog.PriorityMedium, td.Priority)
	assert.Equal(t, accesstest.WorkspaceEngineering, td.WorkspaceID)
	assert.Equal(t, "u-eng", *td.CreatedBy)
}

func TestService_AssigneeMustShareWorkspace(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setup()

	_, err := svc.Create(ctx, accesstest.Caller("jdoe"), CreateTargetDateRequest{
		Title: "Launch", TargetDate: day(1), ActivityType: catalog.ActivityMilestone,
		AssignedTo: strPtr("u-msmith"),
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = svc.Create(ctx, accesstest.Caller("jdoe"), CreateTargetDateRequest{
		Title: "Launch", TargetDate: day(1), ActivityType: catalog.ActivityMilestone,
		AssignedTo: strPtr("u-ghost"),
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Empty(t, repo.rows)

	td, err := svc.Create(ctx, accesstest.Caller("jdoe"), CreateTargetDateRequest{
		Title: "Launch", TargetDate: day(1), ActivityType: catalog.ActivityMilestone,
		AssignedTo: strPtr("u-eng"),
	})
	require.NoError(t, err)

	cleared, err := svc.Update(ctx, accesstest.Caller("jdoe"), td.ID,
		UpdateTargetDateRequest{AssignedTo: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.AssignedTo)
}

func TestService_AnyStatusMayFollowAny(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup()

	td, err := svc.Create(ctx, accesstest.Caller("msmith"), CreateTargetDateRequest{
		Title: "Campaign", TargetDate: day(3), ActivityType: catalog.ActivityDeadline,
		Status: catalog.TargetCompleted,
	})
	require.NoError(t, err)

	for _, status := range []catalog.TargetDateStatus{
		catalog.TargetPending, catalog.TargetOverdue, catalog.TargetInProgress,
	} {
		updated, err := svc.Update(ctx, accesstest.Caller("msmith"), td.ID,
			UpdateTargetDateRequest{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestService_ListByTargetDateDescending(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup()

	for _, d := range []int{5, 20, 12} {
		_, err := svc.Create(ctx, accesstest.Caller("jdoe"), CreateTargetDateRequest{
			Title: fmt.Sprintf("day %d", d), TargetDate: day(d), ActivityType: catalog.ActivityEvent,
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, accesstest.Caller("msmith"), CreateTargetDateRequest{
		Title: "marketing", TargetDate: day(25), ActivityType: catalog.ActivityEvent,
	})
	require.NoError(t, err)

	items, total, err := svc.List(ctx, accesstest.Caller("jdoe"), ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 3)
	assert.Equal(t, "day 20", items[0].Title)
	assert.Equal(t, "day 12", items[1].Title)
	assert.Equal(t, "day 5", items[2].Title)
}

func TestService_CrossWorkspaceArchiveRejected(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setup()

	td, err := svc.Create(ctx, accesstest.Caller("jdoe"), CreateTargetDateRequest{
		Title: "Retro", TargetDate: day(7), ActivityType: catalog.ActivityMeeting,
	})
	require.NoError(t, err)
	before := repo.rows[td.ID].UpdatedAt

	_, err = svc.Archive(ctx, accesstest.Caller("msmith"), td.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.Get(ctx, accesstest.Caller("msmith"), td.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	assert.False(t, repo.rows[td.ID].IsArchived)
	assert.Equal(t, before, repo.rows[td.ID].UpdatedAt)

	archived, err := svc.Archive(ctx, accesstest.Caller("sys_admin"), td.ID)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)

	again, err := svc.Archive(ctx, accesstest.Caller("jdoe"), td.ID)
	require.NoError(t, err)
	assert.Equal(t, archived.UpdatedAt, again.UpdatedAt)
}

func TestService_UnknownSelectedWorkspace(t *testing.T) {
	svc, repo, _ := setup()

	_, _, err := svc.List(context.Background(),
		accesstest.CallerIn("sys_admin", "ws-gone"), ListParams{})
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Zero(t, repo.calls)
}

func TestTargetDate_PastDue(t *testing.T) {
	now := day(15)

	assert.True(t, (&TargetDate{TargetDate: day(10), Status: catalog.TargetPending}).PastDue(now))
	assert.False(t, (&TargetDate{TargetDate: day(10), Status: catalog.TargetCompleted}).PastDue(now))
	assert.False(t, (&TargetDate{TargetDate: day(20), Status: catalog.TargetInProgress}).PastDue(now))
}
