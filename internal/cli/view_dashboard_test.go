package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akovalenko/fitterm/internal/api"
	"github.com/akovalenko/fitterm/internal/domain"
	"github.com/akovalenko/fitterm/internal/teatest"
	"github.com/akovalenko/fitterm/internal/testutil"
)

// startDashboard boots the TUI signed in, with the dashboard as the
// root view, and drains the initial load.
func startDashboard(t *testing.T, app *App, f *testFakes) *teatest.Driver {
	t.Helper()
	f.session.signIn("alice")
	d := teatest.New(t, newAppModel(app), teatest.WithSize(100, 30))
	d.DrainInit()
	return d
}

func activeDashboard(t *testing.T, d *teatest.Driver) *dashboardView {
	t.Helper()
	m, ok := d.Model.(appModel)
	require.True(t, ok)
	v, ok := (&m).activeView().(*dashboardView)
	require.True(t, ok)
	return v
}

func TestDashboardView_LoadsOnStartup(t *testing.T) {
	app, f := newTestApp(t)
	seedPlans(f, domain.WorkoutPlan{ID: "p1", Name: "Push Day"})

	d := startDashboard(t, app, f)

	assert.Equal(t, 1, f.plans.sweeps)
	assert.Len(t, f.plans.queries, 1)
	assert.Contains(t, d.View(), "Push Day")
}

func TestDashboardView_SweepRunsOnlyOnce(t *testing.T) {
	app, f := newTestApp(t)
	seedPlans(f, domain.WorkoutPlan{ID: "p1", Name: "Push Day"})

	d := startDashboard(t, app, f)
	d.PressKey('r')

	assert.Len(t, f.plans.queries, 2)
	assert.Equal(t, 1, f.plans.sweeps)
}

func TestDashboardView_FilterDebounce(t *testing.T) {
	app, f := newTestApp(t)
	seedPlans(f, domain.WorkoutPlan{ID: "p1", Name: "Push Day"})

	d := startDashboard(t, app, f)
	require.Len(t, f.plans.queries, 1)

	// A burst of edits schedules debounce ticks but issues no fetch.
	d.PressKey('/')
	d.Type("push")
	assert.Len(t, f.plans.queries, 1)

	v := activeDashboard(t, d)
	require.Equal(t, 4, v.filterSeq)

	// A stale tick (from an earlier keystroke) is ignored.
	d.Send(filterTimeoutMsg{seq: v.filterSeq - 1})
	assert.Len(t, f.plans.queries, 1)

	// The tick matching the latest edit triggers exactly one fetch.
	d.Send(filterTimeoutMsg{seq: v.filterSeq})
	require.Len(t, f.plans.queries, 2)
	assert.Equal(t, "push", f.plans.queries[1].Search)
	assert.Equal(t, 1, f.plans.queries[1].Page)
}

func TestDashboardView_BackspaceRestartsDebounce(t *testing.T) {
	app, f := newTestApp(t)
	seedPlans(f, domain.WorkoutPlan{ID: "p1", Name: "Push Day"})

	d := startDashboard(t, app, f)
	d.PressKey('/')
	d.Type("pu")
	d.PressBackspace()

	v := activeDashboard(t, d)
	require.Equal(t, 3, v.filterSeq)
	assert.Len(t, f.plans.queries, 1)

	d.Send(filterTimeoutMsg{seq: v.filterSeq})
	require.Len(t, f.plans.queries, 2)
	assert.Equal(t, "p", f.plans.queries[1].Search)
}

func TestDashboardView_TodayToggleLoadsImmediately(t *testing.T) {
	app, f := newTestApp(t)
	seedPlans(f, domain.WorkoutPlan{ID: "p1", Name: "Push Day"})

	d := startDashboard(t, app, f)
	d.PressKey('t')

	require.Len(t, f.plans.queries, 2)
	assert.True(t, f.plans.queries[1].TodayOnly)

	d.PressKey('t')
	require.Len(t, f.plans.queries, 3)
	assert.False(t, f.plans.queries[2].TodayOnly)
}

func TestDashboardView_DeleteConfirmFlow(t *testing.T) {
	app, f := newTestApp(t)
	seedPlans(f, domain.WorkoutPlan{ID: "p1", Name: "Push Day"})

	d := startDashboard(t, app, f)

	// Any key other than y cancels.
	d.PressKey('x')
	assert.Contains(t, d.View(), "Delete")
	d.PressKey('n')
	assert.Empty(t, f.plans.deleted)
	assert.Contains(t, d.View(), "Push Day")

	// y deletes server-side and splices locally, no reload.
	d.PressKey('x')
	d.PressKey('y')
	assert.Equal(t, []string{"p1"}, f.plans.deleted)
	assert.Len(t, f.plans.queries, 1)
	assert.Contains(t, d.View(), "No plans found")
}

func TestDashboardView_LoadMore(t *testing.T) {
	app, f := newTestApp(t)
	f.plans.pages = []*api.PlanPage{
		{Data: []domain.WorkoutPlan{{ID: "p1", Name: "Push Day"}}, TotalPages: 2},
		{Data: []domain.WorkoutPlan{{ID: "p2", Name: "Pull Day"}}, TotalPages: 2},
	}

	d := startDashboard(t, app, f)
	assert.Contains(t, d.View(), "more (m)")

	d.PressKey('m')
	require.Len(t, f.plans.queries, 2)
	assert.Equal(t, 2, f.plans.queries[1].Page)
	assert.Contains(t, d.View(), "Push Day")
	assert.Contains(t, d.View(), "Pull Day")

	// On the last page m is a no-op.
	d.PressKey('m')
	assert.Len(t, f.plans.queries, 2)
}

func TestDashboardView_PaginationAccumulates(t *testing.T) {
	app, f := newTestApp(t)
	f.plans.pages = []*api.PlanPage{
		{Data: testutil.NewPlans(6), TotalPages: 2},
		{Data: testutil.NewPlans(3), TotalPages: 2},
	}

	d := startDashboard(t, app, f)
	require.Len(t, activeDashboard(t, d).ctrl.Plans(), 6)

	d.PressKey('m')
	assert.Len(t, activeDashboard(t, d).ctrl.Plans(), 9)
	assert.False(t, activeDashboard(t, d).ctrl.HasMore())
}

func TestDashboardView_EnterOpensDetail(t *testing.T) {
	app, f := newTestApp(t)
	seedPlans(f, domain.WorkoutPlan{ID: "p1", Name: "Push Day"})
	f.plans.detail = &domain.PlanDetail{
		WorkoutPlan: domain.WorkoutPlan{ID: "p1", Name: "Push Day"},
		Exercises:   []domain.Exercise{{ID: "ex1", Name: "Bench Press", MuscleGroup: "Chest"}},
	}

	d := startDashboard(t, app, f)
	d.PressEnter()

	m := d.Model.(appModel)
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, ViewPlanDetail, (&m).activeView().ID())
	assert.Equal(t, "Push Day", m.state.ActivePlanName)
	require.Len(t, f.plans.exerciseQs, 1)
	assert.Contains(t, d.View(), "Bench Press")
}
