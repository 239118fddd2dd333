package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akovalenko/fitterm/internal/domain"
	"github.com/akovalenko/fitterm/internal/teatest"
)

func activeViewID(d *teatest.Driver) ViewID {
	m := d.Model.(appModel)
	return (&m).activeView().ID()
}

func TestLoginView_SignInFlow(t *testing.T) {
	app, f := newTestApp(t)
	seedPlans(f, domain.WorkoutPlan{ID: "p1", Name: "Push Day"})

	d := teatest.New(t, newAppModel(app), teatest.WithSize(100, 30))
	d.DrainInit()
	require.Equal(t, ViewLogin, activeViewID(d))

	// Enter advances through the form's fields; the last one submits.
	d.Type("alice")
	d.PressEnter()
	d.Type("hunter2")
	d.PressEnter()

	require.Len(t, f.session.logins, 1)
	assert.Equal(t, "alice", f.session.logins[0].Username)
	assert.Equal(t, "hunter2", f.session.logins[0].Password)

	// Successful login swaps to the dashboard, which loads.
	assert.Equal(t, ViewDashboard, activeViewID(d))
	assert.Len(t, f.plans.queries, 1)
	assert.Contains(t, d.View(), "Push Day")
}

func TestLoginView_FailureStaysOnLogin(t *testing.T) {
	app, f := newTestApp(t)
	f.session.loginErr = assert.AnError

	d := teatest.New(t, newAppModel(app), teatest.WithSize(100, 30))
	d.DrainInit()

	d.Type("alice")
	d.PressEnter()
	d.Type("wrong")
	d.PressEnter()

	require.Len(t, f.session.logins, 1)
	assert.Equal(t, ViewLogin, activeViewID(d))
	assert.Empty(t, f.plans.queries)
}
