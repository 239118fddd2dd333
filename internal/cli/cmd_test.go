package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akovalenko/fitterm/internal/api"
	"github.com/akovalenko/fitterm/internal/domain"
)

// executeCmd runs a cobra command against a test App. Output goes
// through cobra's writers; commands that print with fmt are asserted
// via the fakes' recorded calls instead.
func executeCmd(t *testing.T, app *App, args ...string) error {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	return root.Execute()
}

func seedPlans(f *testFakes, plans ...domain.WorkoutPlan) {
	f.plans.pages = []*api.PlanPage{{Data: plans, TotalPages: 1}}
}

func TestRootCmd_BootstrapsSessionOnce(t *testing.T) {
	app, f := newTestApp(t)
	f.session.signIn("alice")

	require.NoError(t, executeCmd(t, app, "whoami"))
	assert.Equal(t, 1, f.session.bootstraps)
}

func TestLoginCmd_SkipsWhenAlreadySignedIn(t *testing.T) {
	app, f := newTestApp(t)
	f.session.signIn("alice")

	require.NoError(t, executeCmd(t, app, "login", "--username", "bob", "--password", "pw"))
	assert.Empty(t, f.session.logins)
}

func TestLoginCmd_SignsIn(t *testing.T) {
	app, f := newTestApp(t)

	require.NoError(t, executeCmd(t, app, "login", "--username", "alice", "--password", "pw"))
	require.Len(t, f.session.logins, 1)
	assert.Equal(t, "alice", f.session.logins[0].Username)
	assert.True(t, f.session.LoggedIn())
}

func TestRegisterCmd_ForwardsFields(t *testing.T) {
	app, f := newTestApp(t)

	require.NoError(t, executeCmd(t, app, "register",
		"--username", "alice", "--password", "pw", "--name", "Alice A", "--email", "a@example.com"))
	require.Len(t, f.account.registered, 1)
	assert.Equal(t, api.RegisterRequest{
		Username: "alice",
		Password: "pw",
		FullName: "Alice A",
		Email:    "a@example.com",
	}, f.account.registered[0])
}

// --- plan resolution ---

func TestResolvePlanID(t *testing.T) {
	app, f := newTestApp(t)
	seedPlans(f,
		domain.WorkoutPlan{ID: "abc12345", Name: "Push Day"},
		domain.WorkoutPlan{ID: "abd99999", Name: "Pull Day"},
	)
	ctx := context.Background()

	t.Run("exact id", func(t *testing.T) {
		id, err := resolvePlanID(ctx, app, "abc12345")
		require.NoError(t, err)
		assert.Equal(t, "abc12345", id)
	})

	t.Run("case-insensitive name", func(t *testing.T) {
		id, err := resolvePlanID(ctx, app, "push day")
		require.NoError(t, err)
		assert.Equal(t, "abc12345", id)
	})

	t.Run("unique prefix", func(t *testing.T) {
		id, err := resolvePlanID(ctx, app, "abc")
		require.NoError(t, err)
		assert.Equal(t, "abc12345", id)
	})

	t.Run("ambiguous prefix", func(t *testing.T) {
		_, err := resolvePlanID(ctx, app, "ab")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ambiguous")
	})

	t.Run("not found", func(t *testing.T) {
		_, err := resolvePlanID(ctx, app, "zzz")
		require.Error(t, err)
	})
}

// --- plan commands ---

func TestPlanListCmd_ForwardsFilters(t *testing.T) {
	app, f := newTestApp(t)

	require.NoError(t, executeCmd(t, app, "plan", "list", "--search", "push", "--today"))
	require.Len(t, f.plans.queries, 1)
	q := f.plans.queries[0]
	assert.Equal(t, "push", q.Search)
	assert.True(t, q.TodayOnly)
}

func TestPlanCreateCmd_RejectsPastEndDate(t *testing.T) {
	app, f := newTestApp(t)

	err := executeCmd(t, app, "plan", "create",
		"--name", "Old", "--start", "2020-01-01", "--end", "2020-02-01", "--days", "1,3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in the past")
	assert.Empty(t, f.plans.created)
}

func TestPlanCreateCmd_CreatesAndValidatesWeekdays(t *testing.T) {
	app, f := newTestApp(t)

	err := executeCmd(t, app, "plan", "create",
		"--name", "Push", "--start", "2099-01-01", "--end", "2099-02-01", "--days", "1,1")
	require.Error(t, err)
	assert.Empty(t, f.plans.created)

	require.NoError(t, executeCmd(t, app, "plan", "create",
		"--name", "Push", "--start", "2099-01-01", "--end", "2099-02-01", "--days", "1,3,5"))
	require.Len(t, f.plans.created, 1)
	assert.Equal(t, []int{1, 3, 5}, f.plans.created[0].DaysOfWeek)
}

func TestPlanUpdateCmd_PatchesOnlyChangedFlags(t *testing.T) {
	app, f := newTestApp(t)
	seedPlans(f, domain.WorkoutPlan{
		ID:         "p1",
		Name:       "Push Day",
		StartDate:  domain.NewDate(2099, time.January, 1),
		EndDate:    domain.NewDate(2099, time.February, 1),
		DaysOfWeek: []int{1, 3},
	})

	require.NoError(t, executeCmd(t, app, "plan", "update", "p1", "--name", "Push v2"))
	require.Len(t, f.plans.updated, 1)
	req := f.plans.updated[0]
	assert.Equal(t, "Push v2", req.Name)
	assert.Equal(t, "2099-01-01", req.StartDate)
	assert.Equal(t, []int{1, 3}, req.DaysOfWeek)
}

func TestPlanRemoveCmd_Deletes(t *testing.T) {
	app, f := newTestApp(t)
	seedPlans(f, domain.WorkoutPlan{ID: "p1", Name: "Push Day"})

	require.NoError(t, executeCmd(t, app, "plan", "remove", "p1"))
	assert.Equal(t, []string{"p1"}, f.plans.deleted)
}

func TestPlanRescheduleCmd_RequiresBothDates(t *testing.T) {
	app, f := newTestApp(t)
	seedPlans(f, domain.WorkoutPlan{ID: "p1", Name: "Push Day"})

	err := executeCmd(t, app, "plan", "reschedule", "p1", "--from", "2099-01-06")
	require.Error(t, err)
	assert.Empty(t, f.plans.reschedules)

	require.NoError(t, executeCmd(t, app, "plan", "reschedule", "p1",
		"--from", "2099-01-06", "--to", "2099-01-08"))
	require.Len(t, f.plans.reschedules, 1)
	assert.Equal(t, reschedule{"p1", "2099-01-06", "2099-01-08"}, f.plans.reschedules[0])
}

func TestPlanCompleteCmd_MarksTodayCompleted(t *testing.T) {
	app, f := newTestApp(t)
	seedPlans(f, domain.WorkoutPlan{ID: "p1", Name: "Push Day"})
	f.plans.detail = &domain.PlanDetail{
		WorkoutPlan: domain.WorkoutPlan{
			ID: "p1",
			ScheduleItems: []domain.ScheduleItem{
				{Date: time.Now(), Status: domain.SchedulePlanned},
			},
		},
	}

	require.NoError(t, executeCmd(t, app, "plan", "complete", "p1"))
	require.Len(t, f.plans.statusUpdates, 1)
	u := f.plans.statusUpdates[0]
	assert.Equal(t, "p1", u.planID)
	assert.Equal(t, time.Now().Format(domain.DateLayout), u.date)
	assert.Equal(t, domain.ScheduleCompleted, u.status)
}

func TestPlanCompleteCmd_NoScheduleTodayIsNoop(t *testing.T) {
	app, f := newTestApp(t)
	seedPlans(f, domain.WorkoutPlan{ID: "p1", Name: "Push Day"})
	f.plans.detail = &domain.PlanDetail{WorkoutPlan: domain.WorkoutPlan{ID: "p1"}}

	require.NoError(t, executeCmd(t, app, "plan", "complete", "p1"))
	assert.Empty(t, f.plans.statusUpdates)
}

func TestPlanAICmd_SendsPrompt(t *testing.T) {
	app, f := newTestApp(t)

	require.NoError(t, executeCmd(t, app, "plan", "ai", "3-day", "push", "pull", "legs"))
	require.Len(t, f.plans.aiPrompts, 1)
	assert.Equal(t, "3-day push pull legs", f.plans.aiPrompts[0])
}

// --- exercise commands ---

func TestExerciseAddCmd_CreatesWithoutMedia(t *testing.T) {
	app, f := newTestApp(t)
	seedPlans(f, domain.WorkoutPlan{ID: "p1", Name: "Push Day"})

	require.NoError(t, executeCmd(t, app, "exercise", "add", "p1",
		"--name", "Bench Press", "--muscle", "Chest", "--sets", "4", "--reps", "8"))
	require.Len(t, f.exercises.created, 1)
	p := f.exercises.created[0]
	assert.Equal(t, "Bench Press", p.Name)
	assert.Equal(t, 4, p.NumberOfSets)
	assert.Empty(t, f.exercises.uploads)
}

func TestExerciseAddCmd_MediaUploadFailureStillCreates(t *testing.T) {
	app, f := newTestApp(t)
	seedPlans(f, domain.WorkoutPlan{ID: "p1", Name: "Push Day"})
	f.exercises.uploadErr = assert.AnError

	// The command reports the partial outcome but does not fail: the
	// exercise exists and the upload can be retried.
	require.NoError(t, executeCmd(t, app, "exercise", "add", "p1",
		"--name", "Bench Press", "--muscle", "Chest", "--file", "demo.mp4"))
	assert.Len(t, f.exercises.created, 1)
}

func TestExerciseUploadCmd_RejectsUnknownMediaType(t *testing.T) {
	app, f := newTestApp(t)

	err := executeCmd(t, app, "exercise", "upload", "ex1", "--file", "demo.mp4", "--type", "gif")
	require.Error(t, err)
	assert.Empty(t, f.exercises.uploads)
}

// --- steps commands ---

func TestStepsSetCmd_ReplacesList(t *testing.T) {
	app, f := newTestApp(t)

	require.NoError(t, executeCmd(t, app, "steps", "set", "ex1", "Set the bench", "Unrack", "Press"))
	require.Len(t, f.steps.saved["ex1"], 3)
	assert.Equal(t, "Unrack", f.steps.saved["ex1"][1].Description)
}

func TestStepsAddCmd_AppendsToExisting(t *testing.T) {
	app, f := newTestApp(t)
	f.steps.steps["ex1"] = []domain.Step{{ID: "s1", Order: 1, Description: "Set the bench"}}

	require.NoError(t, executeCmd(t, app, "steps", "add", "ex1", "Unrack"))
	require.Len(t, f.steps.saved["ex1"], 2)
	assert.Equal(t, "Unrack", f.steps.saved["ex1"][1].Description)
}

// --- measurement commands ---

func TestMeasureLogCmd(t *testing.T) {
	app, f := newTestApp(t)

	require.NoError(t, executeCmd(t, app, "measure", "log",
		"--key", "Weight", "--value", "81.5", "--unit", "kg", "--date", "2099-01-15"))
	require.Len(t, f.measure.logged, 1)
	m := f.measure.logged[0]
	assert.Equal(t, "Weight", m.Key)
	assert.InDelta(t, 81.5, m.Value, 0.001)
	assert.Equal(t, "2099-01-15", m.Date.String())
}

func TestMeasureLogCmd_InvalidDate(t *testing.T) {
	app, f := newTestApp(t)

	err := executeCmd(t, app, "measure", "log", "--key", "Weight", "--value", "80", "--date", "nonsense")
	require.Error(t, err)
	assert.Empty(t, f.measure.logged)
}

// --- meal commands ---

func TestMealLogCmd_JoinsDescription(t *testing.T) {
	app, f := newTestApp(t)

	require.NoError(t, executeCmd(t, app, "meal", "log", "2", "eggs", "and", "toast"))
	require.Len(t, f.nutrition.meals, 1)
	assert.Equal(t, "2 eggs and toast", f.nutrition.meals[0])
}

func TestMealSummaryCmd_InvalidDate(t *testing.T) {
	app, _ := newTestApp(t)

	err := executeCmd(t, app, "meal", "summary", "--date", "not-a-date")
	require.Error(t, err)
}

// --- tracking commands ---

func TestTrackSetCmd_RPEOnlyWhenProvided(t *testing.T) {
	app, f := newTestApp(t)

	require.NoError(t, executeCmd(t, app, "track", "set", "ex1", "--weight", "100", "--reps", "5"))
	require.Len(t, f.tracking.sets["ex1"], 1)
	assert.Nil(t, f.tracking.sets["ex1"][0].RPE)

	require.NoError(t, executeCmd(t, app, "track", "set", "ex1",
		"--weight", "100", "--reps", "5", "--rpe", "8.5"))
	require.Len(t, f.tracking.sets["ex1"], 2)
	require.NotNil(t, f.tracking.sets["ex1"][1].RPE)
	assert.InDelta(t, 8.5, *f.tracking.sets["ex1"][1].RPE, 0.001)
}

func TestTrackStatsCmd(t *testing.T) {
	app, f := newTestApp(t)
	f.tracking.stats = &domain.ExerciseStats{PersonalRecord1RM: 120, TotalVolume: 5000}

	require.NoError(t, executeCmd(t, app, "track", "stats", "ex1"))
}
