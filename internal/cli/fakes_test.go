package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/akovalenko/fitterm/internal/api"
	"github.com/akovalenko/fitterm/internal/domain"
)

// testFakes bundles the fake services behind a test App so assertions
// can reach their recorded calls.
type testFakes struct {
	session   *fakeSession
	plans     *fakePlanAPI
	exercises *fakeExerciseAPI
	steps     *fakeStepAPI
	account   *fakeAccountAPI
	measure   *fakeMeasurementAPI
	nutrition *fakeNutritionAPI
	tracking  *fakeTrackingAPI
}

// newTestApp wires an App backed by in-memory fakes.
func newTestApp(t *testing.T) (*App, *testFakes) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	f := &testFakes{
		session:   &fakeSession{},
		plans:     &fakePlanAPI{},
		exercises: &fakeExerciseAPI{},
		steps:     &fakeStepAPI{steps: make(map[string][]domain.Step)},
		account:   &fakeAccountAPI{},
		measure:   &fakeMeasurementAPI{},
		nutrition: &fakeNutritionAPI{},
		tracking:  &fakeTrackingAPI{},
	}

	app := &App{
		Session:      f.session,
		Account:      f.account,
		Plans:        f.plans,
		Exercises:    f.exercises,
		Steps:        f.steps,
		Measurements: f.measure,
		Nutrition:    f.nutrition,
		Tracking:     f.tracking,
		Log:          log,
	}
	return app, f
}

// --- session ---

type fakeSession struct {
	user        *domain.UserProfile
	loginErr    error
	logins      []api.Credentials
	logoutCalls int
	bootstraps  int
}

func (s *fakeSession) Bootstrap(ctx context.Context) error {
	s.bootstraps++
	return nil
}

func (s *fakeSession) Login(ctx context.Context, creds api.Credentials) error {
	s.logins = append(s.logins, creds)
	if s.loginErr != nil {
		return s.loginErr
	}
	s.user = &domain.UserProfile{ID: "u1", Username: creds.Username, FullName: "Test User"}
	return nil
}

func (s *fakeSession) Logout(ctx context.Context) error {
	s.logoutCalls++
	s.user = nil
	return nil
}

func (s *fakeSession) User() *domain.UserProfile { return s.user }
func (s *fakeSession) LoggedIn() bool            { return s.user != nil }

// signIn puts the fake session into a logged-in state without going
// through Login.
func (s *fakeSession) signIn(username string) {
	s.user = &domain.UserProfile{ID: "u1", Username: username, FullName: "Test User"}
}

// --- plans ---

type statusUpdate struct {
	planID string
	date   string
	status domain.ScheduleStatus
}

type reschedule struct {
	planID, oldDate, newDate string
}

// fakePlanAPI satisfies the full cli.PlanAPI surface. List serves pages
// from a queue, repeating the last entry once the queue is drained.
type fakePlanAPI struct {
	mu sync.Mutex

	pages  []*api.PlanPage
	detail *domain.PlanDetail

	listErr   error
	createErr error
	deleteErr error

	queries       []api.PlanListQuery
	exerciseQs    []api.ExerciseQuery
	created       []api.CreatePlanRequest
	updated       []api.CreatePlanRequest
	deleted       []string
	reschedules   []reschedule
	statusUpdates []statusUpdate
	aiPrompts     []string
	sweeps        int
}

func (p *fakePlanAPI) List(ctx context.Context, q api.PlanListQuery) (*api.PlanPage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queries = append(p.queries, q)
	if p.listErr != nil {
		return nil, p.listErr
	}
	if len(p.pages) == 0 {
		return &api.PlanPage{TotalPages: 1}, nil
	}
	page := p.pages[0]
	if len(p.pages) > 1 {
		p.pages = p.pages[1:]
	}
	return page, nil
}

func (p *fakePlanAPI) Create(ctx context.Context, req api.CreatePlanRequest) (*domain.WorkoutPlan, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.createErr != nil {
		return nil, p.createErr
	}
	p.created = append(p.created, req)
	return &domain.WorkoutPlan{ID: fmt.Sprintf("new-%d", len(p.created)), Name: req.Name}, nil
}

func (p *fakePlanAPI) Delete(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.deleteErr != nil {
		return p.deleteErr
	}
	p.deleted = append(p.deleted, id)
	return nil
}

func (p *fakePlanAPI) RescheduleItem(ctx context.Context, id, oldDate, newDate string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reschedules = append(p.reschedules, reschedule{id, oldDate, newDate})
	return nil
}

func (p *fakePlanAPI) CheckAllMissed(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sweeps++
	return nil
}

func (p *fakePlanAPI) CreateByAI(ctx context.Context, prompt string) (*domain.WorkoutPlan, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.aiPrompts = append(p.aiPrompts, prompt)
	return &domain.WorkoutPlan{ID: "ai-1", Name: "AI Plan"}, nil
}

func (p *fakePlanAPI) Exercises(ctx context.Context, id string, q api.ExerciseQuery) (*domain.PlanDetail, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exerciseQs = append(p.exerciseQs, q)
	if p.detail == nil {
		return &domain.PlanDetail{WorkoutPlan: domain.WorkoutPlan{ID: id}}, nil
	}
	return p.detail, nil
}

func (p *fakePlanAPI) UpdateItemStatus(ctx context.Context, id, date string, status domain.ScheduleStatus) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statusUpdates = append(p.statusUpdates, statusUpdate{id, date, status})
	return nil
}

func (p *fakePlanAPI) Get(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, page := range p.pages {
		for i := range page.Data {
			if page.Data[i].ID == id {
				return &page.Data[i], nil
			}
		}
	}
	return nil, fmt.Errorf("plan %s not found", id)
}

func (p *fakePlanAPI) Update(ctx context.Context, id string, req api.CreatePlanRequest) (*domain.WorkoutPlan, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updated = append(p.updated, req)
	return &domain.WorkoutPlan{ID: id, Name: req.Name}, nil
}

// --- exercises ---

type fakeExerciseAPI struct {
	mu sync.Mutex

	uploadErr error

	created []api.ExercisePayload
	updated []api.ExercisePayload
	deleted []string
	uploads []string // exercise IDs
}

func (e *fakeExerciseAPI) Create(ctx context.Context, workoutID string, p api.ExercisePayload) (*domain.Exercise, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.created = append(e.created, p)
	return &domain.Exercise{ID: fmt.Sprintf("ex-%d", len(e.created)), WorkoutID: workoutID, Name: p.Name}, nil
}

func (e *fakeExerciseAPI) Update(ctx context.Context, id string, p api.ExercisePayload) (*domain.Exercise, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.updated = append(e.updated, p)
	return &domain.Exercise{ID: id, Name: p.Name}, nil
}

func (e *fakeExerciseAPI) Delete(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deleted = append(e.deleted, id)
	return nil
}

func (e *fakeExerciseAPI) UploadMedia(ctx context.Context, id, filePath string, mediaType domain.MediaType) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.uploadErr != nil {
		return e.uploadErr
	}
	e.uploads = append(e.uploads, id)
	return nil
}

// --- steps ---

type fakeStepAPI struct {
	mu sync.Mutex

	steps    map[string][]domain.Step
	fetchErr error

	fetches int
	saved   map[string][]domain.Step
	deleted []string
}

func (s *fakeStepAPI) ByExercise(ctx context.Context, exerciseID string) ([]domain.Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.steps[exerciseID], nil
}

func (s *fakeStepAPI) SaveMany(ctx context.Context, exerciseID string, steps []domain.Step) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved == nil {
		s.saved = make(map[string][]domain.Step)
	}
	s.saved[exerciseID] = steps
	s.steps[exerciseID] = steps
	return nil
}

func (s *fakeStepAPI) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	return nil
}

// --- account ---

type fakeAccountAPI struct {
	registered []api.RegisterRequest
	updates    []api.ProfileUpdate
	avatars    []string
}

func (a *fakeAccountAPI) Register(ctx context.Context, req api.RegisterRequest) error {
	a.registered = append(a.registered, req)
	return nil
}

func (a *fakeAccountAPI) UpdateProfile(ctx context.Context, userID string, update api.ProfileUpdate) (*domain.UserProfile, error) {
	a.updates = append(a.updates, update)
	return &domain.UserProfile{ID: userID, FullName: update.FullName}, nil
}

func (a *fakeAccountAPI) UploadAvatar(ctx context.Context, userID, filePath string) error {
	a.avatars = append(a.avatars, filePath)
	return nil
}

// --- measurements ---

type fakeMeasurementAPI struct {
	logged   []domain.Measurement
	points   []domain.ChartPoint
	progress *domain.MeasurementProgress
}

func (m *fakeMeasurementAPI) Create(ctx context.Context, meas domain.Measurement) error {
	m.logged = append(m.logged, meas)
	return nil
}

func (m *fakeMeasurementAPI) ChartData(ctx context.Context, key, startDate, endDate string) ([]domain.ChartPoint, error) {
	return m.points, nil
}

func (m *fakeMeasurementAPI) LatestProgress(ctx context.Context, key string) (*domain.MeasurementProgress, error) {
	if m.progress == nil {
		return &domain.MeasurementProgress{Key: key}, nil
	}
	return m.progress, nil
}

// --- nutrition ---

type fakeNutritionAPI struct {
	meals   []string
	summary *domain.DailySummary
}

func (n *fakeNutritionAPI) DailySummary(ctx context.Context, date string) (*domain.DailySummary, error) {
	if n.summary == nil {
		d, _ := domain.ParseDate(date)
		return &domain.DailySummary{Date: d}, nil
	}
	return n.summary, nil
}

func (n *fakeNutritionAPI) LogMeal(ctx context.Context, mealText string) (*domain.MealEntry, error) {
	n.meals = append(n.meals, mealText)
	return &domain.MealEntry{ID: "m1", Description: mealText, Calories: 420}, nil
}

// --- tracking ---

type fakeTrackingAPI struct {
	sets    map[string][]api.LogSetRequest
	stats   *domain.ExerciseStats
	history []domain.SetEntry
}

func (tr *fakeTrackingAPI) LogSet(ctx context.Context, exerciseID string, req api.LogSetRequest) error {
	if tr.sets == nil {
		tr.sets = make(map[string][]api.LogSetRequest)
	}
	tr.sets[exerciseID] = append(tr.sets[exerciseID], req)
	return nil
}

func (tr *fakeTrackingAPI) Stats(ctx context.Context, exerciseID string) (*domain.ExerciseStats, error) {
	if tr.stats == nil {
		return &domain.ExerciseStats{}, nil
	}
	return tr.stats, nil
}

func (tr *fakeTrackingAPI) History(ctx context.Context, exerciseID string) ([]domain.SetEntry, error) {
	return tr.history, nil
}
