package cli

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/akovalenko/fitterm/internal/api"
	"github.com/akovalenko/fitterm/internal/controller"
	"github.com/akovalenko/fitterm/internal/domain"
)

// SessionStore is the session lifecycle surface the CLI needs.
// *session.Store satisfies it.
type SessionStore interface {
	Bootstrap(ctx context.Context) error
	Login(ctx context.Context, creds api.Credentials) error
	Logout(ctx context.Context) error
	User() *domain.UserProfile
	LoggedIn() bool
}

// AccountAPI covers account operations outside the login lifecycle.
// *api.AuthService satisfies it.
type AccountAPI interface {
	Register(ctx context.Context, req api.RegisterRequest) error
	UpdateProfile(ctx context.Context, userID string, update api.ProfileUpdate) (*domain.UserProfile, error)
	UploadAvatar(ctx context.Context, userID, filePath string) error
}

// PlanAPI is the full plan surface used by commands and views.
// *api.PlanService satisfies it.
type PlanAPI interface {
	controller.PlanAPI
	controller.DetailPlanAPI
	Get(ctx context.Context, id string) (*domain.WorkoutPlan, error)
	Update(ctx context.Context, id string, req api.CreatePlanRequest) (*domain.WorkoutPlan, error)
}

// MeasurementAPI covers body measurements. *api.MeasurementService satisfies it.
type MeasurementAPI interface {
	Create(ctx context.Context, m domain.Measurement) error
	ChartData(ctx context.Context, key, startDate, endDate string) ([]domain.ChartPoint, error)
	LatestProgress(ctx context.Context, key string) (*domain.MeasurementProgress, error)
}

// NutritionAPI covers meal logging. *api.NutritionService satisfies it.
type NutritionAPI interface {
	DailySummary(ctx context.Context, date string) (*domain.DailySummary, error)
	LogMeal(ctx context.Context, mealText string) (*domain.MealEntry, error)
}

// TrackingAPI covers set tracking. *api.TrackingService satisfies it.
type TrackingAPI interface {
	LogSet(ctx context.Context, exerciseID string, req api.LogSetRequest) error
	Stats(ctx context.Context, exerciseID string) (*domain.ExerciseStats, error)
	History(ctx context.Context, exerciseID string) ([]domain.SetEntry, error)
}

// App holds references to all interfaces used by CLI commands and
// TUI views.
type App struct {
	Session      SessionStore
	Account      AccountAPI
	Plans        PlanAPI
	Exercises    controller.ExerciseAPI
	Steps        controller.StepAPI
	Measurements MeasurementAPI
	Nutrition    NutritionAPI
	Tracking     TrackingAPI
	Log          logrus.FieldLogger
}

// NewRootCmd creates the top-level "fitterm" command and registers all
// subcommands against the provided App. The session bootstrap runs
// before any subcommand so stored credentials are probed exactly once.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "fitterm",
		Short: "Workout planner and fitness tracker",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.Session.Bootstrap(cmd.Context())
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newRegisterCmd(app),
		newPlanCmd(app),
		newExerciseCmd(app),
		newStepsCmd(app),
		newMeasureCmd(app),
		newMealCmd(app),
		newTrackCmd(app),
		newTUICmd(app),
	)

	return root
}
