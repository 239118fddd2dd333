package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/akovalenko/fitterm/internal/api"
	"github.com/akovalenko/fitterm/internal/cli/formatter"
	"github.com/akovalenko/fitterm/internal/controller"
	"github.com/akovalenko/fitterm/internal/domain"
)

// resolvePlanID matches a full ID, an ID prefix, or a case-insensitive
// name against the first page of the user's plans.
func resolvePlanID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("plan ID is required")
	}

	page, err := app.Plans.List(ctx, api.PlanListQuery{Page: 1, Limit: 100})
	if err != nil {
		return "", err
	}

	for _, p := range page.Data {
		if p.ID == input {
			return p.ID, nil
		}
	}
	for _, p := range page.Data {
		if strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range page.Data {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("plan not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("plan ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage workout plans",
	}

	cmd.AddCommand(
		newPlanListCmd(app),
		newPlanShowCmd(app),
		newPlanCreateCmd(app),
		newPlanUpdateCmd(app),
		newPlanRemoveCmd(app),
		newPlanCompleteCmd(app),
		newPlanRescheduleCmd(app),
		newPlanAICmd(app),
	)

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	var search string
	var page, limit int
	var today bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workout plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Plans.List(cmd.Context(), api.PlanListQuery{
				Search:    search,
				TodayOnly: today,
				Page:      page,
				Limit:     limit,
			})
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatPlanList(result.Data))
			if result.TotalPages > page {
				fmt.Println(formatter.Dim(fmt.Sprintf("Page %d of %d", page, result.TotalPages)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter by name")
	cmd.Flags().BoolVar(&today, "today", false, "Only plans scheduled for today")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "Page size")

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a plan with schedule and exercises",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			detail, err := app.Plans.Exercises(ctx, id, api.ExerciseQuery{})
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatPlanDetail(detail))
			return nil
		},
	}
}

func newPlanCreateCmd(app *App) *cobra.Command {
	var name, start, end, days string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a workout plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			weekdays, err := parseWeekdays(days)
			if err != nil {
				return err
			}
			ctrl := controller.NewDashboard(app.Plans, app.Log)
			plan, err := ctrl.Create(cmd.Context(), api.CreatePlanRequest{
				Name:       name,
				StartDate:  start,
				EndDate:    end,
				DaysOfWeek: weekdays,
			}, time.Now())
			if err != nil {
				return err
			}
			fmt.Printf("Created plan %s\n", plan.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Plan name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&days, "days", "", "Weekdays, 0=Sun (e.g. 1,3,5)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}

func newPlanUpdateCmd(app *App) *cobra.Command {
	var name, start, end, days string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a workout plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			current, err := app.Plans.Get(ctx, id)
			if err != nil {
				return err
			}

			req := api.CreatePlanRequest{
				Name:       current.Name,
				StartDate:  current.StartDate.String(),
				EndDate:    current.EndDate.String(),
				DaysOfWeek: current.DaysOfWeek,
			}
			if cmd.Flags().Changed("name") {
				req.Name = name
			}
			if cmd.Flags().Changed("start") {
				req.StartDate = start
			}
			if cmd.Flags().Changed("end") {
				req.EndDate = end
			}
			if cmd.Flags().Changed("days") {
				weekdays, err := parseWeekdays(days)
				if err != nil {
					return err
				}
				if err := domain.ValidateDaysOfWeek(weekdays); err != nil {
					return err
				}
				req.DaysOfWeek = weekdays
			}

			updated, err := app.Plans.Update(ctx, id, req)
			if err != nil {
				return err
			}
			fmt.Printf("Updated plan %s\n", updated.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Plan name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&days, "days", "", "Weekdays, 0=Sun (e.g. 1,3,5)")

	return cmd
}

func newPlanRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a workout plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Removed plan %s\n", id)
			return nil
		},
	}
}

func newPlanCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete ID",
		Short: "Mark today's scheduled session as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}

			ctrl := controller.NewDetail(id, app.Plans, app.Exercises, app.Steps, app.Log)
			if err := ctrl.Load(ctx); err != nil {
				return err
			}
			outcome, err := ctrl.CompleteToday(ctx, time.Now(), time.Local)
			if err != nil {
				return err
			}

			switch outcome {
			case controller.NoScheduleToday:
				fmt.Println("Nothing scheduled for today.")
			case controller.AlreadyCompleted:
				fmt.Println("Today's session was already completed.")
			default:
				fmt.Println("Session completed.")
			}
			return nil
		},
	}
}

func newPlanRescheduleCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "reschedule ID",
		Short: "Move a scheduled session to another date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ctrl := controller.NewDashboard(app.Plans, app.Log)
			if err := ctrl.Reschedule(ctx, id, from, to); err != nil {
				return err
			}
			fmt.Printf("Rescheduled %s → %s\n", from, to)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Current session date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "New session date (YYYY-MM-DD)")

	return cmd
}

func newPlanAICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ai PROMPT",
		Short: "Draft a plan from a free-text description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			plan, err := app.Plans.CreateByAI(cmd.Context(), prompt)
			if err != nil {
				return err
			}
			fmt.Printf("Drafted plan %s\n", plan.Name)
			return nil
		},
	}
}
