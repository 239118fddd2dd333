package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/akovalenko/fitterm/internal/api"
	"github.com/akovalenko/fitterm/internal/controller"
)

// newPlanFormView builds the create-plan form. On submit the plan is
// created through the dashboard controller, which validates and
// reloads the list.
func newPlanFormView(state *SharedState, ctrl *controller.Dashboard) View {
	var name, start, end, weekdays, prompt string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Plan Name").
				Placeholder("Push Day").
				Value(&name).
				Validate(validateRequired),
			huh.NewInput().
				Title("Start Date (YYYY-MM-DD)").
				Value(&start).
				Validate(validateDate),
			huh.NewInput().
				Title("End Date (YYYY-MM-DD)").
				Value(&end).
				Validate(validateDate),
			huh.NewInput().
				Title("Weekdays (0=Sun ... 6=Sat, e.g. 1,3,5)").
				Value(&weekdays).
				Validate(validateWeekdays),
			huh.NewInput().
				Title("Or describe it and let AI draft (optional)").
				Value(&prompt),
		),
	).WithTheme(fittermHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		return func() tea.Msg {
			ctx := context.Background()
			if prompt != "" {
				plan, err := ctrl.CreateByAI(ctx, prompt)
				if err != nil {
					return statusMsg{text: err.Error(), isErr: true}
				}
				return statusMsg{text: fmt.Sprintf("Drafted %q", plan.Name)}
			}

			days, err := parseWeekdays(weekdays)
			if err != nil {
				return statusMsg{text: err.Error(), isErr: true}
			}
			plan, err := ctrl.Create(ctx, api.CreatePlanRequest{
				Name:       name,
				StartDate:  start,
				EndDate:    end,
				DaysOfWeek: days,
			}, time.Now())
			if err != nil {
				return statusMsg{text: err.Error(), isErr: true}
			}
			return statusMsg{text: fmt.Sprintf("Created %q", plan.Name)}
		}
	}

	return newFormView(state, "New Plan", form, done)
}
