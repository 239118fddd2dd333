package formatter

import (
	"fmt"
	"strings"

	"github.com/akovalenko/fitterm/internal/domain"
)

// FormatPlanList renders workout plans as an aligned table for the
// `plan list` command.
func FormatPlanList(plans []domain.WorkoutPlan) string {
	var b strings.Builder
	b.WriteString(Header("Workout Plans"))
	b.WriteString("\n")

	for i := range plans {
		p := &plans[i]
		completed, total := p.Progress()
		b.WriteString(fmt.Sprintf("%s %s  %s  %s  %s\n",
			Dim(shortID(p.ID)),
			Bold(PadRight(p.Name, 24)),
			PlanBadge(p),
			ProgressBar(completed, total, 10),
			Dim(fmt.Sprintf("%d exercises", p.NumExercises)),
		))
	}
	if len(plans) == 0 {
		b.WriteString(Dim("No plans found.") + "\n")
	}
	return b.String()
}

// FormatPlanDetail renders one plan with its schedule and exercises
// for the `plan show` command.
func FormatPlanDetail(d *domain.PlanDetail) string {
	var b strings.Builder
	b.WriteString(Header(d.Name))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s %s → %s   %s\n",
		Dim("Range:"),
		d.StartDate.Format(domain.DateLayout),
		d.EndDate.Format(domain.DateLayout),
		weekdayNames(d.DaysOfWeek),
	))
	completed, total := d.Progress()
	b.WriteString(Dim("Progress: ") + ProgressBar(completed, total, 12) + "\n")

	if len(d.ScheduleItems) > 0 {
		b.WriteString("\n" + Bold("Schedule") + "\n")
		for _, item := range d.ScheduleItems {
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				item.Date.Format(domain.DateLayout),
				StatusPill(item.Status),
			))
		}
	}

	if len(d.Exercises) > 0 {
		b.WriteString("\n" + Bold("Exercises") + "\n")
		for i := range d.Exercises {
			b.WriteString("  " + FormatExerciseLine(&d.Exercises[i]) + "\n")
		}
	}
	return b.String()
}

// FormatExerciseLine renders one exercise as a single row.
func FormatExerciseLine(e *domain.Exercise) string {
	media := ""
	if e.HasMedia() {
		media = "  " + StyleBlue.Render("▶")
	}
	return fmt.Sprintf("%s %s  %s  %s  %s%s",
		Dim(shortID(e.ID)),
		Bold(PadRight(e.Name, 22)),
		MuscleBadge(PadRight(e.MuscleGroup, 9)),
		fmt.Sprintf("%d×%d", e.NumberOfSets, e.Repetitions),
		Dim("rest "+FormatSeconds(e.RestTime)),
		media,
	)
}

// FormatSteps renders an exercise's ordered step list.
func FormatSteps(steps []domain.Step) string {
	if len(steps) == 0 {
		return Dim("No steps recorded.")
	}
	var b strings.Builder
	for _, s := range steps {
		b.WriteString(fmt.Sprintf("%s %s\n", StyleGreen.Render(fmt.Sprintf("%2d.", s.Order)), s.Description))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatDailySummary renders one day's nutrition totals and meals.
func FormatDailySummary(s *domain.DailySummary) string {
	var b strings.Builder
	b.WriteString(Header("Nutrition — " + s.Date.Format(domain.DateLayout)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %.0f kcal   %s %.0fg   %s %.0fg   %s %.0fg\n",
		Bold("Calories:"), s.Calories,
		Dim("Protein:"), s.Protein,
		Dim("Carbs:"), s.Carbs,
		Dim("Fat:"), s.Fat,
	))
	for _, m := range s.Meals {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			Dim("•"), PadRight(m.Description, 36),
			Dim(fmt.Sprintf("%.0f kcal", m.Calories)),
		))
	}
	return b.String()
}

// FormatProgress renders a measurement's latest value and change.
func FormatProgress(p *domain.MeasurementProgress) string {
	change := fmt.Sprintf("%+.1f", p.Change)
	styled := StyleGreen.Render(change)
	if p.Change > 0 {
		styled = StyleYellow.Render(change)
	}
	return fmt.Sprintf("%s %.1f (%s)", Bold(p.Key+":"), p.Latest, styled)
}

// FormatStats renders an exercise's tracking summary.
func FormatStats(s *domain.ExerciseStats) string {
	return fmt.Sprintf("%s %.1f kg   %s %.0f kg",
		Bold("Est. 1RM:"), s.PersonalRecord1RM,
		Dim("Total volume:"), s.TotalVolume,
	)
}

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// weekdayNames renders a daysOfWeek set like "Mon/Wed/Fri".
func weekdayNames(days []int) string {
	var names []string
	for _, d := range days {
		if d >= 0 && d < len(weekdays) {
			names = append(names, weekdays[d])
		}
	}
	return StyleBlue.Render(strings.Join(names, "/"))
}

// shortID returns the first 8 characters of an ID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
