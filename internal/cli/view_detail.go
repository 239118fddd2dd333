package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/akovalenko/fitterm/internal/cli/formatter"
	"github.com/akovalenko/fitterm/internal/controller"
	"github.com/akovalenko/fitterm/internal/domain"
)

// detailLoadedMsg signals that the plan detail load has finished.
type detailLoadedMsg struct{ err error }

// stepsLoadedMsg signals that one exercise's steps arrived.
type stepsLoadedMsg struct {
	exerciseID string
	err        error
}

// exerciseDeletedMsg signals the outcome of an exercise delete.
type exerciseDeletedMsg struct {
	name string
	err  error
}

// completedTodayMsg signals the outcome of a complete-today attempt.
type completedTodayMsg struct {
	outcome controller.CompleteOutcome
	err     error
}

// exerciseFilterTimeoutMsg is the detail view's debounce tick,
// independent of the dashboard's.
type exerciseFilterTimeoutMsg struct{ seq int }

// detailView shows one plan's schedule and filtered exercise list,
// with lazily loaded step panels.
type detailView struct {
	state   *SharedState
	ctrl    *controller.Detail
	cursor  int
	loading bool

	filtering bool
	filter    string
	filterSeq int

	// muscleIdx cycles through "" + domain.MuscleGroups with the g key.
	muscleIdx int

	expanded map[string]bool // exerciseID -> step panel open

	confirmID   string
	confirmName string
}

func newDetailView(state *SharedState, planID string) *detailView {
	app := state.App
	return &detailView{
		state:    state,
		ctrl:     controller.NewDetail(planID, app.Plans, app.Exercises, app.Steps, app.Log),
		loading:  true,
		expanded: make(map[string]bool),
	}
}

func (v *detailView) ID() ViewID { return ViewPlanDetail }
func (v *detailView) Title() string {
	if v.state.ActivePlanName != "" {
		return v.state.ActivePlanName
	}
	return "Plan"
}

func (v *detailView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "steps")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "muscle")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete today")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *detailView) Init() tea.Cmd {
	return v.load()
}

func (v *detailView) load() tea.Cmd {
	ctrl := v.ctrl
	return func() tea.Msg {
		return detailLoadedMsg{err: ctrl.Load(context.Background())}
	}
}

func (v *detailView) loadSteps(exerciseID string) tea.Cmd {
	ctrl := v.ctrl
	return func() tea.Msg {
		_, err := ctrl.Steps(context.Background(), exerciseID)
		return stepsLoadedMsg{exerciseID: exerciseID, err: err}
	}
}

func (v *detailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		v.loading = false
		if msg.err != nil {
			return v, notifyErr(msg.err)
		}
		if v.cursor >= len(v.exercises()) {
			v.cursor = 0
		}
		return v, nil

	case stepsLoadedMsg:
		if msg.err != nil {
			v.expanded[msg.exerciseID] = false
			return v, notifyErr(msg.err)
		}
		return v, nil

	case exerciseDeletedMsg:
		if msg.err != nil {
			return v, notifyErr(msg.err)
		}
		return v, notify(fmt.Sprintf("Deleted %q", msg.name))

	case completedTodayMsg:
		if msg.err != nil {
			return v, notifyErr(msg.err)
		}
		switch msg.outcome {
		case controller.NoScheduleToday:
			return v, notify("Nothing scheduled for today")
		case controller.AlreadyCompleted:
			return v, notify("Today's session was already completed")
		default:
			// Back to the dashboard, which reloads to show the new state.
			return v, tea.Batch(
				notify("Session completed"),
				popView(),
				func() tea.Msg { return refreshViewMsg{} },
			)
		}

	case refreshViewMsg:
		v.loading = true
		return v, v.load()

	case exerciseFilterTimeoutMsg:
		if msg.seq != v.filterSeq {
			return v, nil
		}
		v.loading = true
		return v, v.load()

	case tea.KeyMsg:
		if v.filtering {
			return v.updateFilter(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *detailView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	exercises := v.exercises()

	if v.confirmID != "" {
		id, name := v.confirmID, v.confirmName
		v.confirmID, v.confirmName = "", ""
		if msg.String() == "y" {
			ctrl := v.ctrl
			return v, func() tea.Msg {
				return exerciseDeletedMsg{name: name, err: ctrl.DeleteExercise(context.Background(), id)}
			}
		}
		return v, notify("Delete cancelled")
	}

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(exercises)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(exercises) {
			id := exercises[v.cursor].ID
			if v.expanded[id] {
				// Collapse keeps the cache entry; re-expanding is free.
				v.expanded[id] = false
				return v, nil
			}
			v.expanded[id] = true
			if _, ok := v.ctrl.StepsCached(id); !ok {
				return v, v.loadSteps(id)
			}
		}
	case "/":
		v.filtering = true
	case "g":
		// Discrete filter: cycle through muscle groups, no debounce.
		v.muscleIdx = (v.muscleIdx + 1) % (len(domain.MuscleGroups) + 1)
		v.ctrl.SetMuscleGroup(v.muscleGroup())
		v.cursor = 0
		v.loading = true
		return v, v.load()
	case "c":
		ctrl := v.ctrl
		return v, func() tea.Msg {
			outcome, err := ctrl.CompleteToday(context.Background(), time.Now(), time.Local)
			return completedTodayMsg{outcome: outcome, err: err}
		}
	case "x":
		if v.cursor < len(exercises) {
			v.confirmID = exercises[v.cursor].ID
			v.confirmName = exercises[v.cursor].Name
		}
	case "r":
		v.loading = true
		return v, v.load()
	}
	return v, nil
}

func (v *detailView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.filtering = false
		if v.filter != "" {
			v.filter = ""
			return v, v.editFilter()
		}
		return v, nil
	case tea.KeyEnter:
		v.filtering = false
		return v, nil
	case tea.KeyBackspace:
		if len(v.filter) > 0 {
			v.filter = v.filter[:len(v.filter)-1]
			return v, v.editFilter()
		}
	default:
		if len(msg.String()) == 1 {
			v.filter += msg.String()
			return v, v.editFilter()
		}
	}
	return v, nil
}

func (v *detailView) editFilter() tea.Cmd {
	v.ctrl.SetSearch(v.filter)
	v.cursor = 0
	v.filterSeq++
	seq := v.filterSeq
	return tea.Tick(controller.DebounceDelay, func(time.Time) tea.Msg {
		return exerciseFilterTimeoutMsg{seq: seq}
	})
}

func (v *detailView) muscleGroup() string {
	if v.muscleIdx == 0 {
		return ""
	}
	return domain.MuscleGroups[v.muscleIdx-1]
}

func (v *detailView) exercises() []domain.Exercise {
	if d := v.ctrl.Plan(); d != nil {
		return d.Exercises
	}
	return nil
}

func (v *detailView) View() string {
	detail := v.ctrl.Plan()
	if v.loading && detail == nil {
		return "\n  " + formatter.Dim("Loading plan...")
	}
	if detail == nil {
		return "\n  " + formatter.Dim("No plan loaded.")
	}

	var b strings.Builder
	b.WriteString("\n")

	completed, total := detail.Progress()
	b.WriteString(fmt.Sprintf("  %s → %s   %s\n\n",
		detail.StartDate.Format(domain.DateLayout),
		detail.EndDate.Format(domain.DateLayout),
		formatter.ProgressBar(completed, total, 10),
	))

	if v.filtering || v.filter != "" {
		cursor := ""
		if v.filtering {
			cursor = "█"
		}
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.filter + cursor + "\n")
	}
	if g := v.muscleGroup(); g != "" {
		b.WriteString("  " + formatter.MuscleBadge("["+g+"]") + "\n")
	}
	if v.filtering || v.filter != "" || v.muscleGroup() != "" {
		b.WriteString("\n")
	}

	exercises := detail.Exercises
	if len(exercises) == 0 {
		b.WriteString("  " + formatter.Dim("No exercises found.") + "\n")
		return b.String()
	}

	for i := range exercises {
		e := &exercises[i]
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		b.WriteString(cursor + formatter.FormatExerciseLine(e) + "\n")

		if v.expanded[e.ID] {
			if steps, ok := v.ctrl.StepsCached(e.ID); ok {
				for _, line := range strings.Split(formatter.FormatSteps(steps), "\n") {
					b.WriteString("      " + line + "\n")
				}
			} else {
				b.WriteString("      " + formatter.Dim("Loading steps...") + "\n")
			}
		}
	}

	if v.confirmID != "" {
		b.WriteString("\n  " + formatter.StyleRed.Render(fmt.Sprintf("Delete %q? (y/n)", v.confirmName)) + "\n")
	}
	return b.String()
}
