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
)

// plansLoadedMsg signals that a dashboard load has finished; the
// controller already holds the data.
type plansLoadedMsg struct{ err error }

// planDeletedMsg signals the outcome of a plan delete.
type planDeletedMsg struct {
	name string
	err  error
}

// filterTimeoutMsg fires when a filter edit has settled for the
// debounce window. Stale timeouts (older seq) are ignored.
type filterTimeoutMsg struct{ seq int }

// dashboardView shows the paginated, filterable list of workout plans.
type dashboardView struct {
	state   *SharedState
	ctrl    *controller.Dashboard
	cursor  int
	loading bool
	err     error

	// Filtering
	filtering bool
	filter    string
	filterSeq int // incremented per edit; stale debounce ticks are ignored

	// Pending delete confirmation
	confirmID   string
	confirmName string
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{
		state:   state,
		ctrl:    controller.NewDashboard(state.App.Plans, state.App.Log),
		loading: true,
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Plans" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "more")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new plan")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.load()
}

func (v *dashboardView) load() tea.Cmd {
	ctrl := v.ctrl
	return func() tea.Msg {
		return plansLoadedMsg{err: ctrl.Load(context.Background())}
	}
}

func (v *dashboardView) loadMore() tea.Cmd {
	ctrl := v.ctrl
	return func() tea.Msg {
		return plansLoadedMsg{err: ctrl.LoadMore(context.Background())}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case plansLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, notifyErr(msg.err)
		}
		v.err = nil
		if v.cursor >= len(v.ctrl.Plans()) {
			v.cursor = 0
		}
		return v, nil

	case planDeletedMsg:
		if msg.err != nil {
			return v, notifyErr(msg.err)
		}
		if v.cursor >= len(v.ctrl.Plans()) && v.cursor > 0 {
			v.cursor--
		}
		return v, notify(fmt.Sprintf("Deleted %q", msg.name))

	case refreshViewMsg:
		v.loading = true
		return v, v.load()

	case filterTimeoutMsg:
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

func (v *dashboardView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	plans := v.ctrl.Plans()

	// Pending delete confirmation intercepts the next key.
	if v.confirmID != "" {
		id, name := v.confirmID, v.confirmName
		v.confirmID, v.confirmName = "", ""
		if msg.String() == "y" {
			ctrl := v.ctrl
			return v, func() tea.Msg {
				return planDeletedMsg{name: name, err: ctrl.Delete(context.Background(), id)}
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
		if v.cursor < len(plans)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(plans) {
			p := plans[v.cursor]
			v.state.SetActivePlan(p.ID, p.Name)
			return v, pushView(newDetailView(v.state, p.ID))
		}
	case "/":
		v.filtering = true
	case "t":
		// Discrete toggle: applied immediately, no debounce.
		v.ctrl.ToggleToday()
		v.loading = true
		return v, v.load()
	case "m":
		if v.ctrl.HasMore() && !v.ctrl.Appending() {
			return v, v.loadMore()
		}
	case "n":
		return v, pushView(newPlanFormView(v.state, v.ctrl))
	case "x":
		if v.cursor < len(plans) {
			v.confirmID = plans[v.cursor].ID
			v.confirmName = plans[v.cursor].Name
		}
	case "r":
		v.loading = true
		return v, v.load()
	}
	return v, nil
}

func (v *dashboardView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

// editFilter pushes the new search text into the controller and
// restarts the debounce timer. Only the tick matching the latest seq
// triggers a load, so a burst of edits issues exactly one fetch.
func (v *dashboardView) editFilter() tea.Cmd {
	v.ctrl.SetSearch(v.filter)
	v.cursor = 0
	v.filterSeq++
	seq := v.filterSeq
	return tea.Tick(controller.DebounceDelay, func(time.Time) tea.Msg {
		return filterTimeoutMsg{seq: seq}
	})
}

func (v *dashboardView) View() string {
	if v.loading && len(v.ctrl.Plans()) == 0 {
		return "\n  " + formatter.Dim("Loading plans...")
	}

	var b strings.Builder
	b.WriteString("\n")

	if v.filtering || v.filter != "" {
		cursor := ""
		if v.filtering {
			cursor = "█"
		}
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.filter + cursor + "\n\n")
	}
	if v.ctrl.Filters().TodayOnly {
		b.WriteString("  " + formatter.StyleBlue.Render("[today only]") + "\n\n")
	}

	plans := v.ctrl.Plans()
	if len(plans) == 0 {
		b.WriteString("  " + formatter.Dim("No plans found.") + "\n")
		return b.String()
	}

	now := time.Now()
	for i := range plans {
		p := &plans[i]
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}

		completed, total := p.Progress()
		next := formatter.Dim("—")
		if d := p.NextScheduled(now, now.Location()); d != nil {
			next = formatter.RelativeDateFrom(*d, now)
		}

		b.WriteString(fmt.Sprintf("%s%s  %s  %s  %s\n",
			cursor,
			nameStyle.Render(formatter.PadRight(p.Name, 24)),
			formatter.PlanBadge(p),
			formatter.ProgressBar(completed, total, 8),
			next,
		))
	}

	if v.confirmID != "" {
		b.WriteString("\n  " + formatter.StyleRed.Render(fmt.Sprintf("Delete %q? (y/n)", v.confirmName)) + "\n")
	}
	if v.ctrl.HasMore() {
		label := "— more (m) —"
		if v.ctrl.Appending() {
			label = "— loading —"
		}
		b.WriteString("\n  " + formatter.Dim(label) + "\n")
	}
	return b.String()
}
