package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// refreshViewMsg asks views to reload their data after a mutation
// made elsewhere (e.g. a form view above them in the stack).
type refreshViewMsg struct{}

// statusMsg carries a transient notification shown in the status bar.
type statusMsg struct {
	text  string
	isErr bool
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// notify returns a tea.Cmd that shows a transient status message.
func notify(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

// notifyErr returns a tea.Cmd that shows a transient error message.
func notifyErr(err error) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: err.Error(), isErr: true} }
}
