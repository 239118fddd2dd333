package cli

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/akovalenko/fitterm/internal/api"
)

// loggedInMsg tells the appModel to swap the login view for the
// dashboard.
type loggedInMsg struct{}

// loginFailedMsg carries a failed login attempt's error.
type loginFailedMsg struct{ err error }

// loginView is the root view when no session is active.
type loginView struct {
	state    *SharedState
	form     *huh.Form
	username string
	password string
	waiting  bool
}

func newLoginView(state *SharedState) *loginView {
	v := &loginView{state: state}
	v.form = v.buildForm()
	return v
}

func (v *loginView) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&v.username).
				Validate(validateRequired),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&v.password).
				Validate(validateRequired),
		),
	).WithTheme(fittermHuhTheme()).WithShowHelp(false)
}

func (v *loginView) ID() ViewID    { return ViewLogin }
func (v *loginView) Title() string { return "Login" }

func (v *loginView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sign in")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (v *loginView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *loginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginFailedMsg:
		v.waiting = false
		v.password = ""
		v.form = v.buildForm()
		return v, tea.Batch(v.form.Init(), notifyErr(msg.err))
	}

	if v.waiting {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		v.waiting = true
		session := v.state.App.Session
		creds := api.Credentials{Username: v.username, Password: v.password}
		return v, tea.Batch(cmd, func() tea.Msg {
			if err := session.Login(context.Background(), creds); err != nil {
				return loginFailedMsg{err: err}
			}
			return loggedInMsg{}
		})
	}
	return v, cmd
}

func (v *loginView) View() string {
	if v.waiting {
		return "\n  Signing in..."
	}
	return "\n" + v.form.View()
}
