package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/akovalenko/fitterm/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusPill returns a colored indicator for a schedule item status.
func StatusPill(status domain.ScheduleStatus) string {
	switch status {
	case domain.SchedulePlanned:
		return StyleBlue.Render("○ Planned")
	case domain.ScheduleCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.ScheduleMissed:
		return StyleRed.Render("✖ Missed")
	default:
		return StyleDim.Render(string(status))
	}
}

// PlanBadge returns a colored marker for a whole plan: red when the
// server has flagged it missed, green otherwise.
func PlanBadge(p *domain.WorkoutPlan) string {
	if p.Missed() {
		return StyleRed.Render("✖ Missed")
	}
	return StyleGreen.Render("● Active")
}

// MuscleBadge returns a purple-styled muscle group label.
func MuscleBadge(group string) string {
	if group == "" {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(group)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
