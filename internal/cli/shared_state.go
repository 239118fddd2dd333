package cli

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Active plan context for the breadcrumb
	ActivePlanID   string
	ActivePlanName string

	// Terminal dimensions
	Width  int
	Height int
}

// SetActivePlan records the plan the detail view is scoped to.
func (s *SharedState) SetActivePlan(id, name string) {
	s.ActivePlanID = id
	s.ActivePlanName = name
}

// ClearActivePlan resets the active plan context.
func (s *SharedState) ClearActivePlan() {
	s.ActivePlanID = ""
	s.ActivePlanName = ""
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines) and status bar (2 lines).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
