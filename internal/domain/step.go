package domain

// Step is one ordered instructional line within an exercise's execution
// guide. Order is 1-based and contiguous within an exercise.
type Step struct {
	ID          string `json:"id,omitempty"`
	Order       int    `json:"order"`
	Description string `json:"description"`
}

// NormalizeOrder rewrites Order to the contiguous 1..n sequence implied by
// slice position. Saving a step list always goes through this so the
// backend never sees gaps or duplicates after a reorder or deletion.
func NormalizeOrder(steps []Step) {
	for i := range steps {
		steps[i].Order = i + 1
	}
}

// MoveStep moves the step at index from to index to, shifting the rest.
// Out-of-range indexes are ignored. Order values are renumbered.
func MoveStep(steps []Step, from, to int) {
	if from < 0 || from >= len(steps) || to < 0 || to >= len(steps) || from == to {
		return
	}
	s := steps[from]
	if from < to {
		copy(steps[from:], steps[from+1:to+1])
	} else {
		copy(steps[to+1:], steps[to:from])
	}
	steps[to] = s
	NormalizeOrder(steps)
}
