package model

import "fmt"

// Priority is the three-tier importance level of a todo.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// priorityRanks maps each priority to its sort rank (lower sorts first
// when ordering high-to-low).
var priorityRanks = map[Priority]int{
	PriorityHigh:   1,
	PriorityMedium: 2,
	PriorityLow:    3,
}

// priorityDisplay maps stored codes to the text shown in the UI.
var priorityDisplay = map[Priority]string{
	PriorityHigh:   "High",
	PriorityMedium: "Medium",
	PriorityLow:    "Low",
}

// ParsePriority converts stored text back into a Priority. Unknown text is
// a data error: the row cannot be interpreted and must not be silently
// coerced to a default.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if _, ok := priorityRanks[p]; !ok {
		return "", fmt.Errorf("unrecognized priority %q", s)
	}
	return p, nil
}

// Rank returns the fixed sort rank: HIGH=1, MEDIUM=2, LOW=3.
// Unknown priorities rank last.
func (p Priority) Rank() int {
	if r, ok := priorityRanks[p]; ok {
		return r
	}
	return len(priorityRanks) + 1
}

// Display returns the human-readable label for the priority.
func (p Priority) Display() string {
	if d, ok := priorityDisplay[p]; ok {
		return d
	}
	return string(p)
}
