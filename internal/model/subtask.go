package model

import "strings"

// SubTask is a single checkable line item within a todo. Sub-tasks are
// embedded in the parent row, not stored as their own table.
//
// Index is positional: it is reassigned whenever the list is rebuilt from
// the description text, so it is not a stable identity across description
// edits.
type SubTask struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
	Checked     bool   `json:"checked"`
}

// SubTasksFromDescription splits a multi-line description into sub-tasks:
// one per non-blank line, trimmed, with zero-based sequential indexes and
// all checkboxes cleared.
func SubTasksFromDescription(description string) []SubTask {
	var subTasks []SubTask
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		subTasks = append(subTasks, SubTask{
			Index:       len(subTasks),
			Description: line,
		})
	}
	return subTasks
}

// AllChecked reports whether every sub-task in the list is checked.
// An empty list counts as not all-checked.
func AllChecked(subTasks []SubTask) bool {
	if len(subTasks) == 0 {
		return false
	}
	for _, st := range subTasks {
		if !st.Checked {
			return false
		}
	}
	return true
}
