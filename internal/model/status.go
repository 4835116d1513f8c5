package model

import "fmt"

// Status is the lifecycle state of a todo. DELETED is a soft delete: the
// row stays in the store but is excluded from every aggregate and search.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusDeleted    Status = "DELETED"
)

var statusDisplay = map[Status]string{
	StatusPending:    "Pending",
	StatusInProgress: "In progress",
	StatusCompleted:  "Completed",
	StatusDeleted:    "Deleted",
}

// ParseStatus converts stored text back into a Status. Unknown text is a
// data error surfaced to the caller, never recovered.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := statusDisplay[st]; !ok {
		return "", fmt.Errorf("unrecognized status %q", s)
	}
	return st, nil
}

// Display returns the human-readable label for the status.
func (s Status) Display() string {
	if d, ok := statusDisplay[s]; ok {
		return d
	}
	return string(s)
}

// StatusForSubTasks derives the todo status from its sub-task checkboxes:
// all checked means COMPLETED, some checked means IN_PROGRESS, none
// checked means PENDING. Only meaningful when sub-tasks exist.
func StatusForSubTasks(subTasks []SubTask) Status {
	if len(subTasks) == 0 {
		return StatusPending
	}
	checked := 0
	for _, st := range subTasks {
		if st.Checked {
			checked++
		}
	}
	switch {
	case checked == len(subTasks):
		return StatusCompleted
	case checked > 0:
		return StatusInProgress
	default:
		return StatusPending
	}
}
