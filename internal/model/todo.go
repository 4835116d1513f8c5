package model

import "time"

// Todo is a single task. Its sub-task list is embedded and serialized
// into the row, so the todo exclusively owns it.
type Todo struct {
	// ID is assigned by the store on insert. Zero means not yet persisted.
	ID          int64    `json:"id" db:"id"`
	Title       string   `json:"title" db:"title"`
	Description string   `json:"description" db:"description"`
	Priority    Priority `json:"priority" db:"priority"`
	Checked     bool     `json:"checked" db:"is_checked"`
	Status      Status   `json:"status" db:"status"`

	// Reminder is the optional wall-clock time a one-shot reminder should
	// fire on the current day.
	Reminder *TimeOfDay `json:"reminder,omitempty" db:"reminder_time"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// SelectDateAt is the date the todo is scheduled against, distinct
	// from CreatedAt. Date-scoped views and the activity heat map key on
	// this field.
	SelectDateAt   time.Time `json:"select_date_at" db:"select_date_at"`
	LastModifiedAt time.Time `json:"last_modified_at" db:"last_modified_at"`

	SubTasks []SubTask `json:"sub_tasks,omitempty" db:"-"`

	// BoxID is the owning box. Zero only transiently, before the todo is
	// assigned to a box.
	BoxID int64 `json:"box_id" db:"todo_box_id"`
}

// Deleted reports whether the todo is soft-deleted and must be excluded
// from every display aggregation.
func (t Todo) Deleted() bool {
	return t.Status == StatusDeleted
}
