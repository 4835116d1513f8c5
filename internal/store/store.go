package store

import (
	"context"
	"time"

	"github.com/czhang/todobox/internal/model"
)

// PriorityOrder selects the direction of the fixed 3-tier priority sort.
type PriorityOrder int

const (
	// HighFirst orders HIGH, MEDIUM, LOW.
	HighFirst PriorityOrder = iota
	// LowFirst orders LOW, MEDIUM, HIGH.
	LowFirst
)

// Store defines the persistence interface for boxes and todos.
//
// Write semantics follow the data-access contract: inserts ignore
// primary-key conflicts (the write is silently dropped), updates replace
// every field of the matching row and are a no-op when no row matches,
// and deleting a box cascades to its todos through the foreign key.
type Store interface {
	// === Todos ===

	// InsertTodo inserts a todo and returns the assigned id. When the
	// todo carries an id that already exists the insert is ignored and
	// the existing id is returned unchanged.
	InsertTodo(ctx context.Context, todo model.Todo) (int64, error)
	UpdateTodo(ctx context.Context, todo model.Todo) error
	DeleteTodo(ctx context.Context, id int64) error
	// DeleteAllTodos clears the todo table. Destructive reset only; not
	// reachable from normal flows.
	DeleteAllTodos(ctx context.Context) error

	GetTodoByID(ctx context.Context, id int64) (*model.Todo, error)
	// GetTodos returns every todo in insertion order (ascending id).
	GetTodos(ctx context.Context) ([]model.Todo, error)
	// SearchTodos matches the title substring case-insensitively.
	SearchTodos(ctx context.Context, query string) ([]model.Todo, error)
	GetTodosByBox(ctx context.Context, boxID int64) ([]model.Todo, error)
	// GetTodosByBoxAndDate scopes to select_date_at in [start, end) and
	// excludes soft-deleted rows.
	GetTodosByBoxAndDate(ctx context.Context, boxID int64, start, end time.Time) ([]model.Todo, error)
	// GetTodosByDate scopes to select_date_at in [start, end) and
	// excludes soft-deleted rows.
	GetTodosByDate(ctx context.Context, start, end time.Time) ([]model.Todo, error)
	GetTodosByPriority(ctx context.Context, order PriorityOrder) ([]model.Todo, error)
	// CountCheckedTodos returns the number of todos with the checked
	// flag set, across all boxes and dates.
	CountCheckedTodos(ctx context.Context) (int, error)

	// === Boxes ===

	// InsertBox inserts a box and returns the assigned id, or the
	// existing id when the insert is ignored on conflict.
	InsertBox(ctx context.Context, box model.Box) (int64, error)
	UpdateBox(ctx context.Context, box model.Box) error
	// DeleteBoxByID removes the box and, via the cascading foreign key,
	// every todo referencing it. Deleting a missing box is a no-op.
	DeleteBoxByID(ctx context.Context, id int64) error

	GetBoxes(ctx context.Context) ([]model.Box, error)
	GetBoxByID(ctx context.Context, id int64) (*model.Box, error)
	GetBoxByIDAndDate(ctx context.Context, id int64, start, end time.Time) (*model.Box, error)
}
