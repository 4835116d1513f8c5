package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/czhang/todobox/internal/model"
)

// todoColumns is the insert/select column order for todo_data.
const todoColumns = `title, priority, description, is_checked, reminder_time,
	status, created_at, select_date_at, last_modified_at, sub_tasks, todo_box_id`

// InsertTodo inserts a todo and returns the assigned id. A conflicting
// explicit id is silently ignored per the insert contract.
func (s *SQLiteStore) InsertTodo(ctx context.Context, todo model.Todo) (int64, error) {
	now := time.Now().UTC()
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = now
	}
	if todo.SelectDateAt.IsZero() {
		todo.SelectDateAt = now
	}
	todo.LastModifiedAt = now
	if todo.Priority == "" {
		todo.Priority = model.PriorityMedium
	}
	if todo.Status == "" {
		todo.Status = model.StatusPending
	}

	subTasks, err := json.Marshal(todo.SubTasks)
	if err != nil {
		return 0, fmt.Errorf("marshaling sub tasks: %w", err)
	}

	args := []interface{}{
		todo.Title, string(todo.Priority), nullString(todo.Description),
		boolToInt(todo.Checked), reminderText(todo.Reminder),
		string(todo.Status), todo.CreatedAt.UTC(), todo.SelectDateAt.UTC(),
		todo.LastModifiedAt.UTC(), string(subTasks), nullID(todo.BoxID),
	}

	if todo.ID != 0 {
		result, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO todo_data (id, `+todoColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			append([]interface{}{todo.ID}, args...)...,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting todo %d: %w", todo.ID, err)
		}
		// Ignored on conflict; the existing row keeps its id.
		_ = result
		return todo.ID, nil
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO todo_data (`+todoColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting todo: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading assigned todo id: %w", err)
	}
	return id, nil
}

// UpdateTodo replaces every field of the row matching the todo's id.
// A missing row is a no-op per the update contract.
func (s *SQLiteStore) UpdateTodo(ctx context.Context, todo model.Todo) error {
	todo.LastModifiedAt = time.Now().UTC()

	subTasks, err := json.Marshal(todo.SubTasks)
	if err != nil {
		return fmt.Errorf("marshaling sub tasks: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE todo_data SET
			title = ?, priority = ?, description = ?, is_checked = ?,
			reminder_time = ?, status = ?, created_at = ?, select_date_at = ?,
			last_modified_at = ?, sub_tasks = ?, todo_box_id = ?
		WHERE id = ?`,
		todo.Title, string(todo.Priority), nullString(todo.Description),
		boolToInt(todo.Checked), reminderText(todo.Reminder),
		string(todo.Status), todo.CreatedAt.UTC(), todo.SelectDateAt.UTC(),
		todo.LastModifiedAt, string(subTasks), nullID(todo.BoxID),
		todo.ID,
	)
	if err != nil {
		return fmt.Errorf("updating todo %d: %w", todo.ID, err)
	}
	return nil
}

// DeleteTodo removes the row. Deleting a missing todo is a no-op.
func (s *SQLiteStore) DeleteTodo(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM todo_data WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting todo %d: %w", id, err)
	}
	return nil
}

// DeleteAllTodos clears the todo table entirely.
func (s *SQLiteStore) DeleteAllTodos(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM todo_data"); err != nil {
		return fmt.Errorf("deleting all todos: %w", err)
	}
	return nil
}

// GetTodoByID retrieves a single todo by id.
func (s *SQLiteStore) GetTodoByID(ctx context.Context, id int64) (*model.Todo, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, "+todoColumns+" FROM todo_data WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("getting todo %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("getting todo %d: %w", id, err)
		}
		return nil, fmt.Errorf("getting todo %d: %w", id, sql.ErrNoRows)
	}
	todo, err := scanTodo(rows)
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// GetTodos returns all todos in insertion order.
func (s *SQLiteStore) GetTodos(ctx context.Context) ([]model.Todo, error) {
	return s.queryTodos(ctx,
		"SELECT id, "+todoColumns+" FROM todo_data ORDER BY id ASC")
}

// SearchTodos returns todos whose title contains the query,
// case-insensitively, in insertion order.
func (s *SQLiteStore) SearchTodos(ctx context.Context, query string) ([]model.Todo, error) {
	return s.queryTodos(ctx,
		"SELECT id, "+todoColumns+" FROM todo_data WHERE title LIKE ? ORDER BY id ASC",
		"%"+query+"%")
}

// GetTodosByBox returns all todos owned by the box, in insertion order.
func (s *SQLiteStore) GetTodosByBox(ctx context.Context, boxID int64) ([]model.Todo, error) {
	return s.queryTodos(ctx,
		"SELECT id, "+todoColumns+" FROM todo_data WHERE todo_box_id = ? ORDER BY id ASC",
		boxID)
}

// GetTodosByBoxAndDate returns the box's todos scheduled in [start, end),
// excluding soft-deleted rows.
func (s *SQLiteStore) GetTodosByBoxAndDate(
	ctx context.Context,
	boxID int64,
	start, end time.Time,
) ([]model.Todo, error) {
	return s.queryTodos(ctx, `
		SELECT id, `+todoColumns+` FROM todo_data
		WHERE todo_box_id = ? AND select_date_at >= ? AND select_date_at < ?
			AND status != 'DELETED'
		ORDER BY id ASC`,
		boxID, start.UTC(), end.UTC())
}

// GetTodosByDate returns all todos scheduled in [start, end), excluding
// soft-deleted rows.
func (s *SQLiteStore) GetTodosByDate(
	ctx context.Context,
	start, end time.Time,
) ([]model.Todo, error) {
	return s.queryTodos(ctx, `
		SELECT id, `+todoColumns+` FROM todo_data
		WHERE select_date_at >= ? AND select_date_at < ? AND status != 'DELETED'
		ORDER BY id ASC`,
		start.UTC(), end.UTC())
}

// GetTodosByPriority returns all todos ordered by the fixed 3-tier
// priority rank, then insertion order within a tier.
func (s *SQLiteStore) GetTodosByPriority(
	ctx context.Context,
	order PriorityOrder,
) ([]model.Todo, error) {
	direction := "ASC"
	if order == LowFirst {
		direction = "DESC"
	}
	return s.queryTodos(ctx, fmt.Sprintf(`
		SELECT id, `+todoColumns+` FROM todo_data
		ORDER BY CASE priority
			WHEN 'HIGH' THEN 1
			WHEN 'MEDIUM' THEN 2
			WHEN 'LOW' THEN 3
			ELSE 4
		END %s, id ASC`, direction))
}

// CountCheckedTodos returns the number of todos with the checked flag set.
func (s *SQLiteStore) CountCheckedTodos(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM todo_data WHERE is_checked = 1")
	if err != nil {
		return 0, fmt.Errorf("counting checked todos: %w", err)
	}
	return count, nil
}

// queryTodos runs a todo select and scans all rows.
func (s *SQLiteStore) queryTodos(
	ctx context.Context,
	query string,
	args ...interface{},
) ([]model.Todo, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

// scanTodo scans a todo row. Unrecognized priority or status text is a
// data error for that row and is surfaced, not recovered.
func scanTodo(rows *sqlx.Rows) (model.Todo, error) {
	var (
		todo         model.Todo
		priority     string
		description  sql.NullString
		checkedInt   int
		reminderTime sql.NullString
		status       string
		subTasks     string
		boxID        sql.NullInt64
	)

	err := rows.Scan(
		&todo.ID, &todo.Title, &priority, &description, &checkedInt,
		&reminderTime, &status, &todo.CreatedAt, &todo.SelectDateAt,
		&todo.LastModifiedAt, &subTasks, &boxID,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("scanning todo row: %w", err)
	}

	todo.Priority, err = model.ParsePriority(priority)
	if err != nil {
		return model.Todo{}, fmt.Errorf("reading todo %d: %w", todo.ID, err)
	}
	todo.Status, err = model.ParseStatus(status)
	if err != nil {
		return model.Todo{}, fmt.Errorf("reading todo %d: %w", todo.ID, err)
	}

	todo.Description = description.String
	todo.Checked = checkedInt != 0
	todo.BoxID = boxID.Int64

	if reminderTime.Valid {
		t, err := model.ParseTimeOfDay(reminderTime.String)
		if err != nil {
			return model.Todo{}, fmt.Errorf("reading todo %d: %w", todo.ID, err)
		}
		todo.Reminder = &t
	}

	if subTasks != "" {
		if err := json.Unmarshal([]byte(subTasks), &todo.SubTasks); err != nil {
			return model.Todo{}, fmt.Errorf("unmarshaling sub tasks for todo %d: %w", todo.ID, err)
		}
	}

	return todo, nil
}

// nullString stores empty text as NULL.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// nullID stores the zero id as NULL so the foreign key stays satisfiable
// for todos not yet assigned to a box.
func nullID(id int64) interface{} {
	if id == 0 {
		return nil
	}
	return id
}

// reminderText renders an optional reminder as "HH:MM" or NULL.
func reminderText(t *model.TimeOfDay) interface{} {
	if t == nil {
		return nil
	}
	return t.String()
}
