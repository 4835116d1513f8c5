package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/czhang/todobox/internal/model"
	"github.com/czhang/todobox/internal/store"
	"github.com/czhang/todobox/tests/testutil"
)

func insertBox(t *testing.T, s *store.SQLiteStore, title string) int64 {
	t.Helper()
	id, err := s.InsertBox(context.Background(), model.Box{Title: title, Color: "#5B9BD5"})
	require.NoError(t, err)
	return id
}

func TestInsertAndGetTodo(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	boxID := insertBox(t, s, "Daily")

	reminder := model.TimeOfDay{Hour: 8, Minute: 30}
	id, err := s.InsertTodo(ctx, model.Todo{
		Title:       "morning routine",
		Description: "stretch\nshower",
		Priority:    model.PriorityHigh,
		Reminder:    &reminder,
		SubTasks: []model.SubTask{
			{Index: 0, Description: "stretch"},
			{Index: 1, Description: "shower"},
		},
		BoxID: boxID,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := s.GetTodoByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "morning routine", got.Title)
	assert.Equal(t, "stretch\nshower", got.Description)
	assert.Equal(t, model.PriorityHigh, got.Priority)
	assert.Equal(t, model.StatusPending, got.Status, "status defaults to PENDING")
	assert.False(t, got.Checked)
	require.NotNil(t, got.Reminder)
	assert.Equal(t, "08:30", got.Reminder.String())
	require.Len(t, got.SubTasks, 2)
	assert.Equal(t, "shower", got.SubTasks[1].Description)
	assert.Equal(t, boxID, got.BoxID)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.LastModifiedAt.IsZero())
}

func TestInsertTodoDefaults(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id, err := s.InsertTodo(ctx, model.Todo{Title: "bare"})
	require.NoError(t, err)

	got, err := s.GetTodoByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.PriorityMedium, got.Priority)
	assert.Equal(t, model.StatusPending, got.Status)
	assert.Nil(t, got.Reminder)
	assert.Zero(t, got.BoxID)
}

func TestInsertTodoIgnoresConflict(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id, err := s.InsertTodo(ctx, model.Todo{ID: 42, Title: "first"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	// A second insert with the same id is silently dropped.
	id, err = s.InsertTodo(ctx, model.Todo{ID: 42, Title: "second"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	got, err := s.GetTodoByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)
}

func TestUpdateTodoReplacesRow(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id, err := s.InsertTodo(ctx, model.Todo{Title: "draft", Priority: model.PriorityLow})
	require.NoError(t, err)

	todo, err := s.GetTodoByID(ctx, id)
	require.NoError(t, err)

	todo.Title = "final"
	todo.Priority = model.PriorityHigh
	todo.Status = model.StatusInProgress
	todo.Checked = true
	require.NoError(t, s.UpdateTodo(ctx, *todo))

	got, err := s.GetTodoByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, model.PriorityHigh, got.Priority)
	assert.Equal(t, model.StatusInProgress, got.Status)
	assert.True(t, got.Checked)
}

func TestUpdateTodoMissingIsNoOp(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	err := s.UpdateTodo(ctx, model.Todo{
		ID:       999,
		Title:    "ghost",
		Priority: model.PriorityMedium,
		Status:   model.StatusPending,
	})
	require.NoError(t, err)

	todos, err := s.GetTodos(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestDeleteTodoMissingIsNoOp(t *testing.T) {
	s := testutil.NewTestStore(t)
	require.NoError(t, s.DeleteTodo(context.Background(), 12345))
}

func TestGetTodoByIDMissing(t *testing.T) {
	s := testutil.NewTestStore(t)
	_, err := s.GetTodoByID(context.Background(), 1)
	require.Error(t, err)
}

func TestDeleteBoxCascades(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	box1 := insertBox(t, s, "Work")
	box2 := insertBox(t, s, "Home")

	_, err := s.InsertTodo(ctx, model.Todo{Title: "report", BoxID: box1})
	require.NoError(t, err)
	keep, err := s.InsertTodo(ctx, model.Todo{Title: "laundry", BoxID: box2})
	require.NoError(t, err)

	require.NoError(t, s.DeleteBoxByID(ctx, box1))

	todos, err := s.GetTodos(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, keep, todos[0].ID)

	boxes, err := s.GetBoxes(ctx)
	require.NoError(t, err)
	require.Len(t, boxes, 1)
	assert.Equal(t, "Home", boxes[0].Title)
}

func TestDeleteBoxMissingIsNoOp(t *testing.T) {
	s := testutil.NewTestStore(t)
	require.NoError(t, s.DeleteBoxByID(context.Background(), 777))
}

func TestGetTodosByDate(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	day := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
	inDay, err := s.InsertTodo(ctx, model.Todo{
		Title:        "today",
		SelectDateAt: day.Add(9 * time.Hour),
	})
	require.NoError(t, err)

	_, err = s.InsertTodo(ctx, model.Todo{
		Title:        "tomorrow",
		SelectDateAt: day.AddDate(0, 0, 1),
	})
	require.NoError(t, err)

	_, err = s.InsertTodo(ctx, model.Todo{
		Title:        "trashed",
		Status:       model.StatusDeleted,
		SelectDateAt: day.Add(12 * time.Hour),
	})
	require.NoError(t, err)

	got, err := s.GetTodosByDate(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, got, 1, "excludes other days and soft-deleted rows")
	assert.Equal(t, inDay, got[0].ID)
}

func TestGetTodosByBoxAndDate(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	box1 := insertBox(t, s, "Work")
	box2 := insertBox(t, s, "Home")
	day := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)

	want, err := s.InsertTodo(ctx, model.Todo{Title: "standup", BoxID: box1, SelectDateAt: day})
	require.NoError(t, err)
	_, err = s.InsertTodo(ctx, model.Todo{Title: "dishes", BoxID: box2, SelectDateAt: day})
	require.NoError(t, err)

	got, err := s.GetTodosByBoxAndDate(ctx, box1, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want, got[0].ID)
}

func TestGetTodosByBox(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	box1 := insertBox(t, s, "Work")
	box2 := insertBox(t, s, "Home")

	first, err := s.InsertTodo(ctx, model.Todo{Title: "one", BoxID: box1})
	require.NoError(t, err)
	second, err := s.InsertTodo(ctx, model.Todo{Title: "two", BoxID: box1})
	require.NoError(t, err)
	_, err = s.InsertTodo(ctx, model.Todo{Title: "other", BoxID: box2})
	require.NoError(t, err)

	got, err := s.GetTodosByBox(ctx, box1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first, got[0].ID)
	assert.Equal(t, second, got[1].ID)
}

func TestGetBoxByIDAndDate(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	day := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
	id, err := s.InsertBox(ctx, model.Box{Title: "Scoped", SelectDateAt: day.Add(8 * time.Hour)})
	require.NoError(t, err)

	got, err := s.GetBoxByIDAndDate(ctx, id, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "Scoped", got.Title)

	_, err = s.GetBoxByIDAndDate(ctx, id, day.AddDate(0, 0, 1), day.AddDate(0, 0, 2))
	require.Error(t, err, "outside the range the box is not found")
}

func TestDeleteAllTodos(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.InsertTodo(ctx, model.Todo{Title: "a"})
	require.NoError(t, err)
	_, err = s.InsertTodo(ctx, model.Todo{Title: "b"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteAllTodos(ctx))

	todos, err := s.GetTodos(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestSearchTodosCaseInsensitive(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.InsertTodo(ctx, model.Todo{Title: "Call Mom"})
	require.NoError(t, err)
	_, err = s.InsertTodo(ctx, model.Todo{Title: "write tests"})
	require.NoError(t, err)

	got, err := s.SearchTodos(ctx, "call")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Call Mom", got[0].Title)

	got, err = s.SearchTodos(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetTodosByPriority(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.InsertTodo(ctx, model.Todo{Title: "low", Priority: model.PriorityLow})
	require.NoError(t, err)
	_, err = s.InsertTodo(ctx, model.Todo{Title: "high", Priority: model.PriorityHigh})
	require.NoError(t, err)
	_, err = s.InsertTodo(ctx, model.Todo{Title: "medium", Priority: model.PriorityMedium})
	require.NoError(t, err)

	got, err := s.GetTodosByPriority(ctx, store.HighFirst)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "high", got[0].Title)
	assert.Equal(t, "medium", got[1].Title)
	assert.Equal(t, "low", got[2].Title)

	got, err = s.GetTodosByPriority(ctx, store.LowFirst)
	require.NoError(t, err)
	assert.Equal(t, "low", got[0].Title)
	assert.Equal(t, "high", got[2].Title)
}

func TestCountCheckedTodos(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	count, err := s.CountCheckedTodos(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = s.InsertTodo(ctx, model.Todo{Title: "done", Checked: true, Status: model.StatusCompleted})
	require.NoError(t, err)
	_, err = s.InsertTodo(ctx, model.Todo{Title: "open"})
	require.NoError(t, err)

	count, err = s.CountCheckedTodos(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInsertBoxIgnoresConflict(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id, err := s.InsertBox(ctx, model.Box{ID: 7, Title: "first", Color: "#FFA94D"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	id, err = s.InsertBox(ctx, model.Box{ID: 7, Title: "second", Color: "#FF6B6B"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	got, err := s.GetBoxByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)
}

func TestUpdateBox(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id := insertBox(t, s, "Misc")
	box, err := s.GetBoxByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, box.LastModifiedAt.IsZero())

	box.Title = "Errands"
	require.NoError(t, s.UpdateBox(ctx, *box))

	got, err := s.GetBoxByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Errands", got.Title)
}

func TestGetBoxesOrder(t *testing.T) {
	s := testutil.NewTestStore(t)

	first := insertBox(t, s, "A")
	second := insertBox(t, s, "B")

	boxes, err := s.GetBoxes(context.Background())
	require.NoError(t, err)
	require.Len(t, boxes, 2)
	assert.Equal(t, first, boxes[0].ID)
	assert.Equal(t, second, boxes[1].ID)
}
