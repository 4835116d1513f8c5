package boxlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/czhang/todobox/internal/model"
)

func sampleBoxes() []model.BoxWithTodos {
	return []model.BoxWithTodos{
		{
			Box: model.Box{ID: 1, Title: "Work"},
			Todos: []model.Todo{
				{ID: 10, Title: "low", Priority: model.PriorityLow},
				{ID: 11, Title: "high", Priority: model.PriorityHigh, SubTasks: []model.SubTask{
					{Index: 0, Description: "part one"},
					{Index: 1, Description: "part two"},
				}},
			},
		},
		{
			Box: model.Box{ID: 2, Title: "Home"},
			Todos: []model.Todo{
				{ID: 12, Title: "medium", Priority: model.PriorityMedium},
			},
		},
	}
}

func TestSelectedWalksSubTasks(t *testing.T) {
	m := New(80, 24)
	m.SetBoxes(sampleBoxes())

	todo, subTaskIndex, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, int64(10), todo.ID)
	assert.Equal(t, -1, subTaskIndex)

	m.CursorDown()
	todo, subTaskIndex, _ = m.Selected()
	assert.Equal(t, int64(11), todo.ID)
	assert.Equal(t, -1, subTaskIndex)

	m.CursorDown()
	todo, subTaskIndex, _ = m.Selected()
	assert.Equal(t, int64(11), todo.ID)
	assert.Equal(t, 0, subTaskIndex, "sub-task rows carry their index")

	m.CursorDown()
	_, subTaskIndex, _ = m.Selected()
	assert.Equal(t, 1, subTaskIndex)

	// Last row is Home's only todo; the cursor stops there.
	m.CursorDown()
	m.CursorDown()
	todo, _, _ = m.Selected()
	assert.Equal(t, int64(12), todo.ID)
}

func TestSelectedEmpty(t *testing.T) {
	m := New(80, 24)
	_, _, ok := m.Selected()
	assert.False(t, ok)
}

func TestCycleSortReordersWithinBox(t *testing.T) {
	m := New(80, 24)
	m.SetBoxes(sampleBoxes())

	m.CycleSort()
	require.Equal(t, SortHighFirst, m.Sort())
	todo, _, _ := m.Selected()
	assert.Equal(t, int64(11), todo.ID, "high priority sorts first")

	m.CycleSort()
	require.Equal(t, SortLowFirst, m.Sort())
	todo, _, _ = m.Selected()
	assert.Equal(t, int64(10), todo.ID)

	m.CycleSort()
	assert.Equal(t, SortInsertion, m.Sort())
}

func TestSetBoxesClampsCursor(t *testing.T) {
	m := New(80, 24)
	m.SetBoxes(sampleBoxes())
	for i := 0; i < 10; i++ {
		m.CursorDown()
	}

	m.SetBoxes(sampleBoxes()[1:])
	todo, _, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, int64(12), todo.ID)
}
