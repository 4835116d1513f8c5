package boxlist

import (
	"fmt"
	"sort"
	"strings"

	"github.com/czhang/todobox/internal/model"
	"github.com/czhang/todobox/internal/theme"
)

// SortOrder selects how todos are ordered within each box.
type SortOrder int

const (
	SortInsertion SortOrder = iota
	SortHighFirst
	SortLowFirst
)

// row is one selectable line: a todo, or a sub-task under one.
type row struct {
	todo         model.Todo
	subTaskIndex int // -1 for the parent todo line
}

// Model renders the per-date aggregate as a cursor-navigable list of
// boxes, their todos, and each todo's sub-tasks.
type Model struct {
	boxes  []model.BoxWithTodos
	rows   []row
	cursor int
	sort   SortOrder
	width  int
	height int
}

// New creates an empty box list.
func New(width, height int) Model {
	return Model{width: width, height: height}
}

// SetSize updates the render dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetBoxes replaces the rendered aggregate and rebuilds the cursor rows,
// clamping the cursor to the new row count.
func (m *Model) SetBoxes(boxes []model.BoxWithTodos) {
	m.boxes = boxes
	m.rebuildRows()
}

// CycleSort advances insertion -> high-first -> low-first -> insertion.
func (m *Model) CycleSort() {
	m.sort = (m.sort + 1) % 3
	m.rebuildRows()
}

// Sort returns the current sort order.
func (m Model) Sort() SortOrder {
	return m.sort
}

// CursorUp moves the selection up one row.
func (m *Model) CursorUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// CursorDown moves the selection down one row.
func (m *Model) CursorDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
	}
}

// Selected returns the todo under the cursor and, when the cursor sits on
// a sub-task line, that sub-task's index (or -1 for the todo itself).
// ok is false when the list is empty.
func (m Model) Selected() (todo model.Todo, subTaskIndex int, ok bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return model.Todo{}, -1, false
	}
	r := m.rows[m.cursor]
	return r.todo, r.subTaskIndex, true
}

// rebuildRows flattens the aggregate into selectable lines, applying the
// current sort order within each box.
func (m *Model) rebuildRows() {
	m.rows = m.rows[:0]
	for _, bwt := range m.boxes {
		todos := bwt.Todos
		if m.sort != SortInsertion {
			todos = append([]model.Todo(nil), todos...)
			sort.SliceStable(todos, func(i, j int) bool {
				if m.sort == SortLowFirst {
					return todos[i].Priority.Rank() > todos[j].Priority.Rank()
				}
				return todos[i].Priority.Rank() < todos[j].Priority.Rank()
			})
		}
		for _, t := range todos {
			m.rows = append(m.rows, row{todo: t, subTaskIndex: -1})
			for _, st := range t.SubTasks {
				m.rows = append(m.rows, row{todo: t, subTaskIndex: st.Index})
			}
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the box list.
func (m Model) View() string {
	if len(m.boxes) == 0 {
		return theme.HelpStyle.Render("No boxes yet. Press N to create one.")
	}

	var b strings.Builder
	line := 0
	for _, bwt := range m.boxes {
		title := fmt.Sprintf("%s  %d/%d done", bwt.Box.Title, bwt.DoneCount, len(bwt.Todos))
		b.WriteString(theme.BoxTitleStyle.Render(title))
		b.WriteString("\n")

		todos := m.todosInRenderOrder(bwt)
		if len(todos) == 0 {
			b.WriteString(theme.DimStyle.Render("  (nothing scheduled)"))
			b.WriteString("\n")
		}
		for _, t := range todos {
			b.WriteString(m.renderTodoLine(t, line == m.cursor))
			b.WriteString("\n")
			line++
			for _, st := range t.SubTasks {
				b.WriteString(m.renderSubTaskLine(st, line == m.cursor))
				b.WriteString("\n")
				line++
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// todosInRenderOrder mirrors the ordering used by rebuildRows so the
// cursor position and the rendered lines stay aligned.
func (m Model) todosInRenderOrder(bwt model.BoxWithTodos) []model.Todo {
	todos := bwt.Todos
	if m.sort == SortInsertion {
		return todos
	}
	sorted := append([]model.Todo(nil), todos...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if m.sort == SortLowFirst {
			return sorted[i].Priority.Rank() > sorted[j].Priority.Rank()
		}
		return sorted[i].Priority.Rank() < sorted[j].Priority.Rank()
	})
	return sorted
}

func (m Model) renderTodoLine(t model.Todo, selected bool) string {
	check := "[ ]"
	if t.Checked {
		check = "[x]"
	}

	parts := []string{
		check,
		theme.PriorityStyle(t.Priority).Render(t.Priority.Display()),
		theme.StatusStyle(t.Status).Render(t.Title),
	}
	if t.Reminder != nil {
		parts = append(parts, theme.HelpStyle.Render("⏰ "+t.Reminder.String()))
	}

	line := strings.Join(parts, " ")
	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

func (m Model) renderSubTaskLine(st model.SubTask, selected bool) string {
	check := "[ ]"
	if st.Checked {
		check = "[x]"
	}
	line := fmt.Sprintf("%s %s", check, st.Description)
	if selected {
		return theme.SelectedItemStyle.Render("  " + line)
	}
	return theme.SubTaskStyle.Render(line)
}
