package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/czhang/todobox/internal/model"
	"github.com/czhang/todobox/internal/remind"
	"github.com/czhang/todobox/internal/viewmodel"
)

// snapshotMsg carries a fresh state snapshot from the view model.
type snapshotMsg viewmodel.Snapshot

// reminderMsg carries a fired reminder notification.
type reminderMsg remind.Notification

// clearFlashMsg clears the transient status bar message.
type clearFlashMsg struct{}

// commandDoneMsg reports the outcome of a view model command.
type commandDoneMsg struct {
	err error
}

// waitForSnapshot blocks on the snapshot channel and re-arms itself from
// Update once a snapshot arrives.
func (m Model) waitForSnapshot() tea.Cmd {
	ch := m.vm.Snapshots()
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(s)
	}
}

// waitForReminder blocks on the reminder channel.
func (m Model) waitForReminder() tea.Cmd {
	ch := m.sched.Notifications()
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return reminderMsg(n)
	}
}

// clearFlashAfter clears the status bar flash after the given duration.
func clearFlashAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearFlashMsg{}
	})
}

// saveTodo persists a created or edited todo.
func (m Model) saveTodo(todo model.Todo) tea.Cmd {
	vm := m.vm
	return func() tea.Msg {
		return commandDoneMsg{err: vm.InsertOrUpdateTodo(context.Background(), todo)}
	}
}

// saveBox persists a new box.
func (m Model) saveBox(box model.Box) tea.Cmd {
	vm := m.vm
	return func() tea.Msg {
		_, err := vm.InsertBox(context.Background(), box)
		return commandDoneMsg{err: err}
	}
}

// toggleTodo flips the whole todo's checked state.
func (m Model) toggleTodo(todo model.Todo) tea.Cmd {
	vm := m.vm
	return func() tea.Msg {
		err := vm.UpdateTodoCheckedState(context.Background(), todo, !todo.Checked)
		return commandDoneMsg{err: err}
	}
}

// toggleSubTask flips one sub-task by its positional index.
func (m Model) toggleSubTask(todo model.Todo, subTaskIndex int) tea.Cmd {
	vm := m.vm
	checked := true
	for _, st := range todo.SubTasks {
		if st.Index == subTaskIndex {
			checked = !st.Checked
			break
		}
	}
	return func() tea.Msg {
		err := vm.UpdateSubTaskCheckedState(context.Background(), todo, subTaskIndex, checked)
		return commandDoneMsg{err: err}
	}
}

// deleteTodo removes the todo's row for good.
func (m Model) deleteTodo(id int64) tea.Cmd {
	vm := m.vm
	return func() tea.Msg {
		return commandDoneMsg{err: vm.DeleteTodo(context.Background(), id)}
	}
}

// softDeleteTodo moves the todo to the DELETED status so it drops out of
// the aggregates but keeps its row.
func (m Model) softDeleteTodo(id int64) tea.Cmd {
	vm := m.vm
	return func() tea.Msg {
		err := vm.SetTodoStatus(context.Background(), id, model.StatusDeleted)
		return commandDoneMsg{err: err}
	}
}

// setDate switches the selected day.
func (m Model) setDate(date time.Time) tea.Cmd {
	vm := m.vm
	return func() tea.Msg {
		return commandDoneMsg{err: vm.SetSelectedDate(context.Background(), date)}
	}
}

// setCalendarExpanded widens or narrows the visible activity range.
func (m Model) setCalendarExpanded(expanded bool) tea.Cmd {
	vm := m.vm
	return func() tea.Msg {
		return commandDoneMsg{err: vm.SetCalendarExpanded(context.Background(), expanded)}
	}
}

// selectBox changes the box filter; nil selects all boxes.
func (m Model) selectBox(boxID *int64) tea.Cmd {
	vm := m.vm
	return func() tea.Msg {
		return commandDoneMsg{err: vm.SelectBox(context.Background(), boxID)}
	}
}
