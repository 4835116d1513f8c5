// Package viewmodel holds the UI-observable application state and the
// commands that mutate it. Every command runs its store operations
// strictly in sequence and finishes by recomputing the affected state as
// a unit and publishing a fresh snapshot; there are no partial updates.
package viewmodel

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/czhang/todobox/internal/model"
	"github.com/czhang/todobox/internal/remind"
	"github.com/czhang/todobox/internal/repo"
)

// Snapshot is one atomically-published view of the observable state.
type Snapshot struct {
	SelectedDate  time.Time
	SelectedBoxID *int64
	SearchQuery   string

	// Boxes is the cached box list, refreshed when boxes change.
	Boxes []model.Box

	// BoxesWithTodos is the date-scoped aggregate with the search filter
	// applied: a non-empty query keeps only matching todos and drops
	// boxes left empty.
	BoxesWithTodos []model.BoxWithTodos

	// Activity covers the visible calendar range: the selected week, or
	// the whole month when the calendar is expanded.
	Activity []model.DailyActivity

	// TotalDoneCount is computed once at startup and never refreshed.
	TotalDoneCount int
}

// Options configures ViewModel construction.
type Options struct {
	// FirstRun triggers seeding of the default boxes during Init.
	FirstRun bool

	// MarkSeeded is called after seeding so the first-run flag can be
	// persisted outside the store. May be nil.
	MarkSeeded func() error
}

// ViewModel issues commands against the repository and republishes
// aggregated state after every mutation.
type ViewModel struct {
	repo  *repo.Repository
	sched *remind.Scheduler
	opts  Options

	mu               sync.Mutex
	selectedDate     time.Time
	selectedBoxID    *int64
	searchQuery      string
	calendarExpanded bool
	boxes            []model.Box
	boxesWithTodos   []model.BoxWithTodos
	activity         []model.DailyActivity
	totalDoneCount   int

	snapshots chan Snapshot
}

// defaultBoxes are seeded on first run.
var defaultBoxes = []model.Box{
	{Title: "Daily", Color: "#5B9BD5"},
	{Title: "Work", Color: "#FFA94D"},
	{Title: "Study", Color: "#6BCB77"},
}

// New creates a ViewModel over the repository and reminder scheduler.
// Call Init before issuing commands.
func New(r *repo.Repository, sched *remind.Scheduler, opts Options) *ViewModel {
	return &ViewModel{
		repo:         r,
		sched:        sched,
		opts:         opts,
		selectedDate: time.Now(),
		snapshots:    make(chan Snapshot, 16),
	}
}

// Init seeds the default boxes on first run, computes the one-time done
// count, loads the box list, and performs the initial full refresh.
func (vm *ViewModel) Init(ctx context.Context) error {
	// One-time stat: never refreshed after startup.
	doneCount, err := vm.repo.CountCheckedTodos(ctx)
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.totalDoneCount = doneCount
	vm.mu.Unlock()

	if vm.opts.FirstRun {
		for _, box := range defaultBoxes {
			if _, err := vm.repo.InsertBox(ctx, box); err != nil {
				return err
			}
		}
		if vm.opts.MarkSeeded != nil {
			if err := vm.opts.MarkSeeded(); err != nil {
				return err
			}
		}
	}

	if err := vm.reloadBoxes(ctx); err != nil {
		return err
	}
	return vm.refresh(ctx)
}

// Snapshots returns the channel on which fresh state snapshots arrive.
func (vm *ViewModel) Snapshots() <-chan Snapshot {
	return vm.snapshots
}

// Snapshot returns the current state as of the last refresh.
func (vm *ViewModel) Snapshot() Snapshot {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.snapshotLocked()
}

// InsertOrUpdateTodo persists the todo, deriving sub-tasks from its
// description first, then schedules a reminder when one is due and
// refreshes the date-scoped state. A todo without an id is inserted;
// otherwise its row is replaced.
func (vm *ViewModel) InsertOrUpdateTodo(ctx context.Context, todo model.Todo) error {
	if todo.Description != "" {
		todo.SubTasks = model.SubTasksFromDescription(todo.Description)
	}
	if todo.SelectDateAt.IsZero() {
		vm.mu.Lock()
		todo.SelectDateAt = vm.selectedDate
		vm.mu.Unlock()
	}

	if todo.ID == 0 {
		id, err := vm.repo.InsertTodo(ctx, todo)
		if err != nil {
			return err
		}
		todo.ID = id
	} else {
		if err := vm.repo.UpdateTodo(ctx, todo); err != nil {
			return err
		}
	}

	// Best-effort: a reminder in the past is skipped, and scheduling
	// failures are not the command's concern.
	vm.sched.Schedule(todo)

	return vm.refresh(ctx)
}

// DeleteTodo hard-deletes the todo and refreshes.
func (vm *ViewModel) DeleteTodo(ctx context.Context, id int64) error {
	if err := vm.repo.DeleteTodo(ctx, id); err != nil {
		return err
	}
	return vm.refresh(ctx)
}

// SetTodoStatus loads the todo, replaces its status, and refreshes.
// Setting StatusDeleted soft-deletes: the row stays but disappears from
// every aggregate.
func (vm *ViewModel) SetTodoStatus(ctx context.Context, id int64, status model.Status) error {
	todo, err := vm.repo.GetTodoByID(ctx, id)
	if err != nil {
		return err
	}
	todo.Status = status
	if err := vm.repo.UpdateTodo(ctx, *todo); err != nil {
		return err
	}
	return vm.refresh(ctx)
}

// UpdateTodoCheckedState checks or unchecks the whole todo: checking
// marks every sub-task checked and the status COMPLETED, unchecking
// clears every sub-task and resets the status to PENDING.
func (vm *ViewModel) UpdateTodoCheckedState(ctx context.Context, todo model.Todo, checked bool) error {
	todo.Checked = checked
	for i := range todo.SubTasks {
		todo.SubTasks[i].Checked = checked
	}
	if checked {
		todo.Status = model.StatusCompleted
	} else {
		todo.Status = model.StatusPending
	}

	if err := vm.repo.UpdateTodo(ctx, todo); err != nil {
		return err
	}
	return vm.refresh(ctx)
}

// UpdateSubTaskCheckedState toggles a single sub-task by its positional
// index, rederives the parent's status and checked flag, persists, and
// refreshes. An index that resolves to no sub-task is a silent no-op.
func (vm *ViewModel) UpdateSubTaskCheckedState(
	ctx context.Context,
	todo model.Todo,
	subTaskIndex int,
	checked bool,
) error {
	found := false
	for i := range todo.SubTasks {
		if todo.SubTasks[i].Index == subTaskIndex {
			todo.SubTasks[i].Checked = checked
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	allChecked := model.AllChecked(todo.SubTasks)
	if allChecked {
		todo.Status = model.StatusCompleted
	} else {
		todo.Status = model.StatusInProgress
	}
	todo.Checked = allChecked

	if err := vm.repo.UpdateTodo(ctx, todo); err != nil {
		return err
	}
	return vm.refresh(ctx)
}

// InsertBox persists a new box, refreshes the box list cache, and
// refreshes the date-scoped aggregate. Returns the assigned id.
func (vm *ViewModel) InsertBox(ctx context.Context, box model.Box) (int64, error) {
	id, err := vm.repo.InsertBox(ctx, box)
	if err != nil {
		return 0, err
	}
	if err := vm.reloadBoxes(ctx); err != nil {
		return id, err
	}
	return id, vm.refresh(ctx)
}

// DeleteBoxByID cascade-deletes the box and refreshes.
func (vm *ViewModel) DeleteBoxByID(ctx context.Context, id int64) error {
	if err := vm.repo.DeleteBoxByID(ctx, id); err != nil {
		return err
	}
	vm.mu.Lock()
	if vm.selectedBoxID != nil && *vm.selectedBoxID == id {
		vm.selectedBoxID = nil
	}
	vm.mu.Unlock()
	if err := vm.reloadBoxes(ctx); err != nil {
		return err
	}
	return vm.refresh(ctx)
}

// SelectBox filters the date-scoped aggregate to one box; nil means all
// boxes.
func (vm *ViewModel) SelectBox(ctx context.Context, boxID *int64) error {
	vm.mu.Lock()
	vm.selectedBoxID = boxID
	vm.mu.Unlock()
	return vm.refresh(ctx)
}

// SetSelectedDate switches the date-scoped views to another day.
func (vm *ViewModel) SetSelectedDate(ctx context.Context, date time.Time) error {
	vm.mu.Lock()
	vm.selectedDate = date
	vm.mu.Unlock()
	return vm.refresh(ctx)
}

// SetCalendarExpanded toggles between the week strip and the full month
// grid, which changes the visible activity range.
func (vm *ViewModel) SetCalendarExpanded(ctx context.Context, expanded bool) error {
	vm.mu.Lock()
	vm.calendarExpanded = expanded
	vm.mu.Unlock()
	return vm.refresh(ctx)
}

// SetSearchQuery updates the search text and republishes. The filter is
// applied to the cached aggregate; no store round trip happens.
func (vm *ViewModel) SetSearchQuery(query string) {
	vm.mu.Lock()
	vm.searchQuery = query
	snapshot := vm.snapshotLocked()
	vm.mu.Unlock()
	vm.publish(snapshot)
}

// reloadBoxes refreshes the cached box list.
func (vm *ViewModel) reloadBoxes(ctx context.Context) error {
	boxes, err := vm.repo.GetBoxes(ctx)
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.boxes = boxes
	vm.mu.Unlock()
	return nil
}

// refresh recomputes the full date-scoped aggregate and the visible
// activity range, then publishes a snapshot. Across concurrent commands
// the last refresh to complete wins.
func (vm *ViewModel) refresh(ctx context.Context) error {
	vm.mu.Lock()
	date := vm.selectedDate
	boxID := vm.selectedBoxID
	expanded := vm.calendarExpanded
	vm.mu.Unlock()

	boxesWithTodos, err := vm.repo.GetBoxesWithTodosByDate(ctx, date, boxID)
	if err != nil {
		return err
	}

	start, end := visibleRange(date, expanded)
	activity, err := vm.repo.GetActivityRange(ctx, start, end)
	if err != nil {
		return err
	}

	vm.mu.Lock()
	vm.boxesWithTodos = boxesWithTodos
	vm.activity = activity
	snapshot := vm.snapshotLocked()
	vm.mu.Unlock()

	vm.publish(snapshot)
	return nil
}

// snapshotLocked builds a Snapshot from current state. Caller holds mu.
func (vm *ViewModel) snapshotLocked() Snapshot {
	return Snapshot{
		SelectedDate:   vm.selectedDate,
		SelectedBoxID:  vm.selectedBoxID,
		SearchQuery:    vm.searchQuery,
		Boxes:          vm.boxes,
		BoxesWithTodos: filterBySearch(vm.boxesWithTodos, vm.searchQuery),
		Activity:       vm.activity,
		TotalDoneCount: vm.totalDoneCount,
	}
}

// publish delivers a snapshot without blocking the command.
func (vm *ViewModel) publish(s Snapshot) {
	select {
	case vm.snapshots <- s:
	default:
		// Drop when the consumer lags; the next refresh supersedes it.
	}
}

// filterBySearch applies the reactive search view: an empty query passes
// the aggregate through; otherwise each box keeps only non-deleted todos
// whose title contains the query case-insensitively, and boxes left with
// no matches are dropped.
func filterBySearch(boxes []model.BoxWithTodos, query string) []model.BoxWithTodos {
	if query == "" {
		return boxes
	}
	needle := strings.ToLower(query)

	var filtered []model.BoxWithTodos
	for _, bwt := range boxes {
		var matches []model.Todo
		done := 0
		for _, t := range bwt.Todos {
			if t.Deleted() {
				continue
			}
			if !strings.Contains(strings.ToLower(t.Title), needle) {
				continue
			}
			matches = append(matches, t)
			if t.Checked {
				done++
			}
		}
		if len(matches) == 0 {
			continue
		}
		filtered = append(filtered, model.BoxWithTodos{
			Box:       bwt.Box,
			Todos:     matches,
			DoneCount: done,
		})
	}
	return filtered
}

// visibleRange returns the inclusive date range the calendar shows: the
// Monday-to-Sunday week of date, or the whole month when expanded.
func visibleRange(date time.Time, expanded bool) (time.Time, time.Time) {
	if expanded {
		first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		return first, last
	}

	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the week
	}
	monday := date.AddDate(0, 0, 1-weekday)
	return monday, monday.AddDate(0, 0, 6)
}
