// Package repo composes raw store rows into the aggregates the view-model
// renders: boxes with their date-scoped todos and per-day activity
// summaries. It enforces no business rules beyond excluding soft-deleted
// rows; store errors propagate unwrapped in meaning to the caller.
package repo

import (
	"context"
	"sync"
	"time"

	"github.com/czhang/todobox/internal/model"
	"github.com/czhang/todobox/internal/store"
)

// Repository mediates between the data-access layer and the view-model.
// The store handle is injected at construction; there is no ambient
// global instance.
type Repository struct {
	store store.Store

	mu       sync.Mutex
	watchers map[int64][]*todoWatcher
}

// todoWatcher is a single live subscription to one todo's state.
type todoWatcher struct {
	id int64
	ch chan model.Todo
}

// New creates a Repository over the given store.
func New(s store.Store) *Repository {
	return &Repository{
		store:    s,
		watchers: make(map[int64][]*todoWatcher),
	}
}

// Store exposes the underlying store for callers that need raw queries.
func (r *Repository) Store() store.Store {
	return r.store
}

// InsertTodo persists a new todo and returns the assigned id.
func (r *Repository) InsertTodo(ctx context.Context, todo model.Todo) (int64, error) {
	id, err := r.store.InsertTodo(ctx, todo)
	if err != nil {
		return 0, err
	}
	r.notifyWatchers(ctx, id)
	return id, nil
}

// UpdateTodo replaces the stored todo and republishes it to watchers.
func (r *Repository) UpdateTodo(ctx context.Context, todo model.Todo) error {
	if err := r.store.UpdateTodo(ctx, todo); err != nil {
		return err
	}
	r.notifyWatchers(ctx, todo.ID)
	return nil
}

// DeleteTodo hard-deletes the row and ends any live subscriptions to it.
func (r *Repository) DeleteTodo(ctx context.Context, id int64) error {
	if err := r.store.DeleteTodo(ctx, id); err != nil {
		return err
	}
	r.closeWatchers(id)
	return nil
}

// GetTodoByID retrieves a single todo.
func (r *Repository) GetTodoByID(ctx context.Context, id int64) (*model.Todo, error) {
	return r.store.GetTodoByID(ctx, id)
}

// InsertBox persists a box and returns the assigned identifier.
func (r *Repository) InsertBox(ctx context.Context, box model.Box) (int64, error) {
	return r.store.InsertBox(ctx, box)
}

// DeleteBoxByID removes the box; the store cascades to its todos.
func (r *Repository) DeleteBoxByID(ctx context.Context, id int64) error {
	return r.store.DeleteBoxByID(ctx, id)
}

// GetBoxes returns all boxes in insertion order.
func (r *Repository) GetBoxes(ctx context.Context) ([]model.Box, error) {
	return r.store.GetBoxes(ctx)
}

// CountCheckedTodos returns the global count of checked todos.
func (r *Repository) CountCheckedTodos(ctx context.Context) (int, error) {
	return r.store.CountCheckedTodos(ctx)
}

// GetBoxesWithTodosByDate returns, for every box (or only the box matching
// the optional filter), its non-deleted todos scheduled on the given
// calendar day plus the count of checked ones. The day's todos are fetched
// with a single range query and grouped by box in memory; boxes with no
// todos on the date still appear with an empty list.
func (r *Repository) GetBoxesWithTodosByDate(
	ctx context.Context,
	date time.Time,
	boxID *int64,
) ([]model.BoxWithTodos, error) {
	boxes, err := r.store.GetBoxes(ctx)
	if err != nil {
		return nil, err
	}
	if boxID != nil {
		filtered := boxes[:0]
		for _, b := range boxes {
			if b.ID == *boxID {
				filtered = append(filtered, b)
			}
		}
		boxes = filtered
	}

	start, end := dayBounds(date)
	todos, err := r.store.GetTodosByDate(ctx, start, end)
	if err != nil {
		return nil, err
	}

	byBox := make(map[int64][]model.Todo, len(boxes))
	for _, t := range todos {
		if t.Deleted() {
			continue
		}
		byBox[t.BoxID] = append(byBox[t.BoxID], t)
	}

	result := make([]model.BoxWithTodos, 0, len(boxes))
	for _, b := range boxes {
		group := byBox[b.ID]
		done := 0
		for _, t := range group {
			if t.Checked {
				done++
			}
		}
		result = append(result, model.BoxWithTodos{
			Box:       b,
			Todos:     group,
			DoneCount: done,
		})
	}
	return result, nil
}

// GetActivityOnDate computes the daily summary for one calendar day.
func (r *Repository) GetActivityOnDate(
	ctx context.Context,
	date time.Time,
) (model.DailyActivity, error) {
	activities, err := r.GetActivityRange(ctx, date, date)
	if err != nil {
		return model.DailyActivity{}, err
	}
	return activities[0], nil
}

// GetActivityRange returns one DailyActivity per calendar day in the
// inclusive [start, end] range, ordered by date. The qualifying todos are
// fetched with a single range query and bucketed per day in memory, so
// the cost is one round trip regardless of the range length.
func (r *Repository) GetActivityRange(
	ctx context.Context,
	start, end time.Time,
) ([]model.DailyActivity, error) {
	first := dayStart(start)
	last := dayStart(end)

	todos, err := r.store.GetTodosByDate(ctx, first, last.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	type bucket struct{ total, done int }
	byDay := make(map[time.Time]*bucket)
	for _, t := range todos {
		if t.Deleted() {
			continue
		}
		day := dayStart(t.SelectDateAt)
		b, ok := byDay[day]
		if !ok {
			b = &bucket{}
			byDay[day] = b
		}
		b.total++
		if t.Checked {
			b.done++
		}
	}

	var activities []model.DailyActivity
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		total, done := 0, 0
		if b, ok := byDay[day]; ok {
			total, done = b.total, b.done
		}
		activities = append(activities, model.DailyActivity{
			Date:       day,
			TotalTodos: total,
			DoneTodos:  done,
			Activity:   model.ActivityForCount(total),
		})
	}
	return activities, nil
}

// WatchTodo returns a channel delivering the todo's current state
// immediately and again after every mutation through this repository.
// The channel closes when the todo is deleted or ctx is done.
func (r *Repository) WatchTodo(ctx context.Context, id int64) (<-chan model.Todo, error) {
	todo, err := r.store.GetTodoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	w := &todoWatcher{id: id, ch: make(chan model.Todo, 8)}
	w.ch <- *todo

	r.mu.Lock()
	r.watchers[id] = append(r.watchers[id], w)
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.removeWatcher(w)
	}()

	return w.ch, nil
}

// notifyWatchers re-reads the todo and pushes it to every live
// subscription. Slow subscribers are skipped rather than blocking the
// mutating command.
func (r *Repository) notifyWatchers(ctx context.Context, id int64) {
	r.mu.Lock()
	active := len(r.watchers[id]) > 0
	r.mu.Unlock()
	if !active {
		return
	}

	todo, err := r.store.GetTodoByID(ctx, id)
	if err != nil {
		return
	}

	// Sends happen under the same lock that guards channel close, so a
	// subscription torn down concurrently cannot receive after close.
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.watchers[id] {
		select {
		case w.ch <- *todo:
		default:
		}
	}
}

// closeWatchers ends every subscription to the given todo id.
func (r *Repository) closeWatchers(id int64) {
	r.mu.Lock()
	watchers := r.watchers[id]
	delete(r.watchers, id)
	r.mu.Unlock()

	for _, w := range watchers {
		close(w.ch)
	}
}

// removeWatcher detaches a single subscription without closing others.
func (r *Repository) removeWatcher(w *todoWatcher) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.watchers[w.id]
	for i, candidate := range list {
		if candidate == w {
			r.watchers[w.id] = append(list[:i], list[i+1:]...)
			close(w.ch)
			return
		}
	}
}

// dayStart truncates a timestamp to midnight UTC of its calendar day.
func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dayBounds returns the [start, end) range covering one calendar day.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := dayStart(t)
	return start, start.AddDate(0, 0, 1)
}
