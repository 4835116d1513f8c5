// Package remind schedules one-shot reminder notifications for todos
// with a reminder time. Delivery is best-effort: the core only computes
// the delay and enqueues the job; nothing retries a missed notification.
package remind

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/czhang/todobox/internal/model"
)

// Notification is the payload delivered when a reminder job fires.
type Notification struct {
	JobID   string
	TodoID  int64
	Title   string
	FiredAt time.Time
}

// Scheduler fires one-shot reminder jobs after a computed delay. Fired
// notifications are delivered on a buffered channel; if no one is
// listening they are dropped rather than blocking the timer goroutine.
type Scheduler struct {
	notifyCh chan Notification

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool

	// now is swappable for tests.
	now func() time.Time
}

// NewScheduler creates a Scheduler ready to accept jobs.
func NewScheduler() *Scheduler {
	return &Scheduler{
		notifyCh: make(chan Notification, 16),
		timers:   make(map[string]*time.Timer),
		now:      time.Now,
	}
}

// Notifications returns the channel on which fired reminders arrive.
func (s *Scheduler) Notifications() <-chan Notification {
	return s.notifyCh
}

// Schedule enqueues a one-shot job for the todo's reminder time on
// today's date. It reports whether a job was scheduled: a todo without a
// reminder, or whose reminder time has already passed, is skipped.
func (s *Scheduler) Schedule(todo model.Todo) bool {
	if todo.Reminder == nil {
		return false
	}

	now := s.now()
	delay := Delay(now, *todo.Reminder)
	if delay <= 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}

	jobID := uuid.New().String()
	n := Notification{JobID: jobID, TodoID: todo.ID, Title: todo.Title}

	s.timers[jobID] = time.AfterFunc(delay, func() {
		s.fire(n)
	})
	return true
}

// Stop cancels all pending jobs. Notifications already fired remain
// readable from the channel.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

// fire delivers a notification without blocking.
func (s *Scheduler) fire(n Notification) {
	s.mu.Lock()
	delete(s.timers, n.JobID)
	s.mu.Unlock()

	n.FiredAt = time.Now()
	select {
	case s.notifyCh <- n:
	default:
		// Drop if nobody is draining the channel.
	}
}

// Delay computes how long until the reminder time occurs on now's
// calendar day. A zero or negative result means the moment has already
// passed and no job should be scheduled.
func Delay(now time.Time, reminder model.TimeOfDay) time.Duration {
	return reminder.On(now).Sub(now).Truncate(time.Millisecond)
}
