package remind

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/czhang/todobox/internal/model"
)

func TestDelay(t *testing.T) {
	now := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 90*time.Minute, Delay(now, model.TimeOfDay{Hour: 10, Minute: 30}))
	assert.Equal(t, time.Duration(0), Delay(now, model.TimeOfDay{Hour: 9, Minute: 0}))
	assert.Negative(t, Delay(now, model.TimeOfDay{Hour: 8, Minute: 0}),
		"a reminder earlier today has already passed")
}

func TestScheduleSkipsUnschedulable(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()
	s.now = func() time.Time {
		return time.Date(2026, time.June, 1, 23, 59, 0, 0, time.UTC)
	}

	assert.False(t, s.Schedule(model.Todo{ID: 1, Title: "no reminder"}))

	past := model.TimeOfDay{Hour: 6, Minute: 0}
	assert.False(t, s.Schedule(model.Todo{ID: 2, Title: "too late", Reminder: &past}))
}

func TestScheduleFires(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()
	// Pin now just before the reminder so the job fires almost immediately.
	s.now = func() time.Time {
		return time.Date(2026, time.June, 1, 9, 59, 59, int(990*time.Millisecond), time.UTC)
	}

	reminder := model.TimeOfDay{Hour: 10, Minute: 0}
	require.True(t, s.Schedule(model.Todo{ID: 5, Title: "standup", Reminder: &reminder}))

	select {
	case n := <-s.Notifications():
		assert.Equal(t, int64(5), n.TodoID)
		assert.Equal(t, "standup", n.Title)
		assert.NotEmpty(t, n.JobID)
		assert.False(t, n.FiredAt.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reminder")
	}
}

func TestStopCancelsPendingJobs(t *testing.T) {
	s := NewScheduler()

	reminder := model.TimeOfDay{Hour: 23, Minute: 59}
	s.now = func() time.Time {
		return time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	}
	require.True(t, s.Schedule(model.Todo{ID: 9, Title: "later", Reminder: &reminder}))

	s.Stop()
	assert.False(t, s.Schedule(model.Todo{ID: 10, Title: "after stop", Reminder: &reminder}))

	select {
	case n := <-s.Notifications():
		t.Fatalf("unexpected notification %+v after stop", n)
	case <-time.After(50 * time.Millisecond):
	}
}
