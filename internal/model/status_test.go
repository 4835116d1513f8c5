package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/czhang/todobox/internal/model"
)

func TestParseStatus(t *testing.T) {
	for _, code := range []string{"PENDING", "IN_PROGRESS", "COMPLETED", "DELETED"} {
		s, err := model.ParseStatus(code)
		require.NoError(t, err)
		assert.Equal(t, code, string(s))
	}

	_, err := model.ParseStatus("DONE")
	require.Error(t, err)
}

func TestStatusForSubTasks(t *testing.T) {
	subTasks := func(checked ...bool) []model.SubTask {
		out := make([]model.SubTask, len(checked))
		for i, c := range checked {
			out[i] = model.SubTask{Index: i, Checked: c}
		}
		return out
	}

	assert.Equal(t, model.StatusPending, model.StatusForSubTasks(nil))
	assert.Equal(t, model.StatusPending, model.StatusForSubTasks(subTasks(false, false, false)))
	assert.Equal(t, model.StatusInProgress, model.StatusForSubTasks(subTasks(true, false, false)))
	assert.Equal(t, model.StatusInProgress, model.StatusForSubTasks(subTasks(true, true, false)))
	assert.Equal(t, model.StatusCompleted, model.StatusForSubTasks(subTasks(true, true, true)))
}

func TestTodoDeleted(t *testing.T) {
	assert.True(t, model.Todo{Status: model.StatusDeleted}.Deleted())
	assert.False(t, model.Todo{Status: model.StatusPending}.Deleted())
}
