package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/czhang/todobox/internal/model"
)

func TestSubTasksFromDescription(t *testing.T) {
	got := model.SubTasksFromDescription("buy milk\n\n  call mom \nclean desk")

	require.Len(t, got, 3)
	assert.Equal(t, model.SubTask{Index: 0, Description: "buy milk"}, got[0])
	assert.Equal(t, model.SubTask{Index: 1, Description: "call mom"}, got[1])
	assert.Equal(t, model.SubTask{Index: 2, Description: "clean desk"}, got[2])
}

func TestSubTasksFromDescriptionBlank(t *testing.T) {
	assert.Empty(t, model.SubTasksFromDescription(""))
	assert.Empty(t, model.SubTasksFromDescription("\n \n\t\n"))
}

func TestSubTasksFromDescriptionSingleLine(t *testing.T) {
	got := model.SubTasksFromDescription("just one thing")
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Index)
	assert.False(t, got[0].Checked)
}

func TestAllChecked(t *testing.T) {
	assert.False(t, model.AllChecked(nil))
	assert.False(t, model.AllChecked([]model.SubTask{{Checked: true}, {Checked: false}}))
	assert.True(t, model.AllChecked([]model.SubTask{{Checked: true}, {Checked: true}}))
}
