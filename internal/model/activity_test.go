package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/czhang/todobox/internal/model"
)

func TestActivityForCount(t *testing.T) {
	tests := []struct {
		count int
		want  model.Activity
	}{
		{0, model.ActivityNone},
		{1, model.ActivityLow},
		{2, model.ActivityMedium},
		{3, model.ActivityHigh},
		{4, model.ActivityHigh},
		{17, model.ActivityHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, model.ActivityForCount(tt.count), "count %d", tt.count)
	}
}
