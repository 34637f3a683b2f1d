package darklaunch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONEquality(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		oldVal any
		newVal any
		equal  bool
	}{
		{"equal strings", "a", "a", true},
		{"unequal strings", "a", "b", false},
		{"equal maps", map[string]any{"x": 1, "y": 2}, map[string]any{"y": 2, "x": 1}, true},
		{"unequal maps", map[string]any{"x": 1}, map[string]any{"x": 2}, false},
		{"equal slices", []int{1, 2}, []int{1, 2}, true},
		{"nil vs nil", nil, nil, true},
		{"nil vs value", nil, "a", false},
		{"same error message", errors.New("boom"), errors.New("boom"), true},
		{"different error message", errors.New("boom"), errors.New("bang"), false},
		{"error vs value", errors.New("boom"), "boom", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, err := JSONEquality(tt.oldVal, tt.newVal, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.equal, v.Equal)
			assert.Nil(t, v.Metadata)
		})
	}
}

func TestJSONEquality_UnmarshalableValue(t *testing.T) {
	t.Parallel()

	_, err := JSONEquality(make(chan int), "a", nil)
	assert.ErrorContains(t, err, "marshal old value")

	_, err = JSONEquality("a", make(chan int), nil)
	assert.ErrorContains(t, err, "marshal new value")
}
