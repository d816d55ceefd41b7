package value_objects_test

import (
	"testing"

	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected value_objects.Priority
		wantErr  bool
	}{
		{"low", "low", value_objects.PriorityLow, false},
		{"medium", "medium", value_objects.PriorityMedium, false},
		{"high", "high", value_objects.PriorityHigh, false},
		{"case insensitive", "HIGH", value_objects.PriorityHigh, false},
		{"surrounding space", " Medium ", value_objects.PriorityMedium, false},
		{"urgent is not a level", "urgent", 0, true},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := value_objects.ParsePriority(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, value_objects.ErrInvalidPriority)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestPriority_StringAndValidity(t *testing.T) {
	assert.Equal(t, "low", value_objects.PriorityLow.String())
	assert.Equal(t, "high", value_objects.PriorityHigh.String())
	assert.Equal(t, "unknown", value_objects.Priority(0).String())
	assert.False(t, value_objects.Priority(0).IsValid())
	assert.True(t, value_objects.PriorityMedium.IsValid())
}

func TestPriority_Weight(t *testing.T) {
	assert.Greater(t, value_objects.PriorityHigh.Weight(), value_objects.PriorityMedium.Weight())
	assert.Greater(t, value_objects.PriorityMedium.Weight(), value_objects.PriorityLow.Weight())
	assert.Equal(t, []value_objects.Priority{
		value_objects.PriorityHigh, value_objects.PriorityMedium, value_objects.PriorityLow,
	}, value_objects.Priorities())
}
