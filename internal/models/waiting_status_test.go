package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseWaitingStatus tests status string validation
func TestParseWaitingStatus(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"waiting", "notified", "seated", "no_show"} {
		status, err := ParseWaitingStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, WaitingStatus(valid), status)
	}

	_, err := ParseWaitingStatus("cancelled")
	assert.Error(t, err)

	_, err = ParseWaitingStatus("")
	assert.Error(t, err)
}

// TestWaitingStatus_IsTerminal tests terminal state detection
func TestWaitingStatus_IsTerminal(t *testing.T) {
	t.Parallel()

	assert.False(t, StatusWaiting.IsTerminal())
	assert.False(t, StatusNotified.IsTerminal())
	assert.True(t, StatusSeated.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
}

// TestWaitingStatus_CanTransitionTo tests the full transition table
func TestWaitingStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from    WaitingStatus
		to      WaitingStatus
		allowed bool
	}{
		// waiting can go anywhere forward, including staff overrides
		{StatusWaiting, StatusNotified, true},
		{StatusWaiting, StatusSeated, true},
		{StatusWaiting, StatusNoShow, true},

		// notified can only terminate
		{StatusNotified, StatusSeated, true},
		{StatusNotified, StatusNoShow, true},
		{StatusNotified, StatusWaiting, false},

		// terminal states reject everything
		{StatusSeated, StatusWaiting, false},
		{StatusSeated, StatusNotified, false},
		{StatusSeated, StatusNoShow, false},
		{StatusNoShow, StatusWaiting, false},
		{StatusNoShow, StatusNotified, false},
		{StatusNoShow, StatusSeated, false},

		// same-status is always allowed (idempotent at the caller)
		{StatusWaiting, StatusWaiting, true},
		{StatusNotified, StatusNotified, true},
		{StatusSeated, StatusSeated, true},
		{StatusNoShow, StatusNoShow, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s should be %v", tt.from, tt.to, tt.allowed)
	}
}

// TestParseWaitingPriority tests priority parsing with empty default
func TestParseWaitingPriority(t *testing.T) {
	t.Parallel()

	priority, err := ParseWaitingPriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityLow, priority)

	for _, valid := range []string{"low", "medium", "high"} {
		priority, err := ParseWaitingPriority(valid)
		require.NoError(t, err)
		assert.Equal(t, WaitingPriority(valid), priority)
	}

	_, err = ParseWaitingPriority("urgent")
	assert.Error(t, err)
}
