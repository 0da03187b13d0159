package challenge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseMachine_Transitions(t *testing.T) {
	s := newTestEngine().Initialize()

	m, err := NewPhaseMachine(s)
	require.NoError(t, err)
	assert.Equal(t, PhaseActive, m.Current())
	assert.False(t, m.Pending())

	require.NoError(t, m.Send(EventIncomplete))
	assert.Equal(t, PhaseAwaitingRestart, m.Current())
	assert.True(t, m.Pending())

	assert.Error(t, m.Send(EventRequestReset), "cannot stack confirmations")

	require.NoError(t, m.Send(EventConfirm))
	assert.Equal(t, PhaseActive, m.Current())

	assert.Error(t, m.Send(EventConfirm), "nothing to confirm")
}

func TestPhaseMachine_Completed(t *testing.T) {
	s := newTestEngine().Initialize()
	s.CurrentDay = TotalDays
	s.DailyProgress[TotalDays] = DayRecord{Completed: true}

	m, err := NewPhaseMachine(s)
	require.NoError(t, err)
	assert.Equal(t, PhaseCompleted, m.Current())

	assert.Error(t, m.Send(EventIncomplete))
	require.NoError(t, m.Send(EventRequestReset))
	assert.Equal(t, PhaseAwaitingReset, m.Current())
}
