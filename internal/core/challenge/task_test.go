package challenge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTask(t *testing.T) {
	for _, name := range []string{"diet", "workout1", "workout2", "water", "reading", "squats", "pushups", "abholds", "photo"} {
		task, err := ParseTask(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, task.String())
	}

	_, err := ParseTask("meditation")
	var invalid *InvalidTaskError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "meditation", invalid.Name)
}

func TestTaskSet(t *testing.T) {
	assert.Equal(t, 9, TaskCount)
	assert.Len(t, AllTasks(), TaskCount)
	assert.False(t, Task(-1).Valid())
	assert.False(t, Task(TaskCount).Valid())
}

func TestChecklist_JSON(t *testing.T) {
	var c Checklist
	c[TaskDiet] = true
	c[TaskPhoto] = true

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var m map[string]bool
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Len(t, m, TaskCount)
	assert.True(t, m["diet"])
	assert.True(t, m["photo"])
	assert.False(t, m["water"])

	var back Checklist
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, c, back)
}

func TestChecklist_UnmarshalRejectsUnknown(t *testing.T) {
	var c Checklist
	err := json.Unmarshal([]byte(`{"diet":true,"yoga":true}`), &c)

	var invalid *InvalidTaskError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "yoga", invalid.Name)
}

func TestChecklist_UnmarshalMissingKeys(t *testing.T) {
	var c Checklist
	require.NoError(t, json.Unmarshal([]byte(`{"diet":true}`), &c))
	assert.Equal(t, 1, c.Completed())
}
