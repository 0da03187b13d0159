package challenge

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Task is one of the fixed daily requirements.
type Task int

const (
	TaskDiet Task = iota
	TaskWorkout1
	TaskWorkout2
	TaskWater
	TaskReading
	TaskSquats
	TaskPushups
	TaskAbHolds
	TaskPhoto

	taskCount
)

// TaskCount is the number of tasks required to close a day.
const TaskCount = int(taskCount)

var taskNames = [taskCount]string{
	TaskDiet:     "diet",
	TaskWorkout1: "workout1",
	TaskWorkout2: "workout2",
	TaskWater:    "water",
	TaskReading:  "reading",
	TaskSquats:   "squats",
	TaskPushups:  "pushups",
	TaskAbHolds:  "abholds",
	TaskPhoto:    "photo",
}

var taskLabels = [taskCount]string{
	TaskDiet:     "Follow your diet",
	TaskWorkout1: "Workout #1 (45 min)",
	TaskWorkout2: "Workout #2 (45 min, outdoors)",
	TaskWater:    "Drink a gallon of water",
	TaskReading:  "Read 10 pages",
	TaskSquats:   "Squats",
	TaskPushups:  "Push-ups",
	TaskAbHolds:  "Ab holds",
	TaskPhoto:    "Progress photo",
}

// InvalidTaskError is returned when a task identifier is not part of the
// fixed task set.
type InvalidTaskError struct {
	Name string
}

func (e *InvalidTaskError) Error() string {
	return fmt.Sprintf("invalid task %q", e.Name)
}

// AllTasks returns every task in display order.
func AllTasks() []Task {
	tasks := make([]Task, taskCount)
	for i := range tasks {
		tasks[i] = Task(i)
	}
	return tasks
}

// TaskNames returns the identifiers of all tasks in display order.
func TaskNames() []string {
	return append([]string(nil), taskNames[:]...)
}

// ParseTask converts an identifier such as "workout1" into a Task.
func ParseTask(name string) (Task, error) {
	for i, n := range taskNames {
		if n == name {
			return Task(i), nil
		}
	}
	return 0, &InvalidTaskError{Name: name}
}

// Valid reports whether t is a member of the fixed task set.
func (t Task) Valid() bool {
	return t >= 0 && t < taskCount
}

func (t Task) String() string {
	if !t.Valid() {
		return fmt.Sprintf("task(%d)", int(t))
	}
	return taskNames[t]
}

// Label returns the human readable description of the task.
func (t Task) Label() string {
	if !t.Valid() {
		return t.String()
	}
	return taskLabels[t]
}

// Checklist holds the completion flag of every task. Being a fixed-size
// array it always contains exactly the fixed task set.
type Checklist [taskCount]bool

// Done reports whether t is marked complete.
func (c Checklist) Done(t Task) bool {
	if !t.Valid() {
		return false
	}
	return c[t]
}

// Completed returns the number of completed tasks.
func (c Checklist) Completed() int {
	n := 0
	for _, done := range c {
		if done {
			n++
		}
	}
	return n
}

// AllDone reports whether every task is complete.
func (c Checklist) AllDone() bool {
	return c.Completed() == TaskCount
}

// Missing returns the tasks that are not yet complete.
func (c Checklist) Missing() []Task {
	var missing []Task
	for i, done := range c {
		if !done {
			missing = append(missing, Task(i))
		}
	}
	return missing
}

// Percent returns the completion percentage rounded to the nearest integer.
func (c Checklist) Percent() int {
	return int(math.Round(float64(c.Completed()) / float64(TaskCount) * 100))
}

// MarshalJSON encodes the checklist as an object keyed by task identifier.
func (c Checklist) MarshalJSON() ([]byte, error) {
	m := make(map[string]bool, taskCount)
	for i, done := range c {
		m[taskNames[i]] = done
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes an object keyed by task identifier. Tasks that are
// absent decode as incomplete; unknown identifiers are rejected.
func (c *Checklist) UnmarshalJSON(data []byte) error {
	var m map[string]bool
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	var out Checklist
	unknown := make([]string, 0)
	for name, done := range m {
		t, err := ParseTask(name)
		if err != nil {
			unknown = append(unknown, name)
			continue
		}
		out[t] = done
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return &InvalidTaskError{Name: unknown[0]}
	}

	*c = out
	return nil
}
