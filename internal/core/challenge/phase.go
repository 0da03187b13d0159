package challenge

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Phase constants double as statekit state ids.
const (
	PhaseActive          = "active"
	PhaseAwaitingRestart = "awaiting_restart"
	PhaseAwaitingReset   = "awaiting_reset"
	PhaseCompleted       = "completed"
)

// Phase events.
const (
	EventIncomplete   = "incomplete"
	EventRequestReset = "request_reset"
	EventConfirm      = "confirm"
	EventFinish       = "finish"
)

// PhaseContext carries the day the machine was built for.
type PhaseContext struct {
	Day int
}

// PhaseMachine tracks which confirmations are outstanding for the running
// attempt. It does not own challenge data; it only gates which operations
// the controller accepts next.
type PhaseMachine struct {
	interpreter *statekit.Interpreter[PhaseContext]
}

// DerivePhase returns the resting phase for s.
func DerivePhase(s State) string {
	if s.Completed() {
		return PhaseCompleted
	}
	return PhaseActive
}

// NewPhaseMachine builds a machine starting in the resting phase of s.
func NewPhaseMachine(s State) (*PhaseMachine, error) {
	builder := statekit.NewMachine[PhaseContext]("challenge-phase").
		WithInitial(statekit.StateID(DerivePhase(s))).
		WithContext(PhaseContext{Day: s.CurrentDay})

	builder.State(PhaseActive).
		On(EventIncomplete).Target(PhaseAwaitingRestart).
		On(EventRequestReset).Target(PhaseAwaitingReset).
		On(EventFinish).Target(PhaseCompleted).
		Done()

	builder.State(PhaseAwaitingRestart).
		On(EventConfirm).Target(PhaseActive).
		Done()

	builder.State(PhaseAwaitingReset).
		On(EventConfirm).Target(PhaseActive).
		Done()

	builder.State(PhaseCompleted).
		On(EventRequestReset).Target(PhaseAwaitingReset).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build phase machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &PhaseMachine{interpreter: interpreter}, nil
}

// Send applies event and returns an error when the current phase does not
// accept it.
func (m *PhaseMachine) Send(event string) error {
	before := m.Current()
	m.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if m.Current() != before {
		return nil
	}
	return fmt.Errorf("%q is not allowed in phase %q", event, before)
}

// Current returns the current phase.
func (m *PhaseMachine) Current() string {
	return string(m.interpreter.State().Value)
}

// Pending reports whether a confirmation is outstanding.
func (m *PhaseMachine) Pending() bool {
	switch m.Current() {
	case PhaseAwaitingRestart, PhaseAwaitingReset:
		return true
	}
	return false
}
