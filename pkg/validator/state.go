package validator

import (
	"context"

	"github.com/looplab/fsm"
)

// State is the validation state of one entity.
type State string

// Entity validation states. Validated and FailedFetch are terminal.
const (
	StatePending        State = "pending"
	StateFetching       State = "fetching"
	StateFetched        State = "fetched"
	StateTimedOut       State = "timed_out"
	StateTransportError State = "transport_error"
	StateValidated      State = "validated"
	StateFailedFetch    State = "failed_fetch"
)

// Transition events.
const (
	eventFetch    = "fetch"
	eventReceive  = "receive"
	eventTimeout  = "timeout"
	eventFail     = "fail"
	eventValidate = "validate"
	eventGiveUp   = "give_up"
)

// entityMachine tracks one entity through a sample check.
type entityMachine struct {
	fsm *fsm.FSM
}

func newEntityMachine() *entityMachine {
	return &entityMachine{
		fsm: fsm.NewFSM(
			string(StatePending),
			fsm.Events{
				{Name: eventFetch, Src: []string{string(StatePending)}, Dst: string(StateFetching)},
				{Name: eventReceive, Src: []string{string(StateFetching)}, Dst: string(StateFetched)},
				{Name: eventTimeout, Src: []string{string(StateFetching)}, Dst: string(StateTimedOut)},
				{Name: eventFail, Src: []string{string(StateFetching)}, Dst: string(StateTransportError)},
				{Name: eventValidate, Src: []string{string(StateFetched)}, Dst: string(StateValidated)},
				{Name: eventGiveUp, Src: []string{string(StateTimedOut), string(StateTransportError)}, Dst: string(StateFailedFetch)},
			},
			fsm.Callbacks{},
		),
	}
}

// fire applies event. Transitions are fixed by construction, so a refused
// event is a programming error and is returned for the caller to log.
func (m *entityMachine) fire(ctx context.Context, event string) error {
	return m.fsm.Event(ctx, event)
}

func (m *entityMachine) state() State {
	return State(m.fsm.Current())
}

// Terminal reports whether s ends an entity's check.
func (s State) Terminal() bool {
	return s == StateValidated || s == StateFailedFetch
}
