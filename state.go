package epd7in5b

import "fmt"

// State is the refresh mode the panel has been initialized for.
type State uint8

const (
	// Controller states
	Uninitialized State = iota
	FullModeReady
	FastModeReady
	PartialModeReady
	Sleeping
)

var stateNames = [...]string{
	Uninitialized:    "Uninitialized",
	FullModeReady:    "FullModeReady",
	FastModeReady:    "FastModeReady",
	PartialModeReady: "PartialModeReady",
	Sleeping:         "Sleeping",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Action is an operation requested from the controller.
type Action uint8

const (
	// Controller operations, one per Transport call
	ActionInitFull Action = iota
	ActionInitFast
	ActionInitPartial
	ActionClear
	ActionPushFull
	ActionPushPartial
	ActionPushBase
	ActionSleep
)

var actionNames = [...]string{
	ActionInitFull:    "initFull",
	ActionInitFast:    "initFast",
	ActionInitPartial: "initPartial",
	ActionClear:       "clear",
	ActionPushFull:    "pushFull",
	ActionPushPartial: "pushPartial",
	ActionPushBase:    "pushBase",
	ActionSleep:       "sleep",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// States lists every state.
var States = []State{Uninitialized, FullModeReady, FastModeReady, PartialModeReady, Sleeping}

// Actions lists every action.
var Actions = []Action{
	ActionInitFull, ActionInitFast, ActionInitPartial, ActionClear,
	ActionPushFull, ActionPushPartial, ActionPushBase, ActionSleep,
}

// transitions is the legal transition table. Sleeping has no way out: the
// panel needs a new session after deep sleep.
var transitions = map[State]map[Action]State{
	Uninitialized: {
		ActionInitFull: FullModeReady,
		ActionInitFast: FastModeReady,
		ActionSleep:    Sleeping,
	},
	FullModeReady: {
		ActionInitPartial: PartialModeReady,
		ActionClear:       FullModeReady,
		ActionPushFull:    FullModeReady,
		ActionSleep:       Sleeping,
	},
	FastModeReady: {
		ActionClear:    FastModeReady,
		ActionPushFull: FastModeReady,
		ActionSleep:    Sleeping,
	},
	PartialModeReady: {
		ActionPushPartial: PartialModeReady,
		ActionPushBase:    PartialModeReady,
		ActionSleep:       Sleeping,
	},
}

// Next returns the state reached by applying a in s.
func Next(s State, a Action) (State, error) {
	if to, ok := transitions[s][a]; ok {
		return to, nil
	}
	return s, &TransitionError{From: s, Action: a}
}
