package celadon

import (
	"fmt"
	"slices"
	"strings"
)

// Widget states.
const (
	StateIdle     = "idle"
	StateHover    = "hover"
	StateSelected = "selected"
	StateActive   = "active"
	StateDisabled = "disabled"
)

// NoSubstate is the substate a machine sits in when no substate is active.
const NoSubstate = "/"

// SubstatePrefix marks actions that move the substate instead of the state.
const SubstatePrefix = "SUBSTATE_"

// Actions understood by the default widget machine.
const (
	ActionDisabled         = "DISABLED"
	ActionEnabled          = "ENABLED"
	ActionHovered          = "HOVERED"
	ActionSelected         = "SELECTED"
	ActionUnselected       = "UNSELECTED"
	ActionClicked          = "CLICKED"
	ActionReleased         = "RELEASED"
	ActionReleasedKeyboard = "RELEASED_KEYBOARD"

	ActionEnterScrollingX = "SUBSTATE_ENTER_SCROLLING_X"
	ActionExitScrollingX  = "SUBSTATE_EXIT_SCROLLING_X"
	ActionEnterScrollingY = "SUBSTATE_ENTER_SCROLLING_Y"
	ActionExitScrollingY  = "SUBSTATE_EXIT_SCROLLING_Y"
)

// Transitions maps a state to the actions it accepts and the state each
// action leads to.
type Transitions map[string]map[string]string

// Clone returns a deep copy of t.
func (t Transitions) Clone() Transitions {
	out := make(Transitions, len(t))
	for state, actions := range t {
		out[state] = mergeStrings(nil, actions)
	}
	return out
}

// Merge returns a copy of t with other merged in per state.
func (t Transitions) Merge(other Transitions) Transitions {
	out := t.Clone()
	for state, actions := range other {
		out[state] = mergeStrings(out[state], actions)
	}
	return out
}

// StateMachine tracks a primary state and an orthogonal substate.
type StateMachine struct {
	states      []string
	transitions Transitions

	state    string
	substate string

	// OnChange receives the combined state after every transition of the
	// primary state, including transitions back to the same state.
	// Substate moves do not fire it.
	OnChange Event[string]
}

// NewStateMachine creates a machine starting in the first of states.
func NewStateMachine(states []string, transitions Transitions) *StateMachine {
	m := &StateMachine{
		states:      slices.Clone(states),
		transitions: transitions.Clone(),
		substate:    NoSubstate,
	}
	if len(states) > 0 {
		m.state = states[0]
	}
	return m
}

// DefaultStateMachine returns a fresh machine with the states and
// transitions every widget starts with.
func DefaultStateMachine() *StateMachine {
	return NewStateMachine(
		[]string{StateIdle, StateHover, StateSelected, StateActive, StateDisabled},
		Transitions{
			StateIdle: {
				ActionDisabled: StateDisabled,
				ActionHovered:  StateHover,
				ActionSelected: StateSelected,
				ActionClicked:  StateActive,
			},
			StateHover: {
				ActionDisabled: StateDisabled,
				ActionReleased: StateIdle,
				ActionSelected: StateSelected,
				ActionClicked:  StateActive,
			},
			StateSelected: {
				ActionDisabled:   StateDisabled,
				ActionUnselected: StateIdle,
				ActionClicked:    StateActive,
			},
			StateActive: {
				ActionDisabled:         StateDisabled,
				ActionReleased:         StateHover,
				ActionReleasedKeyboard: StateSelected,
			},
			StateDisabled: {
				ActionEnabled: StateIdle,
			},
			NoSubstate: {
				ActionEnterScrollingX: "/scrolling_x",
				ActionEnterScrollingY: "/scrolling_y",
			},
			"/scrolling_x": {
				ActionExitScrollingX: NoSubstate,
			},
			"/scrolling_y": {
				ActionExitScrollingY: NoSubstate,
			},
		},
	)
}

// State returns the combined state, such as "hover" or "hover/scrolling_y".
func (m *StateMachine) State() string {
	if m.substate == NoSubstate {
		return m.state
	}
	return m.state + m.substate
}

// Primary returns the state without its substate.
func (m *StateMachine) Primary() string {
	return m.state
}

// Substate returns the current substate, NoSubstate when none is active.
func (m *StateMachine) Substate() string {
	return m.substate
}

// States returns the primary states in declaration order.
func (m *StateMachine) States() []string {
	return slices.Clone(m.states)
}

// Contains reports whether state is one of the machine's primary states.
func (m *StateMachine) Contains(state string) bool {
	return slices.Contains(m.states, state)
}

// ApplyAction moves the machine along the transition for action. Actions
// without a transition from the current state are ignored and report false.
func (m *StateMachine) ApplyAction(action string) bool {
	if strings.HasPrefix(action, SubstatePrefix) {
		next, ok := m.transitions[m.substate][action]
		if !ok {
			return false
		}
		m.substate = next
		return true
	}

	next, ok := m.transitions[m.state][action]
	if !ok {
		return false
	}
	m.state = next
	m.OnChange.Emit(m.State())
	return true
}

// CopyOptions configures StateMachine.Copy. States replaces the state list
// while AddStates extends it; Transitions replaces the table while
// AddTransitions merges into it.
type CopyOptions struct {
	States         []string
	AddStates      []string
	Transitions    Transitions
	AddTransitions Transitions
}

// Copy returns a new machine in its initial state, derived from m.
func (m *StateMachine) Copy(opts CopyOptions) (*StateMachine, error) {
	if opts.States != nil && opts.AddStates != nil {
		return nil, fmt.Errorf("%w: states and add states are exclusive", ErrValue)
	}
	if opts.Transitions != nil && opts.AddTransitions != nil {
		return nil, fmt.Errorf("%w: transitions and add transitions are exclusive", ErrValue)
	}

	states := m.states
	switch {
	case opts.States != nil:
		states = opts.States
	case opts.AddStates != nil:
		states = append(slices.Clone(m.states), opts.AddStates...)
	}

	transitions := m.transitions
	switch {
	case opts.Transitions != nil:
		transitions = opts.Transitions
	case opts.AddTransitions != nil:
		transitions = m.transitions.Merge(opts.AddTransitions)
	}

	return NewStateMachine(states, transitions), nil
}

func (m *StateMachine) String() string {
	return fmt.Sprintf("StateMachine(%s)", m.State())
}
