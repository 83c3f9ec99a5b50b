// Package countdown is the interval session state machine.
//
// Every operation is a pure function from a State to the next State plus the
// events the transition produced. Callers own the State value.
package countdown

import (
	"roundbell/internal/core/model"
)

// State is one snapshot of an interval session.
type State struct {
	Config model.TimerConfig

	// Started is true from Start until Stop, including the Done screen.
	Started bool

	Phase     Phase
	Round     int
	Remaining int
	Running   bool
	Paused    bool

	PreRoll          bool
	PreRollRemaining int
}

// Idle returns the representation of "no session".
func Idle() State {
	return State{Phase: PhaseWork, Round: 1}
}

// Start builds the initial state for config. The session opens with the
// preparation countdown overlaid on round one's Work phase.
func Start(config model.TimerConfig) (State, error) {
	if err := config.Validate(); err != nil {
		return Idle(), err
	}
	return State{
		Config:           config,
		Started:          true,
		Phase:            PhaseWork,
		Round:            1,
		Remaining:        0,
		Running:          true,
		PreRoll:          true,
		PreRollRemaining: model.PreRollSeconds,
	}, nil
}

// Tick advances the active countdown by one unit. A counter that reaches
// zero applies its transition on the same tick. Ticks on an idle, paused or
// finished session are dropped.
func Tick(state State) (State, []Event) {
	if !state.Started {
		return state, nil
	}
	if state.Phase == PhaseDone {
		state.Running = false
		return state, nil
	}
	if !state.Running || state.Paused {
		return state, nil
	}

	if state.PreRoll {
		if state.PreRollRemaining > 0 {
			state.PreRollRemaining--
		}
		if state.PreRollRemaining > 0 {
			return state, nil
		}
		state.PreRoll = false
		return enter(state, PhaseWork, state.Config.WorkSeconds, true)
	}

	if state.Remaining > 0 {
		state.Remaining--
	}
	if state.Remaining > 0 {
		return state, nil
	}
	return advance(state)
}

// Pause freezes the countdown.
func Pause(state State) (State, []Event) {
	if !state.Started || state.Phase == PhaseDone || state.Paused {
		return state, nil
	}
	state.Paused = true
	return state, []Event{{Type: EventPaused}}
}

// Resume unfreezes the countdown. Ticks missed while paused are not replayed.
func Resume(state State) (State, []Event) {
	if !state.Started || state.Phase == PhaseDone || !state.Paused {
		return state, nil
	}
	state.Paused = false
	return state, []Event{{Type: EventResumed}}
}

// Stop discards the session regardless of its phase.
func Stop(State) (State, []Event) {
	return Idle(), []Event{{Type: EventStopped}}
}

// Display returns the seconds shown to the user: the pre-roll counter while
// preparing, the phase counter otherwise.
func (state State) Display() int {
	if state.PreRoll {
		return state.PreRollRemaining
	}
	return state.Remaining
}

// Stage returns the HUD stage of state.
func (state State) Stage() Stage {
	switch {
	case !state.Started:
		return StageIdle
	case state.Phase == PhaseDone:
		return StageDone
	case state.PreRoll:
		return StagePrepare
	case state.Phase == PhaseRest:
		return StageRest
	default:
		return StageWork
	}
}

// Active reports whether ticks currently drive the countdown.
func (state State) Active() bool {
	return state.Started && state.Running && !state.Paused && state.Phase != PhaseDone
}

func advance(state State) (State, []Event) {
	switch state.Phase {
	case PhaseWork:
		if state.Config.RestSeconds > 0 {
			return enter(state, PhaseRest, state.Config.RestSeconds, false)
		}
		return nextRoundOrFinish(state)
	case PhaseRest:
		return nextRoundOrFinish(state)
	default:
		state.Running = false
		return state, nil
	}
}

func nextRoundOrFinish(state State) (State, []Event) {
	if state.Round < state.Config.Rounds {
		state.Round++
		return enter(state, PhaseWork, state.Config.WorkSeconds, false)
	}
	state.Phase = PhaseDone
	state.Remaining = 0
	state.Running = false
	state.Paused = false
	return state, []Event{{Type: EventSessionFinished}}
}

func enter(state State, phase Phase, seconds int, fromPreRoll bool) (State, []Event) {
	if seconds < 0 {
		seconds = 0
	}
	state.Phase = phase
	state.Remaining = seconds
	return state, []Event{phaseEntered(phase, state.Round, fromPreRoll)}
}
