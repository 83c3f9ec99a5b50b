package countdown

// Phase is the segment type of a session.
type Phase int

const (
	PhaseWork Phase = iota
	PhaseRest
	PhaseDone
)

func (phase Phase) String() string {
	switch phase {
	case PhaseWork:
		return "work"
	case PhaseRest:
		return "rest"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Stage is what the HUD shows: the phase, or preparation during pre-roll.
type Stage int

const (
	StageIdle Stage = iota
	StagePrepare
	StageWork
	StageRest
	StageDone
)

func (stage Stage) String() string {
	switch stage {
	case StageIdle:
		return "idle"
	case StagePrepare:
		return "prepare"
	case StageWork:
		return "work"
	case StageRest:
		return "rest"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// EventType defines the type of engine event.
type EventType int

const (
	EventPhaseEntered EventType = iota
	EventSessionFinished
	EventPaused
	EventResumed
	EventStopped
)

func (eventType EventType) String() string {
	switch eventType {
	case EventPhaseEntered:
		return "phase_entered"
	case EventSessionFinished:
		return "session_finished"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	case EventStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Event is emitted by an engine transition.
// Phase and Round are set for EventPhaseEntered; FromPreRoll marks the
// first Work entry that ends the preparation countdown.
type Event struct {
	Type        EventType
	Phase       Phase
	Round       int
	FromPreRoll bool
}

func phaseEntered(phase Phase, round int, fromPreRoll bool) Event {
	return Event{Type: EventPhaseEntered, Phase: phase, Round: round, FromPreRoll: fromPreRoll}
}
