package session

import "roundbell/internal/core/countdown"

// Ticker is the clock source a session subscribes to while it exists.
type Ticker interface {
	OnTick(callback func()) (cancel func())
}

// Media plays the looping background clip for the current phase.
type Media interface {
	PlayPreparation() error
	PlayPhase(phase countdown.Phase) error
	PlayFinished() error
	PauseAll() error
	StopAll() error
	Resume(phase countdown.Phase, isPreparation bool) error
}

// Cue is a short audio or haptic signal.
type Cue int

const (
	CueTap Cue = iota
	CueConfirm
	CueLongTone
	CueShortTone
	CueBell
	CueWarning
	CueSuccess
)

func (cue Cue) String() string {
	switch cue {
	case CueTap:
		return "tap"
	case CueConfirm:
		return "confirm"
	case CueLongTone:
		return "long_tone"
	case CueShortTone:
		return "short_tone"
	case CueBell:
		return "bell"
	case CueWarning:
		return "warning"
	case CueSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Feedback plays cues.
type Feedback interface {
	Play(cue Cue) error
}

// KeepAwake holds the display awake while a session runs.
type KeepAwake interface {
	Acquire() error
	Release() error
}

type nopMedia struct{}

func (nopMedia) PlayPreparation() error { return nil }
func (nopMedia) PlayPhase(countdown.Phase) error { return nil }
func (nopMedia) PlayFinished() error { return nil }
func (nopMedia) PauseAll() error { return nil }
func (nopMedia) StopAll() error { return nil }
func (nopMedia) Resume(countdown.Phase, bool) error { return nil }

type nopFeedback struct{}

func (nopFeedback) Play(Cue) error { return nil }

type nopKeepAwake struct{}

func (nopKeepAwake) Acquire() error { return nil }
func (nopKeepAwake) Release() error { return nil }

type nopTicker struct{}

func (nopTicker) OnTick(func()) func() { return func() {} }
