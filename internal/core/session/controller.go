// Package session bridges user commands and clock ticks to the countdown
// engine and forwards every engine event to the media and feedback
// collaborators.
package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"roundbell/internal/core/countdown"
	"roundbell/internal/core/model"
)

// ErrSessionActive is returned when a command requires the idle screen.
var ErrSessionActive = errors.New("session already active")

// Update is published to observers after every state change.
type Update struct {
	State  countdown.State
	Config model.TimerConfig
	Events []countdown.Event
}

// Options wires a Controller to its collaborators. Nil collaborators are
// replaced by no-ops.
type Options struct {
	Config    model.TimerConfig
	Ticker    Ticker
	Media     Media
	Feedback  Feedback
	KeepAwake KeepAwake
	Logger    zerolog.Logger
}

// Controller owns the session state and is the only writer of it.
type Controller struct {
	mu sync.Mutex

	config     model.TimerConfig
	state      countdown.State
	sessionID  string
	cancelTick func()
	awake      bool

	ticker    Ticker
	media     Media
	feedback  Feedback
	keepAwake KeepAwake
	logger    zerolog.Logger

	subscribers []chan Update
}

// New creates a Controller in the idle state.
func New(options Options) *Controller {
	config := options.Config
	if config.Validate() != nil {
		config = model.DefaultTimerConfig()
	}

	controller := &Controller{
		config:    config,
		state:     countdown.Idle(),
		ticker:    options.Ticker,
		media:     options.Media,
		feedback:  options.Feedback,
		keepAwake: options.KeepAwake,
		logger:    options.Logger.With().Str("component", "session").Logger(),
	}
	if controller.ticker == nil {
		controller.ticker = nopTicker{}
	}
	if controller.media == nil {
		controller.media = nopMedia{}
	}
	if controller.feedback == nil {
		controller.feedback = nopFeedback{}
	}
	if controller.keepAwake == nil {
		controller.keepAwake = nopKeepAwake{}
	}
	return controller
}

// Subscribe registers a new observer channel. Updates are dropped for
// observers that fall behind.
func (controller *Controller) Subscribe(buffer int) <-chan Update {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Update, buffer)
	controller.mu.Lock()
	controller.subscribers = append(controller.subscribers, ch)
	controller.mu.Unlock()
	return ch
}

// Snapshot returns the current session state.
func (controller *Controller) Snapshot() countdown.State {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.state
}

// Config returns the configuration used by the next Start.
func (controller *Controller) Config() model.TimerConfig {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.config
}

// SetConfig replaces the configuration without a cue.
func (controller *Controller) SetConfig(config model.TimerConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.state.Started {
		return ErrSessionActive
	}
	controller.config = config
	controller.publishLocked(nil)
	return nil
}

// AdjustRounds steps the round count by delta.
func (controller *Controller) AdjustRounds(delta int) error {
	return controller.adjust(func(config model.TimerConfig) model.TimerConfig {
		return config.StepRounds(delta)
	})
}

// AdjustWork steps the work duration by delta steps.
func (controller *Controller) AdjustWork(delta int) error {
	return controller.adjust(func(config model.TimerConfig) model.TimerConfig {
		return config.StepWork(delta)
	})
}

// AdjustRest steps the rest duration by delta steps.
func (controller *Controller) AdjustRest(delta int) error {
	return controller.adjust(func(config model.TimerConfig) model.TimerConfig {
		return config.StepRest(delta)
	})
}

// ApplyPreset sets the round count to one of the presets.
func (controller *Controller) ApplyPreset(rounds int) error {
	return controller.adjust(func(config model.TimerConfig) model.TimerConfig {
		return config.WithRounds(rounds)
	})
}

// Start begins a session with the current configuration.
func (controller *Controller) Start() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.state.Started {
		return ErrSessionActive
	}
	state, err := countdown.Start(controller.config)
	if err != nil {
		controller.logger.Warn().Err(err).Msg("start rejected")
		return err
	}

	controller.state = state
	controller.sessionID = uuid.New().String()[:8]
	controller.logger.Info().
		Str("session", controller.sessionID).
		Int("rounds", state.Config.Rounds).
		Int("work_seconds", state.Config.WorkSeconds).
		Int("rest_seconds", state.Config.RestSeconds).
		Msg("session started")

	controller.cueLocked(CueConfirm)
	controller.cueLocked(CueLongTone)
	controller.acquireAwakeLocked()
	controller.mediaLocked("play preparation", controller.media.PlayPreparation)

	if controller.cancelTick != nil {
		controller.cancelTick()
	}
	controller.cancelTick = controller.ticker.OnTick(controller.OnTick)

	controller.publishLocked(nil)
	return nil
}

// OnTick advances the session by one clock unit.
func (controller *Controller) OnTick() {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if !controller.state.Started {
		return
	}
	previous := controller.state
	next, events := countdown.Tick(previous)
	controller.state = next
	controller.handleLocked(events)
	if next != previous || len(events) > 0 {
		controller.publishLocked(events)
	}
}

// TogglePause pauses a running session or resumes a paused one.
func (controller *Controller) TogglePause() {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if !controller.state.Started || controller.state.Phase == countdown.PhaseDone {
		return
	}
	controller.cueLocked(CueTap)

	var events []countdown.Event
	if controller.state.Paused {
		controller.state, events = countdown.Resume(controller.state)
	} else {
		controller.state, events = countdown.Pause(controller.state)
	}
	controller.handleLocked(events)
	controller.publishLocked(events)
}

// Stop discards the session and reverts media and keep-awake side effects.
func (controller *Controller) Stop() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.stopLocked()
}

// Close stops any session and closes observer channels.
func (controller *Controller) Close() {
	controller.mu.Lock()
	if controller.state.Started {
		controller.stopLocked()
	}
	subscribers := controller.subscribers
	controller.subscribers = nil
	controller.mu.Unlock()

	for _, ch := range subscribers {
		close(ch)
	}
}

func (controller *Controller) stopLocked() {
	if controller.state.Started {
		controller.cueLocked(CueTap)
	}
	if controller.cancelTick != nil {
		controller.cancelTick()
		controller.cancelTick = nil
	}

	var events []countdown.Event
	controller.state, events = countdown.Stop(controller.state)
	controller.handleLocked(events)
	controller.sessionID = ""
	controller.publishLocked(events)
}

func (controller *Controller) adjust(step func(model.TimerConfig) model.TimerConfig) error {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.state.Started {
		return ErrSessionActive
	}
	controller.config = step(controller.config)
	controller.cueLocked(CueTap)
	controller.publishLocked(nil)
	return nil
}

func (controller *Controller) handleLocked(events []countdown.Event) {
	for _, event := range events {
		logEvent := controller.logger.Info().
			Str("session", controller.sessionID).
			Str("event", event.Type.String())

		switch event.Type {
		case countdown.EventPhaseEntered:
			logEvent.Str("phase", event.Phase.String()).Int("round", event.Round).Msg("phase entered")
			phase := event.Phase
			controller.cueLocked(CueShortTone)
			controller.mediaLocked("play phase", func() error { return controller.media.PlayPhase(phase) })
		case countdown.EventSessionFinished:
			logEvent.Msg("session finished")
			controller.cueLocked(CueBell)
			controller.mediaLocked("play finished", controller.media.PlayFinished)
			controller.releaseAwakeLocked()
		case countdown.EventPaused:
			logEvent.Msg("session paused")
			controller.cueLocked(CueWarning)
			controller.mediaLocked("pause all", controller.media.PauseAll)
		case countdown.EventResumed:
			logEvent.Msg("session resumed")
			phase, preRoll := controller.state.Phase, controller.state.PreRoll
			controller.cueLocked(CueSuccess)
			controller.mediaLocked("resume", func() error { return controller.media.Resume(phase, preRoll) })
		case countdown.EventStopped:
			logEvent.Msg("session stopped")
			controller.mediaLocked("stop all", controller.media.StopAll)
			controller.releaseAwakeLocked()
		}
	}
}

func (controller *Controller) cueLocked(cue Cue) {
	if err := controller.feedback.Play(cue); err != nil {
		controller.logger.Warn().Err(err).Str("session", controller.sessionID).Str("cue", cue.String()).Msg("feedback cue failed")
	}
}

func (controller *Controller) mediaLocked(action string, call func() error) {
	if err := call(); err != nil {
		controller.logger.Warn().Err(err).Str("session", controller.sessionID).Str("action", action).Msg("media playback failed")
	}
}

func (controller *Controller) acquireAwakeLocked() {
	if controller.awake {
		return
	}
	if err := controller.keepAwake.Acquire(); err != nil {
		controller.logger.Warn().Err(err).Str("session", controller.sessionID).Msg("keep awake unavailable")
		return
	}
	controller.awake = true
}

func (controller *Controller) releaseAwakeLocked() {
	if !controller.awake {
		return
	}
	controller.awake = false
	if err := controller.keepAwake.Release(); err != nil {
		controller.logger.Warn().Err(err).Msg("release keep awake")
	}
}

func (controller *Controller) publishLocked(events []countdown.Event) {
	update := Update{
		State:  controller.state,
		Config: controller.config,
		Events: append([]countdown.Event(nil), events...),
	}
	for _, ch := range controller.subscribers {
		select {
		case ch <- update:
		default:
		}
	}
}
