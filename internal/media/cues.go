package media

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"roundbell/internal/core/session"
)

// Haptic is a vibration pattern.
type Haptic int

const (
	HapticLight Haptic = iota
	HapticSuccess
	HapticWarning
)

func (haptic Haptic) String() string {
	switch haptic {
	case HapticLight:
		return "light"
	case HapticSuccess:
		return "success"
	case HapticWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Haptics triggers vibration feedback.
type Haptics interface {
	Impact(haptic Haptic) error
}

// LogHaptics stands in for devices without a vibration motor.
type LogHaptics struct {
	Logger zerolog.Logger
}

// Impact records the haptic at debug level.
func (haptics LogHaptics) Impact(haptic Haptic) error {
	haptics.Logger.Debug().Str("haptic", haptic.String()).Msg("haptic feedback")
	return nil
}

type cueAction struct {
	haptic *Haptic
	sound  Sound
}

func hapticRef(haptic Haptic) *Haptic {
	return &haptic
}

var cueActions = map[session.Cue]cueAction{
	session.CueTap:       {haptic: hapticRef(HapticLight), sound: SoundTap},
	session.CueConfirm:   {haptic: hapticRef(HapticSuccess)},
	session.CueLongTone:  {sound: SoundLong},
	session.CueShortTone: {sound: SoundShort},
	session.CueBell:      {sound: SoundBell},
	session.CueWarning:   {haptic: hapticRef(HapticWarning)},
	session.CueSuccess:   {haptic: hapticRef(HapticSuccess)},
}

// Cues plays feedback cues as sounds and haptics.
type Cues struct {
	library *Library
	player  Player
	haptics Haptics

	mu      sync.Mutex
	playing map[Sound]Playback
}

// NewCues creates a Cues player. haptics may be nil.
func NewCues(library *Library, player Player, haptics Haptics) *Cues {
	return &Cues{
		library: library,
		player:  player,
		haptics: haptics,
		playing: make(map[Sound]Playback),
	}
}

// Play triggers the sound and haptic mapped to cue. Replaying a sound
// restarts it.
func (cues *Cues) Play(cue session.Cue) error {
	action, ok := cueActions[cue]
	if !ok {
		return fmt.Errorf("unknown cue %d", cue)
	}

	var errs []error
	if action.haptic != nil && cues.haptics != nil {
		if err := cues.haptics.Impact(*action.haptic); err != nil {
			errs = append(errs, fmt.Errorf("haptic %s: %w", *action.haptic, err))
		}
	}
	if action.sound != "" {
		if err := cues.playSound(action.sound); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close stops any sound still playing.
func (cues *Cues) Close() error {
	cues.mu.Lock()
	defer cues.mu.Unlock()

	var errs []error
	for sound, playback := range cues.playing {
		if err := playback.Stop(); err != nil {
			errs = append(errs, err)
		}
		delete(cues.playing, sound)
	}
	return errors.Join(errs...)
}

func (cues *Cues) playSound(sound Sound) error {
	path, err := cues.library.SoundPath(sound)
	if err != nil {
		return err
	}

	cues.mu.Lock()
	defer cues.mu.Unlock()

	if previous, ok := cues.playing[sound]; ok {
		_ = previous.Stop()
		delete(cues.playing, sound)
	}
	playback, err := cues.player.Once(path)
	if err != nil {
		return fmt.Errorf("play %s: %w", sound, err)
	}
	cues.playing[sound] = playback
	return nil
}
