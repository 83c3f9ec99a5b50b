package media

import (
	"fmt"
	"sync"

	"roundbell/internal/core/countdown"
)

// Coordinator keeps at most one phase clip playing.
type Coordinator struct {
	mu       sync.Mutex
	library  *Library
	player   Player
	current  Clip
	playback Playback
}

// NewCoordinator creates a Coordinator that resolves clips in library and
// plays them with player.
func NewCoordinator(library *Library, player Player) *Coordinator {
	return &Coordinator{library: library, player: player}
}

// PlayPreparation starts the pre-roll clip.
func (coordinator *Coordinator) PlayPreparation() error {
	return coordinator.play(ClipPreparation)
}

// PlayPhase starts the clip for phase, stopping any other.
func (coordinator *Coordinator) PlayPhase(phase countdown.Phase) error {
	return coordinator.play(ClipFor(phase, false))
}

// PlayFinished starts the completion clip.
func (coordinator *Coordinator) PlayFinished() error {
	return coordinator.play(ClipFinish)
}

// PauseAll halts playback but remembers the current clip.
func (coordinator *Coordinator) PauseAll() error {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()
	return coordinator.haltLocked()
}

// Resume replays the clip for the current phase from its start.
func (coordinator *Coordinator) Resume(phase countdown.Phase, isPreparation bool) error {
	return coordinator.play(ClipFor(phase, isPreparation))
}

// StopAll halts playback and forgets the current clip.
func (coordinator *Coordinator) StopAll() error {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()
	coordinator.current = ""
	return coordinator.haltLocked()
}

// Current returns the clip that is playing or paused.
func (coordinator *Coordinator) Current() Clip {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()
	return coordinator.current
}

func (coordinator *Coordinator) play(clip Clip) error {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()

	haltErr := coordinator.haltLocked()
	coordinator.current = clip

	path, err := coordinator.library.ClipPath(clip)
	if err != nil {
		return err
	}
	playback, err := coordinator.player.Loop(path)
	if err != nil {
		return fmt.Errorf("play %s: %w", clip, err)
	}
	coordinator.playback = playback
	return haltErr
}

func (coordinator *Coordinator) haltLocked() error {
	if coordinator.playback == nil {
		return nil
	}
	playback := coordinator.playback
	coordinator.playback = nil
	if err := playback.Stop(); err != nil {
		return fmt.Errorf("stop %s: %w", coordinator.current, err)
	}
	return nil
}
