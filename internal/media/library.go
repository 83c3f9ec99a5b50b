// Package media plays the looping phase clips and one-shot cue sounds
// through an external player process.
package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"roundbell/internal/core/countdown"
)

// ErrAssetMissing indicates a clip or sound file is not present.
var ErrAssetMissing = errors.New("media asset missing")

// Clip names a looping background video.
type Clip string

const (
	ClipPreparation Clip = "start"
	ClipWork        Clip = "work"
	ClipRest        Clip = "rest"
	ClipFinish      Clip = "finish"
)

// Sound names a one-shot audio cue.
type Sound string

const (
	SoundShort Sound = "beep_short"
	SoundLong  Sound = "beep_long"
	SoundBell  Sound = "boxing_bell"
	SoundTap   Sound = "tap_click"
)

const (
	clipExt  = ".mp4"
	soundExt = ".wav"
)

// ClipFor selects the clip for a phase; the preparation clip wins while the
// pre-roll is running.
func ClipFor(phase countdown.Phase, isPreparation bool) Clip {
	if isPreparation {
		return ClipPreparation
	}
	switch phase {
	case countdown.PhaseRest:
		return ClipRest
	case countdown.PhaseDone:
		return ClipFinish
	default:
		return ClipWork
	}
}

// Library resolves asset files inside one directory.
type Library struct {
	mu  sync.RWMutex
	dir string
}

// NewLibrary creates a Library rooted at dir.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// Dir returns the asset directory.
func (library *Library) Dir() string {
	library.mu.RLock()
	defer library.mu.RUnlock()
	return library.dir
}

// SetDir points the library at a new asset directory.
func (library *Library) SetDir(dir string) {
	library.mu.Lock()
	library.dir = dir
	library.mu.Unlock()
}

// ClipPath returns the path of clip or ErrAssetMissing.
func (library *Library) ClipPath(clip Clip) (string, error) {
	return library.resolve(string(clip) + clipExt)
}

// SoundPath returns the path of sound or ErrAssetMissing.
func (library *Library) SoundPath(sound Sound) (string, error) {
	return library.resolve(string(sound) + soundExt)
}

// Missing lists every expected asset that is not present.
func (library *Library) Missing() []string {
	var missing []string
	for _, clip := range []Clip{ClipPreparation, ClipWork, ClipRest, ClipFinish} {
		if _, err := library.ClipPath(clip); err != nil {
			missing = append(missing, string(clip)+clipExt)
		}
	}
	for _, sound := range []Sound{SoundShort, SoundLong, SoundBell, SoundTap} {
		if _, err := library.SoundPath(sound); err != nil {
			missing = append(missing, string(sound)+soundExt)
		}
	}
	return missing
}

func (library *Library) resolve(name string) (string, error) {
	dir := library.Dir()
	if dir == "" {
		return "", fmt.Errorf("%w: %s (no asset directory)", ErrAssetMissing, name)
	}
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrAssetMissing, path)
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrAssetMissing, path)
	}
	return path, nil
}
