package media

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// ErrPlayerUnavailable indicates the external player binary was not found.
var ErrPlayerUnavailable = errors.New("media player unavailable")

// Playback is one running player instance.
type Playback interface {
	Stop() error
	Done() <-chan struct{}
}

// Player starts playback of a file.
type Player interface {
	Loop(path string) (Playback, error)
	Once(path string) (Playback, error)
}

// PlayerConfig describes the external player command line.
type PlayerConfig struct {
	Command  string
	LoopArgs []string
	OnceArgs []string
}

// DefaultPlayerConfig plays muted looping video in its own window and
// audio-only one-shots, using mpv.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Command:  "mpv",
		LoopArgs: []string{"--really-quiet", "--loop-file=inf", "--mute=yes", "--force-window=yes", "--title=Roundbell"},
		OnceArgs: []string{"--really-quiet", "--no-video", "--no-terminal"},
	}
}

// ExecPlayer runs one external process per playback.
type ExecPlayer struct {
	mu     sync.RWMutex
	path   string
	config PlayerConfig
}

// NewExecPlayer resolves config.Command on PATH. A missing binary is not an
// error here; every playback then fails with ErrPlayerUnavailable.
func NewExecPlayer(config PlayerConfig) *ExecPlayer {
	player := &ExecPlayer{}
	player.Reconfigure(config)
	return player
}

// Reconfigure swaps the command line used by later playbacks.
func (player *ExecPlayer) Reconfigure(config PlayerConfig) {
	defaults := DefaultPlayerConfig()
	if config.Command == "" {
		config.Command = defaults.Command
	}
	if config.LoopArgs == nil {
		config.LoopArgs = defaults.LoopArgs
	}
	if config.OnceArgs == nil {
		config.OnceArgs = defaults.OnceArgs
	}
	path, _ := exec.LookPath(config.Command)

	player.mu.Lock()
	player.path = path
	player.config = config
	player.mu.Unlock()
}

// Available reports whether the player binary was found.
func (player *ExecPlayer) Available() bool {
	player.mu.RLock()
	defer player.mu.RUnlock()
	return player.path != ""
}

// Loop plays path repeatedly until stopped.
func (player *ExecPlayer) Loop(path string) (Playback, error) {
	return player.start(true, path)
}

// Once plays path a single time.
func (player *ExecPlayer) Once(path string) (Playback, error) {
	return player.start(false, path)
}

func (player *ExecPlayer) start(loop bool, path string) (Playback, error) {
	player.mu.RLock()
	binary, config := player.path, player.config
	player.mu.RUnlock()

	if binary == "" {
		return nil, fmt.Errorf("%w: %s", ErrPlayerUnavailable, config.Command)
	}
	args := config.OnceArgs
	if loop {
		args = config.LoopArgs
	}
	commandArgs := append(append([]string(nil), args...), path)
	cmd := exec.Command(binary, commandArgs...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", config.Command, err)
	}

	playback := &processPlayback{cmd: cmd, done: make(chan struct{})}
	go func() {
		_ = cmd.Wait()
		close(playback.done)
	}()
	return playback, nil
}

type processPlayback struct {
	cmd  *exec.Cmd
	done chan struct{}
	once sync.Once
}

func (playback *processPlayback) Done() <-chan struct{} {
	return playback.done
}

func (playback *processPlayback) Stop() error {
	var err error
	playback.once.Do(func() {
		select {
		case <-playback.done:
			return
		default:
		}
		// The wait goroutine reaps the process.
		if killErr := playback.cmd.Process.Kill(); killErr != nil && !errors.Is(killErr, os.ErrProcessDone) {
			err = fmt.Errorf("kill player: %w", killErr)
		}
	})
	return err
}
