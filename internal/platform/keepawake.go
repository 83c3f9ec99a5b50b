package platform

import (
	"errors"
	"fmt"
	"os/exec"
	"sync"
)

// ErrKeepAwakeUnsupported indicates the OS offers no way to inhibit sleep.
var ErrKeepAwakeUnsupported = errors.New("keep awake unsupported")

// KeepAwake prevents the display from sleeping while held.
type KeepAwake interface {
	Acquire() error
	Release() error
}

// NewKeepAwake returns a platform-specific keep-awake hold.
func NewKeepAwake(appName string) KeepAwake {
	return newKeepAwake(appName)
}

// inhibitorHold keeps a helper process alive for the duration of the hold.
type inhibitorHold struct {
	mu      sync.Mutex
	command string
	args    []string
	cmd     *exec.Cmd
}

func newInhibitorHold(command string, args ...string) KeepAwake {
	path, err := exec.LookPath(command)
	if err != nil {
		return unsupportedKeepAwake{}
	}
	return &inhibitorHold{command: path, args: args}
}

func (hold *inhibitorHold) Acquire() error {
	hold.mu.Lock()
	defer hold.mu.Unlock()
	if hold.cmd != nil {
		return nil
	}
	cmd := exec.Command(hold.command, hold.args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start inhibitor: %w", err)
	}
	hold.cmd = cmd
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func (hold *inhibitorHold) Release() error {
	hold.mu.Lock()
	defer hold.mu.Unlock()
	if hold.cmd == nil {
		return nil
	}
	cmd := hold.cmd
	hold.cmd = nil
	if err := cmd.Process.Kill(); err != nil {
		return fmt.Errorf("stop inhibitor: %w", err)
	}
	return nil
}

type unsupportedKeepAwake struct{}

func (unsupportedKeepAwake) Acquire() error {
	return ErrKeepAwakeUnsupported
}

func (unsupportedKeepAwake) Release() error {
	return nil
}

// Toggle gates a KeepAwake behind a switch the user can flip at runtime.
type Toggle struct {
	mu      sync.Mutex
	hold    KeepAwake
	enabled bool
	held    bool
}

// NewToggle wraps hold; while disabled Acquire does nothing.
func NewToggle(hold KeepAwake, enabled bool) *Toggle {
	return &Toggle{hold: hold, enabled: enabled}
}

// SetEnabled flips the switch. Disabling drops a hold that is in place.
func (toggle *Toggle) SetEnabled(enabled bool) error {
	toggle.mu.Lock()
	defer toggle.mu.Unlock()
	toggle.enabled = enabled
	if enabled || !toggle.held {
		return nil
	}
	toggle.held = false
	return toggle.hold.Release()
}

// Acquire takes the hold if enabled.
func (toggle *Toggle) Acquire() error {
	toggle.mu.Lock()
	defer toggle.mu.Unlock()
	if !toggle.enabled || toggle.held {
		return nil
	}
	if err := toggle.hold.Acquire(); err != nil {
		return err
	}
	toggle.held = true
	return nil
}

// Release drops the hold if one was taken.
func (toggle *Toggle) Release() error {
	toggle.mu.Lock()
	defer toggle.mu.Unlock()
	if !toggle.held {
		return nil
	}
	toggle.held = false
	return toggle.hold.Release()
}
