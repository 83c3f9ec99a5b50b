//go:build windows

package platform

import (
	"fmt"
	"runtime"
	"sync"
	"syscall"
)

const (
	esContinuous      = 0x80000000
	esSystemRequired  = 0x00000001
	esDisplayRequired = 0x00000002
)

// executionStateHold pins a goroutine to one OS thread, since
// SetThreadExecutionState applies to the calling thread.
type executionStateHold struct {
	mu     sync.Mutex
	stopCh chan struct{}
}

func newKeepAwake(string) KeepAwake {
	return &executionStateHold{}
}

func setThreadExecutionState(flags uintptr) error {
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	proc := kernel32.NewProc("SetThreadExecutionState")
	result, _, err := proc.Call(flags)
	if result == 0 {
		if err != nil {
			return fmt.Errorf("set thread execution state: %w", err)
		}
		return fmt.Errorf("set thread execution state: unknown error")
	}
	return nil
}

func (hold *executionStateHold) Acquire() error {
	hold.mu.Lock()
	defer hold.mu.Unlock()
	if hold.stopCh != nil {
		return nil
	}

	stopCh := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		if err := setThreadExecutionState(esContinuous | esSystemRequired | esDisplayRequired); err != nil {
			errCh <- err
			return
		}
		errCh <- nil
		<-stopCh
		_ = setThreadExecutionState(esContinuous)
	}()

	if err := <-errCh; err != nil {
		return err
	}
	hold.stopCh = stopCh
	return nil
}

func (hold *executionStateHold) Release() error {
	hold.mu.Lock()
	defer hold.mu.Unlock()
	if hold.stopCh == nil {
		return nil
	}
	close(hold.stopCh)
	hold.stopCh = nil
	return nil
}
