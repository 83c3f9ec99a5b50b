// Package clock delivers the periodic tick that drives a session.
package clock

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Dispatcher runs fn on the thread that owns session state.
type Dispatcher func(fn func())

// Config contains runtime options for Source.
type Config struct {
	Interval time.Duration
	Dispatch Dispatcher
}

// Source emits one callback per interval while subscribed.
type Source struct {
	clock    clockwork.Clock
	interval time.Duration
	dispatch Dispatcher

	mu     sync.Mutex
	stopCh chan struct{}
}

// NewSource creates a tick source on top of clock. In production pass
// clockwork.NewRealClock(); tests use a fake clock.
func NewSource(clock clockwork.Clock, config Config) *Source {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if config.Interval <= 0 {
		config.Interval = time.Second
	}
	if config.Dispatch == nil {
		config.Dispatch = func(fn func()) { fn() }
	}
	return &Source{
		clock:    clock,
		interval: config.Interval,
		dispatch: config.Dispatch,
	}
}

// OnTick starts ticking and invokes callback once per interval until the
// returned cancel func is called. A new subscription replaces the previous one.
func (source *Source) OnTick(callback func()) (cancel func()) {
	stopCh := make(chan struct{})

	source.mu.Lock()
	if source.stopCh != nil {
		close(source.stopCh)
	}
	source.stopCh = stopCh
	source.mu.Unlock()

	ticker := source.clock.NewTicker(source.interval)
	go source.run(ticker, stopCh, callback)

	var once sync.Once
	return func() {
		once.Do(func() {
			source.mu.Lock()
			if source.stopCh == stopCh {
				close(stopCh)
				source.stopCh = nil
			}
			source.mu.Unlock()
		})
	}
}

func (source *Source) run(ticker clockwork.Ticker, stopCh <-chan struct{}, callback func()) {
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.Chan():
			// A tick racing with cancel is dropped.
			select {
			case <-stopCh:
				return
			default:
			}
			source.dispatch(callback)
		}
	}
}
