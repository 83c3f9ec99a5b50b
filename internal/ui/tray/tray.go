package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "Roundbell"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnStart       func()
	OnTogglePause func()
	OnStop        func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	startItem  *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	stopItem   *fyne.MenuItem
	status     string
	started    bool
	paused     bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		status:    "ready",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.startItem = fyne.NewMenuItem("Start", func() {
		invoke(manager.callbacks.OnStart)
	})
	manager.pauseItem = fyne.NewMenuItem("Pause", func() {
		invoke(manager.callbacks.OnTogglePause)
	})
	manager.stopItem = fyne.NewMenuItem("Stop", func() {
		invoke(manager.callbacks.OnStop)
	})

	manager.refresh()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	if manager.status == status {
		return
	}
	manager.status = status
	manager.refresh()
}

// SetSession updates which session actions are available.
func (manager *Manager) SetSession(started, paused bool) {
	if manager.started == started && manager.paused == paused {
		return
	}
	manager.started = started
	manager.paused = paused
	manager.refresh()
}

// StatusLabel returns the current status line.
func (manager *Manager) StatusLabel() string {
	return manager.statusItem.Label
}

func (manager *Manager) refresh() {
	status := manager.status
	if manager.paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)

	manager.startItem.Disabled = manager.started
	manager.pauseItem.Disabled = !manager.started
	manager.stopItem.Disabled = !manager.started
	if manager.paused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}

	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() {
			invoke(manager.callbacks.OnShow)
		}),
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		manager.stopItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() {
			invoke(manager.callbacks.OnPreferences)
		}),
		manager.quitItem(),
	))
}

func (manager *Manager) quitItem() *fyne.MenuItem {
	quit := fyne.NewMenuItem("Quit", func() {
		invoke(manager.callbacks.OnQuit)
	})
	// Replaces the Quit entry the driver would otherwise append.
	quit.IsQuit = true
	return quit
}

func invoke(callback func()) {
	if callback != nil {
		callback()
	}
}
