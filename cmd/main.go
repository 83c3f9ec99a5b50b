package main

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"roundbell/internal/core/clock"
	"roundbell/internal/core/countdown"
	"roundbell/internal/core/session"
	applog "roundbell/internal/log"
	"roundbell/internal/media"
	"roundbell/internal/platform"
	"roundbell/internal/storage"
	"roundbell/internal/ui/preferences"
	"roundbell/internal/ui/timerview"
	"roundbell/internal/ui/tray"
	"roundbell/resources"
)

const (
	appName = "Roundbell"
	appID   = "com.roundbell.app"
)

func main() {
	settings := preferences.DefaultSettings()
	store, storeErr := storage.DefaultStore(appName)
	var loadErr error
	if storeErr == nil {
		settings, loadErr = store.LoadSettings()
	}

	applog.Configure(applog.Config{Level: settings.LogLevel, Console: true})
	logger := applog.WithComponent("app")
	if storeErr != nil {
		logger.Warn().Err(storeErr).Msg("settings will not be persisted")
	}
	if loadErr != nil {
		logger.Warn().Err(loadErr).Str("path", store.Path()).Msg("settings unreadable, using defaults")
	}

	var view *timerview.Window
	guard, err := platform.AcquireSingleInstance(appName, func() {
		fyne.Do(func() {
			if view != nil {
				view.Show()
			}
		})
	})
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info().Msg("already running, raised the existing window")
			return
		}
		logger.Error().Err(err).Msg("single instance")
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo(resources.AppIcon))

	library := media.NewLibrary(settings.AssetsDir)
	player := media.NewExecPlayer(settings.PlayerConfig())
	reportMedia(logger, library, player)
	coordinator := media.NewCoordinator(library, player)
	cues := media.NewCues(library, player, media.LogHaptics{Logger: applog.WithComponent("haptics")})
	keepAwake := platform.NewToggle(platform.NewKeepAwake(appName), settings.KeepAwake)
	ticks := clock.NewSource(clockwork.NewRealClock(), clock.Config{
		Interval: time.Second,
		Dispatch: fyne.Do,
	})

	controller := session.New(session.Options{
		Config:    settings.Timer,
		Ticker:    ticks,
		Media:     coordinator,
		Feedback:  cues,
		KeepAwake: keepAwake,
		Logger:    applog.L(),
	})

	saveSettings := func() {
		if store == nil {
			return
		}
		settings.Timer = controller.Config()
		if err := store.SaveSettings(settings); err != nil {
			logger.Warn().Err(err).Str("path", store.Path()).Msg("save settings failed")
		}
	}

	report := func(action string, err error) {
		switch {
		case err == nil:
		case errors.Is(err, session.ErrSessionActive):
			logger.Debug().Err(err).Str("action", action).Msg("ignored while a session runs")
		default:
			logger.Warn().Err(err).Str("action", action).Msg("command failed")
		}
	}

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		library.SetDir(settings.AssetsDir)
		player.Reconfigure(settings.PlayerConfig())
		report("keep awake", keepAwake.SetEnabled(settings.KeepAwake))
		report("log level", applog.SetLevel(settings.LogLevel))
		reportMedia(logger, library, player)
		saveSettings()
	})

	start := func() {
		if err := controller.Start(); err != nil {
			report("start", err)
			return
		}
		saveSettings()
	}

	view = timerview.New(fyneApp, appName, timerview.Callbacks{
		OnStart:       start,
		OnTogglePause: controller.TogglePause,
		OnStop:        controller.Stop,
		OnAdjustRounds: func(delta int) {
			report("adjust rounds", controller.AdjustRounds(delta))
		},
		OnAdjustWork: func(delta int) {
			report("adjust work", controller.AdjustWork(delta))
		},
		OnAdjustRest: func(delta int) {
			report("adjust rest", controller.AdjustRest(delta))
		},
		OnPreset: func(rounds int) {
			report("preset", controller.ApplyPreset(rounds))
		},
		OnPreferences: prefsWindow.Show,
	})
	view.Render(controller.Snapshot(), controller.Config())

	var shutdown sync.Once
	quit := func() {
		shutdown.Do(func() {
			saveSettings()
			controller.Close()
			report("stop media", coordinator.StopAll())
			report("stop cues", cues.Close())
			fyneApp.Quit()
		})
	}

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        view.Show,
			OnStart:       start,
			OnTogglePause: controller.TogglePause,
			OnStop:        controller.Stop,
			OnPreferences: prefsWindow.Show,
			OnQuit:        quit,
		})
		desktopApp.SetSystemTrayIcon(fyneApp.Icon())
		view.Window().SetCloseIntercept(view.Window().Hide)
	} else {
		view.Window().SetCloseIntercept(quit)
	}

	updates := controller.Subscribe(16)
	go func() {
		for update := range updates {
			fyne.Do(func() {
				view.Render(update.State, update.Config)
				if trayManager != nil {
					trayManager.SetStatus(trayStatus(update.State))
					trayManager.SetSession(update.State.Started, update.State.Paused)
				}
			})
		}
	}()

	view.Show()
	fyneApp.Run()
	quit()
}

func reportMedia(logger zerolog.Logger, library *media.Library, player *media.ExecPlayer) {
	if !player.Available() {
		logger.Warn().Err(media.ErrPlayerUnavailable).Msg("videos and sounds are disabled")
	}
	if missing := library.Missing(); len(missing) > 0 {
		logger.Warn().Str("dir", library.Dir()).Strs("missing", missing).Msg("media assets missing")
	}
}

func trayStatus(state countdown.State) string {
	if !state.Started {
		return "ready"
	}
	screen := timerview.ScreenFor(state, state.Config)
	if state.Phase == countdown.PhaseDone {
		return screen.Stage
	}
	return fmt.Sprintf("%s %s, round %d/%d", screen.Stage, screen.Clock, state.Round, state.Config.Rounds)
}
