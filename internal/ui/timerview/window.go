// Package timerview draws the single timer screen: setup while idle, the
// full-bleed countdown while a session runs.
package timerview

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"roundbell/internal/core/countdown"
	"roundbell/internal/core/model"
)

// Callbacks defines screen action handlers.
type Callbacks struct {
	OnStart        func()
	OnTogglePause  func()
	OnStop         func()
	OnAdjustRounds func(delta int)
	OnAdjustWork   func(delta int)
	OnAdjustRest   func(delta int)
	OnPreset       func(rounds int)
	OnPreferences  func()
}

// Window manages the timer screen. All methods must run on the Fyne main
// thread.
type Window struct {
	window    fyne.Window
	callbacks Callbacks

	upper *canvas.LinearGradient
	lower *canvas.LinearGradient
	dim   *canvas.Rectangle

	stageText  *canvas.Text
	roundsText *canvas.Text
	clockText  *canvas.Text
	clockCell  *fyne.Container

	setup       *fyne.Container
	roundsValue *widget.Label
	workValue   *widget.Label
	restValue   *widget.Label
	totalValue  *widget.Label

	idleControls   *fyne.Container
	activeControls *fyne.Container
	pauseButton    *widget.Button
}

// New creates the timer window.
func New(app fyne.App, title string, callbacks Callbacks) *Window {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	view := &Window{
		window:    window,
		callbacks: callbacks,
	}

	view.upper = canvas.NewVerticalGradient(workPalette.Top, workPalette.Middle)
	view.lower = canvas.NewVerticalGradient(workPalette.Middle, workPalette.Bottom)
	backdrop := container.New(&backdropLayout{}, view.upper, view.lower)

	view.dim = canvas.NewRectangle(dimColor)
	view.dim.Hide()

	view.stageText = hudText("Ready", 28)
	view.roundsText = hudText("", 20)
	preferencesButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		if view.callbacks.OnPreferences != nil {
			view.callbacks.OnPreferences()
		}
	})
	preferencesButton.Importance = widget.LowImportance
	hud := container.NewPadded(container.NewHBox(
		view.stageText,
		layout.NewSpacer(),
		container.NewCenter(view.roundsText),
		preferencesButton,
	))

	view.clockText = canvas.NewText("0:00", color.White)
	view.clockText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.clockText.Alignment = fyne.TextAlignCenter
	view.clockCell = container.New(&clockLayout{}, view.clockText)

	view.setup = view.buildSetup()
	center := container.NewStack(view.setup, view.clockCell)

	startButton := widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if view.callbacks.OnStart != nil {
			view.callbacks.OnStart()
		}
	})
	startButton.Importance = widget.HighImportance
	view.idleControls = container.NewPadded(startButton)

	view.pauseButton = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() {
		if view.callbacks.OnTogglePause != nil {
			view.callbacks.OnTogglePause()
		}
	})
	stopButton := widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), func() {
		if view.callbacks.OnStop != nil {
			view.callbacks.OnStop()
		}
	})
	stopButton.Importance = widget.DangerImportance
	view.activeControls = container.NewPadded(container.NewGridWithColumns(2, view.pauseButton, stopButton))
	controls := container.NewStack(view.idleControls, view.activeControls)

	content := container.NewBorder(hud, controls, nil, nil, center)
	window.SetContent(container.NewStack(backdrop, view.dim, content))
	window.Resize(fyne.NewSize(420, 640))

	view.Render(countdown.Idle(), model.DefaultTimerConfig())
	return view
}

// Window exposes the underlying Fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// Show displays the window and brings it to front.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Render redraws the screen for state. config is shown while idle.
func (view *Window) Render(state countdown.State, config model.TimerConfig) {
	screen := ScreenFor(state, config)

	view.upper.StartColor = screen.Palette.Top
	view.upper.EndColor = screen.Palette.Middle
	view.lower.StartColor = screen.Palette.Middle
	view.lower.EndColor = screen.Palette.Bottom
	view.upper.Refresh()
	view.lower.Refresh()

	if screen.Dimmed {
		view.dim.Show()
	} else {
		view.dim.Hide()
	}

	setText(view.stageText, screen.Stage)
	setText(view.roundsText, screen.Rounds)

	if screen.Setup {
		view.roundsValue.SetText(screen.RoundsValue)
		view.workValue.SetText(screen.WorkValue)
		view.restValue.SetText(screen.RestValue)
		view.totalValue.SetText(screen.Total)
		view.clockCell.Hide()
		view.activeControls.Hide()
		view.setup.Show()
		view.idleControls.Show()
		return
	}

	if view.clockText.Text != screen.Clock {
		view.clockText.Text = screen.Clock
		view.clockCell.Refresh()
	}
	view.pauseButton.SetText(screen.PauseLabel)
	if screen.Dimmed {
		view.pauseButton.SetIcon(theme.MediaPlayIcon())
	} else {
		view.pauseButton.SetIcon(theme.MediaPauseIcon())
	}
	view.setup.Hide()
	view.idleControls.Hide()
	view.clockCell.Show()
	view.activeControls.Show()
}

func (view *Window) buildSetup() *fyne.Container {
	presets := container.NewGridWithColumns(len(model.RoundPresets))
	for _, rounds := range model.RoundPresets {
		presets.Add(widget.NewButton(roundsLabel(rounds), func() {
			if view.callbacks.OnPreset != nil {
				view.callbacks.OnPreset(rounds)
			}
		}))
	}

	view.roundsValue = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	view.workValue = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	view.restValue = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	view.totalValue = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	steppers := container.New(layout.NewFormLayout(),
		widget.NewLabel("Rounds"), stepper(view.roundsValue, func(delta int) {
			if view.callbacks.OnAdjustRounds != nil {
				view.callbacks.OnAdjustRounds(delta)
			}
		}),
		widget.NewLabel("Work"), stepper(view.workValue, func(delta int) {
			if view.callbacks.OnAdjustWork != nil {
				view.callbacks.OnAdjustWork(delta)
			}
		}),
		widget.NewLabel("Rest"), stepper(view.restValue, func(delta int) {
			if view.callbacks.OnAdjustRest != nil {
				view.callbacks.OnAdjustRest(delta)
			}
		}),
	)

	card := widget.NewCard("", "", container.NewVBox(presets, widget.NewSeparator(), steppers, view.totalValue))
	return container.NewCenter(card)
}

func stepper(value *widget.Label, onStep func(delta int)) fyne.CanvasObject {
	minus := widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() {
		onStep(-1)
	})
	plus := widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		onStep(1)
	})
	return container.NewBorder(nil, nil, minus, plus, value)
}

func hudText(text string, size float32) *canvas.Text {
	label := canvas.NewText(text, color.White)
	label.TextStyle = fyne.TextStyle{Bold: true}
	label.TextSize = size
	return label
}

func setText(label *canvas.Text, text string) {
	if label.Text == text {
		return
	}
	label.Text = text
	label.Refresh()
}
