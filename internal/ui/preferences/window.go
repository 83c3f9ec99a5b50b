package preferences

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// LogLevels lists the levels offered in the preferences window.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	assetsDir     *widget.Entry
	playerCommand *widget.Entry
	keepAwake     *widget.Check
	logLevel      *widget.Select
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Roundbell Settings")

	assetsDir := widget.NewEntry()
	assetsDir.SetPlaceHolder("Folder with start.mp4, work.mp4, ...")

	playerCommand := widget.NewEntry()
	playerCommand.SetPlaceHolder("mpv")

	keepAwake := widget.NewCheck("Keep the screen awake during a session", nil)
	logLevel := widget.NewSelect(LogLevels, nil)

	prefs := &Window{
		window:        window,
		settings:      settings,
		onSave:        onSave,
		assetsDir:     assetsDir,
		playerCommand: playerCommand,
		keepAwake:     keepAwake,
		logLevel:      logLevel,
	}

	browse := widget.NewButton("Browse...", prefs.browseAssets)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Media", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Assets folder"),
		container.NewBorder(nil, nil, nil, browse, assetsDir),
		widget.NewLabel("Player command"),
		playerCommand,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		keepAwake,
		container.NewHBox(widget.NewLabel("Log level"), logLevel),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewPadded(container.NewBorder(nil, buttons, nil, nil, form)))
	window.Resize(fyne.NewSize(460, 340))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.UpdateSettings(prefs.settings)
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.assetsDir.SetText(settings.AssetsDir)
	prefs.playerCommand.SetText(settings.PlayerCommand)
	prefs.keepAwake.SetChecked(settings.KeepAwake)
	prefs.logLevel.SetSelected(settings.LogLevel)
}

func (prefs *Window) browseAssets() {
	picker := dialog.NewFolderOpen(func(folder fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, prefs.window)
			return
		}
		if folder == nil {
			return
		}
		prefs.assetsDir.SetText(folder.Path())
	}, prefs.window)
	picker.Show()
}

func (prefs *Window) handleSave() {
	settings := Apply(prefs.settings, Fields{
		AssetsDir:     prefs.assetsDir.Text,
		PlayerCommand: prefs.playerCommand.Text,
		KeepAwake:     prefs.keepAwake.Checked,
		LogLevel:      prefs.logLevel.Selected,
	})

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

// Fields holds the raw values typed into the window.
type Fields struct {
	AssetsDir     string
	PlayerCommand string
	KeepAwake     bool
	LogLevel      string
}

// Apply merges edited fields into settings. A blank player command or an
// unknown log level keeps the previous value.
func Apply(settings Settings, fields Fields) Settings {
	settings.AssetsDir = strings.TrimSpace(fields.AssetsDir)
	if command := strings.TrimSpace(fields.PlayerCommand); command != "" {
		settings.PlayerCommand = command
	}
	settings.KeepAwake = fields.KeepAwake
	for _, level := range LogLevels {
		if fields.LogLevel == level {
			settings.LogLevel = level
		}
	}
	return settings
}
