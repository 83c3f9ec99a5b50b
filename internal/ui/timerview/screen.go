package timerview

import (
	"fmt"
	"image/color"

	"roundbell/internal/core/countdown"
	"roundbell/internal/core/model"
)

// Palette is a three-stop vertical gradient, top to bottom.
type Palette struct {
	Top    color.NRGBA
	Middle color.NRGBA
	Bottom color.NRGBA
}

var (
	workPalette = twoStop(
		color.NRGBA{R: 0xFF, G: 0x87, B: 0x29, A: 0xFF},
		color.NRGBA{R: 0xFF, G: 0xB5, B: 0x6B, A: 0xFF},
	)
	restPalette = Palette{
		Top:    color.NRGBA{R: 0x10, G: 0xBD, B: 0x57, A: 0xFF},
		Middle: color.NRGBA{R: 0x2A, G: 0xA9, B: 0x56, A: 0xFF},
		Bottom: color.NRGBA{R: 0x0F, G: 0x80, B: 0x3B, A: 0xFF},
	}
	preparePalette = twoStop(
		color.NRGBA{R: 0x4A, G: 0x4A, B: 0x4F, A: 0xFF},
		color.NRGBA{R: 0x7A, G: 0x7A, B: 0x80, A: 0xFF},
	)
	donePalette = twoStop(color.NRGBA{A: 0xFF}, color.NRGBA{A: 0xFF})

	// 45% black over the stage while paused.
	dimColor = color.NRGBA{A: 115}
)

func twoStop(top, bottom color.NRGBA) Palette {
	return Palette{Top: top, Middle: blend(top, bottom), Bottom: bottom}
}

func blend(a, b color.NRGBA) color.NRGBA {
	mid := func(x, y uint8) uint8 {
		return uint8((uint16(x) + uint16(y)) / 2)
	}
	return color.NRGBA{R: mid(a.R, b.R), G: mid(a.G, b.G), B: mid(a.B, b.B), A: mid(a.A, b.A)}
}

// Screen is everything the window draws for one state.
type Screen struct {
	Stage      string
	Rounds     string
	Clock      string
	Palette    Palette
	Dimmed     bool
	Setup      bool
	PauseLabel string

	RoundsValue string
	WorkValue   string
	RestValue   string
	Total       string
}

// ScreenFor derives the screen from a countdown state and the idle config.
func ScreenFor(state countdown.State, config model.TimerConfig) Screen {
	if state.Started {
		config = state.Config
	}
	screen := Screen{
		Stage:       stageLabel(state.Stage()),
		Rounds:      roundsLabel(config.Rounds),
		Clock:       FormatClock(state.Display()),
		Palette:     paletteFor(state.Stage()),
		Dimmed:      state.Paused,
		Setup:       !state.Started,
		PauseLabel:  "Pause",
		RoundsValue: fmt.Sprintf("%d", config.Rounds),
		WorkValue:   FormatClock(config.WorkSeconds),
		RestValue:   FormatClock(config.RestSeconds),
		Total:       "Total " + FormatClock(config.TotalSeconds()),
	}
	if state.Paused {
		screen.PauseLabel = "Resume"
	}
	return screen
}

// FormatClock renders seconds as M:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func stageLabel(stage countdown.Stage) string {
	switch stage {
	case countdown.StagePrepare:
		return "Prepare"
	case countdown.StageWork:
		return "Work"
	case countdown.StageRest:
		return "Rest"
	case countdown.StageDone:
		return "Done"
	default:
		return "Ready"
	}
}

func roundsLabel(rounds int) string {
	if rounds == 1 {
		return "1 round"
	}
	return fmt.Sprintf("%d rounds", rounds)
}

func paletteFor(stage countdown.Stage) Palette {
	switch stage {
	case countdown.StagePrepare:
		return preparePalette
	case countdown.StageRest:
		return restPalette
	case countdown.StageDone:
		return donePalette
	default:
		return workPalette
	}
}
