package timerview

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

const (
	minClockTextSize = float32(48)
	clockHeightShare = float32(0.7)
	// Glyph advance of bold digits relative to the text size.
	clockGlyphWidth = float32(0.62)
)

// clockLayout grows a single canvas.Text to fill its cell.
type clockLayout struct{}

func (layout *clockLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) == 0 {
		return
	}
	text, ok := objects[0].(*canvas.Text)
	if !ok {
		objects[0].Resize(size)
		return
	}

	textSize := clockTextSize(size, len([]rune(text.Text)))
	if text.TextSize != textSize {
		text.TextSize = textSize
		text.Refresh()
	}

	textMin := text.MinSize()
	text.Move(fyne.NewPos((size.Width-textMin.Width)/2, (size.Height-textMin.Height)/2))
	text.Resize(textMin)
}

func (layout *clockLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(minClockTextSize*clockGlyphWidth*4, minClockTextSize)
}

func clockTextSize(size fyne.Size, characters int) float32 {
	if characters < 4 {
		characters = 4
	}
	byHeight := size.Height * clockHeightShare
	byWidth := size.Width * 0.9 / (float32(characters) * clockGlyphWidth)
	textSize := byHeight
	if byWidth < textSize {
		textSize = byWidth
	}
	if textSize < minClockTextSize {
		textSize = minClockTextSize
	}
	return textSize
}

// backdropLayout stacks the two halves of a three-stop gradient.
type backdropLayout struct{}

func (layout *backdropLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 2 {
		return
	}
	half := size.Height / 2
	objects[0].Move(fyne.NewPos(0, 0))
	objects[0].Resize(fyne.NewSize(size.Width, half))
	objects[1].Move(fyne.NewPos(0, half))
	objects[1].Resize(fyne.NewSize(size.Width, size.Height-half))
}

func (layout *backdropLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(0, 0)
}
