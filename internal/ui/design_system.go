package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	uiMutedTextColor    = color.NRGBA{R: 0xA8, G: 0xAF, B: 0xB8, A: 0xFF}
	uiCardBorderColor   = color.NRGBA{R: 0x8A, G: 0x92, B: 0x9C, A: 0x2E}
	uiSurfaceTint       = color.NRGBA{R: 0x72, G: 0x86, B: 0x9A, A: 0x12}
	uiHeroSurfaceTint   = color.NRGBA{R: 0x3F, G: 0x81, B: 0xC6, A: 0x2E}
	uiHeroBorderColor   = color.NRGBA{R: 0x6C, G: 0x97, B: 0xC3, A: 0x70}
	uiSuccessAccent     = color.NRGBA{R: 0x4C, G: 0xAF, B: 0x50, A: 0xFF}
	uiDangerAccent      = color.NRGBA{R: 0xF4, G: 0x43, B: 0x36, A: 0xFF}
	uiInfoAccent        = color.NRGBA{R: 0x29, G: 0xB6, B: 0xF6, A: 0xFF}
	uiNeutralChipAccent = color.NRGBA{R: 0x90, G: 0xA4, B: 0xAE, A: 0xFF}
)

const cardRadius = 10

// newCard stacks a rounded surface, a tint and a hairline border behind
// content.
func newCard(content fyne.CanvasObject, tint, stroke color.Color) fyne.CanvasObject {
	bg := canvas.NewRectangle(theme.InputBackgroundColor())
	bg.CornerRadius = cardRadius

	overlay := canvas.NewRectangle(tint)
	overlay.CornerRadius = cardRadius

	border := canvas.NewRectangle(color.Transparent)
	border.CornerRadius = cardRadius
	border.StrokeColor = stroke
	border.StrokeWidth = 1

	return container.NewStack(bg, overlay, border, container.NewPadded(content))
}

func newSectionCard(content fyne.CanvasObject) fyne.CanvasObject {
	return newCard(content, uiSurfaceTint, uiCardBorderColor)
}

// newHeroCard is the highlighted card that holds the graph.
func newHeroCard(content fyne.CanvasObject) fyne.CanvasObject {
	return newCard(content, uiHeroSurfaceTint, uiHeroBorderColor)
}

// newMetricChip is a pill-shaped bold label tinted with accent.
func newMetricChip(text string, accent color.Color) fyne.CanvasObject {
	lbl := widget.NewLabel(text)
	lbl.TextStyle = fyne.TextStyle{Bold: true}

	bg := canvas.NewRectangle(color.Transparent)
	bg.CornerRadius = 999
	border := canvas.NewRectangle(color.Transparent)
	border.CornerRadius = 999
	border.StrokeWidth = 1
	border.StrokeColor = uiCardBorderColor
	if accent != nil {
		bg.FillColor = withAlpha(accent, 0x2E)
		border.StrokeColor = withAlpha(accent, 0x8A)
	}
	return container.NewStack(bg, border, container.NewPadded(lbl))
}

func newSubtleText(content string) *canvas.Text {
	t := canvas.NewText(content, uiMutedTextColor)
	t.TextSize = theme.TextSize() * 0.86
	return t
}

func withAlpha(c color.Color, a uint8) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = a
	return n
}

func newCenteredEmptyState(message string) fyne.CanvasObject {
	label := widget.NewLabel(message)
	label.Alignment = fyne.TextAlignCenter
	label.Wrapping = fyne.TextWrapWord

	card := newSectionCard(container.NewPadded(label))
	widthLock := canvas.NewRectangle(color.Transparent)
	widthLock.SetMinSize(fyne.NewSize(420, 0))

	return container.NewCenter(container.NewStack(widthLock, card))
}

var dividerColor = color.NRGBA{R: 0xAC, G: 0xAF, B: 0xB5, A: 0xFF}

// edgeFade maps a position in [0,1] to an alpha factor: transparent within
// 10% of either edge, opaque past 30%, linear in between.
func edgeFade(t float32) float32 {
	edge := min(t, 1-t)
	switch {
	case edge <= 0.10:
		return 0
	case edge >= 0.30:
		return 1
	default:
		return (edge - 0.10) / 0.20
	}
}

// newSectionDivider is a one-pixel horizontal rule that fades out at both ends.
func newSectionDivider() fyne.CanvasObject {
	r := canvas.NewRasterWithPixels(func(x, _, w, _ int) color.Color {
		c := dividerColor
		if w > 1 {
			c.A = uint8(float32(c.A) * edgeFade(float32(x)/float32(w-1)))
		}
		return c
	})
	r.SetMinSize(fyne.NewSize(0, 1))
	return r
}
