package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"github.com/AkatukiSora/pokergraph/internal/filter"
)

const (
	cardCellW float32 = 34
	cardCellH float32 = 24
)

var (
	cardOnPair    = color.NRGBA{R: 0x2E, G: 0x7D, B: 0x32, A: 0xFF}
	cardOnSuited  = color.NRGBA{R: 0x1E, G: 0x63, B: 0xB5, A: 0xFF}
	cardOnOffsuit = color.NRGBA{R: 0x6A, G: 0x4C, B: 0x93, A: 0xFF}
	cardOff       = color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xFF}
	cardTextOff   = color.NRGBA{R: 0x9E, G: 0x9E, B: 0x9E, A: 0xFF}
)

// cardGrid is the 13x13 starting-hand selector. Tapping a cell flips it;
// update repaints after bulk changes.
type cardGrid struct {
	root  fyne.CanvasObject
	cells map[string]*cardCell
}

type cardCell struct {
	bg   *canvas.Rectangle
	text *canvas.Text
	tap  *tapArea
	on   bool
}

func cardColor(abbr string) color.NRGBA {
	switch {
	case len(abbr) == 2:
		return cardOnPair
	case abbr[2] == 's':
		return cardOnSuited
	default:
		return cardOnOffsuit
	}
}

func newCardGrid(cards filter.Set[string], onToggle func(abbr string, on bool)) *cardGrid {
	g := &cardGrid{cells: make(map[string]*cardCell, 169)}
	grid := filter.CardGrid()
	items := make([]fyne.CanvasObject, 0, 169)
	for _, row := range grid {
		for _, abbr := range row {
			abbr := abbr
			c := &cardCell{
				bg:   canvas.NewRectangle(cardOff),
				text: canvas.NewText(abbr, color.White),
			}
			c.bg.SetMinSize(fyne.NewSize(cardCellW, cardCellH))
			c.text.TextSize = 11
			c.text.Alignment = fyne.TextAlignCenter
			g.cells[abbr] = c
			c.tap = newTapArea(func() {
				onToggle(abbr, !g.cells[abbr].on)
			})
			items = append(items, container.NewStack(c.bg, container.NewCenter(c.text), c.tap))
		}
	}
	g.root = container.NewGridWithColumns(13, items...)
	g.update(cards)
	return g
}

func (g *cardGrid) CanvasObject() fyne.CanvasObject {
	return g.root
}

func (g *cardGrid) update(cards filter.Set[string]) {
	for abbr, c := range g.cells {
		c.on = cards.IsSelected(abbr)
		if c.on {
			c.bg.FillColor = cardColor(abbr)
			c.text.Color = color.White
		} else {
			c.bg.FillColor = cardOff
			c.text.Color = cardTextOff
		}
		c.bg.Refresh()
		c.text.Refresh()
	}
}
