package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// pokerTheme is the dark theme with blue accents. Success and error use
// the same green and red as the profit lines in the exported graph.
type pokerTheme struct{}

var _ fyne.Theme = pokerTheme{}

func newPokerTheme() fyne.Theme {
	return pokerTheme{}
}

var themeColors = map[fyne.ThemeColorName]color.Color{
	theme.ColorNamePrimary:           color.NRGBA{R: 0x3F, G: 0x81, B: 0xC6, A: 0xFF},
	theme.ColorNameFocus:             color.NRGBA{R: 0x66, G: 0xA8, B: 0xE0, A: 0xAA},
	theme.ColorNameHover:             color.NRGBA{R: 0x7F, G: 0x8D, B: 0x9B, A: 0x2A},
	theme.ColorNameSelection:         color.NRGBA{R: 0x49, G: 0x89, B: 0xCA, A: 0x44},
	theme.ColorNameInputBackground:   color.NRGBA{R: 0x20, G: 0x26, B: 0x2D, A: 0xFF},
	theme.ColorNameOverlayBackground: color.NRGBA{R: 0x23, G: 0x2A, B: 0x32, A: 0xFF},
	theme.ColorNameSuccess:           color.NRGBA{R: 0x2E, G: 0x9B, B: 0x3A, A: 0xFF},
	theme.ColorNameError:             color.NRGBA{R: 0xD6, G: 0x28, B: 0x28, A: 0xFF},
}

func (pokerTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	if c, ok := themeColors[name]; ok {
		return c
	}
	return theme.DarkTheme().Color(name, theme.VariantDark)
}

func (pokerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DarkTheme().Font(style)
}

func (pokerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DarkTheme().Icon(name)
}

func (pokerTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DarkTheme().Size(name)
}
