package texelterm

import (
	"github.com/framegrace/texelsession/apps/texelterm/engine"
	"github.com/gdamore/tcell/v2"
)

const (
	paletteDefaultFG = 256
	paletteDefaultBG = 257
)

// Palette maps cell colours to tcell colours. Index 256 is the default
// foreground, 257 the default background.
type Palette [258]tcell.Color

// NewDefaultPalette builds the standard xterm 256 color palette.
func NewDefaultPalette() Palette {
	var p Palette
	// First 16 ANSI colors
	p[0] = tcell.NewRGBColor(0, 0, 0)        // Black
	p[1] = tcell.NewRGBColor(128, 0, 0)      // Maroon
	p[2] = tcell.NewRGBColor(0, 128, 0)      // Green
	p[3] = tcell.NewRGBColor(128, 128, 0)    // Olive
	p[4] = tcell.NewRGBColor(0, 0, 128)      // Navy
	p[5] = tcell.NewRGBColor(128, 0, 128)    // Purple
	p[6] = tcell.NewRGBColor(0, 128, 128)    // Teal
	p[7] = tcell.NewRGBColor(192, 192, 192)  // Silver
	p[8] = tcell.NewRGBColor(128, 128, 128)  // Grey
	p[9] = tcell.NewRGBColor(255, 0, 0)      // Red
	p[10] = tcell.NewRGBColor(0, 255, 0)     // Lime
	p[11] = tcell.NewRGBColor(255, 255, 0)   // Yellow
	p[12] = tcell.NewRGBColor(0, 0, 255)     // Blue
	p[13] = tcell.NewRGBColor(255, 0, 255)   // Fuchsia
	p[14] = tcell.NewRGBColor(0, 255, 255)   // Aqua
	p[15] = tcell.NewRGBColor(255, 255, 255) // White

	// 6x6x6 color cube
	levels := []int32{0, 95, 135, 175, 215, 255}
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p[i] = tcell.NewRGBColor(levels[r], levels[g], levels[b])
				i++
			}
		}
	}

	// Grayscale ramp
	for j := 0; j < 24; j++ {
		gray := int32(8 + j*10)
		p[i] = tcell.NewRGBColor(gray, gray, gray)
		i++
	}

	p[paletteDefaultFG] = p[7]
	p[paletteDefaultBG] = p[0]
	return p
}

// Color translates a cell colour. def is the palette slot used for the
// default colour.
func (p *Palette) Color(c engine.Color, def int) tcell.Color {
	if c.Mode == engine.ColorModeRGB {
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	if idx, ok := c.PaletteIndex(); ok {
		return p[idx]
	}
	return p[def]
}

// Style translates a cell style. reverse flips the reverse attribute, used
// for selection and cursor highlighting.
func (p *Palette) Style(s engine.Style, reverse bool) tcell.Style {
	attr := s.Attr
	if reverse {
		attr ^= engine.AttrReverse
	}
	return tcell.StyleDefault.
		Foreground(p.Color(s.FG, paletteDefaultFG)).
		Background(p.Color(s.BG, paletteDefaultBG)).
		Bold(attr.Has(engine.AttrBold)).
		Dim(attr.Has(engine.AttrDim)).
		Italic(attr.Has(engine.AttrItalic)).
		Underline(attr.Has(engine.AttrUnderline)).
		Blink(attr.Has(engine.AttrBlink)).
		Reverse(attr.Has(engine.AttrReverse)).
		StrikeThrough(attr.Has(engine.AttrStrikethrough))
}
