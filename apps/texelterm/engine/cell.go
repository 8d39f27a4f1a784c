// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/engine/cell.go
// Summary: Cell, style and colour model shared by the terminal buffers.

package engine

import (
	"strings"
)

// Attribute is a bit set of boolean text attributes.
type Attribute uint16

const (
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrStrikethrough
)

var attrNames = []struct {
	attr Attribute
	name string
}{
	{AttrBold, "bold"},
	{AttrDim, "dim"},
	{AttrItalic, "italic"},
	{AttrUnderline, "underline"},
	{AttrBlink, "blink"},
	{AttrReverse, "reverse"},
	{AttrStrikethrough, "strikethrough"},
}

// String returns a human-readable representation of the attribute flags.
func (a Attribute) String() string {
	if a == 0 {
		return "none"
	}
	var parts []string
	for _, n := range attrNames {
		if a&n.attr != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, "|")
}

// Has reports whether every flag in b is set.
func (a Attribute) Has(b Attribute) bool {
	return a&b == b
}

// ColorMode defines the type of color stored.
type ColorMode int

const (
	ColorModeDefault  ColorMode = iota // Default terminal color
	ColorModeStandard                  // The basic 8 ANSI colors
	ColorModeBright                    // The 8 bright ANSI colors
	ColorMode256                       // 256-color palette, indices 16-255
	ColorModeRGB                       // 24-bit "true" color
)

// Color represents a color in one of the supported modes.
type Color struct {
	Mode    ColorMode
	Value   uint8 // 0-7 for Standard and Bright, 16-255 for 256-mode
	R, G, B uint8 // Holds the values for RGB mode
}

// --- Predefined colors for convenience ---
var (
	DefaultColor = Color{Mode: ColorModeDefault}
	Black        = Color{Mode: ColorModeStandard, Value: 0}
	Red          = Color{Mode: ColorModeStandard, Value: 1}
	Green        = Color{Mode: ColorModeStandard, Value: 2}
	Yellow       = Color{Mode: ColorModeStandard, Value: 3}
	Blue         = Color{Mode: ColorModeStandard, Value: 4}
	Magenta      = Color{Mode: ColorModeStandard, Value: 5}
	Cyan         = Color{Mode: ColorModeStandard, Value: 6}
	White        = Color{Mode: ColorModeStandard, Value: 7}
)

// IsDefault reports whether the colour inherits the terminal default.
func (c Color) IsDefault() bool {
	return c.Mode == ColorModeDefault
}

// PaletteIndex returns the xterm palette index for palette colours.
// ok is false for default and RGB colours.
func (c Color) PaletteIndex() (index int, ok bool) {
	switch c.Mode {
	case ColorModeStandard:
		return int(c.Value), true
	case ColorModeBright:
		return int(c.Value) + 8, true
	case ColorMode256:
		return int(c.Value), true
	}
	return 0, false
}

// Style is the rendition applied to a cell.
type Style struct {
	FG   Color
	BG   Color
	Attr Attribute
}

// DefaultStyle uses the terminal default colours and no attributes.
var DefaultStyle = Style{}

// Cell represents a single character cell.
type Cell struct {
	Rune  rune
	Style Style
}

// Line is a committed, immutable row of cells. Callers must not modify it.
type Line []Cell

// String returns the runes of the line.
func (l Line) String() string {
	return cellsToString(l)
}

func cellsToString(cells []Cell) string {
	var sb strings.Builder
	sb.Grow(len(cells))
	for _, c := range cells {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
