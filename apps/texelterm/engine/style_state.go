// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/engine/style_state.go
// Summary: Current SGR-derived style inherited by newly written cells.

package engine

import "github.com/framegrace/texelsession/apps/texelterm/parser"

// StyleState holds the style new cells inherit.
type StyleState struct {
	base    Style
	current Style
}

// NewStyleState creates a style state starting at base.
func NewStyleState(base Style) *StyleState {
	return &StyleState{base: base, current: base}
}

// Current returns the active style.
func (s *StyleState) Current() Style {
	return s.current
}

// Base returns the style restored by a reset.
func (s *StyleState) Base() Style {
	return s.base
}

// Reset sets both the base and the current style.
func (s *StyleState) Reset(base Style) {
	s.base = base
	s.current = base
}

// Apply applies changes in order; later changes win for the same field.
// Unknown change kinds are ignored.
func (s *StyleState) Apply(changes []parser.AttributeChange) {
	for _, ch := range changes {
		switch c := ch.(type) {
		case parser.ResetAttributes:
			s.current = s.base
		case parser.SetFlag:
			attr, ok := flagAttribute(c.Flag)
			if !ok {
				continue
			}
			if c.On {
				s.current.Attr |= attr
			} else {
				s.current.Attr &^= attr
			}
		case parser.SetForeground:
			if col, ok := colorFromValue(c.Color); ok {
				s.current.FG = col
			}
		case parser.SetBackground:
			if col, ok := colorFromValue(c.Color); ok {
				s.current.BG = col
			}
		}
	}
}

func flagAttribute(f parser.Flag) (Attribute, bool) {
	switch f {
	case parser.FlagBold:
		return AttrBold, true
	case parser.FlagDim:
		return AttrDim, true
	case parser.FlagItalic:
		return AttrItalic, true
	case parser.FlagUnderline:
		return AttrUnderline, true
	case parser.FlagBlink:
		return AttrBlink, true
	case parser.FlagReverse:
		return AttrReverse, true
	case parser.FlagStrikethrough:
		return AttrStrikethrough, true
	}
	return 0, false
}

// colorFromValue maps an SGR colour onto the cell colour model.
// ok is false for indices outside 0-255, leaving the field unchanged.
func colorFromValue(v parser.ColorValue) (Color, bool) {
	switch v.Kind {
	case parser.ColorDefault:
		return DefaultColor, true
	case parser.ColorIndexed:
		switch {
		case v.Index < 0 || v.Index > 255:
			return Color{}, false
		case v.Index < 8:
			return Color{Mode: ColorModeStandard, Value: uint8(v.Index)}, true
		case v.Index < 16:
			return Color{Mode: ColorModeBright, Value: uint8(v.Index - 8)}, true
		default:
			return Color{Mode: ColorMode256, Value: uint8(v.Index)}, true
		}
	case parser.ColorRGB:
		return Color{Mode: ColorModeRGB, R: v.R, G: v.G, B: v.B}, true
	}
	return Color{}, false
}
