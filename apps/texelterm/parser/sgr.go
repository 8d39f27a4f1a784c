// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/parser/sgr.go
// Summary: SGR (Select Graphic Rendition) - text attributes and colors.
// Usage: Turns CSI ... m parameters into an ordered AttributeChange batch.

package parser

// decodeSGR converts SGR parameters into attribute changes.
// Handles text attributes and colors (standard, bright, 256-color, RGB).
func decodeSGR(params []int) []AttributeChange {
	if len(params) == 0 {
		params = []int{0}
	}
	changes := make([]AttributeChange, 0, len(params))
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			changes = append(changes, ResetAttributes{})
		case p == 1:
			changes = append(changes, SetFlag{Flag: FlagBold, On: true})
		case p == 2:
			changes = append(changes, SetFlag{Flag: FlagDim, On: true})
		case p == 3:
			changes = append(changes, SetFlag{Flag: FlagItalic, On: true})
		case p == 4:
			changes = append(changes, SetFlag{Flag: FlagUnderline, On: true})
		case p == 5 || p == 6:
			changes = append(changes, SetFlag{Flag: FlagBlink, On: true})
		case p == 7:
			changes = append(changes, SetFlag{Flag: FlagReverse, On: true})
		case p == 9:
			changes = append(changes, SetFlag{Flag: FlagStrikethrough, On: true})
		case p == 22:
			changes = append(changes,
				SetFlag{Flag: FlagBold, On: false},
				SetFlag{Flag: FlagDim, On: false})
		case p == 23:
			changes = append(changes, SetFlag{Flag: FlagItalic, On: false})
		case p == 24:
			changes = append(changes, SetFlag{Flag: FlagUnderline, On: false})
		case p == 25:
			changes = append(changes, SetFlag{Flag: FlagBlink, On: false})
		case p == 27:
			changes = append(changes, SetFlag{Flag: FlagReverse, On: false})
		case p == 29:
			changes = append(changes, SetFlag{Flag: FlagStrikethrough, On: false})
		case p >= 30 && p <= 37:
			changes = append(changes, SetForeground{Color: IndexedColor(p - 30)})
		case p == 39:
			changes = append(changes, SetForeground{Color: DefaultColor()})
		case p >= 40 && p <= 47:
			changes = append(changes, SetBackground{Color: IndexedColor(p - 40)})
		case p == 49:
			changes = append(changes, SetBackground{Color: DefaultColor()})
		case p >= 90 && p <= 97: // Bright foreground
			changes = append(changes, SetForeground{Color: IndexedColor(p - 90 + 8)})
		case p >= 100 && p <= 107: // Bright background
			changes = append(changes, SetBackground{Color: IndexedColor(p - 100 + 8)})
		case p == 38, p == 48:
			c, used, ok := extendedColor(params[i+1:])
			i += used
			if !ok {
				continue
			}
			if p == 38 {
				changes = append(changes, SetForeground{Color: c})
			} else {
				changes = append(changes, SetBackground{Color: c})
			}
		}
	}
	return changes
}

// extendedColor decodes the tail of a 38/48 parameter: 5;n or 2;r;g;b.
// used is the number of parameters consumed after the 38/48 itself.
func extendedColor(rest []int) (c ColorValue, used int, ok bool) {
	if len(rest) == 0 {
		return ColorValue{}, 0, false
	}
	switch rest[0] {
	case 5: // 256-color palette
		if len(rest) < 2 {
			return ColorValue{}, len(rest), false
		}
		return IndexedColor(rest[1]), 2, true
	case 2: // RGB true-color
		if len(rest) < 4 {
			return ColorValue{}, len(rest), false
		}
		return RGBColor(clampByte(rest[1]), clampByte(rest[2]), clampByte(rest[3])), 4, true
	}
	return ColorValue{}, 1, false
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
