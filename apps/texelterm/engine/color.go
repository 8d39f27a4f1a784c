// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/engine/color.go
// Summary: Colour name parsing for configuration values.

package engine

import (
	"fmt"
	"strconv"
	"strings"
)

var basicColorNames = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// ParseColor parses a configured colour: "default", a basic name such as
// "red" or "brightred", a palette index "0".."255", or "#rrggbb".
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" || name == "default" {
		return DefaultColor, nil
	}
	for i, basic := range basicColorNames {
		if name == basic {
			return Color{Mode: ColorModeStandard, Value: uint8(i)}, nil
		}
		if name == "bright"+basic {
			return Color{Mode: ColorModeBright, Value: uint8(i)}, nil
		}
	}
	if strings.HasPrefix(name, "#") {
		if len(name) != 7 {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		rgb, err := strconv.ParseUint(name[1:], 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return Color{Mode: ColorModeRGB, R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb)}, nil
	}
	idx, err := strconv.Atoi(name)
	if err != nil || idx < 0 || idx > 255 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	switch {
	case idx < 8:
		return Color{Mode: ColorModeStandard, Value: uint8(idx)}, nil
	case idx < 16:
		return Color{Mode: ColorModeBright, Value: uint8(idx - 8)}, nil
	}
	return Color{Mode: ColorMode256, Value: uint8(idx)}, nil
}
