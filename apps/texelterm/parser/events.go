// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/parser/events.go
// Summary: Structured terminal events produced by the tokenizer.
// Usage: Consumed by the engine when applying PTY output to the buffers.

package parser

// Event is one decoded terminal control event. The set is closed: only the
// types in this file implement it.
type Event interface {
	isEvent()
}

// Char prints a single rune at the cursor. Unicode, when non-zero, overrides
// Codepoint.
type Char struct {
	Codepoint rune
	Unicode   rune
}

// Rune returns the rune that should be stored in the cell.
func (c Char) Rune() rune {
	if c.Unicode != 0 {
		return c.Unicode
	}
	return c.Codepoint
}

// LineFeed commits the active line.
type LineFeed struct{}

// CarriageReturn moves the cursor to column zero.
type CarriageReturn struct{}

// Backspace removes the cell left of the cursor.
type Backspace struct{}

// Delete removes the cell under the cursor.
type Delete struct{}

// Tab advances to the next tab stop.
type Tab struct{}

// Attributes carries an ordered batch of SGR changes.
type Attributes struct {
	Changes []AttributeChange
}

// EraseLine clears the active line. Mode is the raw CSI K parameter.
type EraseLine struct {
	Mode uint8
}

// EraseDisplay clears the whole buffer.
type EraseDisplay struct{}

// ResetTerminal performs a full reset (RIS).
type ResetTerminal struct{}

// Title is emitted for OSC 0 and OSC 2.
type Title struct {
	Text string
}

// Bell is emitted for BEL in ground state.
type Bell struct{}

func (Char) isEvent()           {}
func (LineFeed) isEvent()       {}
func (CarriageReturn) isEvent() {}
func (Backspace) isEvent()      {}
func (Delete) isEvent()         {}
func (Tab) isEvent()            {}
func (Attributes) isEvent()     {}
func (EraseLine) isEvent()      {}
func (EraseDisplay) isEvent()   {}
func (ResetTerminal) isEvent()  {}
func (Title) isEvent()          {}
func (Bell) isEvent()           {}

// Flag names a boolean text attribute.
type Flag uint8

const (
	FlagBold Flag = iota
	FlagDim
	FlagItalic
	FlagUnderline
	FlagBlink
	FlagReverse
	FlagStrikethrough
)

// String returns the attribute name.
func (f Flag) String() string {
	switch f {
	case FlagBold:
		return "bold"
	case FlagDim:
		return "dim"
	case FlagItalic:
		return "italic"
	case FlagUnderline:
		return "underline"
	case FlagBlink:
		return "blink"
	case FlagReverse:
		return "reverse"
	case FlagStrikethrough:
		return "strikethrough"
	}
	return "unknown"
}

// ColorKind selects the variant held by a ColorValue.
type ColorKind uint8

const (
	ColorDefault ColorKind = iota // Terminal default
	ColorIndexed                  // Palette index, see Index
	ColorRGB                      // 24-bit colour
)

// ColorValue is a colour as written in an SGR sequence, before it is mapped
// onto a palette.
type ColorValue struct {
	Kind    ColorKind
	Index   int
	R, G, B uint8
}

// DefaultColor returns the terminal default colour value.
func DefaultColor() ColorValue { return ColorValue{Kind: ColorDefault} }

// IndexedColor returns a palette colour value.
func IndexedColor(i int) ColorValue { return ColorValue{Kind: ColorIndexed, Index: i} }

// RGBColor returns a truecolor value.
func RGBColor(r, g, b uint8) ColorValue { return ColorValue{Kind: ColorRGB, R: r, G: g, B: b} }

// AttributeChange is one element of an SGR batch. The set is closed.
type AttributeChange interface {
	isAttributeChange()
}

// ResetAttributes restores the base style.
type ResetAttributes struct{}

// SetFlag switches one boolean attribute on or off.
type SetFlag struct {
	Flag Flag
	On   bool
}

// SetForeground changes the foreground colour.
type SetForeground struct {
	Color ColorValue
}

// SetBackground changes the background colour.
type SetBackground struct {
	Color ColorValue
}

func (ResetAttributes) isAttributeChange() {}
func (SetFlag) isAttributeChange()         {}
func (SetForeground) isAttributeChange()   {}
func (SetBackground) isAttributeChange()   {}
