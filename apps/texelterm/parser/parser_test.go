// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/parser/parser_test.go
// Summary: Exercises the tokenizer on plain text, controls and escape sequences.

package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_PlainTextAndControls(t *testing.T) {
	p := New()
	events := p.Parse([]byte("ab\r\n\b\t\x07"))

	require.Equal(t, []Event{
		Char{Codepoint: 'a'},
		Char{Codepoint: 'b'},
		CarriageReturn{},
		LineFeed{},
		Backspace{},
		Tab{},
		Bell{},
	}, events)
}

func TestParser_DropsUnprintableControls(t *testing.T) {
	p := New()
	events := p.Parse([]byte("a\x00\x01\x7fb"))
	assert.Equal(t, []Event{Char{Codepoint: 'a'}, Char{Codepoint: 'b'}}, events)
}

func TestParser_SGRColorAndReset(t *testing.T) {
	p := New()
	events := p.Parse([]byte("\x1b[31mhi\x1b[0m"))

	require.Len(t, events, 4)
	assert.Equal(t, Attributes{Changes: []AttributeChange{SetForeground{Color: IndexedColor(1)}}}, events[0])
	assert.Equal(t, Char{Codepoint: 'h'}, events[1])
	assert.Equal(t, Char{Codepoint: 'i'}, events[2])
	assert.Equal(t, Attributes{Changes: []AttributeChange{ResetAttributes{}}}, events[3])
}

func TestParser_EmptySGRIsReset(t *testing.T) {
	p := New()
	events := p.Parse([]byte("\x1b[m"))
	assert.Equal(t, []Event{Attributes{Changes: []AttributeChange{ResetAttributes{}}}}, events)
}

func TestParser_SGRBatchOrder(t *testing.T) {
	p := New()
	events := p.Parse([]byte("\x1b[1;4;38;5;196;48;2;1;2;3;22m"))
	require.Len(t, events, 1)

	attrs, ok := events[0].(Attributes)
	require.True(t, ok)
	assert.Equal(t, []AttributeChange{
		SetFlag{Flag: FlagBold, On: true},
		SetFlag{Flag: FlagUnderline, On: true},
		SetForeground{Color: IndexedColor(196)},
		SetBackground{Color: RGBColor(1, 2, 3)},
		SetFlag{Flag: FlagBold, On: false},
		SetFlag{Flag: FlagDim, On: false},
	}, attrs.Changes)
}

func TestParser_BrightColors(t *testing.T) {
	p := New()
	events := p.Parse([]byte("\x1b[91;102m"))
	require.Len(t, events, 1)
	assert.Equal(t, Attributes{Changes: []AttributeChange{
		SetForeground{Color: IndexedColor(9)},
		SetBackground{Color: IndexedColor(10)},
	}}, events[0])
}

func TestParser_TruncatedExtendedColorIsDropped(t *testing.T) {
	p := New()
	events := p.Parse([]byte("\x1b[38;5m"))
	require.Len(t, events, 1)
	assert.Empty(t, events[0].(Attributes).Changes)
}

func TestParser_SequenceSplitAcrossChunks(t *testing.T) {
	p := New()
	first := p.Parse([]byte("x\x1b[3"))
	assert.Equal(t, []Event{Char{Codepoint: 'x'}}, first)
	assert.Equal(t, StateCSI, p.State())

	second := p.Parse([]byte("2my"))
	assert.Equal(t, []Event{
		Attributes{Changes: []AttributeChange{SetForeground{Color: IndexedColor(2)}}},
		Char{Codepoint: 'y'},
	}, second)
}

func TestParser_UTF8SplitAcrossChunks(t *testing.T) {
	p := New()
	euro := []byte("€")
	require.Len(t, euro, 3)

	assert.Empty(t, p.Parse(euro[:1]))
	assert.Empty(t, p.Parse(euro[1:2]))
	assert.Equal(t, []Event{Char{Codepoint: '€'}}, p.Parse(euro[2:]))
}

func TestParser_InvalidUTF8BecomesReplacement(t *testing.T) {
	p := New()
	events := p.Parse([]byte{'a', 0xff, 'b'})
	assert.Equal(t, []Event{
		Char{Codepoint: 'a'},
		Char{Codepoint: '�'},
		Char{Codepoint: 'b'},
	}, events)
}

func TestParser_EraseSequences(t *testing.T) {
	p := New()
	events := p.Parse([]byte("\x1b[K\x1b[2K\x1b[2J\x1b[3J\x1b[J"))
	assert.Equal(t, []Event{
		EraseLine{Mode: 0},
		EraseLine{Mode: 2},
		EraseDisplay{},
		EraseDisplay{},
	}, events)
}

func TestParser_DeleteCharacters(t *testing.T) {
	p := New()
	assert.Equal(t, []Event{Delete{}}, p.Parse([]byte("\x1b[P")))
	assert.Equal(t, []Event{Delete{}, Delete{}, Delete{}}, p.Parse([]byte("\x1b[3P")))
}

func TestParser_ResetTerminal(t *testing.T) {
	p := New()
	assert.Equal(t, []Event{ResetTerminal{}}, p.Parse([]byte("\x1bc")))
}

func TestParser_OSCTitle(t *testing.T) {
	p := New()
	assert.Equal(t, []Event{Title{Text: "shell"}}, p.Parse([]byte("\x1b]0;shell\x07")))
	assert.Equal(t, []Event{Title{Text: "vim"}, Char{Codepoint: 'z'}}, p.Parse([]byte("\x1b]2;vim\x1b\\z")))
}

func TestParser_UnterminatedOSCIsBounded(t *testing.T) {
	p := New()
	events := p.Parse([]byte("\x1b]0;" + strings.Repeat("x", 2*maxOSCLength)))
	for _, ev := range events {
		_, isTitle := ev.(Title)
		assert.False(t, isTitle)
	}
	assert.Equal(t, StateGround, p.State())
	assert.LessOrEqual(t, cap(p.oscBuffer), 2*maxOSCLength)
	assert.Equal(t, []Event{Char{Codepoint: 'o'}, Char{Codepoint: 'k'}}, p.Parse([]byte("ok")))
}

func TestParser_IgnoresUnsupportedSequences(t *testing.T) {
	p := New()
	events := p.Parse([]byte("\x1b[?2004h\x1b[10;20H\x1b(B\x1bPtmux;x\x1b\\ok"))
	assert.Equal(t, []Event{Char{Codepoint: 'o'}, Char{Codepoint: 'k'}}, events)
	assert.Equal(t, StateGround, p.State())
}

func TestParser_Reset(t *testing.T) {
	p := New()
	p.Parse([]byte("\x1b[31"))
	p.Reset()
	assert.Equal(t, []Event{Char{Codepoint: 'm'}}, p.Parse([]byte("m")))
}

func TestChar_UnicodeOverride(t *testing.T) {
	assert.Equal(t, 'a', Char{Codepoint: 'a'}.Rune())
	assert.Equal(t, 'é', Char{Codepoint: 'e', Unicode: 'é'}.Rune())
}
