// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/engine/buffers_test.go
// Summary: Unit tests for the active line and the scrollback store.

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCells(s string) []Cell {
	cells := make([]Cell, 0, len(s))
	for _, r := range s {
		cells = append(cells, Cell{Rune: r})
	}
	return cells
}

func writeString(l *ActiveLine, s string) {
	for _, c := range makeCells(s) {
		l.AppendAtCursor(c)
	}
}

func TestActiveLine_AppendAndOverwrite(t *testing.T) {
	l := NewActiveLine()
	writeString(l, "abc")
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 3, l.Cursor())

	l.CarriageReturn()
	assert.Equal(t, 0, l.Cursor())
	assert.Equal(t, 3, l.Len(), "carriage return must not touch cells")

	writeString(l, "X")
	assert.Equal(t, "Xbc", cellsToString(l.Cells()))
	assert.Equal(t, 1, l.Cursor())
}

func TestActiveLine_Tab(t *testing.T) {
	style := Style{FG: Yellow}
	l := NewActiveLine()
	l.Tab(4, style)
	assert.Equal(t, 4, l.Cursor())

	writeString(l, "ab")
	l.Tab(4, style)
	assert.Equal(t, 8, l.Cursor())
	cells := l.Cells()
	assert.Equal(t, "    ab  ", cellsToString(cells))
	assert.Equal(t, style, cells[7].Style)

	l.Tab(0, style)
	assert.Equal(t, 8, l.Cursor())
}

func TestActiveLine_Backspace(t *testing.T) {
	l := NewActiveLine()
	l.Backspace()
	assert.Equal(t, 0, l.Len())

	writeString(l, "abcd")
	l.CarriageReturn()
	writeString(l, "ab")
	l.Backspace()
	assert.Equal(t, "acd", cellsToString(l.Cells()))
	assert.Equal(t, 1, l.Cursor())
}

func TestActiveLine_DeleteForward(t *testing.T) {
	l := NewActiveLine()
	writeString(l, "abc")
	l.DeleteForward()
	assert.Equal(t, "abc", cellsToString(l.Cells()), "no cell under cursor at end of line")

	l.CarriageReturn()
	l.DeleteForward()
	assert.Equal(t, "bc", cellsToString(l.Cells()))
	assert.Equal(t, 0, l.Cursor())
}

func TestActiveLine_CommitReturnsOwnedCopy(t *testing.T) {
	l := NewActiveLine()
	writeString(l, "hello")
	line := l.Commit()
	assert.Equal(t, "hello", line.String())
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 0, l.Cursor())

	writeString(l, "XY")
	assert.Equal(t, "hello", line.String(), "committed line must not alias the buffer")
}

func TestActiveLine_CursorNeverExceedsLength(t *testing.T) {
	l := NewActiveLine()
	ops := []func(){
		func() { writeString(l, "abc") },
		l.Backspace,
		l.DeleteForward,
		l.CarriageReturn,
		l.DeleteForward,
		l.DeleteForward,
		func() { l.Tab(4, Style{}) },
		l.Backspace,
		l.Clear,
		l.Backspace,
	}
	for i, op := range ops {
		op()
		require.LessOrEqual(t, l.Cursor(), l.Len(), "after op %d", i)
	}
}

func TestScrollback_New(t *testing.T) {
	_, err := NewScrollback(0)
	assert.ErrorIs(t, err, ErrInvalidScrollbackLimit)

	s, err := NewScrollback(1000)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 1000, s.Limit())
}

func TestScrollback_PushAndGet(t *testing.T) {
	s, err := NewScrollback(10)
	require.NoError(t, err)

	notice := s.Push(makeCells("Line 0"))
	assert.False(t, notice.Evicted())
	s.Push(makeCells("Line 1"))

	line, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Line 1", line.String())

	_, err = s.Get(-1)
	assert.ErrorIs(t, err, ErrLineOutOfRange)
	_, err = s.Get(2)
	assert.ErrorIs(t, err, ErrLineOutOfRange)
}

func TestScrollback_Eviction(t *testing.T) {
	s, err := NewScrollback(2)
	require.NoError(t, err)
	s.Push(makeCells("a"))
	s.Push(makeCells("b"))

	notice := s.Push(makeCells("c"))
	require.True(t, notice.Evicted())
	assert.Equal(t, 1, notice.Count)
	require.Len(t, notice.Lines, 1)
	assert.Equal(t, "a", notice.Lines[0].String())

	assert.Equal(t, 2, s.Len())
	first, _ := s.Get(0)
	assert.Equal(t, "b", first.String())
}

func TestScrollback_ClearAndRange(t *testing.T) {
	s, err := NewScrollback(100)
	require.NoError(t, err)
	for _, txt := range []string{"0", "1", "2", "3", "4"} {
		s.Push(makeCells(txt))
	}

	assert.Len(t, s.Range(1, 3), 2)
	assert.Len(t, s.Range(-5, 100), 5)
	assert.Empty(t, s.Range(3, 2))

	lines := s.Lines()
	lines[0] = nil
	first, _ := s.Get(0)
	assert.Equal(t, "0", first.String(), "Lines must return a copy of the index")

	s.Clear()
	assert.Equal(t, 0, s.Len())
}
