// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/engine/active_line.go
// Summary: The uncommitted line under the cursor.

package engine

// ActiveLine is the line being written. The cursor column always stays
// within [0, Len()].
type ActiveLine struct {
	cells  []Cell
	cursor int
}

// NewActiveLine creates an empty active line.
func NewActiveLine() *ActiveLine {
	return &ActiveLine{cells: make([]Cell, 0, 128)}
}

// Len returns the number of cells.
func (l *ActiveLine) Len() int {
	return len(l.cells)
}

// Cursor returns the cursor column.
func (l *ActiveLine) Cursor() int {
	return l.cursor
}

// Cells returns a copy of the line contents.
func (l *ActiveLine) Cells() []Cell {
	out := make([]Cell, len(l.cells))
	copy(out, l.cells)
	return out
}

// view exposes the backing slice without copying. Read-only.
func (l *ActiveLine) view() []Cell {
	return l.cells
}

// AppendAtCursor overwrites the cell at the cursor, or appends when the
// cursor is at the end, then advances the cursor.
func (l *ActiveLine) AppendAtCursor(c Cell) {
	if l.cursor < len(l.cells) {
		l.cells[l.cursor] = c
	} else {
		l.cells = append(l.cells, c)
	}
	l.cursor++
}

// Tab writes spaces up to the next multiple of tabSize.
func (l *ActiveLine) Tab(tabSize int, style Style) {
	if tabSize < 1 {
		return
	}
	n := tabSize - (l.cursor % tabSize)
	for i := 0; i < n; i++ {
		l.AppendAtCursor(Cell{Rune: ' ', Style: style})
	}
}

// Backspace moves the cursor left and removes the cell it lands on.
func (l *ActiveLine) Backspace() {
	if l.cursor == 0 {
		return
	}
	l.cursor--
	l.cells = append(l.cells[:l.cursor], l.cells[l.cursor+1:]...)
}

// DeleteForward removes the cell under the cursor, if any.
func (l *ActiveLine) DeleteForward() {
	if l.cursor >= len(l.cells) {
		return
	}
	l.cells = append(l.cells[:l.cursor], l.cells[l.cursor+1:]...)
}

// CarriageReturn moves the cursor to column zero.
func (l *ActiveLine) CarriageReturn() {
	l.cursor = 0
}

// Commit returns an owned copy of the contents and clears the line.
func (l *ActiveLine) Commit() Line {
	line := make(Line, len(l.cells))
	copy(line, l.cells)
	l.Clear()
	return line
}

// Clear empties the line and resets the cursor.
func (l *ActiveLine) Clear() {
	l.cells = l.cells[:0]
	l.cursor = 0
}
