// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/engine/selection.go
// Summary: Normalized two-point text selection over buffer coordinates.

package engine

import (
	"fmt"
	"unicode/utf8"
)

// Position addresses a cell boundary. Line indexes the sequence
// scrollback ++ [active line]; Line == scrollback length is the active line.
type Position struct {
	Line   int
	Column int
}

// Less orders positions lexicographically by (Line, Column).
func (p Position) Less(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// Selection is a half-open range with Start before End.
type Selection struct {
	Start Position
	End   Position
}

// SelectionModel stores at most one normalized selection. An empty range is
// stored as no selection.
type SelectionModel struct {
	sel    Selection
	active bool
}

// Set validates both endpoints, orders them and stores the result. Equal
// endpoints clear the selection. On error the previous selection is kept.
func (m *SelectionModel) Set(a, b Position, validate func(Position) (Position, error)) error {
	if validate != nil {
		var err error
		if a, err = validate(a); err != nil {
			return err
		}
		if b, err = validate(b); err != nil {
			return err
		}
	}
	if b.Less(a) {
		a, b = b, a
	}
	if a == b {
		m.Clear()
		return nil
	}
	m.sel = Selection{Start: a, End: b}
	m.active = true
	return nil
}

// Clear drops the selection.
func (m *SelectionModel) Clear() {
	m.sel = Selection{}
	m.active = false
}

// Get returns the selection and whether one is active.
func (m *SelectionModel) Get() (Selection, bool) {
	return m.sel, m.active
}

// Active reports whether a selection is stored.
func (m *SelectionModel) Active() bool {
	return m.active
}

// IsSelected reports whether Start <= p < End.
func (m *SelectionModel) IsSelected(p Position) bool {
	if !m.active {
		return false
	}
	return !p.Less(m.sel.Start) && p.Less(m.sel.End)
}

// OnEviction adjusts the selection after lines were dropped from the front
// of the scrollback. A selection touching an evicted line is cleared.
func (m *SelectionModel) OnEviction(n EvictionNotice) {
	if !m.active || n.Count <= 0 {
		return
	}
	if m.sel.Start.Line < n.Count {
		m.Clear()
		return
	}
	m.sel.Start.Line -= n.Count
	m.sel.End.Line -= n.Count
}

// ExtractText returns the selected text as UTF-8. Interior lines are taken
// whole and lines are joined with '\n'. Columns past the end of a line are
// clamped to its length.
func (m *SelectionModel) ExtractText(lineSource func(int) ([]Cell, error)) ([]byte, error) {
	if !m.active {
		return nil, ErrNoSelection
	}
	var out []byte
	for ln := m.sel.Start.Line; ln <= m.sel.End.Line; ln++ {
		cells, err := lineSource(ln)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", ln, err)
		}
		from, to := 0, len(cells)
		if ln == m.sel.Start.Line {
			from = min(m.sel.Start.Column, len(cells))
		}
		if ln == m.sel.End.Line {
			to = min(m.sel.End.Column, len(cells))
		}
		for i := from; i < to; i++ {
			r := cells[i].Rune
			if !utf8.ValidRune(r) {
				return nil, fmt.Errorf("%w: %U at line %d column %d", ErrUnsupportedCodepoint, r, ln, i)
			}
			out = utf8.AppendRune(out, r)
		}
		if ln != m.sel.End.Line {
			out = append(out, '\n')
		}
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}
