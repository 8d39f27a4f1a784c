// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/engine/selection_test.go
// Summary: Selection normalization, hit testing, eviction and extraction.

package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sourceOf(lines ...string) func(int) ([]Cell, error) {
	return func(i int) ([]Cell, error) {
		if i < 0 || i >= len(lines) {
			return nil, ErrLineOutOfRange
		}
		return makeCells(lines[i]), nil
	}
}

func TestSelection_Normalizes(t *testing.T) {
	pairs := [][2]Position{
		{{0, 0}, {0, 5}},
		{{0, 5}, {0, 0}},
		{{3, 1}, {1, 7}},
		{{2, 9}, {2, 3}},
	}
	for _, p := range pairs {
		var m SelectionModel
		require.NoError(t, m.Set(p[0], p[1], nil))
		sel, ok := m.Get()
		require.True(t, ok)
		assert.False(t, sel.End.Less(sel.Start), "start must not follow end: %+v", sel)
	}
}

func TestSelection_EqualEndpointsClear(t *testing.T) {
	var m SelectionModel
	require.NoError(t, m.Set(Position{0, 1}, Position{2, 2}, nil))
	require.NoError(t, m.Set(Position{1, 1}, Position{1, 1}, nil))
	assert.False(t, m.Active())
}

func TestSelection_ValidationFailureKeepsPrevious(t *testing.T) {
	var m SelectionModel
	require.NoError(t, m.Set(Position{0, 1}, Position{0, 3}, nil))

	reject := func(p Position) (Position, error) {
		if p.Line > 0 {
			return p, ErrSelectionOutOfRange
		}
		return p, nil
	}
	err := m.Set(Position{0, 0}, Position{4, 0}, reject)
	assert.ErrorIs(t, err, ErrSelectionOutOfRange)

	sel, ok := m.Get()
	require.True(t, ok)
	assert.Equal(t, Selection{Start: Position{0, 1}, End: Position{0, 3}}, sel)
}

func TestSelection_IsSelectedHalfOpen(t *testing.T) {
	var m SelectionModel
	assert.False(t, m.IsSelected(Position{0, 0}))

	require.NoError(t, m.Set(Position{1, 4}, Position{3, 2}, nil))
	assert.False(t, m.IsSelected(Position{1, 3}))
	assert.True(t, m.IsSelected(Position{1, 4}))
	assert.True(t, m.IsSelected(Position{2, 100}))
	assert.True(t, m.IsSelected(Position{3, 1}))
	assert.False(t, m.IsSelected(Position{3, 2}))
}

func TestSelection_OnEviction(t *testing.T) {
	var m SelectionModel
	require.NoError(t, m.Set(Position{2, 1}, Position{4, 0}, nil))

	m.OnEviction(EvictionNotice{})
	sel, _ := m.Get()
	assert.Equal(t, 2, sel.Start.Line)

	m.OnEviction(EvictionNotice{Count: 2})
	sel, ok := m.Get()
	require.True(t, ok)
	assert.Equal(t, Selection{Start: Position{0, 1}, End: Position{2, 0}}, sel)

	m.OnEviction(EvictionNotice{Count: 1})
	assert.False(t, m.Active())
}

func TestSelection_ExtractMultiLine(t *testing.T) {
	var m SelectionModel
	require.NoError(t, m.Set(Position{0, 3}, Position{2, 2}, nil))

	text, err := m.ExtractText(sourceOf("foo bar", "middle", "end!"))
	require.NoError(t, err)
	assert.Equal(t, " bar\nmiddle\nen", string(text))
}

func TestSelection_ExtractMultibyte(t *testing.T) {
	var m SelectionModel
	require.NoError(t, m.Set(Position{0, 1}, Position{0, 3}, nil))

	text, err := m.ExtractText(sourceOf("a界é!"))
	require.NoError(t, err)
	assert.Equal(t, "界é", string(text))
}

func TestSelection_ExtractErrors(t *testing.T) {
	var m SelectionModel
	_, err := m.ExtractText(sourceOf("x"))
	assert.ErrorIs(t, err, ErrNoSelection)

	require.NoError(t, m.Set(Position{0, 0}, Position{0, 2}, nil))
	bad := func(int) ([]Cell, error) {
		return []Cell{{Rune: 'a'}, {Rune: 0xD800}}, nil
	}
	_, err = m.ExtractText(bad)
	assert.ErrorIs(t, err, ErrUnsupportedCodepoint)

	boom := errors.New("boom")
	_, err = m.ExtractText(func(int) ([]Cell, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}
