// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/engine/engine.go
// Summary: Applies tokenized terminal events to the line buffers.
// Usage: Owned by the terminal widget; fed by the session pump.
// Notes: Single-threaded. Callers serialise Feed, selection and reads.

package engine

import (
	"fmt"

	"github.com/framegrace/texelsession/apps/texelterm/parser"
	"github.com/rs/zerolog/log"
)

// Defaults used by DefaultOptions.
const (
	DefaultScrollbackLimit = 10000
	DefaultTabSize         = 4
)

// Options configures an Engine.
type Options struct {
	ScrollbackLimit int
	TabSize         int
	BaseStyle       Style
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		ScrollbackLimit: DefaultScrollbackLimit,
		TabSize:         DefaultTabSize,
		BaseStyle:       DefaultStyle,
	}
}

// EvictionSink receives lines dropped from the scrollback.
type EvictionSink interface {
	ArchiveLines(lines []Line) error
}

// LineCounters count buffer changes since the engine was created. Views
// compare snapshots to follow lines that moved.
type LineCounters struct {
	Committed uint64 // lines pushed into the scrollback
	Evicted   uint64 // lines dropped from the front of the scrollback
	Clears    uint64 // erase-display and reset events
}

// Engine owns the scrollback, active line, style and selection of one
// terminal and applies parsed events to them.
type Engine struct {
	opts      Options
	scroll    *Scrollback
	active    *ActiveLine
	style     *StyleState
	selection SelectionModel
	dirty     bool

	sink     EvictionSink
	evicted  []Line
	counters LineCounters
}

// New creates an engine. It fails with ErrInvalidScrollbackLimit or
// ErrInvalidTabSize for out-of-range options.
func New(opts Options) (*Engine, error) {
	scroll, err := NewScrollback(opts.ScrollbackLimit)
	if err != nil {
		return nil, err
	}
	if opts.TabSize < 1 {
		return nil, ErrInvalidTabSize
	}
	return &Engine{
		opts:   opts,
		scroll: scroll,
		active: NewActiveLine(),
		style:  NewStyleState(opts.BaseStyle),
	}, nil
}

// Options returns the configuration the engine was built with.
func (e *Engine) Options() Options {
	return e.opts
}

// SetEvictionSink installs a sink for evicted lines. nil disables archiving.
func (e *Engine) SetEvictionSink(sink EvictionSink) {
	e.sink = sink
}

// Feed applies events strictly in order and marks the engine dirty.
// Already-applied events stay applied if a later one panics.
func (e *Engine) Feed(events []parser.Event) {
	for _, ev := range events {
		e.apply(ev)
	}
	e.dirty = true
	e.flushEvicted()
}

func (e *Engine) apply(ev parser.Event) {
	switch ev := ev.(type) {
	case parser.Char:
		e.active.AppendAtCursor(Cell{Rune: ev.Rune(), Style: e.style.Current()})
	case parser.LineFeed:
		notice := e.scroll.Push(e.active.Commit())
		e.selection.OnEviction(notice)
		e.counters.Committed++
		e.counters.Evicted += uint64(notice.Count)
		if notice.Evicted() && e.sink != nil {
			e.evicted = append(e.evicted, notice.Lines...)
		}
	case parser.CarriageReturn:
		e.active.CarriageReturn()
	case parser.Backspace:
		e.active.Backspace()
	case parser.Delete:
		e.active.DeleteForward()
	case parser.Tab:
		e.active.Tab(e.opts.TabSize, e.style.Current())
	case parser.Attributes:
		e.style.Apply(ev.Changes)
	case parser.EraseLine:
		// Every mode clears the whole line.
		e.active.Clear()
	case parser.EraseDisplay, parser.ResetTerminal:
		e.scroll.Clear()
		e.active.Clear()
		e.style.Reset(e.opts.BaseStyle)
		e.selection.Clear()
		e.counters.Clears++
	}
}

func (e *Engine) flushEvicted() {
	if len(e.evicted) == 0 {
		return
	}
	lines := e.evicted
	e.evicted = nil
	if e.sink == nil {
		return
	}
	if err := e.sink.ArchiveLines(lines); err != nil {
		log.Warn().Err(err).Int("lines", len(lines)).Msg("engine: archiving evicted lines failed")
	}
}

// Counters returns the commit, eviction and clear counts so far.
func (e *Engine) Counters() LineCounters {
	return e.counters
}

// Dirty reports whether a repaint is pending.
func (e *Engine) Dirty() bool {
	return e.dirty
}

// RequestRepaint marks the engine dirty without changing content.
func (e *Engine) RequestRepaint() {
	e.dirty = true
}

// MarkRendered clears the repaint flag.
func (e *Engine) MarkRendered() {
	e.dirty = false
}

// Scrollback returns the committed lines, oldest first. Read-only.
func (e *Engine) Scrollback() []Line {
	return e.scroll.Lines()
}

// ScrollbackLen returns the number of committed lines.
func (e *Engine) ScrollbackLen() int {
	return e.scroll.Len()
}

// TotalLines counts the committed lines plus the active line.
func (e *Engine) TotalLines() int {
	return e.scroll.Len() + 1
}

// Line returns the cells of line i of scrollback ++ [active line]. The
// active line is returned as a copy.
func (e *Engine) Line(i int) ([]Cell, error) {
	if i == e.scroll.Len() {
		return e.active.Cells(), nil
	}
	return e.scroll.Get(i)
}

// lineView is Line without copying the active line.
func (e *Engine) lineView(i int) ([]Cell, error) {
	if i == e.scroll.Len() {
		return e.active.view(), nil
	}
	return e.scroll.Get(i)
}

// VisitLines calls fn for lines [start, end) of scrollback ++ [active line]
// without copying. fn must not retain or modify the cells.
func (e *Engine) VisitLines(start, end int, fn func(index int, cells []Cell)) {
	if start < 0 {
		start = 0
	}
	if end > e.TotalLines() {
		end = e.TotalLines()
	}
	for i := start; i < end; i++ {
		cells, err := e.lineView(i)
		if err != nil {
			return
		}
		fn(i, cells)
	}
}

// ActiveLine returns a copy of the active line.
func (e *Engine) ActiveLine() []Cell {
	return e.active.Cells()
}

// Cursor returns the cursor position; its line is always the active line.
func (e *Engine) Cursor() Position {
	return Position{Line: e.scroll.Len(), Column: e.active.Cursor()}
}

// Style returns the style the next character will use.
func (e *Engine) Style() Style {
	return e.style.Current()
}

// SetSelection stores a selection between a and b. It fails with
// ErrSelectionOutOfRange if either endpoint does not address the buffer.
func (e *Engine) SetSelection(a, b Position) error {
	return e.selection.Set(a, b, e.validate)
}

func (e *Engine) validate(p Position) (Position, error) {
	if p.Line < 0 || p.Line > e.scroll.Len() || p.Column < 0 {
		return p, fmt.Errorf("%w: line %d column %d", ErrSelectionOutOfRange, p.Line, p.Column)
	}
	cells, err := e.lineView(p.Line)
	if err != nil {
		return p, fmt.Errorf("%w: %v", ErrSelectionOutOfRange, err)
	}
	if p.Column > len(cells) {
		return p, fmt.Errorf("%w: column %d beyond line %d length %d", ErrSelectionOutOfRange, p.Column, p.Line, len(cells))
	}
	return p, nil
}

// ClearSelection drops the selection.
func (e *Engine) ClearSelection() {
	e.selection.Clear()
}

// Selection returns the current selection, if any.
func (e *Engine) Selection() (Selection, bool) {
	return e.selection.Get()
}

// IsSelected reports whether the cell at p is inside the selection.
func (e *Engine) IsSelected(p Position) bool {
	return e.selection.IsSelected(p)
}

// SelectedText returns the selected text as UTF-8.
func (e *Engine) SelectedText() ([]byte, error) {
	return e.selection.ExtractText(e.lineView)
}
