// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/render.go
// Summary: Projects the visible buffer lines onto a texel cell grid.

package texelterm

import (
	"github.com/framegrace/texelsession/apps/texelterm/engine"
	"github.com/framegrace/texelsession/texel"
	"github.com/mattn/go-runewidth"
)

func cellWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 1 {
		return w
	}
	return 1
}

// bannerText is the status row content; empty when no banner is shown.
func (t *Terminal) bannerText() string {
	if t.status != "" {
		return t.status
	}
	if st := t.pump.ExitStatus(); st.Done() {
		return "[process " + st.String() + "]"
	}
	return ""
}

func (t *Terminal) contentRows() int {
	rows := t.height
	if rows > 1 && t.bannerText() != "" {
		rows--
	}
	return rows
}

// visibleRange returns the line indices [start, end) shown on screen.
func (t *Terminal) visibleRange() (start, end int) {
	end = t.eng.TotalLines() - t.scrollOffset
	start = max(0, end-t.contentRows())
	return start, end
}

func (t *Terminal) maxScroll() int {
	return max(0, t.eng.TotalLines()-t.contentRows())
}

func (t *Terminal) clampScroll() {
	t.scrollOffset = min(max(t.scrollOffset, 0), t.maxScroll())
}

// syncView catches the view state up with lines committed, evicted or
// cleared since the last call. A scrolled-back view stays on the lines it
// showed, and a drag anchor follows its line or ends the drag when the line
// is gone.
func (t *Terminal) syncView() {
	now := t.eng.Counters()
	committed := int(now.Committed - t.seen.Committed)
	evicted := int(now.Evicted - t.seen.Evicted)
	cleared := now.Clears != t.seen.Clears
	t.seen = now

	switch {
	case cleared:
		t.scrollOffset = 0
		if t.dragging {
			t.dragging, t.dragLost = false, true
		}
	default:
		if t.scrollOffset > 0 {
			t.scrollOffset += committed
		}
		if t.dragging && evicted > 0 {
			t.anchor.Line -= evicted
			if t.anchor.Line < 0 {
				t.dragging, t.dragLost = false, true
			}
		}
	}
	t.clampScroll()
}

// Scroll moves the view back in history by delta lines (forward when negative).
func (t *Terminal) Scroll(delta int) {
	t.syncView()
	t.scrollOffset += delta
	t.clampScroll()
	t.eng.RequestRepaint()
}

// ScrollOffset returns how many lines the view is scrolled back.
func (t *Terminal) ScrollOffset() int {
	return t.scrollOffset
}

func (t *Terminal) ensureBuffer() {
	if len(t.buf) == t.height && (t.height == 0 || len(t.buf[0]) == t.width) {
		return
	}
	t.buf = make([][]texel.Cell, t.height)
	for y := range t.buf {
		t.buf[y] = make([]texel.Cell, t.width)
	}
}

// Render draws the visible lines, selection, cursor and banner. Only the
// visible lines are visited.
func (t *Terminal) Render() [][]texel.Cell {
	t.syncView()
	t.ensureBuffer()
	base := t.eng.Options().BaseStyle
	blank := texel.Cell{Ch: ' ', Style: t.palette.Style(base, false)}
	for y := range t.buf {
		row := t.buf[y]
		for x := range row {
			row[x] = blank
		}
	}

	start, end := t.visibleRange()
	cursor := t.eng.Cursor()
	showCursor := t.scrollOffset == 0 && !t.Exited()

	t.eng.VisitLines(start, end, func(i int, cells []engine.Cell) {
		row := t.buf[i-start]
		x := 0
		for ci, c := range cells {
			w := cellWidth(c.Rune)
			if x+w > t.width {
				break
			}
			pos := engine.Position{Line: i, Column: ci}
			highlight := t.eng.IsSelected(pos) || (showCursor && pos == cursor)
			style := t.palette.Style(c.Style, highlight)
			row[x] = texel.Cell{Ch: c.Rune, Style: style}
			if w == 2 {
				row[x+1] = texel.Cell{Ch: 0, Style: style}
			}
			x += w
		}
		if showCursor && i == cursor.Line && cursor.Column >= len(cells) && x < t.width {
			row[x] = texel.Cell{Ch: ' ', Style: t.palette.Style(t.eng.Style(), true)}
		}
	})

	if banner := t.bannerText(); banner != "" && t.height > 1 {
		t.drawBanner(banner)
	}

	t.eng.MarkRendered()
	return t.buf
}

func (t *Terminal) drawBanner(text string) {
	row := t.buf[t.height-1]
	style := t.palette.Style(t.eng.Options().BaseStyle, true)
	for x := range row {
		row[x] = texel.Cell{Ch: ' ', Style: style}
	}
	x := 0
	for _, r := range text {
		w := cellWidth(r)
		if x+w > t.width {
			break
		}
		row[x] = texel.Cell{Ch: r, Style: style}
		if w == 2 {
			row[x+1] = texel.Cell{Ch: 0, Style: style}
		}
		x += w
	}
}

// positionAt maps a screen cell to a buffer position, clamped to the
// visible lines and to the line length.
func (t *Terminal) positionAt(x, y int) engine.Position {
	start, end := t.visibleRange()
	line := min(max(start+y, start), end-1)
	if line < 0 {
		line = 0
	}
	cells, err := t.eng.Line(line)
	if err != nil {
		return engine.Position{Line: line}
	}
	col, px := 0, 0
	for col < len(cells) {
		w := cellWidth(cells[col].Rune)
		if px+w > x {
			break
		}
		px += w
		col++
	}
	return engine.Position{Line: line, Column: col}
}
