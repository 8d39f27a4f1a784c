// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/app.go
// Summary: Widget boundary shared by hosted apps and the screen runners.

package texel

import "github.com/gdamore/tcell/v2"

// Cell is one styled screen cell. Ch == 0 marks the continuation column of
// a wide rune and is skipped when drawing.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// App is a widget hosted by a runner. All methods are called from the
// runner's event loop goroutine.
type App interface {
	// Start acquires the app's resources (for a terminal, its session).
	Start() error
	// Stop releases everything Start acquired.
	Stop()
	Resize(cols, rows int)
	// Poll performs non-blocking background work and reports whether a
	// repaint is pending.
	Poll() bool
	Render() [][]Cell
	HandleKey(ev *tcell.EventKey)
	GetTitle() string
}

// MouseHandler is implemented by apps that accept mouse input.
type MouseHandler interface {
	HandleMouse(ev *tcell.EventMouse)
}

// PasteHandler is implemented by apps that accept bracketed paste.
type PasteHandler interface {
	HandlePaste(data []byte)
}

// Exiter is implemented by apps that can finish on their own.
type Exiter interface {
	Exited() bool
}
