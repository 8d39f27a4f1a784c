// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/term.go
// Summary: PTY terminal widget hosting the engine and its session pump.
// Usage: Run by internal/devshell inside a tcell screen.

package texelterm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/framegrace/texelsession/apps/texelterm/archive"
	"github.com/framegrace/texelsession/apps/texelterm/engine"
	"github.com/framegrace/texelsession/apps/texelterm/session"
	"github.com/framegrace/texelsession/texel"
	"github.com/rs/zerolog/log"
)

// ErrClipboardFailed wraps failures of the clipboard hand-off.
var ErrClipboardFailed = errors.New("texelterm: clipboard failed")

// Clipboard receives copied selections.
type Clipboard interface {
	SetClipboard(mime string, data []byte) error
}

// Options configures a Terminal.
type Options struct {
	Title   string
	Engine  engine.Options
	Session session.Config
	// Factory builds sessions; PTY sessions when nil.
	Factory session.Factory
	// Archive receives evicted scrollback lines when set. The caller owns it.
	Archive   *archive.Archive
	Clipboard Clipboard
	Palette   *Palette
}

// Terminal is a widget showing a child process's output.
type Terminal struct {
	title     string
	width     int
	height    int
	eng       *engine.Engine
	pump      *Pump
	archive   *archive.Archive
	clipboard Clipboard
	palette   Palette

	scrollOffset int    // lines scrolled back from the bottom
	status       string // transient message shown in the banner row

	anchor   engine.Position
	dragging bool
	dragLost bool // anchor line was evicted; ignore motion until release

	seen engine.LineCounters // engine counters at the last syncView

	buf [][]texel.Cell
}

var _ texel.App = (*Terminal)(nil)

// New creates a terminal. The session is spawned by Start.
func New(opts Options) (*Terminal, error) {
	eng, err := engine.New(opts.Engine)
	if err != nil {
		return nil, err
	}
	if opts.Archive != nil {
		eng.SetEvictionSink(opts.Archive)
	}
	factory := opts.Factory
	if factory == nil {
		factory = session.NewPTYFactory()
	}
	var cfg *session.Config
	if opts.Session.Command != "" {
		cfg = &opts.Session
	}
	palette := NewDefaultPalette()
	if opts.Palette != nil {
		palette = *opts.Palette
	}

	t := &Terminal{
		title:     opts.Title,
		width:     80, // Sensible defaults
		height:    24,
		eng:       eng,
		archive:   opts.Archive,
		clipboard: opts.Clipboard,
		palette:   palette,
	}
	t.pump = NewPump(eng, factory, cfg)
	t.pump.OnTitle(func(title string) {
		t.title = title
	})
	return t, nil
}

// Start spawns the configured session at the current size.
func (t *Terminal) Start() error {
	cfg, ok := t.pump.Config()
	if !ok {
		return ErrInvalidRuntime
	}
	cfg.Cols, cfg.Rows = t.width, t.height
	if err := t.pump.Spawn(cfg); err != nil {
		t.setStatus("failed to start: " + err.Error())
		return err
	}
	t.status = ""
	return nil
}

// Stop detaches the session.
func (t *Terminal) Stop() {
	t.pump.Detach()
}

// Resize updates the widget size and the session window size.
func (t *Terminal) Resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	t.width = cols
	t.height = rows
	t.syncView()
	if err := t.pump.Resize(cols, rows); err != nil {
		log.Debug().Err(err).Int("cols", cols).Int("rows", rows).Msg("texelterm: resize")
	}
	t.eng.RequestRepaint()
}

// Poll drains pending session output.
func (t *Terminal) Poll() bool {
	return t.pump.Poll()
}

// Write sends raw input to the session.
func (t *Terminal) Write(b []byte) (int, error) {
	n, err := t.pump.Write(b)
	if err != nil {
		t.setStatus("write failed: " + err.Error())
	}
	return n, err
}

// Detach closes the session; the buffers stay readable.
func (t *Terminal) Detach() {
	t.pump.Detach()
	t.eng.RequestRepaint()
}

// GetTitle returns the window title, updated by OSC 0/2.
func (t *Terminal) GetTitle() string {
	return t.title
}

// ExitStatus returns the session's exit status.
func (t *Terminal) ExitStatus() session.ExitStatus {
	return t.pump.ExitStatus()
}

// Exited reports whether the child process has ended.
func (t *Terminal) Exited() bool {
	return t.pump.ExitStatus().Done()
}

// Status returns the banner message, if any.
func (t *Terminal) Status() string {
	return t.status
}

func (t *Terminal) setStatus(msg string) {
	t.status = msg
	t.eng.RequestRepaint()
}

// Transcript returns the text of every buffered line, including a
// non-empty active line.
func (t *Terminal) Transcript() []string {
	lines := t.eng.Scrollback()
	out := make([]string, 0, len(lines)+1)
	for _, l := range lines {
		out = append(out, l.String())
	}
	if active := t.eng.ActiveLine(); len(active) > 0 {
		out = append(out, engine.Line(active).String())
	}
	return out
}

// SelectedText returns the current selection as UTF-8.
func (t *Terminal) SelectedText() ([]byte, error) {
	return t.eng.SelectedText()
}

// CopySelection hands the selected text to the clipboard.
func (t *Terminal) CopySelection() error {
	text, err := t.eng.SelectedText()
	if err != nil {
		return err
	}
	if t.clipboard == nil {
		return nil
	}
	if err := t.clipboard.SetClipboard("text/plain", text); err != nil {
		wrapped := fmt.Errorf("%w: %v", ErrClipboardFailed, err)
		t.setStatus(wrapped.Error())
		return wrapped
	}
	return nil
}

// SearchHistory searches lines evicted into the archive.
func (t *Terminal) SearchHistory(query string, limit int) ([]archive.Result, error) {
	if t.archive == nil {
		return nil, nil
	}
	return t.archive.Search(strings.TrimSpace(query), limit)
}
