// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/keys.go
// Summary: Keyboard and paste input encoding for the terminal widget.

package texelterm

import (
	"bytes"

	"github.com/gdamore/tcell/v2"
)

// keySequences maps special keys to the bytes an xterm sends for them.
var keySequences = map[tcell.Key]string{
	tcell.KeyUp:         "\x1b[A",
	tcell.KeyDown:       "\x1b[B",
	tcell.KeyRight:      "\x1b[C",
	tcell.KeyLeft:       "\x1b[D",
	tcell.KeyHome:       "\x1b[H",
	tcell.KeyEnd:        "\x1b[F",
	tcell.KeyInsert:     "\x1b[2~",
	tcell.KeyDelete:     "\x1b[3~",
	tcell.KeyPgUp:       "\x1b[5~",
	tcell.KeyPgDn:       "\x1b[6~",
	tcell.KeyF1:         "\x1bOP",
	tcell.KeyF2:         "\x1bOQ",
	tcell.KeyF3:         "\x1bOR",
	tcell.KeyF4:         "\x1bOS",
	tcell.KeyEnter:      "\r",
	tcell.KeyBackspace:  "\b",
	tcell.KeyBackspace2: "\x7f",
	tcell.KeyTab:        "\t",
	tcell.KeyEsc:        "\x1b",
}

// encodeKey returns the bytes sent to the child for ev, or nil.
func encodeKey(ev *tcell.EventKey) []byte {
	key := ev.Key()
	if seq, ok := keySequences[key]; ok {
		return []byte(seq)
	}
	switch {
	case key == tcell.KeyRune:
		b := []byte(string(ev.Rune()))
		if ev.Modifiers()&tcell.ModAlt != 0 {
			b = append([]byte{0x1b}, b...)
		}
		return b
	case key >= 0 && key < 32:
		// Ctrl-A .. Ctrl-_ are their control codes.
		return []byte{byte(key)}
	}
	return nil
}

// HandleKey scrolls history on Shift+PgUp/PgDn and forwards everything else
// to the session, snapping the view back to the bottom.
func (t *Terminal) HandleKey(ev *tcell.EventKey) {
	if ev.Modifiers()&tcell.ModShift != 0 {
		switch ev.Key() {
		case tcell.KeyPgUp:
			t.Scroll(max(1, t.contentRows()-1))
			return
		case tcell.KeyPgDn:
			t.Scroll(-max(1, t.contentRows()-1))
			return
		}
	}

	keyBytes := encodeKey(ev)
	if keyBytes == nil {
		return
	}
	if t.scrollOffset != 0 {
		t.scrollOffset = 0
		t.eng.RequestRepaint()
	}
	t.Write(keyBytes)
}

// HandlePaste forwards pasted text, sending newlines as carriage returns.
func (t *Terminal) HandlePaste(data []byte) {
	if len(data) == 0 {
		return
	}
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\r"))
	data = bytes.ReplaceAll(data, []byte("\n"), []byte("\r"))
	t.scrollOffset = 0
	t.Write(data)
}
