package texelterm

import (
	"errors"

	"github.com/framegrace/texelsession/apps/texelterm/engine"
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
)

const wheelLines = 3

// HandleMouse scrolls on the wheel and selects text with button 1. The
// selection is copied to the clipboard on release.
func (t *Terminal) HandleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		t.Scroll(wheelLines)
		return
	case buttons&tcell.WheelDown != 0:
		t.Scroll(-wheelLines)
		return
	}

	t.syncView()
	x, y := ev.Position()
	switch {
	case t.dragLost:
		if buttons&tcell.Button1 == 0 {
			t.dragLost = false
		}
	case buttons&tcell.Button1 != 0 && !t.dragging:
		t.dragging = true
		t.anchor = t.positionAt(x, y)
		t.eng.ClearSelection()
		t.eng.RequestRepaint()
	case buttons&tcell.Button1 != 0:
		t.extendSelection(x, y)
	case t.dragging:
		t.dragging = false
		t.extendSelection(x, y)
		if _, ok := t.eng.Selection(); !ok {
			return
		}
		if err := t.CopySelection(); err != nil && !errors.Is(err, ErrClipboardFailed) {
			log.Debug().Err(err).Msg("texelterm: copy selection")
			t.setStatus("selection out of range")
		}
	}
}

// extendSelection selects from the anchor to the cell under (x, y). A
// forward drag includes the cell under the pointer.
func (t *Terminal) extendSelection(x, y int) {
	pos := t.positionAt(x, y)
	if !pos.Less(t.anchor) {
		if cells, err := t.eng.Line(pos.Line); err == nil && pos.Column < len(cells) {
			pos.Column++
		}
	}
	if err := t.eng.SetSelection(t.anchor, pos); err != nil {
		log.Debug().Err(err).Msg("texelterm: set selection")
		t.setStatus("selection out of range")
		return
	}
	t.eng.RequestRepaint()
}

// Select sets the selection programmatically.
func (t *Terminal) Select(a, b engine.Position) error {
	if err := t.eng.SetSelection(a, b); err != nil {
		return err
	}
	t.eng.RequestRepaint()
	return nil
}
