package editor

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"uriopen/buffer"
	"uriopen/plugin"
	"uriopen/ui"
)

func (e *Editor) handleKey(ev *tcell.EventKey) {
	// The popup is modal.
	if e.menu != nil {
		e.menu.HandleKey(ev)
		return
	}

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		e.quit = true
		return
	case tcell.KeyCtrlN:
		e.nextTab()
		return
	case tcell.KeyCtrlP:
		e.prevTab()
		return
	case tcell.KeyCtrlW:
		e.closeTab(e.activeTab)
		return
	case tcell.KeyF10:
		e.openCaretMenu()
		return
	}

	v := e.activeDoc()
	if v == nil {
		return
	}
	buf := v.buf
	_, _, _, pageH := e.editorLayout()
	e.mouseScrolling = false

	if ev.Key() == tcell.KeyCtrlC {
		e.copySelection(buf)
		return
	}

	shift := ev.Modifiers()&tcell.ModShift != 0
	if shift && buf.Selection == nil {
		v.anchor = buf.Cursor
	}
	switch ev.Key() {
	case tcell.KeyUp:
		buf.MoveUp()
	case tcell.KeyDown:
		buf.MoveDown()
	case tcell.KeyLeft:
		buf.MoveLeft()
	case tcell.KeyRight:
		buf.MoveRight()
	case tcell.KeyHome:
		buf.Cursor.Col = 0
	case tcell.KeyEnd:
		buf.Cursor = buf.Clamp(buffer.Cursor{Line: buf.Cursor.Line, Col: buffer.RuneLen(buf.Lines[buf.Cursor.Line])})
	case tcell.KeyPgUp:
		buf.Cursor = buf.Clamp(buffer.Cursor{Line: buf.Cursor.Line - pageH, Col: buf.Cursor.Col})
	case tcell.KeyPgDn:
		buf.Cursor = buf.Clamp(buffer.Cursor{Line: buf.Cursor.Line + pageH, Col: buf.Cursor.Col})
	default:
		return
	}
	if shift {
		v.selectTo(buf.Cursor)
	} else {
		buf.Selection = nil
	}
}

// copySelection writes the selected text to the clipboard.
func (e *Editor) copySelection(buf *buffer.Buffer) {
	text := buf.SelectedText()
	if text == "" {
		return
	}
	if err := e.clipboard.WriteText(text); err != nil {
		log.Errorf("copy selection: %s", err)
		e.flash("Could not copy selection")
		return
	}
	e.flash(fmt.Sprintf("Copied %d characters", buffer.RuneLen(text)))
}

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	mx, my := ev.Position()
	btn := ev.Buttons()
	rightPressed := btn&tcell.Button2 != 0 && !e.rightDown
	e.rightDown = btn&tcell.Button2 != 0
	if btn&tcell.Button1 == 0 {
		e.mouseDown = false
	}

	if e.menu != nil {
		// Clicks outside the menu close it and fall through.
		if e.menu.HandleMouse(ev) || btn == tcell.ButtonNone {
			return
		}
	}

	_, screenH := e.screen.Size()
	if my == 0 {
		e.tabBar.HandleMouse(ev)
		return
	}
	if my == screenH-1 {
		return
	}

	v := e.activeDoc()
	if v == nil {
		return
	}
	switch {
	case rightPressed:
		e.openPointerMenu(v, mx, my)
	case btn&tcell.Button1 != 0:
		pos, ok := e.positionAt(v, mx, my)
		if !ok {
			return
		}
		if e.mouseDown {
			// Dragging extends the selection from the press position.
			v.buf.Cursor = pos
			v.selectTo(pos)
			return
		}
		v.buf.Selection = nil
		v.buf.Cursor = pos
		v.anchor = pos
		e.mouseDown = true
		e.mouseScrolling = false
	case btn&tcell.WheelUp != 0:
		e.mouseScrolling = true
		v.scrollY -= 3
		if v.scrollY < 0 {
			v.scrollY = 0
		}
	case btn&tcell.WheelDown != 0:
		e.mouseScrolling = true
		v.scrollY += 3
		if last := len(v.buf.Lines) - 1; v.scrollY > last {
			v.scrollY = last
		}
	}
}

// openPointerMenu opens the popup at a mouse position. The plugin resolves
// the character under that cell.
func (e *Editor) openPointerMenu(v *docView, sx, sy int) {
	v.pointer = screenPoint{x: sx, y: sy, ok: true}
	e.openMenu(v, sx, sy)
}

// openCaretMenu opens the popup at the caret without a pointer position.
func (e *Editor) openCaretMenu() {
	v := e.activeDoc()
	if v == nil {
		return
	}
	v.pointer = screenPoint{}
	x, y, ok := e.caretScreenPos(v)
	if !ok {
		x, y, _, _ = e.editorLayout()
	}
	e.openMenu(v, x, y)
}

func (e *Editor) openMenu(v *docView, x, y int) {
	m := ui.NewContextMenu(x, y, e.cfg.GetTheme())
	m.Append(plugin.MenuItem{Label: "Close tab", Activate: func() { e.closeView(v) }})
	for _, fn := range v.popup.fns() {
		fn(v, m)
	}
	v.pointer = screenPoint{}
	if m.Empty() {
		return
	}

	m.OnClose = func() {
		if e.menu == m {
			e.menu = nil
		}
	}
	m.Open()
	e.menu = m
}
