package editor

import (
	"uriopen/buffer"
	"uriopen/plugin"
)

var _ plugin.View = (*docView)(nil)

type screenPoint struct {
	x, y int
	ok   bool
}

// docView shows one buffer in a tab.
type docView struct {
	ed      *Editor
	buf     *buffer.Buffer
	scrollY int
	scrollX int

	// anchor is the fixed end of a selection; the caret is the moving end.
	anchor buffer.Cursor

	// pointer is where the popup was requested with the mouse; it is unset
	// for keyboard popups.
	pointer screenPoint
	popup   handlerList[plugin.PopupHandler]
}

func newDocView(ed *Editor, buf *buffer.Buffer) *docView {
	return &docView{ed: ed, buf: buf}
}

func (v *docView) Buffer() *buffer.Buffer {
	return v.buf
}

func (v *docView) PointerPosition() (buffer.Cursor, bool) {
	if !v.pointer.ok {
		return buffer.Cursor{}, false
	}
	return v.ed.positionAt(v, v.pointer.x, v.pointer.y)
}

// selectTo selects from the anchor to pos. An empty range clears the
// selection.
func (v *docView) selectTo(pos buffer.Cursor) {
	if pos.Equal(v.anchor) {
		v.buf.Selection = nil
		return
	}
	sel := buffer.NewSelection(v.anchor, pos)
	v.buf.Selection = &sel
}

func (v *docView) OnPopulatePopup(fn plugin.PopupHandler) plugin.HandlerID {
	id := v.ed.newHandlerID()
	v.popup.add(id, fn)
	return id
}

func (v *docView) Disconnect(id plugin.HandlerID) {
	v.popup.remove(id)
}
