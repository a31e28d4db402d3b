package editor

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"uriopen/buffer"
	"uriopen/highlight"
	"uriopen/ui"
)

func highlightKey(buf *buffer.Buffer) string {
	return fmt.Sprintf("%p", buf)
}

func (e *Editor) render() {
	theme := e.cfg.GetTheme()
	e.screen.SetStyle(tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground))
	e.screen.Clear()

	screenW, screenH := e.screen.Size()
	e.statusBar.Theme = theme
	e.tabBar.Theme = theme

	e.tabBar.Render(e.screen, 0, 0, screenW, 1)
	e.renderView(e.editorLayout())

	e.updateStatus()
	e.statusBar.Render(e.screen, 0, screenH-1, screenW, 1)

	if e.menu != nil {
		e.menu.Theme = theme
		ex, ey, ew, eh := e.editorLayout()
		e.menu.Render(e.screen, ex, ey, ew, eh)
	}
	e.screen.Show()
}

func (e *Editor) editorLayout() (x, y, w, h int) {
	screenW, screenH := e.screen.Size()
	return 0, 1, screenW, screenH - 2 // -1 tab bar, -1 status bar
}

func gutterWidth(buf *buffer.Buffer) int {
	digits := 1
	for lines := len(buf.Lines); lines >= 10; lines /= 10 {
		digits++
	}
	return digits + 1
}

func (e *Editor) renderView(x, y, w, h int) {
	v := e.activeDoc()
	if v == nil {
		e.screen.HideCursor()
		return
	}
	buf := v.buf
	gutterW := gutterWidth(buf)
	textW := w - gutterW
	if textW <= 0 || h <= 0 {
		return
	}
	if e.mouseScrolling {
		buf.Cursor = buf.Clamp(buf.Cursor)
	} else {
		ensureCursorVisible(v, textW, h)
	}
	tabSize := buf.TabSize
	if tabSize <= 0 {
		tabSize = 4
	}

	theme := e.cfg.GetTheme()
	lineStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	gutterStyle := lineStyle.Foreground(theme.LineNumber)
	activeGutterStyle := lineStyle.Foreground(theme.LineNumberActive)
	selStyle := tcell.StyleDefault.Background(theme.Selection).Foreground(theme.Foreground)

	end := v.scrollY + h
	if end > len(buf.Lines) {
		end = len(buf.Lines)
	}
	var spans [][]highlight.Span
	if buf.Language != "" {
		spans = e.highlight.Lines(highlightKey(buf), buf.Lines, buf.Language, v.scrollY, end, lineStyle)
	}

	for row := 0; row < h; row++ {
		screenY := y + row
		lineIdx := v.scrollY + row
		if lineIdx >= len(buf.Lines) {
			e.screen.SetContent(x, screenY, '~', nil, gutterStyle)
			continue
		}

		style := gutterStyle
		if lineIdx == buf.Cursor.Line {
			style = activeGutterStyle
		}
		num := fmt.Sprintf("%*d", gutterW-1, lineIdx+1)
		for i, ch := range num {
			e.screen.SetContent(x+i, screenY, ch, nil, style)
		}

		var lineSpans []highlight.Span
		if row < len(spans) {
			lineSpans = spans[row]
		}
		displayCol := 0
		for col, r := range []rune(buf.Lines[lineIdx]) {
			cw := runewidth.RuneWidth(r)
			if r == '\t' {
				cw = tabSize - displayCol%tabSize
			}
			screenX := x + gutterW + displayCol - v.scrollX
			displayCol += cw
			if screenX < x+gutterW {
				continue
			}
			if screenX+cw > x+w {
				break
			}
			st := highlight.StyleAt(lineSpans, col, lineStyle)
			if buf.Selection != nil && buf.Selection.Contains(buffer.Cursor{Line: lineIdx, Col: col}) {
				st = selStyle
			}
			if r == '\t' {
				for i := 0; i < cw; i++ {
					e.screen.SetContent(screenX+i, screenY, ' ', nil, st)
				}
				continue
			}
			e.screen.SetContent(screenX, screenY, r, nil, st)
		}
	}

	if cx, cy, ok := e.caretScreenPos(v); ok && e.menu == nil {
		e.screen.ShowCursor(cx, cy)
	} else {
		e.screen.HideCursor()
	}
}

func ensureCursorVisible(v *docView, textW, textH int) {
	buf := v.buf
	buf.Cursor = buf.Clamp(buf.Cursor)
	if buf.Cursor.Line < v.scrollY {
		v.scrollY = buf.Cursor.Line
	}
	if buf.Cursor.Line >= v.scrollY+textH {
		v.scrollY = buf.Cursor.Line - textH + 1
	}

	displayCol := ui.BufferColToDisplayCol(buf.Lines[buf.Cursor.Line], buf.Cursor.Col, buf.TabSize)
	if displayCol < v.scrollX {
		v.scrollX = displayCol
	}
	if displayCol >= v.scrollX+textW {
		v.scrollX = displayCol - textW + 1
	}
}

// caretScreenPos is the screen cell of v's caret, if it is on screen.
func (e *Editor) caretScreenPos(v *docView) (int, int, bool) {
	x, y, w, h := e.editorLayout()
	buf := v.buf
	gutterW := gutterWidth(buf)
	row := buf.Cursor.Line - v.scrollY
	if row < 0 || row >= h || buf.Cursor.Line >= len(buf.Lines) {
		return 0, 0, false
	}
	col := ui.BufferColToDisplayCol(buf.Lines[buf.Cursor.Line], buf.Cursor.Col, buf.TabSize) - v.scrollX
	if col < 0 || gutterW+col >= w {
		return 0, 0, false
	}
	return x + gutterW + col, y + row, true
}

// positionAt maps a screen cell onto the character of v drawn there. Cells
// in the gutter, past the end of a line or below the last line map to
// nothing.
func (e *Editor) positionAt(v *docView, sx, sy int) (buffer.Cursor, bool) {
	x, y, w, h := e.editorLayout()
	gutterW := gutterWidth(v.buf)
	if sx < x+gutterW || sx >= x+w || sy < y || sy >= y+h {
		return buffer.Cursor{}, false
	}
	line := v.scrollY + sy - y
	if line >= len(v.buf.Lines) {
		return buffer.Cursor{}, false
	}
	col, ok := ui.DisplayColToBufferCol(v.buf.Lines[line], v.scrollX+sx-x-gutterW, v.buf.TabSize)
	if !ok {
		return buffer.Cursor{}, false
	}
	return buffer.Cursor{Line: line, Col: col}, true
}

func (e *Editor) updateStatus() {
	sb := e.statusBar
	sb.Mode = "VIEW"
	if e.menu != nil {
		sb.Mode = "MENU"
	}
	sb.TabInfo = ""
	if len(e.docs) > 1 {
		sb.TabInfo = fmt.Sprintf("%d/%d", e.activeTab+1, len(e.docs))
	}

	v := e.activeDoc()
	if v == nil {
		return
	}
	sb.Filename = ui.TabTitle(v.buf.Location())
	sb.Line = v.buf.Cursor.Line
	sb.Col = v.buf.Cursor.Col
	sb.Language = v.buf.Language
	sb.Encoding = v.buf.Encoding
}
