package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"uriopen/config"
	"uriopen/plugin"
)

const menuMaxWidth = 72

// ContextMenu is a popup list anchored at a screen cell. It collects
// entries through Prepend/Append while being populated.
type ContextMenu struct {
	Items    []plugin.MenuItem
	Selected int
	X, Y     int
	Theme    *config.ColorScheme
	OnClose  func()

	// layout of the last render, used for mouse hit testing
	left, top, width int
}

func NewContextMenu(x, y int, theme *config.ColorScheme) *ContextMenu {
	return &ContextMenu{X: x, Y: y, Theme: theme}
}

func (m *ContextMenu) Prepend(item plugin.MenuItem) {
	m.Items = append([]plugin.MenuItem{item}, m.Items...)
}

func (m *ContextMenu) Append(item plugin.MenuItem) {
	m.Items = append(m.Items, item)
}

// Empty reports whether the menu has nothing to activate.
func (m *ContextMenu) Empty() bool {
	for _, it := range m.Items {
		if !it.Separator {
			return false
		}
	}
	return true
}

// Open selects the first actionable entry.
func (m *ContextMenu) Open() {
	m.Selected = m.nextActionable(-1, 1)
}

func (m *ContextMenu) size() (int, int) {
	w := 0
	for _, it := range m.Items {
		if n := runewidth.StringWidth(it.Label) + 4; n > w {
			w = n
		}
	}
	if w > menuMaxWidth {
		w = menuMaxWidth
	}
	return w, len(m.Items)
}

func (m *ContextMenu) Render(screen tcell.Screen, x, y, width, height int) {
	if len(m.Items) == 0 {
		return
	}
	theme := m.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}

	w, h := m.size()
	posX, posY := m.X, m.Y+1
	// Flip above the anchor when there is no room below.
	if posY+h > y+height {
		posY = m.Y - h
	}
	if posY < y {
		posY = y
	}
	if posX+w > x+width {
		posX = x + width - w
	}
	if posX < x {
		posX = x
	}
	m.left, m.top, m.width = posX, posY, w

	bgStyle := tcell.StyleDefault.Background(theme.MenuBg).Foreground(theme.MenuFg)
	selStyle := tcell.StyleDefault.Background(theme.Selection).Foreground(theme.Foreground)
	sepStyle := tcell.StyleDefault.Background(theme.MenuBg).Foreground(theme.MenuSeparator)

	for i, it := range m.Items {
		row := posY + i
		style := bgStyle
		if i == m.Selected && !it.Separator {
			style = selStyle
		}
		for cx := posX; cx < posX+w; cx++ {
			fill := ' '
			if it.Separator {
				fill = '─'
			}
			st := style
			if it.Separator {
				st = sepStyle
			}
			screen.SetContent(cx, row, fill, nil, st)
		}
		if it.Separator {
			continue
		}
		col := posX + 2
		for _, ch := range it.Label {
			cw := runewidth.RuneWidth(ch)
			if col+cw > posX+w-1 {
				screen.SetContent(posX+w-2, row, '…', nil, style)
				break
			}
			screen.SetContent(col, row, ch, nil, style)
			col += cw
		}
	}
}

func (m *ContextMenu) nextActionable(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Separator {
			return i
		}
	}
	if from >= 0 && from < len(m.Items) {
		return from
	}
	return -1
}

// activate runs the selected entry and closes the menu.
func (m *ContextMenu) activate(i int) {
	if i < 0 || i >= len(m.Items) || m.Items[i].Separator {
		return
	}
	m.close()
	if fn := m.Items[i].Activate; fn != nil {
		fn()
	}
}

func (m *ContextMenu) close() {
	if m.OnClose != nil {
		m.OnClose()
	}
}

func (m *ContextMenu) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		m.Selected = m.nextActionable(m.Selected, -1)
	case tcell.KeyDown:
		m.Selected = m.nextActionable(m.Selected, 1)
	case tcell.KeyEnter:
		m.activate(m.Selected)
	case tcell.KeyEscape:
		m.close()
	default:
		return false
	}
	return true
}

// HandleMouse activates a clicked entry. A click outside the menu closes
// it and is reported as unhandled.
func (m *ContextMenu) HandleMouse(ev *tcell.EventMouse) bool {
	mx, my := ev.Position()
	inside := mx >= m.left && mx < m.left+m.width && my >= m.top && my < m.top+len(m.Items)
	switch ev.Buttons() {
	case tcell.ButtonNone:
		if inside && !m.Items[my-m.top].Separator {
			m.Selected = my - m.top
		}
		return inside
	case tcell.Button1:
		if !inside {
			m.close()
			return false
		}
		m.activate(my - m.top)
		return true
	}
	if !inside {
		m.close()
	}
	return inside
}
