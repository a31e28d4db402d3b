package ui

import (
	"path"
	"strings"

	"github.com/gdamore/tcell/v2"

	"uriopen/config"
)

// Tab is one open document. Location is its file:// URI or plain path.
type Tab struct {
	Title    string
	Location string
}

type TabBar struct {
	Tabs      []Tab
	Active    int
	scrollOff int
	x, y, w   int // layout coords set on render

	mousePressX, mousePressY int
	mousePressed             bool

	Theme *config.ColorScheme

	OnSwitch func(index int)
	OnClose  func(index int)
}

func NewTabBar() *TabBar {
	return &TabBar{}
}

// TabTitle is the last path element of location, "untitled" when empty.
func TabTitle(location string) string {
	p := strings.TrimPrefix(location, "file://")
	title := path.Base(p)
	if p == "" || title == "." || title == "/" {
		return "untitled"
	}
	return title
}

func (tb *TabBar) tabWidthAt(index int) int {
	if index < 0 || index >= len(tb.Tabs) {
		return 0
	}
	// space + title + space + x + space
	w := 1 + len([]rune(tb.Tabs[index].Title)) + 3
	if index < len(tb.Tabs)-1 {
		w++ // separator
	}
	return w
}

func (tb *TabBar) clampScroll() {
	if tb.scrollOff > len(tb.Tabs)-1 {
		tb.scrollOff = len(tb.Tabs) - 1
	}
	if tb.scrollOff < 0 {
		tb.scrollOff = 0
	}
}

func (tb *TabBar) visibleLast(width int) int {
	remaining := width
	last := tb.scrollOff - 1
	for i := tb.scrollOff; i < len(tb.Tabs); i++ {
		w := tb.tabWidthAt(i)
		if w > remaining {
			break
		}
		remaining -= w
		last = i
	}
	return last
}

func (tb *TabBar) ensureActiveVisible(width int) {
	tb.clampScroll()
	if len(tb.Tabs) == 0 || width <= 0 {
		return
	}
	if tb.Active >= len(tb.Tabs) {
		tb.Active = len(tb.Tabs) - 1
	}
	if tb.Active < 0 {
		tb.Active = 0
	}
	if tb.Active < tb.scrollOff {
		tb.scrollOff = tb.Active
	}
	for tb.Active > tb.visibleLast(width) && tb.scrollOff < tb.Active {
		tb.scrollOff++
	}
}

func (tb *TabBar) scrollBy(delta int) {
	tb.scrollOff += delta
	tb.clampScroll()
}

// AddTab appends a tab for location and makes it active.
func (tb *TabBar) AddTab(location string) {
	tb.Tabs = append(tb.Tabs, Tab{Title: TabTitle(location), Location: location})
	tb.Active = len(tb.Tabs) - 1
	tb.ensureActiveVisible(tb.w)
}

func (tb *TabBar) RemoveTab(index int) {
	if index < 0 || index >= len(tb.Tabs) {
		return
	}
	tb.Tabs = append(tb.Tabs[:index], tb.Tabs[index+1:]...)
	if index < tb.scrollOff {
		tb.scrollOff--
	}
	if tb.Active > index || tb.Active >= len(tb.Tabs) {
		tb.Active--
	}
	if tb.Active < 0 {
		tb.Active = 0
	}
	tb.clampScroll()
}

func (tb *TabBar) Render(screen tcell.Screen, x, y, width, height int) {
	tb.x, tb.y, tb.w = x, y, width
	tb.ensureActiveVisible(width)

	theme := tb.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}

	barStyle := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)
	activeStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground).Bold(true)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, barStyle)
	}

	col := x
	limit := x + width
	for i := tb.scrollOff; i < len(tb.Tabs) && col < limit; i++ {
		style := barStyle
		if i == tb.Active {
			style = activeStyle
		}
		col = drawText(screen, col, y, limit, " "+tb.Tabs[i].Title+" ", style)
		col = drawText(screen, col, y, limit, "x", style.Foreground(theme.LineNumber))
		col = drawText(screen, col, y, limit, " ", style)
		if i < len(tb.Tabs)-1 {
			col = drawText(screen, col, y, limit, "│", barStyle)
		}
	}
}

func (tb *TabBar) HandleMouse(ev *tcell.EventMouse) bool {
	mx, my := ev.Position()
	if my != tb.y || mx < tb.x || mx >= tb.x+tb.w {
		tb.mousePressed = false
		return false
	}

	switch ev.Buttons() {
	case tcell.WheelUp, tcell.WheelLeft:
		tb.scrollBy(-1)
	case tcell.WheelDown, tcell.WheelRight:
		tb.scrollBy(1)
	case tcell.Button1:
		if !tb.mousePressed {
			tb.mousePressX, tb.mousePressY = mx, my
			tb.mousePressed = true
		}
	case tcell.ButtonNone:
		if !tb.mousePressed {
			break
		}
		tb.mousePressed = false
		// A click is a press and release on the same cell.
		if mx == tb.mousePressX && my == tb.mousePressY {
			tb.click(mx)
		}
	}
	return true
}

func (tb *TabBar) click(mx int) {
	col := tb.x
	for i := tb.scrollOff; i < len(tb.Tabs) && col < tb.x+tb.w; i++ {
		w := tb.tabWidthAt(i)
		if mx >= col && mx < col+w {
			closeX := col + 1 + len([]rune(tb.Tabs[i].Title)) + 1
			if mx == closeX {
				if tb.OnClose != nil {
					tb.OnClose(i)
				}
			} else if tb.OnSwitch != nil {
				tb.OnSwitch(i)
			}
			return
		}
		col += w
	}
}
