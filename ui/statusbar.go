package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"uriopen/config"
	"uriopen/plugin"
)

type statusMessage struct {
	id   plugin.MessageID
	text string
}

type StatusBar struct {
	Mode     string // "VIEW" or "MENU"
	Filename string
	Line     int
	Col      int
	Language string
	Encoding string
	TabInfo  string // "2/3" when several documents are open
	Theme    *config.ColorScheme

	// messages is a stack; the newest entry is shown.
	messages []statusMessage
	nextID   plugin.MessageID
}

func NewStatusBar() *StatusBar {
	return &StatusBar{
		Mode:     "VIEW",
		Encoding: "UTF-8",
	}
}

// Push shows msg until it is removed.
func (s *StatusBar) Push(msg string) plugin.MessageID {
	s.nextID++
	s.messages = append(s.messages, statusMessage{id: s.nextID, text: msg})
	return s.nextID
}

// Remove drops a pushed message. Unknown ids are ignored.
func (s *StatusBar) Remove(id plugin.MessageID) {
	for i, m := range s.messages {
		if m.id == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return
		}
	}
}

// Message returns the message currently on display, if any.
func (s *StatusBar) Message() string {
	if len(s.messages) == 0 {
		return ""
	}
	return s.messages[len(s.messages)-1].text
}

func (s *StatusBar) Render(screen tcell.Screen, x, y, width, height int) {
	theme := s.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}

	style := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)
	modeStyle := tcell.StyleDefault.Background(theme.StatusBarModeBg).Foreground(tcell.ColorWhite).Bold(true)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := drawText(screen, x, y, x+width, " "+s.Mode+" ", modeStyle)
	col++

	if msg := s.Message(); msg != "" {
		drawText(screen, col, y, x+width, msg, style)
		return
	}

	fname := s.Filename
	if fname == "" {
		fname = "untitled"
	}
	col = drawText(screen, col, y, x+width, fname, style)

	right := fmt.Sprintf("Ln %d, Col %d │ %s │ %s ", s.Line+1, s.Col+1, s.Language, s.Encoding)
	if s.TabInfo != "" {
		right = s.TabInfo + " │ " + right
	}
	rightRunes := []rune(right)
	rightStart := x + width - len(rightRunes)
	if rightStart > col+2 {
		drawText(screen, rightStart, y, x+width, right, style)
	}
}

// drawText writes text from x, clipped at limit, and returns the column
// after the last cell written.
func drawText(screen tcell.Screen, x, y, limit int, text string, style tcell.Style) int {
	for _, ch := range text {
		if x >= limit {
			break
		}
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
