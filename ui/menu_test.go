package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"uriopen/plugin"
)

func newTestMenu(activated *string) *ContextMenu {
	m := NewContextMenu(2, 1, nil)
	m.Append(plugin.MenuItem{Label: "Close tab", Activate: func() { *activated = "close" }})
	m.Prepend(plugin.MenuItem{Separator: true})
	m.Prepend(plugin.MenuItem{Label: "Copy 'x'", Activate: func() { *activated = "copy" }})
	m.Prepend(plugin.MenuItem{Label: "Open 'x'", Activate: func() { *activated = "open" }})
	m.Open()
	return m
}

func TestContextMenuPrependOrder(t *testing.T) {
	var activated string
	m := newTestMenu(&activated)
	var labels []string
	for _, it := range m.Items {
		labels = append(labels, it.Label)
	}
	if got := strings.Join(labels, "|"); got != "Open 'x'|Copy 'x'||Close tab" {
		t.Fatalf("unexpected order %q", got)
	}
	if m.Selected != 0 {
		t.Fatalf("expected first entry selected, got %d", m.Selected)
	}
}

func TestContextMenuKeysSkipSeparators(t *testing.T) {
	var activated string
	m := newTestMenu(&activated)
	closed := false
	m.OnClose = func() { closed = true }

	down := tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
	m.HandleKey(down)
	m.HandleKey(down)
	if m.Selected != 3 {
		t.Fatalf("expected separator to be skipped, selected=%d", m.Selected)
	}
	m.HandleKey(down)
	if m.Selected != 3 {
		t.Fatalf("expected selection to stop at the last entry, selected=%d", m.Selected)
	}

	m.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if activated != "close" || !closed {
		t.Fatalf("expected close tab to run and menu to close, got %q closed=%v", activated, closed)
	}
}

func TestContextMenuEscapeCloses(t *testing.T) {
	var activated string
	m := newTestMenu(&activated)
	closed := false
	m.OnClose = func() { closed = true }

	if !m.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatalf("escape should be handled")
	}
	if !closed || activated != "" {
		t.Fatalf("escape must close without activating")
	}
}

func TestContextMenuRenderAndClick(t *testing.T) {
	var activated string
	m := newTestMenu(&activated)
	screen := newTestScreen(t, 40, 10)
	m.Render(screen, 0, 0, 40, 10)

	if row := screenRow(screen, 2, 40); !strings.Contains(row, "Open 'x'") {
		t.Fatalf("expected first entry below the anchor, got %q", row)
	}
	if row := screenRow(screen, 4, 40); !strings.Contains(row, "─") {
		t.Fatalf("expected separator row, got %q", row)
	}

	if !m.HandleMouse(tcell.NewEventMouse(4, 3, tcell.Button1, tcell.ModNone)) {
		t.Fatalf("click inside menu should be handled")
	}
	if activated != "copy" {
		t.Fatalf("expected copy, got %q", activated)
	}
}

func TestContextMenuClickOutsideCloses(t *testing.T) {
	var activated string
	m := newTestMenu(&activated)
	closed := false
	m.OnClose = func() { closed = true }
	screen := newTestScreen(t, 40, 10)
	m.Render(screen, 0, 0, 40, 10)

	if m.HandleMouse(tcell.NewEventMouse(39, 9, tcell.Button1, tcell.ModNone)) {
		t.Fatalf("click outside should fall through")
	}
	if !closed || activated != "" {
		t.Fatalf("click outside must close without activating")
	}
}

func TestContextMenuFlipsAboveAnchorAtBottom(t *testing.T) {
	var activated string
	m := newTestMenu(&activated)
	m.Y = 8
	screen := newTestScreen(t, 40, 10)
	m.Render(screen, 0, 0, 40, 10)

	if m.top != 4 {
		t.Fatalf("expected menu above the anchor at row 4, got %d", m.top)
	}
}

func TestContextMenuEmpty(t *testing.T) {
	m := NewContextMenu(0, 0, nil)
	if !m.Empty() {
		t.Fatalf("new menu should be empty")
	}
	m.Append(plugin.MenuItem{Separator: true})
	if !m.Empty() {
		t.Fatalf("separators alone leave the menu empty")
	}
}
