package plugin

import (
	"time"

	"uriopen/buffer"
)

// HandlerID identifies a connected signal handler so it can be
// disconnected later.
type HandlerID uint64

// PopupHandler is called while a view's context menu is being built.
type PopupHandler func(v View, menu Menu)

// View is one editing surface showing a buffer.
type View interface {
	Buffer() *buffer.Buffer
	// PointerPosition returns the buffer position under the mouse pointer,
	// or false when the pointer is not over a character.
	PointerPosition() (buffer.Cursor, bool)
	OnPopulatePopup(fn PopupHandler) HandlerID
	Disconnect(id HandlerID)
}

// Window owns the views and documents of one editor window.
type Window interface {
	Views() []View
	OnTabAdded(fn func(View)) HandlerID
	OnTabRemoved(fn func(View)) HandlerID
	Disconnect(id HandlerID)

	// ActiveDocumentLocation is the location of the focused document, ""
	// when it has none.
	ActiveDocumentLocation() string
	// ActivateDocument focuses an already open document and reports
	// whether one with that location existed.
	ActivateDocument(location string) bool
	// LoadLocation opens location in a new tab.
	LoadLocation(location string) error

	StatusBar() StatusBar
	// After runs fn on the UI thread once d has elapsed.
	After(d time.Duration, fn func())
}

// MessageID identifies a pushed status message.
type MessageID int

type StatusBar interface {
	Push(msg string) MessageID
	Remove(id MessageID)
}

// MenuItem is a context menu entry. A Separator item has no label or
// action.
type MenuItem struct {
	Label     string
	Separator bool
	Activate  func()
}

// Menu is the context menu under construction.
type Menu interface {
	Prepend(item MenuItem)
}

// Clipboard receives copied URIs.
type Clipboard interface {
	WriteText(text string) error
}

// Launcher starts an external program without waiting for it.
type Launcher func(name string, args ...string) error
