package plugin

import (
	"errors"
	"time"

	"uriopen/buffer"
)

type fakeView struct {
	buf      *buffer.Buffer
	pointer  *buffer.Cursor
	nextID   *HandlerID
	handlers map[HandlerID]PopupHandler
}

func newFakeView(w *fakeWindow, text string) *fakeView {
	return &fakeView{
		buf:      buffer.NewBufferFromText(text, 4),
		nextID:   &w.nextID,
		handlers: make(map[HandlerID]PopupHandler),
	}
}

func (v *fakeView) Buffer() *buffer.Buffer { return v.buf }

func (v *fakeView) PointerPosition() (buffer.Cursor, bool) {
	if v.pointer == nil {
		return buffer.Cursor{}, false
	}
	return *v.pointer, true
}

func (v *fakeView) OnPopulatePopup(fn PopupHandler) HandlerID {
	*v.nextID++
	v.handlers[*v.nextID] = fn
	return *v.nextID
}

func (v *fakeView) Disconnect(id HandlerID) { delete(v.handlers, id) }

func (v *fakeView) popup() *fakeMenu {
	m := &fakeMenu{}
	for _, h := range v.handlers {
		h(v, m)
	}
	return m
}

type fakeWindow struct {
	nextID    HandlerID
	views     []View
	added     map[HandlerID]func(View)
	removed   map[HandlerID]func(View)
	location  string
	open      map[string]bool
	activated []string
	loaded    []string
	loadErr   error
	status    *fakeStatus
	timers    []time.Duration
	pending   []func()
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{
		added:   make(map[HandlerID]func(View)),
		removed: make(map[HandlerID]func(View)),
		open:    make(map[string]bool),
		status:  &fakeStatus{messages: make(map[MessageID]string)},
	}
}

func (w *fakeWindow) addView(text string) *fakeView {
	v := newFakeView(w, text)
	w.views = append(w.views, v)
	for _, fn := range w.added {
		fn(v)
	}
	return v
}

func (w *fakeWindow) removeView(v View) {
	for i, o := range w.views {
		if o == v {
			w.views = append(w.views[:i], w.views[i+1:]...)
			break
		}
	}
	for _, fn := range w.removed {
		fn(v)
	}
}

func (w *fakeWindow) Views() []View { return append([]View(nil), w.views...) }

func (w *fakeWindow) OnTabAdded(fn func(View)) HandlerID {
	w.nextID++
	w.added[w.nextID] = fn
	return w.nextID
}

func (w *fakeWindow) OnTabRemoved(fn func(View)) HandlerID {
	w.nextID++
	w.removed[w.nextID] = fn
	return w.nextID
}

func (w *fakeWindow) Disconnect(id HandlerID) {
	delete(w.added, id)
	delete(w.removed, id)
}

func (w *fakeWindow) ActiveDocumentLocation() string { return w.location }

func (w *fakeWindow) ActivateDocument(location string) bool {
	if w.open[location] {
		w.activated = append(w.activated, location)
		return true
	}
	return false
}

func (w *fakeWindow) LoadLocation(location string) error {
	if w.loadErr != nil {
		return w.loadErr
	}
	w.loaded = append(w.loaded, location)
	w.open[location] = true
	return nil
}

func (w *fakeWindow) StatusBar() StatusBar { return w.status }

func (w *fakeWindow) After(d time.Duration, fn func()) {
	w.timers = append(w.timers, d)
	w.pending = append(w.pending, fn)
}

func (w *fakeWindow) fireTimers() {
	pending := w.pending
	w.pending = nil
	for _, fn := range pending {
		fn()
	}
}

type fakeStatus struct {
	next     MessageID
	messages map[MessageID]string
}

func (s *fakeStatus) Push(msg string) MessageID {
	s.next++
	s.messages[s.next] = msg
	return s.next
}

func (s *fakeStatus) Remove(id MessageID) { delete(s.messages, id) }

type fakeMenu struct {
	items []MenuItem
}

func (m *fakeMenu) Prepend(item MenuItem) {
	m.items = append([]MenuItem{item}, m.items...)
}

func (m *fakeMenu) labels() []string {
	var out []string
	for _, it := range m.items {
		if it.Separator {
			out = append(out, "---")
			continue
		}
		out = append(out, it.Label)
	}
	return out
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type memFS map[string]bool

func (m memFS) IsFile(path string) bool       { return m[path] }
func (m memFS) ExpandHome(path string) string { return path }

var errBoom = errors.New("boom")
