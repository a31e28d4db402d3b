package editor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/tliron/commonlog"

	"uriopen/buffer"
	"uriopen/clipboardx"
	"uriopen/config"
	"uriopen/highlight"
	"uriopen/plugin"
	"uriopen/ui"
)

var log = commonlog.GetLogger("uriopen.editor")

// ErrUnsupportedLocation marks locations that are not local files.
var ErrUnsupportedLocation = errors.New("only local files can be loaded")

const fileScheme = "file://"

var _ plugin.Window = (*Editor)(nil)

type Editor struct {
	screen    tcell.Screen
	cfg       *config.Config
	docs      []*docView
	activeTab int

	tabBar    *ui.TabBar
	statusBar *ui.StatusBar
	menu      *ui.ContextMenu
	highlight *highlight.Highlighter

	plugin     *plugin.Plugin
	clipboard  plugin.Clipboard
	launch     plugin.Launcher
	configPath string
	watcher    *config.Watcher

	lastHandler plugin.HandlerID
	tabAdded    handlerList[func(plugin.View)]
	tabRemoved  handlerList[func(plugin.View)]

	rightDown bool
	mouseDown bool
	quit      bool

	// mouseScrolling keeps the wheel's scroll position until the caret
	// moves again.
	mouseScrolling bool
}

type Option func(*Editor)

// WithClipboard replaces the system clipboard.
func WithClipboard(c plugin.Clipboard) Option {
	return func(e *Editor) { e.clipboard = c }
}

// WithLauncher replaces how the browse command is started.
func WithLauncher(l plugin.Launcher) Option {
	return func(e *Editor) { e.launch = l }
}

// WithConfigPath makes the editor reload settings when path changes.
func WithConfigPath(path string) Option {
	return func(e *Editor) { e.configPath = path }
}

// callbackEvent runs fn on the event loop.
type callbackEvent struct {
	tcell.EventTime
	fn func()
}

func New(cfg *config.Config, opts ...Option) *Editor {
	e := &Editor{
		cfg:       cfg,
		tabBar:    ui.NewTabBar(),
		statusBar: ui.NewStatusBar(),
		highlight: highlight.New(),
		clipboard: &clipboardx.Writer{Terminal: os.Stdout},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.tabBar.OnSwitch = e.switchTab
	e.tabBar.OnClose = e.closeTab
	e.plugin = plugin.New(e.pluginOptions())
	return e
}

func (e *Editor) pluginOptions() plugin.Options {
	return plugin.Options{
		Schemes:       e.cfg.SchemeSet(),
		IncludeDir:    e.cfg.IncludeDir,
		LabelWidth:    e.cfg.LabelWidth,
		StatusTimeout: e.cfg.StatusTimeout(),
		Opener:        e.cfg.Opener,
		Clipboard:     e.clipboard,
		Launch:        e.launch,
	}
}

// Run opens files and processes terminal events until the user quits.
func (e *Editor) Run(files []string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	screen.EnableMouse()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	e.attach(screen)
	defer e.detach()

	for _, f := range files {
		if err := e.open(f); err != nil {
			e.flash(fmt.Sprintf("Error: %s", err))
		}
	}
	if len(e.docs) == 0 {
		e.addDoc(buffer.NewBuffer(e.cfg.TabSize))
	}

	for !e.quit {
		e.render()
		e.handleEvent(screen.PollEvent())
	}
	return nil
}

// attach binds the editor to screen and activates the URI plugin.
func (e *Editor) attach(screen tcell.Screen) {
	e.screen = screen
	e.plugin.Activate(e)
	if e.configPath != "" {
		w, err := config.Watch(e.configPath, func(cfg *config.Config) {
			e.post(func() { e.applyConfig(cfg) })
		})
		if err != nil {
			log.Warningf("not watching %s: %s", e.configPath, err)
		} else {
			e.watcher = w
		}
	}
}

func (e *Editor) detach() {
	e.plugin.Deactivate()
	if e.watcher != nil {
		e.watcher.Close()
	}
	if e.screen != nil {
		e.screen.Clear()
		e.screen.Fini()
	}
}

func (e *Editor) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case nil:
		// The screen was finalized.
		e.quit = true
	case *tcell.EventResize:
		e.screen.Sync()
	case *tcell.EventKey:
		e.handleKey(ev)
	case *tcell.EventMouse:
		e.handleMouse(ev)
	case *callbackEvent:
		ev.fn()
	}
}

// post queues fn to run on the event loop.
func (e *Editor) post(fn func()) {
	ev := &callbackEvent{fn: fn}
	ev.SetEventNow()
	if err := e.screen.PostEvent(ev); err != nil {
		log.Warningf("dropped callback: %s", err)
	}
}

func (e *Editor) applyConfig(cfg *config.Config) {
	e.cfg = cfg
	e.plugin.Configure(e.pluginOptions())
	for _, v := range e.docs {
		v.buf.TabSize = cfg.LanguageTabSize(v.buf.Language)
	}
	log.Infof("settings reloaded")
}

func (e *Editor) flash(msg string) {
	id := e.statusBar.Push(msg)
	e.After(e.cfg.StatusTimeout(), func() { e.statusBar.Remove(id) })
}

func (e *Editor) newHandlerID() plugin.HandlerID {
	e.lastHandler++
	return e.lastHandler
}

// localPath maps a location to an absolute path. A fragment is dropped
// when the path with it does not exist.
func localPath(location string) (string, error) {
	p := location
	if strings.HasPrefix(p, fileScheme) {
		p = strings.TrimPrefix(p, fileScheme)
		if i := strings.IndexByte(p, '#'); i > 0 {
			if _, err := os.Stat(p); err != nil {
				p = p[:i]
			}
		}
	} else if strings.Contains(p, "://") {
		return "", fmt.Errorf("%s: %w", location, ErrUnsupportedLocation)
	}
	return filepath.Abs(p)
}

func (e *Editor) open(location string) error {
	if e.ActivateDocument(location) {
		return nil
	}
	return e.LoadLocation(location)
}

func (e *Editor) addDoc(buf *buffer.Buffer) *docView {
	v := newDocView(e, buf)
	e.docs = append(e.docs, v)
	e.tabBar.AddTab(buf.Location())
	e.activeTab = len(e.docs) - 1
	for _, fn := range e.tabAdded.fns() {
		fn(v)
	}
	return v
}

func (e *Editor) switchTab(idx int) {
	if idx < 0 || idx >= len(e.docs) {
		return
	}
	e.activeTab = idx
	e.tabBar.Active = idx
	e.mouseScrolling = false
}

func (e *Editor) nextTab() {
	if len(e.docs) > 1 {
		e.switchTab((e.activeTab + 1) % len(e.docs))
	}
}

func (e *Editor) prevTab() {
	if len(e.docs) > 1 {
		e.switchTab((e.activeTab - 1 + len(e.docs)) % len(e.docs))
	}
}

func (e *Editor) closeTab(idx int) {
	if idx < 0 || idx >= len(e.docs) {
		return
	}
	v := e.docs[idx]
	e.docs = append(e.docs[:idx], e.docs[idx+1:]...)
	e.tabBar.RemoveTab(idx)
	e.activeTab = e.tabBar.Active
	e.highlight.Invalidate(highlightKey(v.buf))
	for _, fn := range e.tabRemoved.fns() {
		fn(v)
	}
	if len(e.docs) == 0 {
		e.quit = true
	}
}

func (e *Editor) closeView(v *docView) {
	for i, d := range e.docs {
		if d == v {
			e.closeTab(i)
			return
		}
	}
}

func (e *Editor) activeDoc() *docView {
	if e.activeTab >= 0 && e.activeTab < len(e.docs) {
		return e.docs[e.activeTab]
	}
	return nil
}

// Views returns the open views in tab order.
func (e *Editor) Views() []plugin.View {
	views := make([]plugin.View, len(e.docs))
	for i, v := range e.docs {
		views[i] = v
	}
	return views
}

func (e *Editor) OnTabAdded(fn func(plugin.View)) plugin.HandlerID {
	id := e.newHandlerID()
	e.tabAdded.add(id, fn)
	return id
}

func (e *Editor) OnTabRemoved(fn func(plugin.View)) plugin.HandlerID {
	id := e.newHandlerID()
	e.tabRemoved.add(id, fn)
	return id
}

func (e *Editor) Disconnect(id plugin.HandlerID) {
	if !e.tabAdded.remove(id) {
		e.tabRemoved.remove(id)
	}
}

func (e *Editor) ActiveDocumentLocation() string {
	if v := e.activeDoc(); v != nil {
		return v.buf.Location()
	}
	return ""
}

func (e *Editor) ActivateDocument(location string) bool {
	p, err := localPath(location)
	if err != nil {
		return false
	}
	for i, v := range e.docs {
		if v.buf.Path == p {
			e.switchTab(i)
			return true
		}
	}
	return false
}

// LoadLocation opens a local file in a new tab. Other locations are handed
// to the browse command.
func (e *Editor) LoadLocation(location string) error {
	p, err := localPath(location)
	if errors.Is(err, ErrUnsupportedLocation) {
		return e.plugin.Browse(location)
	}
	if err != nil {
		return err
	}
	buf, err := buffer.NewBufferFromFile(p, e.cfg.TabSize)
	if err != nil {
		return err
	}
	buf.Language = highlight.DetectLanguage(p)
	buf.TabSize = e.cfg.LanguageTabSize(buf.Language)
	e.addDoc(buf)
	log.Infof("loaded %s", buf.Location())
	if buf.ReadOnly {
		e.flash("Binary file opened as read-only")
	}
	return nil
}

func (e *Editor) StatusBar() plugin.StatusBar {
	return e.statusBar
}

// After runs fn on the event loop once d has elapsed.
func (e *Editor) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { e.post(fn) })
}
