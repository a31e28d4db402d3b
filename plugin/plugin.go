package plugin

import (
	"errors"
	"os"
	"time"

	"github.com/tliron/commonlog"

	"uriopen/uri"
)

var log = commonlog.GetLogger("uriopen.plugin")

// ErrNotActive is returned by Activate-dependent calls before Activate.
var ErrNotActive = errors.New("plugin is not active")

// Options configure URI validation and the actions offered for a URI.
type Options struct {
	Schemes       uri.SchemeSet
	IncludeDir    string
	LabelWidth    int
	StatusTimeout time.Duration
	// Opener is the browse command; the URI is appended.
	Opener []string

	FS uri.FileSystem
	// SearchPath is read once per popup. Nil reads PATH from the
	// environment.
	SearchPath func() []string

	Clipboard Clipboard
	Launch    Launcher
}

func DefaultOptions() Options {
	return Options{
		Schemes:       uri.DefaultSchemeSet(),
		IncludeDir:    uri.DefaultIncludeDir,
		LabelWidth:    uri.DefaultLabelWidth,
		StatusTimeout: 4 * time.Second,
		Opener:        []string{"xdg-open"},
	}
}

// Plugin adds Open/Browse/Copy entries for the URI under the pointer to
// every view's context menu.
type Plugin struct {
	opts     Options
	window   Window
	handlers *registry
}

func New(opts Options) *Plugin {
	p := &Plugin{handlers: newRegistry()}
	p.Configure(opts)
	return p
}

// Configure replaces the options. Zero fields fall back to the defaults.
func (p *Plugin) Configure(opts Options) {
	def := DefaultOptions()
	if opts.Schemes.Len() == 0 {
		opts.Schemes = def.Schemes
	}
	if opts.IncludeDir == "" {
		opts.IncludeDir = def.IncludeDir
	}
	if opts.LabelWidth <= 0 {
		opts.LabelWidth = def.LabelWidth
	}
	if opts.StatusTimeout <= 0 {
		opts.StatusTimeout = def.StatusTimeout
	}
	if len(opts.Opener) == 0 {
		opts.Opener = def.Opener
	}
	if opts.FS == nil {
		opts.FS = uri.OSFileSystem{}
	}
	if opts.SearchPath == nil {
		opts.SearchPath = func() []string { return uri.SearchPathFromEnv(os.LookupEnv) }
	}
	if opts.Launch == nil {
		opts.Launch = startDetached
	}
	p.opts = opts
}

func (p *Plugin) Options() Options {
	return p.opts
}

// Active reports whether the plugin is attached to a window.
func (p *Plugin) Active() bool {
	return p.window != nil
}

// Activate attaches to w: every current and future view gets a popup
// handler. Activating an active plugin first detaches it.
func (p *Plugin) Activate(w Window) {
	if p.window != nil {
		p.Deactivate()
	}
	p.window = w

	p.handlers.window = append(p.handlers.window,
		w.OnTabAdded(p.connectView),
		w.OnTabRemoved(p.disconnectView),
	)
	for _, v := range w.Views() {
		p.connectView(v)
	}
	log.Debugf("activated on %d view(s)", p.handlers.viewCount())
}

// Deactivate disconnects every handler the plugin registered.
func (p *Plugin) Deactivate() {
	if p.window == nil {
		return
	}
	for _, v := range append([]View(nil), p.handlers.order...) {
		p.disconnectView(v)
	}
	for _, id := range p.handlers.window {
		p.window.Disconnect(id)
	}
	p.handlers.reset()
	p.window = nil
	log.Debugf("deactivated")
}

func (p *Plugin) connectView(v View) {
	if p.handlers.hasView(v) {
		return
	}
	p.handlers.addView(v, v.OnPopulatePopup(p.populatePopup))
}

func (p *Plugin) disconnectView(v View) {
	for _, id := range p.handlers.takeView(v) {
		v.Disconnect(id)
	}
}
