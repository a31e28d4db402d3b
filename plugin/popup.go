package plugin

import (
	"fmt"

	"uriopen/uri"
)

// Resolve extracts the token under v's pointer, or its caret when the
// pointer is not over text, and validates it.
func (p *Plugin) Resolve(v View) uri.Result {
	buf := v.Buffer()
	if buf == nil {
		return uri.Result{Outcome: uri.NoToken}
	}
	ref, ok := v.PointerPosition()
	if !ok {
		ref = buf.Cursor
	}

	token, _, ok := uri.ExtractToken(buf, ref)
	if !ok {
		return uri.Result{Outcome: uri.NoToken}
	}
	return uri.Validate(token, p.context())
}

func (p *Plugin) context() uri.Context {
	ctx := uri.Context{
		Schemes:    p.opts.Schemes,
		SearchPath: p.opts.SearchPath(),
		IncludeDir: p.opts.IncludeDir,
		FS:         p.opts.FS,
	}
	if p.window != nil {
		ctx.Document = p.window.ActiveDocumentLocation()
	}
	return ctx
}

// populatePopup puts, from the top, Browse (web URIs only), Open, Copy
// and a separator in front of the existing menu entries.
func (p *Plugin) populatePopup(v View, menu Menu) {
	res := p.Resolve(v)
	if !res.OK() {
		return
	}
	target := res.URI
	label := uri.Label(target, p.opts.LabelWidth)

	menu.Prepend(MenuItem{Separator: true})
	menu.Prepend(MenuItem{
		Label:    fmt.Sprintf("Copy '%s'", label),
		Activate: func() { p.Copy(target) },
	})
	menu.Prepend(MenuItem{
		Label:    fmt.Sprintf("Open '%s'", label),
		Activate: func() { p.Open(target) },
	})
	if uri.Browsable(target) {
		menu.Prepend(MenuItem{
			Label:    fmt.Sprintf("Browse to '%s'", label),
			Activate: func() { p.Browse(target) },
		})
	}
}
