// Package uri finds a URI-like token around a buffer position and turns it
// into an openable, scheme-prefixed URI.
package uri

import (
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("uriopen.uri")

const (
	fileScheme = "file://"
	wwwPrefix  = "www."

	// DefaultIncludeDir is the sibling of each search-path directory where
	// header-style tokens such as "linux/smb.h" are looked up.
	DefaultIncludeDir = "include"
)

// Context is everything Validate needs besides the token.
type Context struct {
	Schemes SchemeSet
	// Document is the location of the current document, "" when unknown.
	Document   string
	SearchPath []string
	// IncludeDir defaults to DefaultIncludeDir.
	IncludeDir string
	FS         FileSystem
}

// Validate matches token against the URI grammar and applies the fallback
// heuristics in order. It never fails; a rejection is a Result whose
// Outcome says why.
func Validate(token string, ctx Context) Result {
	res := validate(token, ctx)
	if res.OK() {
		log.Debugf("%q resolved to %q by %s", token, res.URI, res.Method)
	} else {
		log.Debugf("%q rejected: %s", token, res.Outcome)
	}
	return res
}

func validate(token string, ctx Context) Result {
	if token == "" {
		return reject(NoToken)
	}
	m, ok := parse(token)
	if !ok {
		return reject(NoGrammarMatch)
	}
	if !m.hasPath || m.path == "/" {
		return reject(EmptyComponent)
	}

	if m.hasScheme {
		if ctx.Schemes.Contains(m.scheme) {
			return resolved(m.text, ByScheme)
		}
		return reject(SchemeNotAccepted)
	}
	if strings.HasPrefix(m.path, wwwPrefix) {
		return resolved("http://"+m.text, ByWWW)
	}

	fs := ctx.FS
	if fs == nil {
		fs = OSFileSystem{}
	}
	target := fs.ExpandHome(m.text)

	if filepath.IsAbs(target) && fs.IsFile(target) {
		return resolved(fileScheme+target, ByAbsolutePath)
	}

	if doc := ctx.Document; doc != "" {
		joined := joinPath(dirName(doc), target)
		if !strings.HasPrefix(doc, fileScheme) {
			return resolved(joined, ByRemoteDocument)
		}
		if fs.IsFile(strings.Replace(joined, fileScheme, "", 1)) {
			return resolved(joined, ByDocument)
		}
	}

	include := ctx.IncludeDir
	if include == "" {
		include = DefaultIncludeDir
	}
	for _, dir := range ctx.SearchPath {
		if dir == "" {
			continue
		}
		candidate := joinPath(dirName(dir), include, target)
		if fs.IsFile(candidate) {
			return resolved(fileScheme+candidate, ByInclude)
		}
	}

	return reject(UnresolvedRelative)
}
