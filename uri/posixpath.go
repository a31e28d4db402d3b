package uri

import "strings"

// joinPath concatenates elements the way POSIX path joins do: an absolute
// element discards everything before it, and nothing is cleaned. Cleaning
// would collapse the slashes of "file:///".
func joinPath(elem ...string) string {
	var p string
	for i, e := range elem {
		switch {
		case i == 0:
			p = e
		case strings.HasPrefix(e, "/"):
			p = e
		case p == "" || strings.HasSuffix(p, "/"):
			p += e
		default:
			p += "/" + e
		}
	}
	return p
}

// dirName returns everything before the final slash, with trailing
// slashes removed unless the head is only slashes. The "scheme://" prefix
// of a URI is kept, so a document at the root of file:/// stays there.
func dirName(p string) string {
	if i := strings.Index(p, "://"); i >= 0 {
		rest := p[i+3:]
		if !strings.Contains(rest, "/") {
			return p
		}
		return p[:i+3] + posixDir(rest)
	}
	return posixDir(p)
}

func posixDir(p string) string {
	i := strings.LastIndex(p, "/") + 1
	head := p[:i]
	if head != "" && strings.Trim(head, "/") != "" {
		head = strings.TrimRight(head, "/")
	}
	return head
}
