package uri

import "regexp"

// uriPattern is an informal RFC 2396 shape: optional "scheme:", up to two
// slashes, a run of URI characters, optional "#fragment". The fragment class
// has no '-' but takes '\', ']' and '^'.
var uriPattern = regexp.MustCompile(
	`((([a-zA-Z][0-9a-zA-Z+\-.]*):)?/{0,2}` +
		`([0-9a-zA-Z;:,/?@&=+$.\-_!~*'()%]+))?` +
		`(#[0-9a-zA-Z;,/?:@&=+$.\\\]^_!~*'()%]+)?`,
)

// Submatch indexes into uriPattern.
const (
	groupScheme   = 3
	groupPath     = 4
	groupFragment = 5
)

type match struct {
	text      string // whole match
	scheme    string
	hasScheme bool
	path      string
	hasPath   bool
	fragment  string
}

// parse runs a leftmost search of uriPattern over token. Every part of the
// pattern is optional, so an empty match at offset zero is possible.
func parse(token string) (match, bool) {
	idx := uriPattern.FindStringSubmatchIndex(token)
	if idx == nil {
		return match{}, false
	}
	group := func(n int) (string, bool) {
		if idx[2*n] < 0 {
			return "", false
		}
		return token[idx[2*n]:idx[2*n+1]], true
	}

	m := match{text: token[idx[0]:idx[1]]}
	m.scheme, m.hasScheme = group(groupScheme)
	m.path, m.hasPath = group(groupPath)
	m.fragment, _ = group(groupFragment)
	return m, true
}
