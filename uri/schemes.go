package uri

import "sort"

// DefaultSchemes are accepted without any filesystem verification.
var DefaultSchemes = []string{"file", "ftp", "sftp", "smb", "dav", "davs", "ssh", "http", "https"}

// SchemeSet is an immutable set of accepted URI schemes. Lookups are case
// sensitive.
type SchemeSet struct {
	m map[string]struct{}
}

func NewSchemeSet(schemes ...string) SchemeSet {
	m := make(map[string]struct{}, len(schemes))
	for _, s := range schemes {
		if s != "" {
			m[s] = struct{}{}
		}
	}
	return SchemeSet{m: m}
}

// DefaultSchemeSet returns a set holding DefaultSchemes.
func DefaultSchemeSet() SchemeSet {
	return NewSchemeSet(DefaultSchemes...)
}

func (s SchemeSet) Contains(scheme string) bool {
	_, ok := s.m[scheme]
	return ok
}

func (s SchemeSet) Len() int {
	return len(s.m)
}

// List returns the schemes in sorted order.
func (s SchemeSet) List() []string {
	out := make([]string, 0, len(s.m))
	for k := range s.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
