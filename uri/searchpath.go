package uri

import "path/filepath"

// SearchPathEnv is the variable holding the executable search path.
const SearchPathEnv = "PATH"

// ParseSearchPath splits a PATH-style value on the platform list separator.
// Order is preserved; an empty value yields an empty path.
func ParseSearchPath(value string) []string {
	return filepath.SplitList(value)
}

// SearchPathFromEnv reads SearchPathEnv through lookup. A missing variable
// is an empty search path, not an error.
func SearchPathFromEnv(lookup func(string) (string, bool)) []string {
	if lookup == nil {
		return nil
	}
	value, ok := lookup(SearchPathEnv)
	if !ok {
		return nil
	}
	return ParseSearchPath(value)
}
