package uri

import (
	"os"
	"os/user"
	"strings"
)

// FileSystem answers the only questions the resolver asks of the disk.
type FileSystem interface {
	// IsFile reports whether path names an existing regular file.
	IsFile(path string) bool
	// ExpandHome replaces a leading "~" or "~name" with a home directory.
	ExpandHome(path string) string
}

// OSFileSystem is the FileSystem backed by the local disk.
type OSFileSystem struct{}

func (OSFileSystem) IsFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func (OSFileSystem) ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	name, _, _ := strings.Cut(path[1:], "/")

	var home string
	if name == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		home = h
	} else {
		u, err := user.Lookup(name)
		if err != nil {
			return path
		}
		home = u.HomeDir
	}
	expanded := strings.TrimRight(home, "/") + path[1+len(name):]
	if expanded == "" {
		return "/"
	}
	return expanded
}
