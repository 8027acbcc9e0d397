package emitter

import (
	"path/filepath"
	"strings"
)

// NormalizePath converts an OS path into the form used as a key in the source
// map: on platforms with a backslash separator all backslashes become forward
// slashes, elsewhere the path is returned unchanged.
func NormalizePath(path string) string {
	return normalizePath(path, filepath.Separator)
}

func normalizePath(path string, sep rune) string {
	if sep != '\\' {
		return path
	}
	return strings.ReplaceAll(path, `\`, "/")
}
