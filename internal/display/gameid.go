package display

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultGameID derives a game identity from the executable name: the base
// name in lower case, without extension.
func DefaultGameID() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return GameIDFromPath(exe)
}

// GameIDFromPath returns the lower-cased base name of path without its
// extension. Both slash styles are accepted.
func GameIDFromPath(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")
	base := filepath.Base(filepath.FromSlash(path))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ToLower(base)
}
