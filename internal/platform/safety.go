package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultBookFile is the book used when no path is given.
const DefaultBookFile = "contacts.json"

// IsDevRun checks if the current process is running via `go run` or `go test`.
// Both build their binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolveBookPath returns the book file to use. With forceTemp, a path outside
// the temp directory is re-rooted into <tmp>/abook-dev, keeping its file name.
func ResolveBookPath(userPath string, forceTemp bool) string {
	if userPath == "" {
		userPath = DefaultBookFile
	}
	if !forceTemp {
		return userPath
	}

	// Paths already inside the temp directory (t.TempDir()) are trusted.
	clean := filepath.Clean(userPath)
	if filepath.IsAbs(clean) {
		rel, err := filepath.Rel(os.TempDir(), clean)
		if err == nil && !strings.HasPrefix(rel, "..") {
			return clean
		}
	}

	name := filepath.Base(clean)
	if name == "." || name == ".." || name == string(os.PathSeparator) {
		name = DefaultBookFile
	}
	return filepath.Join(os.TempDir(), "abook-dev", name)
}
