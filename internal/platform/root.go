package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindBook looks upwards from startDir for a book file called name.
// It returns the absolute path of the first match.
func FindBook(startDir, name string) (string, error) {
	if name == "" {
		name = DefaultBookFile
	}
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%s not found in %s or any parent", name, abs)
}
