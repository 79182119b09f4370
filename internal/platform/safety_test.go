package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveBookPath(t *testing.T) {
	t.Parallel()

	tempRoot := os.TempDir()
	devBase := filepath.Join(tempRoot, "abook-dev")

	tests := []struct {
		name      string
		userPath  string
		forceTemp bool
		expected  string
	}{
		{
			name:     "Normal Mode - Default Book",
			userPath: "",
			expected: DefaultBookFile,
		},
		{
			name:     "Normal Mode - Specific Path",
			userPath: "/some/path/book.yaml",
			expected: "/some/path/book.yaml",
		},
		{
			name:      "Dev Mode - Default Book",
			userPath:  "",
			forceTemp: true,
			expected:  filepath.Join(devBase, DefaultBookFile),
		},
		{
			name:      "Dev Mode - Relative Path Keeps File Name",
			userPath:  "data/friends.yaml",
			forceTemp: true,
			expected:  filepath.Join(devBase, "friends.yaml"),
		},
		{
			name:      "Dev Mode - Traversal Is Flattened",
			userPath:  "../../etc/contacts.json",
			forceTemp: true,
			expected:  filepath.Join(devBase, "contacts.json"),
		},
		{
			name:      "Dev Mode - Current Dir",
			userPath:  ".",
			forceTemp: true,
			expected:  filepath.Join(devBase, DefaultBookFile),
		},
		{
			name:      "Dev Mode - Exception for Temp Dir",
			userPath:  filepath.Join(tempRoot, "my-test", "contacts.json"),
			forceTemp: true,
			expected:  filepath.Join(tempRoot, "my-test", "contacts.json"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveBookPath(tt.userPath, tt.forceTemp)
			if got != tt.expected {
				t.Errorf("ResolveBookPath(%q, %v) = %q; want %q", tt.userPath, tt.forceTemp, got, tt.expected)
			}
		})
	}
}

func TestIsDevRun(t *testing.T) {
	// This test runs inside "go test", so IsDevRun() MUST return true.
	if !IsDevRun() {
		t.Errorf("IsDevRun() = false; want true inside go test")
	}
}
