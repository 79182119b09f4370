package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestClient_Lock(t *testing.T) {
	tmpDir := t.TempDir()
	client := NewClient(tmpDir, "contacts.json.lock", nil)

	// Test 1: Acquire Lock
	unlock, err := client.Lock(context.Background())
	if err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}

	// Verify lock file exists
	lockPath := filepath.Join(tmpDir, "contacts.json.lock")
	if client.LockPath() != lockPath {
		t.Errorf("Expected lock path %s, got %s", lockPath, client.LockPath())
	}
	if _, err := os.Stat(lockPath); os.IsNotExist(err) {
		t.Error("Lock file not created")
	}

	// Test 2: Contention. A second acquisition must give up when its context expires.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := client.Lock(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded while lock is held, got %v", err)
	}

	unlock()

	// Verify lock file removed
	if _, err := os.Stat(lockPath); !os.IsNotExist(err) {
		t.Error("Lock file not removed after unlock")
	}

	// Test 3: Lock is reusable after release.
	unlock, err = client.Lock(context.Background())
	if err != nil {
		t.Fatalf("Failed to re-acquire lock: %v", err)
	}
	unlock()
}

func TestClient_LockWaitsForRelease(t *testing.T) {
	client := NewClient(t.TempDir(), "", nil)

	unlock, err := client.Lock(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	go func() {
		time.Sleep(30 * time.Millisecond)
		unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	second, err := client.Lock(ctx)
	if err != nil {
		t.Fatalf("Expected lock after release, got %v", err)
	}
	second()
}

func TestClient_InitAndCommit(t *testing.T) {
	if !IsInstalled() {
		t.Skip("git not installed")
	}

	tmpDir := t.TempDir()
	client := NewClient(tmpDir, "", nil)

	if client.IsRepo() {
		t.Fatal("fresh temp dir should not be a repository")
	}
	if err := client.Init(); err != nil {
		t.Fatalf("Failed to init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, ".git")); os.IsNotExist(err) {
		t.Error(".git directory not created")
	}
	if !client.IsRepo() {
		t.Error("expected IsRepo after init")
	}

	// Commits need an identity; keep it local to the test repo.
	if _, err := client.Run("config", "user.email", "test@example.com"); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Run("config", "user.name", "Test"); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "contacts.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	changed, err := client.HasChanges("contacts.json")
	if err != nil || !changed {
		t.Fatalf("expected untracked file to count as change, got %v (%v)", changed, err)
	}

	if err := client.Add("contacts.json"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := client.Commit(SaveMessage(0), "contacts.json"); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	changed, err = client.HasChanges("contacts.json")
	if err != nil || changed {
		t.Errorf("expected clean tree after commit, got %v (%v)", changed, err)
	}
}
