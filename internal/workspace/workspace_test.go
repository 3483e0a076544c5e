package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureLayout_CreatesDirectories(t *testing.T) {
	root := t.TempDir()

	if err := EnsureLayout(root); err != nil {
		t.Fatalf("EnsureLayout failed: %v", err)
	}

	for _, dir := range []string{Root(root), MemoryPath(root), AgentsPath(root)} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("expected %s to exist: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("expected %s to be a directory", dir)
		}
	}
}

func TestEnsureLayout_Idempotent(t *testing.T) {
	root := t.TempDir()

	if err := EnsureLayout(root); err != nil {
		t.Fatalf("first EnsureLayout failed: %v", err)
	}

	// A file placed in memory/ must survive a second call.
	marker := filepath.Join(MemoryPath(root), "session-20250101-120000.md")
	if err := os.WriteFile(marker, []byte("snapshot"), 0644); err != nil {
		t.Fatalf("writing marker: %v", err)
	}

	if err := EnsureLayout(root); err != nil {
		t.Fatalf("second EnsureLayout failed: %v", err)
	}

	if _, err := os.Stat(marker); err != nil {
		t.Errorf("marker file lost after re-run: %v", err)
	}
}

func TestExists(t *testing.T) {
	root := t.TempDir()

	if Exists(root) {
		t.Error("Exists = true before init")
	}

	if err := EnsureLayout(root); err != nil {
		t.Fatalf("EnsureLayout failed: %v", err)
	}

	if !Exists(root) {
		t.Error("Exists = false after init")
	}
}

func TestHasDB(t *testing.T) {
	root := t.TempDir()

	if HasDB(root) {
		t.Error("HasDB = true with no database file")
	}

	if err := EnsureLayout(root); err != nil {
		t.Fatalf("EnsureLayout failed: %v", err)
	}
	if err := os.WriteFile(DBPath(root), []byte{}, 0644); err != nil {
		t.Fatalf("writing db file: %v", err)
	}

	if !HasDB(root) {
		t.Error("HasDB = false with database file present")
	}
}

func TestAutonomousMode_Sentinel(t *testing.T) {
	root := t.TempDir()

	if AutonomousMode(root) {
		t.Error("autonomous mode reported on before sentinel exists")
	}

	if err := SetAutonomousMode(root, true); err != nil {
		t.Fatalf("enabling autonomous mode: %v", err)
	}
	if !AutonomousMode(root) {
		t.Error("autonomous mode reported off after enabling")
	}

	// Content is irrelevant, only presence matters.
	if err := os.WriteFile(SentinelPath(root), []byte("anything at all"), 0644); err != nil {
		t.Fatalf("rewriting sentinel: %v", err)
	}
	if !AutonomousMode(root) {
		t.Error("autonomous mode ignored a non-empty sentinel")
	}

	if err := SetAutonomousMode(root, false); err != nil {
		t.Fatalf("disabling autonomous mode: %v", err)
	}
	if AutonomousMode(root) {
		t.Error("autonomous mode reported on after disabling")
	}

	// Disabling twice must not error.
	if err := SetAutonomousMode(root, false); err != nil {
		t.Errorf("disabling twice: %v", err)
	}
}
