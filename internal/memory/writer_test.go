package memory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteSnapshotContent(t *testing.T) {
	root := t.TempDir()
	snap := Snapshot{
		Sprint:         "SPR-1",
		Task:           "T-42",
		Phase:          "implementing",
		CompletedTasks: 3,
		TotalTasks:     10,
	}

	path, err := WriteSnapshot(root, snap, Meta{Branch: "feature/login"})
	if err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot failed: %v", err)
	}
	content := string(data)

	for _, want := range []string{"SPR-1", "T-42", "implementing", "3 / 10 tasks completed", "feature/login"} {
		if !strings.Contains(content, want) {
			t.Errorf("snapshot missing %q:\n%s", want, content)
		}
	}
}

func TestWriteSnapshotFilename(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	path, err := writeSnapshotAt(root, Snapshot{Sprint: Unknown, Task: Unknown, Phase: Unknown}, Meta{}, now)
	if err != nil {
		t.Fatalf("writeSnapshotAt failed: %v", err)
	}

	if got := filepath.Base(path); got != "session-20260314-150926.md" {
		t.Errorf("filename: got %q, want %q", got, "session-20260314-150926.md")
	}
	if !isSnapshotName(filepath.Base(path)) {
		t.Errorf("generated name %q should match snapshot pattern", filepath.Base(path))
	}
}

func TestWriteSnapshotCreatesMemoryDir(t *testing.T) {
	root := t.TempDir()

	if _, err := WriteSnapshot(root, Snapshot{Sprint: Unknown, Task: Unknown, Phase: Unknown}, Meta{}); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(root, ".devteam", "memory"))
	if err != nil || !info.IsDir() {
		t.Errorf("memory directory not created: %v", err)
	}
}

func TestWriteSnapshotSameSecondOverwrites(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	first, err := writeSnapshotAt(root, Snapshot{Sprint: "SPR-1", Task: Unknown, Phase: Unknown}, Meta{}, now)
	if err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	second, err := writeSnapshotAt(root, Snapshot{Sprint: "SPR-2", Task: Unknown, Phase: Unknown}, Meta{}, now)
	if err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	if first != second {
		t.Fatalf("same-second writes should target one file: %q vs %q", first, second)
	}

	// The later write wins in full; the file never interleaves both.
	data, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("reading snapshot failed: %v", err)
	}
	if !strings.Contains(string(data), "SPR-2") || strings.Contains(string(data), "SPR-1") {
		t.Errorf("expected second write to fully replace first:\n%s", data)
	}
}

func TestFormatSnapshotUnknownState(t *testing.T) {
	content := FormatSnapshot(Snapshot{Sprint: Unknown, Task: Unknown, Phase: Unknown}, Meta{}, time.Now())

	if !strings.Contains(content, "- **Sprint:** unknown") {
		t.Errorf("expected unknown sprint line:\n%s", content)
	}
	if !strings.Contains(content, "- **Progress:** 0 / 0 tasks completed") {
		t.Errorf("expected zero progress line:\n%s", content)
	}
	if strings.Contains(content, "**Branch:**") {
		t.Errorf("branch line should be omitted when empty:\n%s", content)
	}
	if !strings.Contains(content, "/sprint-continue") {
		t.Errorf("expected sprint-continue resume instructions:\n%s", content)
	}
}

func TestFormatSnapshotAutonomous(t *testing.T) {
	content := FormatSnapshot(Snapshot{Sprint: "SPR-1", Task: "T-1", Phase: "implementing"}, Meta{Autonomous: true}, time.Now())

	if !strings.Contains(content, "Autonomous mode:** enabled") {
		t.Errorf("expected autonomous marker:\n%s", content)
	}
	if !strings.Contains(content, "/autonomous-resume") {
		t.Errorf("expected autonomous resume instructions:\n%s", content)
	}
}
