package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/devteam-dev/devteam/internal/workspace"
)

// snapshotTimestampLayout is the format used for snapshot file names.
const snapshotTimestampLayout = "20060102-150405"

// Meta holds ambient context recorded alongside the state fields.
type Meta struct {
	Branch     string
	Autonomous bool
}

// FormatSnapshot renders the snapshot as a Markdown document.
func FormatSnapshot(snap Snapshot, meta Meta, now time.Time) string {
	var b strings.Builder

	b.WriteString("# Session Memory\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString("\n")

	b.WriteString("## Current State\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "- **Sprint:** %s\n", snap.Sprint)
	fmt.Fprintf(&b, "- **Task:** %s\n", snap.Task)
	fmt.Fprintf(&b, "- **Phase:** %s\n", snap.Phase)
	fmt.Fprintf(&b, "- **Progress:** %d / %d tasks completed\n", snap.CompletedTasks, snap.TotalTasks)

	if meta.Branch != "" {
		fmt.Fprintf(&b, "- **Branch:** %s\n", meta.Branch)
	}
	if meta.Autonomous {
		b.WriteString("- **Autonomous mode:** enabled\n")
	}
	b.WriteString("\n")

	b.WriteString("## Resuming\n")
	b.WriteString("\n")
	b.WriteString("To pick up where this session left off:\n")
	b.WriteString("\n")
	if meta.Autonomous {
		b.WriteString("- Run `/autonomous-resume` in the host session to continue without prompts\n")
	} else {
		b.WriteString("- Run `/sprint-continue` in the host session to continue the sprint\n")
	}
	b.WriteString("- `devteam status` shows the live session state\n")
	b.WriteString("\n")
	b.WriteString("This file is a point-in-time snapshot. The database under\n")
	b.WriteString(".devteam/ remains the source of truth for session state.\n")

	return b.String()
}

// WriteSnapshot renders the snapshot and writes it to
// .devteam/memory/session-<timestamp>.md, creating the memory directory if
// absent. Returns the path of the written file.
//
// Filenames carry second granularity: two writes within the same second
// target the same file and the later one replaces the earlier.
func WriteSnapshot(projectRoot string, snap Snapshot, meta Meta) (string, error) {
	return writeSnapshotAt(projectRoot, snap, meta, time.Now())
}

func writeSnapshotAt(projectRoot string, snap Snapshot, meta Meta, now time.Time) (string, error) {
	memoryDir := workspace.MemoryPath(projectRoot)
	if err := os.MkdirAll(memoryDir, 0755); err != nil {
		return "", fmt.Errorf("creating memory directory: %w", err)
	}

	name := fmt.Sprintf("session-%s.md", now.Format(snapshotTimestampLayout))
	path := filepath.Join(memoryDir, name)

	content := FormatSnapshot(snap, meta, now)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing snapshot file: %w", err)
	}

	return path, nil
}
