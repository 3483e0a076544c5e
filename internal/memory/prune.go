package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SnapshotInfo describes one snapshot file on disk.
type SnapshotInfo struct {
	Name    string
	ModTime time.Time
	Size    int64
}

// Prune removes snapshot files beyond the keep most recently modified.
// If dryRun is true, no files are deleted; the function only returns the
// names that would be removed. Running with at most keep files is a no-op.
func Prune(memoryDir string, keep int, dryRun bool) ([]string, error) {
	files, err := sortedSnapshots(memoryDir)
	if err != nil {
		return nil, err
	}

	if len(files) <= keep {
		return nil, nil
	}

	toRemove := files[:len(files)-keep]
	var pruned []string

	for _, f := range toRemove {
		if !dryRun {
			path := filepath.Join(memoryDir, f.Name)
			if rmErr := os.Remove(path); rmErr != nil {
				return pruned, fmt.Errorf("removing %s: %w", f.Name, rmErr)
			}
		}
		pruned = append(pruned, f.Name)
	}

	return pruned, nil
}

// ListSnapshots returns the snapshot files in the memory directory,
// newest first. A missing directory yields an empty list, not an error.
func ListSnapshots(memoryDir string) ([]SnapshotInfo, error) {
	files, err := sortedSnapshots(memoryDir)
	if err != nil {
		return nil, err
	}

	// sortedSnapshots orders oldest first; reverse for display.
	for i, j := 0, len(files)-1; i < j; i, j = i+1, j-1 {
		files[i], files[j] = files[j], files[i]
	}

	return files, nil
}

// Latest returns the most recently modified snapshot, or (nil, nil) when
// no snapshots exist.
func Latest(memoryDir string) (*SnapshotInfo, error) {
	files, err := sortedSnapshots(memoryDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	return &files[len(files)-1], nil
}

// sortedSnapshots lists session-*.md files ordered by modification time,
// oldest first, with the file name as tie-break for identical timestamps.
func sortedSnapshots(memoryDir string) ([]SnapshotInfo, error) {
	entries, err := os.ReadDir(memoryDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading memory directory: %w", err)
	}

	var files []SnapshotInfo
	for _, entry := range entries {
		if entry.IsDir() || !isSnapshotName(entry.Name()) {
			continue
		}
		info, infoErr := entry.Info()
		if infoErr != nil {
			continue
		}
		files = append(files, SnapshotInfo{
			Name:    entry.Name(),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Name < files[j].Name
		}
		return files[i].ModTime.Before(files[j].ModTime)
	})

	return files, nil
}

// isSnapshotName reports whether name matches session-<timestamp>.md.
func isSnapshotName(name string) bool {
	if !strings.HasPrefix(name, "session-") || !strings.HasSuffix(name, ".md") {
		return false
	}
	ts := strings.TrimSuffix(strings.TrimPrefix(name, "session-"), ".md")
	_, err := time.Parse(snapshotTimestampLayout, ts)
	return err == nil
}
