// Package memory implements session memory snapshots: reading current
// execution state, rendering it into timestamped Markdown files under
// .devteam/memory/, and pruning old snapshots.
package memory

import (
	"github.com/devteam-dev/devteam/internal/statefile"
	"github.com/devteam-dev/devteam/internal/store"
	"github.com/devteam-dev/devteam/internal/workspace"
)

// Unknown is the placeholder recorded when a state field cannot be read.
const Unknown = "unknown"

// Snapshot is the execution state captured at session end.
type Snapshot struct {
	Sprint         string
	Task           string
	Phase          string
	CompletedTasks int
	TotalTasks     int
}

// ReadState collects a best-effort snapshot of the current execution state.
// The SQLite database is consulted first; when the database file does not
// exist, the legacy state.yaml is tried instead. Each field degrades
// individually to "unknown" (0 for counts) when it cannot be read.
// ReadState never returns an error and never creates files.
func ReadState(projectRoot string) Snapshot {
	snap := Snapshot{Sprint: Unknown, Task: Unknown, Phase: Unknown}

	db, err := store.OpenExisting(workspace.DBPath(projectRoot))
	if err != nil {
		return readLegacyState(projectRoot, snap)
	}
	defer func() { _ = db.Close() }()

	if sess, sessErr := db.CurrentSession(); sessErr == nil && sess != nil {
		if sess.SprintID != "" {
			snap.Sprint = sess.SprintID
		}
		if sess.CurrentTaskID != "" {
			snap.Task = sess.CurrentTaskID
		}
		if sess.CurrentPhase != "" {
			snap.Phase = sess.CurrentPhase
		}
	}

	if counts, countErr := db.CountTasks(""); countErr == nil {
		snap.CompletedTasks = counts.Completed
		snap.TotalTasks = counts.Total
	}

	return snap
}

// readLegacyState fills the snapshot from state.yaml where possible.
func readLegacyState(projectRoot string, snap Snapshot) Snapshot {
	legacy, err := statefile.Read(workspace.StatePath(projectRoot))
	if err != nil {
		return snap
	}

	if legacy.CurrentSprint != "" {
		snap.Sprint = legacy.CurrentSprint
	}
	if legacy.CurrentTask != "" {
		snap.Task = legacy.CurrentTask
	}
	if legacy.Phase != "" {
		snap.Phase = legacy.Phase
	}
	snap.CompletedTasks = legacy.Statistics.CompletedTasks
	snap.TotalTasks = legacy.Statistics.TotalTasks

	return snap
}
