// Package hooks implements the lifecycle commands the host runtime invokes
// around a session: a briefing at session start, a memory snapshot at
// session end, and ad-hoc event logging in between.
//
// Hooks are best-effort by contract. A project without .devteam/, a missing
// database, or a malformed stdin payload all degrade to quiet no-ops; the
// only failure a hook reports is a snapshot write that did not land.
package hooks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/devteam-dev/devteam/internal/config"
	"github.com/devteam-dev/devteam/internal/git"
	"github.com/devteam-dev/devteam/internal/log"
	"github.com/devteam-dev/devteam/internal/memory"
	"github.com/devteam-dev/devteam/internal/telemetry"
	"github.com/devteam-dev/devteam/internal/workspace"
)

// Input is the JSON payload the host pipes to hook commands on stdin.
type Input struct {
	SessionID        string `json:"sessionId"`
	WorkingDirectory string `json:"workingDirectory"`
}

// ReadInput parses the hook payload from r. An absent or malformed payload
// yields the zero Input; trigger data never fails a hook.
func ReadInput(r io.Reader) Input {
	data, err := io.ReadAll(r)
	if err != nil {
		return Input{}
	}
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return Input{}
	}
	return in
}

// Root resolves the project root for a hook invocation: the payload's
// workingDirectory when present, the process working directory otherwise.
func (in Input) Root() string {
	if in.WorkingDirectory != "" {
		return in.WorkingDirectory
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// SessionStart prints a short resumption briefing for the host to inject
// into the new session's context and records a session_start event.
// Projects without .devteam/ produce no output.
func SessionStart(w io.Writer, root string, in Input) {
	if !workspace.Exists(root) {
		return
	}

	snap := memory.ReadState(root)

	fmt.Fprintln(w, "## Session Context")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- Sprint: %s\n", snap.Sprint)
	fmt.Fprintf(w, "- Task: %s\n", snap.Task)
	fmt.Fprintf(w, "- Phase: %s\n", snap.Phase)
	fmt.Fprintf(w, "- Progress: %d / %d tasks completed\n", snap.CompletedTasks, snap.TotalTasks)
	if workspace.AutonomousMode(root) {
		fmt.Fprintln(w, "- Autonomous mode: enabled")
	}

	if latest, err := memory.Latest(workspace.MemoryPath(root)); err == nil && latest != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Previous session memory: .devteam/memory/%s\n", latest.Name)
	}

	_ = log.NewLogger(root).Append(log.Entry{Event: log.EventSessionStart, SessionID: in.SessionID})
	emit(root, in.SessionID, "session_start", "session started")
}

// SessionEnd snapshots the current state into .devteam/memory/, prunes old
// snapshots, and records a session_end event. Only the snapshot write can
// fail the hook; pruning and telemetry stay best-effort.
func SessionEnd(w io.Writer, root string, in Input) error {
	if !workspace.Exists(root) {
		return nil
	}

	snap := memory.ReadState(root)

	meta := memory.Meta{Autonomous: workspace.AutonomousMode(root)}
	if branch, err := git.CurrentBranch(root); err == nil {
		meta.Branch = branch
	}

	path, err := memory.WriteSnapshot(root, snap, meta)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Saved session memory to %s\n", path)

	ops := log.NewLogger(root)
	_ = ops.Append(log.Entry{Event: log.EventSnapshotWritten, SessionID: in.SessionID, Snapshot: filepath.Base(path)})

	cfg := loadConfig(root)
	if pruned, err := memory.Prune(workspace.MemoryPath(root), cfg.Retention(), false); err == nil && len(pruned) > 0 {
		fmt.Fprintf(w, "Pruned %d old snapshot(s)\n", len(pruned))
		_ = ops.Append(log.Entry{Event: log.EventSnapshotsPruned, SessionID: in.SessionID, Pruned: len(pruned)})
	}

	_ = ops.Append(log.Entry{Event: log.EventSessionEnd, SessionID: in.SessionID})
	emit(root, in.SessionID, "session_end", "session ended")
	return nil
}

// LogEvent forwards one event to the telemetry sink. A missing database,
// empty event type, or insert failure all exit quietly.
func LogEvent(root string, in Input, eventType, category, message, data string) {
	if eventType == "" {
		return
	}
	cfg := loadConfig(root)
	if !cfg.Telemetry.Enabled {
		return
	}
	_ = log.NewLogger(root).Append(log.Entry{Event: log.EventRecorded, SessionID: in.SessionID, Type: eventType})
	_ = telemetry.New(root, cfg.TelemetryTimeout()).Emit(in.SessionID, eventType, category, message, data)
}

func emit(root, sessionID, eventType, message string) {
	cfg := loadConfig(root)
	if !cfg.Telemetry.Enabled {
		return
	}
	_ = telemetry.New(root, cfg.TelemetryTimeout()).Emit(sessionID, eventType, "hook", message, "")
}

// loadConfig never fails: an unreadable config behaves like no config.
func loadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}
