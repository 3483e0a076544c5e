// commands.go provides the Bubble Tea commands that load dashboard data.
package tui

import (
	"errors"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devteam-dev/devteam/internal/git"
	"github.com/devteam-dev/devteam/internal/memory"
	"github.com/devteam-dev/devteam/internal/store"
	"github.com/devteam-dev/devteam/internal/workspace"
)

// loadStateCmd reads the execution state shown on the session tab.
// State reading never fails; branch and mode are best-effort extras.
func loadStateCmd(projectRoot string) tea.Cmd {
	return func() tea.Msg {
		msg := stateLoadedMsg{
			State:       memory.ReadState(projectRoot),
			Autonomous:  workspace.AutonomousMode(projectRoot),
			Initialized: workspace.Exists(projectRoot),
		}
		if branch, err := git.CurrentBranch(projectRoot); err == nil {
			msg.Branch = branch
		}
		return msg
	}
}

// loadSnapshotsCmd lists memory snapshots, newest first.
func loadSnapshotsCmd(projectRoot string) tea.Cmd {
	return func() tea.Msg {
		snaps, err := memory.ListSnapshots(workspace.MemoryPath(projectRoot))
		if err != nil {
			return snapshotsLoadedMsg{Err: err}
		}
		return snapshotsLoadedMsg{Snapshots: snaps}
	}
}

// loadSnapshotCmd reads one snapshot file for the preview pane.
func loadSnapshotCmd(projectRoot, name string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(filepath.Join(workspace.MemoryPath(projectRoot), name))
		if err != nil {
			return snapshotContentMsg{Name: name, Err: err}
		}
		return snapshotContentMsg{Name: name, Content: string(data)}
	}
}

// loadEventsCmd fetches recent telemetry events from the state database.
// A missing database is a normal condition and yields an empty tab.
func loadEventsCmd(projectRoot string, limit int) tea.Cmd {
	return func() tea.Msg {
		db, err := store.OpenExisting(workspace.DBPath(projectRoot))
		if err != nil {
			if errors.Is(err, store.ErrNoDatabase) {
				return eventsLoadedMsg{}
			}
			return eventsLoadedMsg{Err: err}
		}
		defer func() { _ = db.Close() }()

		events, err := db.RecentEvents(limit)
		if err != nil {
			return eventsLoadedMsg{Err: err}
		}
		return eventsLoadedMsg{Events: events}
	}
}
