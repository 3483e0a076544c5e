// messages.go defines the messages passed through the dashboard's update
// loop. Loader commands report results here; failures land in Err fields so
// the affected tab can display them without tearing down the program.
package tui

import (
	"github.com/devteam-dev/devteam/internal/memory"
	"github.com/devteam-dev/devteam/internal/store"
)

// stateLoadedMsg carries the session tab data.
type stateLoadedMsg struct {
	State       memory.Snapshot
	Branch      string
	Autonomous  bool
	Initialized bool
}

// snapshotsLoadedMsg carries the memory tab's snapshot listing.
type snapshotsLoadedMsg struct {
	Snapshots []memory.SnapshotInfo
	Err       error
}

// snapshotContentMsg carries one snapshot's content for the preview pane.
type snapshotContentMsg struct {
	Name    string
	Content string
	Err     error
}

// eventsLoadedMsg carries recent telemetry events for the events tab.
type eventsLoadedMsg struct {
	Events []store.Event
	Err    error
}

// workspaceChangedMsg reports a filesystem change under .devteam/.
type workspaceChangedMsg struct{}

// ctrlCResetMsg clears the quit confirmation after its timeout.
type ctrlCResetMsg struct{}
