// watch.go feeds fsnotify events into the Bubble Tea loop so the dashboard
// refreshes when another process writes under .devteam/.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/devteam-dev/devteam/internal/workspace"
)

// watchDebounce is how long a change burst is absorbed before reloading.
const watchDebounce = 100 * time.Millisecond

// newWorkspaceWatcher watches .devteam/ and its memory directory. Returns
// nil when watching is unavailable; the dashboard then relies on manual
// refresh. The directories may not exist before 'devteam init', so failed
// adds are retried on every reload.
func newWorkspaceWatcher(projectRoot string) *fsnotify.Watcher {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil
	}
	_ = w.Add(workspace.Root(projectRoot))
	_ = w.Add(workspace.MemoryPath(projectRoot))
	return w
}

// waitForChangeCmd blocks until a relevant filesystem event arrives, then
// absorbs the rest of the burst and reports a single change message. The
// command ends after one report; the update loop re-arms it.
func waitForChangeCmd(w *fsnotify.Watcher) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				// Skip chmod events; they carry no content change.
				if ev.Op&fsnotify.Chmod == fsnotify.Chmod {
					continue
				}
				timer := time.NewTimer(watchDebounce)
				for {
					select {
					case <-w.Events:
					case <-timer.C:
						return workspaceChangedMsg{}
					}
				}
			case _, ok := <-w.Errors:
				if !ok {
					return nil
				}
				// Transient watch errors are not fatal; keep listening.
			}
		}
	}
}
