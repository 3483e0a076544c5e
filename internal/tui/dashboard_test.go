package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devteam-dev/devteam/internal/config"
	"github.com/devteam-dev/devteam/internal/memory"
	"github.com/devteam-dev/devteam/internal/store"
	"github.com/devteam-dev/devteam/internal/workspace"
)

// newTestDashboard builds a dashboard over an empty temp project and closes
// its watcher when the test finishes.
func newTestDashboard(t *testing.T) Dashboard {
	t.Helper()
	m := NewDashboard(config.DefaultConfig(), t.TempDir())
	t.Cleanup(func() { m.closeWatcher() })
	return m
}

// update runs one step of the model and asserts the returned type.
func update(t *testing.T, m Dashboard, msg tea.Msg) (Dashboard, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	d, ok := next.(Dashboard)
	if !ok {
		t.Fatalf("Update returned %T, want Dashboard", next)
	}
	return d, cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestTabCycling(t *testing.T) {
	m := newTestDashboard(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabMemory {
		t.Errorf("after right: tab %d, want %d", m.activeTab, tabMemory)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != tabEvents {
		t.Errorf("after tab: tab %d, want %d", m.activeTab, tabEvents)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabSession {
		t.Errorf("cycling should wrap to the first tab, got %d", m.activeTab)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.activeTab != tabEvents {
		t.Errorf("backward cycling should wrap to the last tab, got %d", m.activeTab)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestDashboard(t)

	_, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("got %T, want tea.QuitMsg", cmd())
	}
}

func TestCtrlCNeedsSecondPress(t *testing.T) {
	m := newTestDashboard(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.ctrlCPending {
		t.Error("first Ctrl+C should set the pending flag")
	}
	if cmd == nil {
		t.Error("first Ctrl+C should schedule the confirmation reset")
	}

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("second Ctrl+C should produce a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("got %T, want tea.QuitMsg", cmd())
	}
}

func TestCtrlCResetClearsPending(t *testing.T) {
	m := newTestDashboard(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	m, _ = update(t, m, ctrlCResetMsg{})
	if m.ctrlCPending {
		t.Error("reset message should clear the pending flag")
	}

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("Ctrl+C after reset should schedule a new confirmation")
	}
	if _, ok := cmd().(tea.QuitMsg); ok {
		t.Error("Ctrl+C after reset must not quit immediately")
	}
}

func TestSessionTabUninitialized(t *testing.T) {
	m := newTestDashboard(t)

	view := m.View()
	for _, want := range []string{"unknown", "devteam init", "0/0 tasks completed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSessionTabRendersState(t *testing.T) {
	m := newTestDashboard(t)

	m, _ = update(t, m, stateLoadedMsg{
		State: memory.Snapshot{
			Sprint:         "SPR-7",
			Task:           "T-3",
			Phase:          "review",
			CompletedTasks: 2,
			TotalTasks:     8,
		},
		Branch:      "feature/login",
		Autonomous:  true,
		Initialized: true,
	})

	view := m.View()
	for _, want := range []string{"SPR-7", "T-3", "review", "2/8 tasks completed", "feature/login", "autonomous"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "devteam init") {
		t.Error("initialized project should not prompt for init")
	}
}

func TestMemoryTabListsSnapshots(t *testing.T) {
	m := newTestDashboard(t)

	m, _ = update(t, m, snapshotsLoadedMsg{Snapshots: []memory.SnapshotInfo{
		{Name: "session-20250102-090000.md", ModTime: time.Now(), Size: 512},
		{Name: "session-20250101-090000.md", ModTime: time.Now().Add(-time.Hour), Size: 2048},
	}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})

	view := m.View()
	for _, want := range []string{"session-20250102-090000.md", "session-20250101-090000.md"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestMemoryTabEmptyHint(t *testing.T) {
	m := newTestDashboard(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	view := m.View()
	if !strings.Contains(view, "No memory snapshots yet") {
		t.Error("empty memory tab should say so")
	}
	if !strings.Contains(view, "newest 10 are kept") {
		t.Error("empty memory tab should mention the retention count")
	}
}

func TestEnterPreviewsSnapshot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(workspace.MemoryPath(root), 0755); err != nil {
		t.Fatal(err)
	}
	name := "session-20250101-120000.md"
	content := "# Session Memory\n\nSprint: SPR-1\n"
	if err := os.WriteFile(filepath.Join(workspace.MemoryPath(root), name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewDashboard(config.DefaultConfig(), root)
	t.Cleanup(func() { m.closeWatcher() })

	listMsg := loadSnapshotsCmd(root)()
	snaps, ok := listMsg.(snapshotsLoadedMsg)
	if !ok {
		t.Fatalf("got %T, want snapshotsLoadedMsg", listMsg)
	}
	if len(snaps.Snapshots) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(snaps.Snapshots))
	}

	m, _ = update(t, m, snaps)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on a snapshot should load its content")
	}
	m, _ = update(t, m, cmd())
	if !m.previewing {
		t.Fatal("snapshot content should open the preview")
	}

	view := m.View()
	if !strings.Contains(view, name) {
		t.Errorf("preview missing snapshot name %q", name)
	}
	if !strings.Contains(view, "Sprint: SPR-1") {
		t.Error("preview missing snapshot content")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.previewing {
		t.Error("esc should close the preview")
	}
}

func TestEventsTabShowsError(t *testing.T) {
	m := newTestDashboard(t)

	m, _ = update(t, m, eventsLoadedMsg{Err: errors.New("boom")})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})

	if !strings.Contains(m.View(), "Failed to load events: boom") {
		t.Error("events tab should surface the load error")
	}
}

func TestEventsTabDisabledHint(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Telemetry.Enabled = false
	m := NewDashboard(cfg, t.TempDir())
	t.Cleanup(func() { m.closeWatcher() })

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if !strings.Contains(m.View(), "Telemetry is disabled") {
		t.Error("empty events tab should mention disabled telemetry")
	}
}

func TestEventsTabRendersRows(t *testing.T) {
	m := newTestDashboard(t)

	m, _ = update(t, m, eventsLoadedMsg{Events: []store.Event{
		{Type: "task_completed", Category: "progress", Message: "T-1 done", Timestamp: time.Now()},
	}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})

	view := m.View()
	for _, want := range []string{"task_completed", "[progress]", "T-1 done"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestWorkspaceChangedReloads(t *testing.T) {
	m := newTestDashboard(t)

	_, cmd := update(t, m, workspaceChangedMsg{})
	if cmd == nil {
		t.Fatal("workspace change should trigger a reload")
	}
}

func TestLoadStateCmdUninitialized(t *testing.T) {
	msg := loadStateCmd(t.TempDir())()
	st, ok := msg.(stateLoadedMsg)
	if !ok {
		t.Fatalf("got %T, want stateLoadedMsg", msg)
	}
	if st.Initialized {
		t.Error("empty directory should not count as initialized")
	}
	if st.State.Sprint != memory.Unknown || st.State.Task != memory.Unknown {
		t.Errorf("state should degrade to unknown, got %+v", st.State)
	}
}

func TestLoadEventsCmdNoDatabase(t *testing.T) {
	msg := loadEventsCmd(t.TempDir(), 10)()
	ev, ok := msg.(eventsLoadedMsg)
	if !ok {
		t.Fatalf("got %T, want eventsLoadedMsg", msg)
	}
	if ev.Err != nil {
		t.Errorf("missing database should not be an error, got %v", ev.Err)
	}
	if len(ev.Events) != 0 {
		t.Errorf("got %d events, want 0", len(ev.Events))
	}
}

func TestLoadEventsCmdReadsRecent(t *testing.T) {
	root := t.TempDir()
	if err := workspace.EnsureLayout(root); err != nil {
		t.Fatal(err)
	}
	db, err := store.Open(workspace.DBPath(root))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	for _, typ := range []string{"session_started", "task_completed"} {
		if err := db.InsertEvent(context.Background(), &store.Event{Type: typ}); err != nil {
			t.Fatalf("InsertEvent failed: %v", err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	msg := loadEventsCmd(root, 10)()
	ev, ok := msg.(eventsLoadedMsg)
	if !ok {
		t.Fatalf("got %T, want eventsLoadedMsg", msg)
	}
	if ev.Err != nil {
		t.Fatalf("unexpected error: %v", ev.Err)
	}
	if len(ev.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(ev.Events))
	}
	if ev.Events[0].Type != "task_completed" {
		t.Errorf("events should be newest first, got %s", ev.Events[0].Type)
	}
}

func TestWaitForChangeReportsWrite(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(workspace.Root(root), 0755); err != nil {
		t.Fatal(err)
	}

	w := newWorkspaceWatcher(root)
	if w == nil {
		t.Skip("filesystem watching unavailable")
	}
	defer func() { _ = w.Close() }()

	done := make(chan tea.Msg, 1)
	go func() { done <- waitForChangeCmd(w)() }()

	if err := os.WriteFile(filepath.Join(workspace.Root(root), "state.yaml"), []byte("phase: x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-done:
		if _, ok := msg.(workspaceChangedMsg); !ok {
			t.Errorf("got %T, want workspaceChangedMsg", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported within 2s")
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.n); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestRenderEventsEmpty(t *testing.T) {
	if got := renderEvents(nil); got != "" {
		t.Errorf("renderEvents(nil) = %q, want empty", got)
	}
}
