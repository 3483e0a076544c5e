// dashboard.go implements the dashboard model: three tabs over the
// project's session state, memory snapshots and telemetry events.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"github.com/devteam-dev/devteam/internal/config"
	"github.com/devteam-dev/devteam/internal/memory"
	"github.com/devteam-dev/devteam/internal/store"
	"github.com/devteam-dev/devteam/internal/workspace"
)

// Tab indices.
const (
	tabSession = iota
	tabMemory
	tabEvents
	tabCount
)

// maxDashboardWidth is the maximum width for the dashboard box.
const maxDashboardWidth = 110

// maxContentHeight is the maximum height for scrollable content areas.
const maxContentHeight = 15

// maxDashboardEvents caps the telemetry rows loaded into the events tab.
const maxDashboardEvents = 50

// snapshotItem adapts a memory.SnapshotInfo for the bubbles list.
type snapshotItem struct {
	info memory.SnapshotInfo
}

// Title returns the snapshot file name for list display.
func (i snapshotItem) Title() string {
	return i.info.Name
}

// Description returns the modification time and size for list display.
func (i snapshotItem) Description() string {
	return fmt.Sprintf("%s - %s",
		i.info.ModTime.Format("Jan 02, 2006 15:04"),
		formatSize(i.info.Size),
	)
}

// FilterValue returns the value used for filtering in the list.
func (i snapshotItem) FilterValue() string {
	return i.info.Name
}

// Dashboard is the top-level model for the devteam dashboard.
type Dashboard struct {
	cfg         *config.Config
	projectRoot string

	activeTab   int // 0=Session, 1=Memory, 2=Events
	initialized bool

	// Session tab
	state      memory.Snapshot
	branch     string
	autonomous bool

	// Memory tab
	snapshots    []memory.SnapshotInfo
	snapshotList list.Model
	previewing   bool
	previewName  string
	preview      string
	memoryError  string

	// Events tab
	events      []store.Event
	eventsError string

	// viewport is shared by the memory preview and the events tab; its
	// content is swapped on tab changes.
	viewport viewport.Model

	watcher *fsnotify.Watcher

	width  int
	height int

	ctrlCPending bool
}

// NewDashboard creates the dashboard model for the given project.
func NewDashboard(cfg *config.Config, projectRoot string) Dashboard {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	// Constrained dimensions keep rendering stable across resizes.
	contentWidth := maxDashboardWidth - 8
	contentHeight := maxContentHeight

	vp := viewport.New(contentWidth, contentHeight)

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color(primaryColor)).
		BorderForeground(lipgloss.Color(primaryColor))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("#9CA3AF"))

	l := list.New(nil, delegate, contentWidth, contentHeight)
	l.Title = "Memory Snapshots"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return Dashboard{
		cfg:         cfg,
		projectRoot: projectRoot,
		state: memory.Snapshot{
			Sprint: memory.Unknown,
			Task:   memory.Unknown,
			Phase:  memory.Unknown,
		},
		snapshotList: l,
		viewport:     vp,
		watcher:      newWorkspaceWatcher(projectRoot),
	}
}

// Init triggers the initial data load and starts filesystem watching.
func (m Dashboard) Init() tea.Cmd {
	cmds := []tea.Cmd{
		loadStateCmd(m.projectRoot),
		loadSnapshotsCmd(m.projectRoot),
		loadEventsCmd(m.projectRoot, maxDashboardEvents),
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForChangeCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the dashboard.
func (m Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While the snapshot filter is active the list owns the keyboard.
		if m.activeTab == tabMemory && !m.previewing &&
			m.snapshotList.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case KeyCtrlC:
			if m.ctrlCPending {
				m.closeWatcher()
				return m, tea.Quit
			}
			m.ctrlCPending = true
			return m, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return ctrlCResetMsg{}
			})

		case KeyQuit:
			m.closeWatcher()
			return m, tea.Quit

		case KeyTab, KeyRight:
			m.activeTab = (m.activeTab + 1) % tabCount
			m.syncViewport()
			return m, nil

		case KeyShiftTab, KeyLeft:
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			m.syncViewport()
			return m, nil

		case KeyEnter:
			if m.activeTab == tabMemory && !m.previewing {
				if item, ok := m.snapshotList.SelectedItem().(snapshotItem); ok {
					return m, loadSnapshotCmd(m.projectRoot, item.info.Name)
				}
			}
			return m, nil

		case KeyEsc:
			if m.activeTab == tabMemory && m.previewing {
				m.previewing = false
				return m, nil
			}
			// Not previewing: fall through so the list can clear its filter.

		case KeyRefresh:
			return m, m.reloadCmd()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Viewport and list dimensions stay fixed for consistent sizing.
		return m, nil

	case ctrlCResetMsg:
		m.ctrlCPending = false
		return m, nil

	case stateLoadedMsg:
		m.state = msg.State
		m.branch = msg.Branch
		m.autonomous = msg.Autonomous
		m.initialized = msg.Initialized
		return m, nil

	case snapshotsLoadedMsg:
		if msg.Err != nil {
			m.snapshots = nil
			m.memoryError = "Failed to list snapshots: " + msg.Err.Error()
		} else {
			m.snapshots = msg.Snapshots
			m.memoryError = ""
			items := make([]list.Item, len(m.snapshots))
			for i, s := range m.snapshots {
				items[i] = snapshotItem{info: s}
			}
			m.snapshotList.SetItems(items)
		}
		return m, nil

	case snapshotContentMsg:
		if msg.Err != nil {
			m.memoryError = "Failed to read snapshot: " + msg.Err.Error()
			return m, nil
		}
		m.previewing = true
		m.previewName = msg.Name
		m.preview = msg.Content
		m.memoryError = ""
		m.syncViewport()
		m.viewport.GotoTop()
		return m, nil

	case eventsLoadedMsg:
		if msg.Err != nil {
			m.events = nil
			m.eventsError = "Failed to load events: " + msg.Err.Error()
		} else {
			m.events = msg.Events
			m.eventsError = ""
		}
		if m.activeTab == tabEvents {
			m.syncViewport()
		}
		return m, nil

	case workspaceChangedMsg:
		cmds = append(cmds, m.reloadCmd())
		if m.watcher != nil {
			cmds = append(cmds, waitForChangeCmd(m.watcher))
		}
		return m, tea.Batch(cmds...)
	}

	// Pass remaining messages to the component owning the active tab.
	switch {
	case m.activeTab == tabMemory && !m.previewing:
		m.snapshotList, cmd = m.snapshotList.Update(msg)
		cmds = append(cmds, cmd)
	case m.activeTab == tabMemory || m.activeTab == tabEvents:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// syncViewport refreshes the shared viewport for whichever tab owns it.
func (m *Dashboard) syncViewport() {
	switch {
	case m.activeTab == tabMemory && m.previewing:
		m.viewport.SetContent(m.preview)
	case m.activeTab == tabEvents:
		m.viewport.SetContent(renderEvents(m.events))
	}
}

// reloadCmd reloads every tab. Watch paths are re-added because 'devteam
// init' may have created them after the watcher started.
func (m *Dashboard) reloadCmd() tea.Cmd {
	if m.watcher != nil {
		_ = m.watcher.Add(workspace.Root(m.projectRoot))
		_ = m.watcher.Add(workspace.MemoryPath(m.projectRoot))
	}
	return tea.Batch(
		loadStateCmd(m.projectRoot),
		loadSnapshotsCmd(m.projectRoot),
		loadEventsCmd(m.projectRoot, maxDashboardEvents),
	)
}

// closeWatcher stops filesystem watching. Closing also unblocks a pending
// waitForChangeCmd.
func (m *Dashboard) closeWatcher() {
	if m.watcher != nil {
		_ = m.watcher.Close()
		m.watcher = nil
	}
}

// View renders the dashboard.
func (m Dashboard) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("devteam"))
	b.WriteString(DimStyle.Render("  " + filepath.Base(m.projectRoot)))
	b.WriteString("\n\n")

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.activeTab {
	case tabSession:
		b.WriteString(m.renderSessionTab())
	case tabMemory:
		b.WriteString(m.renderMemoryTab())
	case tabEvents:
		b.WriteString(m.renderEventsTab())
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())

	// Determine box width - use max width or screen width, whichever is
	// smaller. Before the first WindowSizeMsg the width is unknown.
	boxWidth := maxDashboardWidth
	if m.width > 0 && m.width-4 < boxWidth {
		boxWidth = m.width - 4
	}

	return BoxStyle.Width(boxWidth).Render(b.String())
}

// renderTabs renders the tab bar with active highlighting.
func (m Dashboard) renderTabs() string {
	tabs := []string{"Session", "Memory", "Events"}
	var rendered []string

	for i, tab := range tabs {
		if i == m.activeTab {
			rendered = append(rendered, ActiveTabStyle.Render(tab))
		} else {
			rendered = append(rendered, InactiveTabStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderSessionTab renders the current execution state.
func (m Dashboard) renderSessionTab() string {
	var b strings.Builder

	if !m.initialized {
		b.WriteString(WarningStyle.Render("Project not initialized."))
		b.WriteString("\n")
		b.WriteString(DimStyle.Render("Run 'devteam init' to create the .devteam/ workspace."))
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("Sprint:    %s\n", m.state.Sprint))
	b.WriteString(fmt.Sprintf("Task:      %s\n", m.state.Task))
	b.WriteString(fmt.Sprintf("Phase:     %s\n", m.state.Phase))
	b.WriteString(fmt.Sprintf("Progress:  %s %d/%d tasks completed\n",
		renderProgress(m.state.CompletedTasks, m.state.TotalTasks),
		m.state.CompletedTasks, m.state.TotalTasks))
	b.WriteString("\n")

	if m.branch != "" {
		b.WriteString(fmt.Sprintf("Branch:    %s\n", m.branch))
	}
	mode := "manual"
	if m.autonomous {
		mode = SuccessStyle.Render("autonomous")
	}
	b.WriteString(fmt.Sprintf("Mode:      %s\n", mode))
	b.WriteString(fmt.Sprintf("Model:     %s\n", m.cfg.Model))

	return b.String()
}

// renderMemoryTab renders the snapshot list or the preview pane.
func (m Dashboard) renderMemoryTab() string {
	if m.memoryError != "" {
		return ErrorStyle.Render(m.memoryError)
	}

	if m.previewing {
		var b strings.Builder
		b.WriteString(SuccessStyle.Render(m.previewName))
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
		return b.String()
	}

	if len(m.snapshots) == 0 {
		return DimStyle.Render("No memory snapshots yet") + "\n\n" +
			DimStyle.Render(fmt.Sprintf(
				"Snapshots are written at session end; the newest %d are kept.",
				m.cfg.Retention()))
	}

	return m.snapshotList.View()
}

// renderEventsTab renders the recent telemetry events.
func (m Dashboard) renderEventsTab() string {
	if m.eventsError != "" {
		return ErrorStyle.Render(m.eventsError)
	}

	if len(m.events) == 0 {
		hint := "No events recorded yet"
		if !m.cfg.Telemetry.Enabled {
			hint = "Telemetry is disabled in config.yaml"
		}
		return DimStyle.Render(hint)
	}

	return m.viewport.View()
}

// renderFooter renders the footer with relevant keybindings for the
// current tab.
func (m Dashboard) renderFooter() string {
	hints := []string{"Tab/← →: Switch tabs"}

	switch m.activeTab {
	case tabSession:
		hints = append(hints, "r: Refresh")
	case tabMemory:
		if m.previewing {
			hints = append(hints, "j/k: Scroll", "Esc: Back")
		} else {
			hints = append(hints, "Enter: Preview", "/: Filter")
		}
	case tabEvents:
		hints = append(hints, "j/k: Scroll", "r: Refresh")
	}

	hintsStr := DimStyle.Render(strings.Join(hints, " · "))

	quitHint := DimStyle.Render("q: Quit")
	if m.ctrlCPending {
		quitHint = WarningStyle.Render("Press Ctrl+C again to exit")
	}

	return hintsStr + " · " + quitHint
}

// renderProgress draws a fixed-width bar for the completed/total ratio.
func renderProgress(completed, total int) string {
	const width = 20
	if total <= 0 {
		return ProgressEmptyStyle.Render(strings.Repeat("░", width))
	}
	filled := completed * width / total
	if filled > width {
		filled = width
	}
	return ProgressFullStyle.Render(strings.Repeat("█", filled)) +
		ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// renderEvents formats telemetry rows for the events viewport, newest
// first.
func renderEvents(events []store.Event) string {
	var b strings.Builder
	for _, ev := range events {
		b.WriteString(DimStyle.Render(ev.Timestamp.Local().Format("Jan 02 15:04:05")))
		b.WriteString(fmt.Sprintf("  %-20s", ev.Type))
		if ev.Category != "" {
			b.WriteString(fmt.Sprintf("  [%s]", ev.Category))
		}
		if ev.Message != "" {
			b.WriteString("  " + ev.Message)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatSize renders a byte count in the smallest readable unit.
func formatSize(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}
