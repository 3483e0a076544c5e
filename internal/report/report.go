// Package report aggregates a project's workspace into one summary: session
// state, recent sessions and telemetry, memory snapshots and the operational
// log. Every source is read best-effort; whatever cannot be read is simply
// absent from the report.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/devteam-dev/devteam/internal/config"
	"github.com/devteam-dev/devteam/internal/git"
	"github.com/devteam-dev/devteam/internal/log"
	"github.com/devteam-dev/devteam/internal/memory"
	"github.com/devteam-dev/devteam/internal/store"
	"github.com/devteam-dev/devteam/internal/workspace"
)

const (
	// sessionLimit caps the sessions section.
	sessionLimit = 5
	// commitLimit caps the commits section.
	commitLimit = 5
	// eventSample is how many recent telemetry rows feed the type tally.
	eventSample = 200
)

// Report holds the aggregated workspace data behind one rendered summary.
type Report struct {
	Project        string
	Branch         string
	Autonomous     bool
	State          memory.Snapshot
	Sessions       []store.Summary // newest first
	Commits        []string        // git log --oneline, newest first
	EventTypes     map[string]int  // telemetry tally by event type
	EventsSampled  int             // rows behind the tally
	Snapshots      int
	LatestSnapshot string
	LogEntries     int
	LastDuration   time.Duration // wall time of the most recent session
}

// Generate gathers the report data for a project. It never fails: sources
// that cannot be read leave their sections empty.
func Generate(cfg *config.Config, projectRoot string) *Report {
	r := &Report{
		Project:    cfg.Project.Name,
		Autonomous: workspace.AutonomousMode(projectRoot),
		State:      memory.ReadState(projectRoot),
	}
	if r.Project == "" {
		r.Project = filepath.Base(projectRoot)
	}

	if branch, err := git.CurrentBranch(projectRoot); err == nil {
		r.Branch = branch
	}
	if commits, err := git.RecentCommits(projectRoot, commitLimit); err == nil {
		r.Commits = commits
	}

	if db, err := store.OpenExisting(workspace.DBPath(projectRoot)); err == nil {
		if sessions, err := db.ListSessions(sessionLimit); err == nil {
			r.Sessions = sessions
		}
		if events, err := db.RecentEvents(eventSample); err == nil && len(events) > 0 {
			r.EventsSampled = len(events)
			r.EventTypes = make(map[string]int, len(events))
			for _, ev := range events {
				r.EventTypes[ev.Type]++
			}
		}
		_ = db.Close()
	}

	if snaps, err := memory.ListSnapshots(workspace.MemoryPath(projectRoot)); err == nil && len(snaps) > 0 {
		r.Snapshots = len(snaps)
		r.LatestSnapshot = snaps[0].Name
	}

	if entries, err := log.NewLogger(projectRoot).ReadAll(); err == nil && len(entries) > 0 {
		r.LogEntries = len(entries)
		r.LastDuration = lastSessionDuration(entries)
	}

	return r
}

// Format renders the report as a terminal-friendly summary.
func Format(r *Report) string {
	var b strings.Builder

	b.WriteString("========================================\n")
	b.WriteString("  Devteam Project Report\n")
	b.WriteString("========================================\n")
	b.WriteString("\n")

	fmt.Fprintf(&b, "Project:     %s\n", r.Project)
	if r.Branch != "" {
		fmt.Fprintf(&b, "Branch:      %s\n", r.Branch)
	}
	mode := "manual"
	if r.Autonomous {
		mode = "autonomous"
	}
	fmt.Fprintf(&b, "Mode:        %s\n", mode)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Sprint:      %s\n", r.State.Sprint)
	fmt.Fprintf(&b, "Task:        %s\n", r.State.Task)
	fmt.Fprintf(&b, "Phase:       %s\n", r.State.Phase)
	fmt.Fprintf(&b, "Progress:    %d / %d tasks completed\n", r.State.CompletedTasks, r.State.TotalTasks)
	b.WriteString("\n")

	if len(r.Sessions) > 0 {
		fmt.Fprintf(&b, "Sessions (%d most recent):\n", len(r.Sessions))
		for _, sum := range r.Sessions {
			sprint := sum.SprintID
			if sprint == "" {
				sprint = "-"
			}
			fmt.Fprintf(&b, "  - %s  %-10s  %-11s  %d/%d tasks  %s\n",
				shortID(sum.ID), sprint, sum.Status,
				sum.TasksCompleted, sum.TasksTotal,
				sum.StartedAt.Format("2006-01-02 15:04"))
		}
		b.WriteString("\n")
	}

	if len(r.Commits) > 0 {
		b.WriteString("Commits:\n")
		for _, c := range r.Commits {
			fmt.Fprintf(&b, "  - %s\n", c)
		}
		b.WriteString("\n")
	}

	if r.EventsSampled > 0 {
		fmt.Fprintf(&b, "Events (last %d):\n", r.EventsSampled)
		for _, name := range sortedTypes(r.EventTypes) {
			fmt.Fprintf(&b, "  %-24s %d\n", name, r.EventTypes[name])
		}
		b.WriteString("\n")
	}

	if r.Snapshots > 0 {
		fmt.Fprintf(&b, "Memory:      %d snapshot(s), latest %s\n", r.Snapshots, r.LatestSnapshot)
	}
	if r.LogEntries > 0 {
		fmt.Fprintf(&b, "Hook log:    %d entries\n", r.LogEntries)
	}
	if r.LastDuration > 0 {
		fmt.Fprintf(&b, "Duration:    %s (last session)\n", formatDuration(r.LastDuration))
	}

	b.WriteString("========================================\n")

	return b.String()
}

// Write renders the report to .devteam/report.md. The workspace directory
// must already exist.
func Write(projectRoot string, r *Report) error {
	if err := os.WriteFile(workspace.ReportPath(projectRoot), []byte(Format(r)), 0644); err != nil {
		return fmt.Errorf("writing report file: %w", err)
	}
	return nil
}

// lastSessionDuration derives the wall time of the most recent session from
// the operational log: the last session_start entry paired with the last
// entry recorded after it.
func lastSessionDuration(entries []log.Entry) time.Duration {
	var start, end time.Time
	for _, e := range entries {
		if e.Time.IsZero() {
			continue
		}
		if e.Event == log.EventSessionStart {
			start = e.Time
			end = e.Time
			continue
		}
		if !start.IsZero() {
			end = e.Time
		}
	}
	if start.IsZero() || end.Before(start) {
		return 0
	}
	return end.Sub(start)
}

// formatDuration renders a duration such as "5m 32s" or "1h 12m 5s".
// Sub-second durations are shown as "< 1s".
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "< 1s"
	}

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

func sortedTypes(tally map[string]int) []string {
	names := make([]string, 0, len(tally))
	for name := range tally {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// shortID truncates a session UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
