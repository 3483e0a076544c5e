// Package store provides SQLite-backed persistence for devteam sessions,
// tasks and events.
package store

import "time"

// Session statuses.
const (
	SessionRunning     = "running"
	SessionCompleted   = "completed"
	SessionInterrupted = "interrupted"
)

// Task statuses.
const (
	TaskPending    = "pending"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
	TaskBlocked    = "blocked"
)

// Session represents one run of the orchestrator against a project.
type Session struct {
	ID            string
	SprintID      string
	CurrentTaskID string
	CurrentPhase  string // planning, implementing, reviewing, ...
	Status        string // running, completed, interrupted
	StartedAt     time.Time
	EndedAt       time.Time // zero when still running
}

// Task represents a unit of sprint work assigned to an agent.
type Task struct {
	ID        string
	SprintID  string
	Title     string
	Agent     string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Event is a telemetry record. SessionID may be empty, in which case the
// row is stored with a NULL session reference.
type Event struct {
	ID        int64
	SessionID string
	Type      string
	Category  string
	Message   string
	Data      string // free-form, usually JSON
	Timestamp time.Time
}

// TaskCounts summarises sprint progress.
type TaskCounts struct {
	Completed int
	Total     int
}

// Summary provides a high-level view of a session for listing.
type Summary struct {
	ID             string
	SprintID       string
	Phase          string
	Status         string
	StartedAt      time.Time
	TasksCompleted int
	TasksTotal     int
}
