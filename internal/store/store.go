package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNoDatabase is returned by OpenExisting when the database file is absent.
var ErrNoDatabase = errors.New("database not found")

// Store provides SQLite-backed persistence for sessions, tasks and events.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite database at dbPath, creating it and its tables if
// they don't exist.
func Open(dbPath string) (*Store, error) {
	// Foreign keys stay unenforced: events may reference host session IDs
	// that were never registered here.
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenExisting opens the database only when the file already exists.
// Callers that must never create the database (the state reader, the
// telemetry emitter) use this instead of Open. Returns ErrNoDatabase when
// the file is absent.
func OpenExisting(dbPath string) (*Store, error) {
	info, err := os.Stat(dbPath)
	if err != nil || info.IsDir() {
		return nil, ErrNoDatabase
	}
	return Open(dbPath)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		sprint_id TEXT,
		current_task_id TEXT,
		current_phase TEXT,
		status TEXT NOT NULL,
		started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		ended_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		sprint_id TEXT,
		title TEXT NOT NULL,
		agent TEXT,
		status TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT,
		event_type TEXT NOT NULL,
		event_category TEXT,
		message TEXT,
		data TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);
	`
	_, err := db.Exec(schema)
	return err
}

// StartSession creates a new running session for the given sprint.
func (s *Store) StartSession(sprintID string) (*Session, error) {
	id := uuid.New().String()
	now := time.Now()

	_, err := s.db.Exec(
		`INSERT INTO sessions (id, sprint_id, status, started_at)
		 VALUES (?, ?, ?, ?)`,
		id, sprintID, SessionRunning, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	return &Session{
		ID:        id,
		SprintID:  sprintID,
		Status:    SessionRunning,
		StartedAt: now,
	}, nil
}

// GetSession retrieves a session by ID. Returns (nil, nil) when no session
// with that ID exists.
func (s *Store) GetSession(id string) (*Session, error) {
	row := s.db.QueryRow(
		`SELECT id, COALESCE(sprint_id, ''), COALESCE(current_task_id, ''),
		        COALESCE(current_phase, ''), status, started_at, ended_at
		 FROM sessions WHERE id = ?`,
		id,
	)
	return scanSession(row)
}

// CurrentSession returns the most recently started running session, or
// (nil, nil) when no session is running.
func (s *Store) CurrentSession() (*Session, error) {
	row := s.db.QueryRow(
		`SELECT id, COALESCE(sprint_id, ''), COALESCE(current_task_id, ''),
		        COALESCE(current_phase, ''), status, started_at, ended_at
		 FROM sessions
		 WHERE status = ?
		 ORDER BY started_at DESC
		 LIMIT 1`,
		SessionRunning,
	)
	return scanSession(row)
}

func scanSession(row *sql.Row) (*Session, error) {
	var sess Session
	var endedAt sql.NullTime
	err := row.Scan(&sess.ID, &sess.SprintID, &sess.CurrentTaskID,
		&sess.CurrentPhase, &sess.Status, &sess.StartedAt, &endedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	if endedAt.Valid {
		sess.EndedAt = endedAt.Time
	}
	return &sess, nil
}

// UpdateProgress records where a running session currently is. Empty
// arguments leave the corresponding column untouched.
func (s *Store) UpdateProgress(sessionID, sprintID, taskID, phase string) error {
	_, err := s.db.Exec(
		`UPDATE sessions
		 SET sprint_id       = CASE WHEN ? = '' THEN sprint_id ELSE ? END,
		     current_task_id = CASE WHEN ? = '' THEN current_task_id ELSE ? END,
		     current_phase   = CASE WHEN ? = '' THEN current_phase ELSE ? END
		 WHERE id = ?`,
		sprintID, sprintID, taskID, taskID, phase, phase, sessionID,
	)
	if err != nil {
		return fmt.Errorf("update session progress: %w", err)
	}
	return nil
}

// EndSession marks a session as finished with the given status and stamps
// ended_at. status should be SessionCompleted or SessionInterrupted.
func (s *Store) EndSession(sessionID, status string) error {
	_, err := s.db.Exec(
		`UPDATE sessions SET status = ?, ended_at = ? WHERE id = ?`,
		status, time.Now(), sessionID,
	)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

// ListSessions returns summaries of the most recent sessions with task
// progress joined in from the tasks table.
func (s *Store) ListSessions(limit int) ([]Summary, error) {
	rows, err := s.db.Query(
		`SELECT s.id, COALESCE(s.sprint_id, ''), COALESCE(s.current_phase, ''),
		        s.status, s.started_at,
		        COALESCE(SUM(CASE WHEN t.status = 'completed' THEN 1 ELSE 0 END), 0) as tasks_completed,
		        COALESCE(COUNT(t.id), 0) as tasks_total
		 FROM sessions s
		 LEFT JOIN tasks t ON s.sprint_id = t.sprint_id
		 GROUP BY s.id
		 ORDER BY s.started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.SprintID, &sum.Phase, &sum.Status,
			&sum.StartedAt, &sum.TasksCompleted, &sum.TasksTotal); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return summaries, nil
}

// UpsertTask inserts a task or updates its title, agent and status when a
// task with the same ID already exists.
func (s *Store) UpsertTask(task *Task) error {
	now := time.Now()

	result, err := s.db.Exec(
		`UPDATE tasks SET sprint_id = ?, title = ?, agent = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		task.SprintID, task.Title, task.Agent, task.Status, now, task.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}

	if rowsAffected == 0 {
		_, err = s.db.Exec(
			`INSERT INTO tasks (id, sprint_id, title, agent, status, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			task.ID, task.SprintID, task.Title, task.Agent, task.Status, now, now,
		)
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
	}

	task.UpdatedAt = now
	return nil
}

// GetTask retrieves a task by ID. Returns (nil, nil) when absent.
func (s *Store) GetTask(id string) (*Task, error) {
	row := s.db.QueryRow(
		`SELECT id, COALESCE(sprint_id, ''), title, COALESCE(agent, ''), status, created_at, updated_at
		 FROM tasks WHERE id = ?`,
		id,
	)

	var task Task
	err := row.Scan(&task.ID, &task.SprintID, &task.Title, &task.Agent,
		&task.Status, &task.CreatedAt, &task.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan task: %w", err)
	}

	return &task, nil
}

// ListTasks returns all tasks for a sprint in creation order.
func (s *Store) ListTasks(sprintID string) ([]Task, error) {
	rows, err := s.db.Query(
		`SELECT id, COALESCE(sprint_id, ''), title, COALESCE(agent, ''), status, created_at, updated_at
		 FROM tasks
		 WHERE sprint_id = ?
		 ORDER BY created_at ASC, id ASC`,
		sprintID,
	)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []Task
	for rows.Next() {
		var task Task
		if err := rows.Scan(&task.ID, &task.SprintID, &task.Title, &task.Agent,
			&task.Status, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return tasks, nil
}

// CountTasks returns completed and total task counts for a sprint.
// An empty sprintID counts across all sprints.
func (s *Store) CountTasks(sprintID string) (TaskCounts, error) {
	query := `SELECT COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
	                 COUNT(id)
	          FROM tasks`
	args := []any{}
	if sprintID != "" {
		query += ` WHERE sprint_id = ?`
		args = append(args, sprintID)
	}

	var counts TaskCounts
	if err := s.db.QueryRow(query, args...).Scan(&counts.Completed, &counts.Total); err != nil {
		return TaskCounts{}, fmt.Errorf("count tasks: %w", err)
	}
	return counts, nil
}

// InsertEvent appends a telemetry event. An empty SessionID stores NULL so
// events recorded outside any session remain queryable. The context bounds
// the insert; callers that must not block pass one with a deadline.
func (s *Store) InsertEvent(ctx context.Context, ev *Event) error {
	sessionID := sql.NullString{String: ev.SessionID, Valid: ev.SessionID != ""}
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (session_id, event_type, event_category, message, data, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, ev.Type, ev.Category, ev.Message, ev.Data, ts,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// RecentEvents returns the newest events first.
func (s *Store) RecentEvents(limit int) ([]Event, error) {
	rows, err := s.db.Query(
		`SELECT id, COALESCE(session_id, ''), event_type, COALESCE(event_category, ''),
		        COALESCE(message, ''), COALESCE(data, ''), timestamp
		 FROM events
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.SessionID, &ev.Type, &ev.Category,
			&ev.Message, &ev.Data, &ev.Timestamp); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return events, nil
}
