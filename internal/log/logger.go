// Package log appends operational events to .devteam/log.jsonl, one JSON
// object per line. The hooks write here so that a session leaves a trace
// even when the state database is unavailable.
package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/devteam-dev/devteam/internal/workspace"
)

// Event name constants.
const (
	EventSessionStart    = "session_start"
	EventSessionEnd      = "session_end"
	EventSnapshotWritten = "snapshot_written"
	EventSnapshotsPruned = "snapshots_pruned"
	EventRecorded        = "event_recorded"
)

// Entry is a single line of the operational log.
type Entry struct {
	Time      time.Time              `json:"time"`
	Event     string                 `json:"event"`
	SessionID string                 `json:"session,omitempty"`
	Snapshot  string                 `json:"snapshot,omitempty"`
	Pruned    int                    `json:"pruned,omitempty"`
	Type      string                 `json:"type,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Logger writes append-only JSONL entries to the operational log.
type Logger struct {
	path string
	mu   sync.Mutex
}

// NewLogger returns a Logger for the project's .devteam/log.jsonl. The
// .devteam/ directory must already exist; an existing log is never truncated.
func NewLogger(projectRoot string) *Logger {
	return &Logger{path: workspace.LogPath(projectRoot)}
}

// Append writes one Entry as a JSON line. A zero Time is set to
// time.Now().UTC(). The file is opened in append mode and closed per call.
func (l *Logger) Append(entry Entry) error {
	if entry.Time.IsZero() {
		entry.Time = time.Now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal log entry: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write log entry: %w", err)
	}

	return nil
}

// ReadAll parses every entry in the log. A missing file yields an empty
// slice, not an error; blank lines are skipped.
func (l *Logger) ReadAll() ([]Entry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("parse log line %d: %w", lineNum, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	return entries, nil
}
