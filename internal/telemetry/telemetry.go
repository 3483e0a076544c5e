// Package telemetry appends best-effort event rows to the devteam database.
//
// Telemetry must never block or break the caller's primary operation.
// A missing database or an empty event type is a normal condition and a
// silent no-op. Real insert failures (locked database, timeout) are
// returned as typed errors that callers are explicitly allowed to ignore;
// nothing in this package ever panics or blocks beyond the configured
// timeout.
package telemetry

import (
	"context"
	"time"

	"github.com/devteam-dev/devteam/internal/store"
	"github.com/devteam-dev/devteam/internal/workspace"
)

// DefaultTimeout bounds a single insert attempt.
const DefaultTimeout = 5 * time.Second

// Emitter writes events for one project. The zero value is not usable;
// construct with New.
type Emitter struct {
	root    string
	timeout time.Duration
}

// New returns an Emitter for the given project root. A non-positive
// timeout falls back to DefaultTimeout.
func New(projectRoot string, timeout time.Duration) *Emitter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Emitter{root: projectRoot, timeout: timeout}
}

// Emit records a single event. sessionID may be empty, in which case the
// most recently started running session is used; if none is running the
// event is stored without a session reference. An empty data payload is
// stored as "{}".
//
// Emit is fire-and-forget: when the database file does not exist or
// eventType is empty it returns nil without touching the filesystem, and
// callers are free to discard any error it does return.
func (e *Emitter) Emit(sessionID, eventType, category, message, data string) error {
	if eventType == "" {
		return nil
	}

	db, err := store.OpenExisting(workspace.DBPath(e.root))
	if err != nil {
		// No database yet: nothing to record, and nothing to create.
		return nil
	}
	defer func() { _ = db.Close() }()

	if sessionID == "" {
		if sess, sessErr := db.CurrentSession(); sessErr == nil && sess != nil {
			sessionID = sess.ID
		}
	}

	if data == "" {
		data = "{}"
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	return db.InsertEvent(ctx, &store.Event{
		SessionID: sessionID,
		Type:      eventType,
		Category:  category,
		Message:   message,
		Data:      data,
	})
}
