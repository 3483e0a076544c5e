package mcptools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/devteam-dev/devteam/internal/store"
	"github.com/devteam-dev/devteam/internal/workspace"
)

// defaultSessionLimit caps devteam_sessions output when no limit is given.
const defaultSessionLimit = 10

// SessionsTool handles the devteam_sessions MCP tool.
type SessionsTool struct {
	root string
}

// NewSessionsTool creates a SessionsTool for the given project root.
func NewSessionsTool(root string) *SessionsTool {
	return &SessionsTool{root: root}
}

// Definition returns the MCP tool definition for devteam_sessions.
func (t *SessionsTool) Definition() mcp.Tool {
	return mcp.NewTool("devteam_sessions",
		mcp.WithDescription(
			"List recent devteam sessions with sprint, phase, status and task "+
				"progress, newest first.",
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of sessions to return (default 10)"),
		),
	)
}

// Handle processes the devteam_sessions tool call.
func (t *SessionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := intArg(req, "limit", defaultSessionLimit)
	if limit <= 0 {
		limit = defaultSessionLimit
	}

	db, err := store.OpenExisting(workspace.DBPath(t.root))
	if err != nil {
		if errors.Is(err, store.ErrNoDatabase) {
			return mcp.NewToolResultText("No sessions recorded yet."), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("opening database: %v", err)), nil
	}
	defer func() { _ = db.Close() }()

	sessions, err := db.ListSessions(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing sessions: %v", err)), nil
	}
	if len(sessions) == 0 {
		return mcp.NewToolResultText("No sessions recorded yet."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recent sessions (%d):\n\n", len(sessions))
	for _, sum := range sessions {
		sprint := sum.SprintID
		if sprint == "" {
			sprint = "-"
		}
		phase := sum.Phase
		if phase == "" {
			phase = "-"
		}
		fmt.Fprintf(&b, "- %s  %-10s  %-12s  %-11s  %d/%d tasks  %s\n",
			shortID(sum.ID), sprint, phase, sum.Status,
			sum.TasksCompleted, sum.TasksTotal,
			sum.StartedAt.Format("2006-01-02 15:04"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

// shortID truncates a session UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
