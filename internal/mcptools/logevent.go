package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/devteam-dev/devteam/internal/telemetry"
	"github.com/devteam-dev/devteam/internal/workspace"
)

// LogEventTool handles the devteam_log_event MCP tool.
type LogEventTool struct {
	root string
}

// NewLogEventTool creates a LogEventTool for the given project root.
func NewLogEventTool(root string) *LogEventTool {
	return &LogEventTool{root: root}
}

// Definition returns the MCP tool definition for devteam_log_event.
func (t *LogEventTool) Definition() mcp.Tool {
	return mcp.NewTool("devteam_log_event",
		mcp.WithDescription(
			"Record a telemetry event in the devteam database. Best-effort: when "+
				"the event cannot be recorded (no database, telemetry disabled, "+
				"empty type) the call reports \"skipped\" instead of failing.",
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Event type, e.g. task_completed or phase_change"),
		),
		mcp.WithString("category",
			mcp.Description("Event category, e.g. orchestration or agent"),
		),
		mcp.WithString("message",
			mcp.Description("Human-readable event message"),
		),
		mcp.WithString("data",
			mcp.Description("Structured payload, usually JSON"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session to attribute the event to (default: the running session)"),
		),
	)
}

// Handle processes the devteam_log_event tool call. It never returns a tool
// error: recording telemetry must not disturb the caller's primary flow, so
// every failure mode degrades to a "skipped" result.
func (t *LogEventTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eventType := req.GetString("type", "")
	if eventType == "" {
		return mcp.NewToolResultText("skipped: empty event type"), nil
	}

	cfg := loadConfig(t.root)
	if !cfg.Telemetry.Enabled {
		return mcp.NewToolResultText("skipped: telemetry disabled"), nil
	}
	if !workspace.HasDB(t.root) {
		return mcp.NewToolResultText("skipped: no database"), nil
	}

	err := telemetry.New(t.root, cfg.TelemetryTimeout()).Emit(
		req.GetString("session_id", ""),
		eventType,
		req.GetString("category", ""),
		req.GetString("message", ""),
		req.GetString("data", ""),
	)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("skipped: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("logged %s", eventType)), nil
}
