package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/devteam-dev/devteam/internal/memory"
	"github.com/devteam-dev/devteam/internal/workspace"
)

// StatusTool handles the devteam_status MCP tool.
type StatusTool struct {
	root string
}

// NewStatusTool creates a StatusTool for the given project root.
func NewStatusTool(root string) *StatusTool {
	return &StatusTool{root: root}
}

// Definition returns the MCP tool definition for devteam_status.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("devteam_status",
		mcp.WithDescription(
			"Read the current devteam execution state: sprint, task, phase and "+
				"task progress. Fields that cannot be determined read \"unknown\". "+
				"Call this at session start or before deciding the next step.",
		),
	)
}

// Handle processes the devteam_status tool call. Reading state never fails;
// an uninitialized project reports every field as unknown.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := memory.ReadState(t.root)

	var b strings.Builder
	fmt.Fprintf(&b, "Sprint: %s\n", snap.Sprint)
	fmt.Fprintf(&b, "Task: %s\n", snap.Task)
	fmt.Fprintf(&b, "Phase: %s\n", snap.Phase)
	fmt.Fprintf(&b, "Progress: %d / %d tasks completed\n", snap.CompletedTasks, snap.TotalTasks)
	if workspace.AutonomousMode(t.root) {
		b.WriteString("Autonomous mode: enabled\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}
