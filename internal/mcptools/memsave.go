package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/devteam-dev/devteam/internal/git"
	"github.com/devteam-dev/devteam/internal/memory"
	"github.com/devteam-dev/devteam/internal/workspace"
)

// MemorySaveTool handles the devteam_memory_save MCP tool.
type MemorySaveTool struct {
	root string
}

// NewMemorySaveTool creates a MemorySaveTool for the given project root.
func NewMemorySaveTool(root string) *MemorySaveTool {
	return &MemorySaveTool{root: root}
}

// Definition returns the MCP tool definition for devteam_memory_save.
func (t *MemorySaveTool) Definition() mcp.Tool {
	return mcp.NewTool("devteam_memory_save",
		mcp.WithDescription(
			"Write a session memory snapshot of the current execution state to "+
				".devteam/memory/ and prune old snapshots. Use when significant "+
				"progress should survive the session.",
		),
	)
}

// Handle processes the devteam_memory_save tool call. Pruning stays
// best-effort; only a failed snapshot write surfaces as a tool error.
func (t *MemorySaveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !workspace.Exists(t.root) {
		return mcp.NewToolResultError(".devteam/ not found. Run 'devteam init' first"), nil
	}

	snap := memory.ReadState(t.root)

	meta := memory.Meta{Autonomous: workspace.AutonomousMode(t.root)}
	if branch, err := git.CurrentBranch(t.root); err == nil {
		meta.Branch = branch
	}

	path, err := memory.WriteSnapshot(t.root, snap, meta)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("writing snapshot: %v", err)), nil
	}

	cfg := loadConfig(t.root)
	pruned, _ := memory.Prune(workspace.MemoryPath(t.root), cfg.Retention(), false)

	msg := fmt.Sprintf("Saved session memory to %s", path)
	if len(pruned) > 0 {
		msg += fmt.Sprintf("\nPruned %d old snapshot(s)", len(pruned))
	}
	return mcp.NewToolResultText(msg), nil
}
