package mcptools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/devteam-dev/devteam/internal/agents"
)

// AgentTool handles the devteam_agent MCP tool.
type AgentTool struct {
	catalog *agents.Catalog
}

// NewAgentTool creates an AgentTool backed by the project's agent catalog.
func NewAgentTool(root string) *AgentTool {
	return &AgentTool{catalog: agents.NewCatalog(root)}
}

// Definition returns the MCP tool definition for devteam_agent.
func (t *AgentTool) Definition() mcp.Tool {
	return mcp.NewTool("devteam_agent",
		mcp.WithDescription(
			"Fetch an agent definition (frontmatter and prompt body) from the "+
				"built-in corpus, with .devteam/agents/ overrides applied. Use "+
				"this to load the instructions for a specialist before "+
				"delegating work to it.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Agent name, e.g. sprint-orchestrator or test-writer"),
		),
	)
}

// Handle processes the devteam_agent tool call.
func (t *AgentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	agent, err := t.catalog.Get(name)
	if err != nil {
		if errors.Is(err, agents.ErrNotFound) {
			return mcp.NewToolResultError(t.notFoundMessage(name)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("loading agent: %v", err)), nil
	}

	return mcp.NewToolResultText(agent.Render()), nil
}

// notFoundMessage lists the known agent names so the caller can correct a
// typo without a second round-trip.
func (t *AgentTool) notFoundMessage(name string) string {
	msg := fmt.Sprintf("agent not found: %s", name)
	list, err := t.catalog.List()
	if err != nil || len(list) == 0 {
		return msg
	}
	names := make([]string, 0, len(list))
	for _, a := range list {
		names = append(names, a.Name)
	}
	return msg + "\nKnown agents: " + strings.Join(names, ", ")
}
