package mcptools

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates the MCP server with every devteam tool registered for
// the given project root. Tools open the database per call, so there is no
// cleanup to run on shutdown.
func NewServer(root, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"devteam",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	status := NewStatusTool(root)
	s.AddTool(status.Definition(), status.Handle)

	sessions := NewSessionsTool(root)
	s.AddTool(sessions.Definition(), sessions.Handle)

	logEvent := NewLogEventTool(root)
	s.AddTool(logEvent.Definition(), logEvent.Handle)

	memorySave := NewMemorySaveTool(root)
	s.AddTool(memorySave.Definition(), memorySave.Handle)

	agent := NewAgentTool(root)
	s.AddTool(agent.Definition(), agent.Handle)

	return s
}

// serverInstructions tells the connected AI when to reach for each tool.
func serverInstructions() string {
	return `You have access to devteam, a development team orchestration server.

devteam tracks sprint execution in a local .devteam/ directory: which
sprint, task and phase are active, how many tasks are done, what happened
in previous sessions, and which specialist agents are available.

## When to use the tools

- devteam_status: call at the start of a session and whenever you need to
  know where the sprint stands before deciding what to do next. Fields
  read "unknown" when the project has no recorded state yet; that is a
  normal answer, not an error.
- devteam_sessions: call when the user asks what happened previously or
  when you need history beyond the current session.
- devteam_agent: call before delegating work to a specialist (for example
  sprint-orchestrator, test-writer, security-auditor) to load its
  instructions. Project overrides under .devteam/agents/ win over the
  built-in definitions.
- devteam_memory_save: call before ending a work session or after
  completing significant work, so the next session can resume from a
  snapshot.
- devteam_log_event: call after notable milestones (task completed, phase
  changed, review finished). Logging is best-effort: a "skipped" result
  means the event had nowhere to go and you should continue normally.

## Rules

- Never treat a "skipped" telemetry result or an "unknown" status field as
  a failure. Both are expected on fresh or uninitialized projects.
- devteam never runs your tasks; it records and reports them. Generate the
  work yourself and use the tools for state, memory and telemetry.`
}
