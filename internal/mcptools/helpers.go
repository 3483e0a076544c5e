// Package mcptools provides the MCP tool handlers that expose devteam
// state to connected agents.
//
// Each tool follows the same pattern:
//   - A struct holding the project root, created via its constructor
//   - Definition() returns the mcp.Tool schema
//   - Handle() processes the request and returns a result
//
// The tools are read-mostly: they surface session state, history and agent
// definitions. The two that write (devteam_memory_save, devteam_log_event)
// reuse the contracts of the corresponding hook commands.
package mcptools

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/devteam-dev/devteam/internal/config"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// loadConfig never fails: an unreadable config behaves like no config.
func loadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}
