// Command devteam manages the .devteam/ workspace of a project driven by a
// multi-agent coding assistant: session state, memory snapshots, telemetry
// and the agent definition corpus.
//
// Usage:
//
//	devteam                   # dashboard (TTY) or help
//	devteam init              # create the .devteam/ workspace
//	devteam status            # show current session state
//	devteam hook <name>       # session lifecycle hooks (stdin JSON)
//	devteam memory <cmd>      # inspect and manage memory snapshots
//	devteam agents <cmd>      # inspect the agent corpus
//	devteam report            # summarize project activity
//	devteam serve             # start the MCP server (stdio transport)
package main

import "github.com/devteam-dev/devteam/internal/cli"

func main() {
	cli.Execute()
}
