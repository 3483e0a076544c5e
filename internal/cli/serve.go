// serve.go implements the "devteam serve" command: an MCP server over
// stdio exposing devteam state to connected agents.
package cli

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/devteam-dev/devteam/internal/mcptools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio transport)",
	Long: `Start an MCP server on stdio exposing devteam state to connected
agents: session status and history, telemetry, memory snapshots and
agent definitions.

The server works before 'devteam init' has run; tools report unknown
state until the project is initialized.

Add to the host's MCP configuration:

  {
    "mcpServers": {
      "devteam": {
        "command": "devteam",
        "args": ["serve"]
      }
    }
  }`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	return server.ServeStdio(mcptools.NewServer(root, version))
}
