// hook.go implements the "devteam hook" command group invoked by the host
// runtime at session lifecycle points. Hook commands are best-effort: they
// exit 0 on missing state so they never break the host's own flow.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/devteam-dev/devteam/internal/hooks"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Session lifecycle hooks for the host runtime",
	Long: `Commands the host runtime wires into its session lifecycle. Each
reads the host's JSON payload ({"sessionId": ..., "workingDirectory": ...})
from stdin when one is piped in.`,
}

var hookSessionStartCmd = &cobra.Command{
	Use:   "session-start",
	Short: "Print a resumption briefing for a new session",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := readHookInput()
		hooks.SessionStart(os.Stdout, in.Root(), in)
		return nil
	},
}

var hookSessionEndCmd = &cobra.Command{
	Use:   "session-end",
	Short: "Snapshot session state into .devteam/memory/",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := readHookInput()
		return hooks.SessionEnd(os.Stdout, in.Root(), in)
	},
}

var hookLogEventCmd = &cobra.Command{
	Use:   "log-event [type] [category] [message] [data]",
	Short: "Record a best-effort telemetry event",
	Args:  cobra.MaximumNArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := readHookInput()
		hooks.LogEvent(in.Root(), in, arg(args, 0), arg(args, 1), arg(args, 2), arg(args, 3))
		return nil
	},
}

func init() {
	hookCmd.AddCommand(hookSessionStartCmd)
	hookCmd.AddCommand(hookSessionEndCmd)
	hookCmd.AddCommand(hookLogEventCmd)
}

// readHookInput parses the host payload from stdin. Interactive terminals
// are skipped so a hand-run hook command does not hang waiting for EOF.
func readHookInput() hooks.Input {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return hooks.Input{}
	}
	return hooks.ReadInput(os.Stdin)
}

// arg returns args[i] or "" when absent. Missing positionals degrade to
// empty strings, which the logger treats as its skip condition.
func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
