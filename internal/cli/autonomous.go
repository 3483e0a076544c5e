// autonomous.go implements the "devteam autonomous" command toggling the
// presence-only sentinel file the hooks and dashboard report.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devteam-dev/devteam/internal/workspace"
)

var autonomousCmd = &cobra.Command{
	Use:   "autonomous [on|off]",
	Short: "Show or toggle autonomous mode",
	Long: `Autonomous mode is a sentinel file (.devteam/autonomous-mode) whose
presence tells the host runtime to proceed without human checkpoints.
Only existence matters; the file carries no content.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAutonomous,
}

func runAutonomous(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		if workspace.AutonomousMode(root) {
			fmt.Println("Autonomous mode: enabled")
		} else {
			fmt.Println("Autonomous mode: disabled")
		}
		return nil
	}

	switch args[0] {
	case "on":
		if err := workspace.SetAutonomousMode(root, true); err != nil {
			return err
		}
		fmt.Println("Autonomous mode enabled.")
	case "off":
		if err := workspace.SetAutonomousMode(root, false); err != nil {
			return err
		}
		fmt.Println("Autonomous mode disabled.")
	default:
		return fmt.Errorf("unknown argument %q (want on or off)", args[0])
	}

	return nil
}
