// status.go implements the "devteam status" command showing session state.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devteam-dev/devteam/internal/git"
	"github.com/devteam-dev/devteam/internal/memory"
	"github.com/devteam-dev/devteam/internal/store"
	"github.com/devteam-dev/devteam/internal/workspace"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current session state",
	Long: `Display the current sprint, task, phase and progress, plus the
task list for the active sprint when the state database is available.`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}

	snap := memory.ReadState(root)

	// Get current branch (best-effort).
	branch, branchErr := git.CurrentBranch(root)

	fmt.Println("Devteam Status")
	if branchErr == nil && branch != "" {
		fmt.Printf("Branch: %s\n", branch)
	}
	if workspace.AutonomousMode(root) {
		fmt.Println("Autonomous mode: enabled")
	}
	fmt.Println()

	fmt.Printf("  Sprint:    %s\n", snap.Sprint)
	fmt.Printf("  Task:      %s\n", snap.Task)
	fmt.Printf("  Phase:     %s\n", snap.Phase)
	fmt.Printf("  Progress:  %d/%d tasks completed\n", snap.CompletedTasks, snap.TotalTasks)

	printSprintTasks(root)

	return nil
}

// printSprintTasks lists the active sprint's tasks when the database and a
// running session exist. Absence of either is not an error; the summary
// above already degraded to whatever state could be read.
func printSprintTasks(root string) {
	db, err := store.OpenExisting(workspace.DBPath(root))
	if err != nil {
		return
	}
	defer func() { _ = db.Close() }()

	sess, err := db.CurrentSession()
	if err != nil || sess == nil || sess.SprintID == "" {
		return
	}

	tasks, err := db.ListTasks(sess.SprintID)
	if err != nil || len(tasks) == 0 {
		return
	}

	fmt.Println()
	for _, task := range tasks {
		fmt.Printf("  %-8s  %-12s  %s", task.ID, task.Status, task.Title)
		if task.Agent != "" {
			fmt.Printf("  [%s]", task.Agent)
		}
		fmt.Println()
	}
}
