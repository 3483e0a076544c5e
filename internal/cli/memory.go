// memory.go implements the "devteam memory" command group for session
// memory snapshots.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/devteam-dev/devteam/internal/config"
	"github.com/devteam-dev/devteam/internal/git"
	"github.com/devteam-dev/devteam/internal/memory"
	"github.com/devteam-dev/devteam/internal/workspace"
)

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Manage session memory snapshots",
	Long: `List, read, write and prune the markdown snapshots under
.devteam/memory/ that carry session state across sessions.`,
}

var memoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots, newest first",
	RunE:  runMemoryList,
}

var memoryShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a snapshot (latest when no name is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMemoryShow,
}

var memoryWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write a snapshot of the current state",
	RunE:  runMemoryWrite,
}

var memoryPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old snapshots",
	Long: `Remove snapshots beyond the configured retention count (default 10).
Use --keep to override the count and --dry-run to preview.`,
	RunE: runMemoryPrune,
}

var (
	memoryKeepFlag   int
	memoryDryRunFlag bool
)

func init() {
	memoryPruneCmd.Flags().IntVar(&memoryKeepFlag, "keep", 0, "Keep the last N snapshots (0 = use configured retention)")
	memoryPruneCmd.Flags().BoolVar(&memoryDryRunFlag, "dry-run", false, "Preview what would be removed without deleting")

	memoryCmd.AddCommand(memoryListCmd)
	memoryCmd.AddCommand(memoryShowCmd)
	memoryCmd.AddCommand(memoryWriteCmd)
	memoryCmd.AddCommand(memoryPruneCmd)
}

func runMemoryList(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}

	snaps, err := memory.ListSnapshots(workspace.MemoryPath(root))
	if err != nil {
		return fmt.Errorf("listing snapshots: %w", err)
	}

	if len(snaps) == 0 {
		fmt.Println("No snapshots yet. One is written by 'devteam hook session-end'.")
		return nil
	}

	for _, s := range snaps {
		fmt.Printf("  %-28s  %8d  %s\n", s.Name, s.Size, s.ModTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("%d snapshot(s).\n", len(snaps))

	return nil
}

func runMemoryShow(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	memoryDir := workspace.MemoryPath(root)

	name := ""
	if len(args) == 1 {
		// Snapshots are addressed by bare file name only.
		name = filepath.Base(args[0])
	} else {
		latest, err := memory.Latest(memoryDir)
		if err != nil {
			return fmt.Errorf("finding latest snapshot: %w", err)
		}
		if latest == nil {
			return fmt.Errorf("no snapshots found. Write one with 'devteam memory write'")
		}
		name = latest.Name
	}

	data, err := os.ReadFile(filepath.Join(memoryDir, name))
	if err != nil {
		return fmt.Errorf("reading snapshot %s: %w", name, err)
	}

	fmt.Print(string(data))
	return nil
}

func runMemoryWrite(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}

	snap := memory.ReadState(root)

	meta := memory.Meta{Autonomous: workspace.AutonomousMode(root)}
	if branch, branchErr := git.CurrentBranch(root); branchErr == nil {
		meta.Branch = branch
	}

	path, err := memory.WriteSnapshot(root, snap, meta)
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	fmt.Printf("Saved session memory to %s\n", path)
	return nil
}

func runMemoryPrune(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}

	keep := memoryKeepFlag
	if keep <= 0 {
		cfg, cfgErr := config.Load(root)
		if cfgErr != nil {
			return fmt.Errorf("reading config: %w", cfgErr)
		}
		keep = cfg.Retention()
	}

	pruned, err := memory.Prune(workspace.MemoryPath(root), keep, memoryDryRunFlag)
	if err != nil {
		return fmt.Errorf("pruning snapshots: %w", err)
	}

	if len(pruned) == 0 {
		fmt.Println("No snapshots to prune.")
		return nil
	}

	verb := "Removed"
	if memoryDryRunFlag {
		verb = "Would remove"
	}
	for _, name := range pruned {
		fmt.Printf("  %s %s\n", verb, name)
	}
	fmt.Printf("%s %d snapshot(s).\n", verb, len(pruned))

	return nil
}

// projectRoot returns the working directory after checking it has been
// initialized.
func projectRoot() (string, error) {
	root, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	if !workspace.Exists(root) {
		return "", fmt.Errorf(".devteam/ not found. Run 'devteam init' first")
	}
	return root, nil
}
