// agents.go implements the "devteam agents" command group for listing,
// inspecting and syncing the agent definition corpus.
package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/devteam-dev/devteam/internal/agents"
	"github.com/devteam-dev/devteam/internal/detect"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Manage the agent definition corpus",
	Long: `List, inspect and sync the built-in agent definitions. Files under
.devteam/agents/ override built-in agents of the same name.`,
}

var agentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known agents",
	RunE:  runAgentsList,
}

var agentsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print an agent definition",
	Args:  cobra.ExactArgs(1),
	RunE:  runAgentsShow,
}

var agentsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Write the project's agent roster to .devteam/agents/",
	Long: `Materialize the roster for the detected stack into .devteam/agents/
in canonical frontmatter form, and rewrite existing override files whose
frontmatter has drifted from the canonical key order.`,
	RunE: runAgentsSync,
}

var (
	agentsSyncForce bool
	agentsSyncAll   bool
)

func init() {
	agentsSyncCmd.Flags().BoolVar(&agentsSyncForce, "force", false, "Overwrite existing files in .devteam/agents/")
	agentsSyncCmd.Flags().BoolVar(&agentsSyncAll, "all", false, "Sync the entire corpus instead of the detected roster")

	agentsCmd.AddCommand(agentsListCmd)
	agentsCmd.AddCommand(agentsShowCmd)
	agentsCmd.AddCommand(agentsSyncCmd)
}

func runAgentsList(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	all, err := agents.NewCatalog(root).List()
	if err != nil {
		return fmt.Errorf("listing agents: %w", err)
	}

	roster := make(map[string]bool)
	info := detectStack(root)
	for _, name := range detect.Roster(info) {
		roster[name] = true
	}

	for _, a := range all {
		marker := " "
		if roster[a.Name] {
			marker = "*"
		}
		model := a.Model
		if model == "" {
			model = "dynamic"
		}
		source := a.Category
		if a.Override {
			source = "project"
		}
		fmt.Printf("%s %-26s %-8s %-14s %s\n", marker, a.Name, model, source, a.Description)
	}

	fmt.Println()
	if info.Language != "" {
		fmt.Printf("* = roster for this project (%s)\n", info.Language)
	} else {
		fmt.Println("* = base roster (no stack detected)")
	}

	return nil
}

func runAgentsShow(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	agent, err := agents.NewCatalog(root).Get(args[0])
	if err != nil {
		return err
	}

	fmt.Print(agent.Render())
	return nil
}

func runAgentsSync(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	var names []string
	if agentsSyncAll {
		builtin, err := agents.Builtin()
		if err != nil {
			return fmt.Errorf("loading corpus: %w", err)
		}
		for _, a := range builtin {
			names = append(names, a.Name)
		}
		sort.Strings(names)
	} else {
		names = detect.Roster(detectStack(root))
	}

	catalog := agents.NewCatalog(root)

	written, err := catalog.Sync(names, agentsSyncForce)
	if err != nil {
		return fmt.Errorf("syncing agents: %w", err)
	}

	rewritten, err := catalog.Normalize()
	if err != nil {
		return fmt.Errorf("normalizing agents: %w", err)
	}

	fmt.Printf("Synced %d agent(s) to .devteam/agents/ (%d already present)\n",
		len(written), len(names)-len(written))
	if len(rewritten) > 0 {
		fmt.Printf("Normalized %d existing file(s)\n", len(rewritten))
	}

	return nil
}

// detectStack returns stack info for the project, or the zero value for a
// greenfield directory.
func detectStack(root string) detect.StackInfo {
	if !detect.HasExistingCode(root) {
		return detect.StackInfo{}
	}
	return detect.DetectStack(root)
}
