// init.go implements the "devteam init" command.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devteam-dev/devteam/internal/agents"
	"github.com/devteam-dev/devteam/internal/config"
	"github.com/devteam-dev/devteam/internal/detect"
	"github.com/devteam-dev/devteam/internal/store"
	"github.com/devteam-dev/devteam/internal/workspace"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize devteam in the current project",
	Long: `Initialize the .devteam/ directory: state database, configuration,
memory directory, and the agent roster for the detected stack.
Auto-detects the project language for brownfield projects or creates
minimal defaults for greenfield.`,
	RunE: runInit,
}

var initForceFlag bool

func init() {
	initCmd.Flags().BoolVar(&initForceFlag, "force", false, "Reinitialize without confirmation")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	// Check for existing .devteam/ directory.
	if workspace.Exists(dir) && !initForceFlag {
		fmt.Println("Warning: .devteam/ directory already exists.")
		fmt.Print("Reinitialize? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := workspace.EnsureLayout(dir); err != nil {
		return fmt.Errorf("creating .devteam/ layout: %w", err)
	}

	// Ensure .gitignore covers the runtime files.
	if err := ensureGitignore(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to set up .gitignore: %v\n", err)
	}

	// Detect brownfield vs greenfield.
	brownfield := detect.HasExistingCode(dir)

	cfg := config.DefaultConfig()
	cfg.Project.Name = filepath.Base(dir)

	var stackInfo detect.StackInfo
	if brownfield {
		stackInfo = detect.DetectStack(dir)
		cfg.Project.Language = stackInfo.Language
	}

	if err := config.WriteConfig(dir, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Create the state database with its schema so the hooks have a
	// canonical backend from the first session on.
	db, err := store.Open(workspace.DBPath(dir))
	if err != nil {
		return fmt.Errorf("creating state database: %w", err)
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("closing state database: %w", err)
	}

	// Materialize the agent roster for the detected stack.
	roster := detect.Roster(stackInfo)
	catalog := agents.NewCatalog(dir)
	written, err := catalog.Sync(roster, false)
	if err != nil {
		return fmt.Errorf("syncing agent roster: %w", err)
	}

	fmt.Println()
	if brownfield {
		fmt.Println("Devteam initialized (brownfield project detected)")
		fmt.Printf("  Language:        %s\n", stackInfo.Language)
		if stackInfo.Framework != "" {
			fmt.Printf("  Framework:       %s\n", stackInfo.Framework)
		}
		if stackInfo.PackageManager != "" {
			fmt.Printf("  Package Manager: %s\n", stackInfo.PackageManager)
		}
		if cmds := detect.VerifyCommands(dir, stackInfo); len(cmds) > 0 {
			fmt.Printf("  Verify:          %s\n", strings.Join(cmds, " && "))
		}
	} else {
		fmt.Println("Devteam initialized (greenfield project)")
	}
	fmt.Printf("  Agents:          %d in roster, %d written to .devteam/agents/\n", len(roster), len(written))
	fmt.Println()
	fmt.Println("Configuration written to .devteam/config.yaml")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Wire the hooks into your host runtime:")
	fmt.Println("       devteam hook session-start")
	fmt.Println("       devteam hook session-end")
	fmt.Println("  2. Run: devteam status")

	return nil
}

// ensureGitignore creates or appends to .gitignore with entries that should
// never be committed. It reads the existing file and only adds what is
// missing. Config and the agent roster ARE committed; runtime state is not.
func ensureGitignore(dir string) error {
	gitignorePath := filepath.Join(dir, ".gitignore")

	requiredEntries := []string{
		// Secrets
		".env",
		".env.*",
		".devteam/.env",
		// Devteam runtime (config.yaml and agents/ ARE committed)
		".devteam/devteam.db",
		".devteam/devteam.db-wal",
		".devteam/devteam.db-shm",
		".devteam/memory/",
		".devteam/log.jsonl",
		".devteam/autonomous-mode",
	}

	existing := ""
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existing = string(data)
	}

	var missing []string
	for _, entry := range requiredEntries {
		if !strings.Contains(existing, entry) {
			missing = append(missing, entry)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	var toAppend strings.Builder
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		toAppend.WriteString("\n")
	}
	if existing != "" {
		toAppend.WriteString("\n# Added by devteam init\n")
	}
	for _, entry := range missing {
		toAppend.WriteString(entry + "\n")
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening .gitignore: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(toAppend.String()); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	return nil
}
