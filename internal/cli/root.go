// Package cli defines Cobra command definitions for the devteam CLI.
// This file contains the root command, version flag, and help output.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devteam-dev/devteam/internal/config"
	"github.com/devteam-dev/devteam/internal/tui"
)

var version = "dev" // set via ldflags at build time

var rootCmd = &cobra.Command{
	Use:   "devteam",
	Short: "Session state and agent corpus tooling for AI dev teams",
	Long: `Devteam owns the .devteam/ directory of a project driven by a
multi-agent coding assistant: session state in SQLite, markdown memory
snapshots between sessions, best-effort telemetry, and the agent
definition corpus the host runtime loads.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .devteam/.env feeds the DEVTEAM_* overrides read at config load.
		if wd, err := os.Getwd(); err == nil {
			_ = config.LoadEnv(wd)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch the dashboard if TTY,
		// show help otherwise.
		if !tui.IsTTY() {
			return cmd.Help()
		}

		projectRoot, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		cfg, err := config.Load(projectRoot)
		if err != nil {
			cfg = config.DefaultConfig()
		}

		return tui.Run(tui.NewDashboard(cfg, projectRoot))
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(memoryCmd)
	rootCmd.AddCommand(autonomousCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
}
