// report.go implements the "devteam report" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devteam-dev/devteam/internal/config"
	"github.com/devteam-dev/devteam/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize project activity",
	Long: `Aggregate the workspace into one summary: session state, recent
sessions and commits, telemetry activity, memory snapshots and the
operational log. With --write the summary is also saved to
.devteam/report.md.`,
	RunE: runReport,
}

var reportWriteFlag bool

func init() {
	reportCmd.Flags().BoolVar(&reportWriteFlag, "write", false, "Also write the report to .devteam/report.md")
}

func runReport(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	r := report.Generate(cfg, root)
	fmt.Print(report.Format(r))

	if reportWriteFlag {
		if err := report.Write(root, r); err != nil {
			return err
		}
		fmt.Println()
		fmt.Println("Report written to .devteam/report.md")
	}

	return nil
}
