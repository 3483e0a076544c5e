// log.go reads commit history for reports.
package git

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// RecentCommits returns up to limit one-line commit summaries from HEAD,
// newest first. Shells out to: git log --oneline -n <limit>
func RecentCommits(dir string, limit int) ([]string, error) {
	if err := ensureGit(); err != nil {
		return nil, err
	}
	cmd := exec.Command("git", "log", "--oneline", "-n", strconv.Itoa(limit))
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git log --oneline: %w", err)
	}
	raw := strings.TrimSpace(string(out))
	if raw == "" {
		return nil, nil
	}
	return strings.Split(raw, "\n"), nil
}
