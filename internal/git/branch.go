// Package git wraps the Git operations used by devteam. All lookups are
// read-only; devteam never mutates the host repository.
package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var ErrGitNotFound = errors.New("git not found in PATH")

// ensureGit checks that git is available in PATH.
func ensureGit() error {
	_, err := exec.LookPath("git")
	if err != nil {
		return ErrGitNotFound
	}
	return nil
}

// CurrentBranch returns the name of the current branch in dir.
// Shells out to: git rev-parse --abbrev-ref HEAD
func CurrentBranch(dir string) (string, error) {
	if err := ensureGit(); err != nil {
		return "", err
	}
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse --abbrev-ref HEAD: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
