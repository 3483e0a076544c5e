package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/devteam-dev/devteam/internal/config"
	"github.com/devteam-dev/devteam/internal/testutil"
	"github.com/devteam-dev/devteam/internal/workspace"
)

func TestRunInitGreenfield(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("runInit() error = %v", err)
	}

	if !workspace.Exists(dir) {
		t.Fatal(".devteam/ not created")
	}
	if !workspace.HasDB(dir) {
		t.Error("state database not created")
	}
	if _, err := os.Stat(workspace.ConfigPath(dir)); err != nil {
		t.Errorf("config.yaml not written: %v", err)
	}

	written, err := os.ReadDir(workspace.AgentsPath(dir))
	if err != nil {
		t.Fatalf("reading agents dir: %v", err)
	}
	if len(written) == 0 {
		t.Error("no agent definitions written")
	}

	gitignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		t.Fatalf("reading .gitignore: %v", err)
	}
	if !strings.Contains(string(gitignore), ".devteam/devteam.db") {
		t.Error(".gitignore missing database entry")
	}
}

func TestRunInitBrownfieldGo(t *testing.T) {
	dir := testutil.TempProject(t, testutil.GoProject())
	t.Chdir(dir)

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("runInit() error = %v", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Project.Language != "go" {
		t.Errorf("Language = %q, want go", cfg.Project.Language)
	}
	if cfg.Project.Name != filepath.Base(dir) {
		t.Errorf("Name = %q, want %q", cfg.Project.Name, filepath.Base(dir))
	}
}

func TestEnsureGitignoreAppendsMissing(t *testing.T) {
	dir := t.TempDir()
	seed := "node_modules/\n.devteam/devteam.db\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(seed), 0644); err != nil {
		t.Fatalf("seeding .gitignore: %v", err)
	}

	if err := ensureGitignore(dir); err != nil {
		t.Fatalf("ensureGitignore() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		t.Fatalf("reading .gitignore: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "node_modules/") {
		t.Error("existing entries were lost")
	}
	if !strings.Contains(content, ".devteam/memory/") {
		t.Error("missing entry not appended")
	}
	if strings.Count(content, ".devteam/devteam.db\n") != 1 {
		t.Errorf("database entry duplicated:\n%s", content)
	}
}

func TestEnsureGitignoreIdempotent(t *testing.T) {
	dir := t.TempDir()

	if err := ensureGitignore(dir); err != nil {
		t.Fatalf("first ensureGitignore() error = %v", err)
	}
	first, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		t.Fatalf("reading .gitignore: %v", err)
	}

	if err := ensureGitignore(dir); err != nil {
		t.Fatalf("second ensureGitignore() error = %v", err)
	}
	second, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		t.Fatalf("reading .gitignore: %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("second run changed .gitignore:\n%s\nvs\n%s", first, second)
	}
}
