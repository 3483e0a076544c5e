// verify.go derives the commands a contributor would run to check changes
// in the detected stack.
package detect

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// VerifyCommands returns the check commands for the detected stack, in the
// order they should run. Returns nil when the language is unknown.
func VerifyCommands(dir string, stack StackInfo) []string {
	verifier, ok := verifiers[stack.Language]
	if !ok {
		return nil
	}
	return verifier(dir, stack)
}

// verifiers maps a detected language to its command builder. TypeScript and
// JavaScript share one entry because both are driven by package.json scripts.
var verifiers = map[string]func(dir string, stack StackInfo) []string{
	"typescript": scriptCommands,
	"javascript": scriptCommands,
	"go":         goCommands,
	"python":     pythonCommands,
	"rust":       rustCommands,
	"java":       jvmCommands,
	"kotlin":     jvmCommands,
}

// scriptCommands returns "<pm> run <script>" for each well-known script
// declared in package.json.
func scriptCommands(dir string, stack StackInfo) []string {
	data := readFile(filepath.Join(dir, "package.json"))
	if data == "" {
		return nil
	}

	var pkg struct {
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal([]byte(data), &pkg); err != nil {
		return nil
	}

	pm := stack.PackageManager
	if pm == "" {
		pm = "npm"
	}

	var cmds []string
	for _, script := range []string{"typecheck", "lint", "test", "build"} {
		if _, ok := pkg.Scripts[script]; ok {
			cmds = append(cmds, pm+" run "+script)
		}
	}
	return cmds
}

func goCommands(dir string, _ StackInfo) []string {
	var cmds []string
	if fileExists(filepath.Join(dir, ".golangci.yml")) ||
		fileExists(filepath.Join(dir, ".golangci.yaml")) {
		cmds = append(cmds, "golangci-lint run")
	}
	return append(cmds, "go vet ./...", "go test ./...")
}

func pythonCommands(dir string, _ StackInfo) []string {
	var cmds []string
	if usesRuff(dir) {
		cmds = append(cmds, "ruff check .")
	}
	return append(cmds, "pytest")
}

// usesRuff reports whether the project configures ruff via ruff.toml or a
// [tool.ruff] section in pyproject.toml.
func usesRuff(dir string) bool {
	if fileExists(filepath.Join(dir, "ruff.toml")) {
		return true
	}
	return strings.Contains(readFile(filepath.Join(dir, "pyproject.toml")), "[tool.ruff]")
}

func rustCommands(_ string, _ StackInfo) []string {
	return []string{"cargo clippy", "cargo test", "cargo build"}
}

func jvmCommands(_ string, stack StackInfo) []string {
	if stack.PackageManager == "gradle" {
		return []string{"gradle test"}
	}
	return []string{"mvn test"}
}
