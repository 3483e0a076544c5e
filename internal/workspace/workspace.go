// Package workspace defines the on-disk layout of the .devteam/ directory.
// All other packages resolve paths through here so the layout is described
// in exactly one place.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Names of the entries inside .devteam/.
const (
	Dir          = ".devteam"
	DBFile       = "devteam.db"
	ConfigFile   = "config.yaml"
	StateFile    = "state.yaml"
	MemoryDir    = "memory"
	AgentsDir    = "agents"
	EnvFile      = ".env"
	SentinelFile = "autonomous-mode"
	LogFile      = "log.jsonl"
	ReportFile   = "report.md"
)

// Root returns the .devteam directory inside the given project root.
func Root(projectRoot string) string {
	return filepath.Join(projectRoot, Dir)
}

// DBPath returns the path to the SQLite state database.
func DBPath(projectRoot string) string {
	return filepath.Join(projectRoot, Dir, DBFile)
}

// ConfigPath returns the path to config.yaml.
func ConfigPath(projectRoot string) string {
	return filepath.Join(projectRoot, Dir, ConfigFile)
}

// StatePath returns the path to the legacy state.yaml file.
func StatePath(projectRoot string) string {
	return filepath.Join(projectRoot, Dir, StateFile)
}

// MemoryPath returns the directory holding session memory snapshots.
func MemoryPath(projectRoot string) string {
	return filepath.Join(projectRoot, Dir, MemoryDir)
}

// AgentsPath returns the directory holding on-disk agent overrides.
func AgentsPath(projectRoot string) string {
	return filepath.Join(projectRoot, Dir, AgentsDir)
}

// EnvPath returns the path to the optional .devteam/.env file.
func EnvPath(projectRoot string) string {
	return filepath.Join(projectRoot, Dir, EnvFile)
}

// SentinelPath returns the path to the autonomous-mode sentinel file.
func SentinelPath(projectRoot string) string {
	return filepath.Join(projectRoot, Dir, SentinelFile)
}

// LogPath returns the path to the append-only operational log.
func LogPath(projectRoot string) string {
	return filepath.Join(projectRoot, Dir, LogFile)
}

// ReportPath returns the path devteam report writes to with --write.
func ReportPath(projectRoot string) string {
	return filepath.Join(projectRoot, Dir, ReportFile)
}

// Exists reports whether the project has been initialized with a .devteam/
// directory.
func Exists(projectRoot string) bool {
	info, err := os.Stat(Root(projectRoot))
	return err == nil && info.IsDir()
}

// HasDB reports whether the SQLite state database file exists. The hooks use
// this as their precondition: no database means every read degrades to
// defaults and every event insert becomes a no-op.
func HasDB(projectRoot string) bool {
	info, err := os.Stat(DBPath(projectRoot))
	return err == nil && !info.IsDir()
}

// EnsureLayout creates .devteam/ and its subdirectories if they do not
// already exist. Idempotent and non-destructive.
func EnsureLayout(projectRoot string) error {
	for _, dir := range []string{
		Root(projectRoot),
		MemoryPath(projectRoot),
		AgentsPath(projectRoot),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// AutonomousMode reports whether the autonomous-mode sentinel file is
// present. Only existence matters; the file's content is ignored.
func AutonomousMode(projectRoot string) bool {
	_, err := os.Stat(SentinelPath(projectRoot))
	return err == nil
}

// SetAutonomousMode creates or removes the sentinel file.
func SetAutonomousMode(projectRoot string, on bool) error {
	path := SentinelPath(projectRoot)
	if on {
		if err := os.MkdirAll(Root(projectRoot), 0755); err != nil {
			return fmt.Errorf("creating %s: %w", Dir, err)
		}
		if err := os.WriteFile(path, []byte{}, 0644); err != nil {
			return fmt.Errorf("creating sentinel: %w", err)
		}
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing sentinel: %w", err)
	}
	return nil
}
