// Package statefile reads the legacy .devteam/state.yaml flat-file state
// store. The SQLite database is the canonical backend; this file is only
// consulted when the database is absent, and is never written.
package statefile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// State mirrors the top-level keys of state.yaml.
type State struct {
	CurrentSprint string     `yaml:"current_sprint"`
	CurrentTask   string     `yaml:"current_task"`
	Phase         string     `yaml:"phase"`
	Statistics    Statistics `yaml:"statistics"`
}

// Statistics holds the aggregate task counters.
type Statistics struct {
	CompletedTasks int `yaml:"completed_tasks"`
	TotalTasks     int `yaml:"total_tasks"`
}

// Read parses the state file at path. Returns an error when the file is
// missing or the YAML is malformed; callers treat both the same way and
// fall back to defaults.
func Read(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading state file: %w", err)
	}

	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parsing state file: %w", err)
	}

	return &st, nil
}
