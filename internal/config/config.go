// Package config handles reading and writing .devteam/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/devteam-dev/devteam/internal/workspace"
)

// Defaults applied when a value is absent from the file and environment.
const (
	DefaultRetain             = 10
	DefaultTelemetryTimeoutMs = 5000
)

// Config is the top-level structure for .devteam/config.yaml.
type Config struct {
	Version   int             `yaml:"version"`
	Project   ProjectConfig   `yaml:"project"`
	Model     string          `yaml:"model"`
	Memory    MemoryConfig    `yaml:"memory"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ProjectConfig holds project metadata detected or supplied during init.
type ProjectConfig struct {
	Name     string `yaml:"name"`
	Language string `yaml:"language"`
}

// MemoryConfig controls session memory snapshots.
type MemoryConfig struct {
	Retain int `yaml:"retain"` // snapshots kept by the pruner
}

// TelemetryConfig controls best-effort event recording.
type TelemetryConfig struct {
	Enabled   bool `yaml:"enabled"`
	TimeoutMs int  `yaml:"timeout_ms"` // per-insert deadline
}

// ReadConfig reads .devteam/config.yaml from the given project directory.
// dir is the project root (not .devteam/ itself). Environment overrides are
// applied after the file is parsed, so DEVTEAM_* variables win over the file.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(workspace.ConfigPath(dir))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyEnv()
	return &cfg, nil
}

// WriteConfig writes cfg to .devteam/config.yaml in the given project
// directory. Creates the .devteam/ directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(workspace.Root(dir), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(workspace.ConfigPath(dir), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
// Environment overrides apply here too, so a missing config file and a
// default one behave identically under DEVTEAM_* variables.
func DefaultConfig() *Config {
	cfg := &Config{
		Version: 1,
		Model:   "sonnet",
		Memory: MemoryConfig{
			Retain: DefaultRetain,
		},
		Telemetry: TelemetryConfig{
			Enabled:   true,
			TimeoutMs: DefaultTelemetryTimeoutMs,
		},
	}
	cfg.applyEnv()
	return cfg
}

// Retention returns the snapshot count the pruner keeps. Config files
// written before the memory section existed carry a zero here; those get
// the default instead of pruning everything.
func (c *Config) Retention() int {
	if c.Memory.Retain <= 0 {
		return DefaultRetain
	}
	return c.Memory.Retain
}

// TelemetryTimeout returns the per-insert deadline as a duration.
func (c *Config) TelemetryTimeout() time.Duration {
	ms := c.Telemetry.TimeoutMs
	if ms <= 0 {
		ms = DefaultTelemetryTimeoutMs
	}
	return time.Duration(ms) * time.Millisecond
}

// Load returns the project config, falling back to defaults when
// .devteam/config.yaml does not exist. Any other read error is returned.
func Load(dir string) (*Config, error) {
	cfg, err := ReadConfig(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadEnv loads .devteam/.env into the process environment when present.
// Variables already set in the environment are not overwritten (godotenv
// semantics). A missing file is a normal condition, not an error.
func LoadEnv(dir string) error {
	path := workspace.EnvPath(dir)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays DEVTEAM_* environment variables onto the config.
// Unparseable values are ignored in favour of the file value.
func (c *Config) applyEnv() {
	if v := os.Getenv("DEVTEAM_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("DEVTEAM_MEMORY_RETAIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Memory.Retain = n
		}
	}
	if v := os.Getenv("DEVTEAM_TELEMETRY_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Telemetry.Enabled = b
		}
	}
	if v := os.Getenv("DEVTEAM_TELEMETRY_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Telemetry.TimeoutMs = n
		}
	}
}
