package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Project.Name = "demo"
	cfg.Project.Language = "go"
	cfg.Memory.Retain = 5

	if err := WriteConfig(tmpDir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	loaded, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if loaded.Project.Name != "demo" {
		t.Errorf("Project.Name: got %q, want %q", loaded.Project.Name, "demo")
	}
	if loaded.Memory.Retain != 5 {
		t.Errorf("Memory.Retain: got %d, want 5", loaded.Memory.Retain)
	}
	if loaded.Telemetry.TimeoutMs != 5000 {
		t.Errorf("Telemetry.TimeoutMs: got %d, want 5000", loaded.Telemetry.TimeoutMs)
	}
}

func TestDefaultConfigRetention(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Memory.Retain != 10 {
		t.Errorf("default Memory.Retain: got %d, want 10", cfg.Memory.Retain)
	}
}

func TestDefaultConfigTelemetry(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Telemetry.Enabled {
		t.Error("default Telemetry.Enabled: got false, want true")
	}
	if cfg.Telemetry.TimeoutMs != 5000 {
		t.Errorf("default Telemetry.TimeoutMs: got %d, want 5000", cfg.Telemetry.TimeoutMs)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed on missing config: %v", err)
	}
	if cfg.Memory.Retain != 10 {
		t.Errorf("Memory.Retain: got %d, want default 10", cfg.Memory.Retain)
	}
}

func TestEnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	if err := WriteConfig(tmpDir, DefaultConfig()); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	t.Setenv("DEVTEAM_MODEL", "opus")
	t.Setenv("DEVTEAM_MEMORY_RETAIN", "3")
	t.Setenv("DEVTEAM_TELEMETRY_ENABLED", "false")

	cfg, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if cfg.Model != "opus" {
		t.Errorf("Model: got %q, want %q", cfg.Model, "opus")
	}
	if cfg.Memory.Retain != 3 {
		t.Errorf("Memory.Retain: got %d, want 3", cfg.Memory.Retain)
	}
	if cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled: got true, want false")
	}
}

func TestEnvOverrideIgnoresGarbage(t *testing.T) {
	t.Setenv("DEVTEAM_MEMORY_RETAIN", "not-a-number")

	cfg := DefaultConfig()
	if cfg.Memory.Retain != 10 {
		t.Errorf("Memory.Retain: got %d, want 10", cfg.Memory.Retain)
	}
}

func TestLoadEnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	envDir := filepath.Join(tmpDir, ".devteam")
	if err := os.MkdirAll(envDir, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	envFile := filepath.Join(envDir, ".env")
	if err := os.WriteFile(envFile, []byte("DEVTEAM_TEST_MARKER=from-env-file\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("DEVTEAM_TEST_MARKER") })

	if err := LoadEnv(tmpDir); err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}
	if got := os.Getenv("DEVTEAM_TEST_MARKER"); got != "from-env-file" {
		t.Errorf("DEVTEAM_TEST_MARKER: got %q, want %q", got, "from-env-file")
	}
}

func TestLoadEnvMissingFileIsNoop(t *testing.T) {
	if err := LoadEnv(t.TempDir()); err != nil {
		t.Fatalf("LoadEnv on missing file: %v", err)
	}
}

func TestRetentionFloorsAtDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.Retention(); got != 10 {
		t.Errorf("Retention() on zero config: got %d, want 10", got)
	}

	cfg.Memory.Retain = 3
	if got := cfg.Retention(); got != 3 {
		t.Errorf("Retention(): got %d, want 3", got)
	}
}

func TestTelemetryTimeoutDuration(t *testing.T) {
	cfg := &Config{}
	if got := cfg.TelemetryTimeout(); got != 5*time.Second {
		t.Errorf("TelemetryTimeout() on zero config: got %v, want 5s", got)
	}

	cfg.Telemetry.TimeoutMs = 250
	if got := cfg.TelemetryTimeout(); got != 250*time.Millisecond {
		t.Errorf("TelemetryTimeout(): got %v, want 250ms", got)
	}
}

func TestBackwardCompatibility(t *testing.T) {
	// Old config written before memory/telemetry sections existed.
	tmpDir := t.TempDir()
	oldConfig := `version: 1
model: sonnet
project:
  name: legacy
  language: python
`
	configPath := filepath.Join(tmpDir, ".devteam")
	if err := os.MkdirAll(configPath, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configPath, "config.yaml"), []byte(oldConfig), 0644); err != nil {
		t.Fatalf("failed to write old config: %v", err)
	}

	cfg, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed on old config: %v", err)
	}
	if cfg.Project.Name != "legacy" {
		t.Errorf("Project.Name: got %q, want %q", cfg.Project.Name, "legacy")
	}
	if cfg.Memory.Retain != 0 {
		t.Errorf("Memory.Retain on old config: got %d, want 0 (section absent)", cfg.Memory.Retain)
	}
}
