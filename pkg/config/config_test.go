package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestLoad_DefaultConfig(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Write minimal config
	configContent := `
logging:
  level: "INFO"

serve:
  root: "/srv/public"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	// Load config
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify defaults were applied
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected default output 'stdout', got %q", cfg.Logging.Output)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Expected default host 127.0.0.1, got %q", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected default shutdown_timeout 30s, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Pool.Workers != 4 {
		t.Errorf("Expected default 4 workers, got %d", cfg.Pool.Workers)
	}
	if cfg.Pool.MaxQueue != 0 {
		t.Errorf("Expected default unbounded queue, got max_queue %d", cfg.Pool.MaxQueue)
	}
	if cfg.Compression.MinSize != 1024 {
		t.Errorf("Expected default compression min_size 1024, got %d", cfg.Compression.MinSize)
	}
	if cfg.Metrics.Enabled {
		t.Error("Expected metrics disabled by default")
	}

	// Explicit value preserved
	if cfg.Serve.Root != "/srv/public" {
		t.Errorf("Expected root '/srv/public', got %q", cfg.Serve.Root)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	// Use a temporary directory with a non-existent config file path so the
	// user's real config in ~/.config/staticd/ is never picked up.
	tmpDir := t.TempDir()
	nonExistentPath := filepath.Join(tmpDir, "nonexistent.yaml")

	cfg, err := Load(nonExistentPath)
	if err != nil {
		t.Fatalf("Expected no error with missing config file, got: %v", err)
	}

	// Verify defaults
	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default level 'INFO', got %q", cfg.Logging.Level)
	}
	if cfg.Serve.Root != "./public" {
		t.Errorf("Expected default root './public', got %q", cfg.Serve.Root)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	configContent := `
logging:
  level: INFO
  invalid yaml here [[[
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

func TestLoad_FullConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Build the fixture through yaml marshalling to keep it well-formed.
	doc := map[string]any{
		"logging": map[string]any{
			"level":  "debug",
			"output": "stderr",
		},
		"server": map[string]any{
			"host":             "0.0.0.0",
			"port":             8888,
			"shutdown_timeout": "10s",
		},
		"serve": map[string]any{
			"root": "/var/www",
		},
		"pool": map[string]any{
			"workers":   8,
			"max_queue": 256,
		},
		"compression": map[string]any{
			"min_size": 2048,
		},
		"metrics": map[string]any{
			"enabled": true,
			"port":    9100,
		},
		"rate_limit": map[string]any{
			"requests_per_second": 1000,
			"burst":               2000,
		},
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal fixture: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected normalized level 'DEBUG', got %q", cfg.Logging.Level)
	}
	if cfg.Address() != "0.0.0.0:8888" {
		t.Errorf("Expected address 0.0.0.0:8888, got %q", cfg.Address())
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("Expected shutdown_timeout 10s, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Pool.Workers != 8 || cfg.Pool.MaxQueue != 256 {
		t.Errorf("Unexpected pool config: %+v", cfg.Pool)
	}
	if cfg.Compression.MinSize != 2048 {
		t.Errorf("Expected min_size 2048, got %d", cfg.Compression.MinSize)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Port != 9100 {
		t.Errorf("Unexpected metrics config: %+v", cfg.Metrics)
	}
	if cfg.RateLimit.RequestsPerSecond != 1000 || cfg.RateLimit.Burst != 2000 {
		t.Errorf("Unexpected rate limit config: %+v", cfg.RateLimit)
	}
}
