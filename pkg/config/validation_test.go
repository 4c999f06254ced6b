package config

import (
	"strings"
	"testing"
)

// validConfig returns a configuration that passes validation.
func validConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("Default config should validate, got: %v", err)
	}
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "VERBOSE"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected error for invalid log level")
	}
	if !strings.Contains(err.Error(), "Level") {
		t.Errorf("Error should name the Level field, got: %v", err)
	}
}

func TestValidate_BadPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 70000

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected error for out-of-range port")
	}
}

func TestValidate_NegativeWorkers(t *testing.T) {
	cfg := validConfig()
	cfg.Pool.Workers = -1

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected error for negative worker count")
	}
}

func TestValidate_BurstWithoutRate(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.Burst = 100

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected error for burst without a sustained rate")
	}
	if !strings.Contains(err.Error(), "rate_limit") {
		t.Errorf("Error should mention rate_limit, got: %v", err)
	}
}

func TestValidate_MetricsPortConflict(t *testing.T) {
	cfg := validConfig()
	cfg.Metrics.Enabled = true
	cfg.Metrics.Port = cfg.Server.Port

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected error for metrics port conflicting with server port")
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9999
	cfg.Pool.Workers = 2
	ApplyDefaults(cfg)

	if cfg.Server.Port != 9999 {
		t.Errorf("Explicit port overwritten: got %d", cfg.Server.Port)
	}
	if cfg.Pool.Workers != 2 {
		t.Errorf("Explicit worker count overwritten: got %d", cfg.Pool.Workers)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Expected default host, got %q", cfg.Server.Host)
	}
}
