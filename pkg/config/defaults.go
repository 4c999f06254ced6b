package config

import (
	"strings"
	"time"

	"github.com/marmos91/staticd/pkg/loader"
)

// Defaults for the file-serving listener and pipeline.
const (
	DefaultHost    = "127.0.0.1"
	DefaultPort    = 8080
	DefaultRoot    = "./public"
	DefaultWorkers = 4

	DefaultMetricsPort = 9090
)

// ApplyDefaults sets default values for any unspecified configuration
// fields.
//
// Called after loading configuration from file and environment variables to
// fill in any missing values with sensible defaults. Zero values (0, "",
// false) are replaced; explicit values are preserved.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyServerDefaults(&cfg.Server)
	applyServeDefaults(&cfg.Serve)
	applyPoolDefaults(&cfg.Pool)
	applyCompressionDefaults(&cfg.Compression)
	applyMetricsDefaults(&cfg.Metrics)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// applyServerDefaults sets listener defaults.
func applyServerDefaults(cfg *ServerConfig) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
}

// applyServeDefaults sets serving defaults.
func applyServeDefaults(cfg *ServeConfig) {
	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}
}

// applyPoolDefaults sets worker pool defaults.
func applyPoolDefaults(cfg *PoolConfig) {
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
	// MaxQueue defaults to 0: unbounded queueing, no admission control
}

// applyCompressionDefaults sets gzip defaults.
func applyCompressionDefaults(cfg *CompressionConfig) {
	if cfg.MinSize == 0 {
		cfg.MinSize = loader.MinGzipSize
	}
}

// applyMetricsDefaults sets metrics defaults.
func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Port == 0 {
		cfg.Port = DefaultMetricsPort
	}
	// Enabled defaults to false
}
