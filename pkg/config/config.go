package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete staticd configuration.
//
// Configuration sources (in order of precedence):
//  1. CLI flags and positional arguments (highest priority, applied by cmd)
//  2. Environment variables (STATICD_*)
//  3. Configuration file (YAML)
//  4. Default values (lowest priority)
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging"`

	// Server contains listener and lifecycle settings
	Server ServerConfig `mapstructure:"server"`

	// Serve selects what is served
	Serve ServeConfig `mapstructure:"serve"`

	// Pool sizes the worker pool that performs disk I/O and compression
	Pool PoolConfig `mapstructure:"pool"`

	// Compression tunes gzip response encoding
	Compression CompressionConfig `mapstructure:"compression"`

	// Metrics controls the Prometheus exposition server
	Metrics MetricsConfig `mapstructure:"metrics"`

	// RateLimit bounds request throughput; zero rate means unlimited
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`

	// Output is where logs are written: stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required"`
}

// ServerConfig contains listener settings.
type ServerConfig struct {
	// Host is the address the listener binds to
	Host string `mapstructure:"host" validate:"required"`

	// Port is the TCP port the listener binds to
	Port int `mapstructure:"port" validate:"required,gte=1,lte=65535"`

	// ReadTimeout bounds how long reading a request may take
	ReadTimeout time.Duration `mapstructure:"read_timeout" validate:"required,gt=0"`

	// WriteTimeout bounds how long writing a response may take
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"required,gt=0"`

	// ShutdownTimeout is the maximum time to wait for graceful shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0"`
}

// ServeConfig selects the directory being served.
type ServeConfig struct {
	// Root is the directory beneath which all served files must resolve
	Root string `mapstructure:"root" validate:"required"`
}

// PoolConfig sizes the worker pool.
type PoolConfig struct {
	// Workers is the fixed number of pool workers
	Workers int `mapstructure:"workers" validate:"required,gte=1"`

	// MaxQueue bounds submitted-but-unstarted jobs; 0 means unbounded.
	// When bounded, rejected dispatches produce 503 responses.
	MaxQueue int `mapstructure:"max_queue" validate:"gte=0"`
}

// CompressionConfig tunes gzip encoding.
type CompressionConfig struct {
	// MinSize is the uncompressed size in bytes a file must exceed before
	// gzip is applied
	MinSize int64 `mapstructure:"min_size" validate:"gte=0"`
}

// MetricsConfig controls the Prometheus exposition server.
type MetricsConfig struct {
	// Enabled turns metrics collection and the exposition server on
	Enabled bool `mapstructure:"enabled"`

	// Port is the exposition server's own port, separate from the
	// file-serving listener
	Port int `mapstructure:"port" validate:"gte=0,lte=65535"`
}

// RateLimitConfig bounds request throughput.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained request rate; 0 disables limiting
	RequestsPerSecond uint `mapstructure:"requests_per_second"`

	// Burst is the token bucket capacity; 0 defaults to the sustained rate
	Burst uint `mapstructure:"burst"`
}

// Address returns the host:port the file-serving listener binds to.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// LogWriter resolves the configured log output to a writer. The returned
// closer is non-nil only when a file was opened.
func (c *Config) LogWriter() (io.Writer, io.Closer, error) {
	switch c.Logging.Output {
	case "stdout":
		return os.Stdout, nil, nil
	case "stderr":
		return os.Stderr, nil, nil
	default:
		f, err := os.OpenFile(c.Logging.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log output %q: %w", c.Logging.Output, err)
		}
		return f, f, nil
	}
}

// Load loads configuration from file, environment, and defaults.
//
// Parameters:
//   - configPath: Path to config file (empty string uses default location)
//
// Returns the loaded and validated configuration.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper configures viper with environment variables and config file
// settings.
func setupViper(v *viper.Viper, configPath string) {
	// Environment variables use the STATICD_ prefix and underscores.
	// Example: STATICD_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("STATICD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file is acceptable - defaults apply
			return nil
		}
		if os.IsNotExist(err) {
			// Explicit path pointing at a missing file: also defaults
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

// getConfigDir returns the configuration directory path.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, or falls back to the
// current directory if the home directory cannot be determined.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "staticd")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "staticd")
}
