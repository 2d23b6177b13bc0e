package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Dataset DatasetConfig `mapstructure:"dataset"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

// DatasetConfig represents holiday dataset configuration
type DatasetConfig struct {
	File   string `mapstructure:"file"`   // Optional extra dataset, takes priority over the bundled one
	Mode   string `mapstructure:"mode"`   // "overlay" (patch bundled entries) or "fallback" (file owns its years)
	Strict bool   `mapstructure:"strict"` // Refuse datasets listing a date as both holiday and workday
}

// Dataset modes
const (
	DatasetModeOverlay  = "overlay"
	DatasetModeFallback = "fallback"
)

// ServerConfig represents HTTP API configuration
type ServerConfig struct {
	Listen          string   `mapstructure:"listen"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	ReadTimeout     string   `mapstructure:"read_timeout"`
	ShutdownTimeout string   `mapstructure:"shutdown_timeout"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. A missing config file is not an
// error when no explicit path is given; defaults apply instead.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("dataset.mode", DatasetModeOverlay)
	v.SetDefault("server.listen", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("log.level", "info")

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.chinese-calendar")
		v.AddConfigPath("/etc/chinese-calendar")
	}

	// Read environment variables, e.g. CHINESE_CALENDAR_SERVER_LISTEN
	v.SetEnvPrefix("chinese_calendar")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Dataset.Mode {
	case "", DatasetModeOverlay, DatasetModeFallback:
	default:
		return fmt.Errorf("dataset.mode must be '%s' or '%s', got '%s'",
			DatasetModeOverlay, DatasetModeFallback, c.Dataset.Mode)
	}

	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if c.Server.ReadTimeout != "" {
		if _, err := time.ParseDuration(c.Server.ReadTimeout); err != nil {
			return fmt.Errorf("server.read_timeout: %w", err)
		}
	}
	if c.Server.ShutdownTimeout != "" {
		if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
			return fmt.Errorf("server.shutdown_timeout: %w", err)
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got '%s'", c.Log.Level)
	}

	return nil
}

// GetReadTimeout returns the HTTP read timeout
func (c *ServerConfig) GetReadTimeout() time.Duration {
	if c.ReadTimeout == "" {
		return 10 * time.Second
	}
	duration, err := time.ParseDuration(c.ReadTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return duration
}

// GetShutdownTimeout returns how long to wait for in-flight requests on shutdown
func (c *ServerConfig) GetShutdownTimeout() time.Duration {
	if c.ShutdownTimeout == "" {
		return 5 * time.Second
	}
	duration, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil {
		return 5 * time.Second
	}
	return duration
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Dataset.File = os.ExpandEnv(c.Dataset.File)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
