package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	MoveBackOrigin     = "origin"
	MoveBackPositional = "positional"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Source   SourceConfig   `toml:"source"`
	Merge    MergeConfig    `toml:"merge"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// SourceConfig describes where the lists are loaded from.
type SourceConfig struct {
	BaseURL        string `toml:"base_url"`
	Path           string `toml:"path"`
	File           string `toml:"file"`
	DelayMS        int    `toml:"delay_ms"`
	TimeoutMS      int    `toml:"timeout_ms"`
	RetryPerMinute int    `toml:"retry_per_minute"`
}

// MergeConfig tunes the merge state machine.
type MergeConfig struct {
	MoveBack string `toml:"move_back"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Enabled      bool   `toml:"enabled"`
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings for the fixture server.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Delay returns the artificial load delay.
func (s SourceConfig) Delay() time.Duration {
	return time.Duration(s.DelayMS) * time.Millisecond
}

// Timeout returns the HTTP client timeout, zero meaning none.
func (s SourceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutMS) * time.Millisecond
}

// Addr returns the host:port the fixture server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Validate reports configuration values the application cannot run with.
func (c *Config) Validate() error {
	switch c.Merge.MoveBack {
	case MoveBackOrigin, MoveBackPositional:
	default:
		return fmt.Errorf("%w: merge.move_back must be %q or %q, got %q",
			ErrInvalidConfig, MoveBackOrigin, MoveBackPositional, c.Merge.MoveBack)
	}

	if c.Source.File == "" && c.Source.BaseURL == "" {
		return fmt.Errorf("%w: one of source.base_url or source.file is required", ErrInvalidConfig)
	}
	if c.Source.DelayMS < 0 || c.Source.TimeoutMS < 0 || c.Source.RetryPerMinute < 0 {
		return fmt.Errorf("%w: source durations and rates must not be negative", ErrInvalidConfig)
	}
	if c.Database.Enabled && c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is required when the database is enabled", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
