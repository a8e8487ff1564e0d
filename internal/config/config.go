// Package config loads strata.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/strata/pkg/adapters/process"
	"github.com/aretw0/strata/pkg/build"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "strata.yaml"

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config is the full application configuration.
type Config struct {
	LogLevel  string                  `yaml:"log_level" mapstructure:"log_level"`
	ScenesDir string                  `yaml:"scenes_dir" mapstructure:"scenes_dir"`
	Build     build.Config            `yaml:"build" mapstructure:"build"`
	Server    ServerConfig            `yaml:"server" mapstructure:"server"`
	Cache     CacheConfig             `yaml:"cache" mapstructure:"cache"`
	Plot      PlotConfig              `yaml:"plot" mapstructure:"plot"`
	Tools     []process.ProcessConfig `yaml:"tools" mapstructure:"tools"`
}

// ServerConfig holds the listening ports of the HTTP and MCP SSE servers.
type ServerConfig struct {
	Port    int `yaml:"port" mapstructure:"port"`
	MCPPort int `yaml:"mcp_port" mapstructure:"mcp_port"`
}

// CacheConfig selects where sampled fields are kept.
type CacheConfig struct {
	Backend  string        `yaml:"backend" mapstructure:"backend"`
	Address  string        `yaml:"address" mapstructure:"address"`
	Password string        `yaml:"password" mapstructure:"password"`
	DB       int           `yaml:"db" mapstructure:"db"`
	TTL      time.Duration `yaml:"ttl" mapstructure:"ttl"`
	LockTTL  time.Duration `yaml:"lock_ttl" mapstructure:"lock_ttl"`
}

// PlotConfig controls figure output.
type PlotConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
	Levels    int    `yaml:"levels" mapstructure:"levels"`
	Workers   int    `yaml:"workers" mapstructure:"workers"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogLevel:  "info",
		ScenesDir: "scenes",
		Build:     build.DefaultConfig(),
		Server:    ServerConfig{Port: 8080, MCPPort: 8081},
		Cache: CacheConfig{
			Backend: CacheMemory,
			Address: "localhost:6379",
			TTL:     time.Hour,
			LockTTL: 30 * time.Second,
		},
		Plot: PlotConfig{OutputDir: "figures"},
	}
}

// Load reads path (YAML or JSON) over the defaults.
// A missing file yields Default().
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode merges a YAML (or JSON) document into cfg. Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// Validate checks values the decoder cannot.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("unknown cache backend %q (want %s or %s)", c.Cache.Backend, CacheMemory, CacheRedis)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.MCPPort < 0 || c.Server.MCPPort > 65535 {
		return fmt.Errorf("invalid mcp port %d", c.Server.MCPPort)
	}
	if c.Plot.Levels < 0 {
		return fmt.Errorf("plot levels must not be negative, got %d", c.Plot.Levels)
	}
	return nil
}

// ToolMap returns the allow-listed build tools by name.
func (c Config) ToolMap() map[string]process.ProcessConfig {
	return process.ToolMap(c.Tools)
}
