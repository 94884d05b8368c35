package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Reasoning ReasoningConfig `mapstructure:"reasoning"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ReasoningConfig selects the Vertex AI model used for recommendations
type ReasoningConfig struct {
	Project         string        `mapstructure:"project"`
	Location        string        `mapstructure:"location"`
	Model           string        `mapstructure:"model"`
	Timeout         time.Duration `mapstructure:"timeout"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxOutputTokens int           `mapstructure:"max_output_tokens"`
}

// CatalogConfig points at the player snapshot. Format is "json" or "sqlite";
// empty means infer from the file extension.
type CatalogConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
}

// EngineConfig tunes the recommendation orchestrator
type EngineConfig struct {
	ToolConcurrency int `mapstructure:"tool_concurrency"`
	RecentPicks     int `mapstructure:"recent_picks"`
	TopAvailable    int `mapstructure:"top_available"`
}

// ServerConfig holds the MCP HTTP server settings
type ServerConfig struct {
	Addr        string `mapstructure:"addr"`
	Path        string `mapstructure:"path"`
	RequireAuth bool   `mapstructure:"require_auth"`
	AuthHeader  string `mapstructure:"auth_header"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables. An empty
// path skips the file and uses defaults plus environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("DRAFTASSIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("reasoning.project", "")
	v.SetDefault("reasoning.location", "us-central1")
	v.SetDefault("reasoning.model", "gemini-2.0-flash")
	v.SetDefault("reasoning.timeout", "45s")
	v.SetDefault("reasoning.temperature", 0.4)
	v.SetDefault("reasoning.max_output_tokens", 2048)

	v.SetDefault("catalog.path", "data/players.json")
	v.SetDefault("catalog.format", "")

	v.SetDefault("engine.tool_concurrency", 4)
	v.SetDefault("engine.recent_picks", 12)
	v.SetDefault("engine.top_available", 25)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.path", "/mcp")
	v.SetDefault("server.require_auth", true)
	v.SetDefault("server.auth_header", "X-API-Key")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Reasoning.Model == "" {
		return fmt.Errorf("reasoning.model is required")
	}
	if c.Reasoning.Timeout < time.Second || c.Reasoning.Timeout > 5*time.Minute {
		return fmt.Errorf("reasoning.timeout must be between 1s and 5m")
	}
	if c.Reasoning.Temperature < 0 || c.Reasoning.Temperature > 2 {
		return fmt.Errorf("reasoning.temperature must be between 0 and 2")
	}
	if c.Reasoning.MaxOutputTokens < 1 {
		return fmt.Errorf("reasoning.max_output_tokens must be at least 1")
	}

	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path is required")
	}
	switch c.Catalog.Format {
	case "", "json", "sqlite":
	default:
		return fmt.Errorf("catalog.format must be one of: json, sqlite")
	}

	if c.Engine.ToolConcurrency < 1 {
		return fmt.Errorf("engine.tool_concurrency must be at least 1")
	}
	if c.Engine.RecentPicks < 0 || c.Engine.TopAvailable < 0 {
		return fmt.Errorf("engine.recent_picks and engine.top_available must not be negative")
	}

	if !strings.HasPrefix(c.Server.Path, "/") {
		return fmt.Errorf("server.path must start with /")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}
	return nil
}
