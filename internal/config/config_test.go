package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadAndValidate(t *testing.T) {
	content := `
reasoning:
  project: "draft-night"
  model: "gemini-2.0-flash"
  timeout: 30s
  temperature: 0.2

catalog:
  path: "./data/players.db"

engine:
  tool_concurrency: 2

server:
  addr: ":9090"
  require_auth: false

logging:
  level: "debug"
  format: "json"
`
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Reasoning.Project != "draft-night" {
		t.Errorf("Unexpected project: %s", cfg.Reasoning.Project)
	}
	if cfg.Reasoning.Timeout != 30*time.Second {
		t.Errorf("Unexpected timeout: %s", cfg.Reasoning.Timeout)
	}
	if cfg.Reasoning.Temperature != 0.2 {
		t.Errorf("Unexpected temperature: %f", cfg.Reasoning.Temperature)
	}
	if cfg.Engine.ToolConcurrency != 2 {
		t.Errorf("Unexpected tool concurrency: %d", cfg.Engine.ToolConcurrency)
	}
	if cfg.Server.RequireAuth {
		t.Error("Expected require_auth false")
	}
	// Unset keys keep their defaults.
	if cfg.Reasoning.Location != "us-central1" || cfg.Engine.TopAvailable != 25 || cfg.Server.Path != "/mcp" {
		t.Errorf("Defaults not applied: %+v", cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Reasoning.Timeout != 45*time.Second {
		t.Errorf("Unexpected default timeout: %s", cfg.Reasoning.Timeout)
	}
	if cfg.Catalog.Path != "data/players.json" {
		t.Errorf("Unexpected default catalog path: %s", cfg.Catalog.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DRAFTASSIST_REASONING_MODEL", "gemini-1.5-pro")
	t.Setenv("DRAFTASSIST_ENGINE_TOP_AVAILABLE", "40")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Reasoning.Model != "gemini-1.5-pro" {
		t.Errorf("Unexpected model: %s", cfg.Reasoning.Model)
	}
	if cfg.Engine.TopAvailable != 40 {
		t.Errorf("Unexpected top_available: %d", cfg.Engine.TopAvailable)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/draftassist.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func validConfig() *Config {
	return &Config{
		Reasoning: ReasoningConfig{
			Model:           "gemini-2.0-flash",
			Timeout:         45 * time.Second,
			Temperature:     0.4,
			MaxOutputTokens: 2048,
		},
		Catalog: CatalogConfig{Path: "data/players.json"},
		Engine:  EngineConfig{ToolConcurrency: 4, RecentPicks: 12, TopAvailable: 25},
		Server:  ServerConfig{Addr: ":8080", Path: "/mcp", AuthHeader: "X-API-Key"},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing model", func(c *Config) { c.Reasoning.Model = "" }, true},
		{"timeout too short", func(c *Config) { c.Reasoning.Timeout = 500 * time.Millisecond }, true},
		{"timeout too long", func(c *Config) { c.Reasoning.Timeout = 10 * time.Minute }, true},
		{"temperature out of range", func(c *Config) { c.Reasoning.Temperature = 2.5 }, true},
		{"no output tokens", func(c *Config) { c.Reasoning.MaxOutputTokens = 0 }, true},
		{"missing catalog path", func(c *Config) { c.Catalog.Path = "" }, true},
		{"unknown catalog format", func(c *Config) { c.Catalog.Format = "csv" }, true},
		{"sqlite catalog", func(c *Config) { c.Catalog.Format = "sqlite" }, false},
		{"zero tool concurrency", func(c *Config) { c.Engine.ToolConcurrency = 0 }, true},
		{"negative recent picks", func(c *Config) { c.Engine.RecentPicks = -1 }, true},
		{"relative server path", func(c *Config) { c.Server.Path = "mcp" }, true},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"invalid log format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
