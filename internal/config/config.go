package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AI     AIConfig    `yaml:"ai" validate:"required"`
	Paths  PathsConfig `yaml:"paths"`
	Limits Limits      `yaml:"limits"`
}

type AIConfig struct {
	APIKey  string `yaml:"api_key" validate:"required,min=20"`
	Model   string `yaml:"model" validate:"required"`
	BaseURL string `yaml:"base_url" validate:"required,url"`
	Timeout int    `yaml:"timeout" validate:"required,min=10,max=3600"`
}

type PathsConfig struct {
	DataDir string `yaml:"data_dir"`
}

// DefaultConfigYAML is written by the init command.
var DefaultConfigYAML = []byte(`ai:
  api_key: ${NARRATIVE_API_KEY}
  model: gpt-4o-mini
  base_url: https://api.openai.com/v1
  timeout: 120
paths:
  data_dir: ""
limits:
  loop_max_iterations: 3
  quality_target: 0.7
  enrich_max_iterations: 3
  max_retries: 3
  rate_limit:
    requests_per_minute: 30
    burst_size: 5
`)

// ConfigPath resolves the config file location: explicit env override,
// then XDG config dir, then ~/.config.
func ConfigPath() string {
	if path := os.Getenv("NARRATIVE_CONFIG"); path != "" {
		return path
	}
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "narrative", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "narrative", "config.yaml")
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.AI.APIKey == "" || cfg.AI.APIKey == "${NARRATIVE_API_KEY}" {
		cfg.AI.APIKey = os.Getenv("NARRATIVE_API_KEY")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Paths.DataDir == "" {
		if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
			c.Paths.DataDir = filepath.Join(xdgData, "narrative")
		} else {
			home, _ := os.UserHomeDir()
			c.Paths.DataDir = filepath.Join(home, ".local", "share", "narrative")
		}
	}

	if c.Limits.LoopMaxIterations == 0 {
		c.Limits = DefaultLimits()
	}

	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
