package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/TobiSchelling/storyrank/internal/logging"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Logging Logging `yaml:"logging"`
	Scoring Scoring `yaml:"scoring"`
	Output  Output  `yaml:"output"`
}

type Logging struct {
	Level string `yaml:"level"`
}

type Scoring struct {
	Workers int `yaml:"workers"`
}

type Output struct {
	Format  string `yaml:"format"`
	Explain bool   `yaml:"explain"`
}

// ConfigDir returns the XDG config directory for storyrank.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "storyrank")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/storyrank/config.yaml > ./config.yaml.
// An empty path with a nil error means no file exists and defaults apply.
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", nil
}

// Load reads and parses a config YAML file. An empty path yields defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: Logging{Level: "info"},
		Scoring: Scoring{Workers: 1},
		Output:  Output{Format: "text"},
	}
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Scoring.Workers < 1 {
		return nil, fmt.Errorf("scoring.workers must be at least 1, got %d", cfg.Scoring.Workers)
	}
	if !logging.ValidLevel(cfg.Logging.Level) {
		return nil, fmt.Errorf("unknown logging.level %q", cfg.Logging.Level)
	}
	return cfg, nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
