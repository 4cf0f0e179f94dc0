package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Reports  Reports  `yaml:"reports"`
	Database Database `yaml:"database"`
	Server   Server   `yaml:"server"`
	Search   Search   `yaml:"search"`
	Logging  Logging  `yaml:"logging"`
}

type Reports struct {
	Dir string `yaml:"dir"`
}

type Database struct {
	Path string `yaml:"path"`
}

type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type Search struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

type Logging struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// ConfigDir returns the XDG config directory for newsroom.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "newsroom")
}

// DataDir returns the XDG data directory for newsroom.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "newsroom")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/newsroom/config.yaml > ./config.yaml
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

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'newsroom init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file, then applies NEWSROOM_*
// environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := parse(data)
	if err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault returns the built-in configuration with environment
// overrides applied, for running without a config file.
func LoadDefault() (*Config, error) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Server: Server{
			Host: "0.0.0.0",
			Port: 3118,
		},
		Search: Search{
			DefaultLimit: 20,
			MaxLimit:     100,
		},
		Logging: Logging{Level: "info"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// applyEnv layers NEWSROOM_* environment variables over the parsed file.
func applyEnv(cfg *Config) error {
	if dir := os.Getenv("NEWSROOM_REPORTS_DIR"); dir != "" {
		cfg.Reports.Dir = dir
	}
	if path := os.Getenv("NEWSROOM_DB_PATH"); path != "" {
		cfg.Database.Path = path
	}
	if host := os.Getenv("NEWSROOM_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("NEWSROOM_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid NEWSROOM_PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}
	return nil
}

// GetReportsDir returns the effective reports directory from config or
// its conventional default.
func (c *Config) GetReportsDir() string {
	if c.Reports.Dir != "" {
		return c.Reports.Dir
	}
	return filepath.Join(homeDir(), ".openclaw", "workspace", "reports")
}

// GetDBPath returns the effective database path from config or the XDG
// default.
func (c *Config) GetDBPath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return filepath.Join(DataDir(), "newsroom.db")
}

// Addr returns the host:port the API server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
