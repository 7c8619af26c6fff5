// Package config loads agenthooks.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/agenthooks/internal/notify"
	"github.com/ppiankov/agenthooks/internal/sound"
)

// FileName is the config file looked up in the install directory.
const FileName = "agenthooks.yaml"

// Environment overrides.
const (
	EnvHome   = "AGENTHOOKS_HOME"
	EnvConfig = "AGENTHOOKS_CONFIG"
)

// LoggingConfig controls the diagnostic logger.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	Journal bool   `yaml:"journal"`
}

// Config holds all hook settings.
type Config struct {
	LogPath string        `yaml:"log_path"`
	Logging LoggingConfig `yaml:"logging"`
	Notify  notify.Config `yaml:"notify"`
	Sound   sound.Config  `yaml:"sound"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		LogPath: filepath.Join("logs", "bash_commands.json"),
		Logging: LoggingConfig{Level: "info"},
		Notify:  notify.DefaultConfig(),
		Sound:   sound.DefaultConfig(),
	}
}

// Load reads configuration from path.
// Missing file returns defaults. Invalid YAML returns an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Start with defaults, YAML overwrites only specified fields
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Home returns the install directory: $AGENTHOOKS_HOME, else the directory
// holding the running executable (symlinks resolved), else the working directory.
func Home() string {
	if h := os.Getenv(EnvHome); h != "" {
		return h
	}
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// Path returns the config file to load: explicit, else $AGENTHOOKS_CONFIG,
// else agenthooks.yaml under home.
func Path(explicit, home string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(home, FileName)
}

// Resolve makes p absolute relative to home.
func Resolve(home, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(home, p)
}

// EventLogPath returns the absolute event log path.
func (c *Config) EventLogPath(home string) string {
	return Resolve(home, c.LogPath)
}
