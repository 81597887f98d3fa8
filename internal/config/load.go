package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working and config directories.
const FileName = "xgl.yaml"

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the search
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports settings the renderer cannot start with.
func (c *Config) Validate() error {
	if c.Camera.Width < 1 || c.Camera.Height < 1 {
		return fmt.Errorf("camera image size must be positive, got %dx%d", c.Camera.Width, c.Camera.Height)
	}
	if c.Camera.Fx == 0 || c.Camera.Fy == 0 {
		return fmt.Errorf("camera focal length must be non-zero, got fx=%g fy=%g", c.Camera.Fx, c.Camera.Fy)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera clip range invalid: near=%g far=%g", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.Samples < 1 {
		return fmt.Errorf("camera samples must be at least 1, got %d", c.Camera.Samples)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./" + FileName,
		filepath.Join(ConfigDir(), FileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "xgl")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "xgl")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "xgl")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "xgl")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
