package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Camera defaults match the renderer's calibrated pinhole
	if cfg.Camera.Width != 1000 || cfg.Camera.Height != 1000 {
		t.Errorf("expected image 1000x1000, got %dx%d", cfg.Camera.Width, cfg.Camera.Height)
	}
	if cfg.Camera.Fx != 1000 || cfg.Camera.Fy != 1000 {
		t.Errorf("expected focal 1000/1000, got %g/%g", cfg.Camera.Fx, cfg.Camera.Fy)
	}
	if cfg.Camera.Cx != 500 || cfg.Camera.Cy != 500 {
		t.Errorf("expected principal point 500/500, got %g/%g", cfg.Camera.Cx, cfg.Camera.Cy)
	}
	if cfg.Camera.Near != 0.01 || cfg.Camera.Far != 10 {
		t.Errorf("expected clip 0.01..10, got %g..%g", cfg.Camera.Near, cfg.Camera.Far)
	}
	if cfg.Camera.Samples != 16 {
		t.Errorf("expected 16 samples, got %d", cfg.Camera.Samples)
	}

	if cfg.Window.Visible {
		t.Error("expected hidden window by default")
	}

	if cfg.Render.ClearColor != [4]float32{0, 0, 0, 1} {
		t.Errorf("expected opaque black clear color, got %v", cfg.Render.ClearColor)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
window:
  visible: true
  title: "calib"

camera:
  width: 640
  height: 480
  fx: 525
  fy: 525.5
  cx: 319.5
  cy: 239.5
  near: 0.1
  far: 20
  samples: 4

render:
  clear_color: [0.2, 0.3, 0.4, 1]
  flip_output: false

logging:
  level: "debug"
  log_file: "render.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if !cfg.Window.Visible {
		t.Error("expected visible to be true")
	}
	if cfg.Window.Title != "calib" {
		t.Errorf("expected title calib, got %s", cfg.Window.Title)
	}
	// Not in the file, keeps the default
	if cfg.Window.Width != 1000 {
		t.Errorf("expected window width 1000, got %d", cfg.Window.Width)
	}

	if cfg.Camera.Width != 640 || cfg.Camera.Height != 480 {
		t.Errorf("expected 640x480, got %dx%d", cfg.Camera.Width, cfg.Camera.Height)
	}
	if cfg.Camera.Fy != 525.5 {
		t.Errorf("expected fy 525.5, got %g", cfg.Camera.Fy)
	}
	if cfg.Camera.Cx != 319.5 {
		t.Errorf("expected cx 319.5, got %g", cfg.Camera.Cx)
	}
	if cfg.Camera.Samples != 4 {
		t.Errorf("expected 4 samples, got %d", cfg.Camera.Samples)
	}

	if cfg.Render.ClearColor != [4]float32{0.2, 0.3, 0.4, 1} {
		t.Errorf("unexpected clear color %v", cfg.Render.ClearColor)
	}
	if cfg.Render.FlipOutput {
		t.Error("expected flip_output to be false")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "render.log" {
		t.Errorf("expected log file 'render.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
camera:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/xgl.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Camera.Width = 0 }},
		{"negative height", func(c *Config) { c.Camera.Height = -1 }},
		{"zero fx", func(c *Config) { c.Camera.Fx = 0 }},
		{"near not positive", func(c *Config) { c.Camera.Near = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.001 }},
		{"no samples", func(c *Config) { c.Camera.Samples = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("camera:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Error("expected to find xgl.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "visible flag",
			setup: func() { *flagVisible = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Visible {
					t.Error("expected window to be visible with visible flag")
				}
			},
			teardown: func() { *flagVisible = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 640
				*flagHeight = 480
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Camera.Width != 640 || cfg.Window.Width != 640 {
					t.Errorf("expected width 640, got camera %d window %d", cfg.Camera.Width, cfg.Window.Width)
				}
				if cfg.Camera.Height != 480 || cfg.Window.Height != 480 {
					t.Errorf("expected height 480, got camera %d window %d", cfg.Camera.Height, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
camera:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Flag overrides the config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Camera.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Camera.Width)
	}
	if cfg.Camera.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Camera.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Camera.Fx = 612.25
	cfg.Render.FlipOutput = false
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Camera.Fx != 612.25 {
		t.Errorf("expected fx 612.25, got %g", loaded.Camera.Fx)
	}
	if loaded.Render.FlipOutput {
		t.Error("expected flip_output false after reload")
	}
}
