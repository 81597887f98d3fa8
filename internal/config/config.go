// Package config handles renderer configuration loading and management.
package config

// Config holds all renderer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds settings of the window that owns the GL context.
// The window stays hidden unless Visible is set; all rendering is offscreen.
type WindowConfig struct {
	Visible bool   `yaml:"visible"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Title   string `yaml:"title"`
}

// CameraConfig holds the pinhole intrinsics and image size of the camera.
type CameraConfig struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Fx      float32 `yaml:"fx"`
	Fy      float32 `yaml:"fy"`
	Cx      float32 `yaml:"cx"`
	Cy      float32 `yaml:"cy"`
	Near    float32 `yaml:"near"`
	Far     float32 `yaml:"far"`
	Samples int     `yaml:"samples"`
}

// RenderConfig holds settings of the render pass and the read-back.
type RenderConfig struct {
	ClearColor [4]float32 `yaml:"clear_color"`
	FlipOutput bool       `yaml:"flip_output"` // top-left origin on read-back
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Visible: false,
			Width:   1000,
			Height:  1000,
			Title:   "xgl",
		},
		Camera: CameraConfig{
			Width:   1000,
			Height:  1000,
			Fx:      1000,
			Fy:      1000,
			Cx:      500,
			Cy:      500,
			Near:    0.01,
			Far:     10,
			Samples: 16,
		},
		Render: RenderConfig{
			ClearColor: [4]float32{0, 0, 0, 1},
			FlipOutput: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
