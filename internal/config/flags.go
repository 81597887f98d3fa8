package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagVisible = flag.Bool("visible", false, "Show the window instead of rendering hidden")
	flagWidth   = flag.Int("width", 0, "Image width")
	flagHeight  = flag.Int("height", 0, "Image height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
// Width and height resize both the camera image and the window.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagVisible {
		cfg.Window.Visible = true
	}
	if *flagWidth > 0 {
		cfg.Camera.Width = *flagWidth
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Camera.Height = *flagHeight
		cfg.Window.Height = *flagHeight
	}
}
