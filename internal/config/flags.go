package config

import (
	"flag"

	"github.com/Faultbox/geoviewer/internal/appearance"
	"github.com/Faultbox/geoviewer/internal/locator"
)

var (
	flagConfig         = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug          = flag.Bool("debug", false, "Enable debug logging")
	flagFile           = flag.String("file", "", "OBJ mesh to display")
	flagRepresentation = flag.String("representation", "", "points, wireframe, surface or surface-with-edges")
	flagOpacity        = flag.Float64("opacity", -1, "Surface opacity in [0, 1]")
	flagClipPlanes     = flag.Int("clip-planes", 0, "Clipping plane slots")
	flagTool           = flag.String("tool", "", "Analysis tool for new locators: clipping-plane or flashlight")
	flagWindows        = flag.Int("windows", 0, "Number of render windows")
	flagWindowed       = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen     = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth          = flag.Int("width", 0, "Window width")
	flagHeight         = flag.Int("height", 0, "Window height")
	flagWatch          = flag.Bool("watch", false, "Reload the mesh when the file changes")
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
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagFile != "" {
		cfg.Scene.File = *flagFile
	}
	if *flagRepresentation != "" {
		r, err := appearance.ParseRepresentation(*flagRepresentation)
		if err != nil {
			return err
		}
		cfg.Appearance.Representation = r
	}
	if *flagOpacity >= 0 {
		cfg.Appearance.Opacity = float32(*flagOpacity)
	}
	if *flagClipPlanes > 0 {
		cfg.Tools.ClipPlanes = *flagClipPlanes
	}
	if *flagTool != "" {
		m, err := locator.ParseMode(*flagTool)
		if err != nil {
			return err
		}
		cfg.Tools.Mode = m
	}
	if *flagWindows > 0 {
		cfg.Display.Windows = *flagWindows
	}
	if *flagWindowed {
		cfg.Display.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Display.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Display.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Display.Height = *flagHeight
	}
	if *flagWatch {
		cfg.Scene.Watch = true
	}
	return nil
}
