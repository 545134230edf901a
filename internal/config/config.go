// Package config handles viewer configuration loading and management.
package config

import (
	"github.com/Faultbox/geoviewer/internal/appearance"
	"github.com/Faultbox/geoviewer/internal/locator"
)

// Config holds all viewer settings.
type Config struct {
	Display    DisplayConfig    `yaml:"display" toml:"display"`
	Scene      SceneConfig      `yaml:"scene" toml:"scene"`
	Appearance AppearanceConfig `yaml:"appearance" toml:"appearance"`
	Tools      ToolsConfig      `yaml:"tools" toml:"tools"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
}

// DisplayConfig holds window and context settings.
type DisplayConfig struct {
	Title       string     `yaml:"title" toml:"title"`
	Width       int        `yaml:"width" toml:"width"`
	Height      int        `yaml:"height" toml:"height"`
	Fullscreen  bool       `yaml:"fullscreen" toml:"fullscreen"`
	VSync       bool       `yaml:"vsync" toml:"vsync"`
	Windows     int        `yaml:"windows" toml:"windows"` // one render context per window
	Background  [4]float32 `yaml:"background" toml:"background"`
	Screenshots string     `yaml:"screenshots" toml:"screenshots"` // capture directory
}

// SceneConfig selects the mesh to display.
type SceneConfig struct {
	File        string `yaml:"file" toml:"file"`
	DefaultCube bool   `yaml:"default_cube" toml:"default_cube"` // show a cube when File is empty
	Watch       bool   `yaml:"watch" toml:"watch"`
}

// AppearanceConfig holds the startup appearance.
type AppearanceConfig struct {
	Representation appearance.Representation `yaml:"representation" toml:"representation"`
	Opacity        float32                   `yaml:"opacity" toml:"opacity"`
	Ambient        [3]float32                `yaml:"ambient" toml:"ambient"`
	Diffuse        [3]float32                `yaml:"diffuse" toml:"diffuse"`
	Specular       [3]float32                `yaml:"specular" toml:"specular"`
	Intensity      float32                   `yaml:"intensity" toml:"intensity"`
}

// ToolsConfig holds locator tool settings.
type ToolsConfig struct {
	Mode       locator.Mode `yaml:"mode" toml:"mode"`
	ClipPlanes int          `yaml:"clip_planes" toml:"clip_planes"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level" toml:"level"`
	LogFile    string `yaml:"log_file" toml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" toml:"max_age_days"`
	JSON       bool   `yaml:"json" toml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Title:       "geoviewer",
			Width:       1280,
			Height:      720,
			Fullscreen:  false,
			VSync:       true,
			Windows:     1,
			Background:  [4]float32{0.1, 0.1, 0.15, 0},
			Screenshots: "screenshots",
		},
		Scene: SceneConfig{
			DefaultCube: true,
		},
		Appearance: AppearanceConfig{
			Representation: appearance.Surface,
			Opacity:        1,
			Diffuse:        [3]float32{1, 1, 1},
			Intensity:      1,
		},
		Tools: ToolsConfig{
			Mode:       locator.ModeClippingPlane,
			ClipPlanes: 6,
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}
