// Package config handles scenetool configuration loading and management.
package config

import (
	"time"

	"github.com/Faultbox/scene3d/internal/scene"
	"github.com/Faultbox/scene3d/internal/store"
)

// Config holds all scenetool settings.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Source   SourceConfig   `yaml:"source"`
	Server   ServerConfig   `yaml:"server"`
	Preview  PreviewConfig  `yaml:"preview"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PipelineConfig holds the geometry build settings.
type PipelineConfig struct {
	WallAlignment string `yaml:"wall_alignment"` // flush or centered
	FloorInset    string `yaml:"floor_inset"`    // auto, none, overlap or meters
	GridOverlay   bool   `yaml:"grid_overlay"`
	Mode          string `yaml:"mode"` // optimized or literal
}

// SourceConfig holds document fetch settings.
type SourceConfig struct {
	Root        string        `yaml:"root"` // File sources must stay inside; serve uses "." when empty
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	RedisAddr   string        `yaml:"redis_addr"` // Empty disables redis:// sources
	RedisPrefix string        `yaml:"redis_prefix"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// PreviewConfig holds PNG preview settings.
type PreviewConfig struct {
	PixelsPerMeter float64 `yaml:"pixels_per_meter"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			WallAlignment: "flush",
			FloorInset:    "auto",
			GridOverlay:   false,
			Mode:          "optimized",
		},
		Source: SourceConfig{
			Root:        "",
			HTTPTimeout: 10 * time.Second,
			RedisAddr:   "",
			RedisPrefix: store.DefaultPrefix,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Preview: PreviewConfig{
			PixelsPerMeter: 32,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Settings returns the pipeline section in the form scene.Resolve accepts.
func (p PipelineConfig) Settings() scene.Settings {
	return scene.Settings{
		WallAlignment: p.WallAlignment,
		FloorInset:    p.FloorInset,
		Mode:          p.Mode,
		GridOverlay:   p.GridOverlay,
	}
}
