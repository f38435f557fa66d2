package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/Faultbox/scene3d/internal/geometry"
	"github.com/Faultbox/scene3d/internal/scene"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test pipeline defaults
	if cfg.Pipeline.WallAlignment != "flush" {
		t.Errorf("expected wall alignment 'flush', got %s", cfg.Pipeline.WallAlignment)
	}
	if cfg.Pipeline.FloorInset != "auto" {
		t.Errorf("expected floor inset 'auto', got %s", cfg.Pipeline.FloorInset)
	}
	if cfg.Pipeline.GridOverlay {
		t.Error("expected grid overlay to be off by default")
	}

	// Test source defaults
	if cfg.Source.HTTPTimeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Source.HTTPTimeout)
	}
	if cfg.Source.RedisPrefix != "scene:doc:" {
		t.Errorf("expected redis prefix scene:doc:, got %s", cfg.Source.RedisPrefix)
	}

	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("expected addr 127.0.0.1:8080, got %s", cfg.Server.Addr)
	}
	if cfg.Preview.PixelsPerMeter != 32 {
		t.Errorf("expected 32 pixels per meter, got %v", cfg.Preview.PixelsPerMeter)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestDefault_ResolvesToPipelineDefaults(t *testing.T) {
	opts := scene.Resolve(Default().Pipeline.Settings(), nil)
	want := scene.DefaultOptions()

	if opts.Geometry != want.Geometry {
		t.Errorf("expected geometry %+v, got %+v", want.Geometry, opts.Geometry)
	}
	if opts.Mode != want.Mode {
		t.Errorf("expected mode %s, got %s", want.Mode, opts.Mode)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
pipeline:
  wall_alignment: centered
  floor_inset: "0.25"
  grid_overlay: true
  mode: literal

source:
  root: "/srv/scenes"
  http_timeout: 3s
  redis_addr: "localhost:6379"
  redis_prefix: "test:"

server:
  addr: ":9000"

preview:
  pixels_per_meter: 64

logging:
  level: "debug"
  log_file: "scenetool.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Pipeline.WallAlignment != "centered" {
		t.Errorf("expected centered walls, got %s", cfg.Pipeline.WallAlignment)
	}
	if cfg.Pipeline.FloorInset != "0.25" {
		t.Errorf("expected inset 0.25, got %s", cfg.Pipeline.FloorInset)
	}
	if !cfg.Pipeline.GridOverlay {
		t.Error("expected grid overlay to be on")
	}
	if cfg.Pipeline.Mode != "literal" {
		t.Errorf("expected literal mode, got %s", cfg.Pipeline.Mode)
	}

	if cfg.Source.Root != "/srv/scenes" {
		t.Errorf("expected root /srv/scenes, got %s", cfg.Source.Root)
	}
	if cfg.Source.HTTPTimeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %v", cfg.Source.HTTPTimeout)
	}
	if cfg.Source.RedisAddr != "localhost:6379" {
		t.Errorf("expected redis localhost:6379, got %s", cfg.Source.RedisAddr)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("expected addr :9000, got %s", cfg.Server.Addr)
	}
	if cfg.Preview.PixelsPerMeter != 64 {
		t.Errorf("expected 64 pixels per meter, got %v", cfg.Preview.PixelsPerMeter)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "scenetool.log" {
		t.Errorf("expected log file 'scenetool.log', got %s", cfg.Logging.LogFile)
	}

	opts := scene.Resolve(cfg.Pipeline.Settings(), nil)
	if opts.Geometry.Seam != geometry.SeamInsetCustom || opts.Geometry.InsetMeters != 0.25 {
		t.Errorf("expected custom inset 0.25, got %s %v", opts.Geometry.Seam, opts.Geometry.InsetMeters)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
preview:
  pixels_per_meter: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
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
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create scenetool.yaml in current directory
	configPath := filepath.Join(tmpDir, "scenetool.yaml")
	if err := os.WriteFile(configPath, []byte("server:\n  addr: ':1'\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find scenetool.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(*testing.T, *Config)
	}{
		{
			name: "debug flag",
			args: []string{"--debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "pipeline flags",
			args: []string{"--walls", "centered", "--inset", "overlap", "--mode", "literal", "--grid"},
			verify: func(t *testing.T, cfg *Config) {
				p := cfg.Pipeline
				if p.WallAlignment != "centered" || p.FloorInset != "overlap" || p.Mode != "literal" || !p.GridOverlay {
					t.Errorf("unexpected pipeline config %+v", p)
				}
			},
		},
		{
			name: "source and server flags",
			args: []string{"--redis", "10.0.0.1:6379", "--root", "scenes", "--addr", ":7000", "--log-file", "out.log"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Source.Root != "scenes" {
					t.Errorf("expected root scenes, got %s", cfg.Source.Root)
				}
				if cfg.Source.RedisAddr != "10.0.0.1:6379" {
					t.Errorf("expected redis 10.0.0.1:6379, got %s", cfg.Source.RedisAddr)
				}
				if cfg.Server.Addr != ":7000" {
					t.Errorf("expected addr :7000, got %s", cfg.Server.Addr)
				}
				if cfg.Logging.LogFile != "out.log" {
					t.Errorf("expected log file out.log, got %s", cfg.Logging.LogFile)
				}
			},
		},
		{
			name: "unset flags keep config",
			args: nil,
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Pipeline.WallAlignment != "flush" {
					t.Errorf("expected flush walls, got %s", cfg.Pipeline.WallAlignment)
				}
				if cfg.Server.Addr != "127.0.0.1:8080" {
					t.Errorf("expected default addr, got %s", cfg.Server.Addr)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			f := BindFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse flags: %v", err)
			}

			cfg := Default()
			applyFlags(cfg, f)
			tt.verify(t, cfg)
		})
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	// Create and modify config
	cfg := Default()
	cfg.Pipeline.WallAlignment = "centered"
	cfg.Source.HTTPTimeout = 2 * time.Second

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	// Verify file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}

	// Load it back
	loaded := Default()
	if err := loadFromFile(loaded, configPath); err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}

	if loaded.Pipeline.WallAlignment != "centered" {
		t.Errorf("expected centered walls, got %s", loaded.Pipeline.WallAlignment)
	}
	if loaded.Source.HTTPTimeout != 2*time.Second {
		t.Errorf("expected timeout 2s, got %v", loaded.Source.HTTPTimeout)
	}
}

func TestSave(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := Default().Save()
	if err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config at %s: %v", path, err)
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
pipeline:
  wall_alignment: centered
  floor_inset: none
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f := BindFlags(fs)
	if err := fs.Parse([]string{"--config", configPath, "--walls", "flush"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Walls should be from flag, not file
	if cfg.Pipeline.WallAlignment != "flush" {
		t.Errorf("expected flush walls from flag, got %s", cfg.Pipeline.WallAlignment)
	}

	// Inset should be from file since no flag override
	if cfg.Pipeline.FloorInset != "none" {
		t.Errorf("expected inset none from file, got %s", cfg.Pipeline.FloorInset)
	}
}
