package config

import "github.com/spf13/pflag"

// Flags holds the command-line overrides. Only flags the user actually set
// override the file.
type Flags struct {
	set *pflag.FlagSet

	ConfigPath    string
	Debug         bool
	WallAlignment string
	FloorInset    string
	Mode          string
	Grid          bool
	RedisAddr     string
	Root          string
	Addr          string
	LogFile       string
}

// BindFlags registers the config flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{set: fs}
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.WallAlignment, "walls", "", "Wall alignment: flush or centered")
	fs.StringVar(&f.FloorInset, "inset", "", "Floor inset: auto, none, overlap or meters")
	fs.StringVar(&f.Mode, "mode", "", "Build mode: optimized or literal")
	fs.BoolVar(&f.Grid, "grid", false, "Include the editor grid overlay")
	fs.StringVar(&f.RedisAddr, "redis", "", "Redis address for redis:// sources")
	fs.StringVar(&f.Root, "root", "", "Directory file sources must stay inside")
	fs.StringVar(&f.Addr, "addr", "", "HTTP listen address")
	fs.StringVar(&f.LogFile, "log-file", "", "Write logs to this file as well")
	return f
}

func (f *Flags) changed(name string) bool {
	return f.set != nil && f.set.Changed(name)
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.changed("walls") {
		cfg.Pipeline.WallAlignment = f.WallAlignment
	}
	if f.changed("inset") {
		cfg.Pipeline.FloorInset = f.FloorInset
	}
	if f.changed("mode") {
		cfg.Pipeline.Mode = f.Mode
	}
	if f.changed("grid") {
		cfg.Pipeline.GridOverlay = f.Grid
	}
	if f.changed("redis") {
		cfg.Source.RedisAddr = f.RedisAddr
	}
	if f.changed("root") {
		cfg.Source.Root = f.Root
	}
	if f.changed("addr") {
		cfg.Server.Addr = f.Addr
	}
	if f.changed("log-file") {
		cfg.Logging.LogFile = f.LogFile
	}
}
