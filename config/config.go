// Package config reads FOXTROT_* environment variables and command line flags.
// Flags win over the environment.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/milk9111/foxtrot/logger"
)

const envPrefix = "FOXTROT_"

type Config struct {
	Level         string `env:"LEVEL" envDefault:"meadow"`
	Debug         bool   `env:"DEBUG"`
	Dev           bool   `env:"DEV"`
	BaseMonitor   bool   `env:"BASE_MONITOR"`
	SkipMenu      bool   `env:"SKIP_MENU"`
	Bindings      string `env:"BINDINGS"`
	SaveDir       string `env:"SAVE_DIR" envDefault:"saves"`
	Width         int    `env:"WIDTH" envDefault:"1280"`
	Height        int    `env:"HEIGHT" envDefault:"720"`
	TPS           int    `env:"TPS" envDefault:"60"`
	LoaderWorkers int    `env:"LOADER_WORKERS" envDefault:"4"`

	Log logger.Config
}

// Load parses the environment, then args. A nil environ reads the process
// environment.
func Load(args []string, environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: envPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("config: parse env: %w", err)
	}

	fs := flag.NewFlagSet("foxtrot", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Level, "level", cfg.Level, "level name in levels/ (basename, .yaml optional)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "draw physics shapes and player state")
	fs.BoolVar(&cfg.Dev, "dev", cfg.Dev, "enable hot reload and dev hotkeys")
	fs.BoolVar(&cfg.BaseMonitor, "m", cfg.BaseMonitor, "use base monitor instead of primary (for multi-monitor setups)")
	fs.BoolVar(&cfg.SkipMenu, "play", cfg.SkipMenu, "skip the main menu")
	fs.StringVar(&cfg.Bindings, "bindings", cfg.Bindings, "YAML file overriding input bindings")
	fs.StringVar(&cfg.SaveDir, "saves", cfg.SaveDir, "directory for save games")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("config: parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// FromOS loads from os.Args and the process environment.
func FromOS() (Config, error) {
	return Load(os.Args[1:], nil)
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Level) == "" {
		return fmt.Errorf("config: level is empty")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: invalid window size %dx%d", c.Width, c.Height)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("config: tps must be positive, got %d", c.TPS)
	}
	return nil
}
