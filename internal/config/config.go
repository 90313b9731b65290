// Package config loads runtime settings from INEVITABLE_* environment
// variables and command-line flags. Flags win over the environment.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/olivierh59500/inevitable-go/internal/behavior"
	"github.com/olivierh59500/inevitable-go/internal/evasion"
)

// ErrInvalid marks a configuration that parsed but cannot be used
var ErrInvalid = errors.New("invalid config")

// Config holds every tunable of both hosts
type Config struct {
	Width  int `env:"INEVITABLE_WIDTH" envDefault:"960"`
	Height int `env:"INEVITABLE_HEIGHT" envDefault:"640"`
	TPS    int `env:"INEVITABLE_TPS" envDefault:"60"`

	ReducedMotion    bool          `env:"INEVITABLE_REDUCED_MOTION"`
	EvasionThreshold int           `env:"INEVITABLE_THRESHOLD" envDefault:"3"`
	Debounce         time.Duration `env:"INEVITABLE_DEBOUNCE" envDefault:"300ms"`
	ProximityRadius  float64       `env:"INEVITABLE_PROXIMITY_RADIUS" envDefault:"150"`
	VisualReset      time.Duration `env:"INEVITABLE_VISUAL_RESET" envDefault:"500ms"`
	Seed             int64         `env:"INEVITABLE_SEED"` // 0: seeded from the clock

	Mute   bool    `env:"INEVITABLE_MUTE"`
	Volume float64 `env:"INEVITABLE_VOLUME" envDefault:"0.6"`

	Debug       bool   `env:"INEVITABLE_DEBUG"`
	ContentPath string `env:"INEVITABLE_CONTENT"`

	// DumpContent is flag-only: write the default content pools there and exit
	DumpContent string
}

// ParseEnv fills cfg from the environment. A nil environ reads the process
// environment.
func ParseEnv(cfg *Config, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment, then args (without the program name), then
// validates the result. flag.ErrHelp is returned unwrapped.
func Load(name string, args []string, environ map[string]string, output io.Writer) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg, environ); err != nil {
		return cfg, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}
	fs.IntVar(&cfg.Width, "width", cfg.Width, "window width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "window height")
	fs.IntVar(&cfg.TPS, "tps", cfg.TPS, "simulation ticks per second")
	fs.BoolVar(&cfg.ReducedMotion, "reduced-motion", cfg.ReducedMotion, "replace large motion with fades")
	fs.IntVar(&cfg.EvasionThreshold, "threshold", cfg.EvasionThreshold, "attempts before the No button starts moving")
	fs.DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "minimum gap between counted attempts")
	fs.Float64Var(&cfg.ProximityRadius, "proximity", cfg.ProximityRadius, "pointer distance that makes the No button flee")
	fs.DurationVar(&cfg.VisualReset, "visual-reset", cfg.VisualReset, "delay before transforms revert (0 disables)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = time based)")
	fs.BoolVar(&cfg.Mute, "mute", cfg.Mute, "disable the celebration chime")
	fs.Float64Var(&cfg.Volume, "volume", cfg.Volume, "chime volume, 0..1")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "write logs/inevitable.log")
	fs.StringVar(&cfg.ContentPath, "content", cfg.ContentPath, "JSON file overriding labels and feedback")
	fs.StringVar(&cfg.DumpContent, "dump-content", "", "write the default content to this file and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, err
		}
		return cfg, fmt.Errorf("parse flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first unusable setting, wrapped in ErrInvalid
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.TPS <= 0:
		return fmt.Errorf("%w: tps %d", ErrInvalid, c.TPS)
	case c.EvasionThreshold < 0 || c.EvasionThreshold > behavior.PremonitionCount:
		return fmt.Errorf("%w: threshold %d outside 0..%d", ErrInvalid, c.EvasionThreshold, behavior.PremonitionCount)
	case c.Debounce < 0:
		return fmt.Errorf("%w: negative debounce %s", ErrInvalid, c.Debounce)
	case c.VisualReset < 0:
		return fmt.Errorf("%w: negative visual reset %s", ErrInvalid, c.VisualReset)
	case c.ProximityRadius < 0:
		return fmt.Errorf("%w: negative proximity radius %v", ErrInvalid, c.ProximityRadius)
	case c.Volume < 0 || c.Volume > 1:
		return fmt.Errorf("%w: volume %v outside 0..1", ErrInvalid, c.Volume)
	}
	return nil
}

// Evasion returns the controller tuning
func (c Config) Evasion() evasion.Config {
	return evasion.Config{
		Threshold:       c.EvasionThreshold,
		Debounce:        c.Debounce,
		ProximityRadius: c.ProximityRadius,
		VisualReset:     c.VisualReset,
	}
}

// ChimeVolume is the effective chime volume, 0 when muted
func (c Config) ChimeVolume() float64 {
	if c.Mute {
		return 0
	}
	return c.Volume
}
