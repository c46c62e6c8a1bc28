// Package config loads runtime settings from ORRERY_* environment
// variables. Command-line flags override them in main.
package config

import (
	"fmt"
	"math"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/litescript/ls-orrery/internal/state"
)

// Frame interval bounds.
const (
	MinFrame = 10 * time.Millisecond
	MaxFrame = time.Second
)

// Config holds every tunable setting.
type Config struct {
	LogLevel string `env:"ORRERY_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"ORRERY_LOG_FILE"`

	Speed            float64 `env:"ORRERY_SPEED"             envDefault:"1"`
	Zoom             float64 `env:"ORRERY_ZOOM"              envDefault:"1"`
	Sound            bool    `env:"ORRERY_SOUND"             envDefault:"true"`
	Volume           float64 `env:"ORRERY_VOLUME"            envDefault:"0.5"`
	WheelSensitivity float64 `env:"ORRERY_WHEEL_SENSITIVITY" envDefault:"-0.001"`

	Stars    int    `env:"ORRERY_STARS"     envDefault:"150"`
	StarSeed uint64 `env:"ORRERY_STAR_SEED"` // 0 picks a seed from the clock

	Frame time.Duration `env:"ORRERY_FRAME" envDefault:"33ms"`
}

// Load reads the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadFrom reads settings from environ instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate clamps ranged settings in place and rejects a speed outside
// [state.MinSpeed, state.MaxSpeed].
func (c *Config) Validate() error {
	if c.Frame < MinFrame {
		c.Frame = MinFrame
	} else if c.Frame > MaxFrame {
		c.Frame = MaxFrame
	}

	c.Zoom = state.ClampZoom(c.Zoom)

	if math.IsNaN(c.Volume) || c.Volume < 0 {
		c.Volume = 0
	} else if c.Volume > 1 {
		c.Volume = 1
	}

	if c.Stars < 0 {
		c.Stars = 0
	}

	if err := state.ValidateSpeed(c.Speed); err != nil {
		return fmt.Errorf("speed: %w", err)
	}
	return nil
}

// StateConfig returns the startup simulation parameters.
func (c Config) StateConfig() state.Config {
	sc := state.DefaultConfig()
	sc.Speed = c.Speed
	sc.Zoom = c.Zoom
	sc.SoundEnabled = c.Sound
	sc.WheelSensitivity = c.WheelSensitivity
	return sc
}
