// Package state holds the simulation parameters shared by the interaction
// layer, the orbit model, and audio dispatch.
//
// A single Params value is created at startup and passed explicitly to the
// components that need it. It is mutated only from the UI update loop, so it
// carries no locking.
package state

import (
	"errors"
	"fmt"
	"math"
)

// Zoom bounds (inclusive).
const (
	MinZoom = 0.5
	MaxZoom = 2.5
)

// Speed multiplier bounds (inclusive).
const (
	MinSpeed = 0.1
	MaxSpeed = 10.0
)

// ErrInvalidSpeed is returned when a speed multiplier falls outside
// [MinSpeed, MaxSpeed].
var ErrInvalidSpeed = errors.New("speed multiplier out of range")

// Config holds the startup values of the simulation parameters.
type Config struct {
	Speed            float64
	Zoom             float64
	SoundEnabled     bool
	Paused           bool
	WheelSensitivity float64 // zoom change per wheel unit
}

// DefaultConfig returns the control defaults.
func DefaultConfig() Config {
	return Config{
		Speed:            1,
		Zoom:             1,
		SoundEnabled:     true,
		Paused:           false,
		WheelSensitivity: -0.001, // wheel down zooms out
	}
}

// Params is the process-wide simulation state.
type Params struct {
	speed            float64
	zoom             float64
	soundEnabled     bool
	paused           bool
	wheelSensitivity float64
}

// NewParams creates parameters from cfg. An invalid speed falls back to 1
// and the zoom is clamped.
func NewParams(cfg Config) *Params {
	p := &Params{
		speed:            1,
		soundEnabled:     cfg.SoundEnabled,
		paused:           cfg.Paused,
		wheelSensitivity: cfg.WheelSensitivity,
	}
	if ValidateSpeed(cfg.Speed) == nil {
		p.speed = cfg.Speed
	}
	p.zoom = ClampZoom(cfg.Zoom)
	return p
}

// ValidateSpeed reports whether v can be used as a speed multiplier.
// NaN fails both comparisons and is rejected.
func ValidateSpeed(v float64) error {
	if !(v >= MinSpeed && v <= MaxSpeed) {
		return fmt.Errorf("%w: %v not in [%g, %g]", ErrInvalidSpeed, v, MinSpeed, MaxSpeed)
	}
	return nil
}

// ClampZoom clamps v into [MinZoom, MaxZoom]. NaN maps to 1.
func ClampZoom(v float64) float64 {
	if math.IsNaN(v) {
		return 1
	}
	return math.Min(math.Max(MinZoom, v), MaxZoom)
}

// Speed returns the speed multiplier.
func (p *Params) Speed() float64 { return p.speed }

// SetSpeed sets the speed multiplier. Values outside [MinSpeed, MaxSpeed]
// are rejected and leave the current value untouched.
func (p *Params) SetSpeed(v float64) error {
	if err := ValidateSpeed(v); err != nil {
		return err
	}
	p.speed = v
	return nil
}

// Zoom returns the zoom factor.
func (p *Params) Zoom() float64 { return p.zoom }

// SetZoom sets the zoom factor, clamped, and returns the stored value.
func (p *Params) SetZoom(v float64) float64 {
	p.zoom = ClampZoom(v)
	return p.zoom
}

// AddWheel accumulates a wheel delta into the zoom factor and returns the
// clamped result.
func (p *Params) AddWheel(delta float64) float64 {
	return p.SetZoom(p.zoom + delta*p.wheelSensitivity)
}

// SoundEnabled reports whether audio cues are on.
func (p *Params) SoundEnabled() bool { return p.soundEnabled }

// SetSoundEnabled sets the sound flag.
func (p *Params) SetSoundEnabled(on bool) { p.soundEnabled = on }

// Paused reports whether the system is paused.
func (p *Params) Paused() bool { return p.paused }

// SetPaused sets the pause flag.
func (p *Params) SetPaused(paused bool) { p.paused = paused }

// Snapshot is an immutable copy of the parameters.
type Snapshot struct {
	Speed        float64 `json:"speed"`
	Zoom         float64 `json:"zoom"`
	SoundEnabled bool    `json:"sound_enabled"`
	Paused       bool    `json:"paused"`
}

// Snapshot returns a copy of the current parameters.
func (p *Params) Snapshot() Snapshot {
	return Snapshot{
		Speed:        p.speed,
		Zoom:         p.zoom,
		SoundEnabled: p.soundEnabled,
		Paused:       p.paused,
	}
}
