// Package control turns user input into changes of the simulation
// parameters and the orbits. It has no physics of its own.
package control

import (
	"fmt"

	"github.com/litescript/ls-orrery/internal/audio"
	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/state"
)

// Selection is the result of inspecting a body.
type Selection struct {
	Name   string
	Markup string
	Found  bool // false when the fallback text is shown
}

// Controller is the interaction layer. All methods must be called from the
// UI update loop.
type Controller struct {
	params *state.Params
	orbits *orbit.Registry
	dir    *catalog.Directory
	sound  *audio.Dispatcher
	log    *logging.Logger
}

// New creates a controller over explicit dependencies.
func New(params *state.Params, orbits *orbit.Registry, dir *catalog.Directory, sound *audio.Dispatcher, log *logging.Logger) *Controller {
	if log == nil {
		log = logging.Discard()
	}
	return &Controller{
		params: params,
		orbits: orbits,
		dir:    dir,
		sound:  sound,
		log:    log,
	}
}

// Params returns the shared simulation parameters.
func (c *Controller) Params() *state.Params { return c.params }

// Select inspects a body: it returns its text (or the fallback) and plays
// its cue.
func (c *Controller) Select(name string) Selection {
	sel := Selection{Name: name, Markup: catalog.Fallback}
	if e, ok := c.dir.Lookup(name); ok && e.Markup != "" {
		sel.Markup = e.Markup
		sel.Found = true
	} else {
		c.log.Debug("no info for %q", name)
	}
	c.sound.Play(name)
	return sel
}

// SetSpeed is the speed input boundary. Values outside
// [state.MinSpeed, state.MaxSpeed] are rejected and never reach the orbits;
// valid values retune every record.
func (c *Controller) SetSpeed(v float64) error {
	if err := c.params.SetSpeed(v); err != nil {
		return err
	}
	if err := c.orbits.RetuneAll(v); err != nil {
		return fmt.Errorf("retune orbits: %w", err)
	}
	c.log.Debug("speed %.2fx", v)
	return nil
}

// SetZoom sets the zoom factor and returns the clamped value.
func (c *Controller) SetZoom(v float64) float64 {
	return c.params.SetZoom(v)
}

// Wheel accumulates a scroll delta into the zoom factor and returns the
// clamped value. Negative deltas (wheel up) zoom in.
func (c *Controller) Wheel(delta float64) float64 {
	return c.params.AddWheel(delta)
}

// ToggleSound flips the sound flag; turning it off silences the current
// cue. It returns the new state.
func (c *Controller) ToggleSound() bool {
	on := !c.params.SoundEnabled()
	c.params.SetSoundEnabled(on)
	if !on {
		c.sound.StopAll()
	}
	return on
}

// TogglePause flips the pause flag and pauses or resumes every orbit.
// It returns the new state.
func (c *Controller) TogglePause() bool {
	paused := !c.params.Paused()
	c.params.SetPaused(paused)
	if paused {
		c.orbits.PauseAll()
		return paused
	}
	if err := c.orbits.ResumeAll(c.params.Speed()); err != nil {
		c.log.Error("resume orbits: %v", err)
	}
	return paused
}

// Gesture records a user gesture; the first one unlocks audio.
func (c *Controller) Gesture() {
	c.sound.Unlock()
}
