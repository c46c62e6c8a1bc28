// Package audio plays the short cue attached to each inspectable body.
//
// At most one cue plays at a time: starting a cue stops and rewinds every
// other one first. Playback failures are logged and swallowed.
package audio

import (
	"errors"

	"github.com/litescript/ls-orrery/internal/logging"
)

// ErrPlaybackRejected is returned by a Resource that cannot start, e.g.
// because no output device is available.
var ErrPlaybackRejected = errors.New("audio: playback rejected")

// Resource is one playable cue.
type Resource interface {
	// Play starts the cue from the beginning.
	Play() error
	// Stop halts the cue and rewinds it. Safe to call when not playing.
	Stop()
	// Playing reports whether the cue is currently audible or queued.
	Playing() bool
}

// Primer is implemented by resources that can be warmed up without being
// heard. Unlock prefers it over Play followed by Stop.
type Primer interface {
	Prime() error
}

// Source resolves cues by body name.
type Source interface {
	Audio(name string) (Resource, bool)
	AllAudio() []Resource
}

// Switch reports whether sound is enabled. *state.Params implements it.
type Switch interface {
	SoundEnabled() bool
}

// Dispatcher enforces the one-cue-at-a-time rule.
type Dispatcher struct {
	src      Source
	sound    Switch
	log      *logging.Logger
	unlocked bool
}

// NewDispatcher creates a dispatcher over src.
func NewDispatcher(src Source, sound Switch, log *logging.Logger) *Dispatcher {
	if log == nil {
		log = logging.Discard()
	}
	return &Dispatcher{src: src, sound: sound, log: log}
}

// Play stops every cue and starts the one for name. It does nothing when
// sound is off or name has no cue. It reports whether playback started.
func (d *Dispatcher) Play(name string) bool {
	if !d.sound.SoundEnabled() {
		return false
	}
	res, ok := d.src.Audio(name)
	if !ok {
		return false
	}

	d.StopAll()
	if err := res.Play(); err != nil {
		d.log.Warn("play %s: %v", name, err)
		return false
	}
	return true
}

// StopAll stops and rewinds every cue.
func (d *Dispatcher) StopAll() {
	for _, res := range d.src.AllAudio() {
		res.Stop()
	}
}

// Unlock primes every cue once. Resources implementing Primer are primed
// silently; others are started and immediately stopped. Only the first call
// has any effect, and it runs whether or not sound is enabled.
func (d *Dispatcher) Unlock() {
	if d.unlocked {
		return
	}
	d.unlocked = true

	primed := 0
	for _, res := range d.src.AllAudio() {
		if err := prime(res); err != nil {
			d.log.Debug("prime: %v", err)
			continue
		}
		primed++
	}
	d.log.Debug("audio unlocked, %d cues primed", primed)
}

func prime(res Resource) error {
	if p, ok := res.(Primer); ok {
		return p.Prime()
	}
	if err := res.Play(); err != nil {
		return err
	}
	res.Stop()
	return nil
}

// Unlocked reports whether Unlock has run.
func (d *Dispatcher) Unlocked() bool {
	return d.unlocked
}
